package complexinput

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/dynform/internal/domain"
	"github.com/renato0307/dynform/internal/logging"
	"github.com/renato0307/dynform/internal/theme"
)

// Factory creates one record in View state
type Factory[V any] func() (ComplexInput[V], error)

// ComplexInputForm manages the records of a list of values. records[0]
// is always the add slot; records[1:] mirror items one to one.
type ComplexInputForm[V any] struct {
	actionHandlers       []func(ActionEvent)
	confirmationHandlers []func(ConfirmationEvent)
	eventHandlers        []func(Event)
	factory              Factory[V]
	items                []V
	parent               Sink
	readOnly             bool
	records              []ComplexInput[V]
	required             bool
	resources            *theme.Resources
	title                string
}

// New creates a form with an empty list and a fresh add slot
func New[V any](factory Factory[V], resources *theme.Resources) (*ComplexInputForm[V], error) {
	if resources == nil {
		resources = theme.DefaultResources()
	}
	c := &ComplexInputForm[V]{
		factory:   factory,
		resources: resources,
	}
	slot, err := c.newAddSlot()
	if err != nil {
		return nil, err
	}
	c.records = []ComplexInput[V]{slot}
	return c, nil
}

// NewFromTemplate creates a form whose records are Records built from template
func NewFromTemplate[V any](template Template[V], resources *theme.Resources) (*ComplexInputForm[V], error) {
	if resources == nil {
		resources = theme.DefaultResources()
	}
	factory := func() (ComplexInput[V], error) {
		return NewRecord(template, resources)
	}
	return New[V](factory, resources)
}

// SetTitle sets the heading rendered above the list
func (c *ComplexInputForm[V]) SetTitle(title string) {
	c.title = title
}

// SetValue rebuilds every record from list. The list is copied.
func (c *ComplexInputForm[V]) SetValue(list []V) error {
	records := make([]ComplexInput[V], 0, len(list)+1)
	slot, err := c.newAddSlot()
	if err != nil {
		return err
	}
	records = append(records, slot)
	for _, item := range list {
		rec, err := c.newRecord()
		if err != nil {
			return err
		}
		rec.SetValue(item)
		records = append(records, rec)
	}

	c.items = slices.Clone(list)
	c.records = records
	logging.Logger.Debug("Complex form rebuilt", "items", len(list))
	return nil
}

// Value returns a copy of the committed list
func (c *ComplexInputForm[V]) Value() []V {
	return slices.Clone(c.items)
}

// Len returns the number of committed items
func (c *ComplexInputForm[V]) Len() int {
	return len(c.items)
}

// Records returns the records in render order, add slot first
func (c *ComplexInputForm[V]) Records() []ComplexInput[V] {
	return slices.Clone(c.records)
}

// AddSlot returns the record in Add state
func (c *ComplexInputForm[V]) AddSlot() ComplexInput[V] {
	return c.records[0]
}

// SetParent makes events not consumed here continue to parent
func (c *ComplexInputForm[V]) SetParent(parent Sink) {
	c.parent = parent
}

// SetRequired sets the required flag on every record's fields, add slot included
func (c *ComplexInputForm[V]) SetRequired(required bool) {
	c.required = required
	for _, rec := range c.records {
		rec.Form().SetFieldsRequired(required)
	}
}

// IsRequired reports the form-wide required flag
func (c *ComplexInputForm[V]) IsRequired() bool {
	return c.required
}

// SetReadOnly sets the read-only flag on every record's fields, add slot included.
// A read-only form refuses add, edit, save and remove.
func (c *ComplexInputForm[V]) SetReadOnly(readOnly bool) {
	c.readOnly = readOnly
	for _, rec := range c.records {
		rec.Form().SetFieldsReadOnly(readOnly)
	}
}

// IsReadOnly reports the form-wide read-only flag
func (c *ComplexInputForm[V]) IsReadOnly() bool {
	return c.readOnly
}

// AddActionHandler registers a handler for caller-defined actions raised
// by this form's records or any nested form below them
func (c *ComplexInputForm[V]) AddActionHandler(handler func(ActionEvent)) {
	c.actionHandlers = append(c.actionHandlers, handler)
}

// AddConfirmationHandler registers the decider for destructive steps.
// Nested forms without their own handler defer to the nearest ancestor's.
func (c *ComplexInputForm[V]) AddConfirmationHandler(handler func(ConfirmationEvent)) {
	c.confirmationHandlers = append(c.confirmationHandlers, handler)
}

// AddEventHandler registers a handler for every event passing through this form
func (c *ComplexInputForm[V]) AddEventHandler(handler func(Event)) {
	c.eventHandlers = append(c.eventHandlers, handler)
}

// Add commits the add slot
func (c *ComplexInputForm[V]) Add() error {
	if c.readOnly {
		return domain.ErrReadOnly
	}
	return c.records[0].AddField()
}

// Edit switches the record at index i to Edit state
func (c *ComplexInputForm[V]) Edit(i int) error {
	rec, err := c.savedRecord(i)
	if err != nil {
		return err
	}
	if rec.State() != domain.StateView {
		return fmt.Errorf("%w: edit in %s state", domain.ErrInvalidState, rec.State())
	}
	rec.SetEditState()
	return nil
}

// Save commits the record at index i
func (c *ComplexInputForm[V]) Save(i int) error {
	rec, err := c.savedRecord(i)
	if err != nil {
		return err
	}
	if err := rec.SaveField(); err != nil {
		return err
	}
	c.items[i-1] = rec.Value()
	return nil
}

// Remove asks to remove the record at index i. The record goes away only
// once the confirmation is confirmed.
func (c *ComplexInputForm[V]) Remove(i int) error {
	rec, err := c.savedRecord(i)
	if err != nil {
		return err
	}
	rec.RemoveField()
	return nil
}

// Cancel asks to discard the edits of the record at index i. Index 0
// clears the add slot.
func (c *ComplexInputForm[V]) Cancel(i int) error {
	if i < 0 || i >= len(c.records) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidIndex, i)
	}
	c.records[i].CancelField()
	return nil
}

// Action raises a caller-defined action on the record at index i
func (c *ComplexInputForm[V]) Action(i int, name string, payload any) error {
	if i < 0 || i >= len(c.records) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidIndex, i)
	}
	c.records[i].FireAction(name, payload)
	return nil
}

// Notify receives events from this form's records and from nested forms
func (c *ComplexInputForm[V]) Notify(ev Event) {
	switch e := ev.(type) {
	case AddEvent:
		if idx := c.indexOf(e.Source); idx >= 0 {
			c.handleAdd(idx, e)
			return
		}
	case RemoveEvent:
		if idx := c.indexOf(e.Source); idx >= 0 {
			c.handleRemove(idx, e)
			return
		}
	case CancelEvent:
		if idx := c.indexOf(e.Source); idx >= 0 {
			c.handleCancel(idx, e)
			return
		}
	case ConfirmationEvent:
		c.requestConfirmation(e)
		return
	}
	c.fire(ev)
}

func (c *ComplexInputForm[V]) handleAdd(idx int, e AddEvent) {
	rec := c.records[idx]
	if idx != 0 || rec.State() != domain.StateAdd {
		logging.Logger.Warn("Add from a record that is not the add slot", "index", idx, "state", rec.State())
		return
	}
	if c.readOnly {
		logging.Logger.Debug("Ignoring add on read-only form")
		return
	}

	slot, err := c.newAddSlot()
	if err != nil {
		logging.Logger.Error("Failed to create add slot", "error", err)
		return
	}

	c.fire(e)

	item := rec.Value()
	c.items = append(c.items, item)
	rec.SetViewState()

	// Fresh slot first, then saved rows in item order
	records := make([]ComplexInput[V], 0, len(c.records)+1)
	records = append(records, slot)
	records = append(records, c.records[1:]...)
	records = append(records, rec)
	c.records = records

	logging.Logger.Debug("Record added", "items", len(c.items))
	c.fire(FieldAddEvent{Item: item, Source: rec})
}

func (c *ComplexInputForm[V]) handleRemove(idx int, e RemoveEvent) {
	if idx == 0 {
		return
	}
	if c.readOnly {
		logging.Logger.Debug("Ignoring remove on read-only form")
		return
	}
	rec := c.records[idx]
	confirmation := NewConfirmation(func() {
		c.excise(rec, e)
	})
	c.requestConfirmation(ConfirmationEvent{
		Confirmation:  confirmation,
		HasSideEffect: rec.HasUnsavedData(),
		Item:          e.Item,
		Reason:        domain.ActionRemove,
		Source:        rec,
	})
}

// excise removes rec if it is still present
func (c *ComplexInputForm[V]) excise(rec ComplexInput[V], e RemoveEvent) {
	idx := c.indexOf(rec)
	if idx <= 0 {
		logging.Logger.Warn("Confirmed removal of a record no longer in the form")
		return
	}
	c.records = slices.Delete(c.records, idx, idx+1)
	c.items = slices.Delete(c.items, idx-1, idx)
	logging.Logger.Debug("Record removed", "items", len(c.items))
	c.fire(e)
}

func (c *ComplexInputForm[V]) handleCancel(idx int, e CancelEvent) {
	rec := c.records[idx]
	undo := func() {
		rec.AddUndo()
		c.fire(e)
	}
	if !rec.HasUnsavedData() {
		undo()
		return
	}
	c.requestConfirmation(ConfirmationEvent{
		Confirmation:  NewConfirmation(undo),
		HasSideEffect: true,
		Item:          e.Item,
		Reason:        domain.ActionCancel,
		Source:        rec,
	})
}

// requestConfirmation hands e to the nearest form with a confirmation
// handler. Without one the request is dropped and nothing changes.
func (c *ComplexInputForm[V]) requestConfirmation(e ConfirmationEvent) {
	if len(c.confirmationHandlers) > 0 {
		for _, h := range c.confirmationHandlers {
			h(e)
		}
		return
	}
	if c.parent != nil {
		c.parent.Notify(e)
		return
	}
	logging.Logger.Debug("No confirmation handler, dropping request", "reason", e.Reason)
}

// fire hands ev to local handlers, then to the parent
func (c *ComplexInputForm[V]) fire(ev Event) {
	for _, h := range c.eventHandlers {
		h(ev)
	}
	if action, ok := ev.(ActionEvent); ok {
		for _, h := range c.actionHandlers {
			h(action)
		}
	}
	if c.parent != nil {
		c.parent.Notify(ev)
	}
}

func (c *ComplexInputForm[V]) indexOf(source any) int {
	rec, ok := source.(ComplexInput[V])
	if !ok {
		return -1
	}
	for i, candidate := range c.records {
		if candidate == rec {
			return i
		}
	}
	return -1
}

func (c *ComplexInputForm[V]) savedRecord(i int) (ComplexInput[V], error) {
	if i < 1 || i >= len(c.records) {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidIndex, i)
	}
	if c.readOnly {
		return nil, domain.ErrReadOnly
	}
	return c.records[i], nil
}

func (c *ComplexInputForm[V]) newRecord() (ComplexInput[V], error) {
	rec, err := c.factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}
	rec.Bind(c)
	if c.required {
		rec.Form().SetFieldsRequired(true)
	}
	if c.readOnly {
		rec.Form().SetFieldsReadOnly(true)
	}
	return rec, nil
}

func (c *ComplexInputForm[V]) newAddSlot() (ComplexInput[V], error) {
	rec, err := c.newRecord()
	if err != nil {
		return nil, err
	}
	rec.SetAddState()
	return rec, nil
}

// Validate checks the structural invariants: one add slot, first, and
// one record per item in item order.
func (c *ComplexInputForm[V]) Validate() error {
	if len(c.records) != len(c.items)+1 {
		return fmt.Errorf("%d records for %d items", len(c.records), len(c.items))
	}
	if c.records[0].State() != domain.StateAdd {
		return fmt.Errorf("first record is in %s state", c.records[0].State())
	}
	for i, rec := range c.records[1:] {
		if rec.State() == domain.StateAdd {
			return fmt.Errorf("record %d is in add state", i+1)
		}
	}
	return nil
}

// Render draws the add slot on top, then the saved rows dimmed and the
// rows under edit highlighted.
func (c *ComplexInputForm[V]) Render() string {
	var rows []string
	if c.title != "" {
		rows = append(rows, c.resources.TitleStyle.Render(c.title))
	}
	for i, rec := range c.records {
		switch {
		case i == 0:
			if c.readOnly {
				continue
			}
			rows = append(rows, c.resources.AddSlotStyle.Render("+ new"), rec.View())
		case rec.State() == domain.StateEdit:
			rows = append(rows, c.resources.EditRowStyle.Render(fmt.Sprintf("%d. editing", i)), rec.View())
		default:
			rows = append(rows, c.resources.SavedRowStyle.Render(fmt.Sprintf("%d. %s", i, rec.View())))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
