package form

import (
	"fmt"
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/dynform/internal/domain"
	"github.com/renato0307/dynform/internal/logging"
	"github.com/renato0307/dynform/internal/theme"
)

// binding is the typed channel resolved for a field at registration
type binding[T any] struct {
	current func() any      // widget value
	pull    func(obj T)     // object -> widget
	push    func(obj T)     // widget -> object
	stored  func(obj T) any // object value
}

type entry[T any] struct {
	bind  binding[T]
	field *Field
	input InputField
	onKey KeyHandler
}

// KeyHandler observes key presses on a focused field. The key still reaches
// the field's widget afterwards.
type KeyHandler func(msg tea.KeyMsg) tea.Cmd

// MessageHandler is implemented by fields that consume messages addressed
// to them, such as PickerReadyMsg
type MessageHandler interface {
	HandleMsg(msg tea.Msg) bool
}

// FieldOption customizes a field at registration
type FieldOption func(*Field)

// Embedded renders the field without its label row
func Embedded() FieldOption {
	return func(f *Field) { f.embedded = true }
}

// WithStyle adds a named style to the field's label
func WithStyle(name string) FieldOption {
	return func(f *Field) {
		if name != "" {
			f.addStyleName(name)
		}
	}
}

// WithLayout overrides the form's default label placement
func WithLayout(layout theme.Layout) FieldOption {
	return func(f *Field) { f.layout = layout }
}

// DynamicForm binds an ordered set of input fields to one data object of type T.
// The object is shared, not copied: GetData writes widget values into it.
type DynamicForm[T any] struct {
	data      T
	entries   []*entry[T]
	hasData   bool
	index     map[InputField]*entry[T]
	readOnly  bool
	resources *theme.Resources
	validator *Validator
	widgets   map[huh.Field]InputField
}

// NewDynamicForm creates an empty form. A nil resources uses the defaults.
func NewDynamicForm[T any](resources *theme.Resources) *DynamicForm[T] {
	if resources == nil {
		resources = theme.DefaultResources()
	}
	return &DynamicForm[T]{
		index:     make(map[InputField]*entry[T]),
		resources: resources,
		validator: NewValidator(),
	}
}

// Resources returns the presentation configuration
func (d *DynamicForm[T]) Resources() *theme.Resources {
	return d.resources
}

// Validator returns the form's rule registry
func (d *DynamicForm[T]) Validator() *Validator {
	return d.validator
}

// AddField appends field to the form
func (d *DynamicForm[T]) AddField(field InputField, label string, opts ...FieldOption) error {
	return d.InsertField(field, label, len(d.entries), opts...)
}

// InsertField registers field before position before. Out-of-range
// positions append.
func (d *DynamicForm[T]) InsertField(field InputField, label string, before int, opts ...FieldOption) error {
	if field == nil {
		return fmt.Errorf("%w: nil field", domain.ErrUnsupportedFieldType)
	}
	if _, ok := d.index[field]; ok {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateField, label)
	}

	bind, err := resolveBinding[T](field)
	if err != nil {
		logging.Logger.Error("Rejected field", "label", label, "kind", field.Kind().String(), "error", err)
		return err
	}

	if d.readOnly {
		field.SetReadOnly(true)
	}
	wrapper := newField(field, label, d.resources)
	wrapper.setLabel(label)
	for _, opt := range opts {
		opt(wrapper)
	}

	e := &entry[T]{bind: bind, field: wrapper, input: field}
	if before < 0 || before > len(d.entries) {
		before = len(d.entries)
	}
	d.entries = append(d.entries, nil)
	copy(d.entries[before+1:], d.entries[before:])
	d.entries[before] = e
	d.index[field] = e

	if d.hasData {
		bind.pull(d.data)
	}

	logging.Logger.Debug("Field registered", "label", label, "kind", field.Kind().String(), "position", before)
	return nil
}

// RemoveField unregisters field. Returns false if it was not registered.
func (d *DynamicForm[T]) RemoveField(field InputField) bool {
	e, ok := d.index[field]
	if !ok {
		return false
	}
	delete(d.index, field)
	for i, candidate := range d.entries {
		if candidate == e {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			break
		}
	}
	d.validator.RemoveField(field)
	return true
}

// Len returns the number of registered fields
func (d *DynamicForm[T]) Len() int {
	return len(d.entries)
}

// Fields returns the registered input fields in render order
func (d *DynamicForm[T]) Fields() []InputField {
	fields := make([]InputField, len(d.entries))
	for i, e := range d.entries {
		fields[i] = e.input
	}
	return fields
}

// Field returns the wrapper of a registered input
func (d *DynamicForm[T]) Field(field InputField) (*Field, error) {
	e, err := d.lookup(field)
	if err != nil {
		return nil, err
	}
	return e.field, nil
}

// IndexOf returns the render position of field, or -1
func (d *DynamicForm[T]) IndexOf(field InputField) int {
	for i, e := range d.entries {
		if e.input == field {
			return i
		}
	}
	return -1
}

// SetData stores obj and pulls every field's value out of it
func (d *DynamicForm[T]) SetData(obj T) {
	d.data = obj
	d.hasData = true
	for _, e := range d.entries {
		e.bind.pull(obj)
	}
}

// GetData pushes every widget value into the stored object and returns it.
// Before any SetData it returns the zero value untouched.
func (d *DynamicForm[T]) GetData() T {
	if !d.hasData {
		return d.data
	}
	for _, e := range d.entries {
		e.bind.push(d.data)
	}
	return d.data
}

// Data returns the stored object without flushing widget values
func (d *DynamicForm[T]) Data() T {
	return d.data
}

// HasData reports whether SetData was called
func (d *DynamicForm[T]) HasData() bool {
	return d.hasData
}

// Dirty reports whether any widget value differs from the stored object
func (d *DynamicForm[T]) Dirty() bool {
	if !d.hasData {
		return false
	}
	for _, e := range d.entries {
		if !valuesEqual(e.bind.current(), e.bind.stored(d.data)) {
			return true
		}
	}
	return false
}

// SetFieldsReadOnly propagates the read-only flag to every field,
// including fields added later.
func (d *DynamicForm[T]) SetFieldsReadOnly(readOnly bool) {
	d.readOnly = readOnly
	for _, e := range d.entries {
		e.field.setReadOnly(readOnly)
	}
}

// IsReadOnly reports the form-wide read-only flag
func (d *DynamicForm[T]) IsReadOnly() bool {
	return d.readOnly
}

// SetFieldsRequired sets the required flag on every field and redraws
func (d *DynamicForm[T]) SetFieldsRequired(required bool) {
	for _, e := range d.entries {
		e.input.SetRequired(required)
	}
	d.Redraw()
}

// Redraw re-evaluates each field's required marker and read-only style
func (d *DynamicForm[T]) Redraw() {
	for _, e := range d.entries {
		e.field.redraw()
	}
}

// DisplayField redraws a single field
func (d *DynamicForm[T]) DisplayField(field InputField) error {
	e, err := d.lookup(field)
	if err != nil {
		return err
	}
	e.field.redraw()
	return nil
}

// SetFieldLabelText replaces a field's label
func (d *DynamicForm[T]) SetFieldLabelText(field InputField, label string) error {
	e, err := d.lookup(field)
	if err != nil {
		return err
	}
	e.field.setLabel(label)
	return nil
}

// AddStyleNameToField adds a named style to a field's label
func (d *DynamicForm[T]) AddStyleNameToField(field InputField, name string) error {
	e, err := d.lookup(field)
	if err != nil {
		return err
	}
	e.field.addStyleName(name)
	return nil
}

// SetFieldVisible shows or hides a field. Hidden fields skip validation.
func (d *DynamicForm[T]) SetFieldVisible(field InputField, visible bool) error {
	e, err := d.lookup(field)
	if err != nil {
		return err
	}
	e.field.visible = visible
	return nil
}

// IsFieldVisible reports a registered field's visibility
func (d *DynamicForm[T]) IsFieldVisible(field InputField) bool {
	e, ok := d.index[field]
	return ok && e.field.visible
}

// SetKeyDownFieldsHandler sets the key handler for one field
func (d *DynamicForm[T]) SetKeyDownFieldsHandler(field InputField, handler KeyHandler) error {
	e, err := d.lookup(field)
	if err != nil {
		return err
	}
	e.onKey = handler
	return nil
}

// HandleKey routes a key press to the field's handler.
// Returns false when the field has no handler.
func (d *DynamicForm[T]) HandleKey(field InputField, msg tea.KeyMsg) (bool, tea.Cmd) {
	e, ok := d.index[field]
	if !ok || e.onKey == nil {
		return false, nil
	}
	return true, e.onKey(msg)
}

// FieldFor returns the field whose widget the last Build produced
func (d *DynamicForm[T]) FieldFor(widget huh.Field) (InputField, bool) {
	if widget == nil {
		return nil, false
	}
	field, ok := d.widgets[widget]
	return field, ok
}

// Route delivers msg to the form's fields. A key press runs the handler of
// the field behind the focused widget and is never consumed. Other messages
// go to every MessageHandler field; consumed reports whether one took it.
func (d *DynamicForm[T]) Route(focused huh.Field, msg tea.Msg) (consumed bool, cmd tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		field, ok := d.FieldFor(focused)
		if !ok {
			return false, nil
		}
		_, cmd = d.HandleKey(field, keyMsg)
		return false, cmd
	}
	for _, e := range d.entries {
		if h, ok := e.input.(MessageHandler); ok && h.HandleMsg(msg) {
			return true, nil
		}
	}
	return false, nil
}

// AddRule registers a validation rule for field
func (d *DynamicForm[T]) AddRule(field InputField, rule Rule, message string) error {
	e, err := d.lookup(field)
	if err != nil {
		return err
	}
	d.validator.AddField(field, rule, e.bind.current, message)
	return nil
}

// DoValidation returns the first failing rule in render order, or nil.
// Hidden fields are skipped.
func (d *DynamicForm[T]) DoValidation() error {
	verr := d.validator.Validate(d.Fields(), func(field InputField) bool {
		return !d.IsFieldVisible(field)
	})
	if verr == nil {
		return nil
	}
	if e, ok := d.index[verr.Field]; ok {
		verr.Label = e.field.label
	}
	logging.Logger.Debug("Validation failed", "field", verr.Label, "rule", verr.RuleID)
	return verr
}

// View renders every visible field
func (d *DynamicForm[T]) View() string {
	views := make([]string, 0, len(d.entries))
	for _, e := range d.entries {
		if v := e.field.View(); v != "" {
			views = append(views, v)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

// Build returns an interactive huh form over the visible fields. Edits land
// in the widget values; call GetData to commit them.
func (d *DynamicForm[T]) Build() *huh.Form {
	fields := make([]huh.Field, 0, len(d.entries))
	d.widgets = make(map[huh.Field]InputField, len(d.entries))
	for _, e := range d.entries {
		if !e.field.visible {
			continue
		}
		w := e.input.Widget()
		d.widgets[w] = e.input
		fields = append(fields, w)
	}
	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(d.resources.FieldTheme)
}

func (d *DynamicForm[T]) lookup(field InputField) (*entry[T], error) {
	e, ok := d.index[field]
	if !ok {
		return nil, domain.ErrUnknownField
	}
	return e, nil
}

// resolveBinding matches the declared kind against the closed set of
// supported kinds and captures the typed channel.
func resolveBinding[T any](field InputField) (binding[T], error) {
	switch field.Kind() {
	case domain.KindString:
		return bindAs[T, string](field)
	case domain.KindDate:
		return bindAs[T, time.Time](field)
	case domain.KindBool:
		return bindAs[T, bool](field)
	case domain.KindList:
		return bindAs[T, []string](field)
	case domain.KindDateRange:
		return bindAs[T, domain.DateRange](field)
	case domain.KindLong:
		return bindAs[T, int64](field)
	case domain.KindDouble:
		return bindAs[T, float64](field)
	case domain.KindObject:
		return bindAs[T, any](field)
	case domain.KindInteger:
		return bindAs[T, int](field)
	}
	return binding[T]{}, fmt.Errorf("%w: kind %d", domain.ErrUnsupportedFieldType, int(field.Kind()))
}

func bindAs[T, V any](field InputField) (binding[T], error) {
	vf, ok := field.(ValueField[T, V])
	if !ok {
		return binding[T]{}, fmt.Errorf("%w: %T declares %s but does not carry that value type",
			domain.ErrUnsupportedFieldType, field, field.Kind())
	}
	return binding[T]{
		current: func() any { return vf.WidgetValue() },
		pull:    func(obj T) { vf.SetWidgetValue(vf.GetValue(obj)) },
		push:    func(obj T) { vf.SetValue(obj, vf.WidgetValue()) },
		stored:  func(obj T) any { return vf.GetValue(obj) },
	}, nil
}

func valuesEqual(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	if ra, ok := a.(domain.DateRange); ok {
		rb, ok := b.(domain.DateRange)
		return ok && ra.Start.Equal(rb.Start) && ra.End.Equal(rb.End)
	}
	return reflect.DeepEqual(a, b)
}
