package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/dynform/internal/complexinput"
	"github.com/renato0307/dynform/internal/config"
	"github.com/renato0307/dynform/internal/domain"
	"github.com/renato0307/dynform/internal/form"
	"github.com/renato0307/dynform/internal/logging"
	"github.com/renato0307/dynform/internal/theme"
)

// ActionMark is the caller-defined action raised by the mark key
const ActionMark = "mark"

type uiState int

const (
	stateList uiState = iota
	stateConfirming
	stateEditing
	stateHelp
	statePickingNested
)

// frame is one list on the navigation stack
type frame struct {
	list     complexinput.Collection
	selected int
}

// Options configure a Model
type Options struct {
	DevMode         bool
	ErrorClearDelay time.Duration
	Keys            config.KeyBindingsConfig
	Resources       *theme.Resources
	Title           string

	// SkipRemoveConfirmation confirms removals without asking
	SkipRemoveConfirmation bool
}

// Model hosts a ComplexInputForm and lets the user walk it and its nested lists
type Model struct {
	confirmDialog *Dialog
	confirmations []complexinput.ConfirmationEvent
	devMode       bool
	editDialog    *Dialog
	errorManager  *ErrorManager
	frames        []frame
	height        int
	help          help.Model
	helpScreen    *Dialog
	keys          KeyMap
	lastEdit      frame
	marked        map[string]bool
	nestedPick    int
	nestedPicker  *huh.Form
	resources     *theme.Resources
	root          rootControls
	state         uiState
	status        string
	title         string
	width         int
}

// rootControls are the root form operations that need its record type
type rootControls struct {
	isReadOnly  func() bool
	isRequired  func() bool
	setReadOnly func(bool)
	setRequired func(bool)
}

// NewModel creates a model over root. It registers itself as root's
// confirmation, event and action handler.
func NewModel[V any](root *complexinput.ComplexInputForm[V], opts Options) *Model {
	if opts.Resources == nil {
		opts.Resources = theme.DefaultResources()
	}
	if opts.ErrorClearDelay == 0 {
		opts.ErrorClearDelay = time.Duration(config.DefaultErrorClearDelay) * time.Second
	}
	if opts.Title == "" {
		opts.Title = root.Title()
	}

	m := &Model{
		devMode:      opts.DevMode,
		errorManager: NewErrorManager(opts.ErrorClearDelay),
		frames:       []frame{{list: root}},
		help:         help.New(),
		keys:         NewKeyMap(opts.Keys),
		marked:       make(map[string]bool),
		resources:    opts.Resources,
		root: rootControls{
			isReadOnly:  root.IsReadOnly,
			isRequired:  root.IsRequired,
			setReadOnly: root.SetReadOnly,
			setRequired: root.SetRequired,
		},
		state: stateList,
		title: opts.Title,
	}

	root.AddConfirmationHandler(func(e complexinput.ConfirmationEvent) {
		if opts.SkipRemoveConfirmation && e.Reason == domain.ActionRemove {
			e.Confirmation.Confirm()
			return
		}
		m.confirmations = append(m.confirmations, e)
	})
	root.AddEventHandler(m.onEvent)
	root.AddActionHandler(m.onAction)

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	if msg, ok := msg.(clearErrorMsg); ok {
		m.errorManager.Clear(msg)
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Application.ForceQuit) {
		return m, tea.Quit
	}
	if msg, ok := msg.(form.PickerReadyMsg); ok {
		// may arrive after the edit dialog closed
		if m.lastEdit.list != nil {
			m.lastEdit.list.Route(m.lastEdit.selected, nil, msg)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateList:
		cmd = m.updateList(msg)
	case stateConfirming:
		cmd = m.updateConfirming(msg)
	case stateEditing:
		cmd = m.updateEditing(msg)
	case stateHelp:
		cmd = m.updateHelp(msg)
	case statePickingNested:
		cmd = m.updatePickingNested(msg)
	}

	return m, tea.Batch(cmd, m.showNextConfirmation())
}

func (m *Model) updateList(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	top := m.top()
	switch {
	case key.Matches(keyMsg, m.keys.Application.Quit):
		return tea.Quit

	case key.Matches(keyMsg, m.keys.Application.Help):
		m.helpScreen = NewDialog("Keyboard shortcuts", NewHelpScreen(&m.keys, m.resources), m.resources)
		m.state = stateHelp
		initCmd := m.helpScreen.Init()
		_, sizeCmd := m.helpScreen.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return tea.Batch(initCmd, sizeCmd)

	case key.Matches(keyMsg, m.keys.Navigation.Up):
		if top.selected > 0 {
			top.selected--
		}

	case key.Matches(keyMsg, m.keys.Navigation.Down):
		if top.selected < top.list.Size()-1 {
			top.selected++
		}

	case key.Matches(keyMsg, m.keys.Navigation.Back):
		if len(m.frames) > 1 {
			m.frames = m.frames[:len(m.frames)-1]
		}

	case key.Matches(keyMsg, m.keys.Navigation.Nested):
		return m.openNested()

	case key.Matches(keyMsg, m.keys.Record.Open):
		return m.openRecord()

	case key.Matches(keyMsg, m.keys.Record.Remove):
		return m.report(top.list.Remove(top.selected))

	case key.Matches(keyMsg, m.keys.Record.Discard):
		return m.report(top.list.Cancel(top.selected))

	case key.Matches(keyMsg, m.keys.Record.Mark):
		return m.report(top.list.Action(top.selected, ActionMark, time.Now()))

	case key.Matches(keyMsg, m.keys.Application.ToggleReadOnly):
		m.root.setReadOnly(!m.root.isReadOnly())
		m.status = fmt.Sprintf("read-only: %t", m.root.isReadOnly())

	case key.Matches(keyMsg, m.keys.Application.ToggleRequired):
		m.root.setRequired(!m.root.isRequired())
		m.status = fmt.Sprintf("required: %t", m.root.isRequired())
	}
	return nil
}

// openRecord starts editing the selected record, or resumes an edit in progress
func (m *Model) openRecord() tea.Cmd {
	top := m.top()
	i := top.selected
	if top.list.StateAt(i) == domain.StateView {
		if err := top.list.Edit(i); err != nil {
			return m.report(err)
		}
	}
	f, err := top.list.BuildForm(i)
	if err != nil {
		return m.report(err)
	}

	title := "New record"
	if i > 0 {
		title = fmt.Sprintf("Edit record %d", i)
	}
	if t := top.list.Title(); t != "" {
		title = t + ": " + strings.ToLower(title)
	}
	m.editDialog = NewDialog(title, NewRecordForm(f, i), m.resources)
	m.lastEdit = frame{list: top.list, selected: i}
	m.state = stateEditing
	return m.editDialog.Init()
}

func (m *Model) updateEditing(msg tea.Msg) tea.Cmd {
	var routed tea.Cmd
	if rf, ok := m.editDialog.Content().(*RecordForm); ok {
		var consumed bool
		consumed, routed = m.top().list.Route(rf.Index(), rf.Focused(), msg)
		if consumed {
			return routed
		}
	}

	_, cmd := m.editDialog.Update(msg)
	rf, ok := m.editDialog.Content().(*RecordForm)
	if !ok || !rf.Completed {
		return tea.Batch(routed, cmd)
	}

	m.state = stateList
	m.editDialog = nil
	top := m.top()
	i := rf.Index()

	if rf.Cancelled {
		// The record stays in its state; the edits remain pending until
		// saved or discarded from the list
		return nil
	}
	if i == 0 {
		return m.report(top.list.Add())
	}
	return m.report(top.list.Save(i))
}

// openNested pushes a nested list of the selected record onto the stack
func (m *Model) openNested() tea.Cmd {
	top := m.top()
	children := top.list.Children(top.selected)
	if len(children) == 0 {
		return m.report(errors.New("the record has no nested lists"))
	}
	if top.list.StateAt(top.selected) == domain.StateView {
		return m.report(errors.New("edit the record before changing its nested lists"))
	}
	if len(children) == 1 {
		m.push(children[0])
		return nil
	}

	options := make([]huh.Option[int], len(children))
	for i, c := range children {
		options[i] = huh.NewOption(c.Title(), i)
	}
	m.nestedPick = 0
	m.nestedPicker = huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Open list").
			Options(options...).
			Value(&m.nestedPick),
	)).WithTheme(m.resources.FieldTheme)
	m.state = statePickingNested
	return m.nestedPicker.Init()
}

func (m *Model) updatePickingNested(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.state = stateList
		m.nestedPicker = nil
		return nil
	}

	updated, cmd := m.nestedPicker.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.nestedPicker = f
	}
	if m.nestedPicker.State != huh.StateCompleted {
		return cmd
	}

	m.state = stateList
	m.nestedPicker = nil
	top := m.top()
	children := top.list.Children(top.selected)
	if m.nestedPick >= 0 && m.nestedPick < len(children) {
		m.push(children[m.nestedPick])
	}
	return nil
}

func (m *Model) updateConfirming(msg tea.Msg) tea.Cmd {
	_, cmd := m.confirmDialog.Update(msg)
	cd, ok := m.confirmDialog.Content().(*ConfirmDialog)
	if !ok || !cd.Completed {
		return cmd
	}
	m.confirmDialog = nil
	m.state = stateList
	m.clampSelection()
	return nil
}

func (m *Model) updateHelp(msg tea.Msg) tea.Cmd {
	_, cmd := m.helpScreen.Update(msg)
	if hs, ok := m.helpScreen.Content().(*HelpScreen); ok && hs.Completed {
		m.helpScreen = nil
		m.state = stateList
		return nil
	}
	return cmd
}

// showNextConfirmation opens the dialog for the oldest queued confirmation
func (m *Model) showNextConfirmation() tea.Cmd {
	if m.state != stateList || len(m.confirmations) == 0 {
		return nil
	}
	e := m.confirmations[0]
	m.confirmations = m.confirmations[1:]
	if e.Confirmation.Outcome() != domain.OutcomePending {
		return nil
	}

	m.confirmDialog = NewDialog(confirmationTitle(e), NewConfirmDialog(e), m.resources)
	m.state = stateConfirming
	return m.confirmDialog.Init()
}

func (m *Model) onEvent(ev complexinput.Event) {
	switch e := ev.(type) {
	case complexinput.FieldAddEvent:
		m.status = "record added"
	case complexinput.RemoveEvent:
		m.status = "record removed"
		m.clampSelection()
	case complexinput.CancelEvent:
		m.status = "changes discarded"
	case complexinput.ActionEvent:
		logging.Logger.Debug("Action reached the root", "name", e.Name)
	}
}

func (m *Model) onAction(e complexinput.ActionEvent) {
	if e.Name != ActionMark {
		return
	}
	summary := fmt.Sprint(e.Item)
	if src, ok := e.Source.(interface{ View() string }); ok {
		summary = src.View()
	}
	m.marked[summary] = !m.marked[summary]
	m.status = "marked: " + summary
	if !m.marked[summary] {
		m.status = "unmarked: " + summary
	}
}

// report shows err, if any, and schedules it to clear
func (m *Model) report(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	logging.Logger.Debug("Operation failed", "error", err)
	return m.errorManager.SetError(err)
}

func (m *Model) push(list complexinput.Collection) {
	m.frames = append(m.frames, frame{list: list})
}

func (m *Model) top() *frame {
	return &m.frames[len(m.frames)-1]
}

// clampSelection keeps every frame's selection inside its list
func (m *Model) clampSelection() {
	for i := range m.frames {
		f := &m.frames[i]
		if f.selected >= f.list.Size() {
			f.selected = f.list.Size() - 1
		}
		if f.selected < 0 {
			f.selected = 0
		}
	}
}

// Selected returns the selected index in the innermost list
func (m *Model) Selected() int {
	return m.top().selected
}

// Depth returns the number of lists on the navigation stack
func (m *Model) Depth() int {
	return len(m.frames)
}

// Status returns the last status line
func (m *Model) Status() string {
	return m.status
}

func (m *Model) View() string {
	switch m.state {
	case stateConfirming:
		return compositeOverlay(m.listView(), m.confirmDialog.View(), m.width, m.height)
	case stateEditing:
		return m.editDialog.View()
	case stateHelp:
		return m.helpScreen.View()
	case statePickingNested:
		return bottomAnchoredOverlay(m.listView(), m.nestedPicker.View(), m.width, m.height)
	}
	return m.listView()
}

func (m *Model) listView() string {
	r := m.resources
	var b strings.Builder

	b.WriteString(renderHeader(m.devMode, r))
	b.WriteString(r.TitleStyle.Render(m.breadcrumb()))
	b.WriteString("\n")

	top := m.top()
	for i := 0; i < top.list.Size(); i++ {
		cursor := "  "
		if i == top.selected {
			cursor = "› "
		}
		b.WriteString(cursor + m.rowView(top.list, i) + "\n")
	}

	if m.errorManager.HasError() {
		b.WriteString("\n" + r.ErrorStyle.Render(formatErrorForDisplay(m.errorManager.GetError(), m.width)) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + r.LabelStyle.Render(m.status) + "\n")
	}

	b.WriteString(r.HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) rowView(list complexinput.Collection, i int) string {
	r := m.resources
	switch list.StateAt(i) {
	case domain.StateAdd:
		label := "+ new"
		if list.IsReadOnly() {
			return r.ReadOnlyStyle.Render(label + " (read-only)")
		}
		if m.top().selected == i {
			return r.AddSlotStyle.Render(label) + "\n" + indent(list.ViewAt(i))
		}
		return r.AddSlotStyle.Render(label)
	case domain.StateEdit:
		return r.EditRowStyle.Render(fmt.Sprintf("%d. editing", i)) + "\n" + indent(list.ViewAt(i))
	}

	summary := list.ViewAt(i)
	row := r.SavedRowStyle.Render(fmt.Sprintf("%d. %s", i, summary))
	if m.marked[summary] {
		row += " " + r.RequiredStyle.Render("●")
	}
	return row
}

func (m *Model) breadcrumb() string {
	parts := []string{m.title}
	for _, f := range m.frames[1:] {
		parts = append(parts, f.list.Title())
	}
	return strings.Join(parts, " › ")
}

func indent(s string) string {
	return lipgloss.NewStyle().PaddingLeft(4).Render(s)
}
