package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// RecordForm edits one record through the huh form built from its fields.
// Widget edits land in the record's fields; the caller commits or discards
// them once the form completes.
type RecordForm struct {
	Cancelled bool
	Completed bool
	form      *huh.Form
	index     int
}

// NewRecordForm wraps form, which edits the record at index
func NewRecordForm(form *huh.Form, index int) *RecordForm {
	return &RecordForm{form: form, index: index}
}

func (rf *RecordForm) Init() tea.Cmd {
	return rf.form.Init()
}

func (rf *RecordForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle Escape or Ctrl+C to cancel
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			rf.Cancelled = true
			rf.Completed = true
			return rf, nil
		}
	}

	form, cmd := rf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		rf.form = f
	}

	if rf.form.State == huh.StateCompleted {
		rf.Completed = true
		return rf, nil
	}

	return rf, cmd
}

func (rf *RecordForm) View() string {
	if rf.form != nil {
		return rf.form.View()
	}
	return ""
}

// Focused returns the widget under the cursor
func (rf *RecordForm) Focused() huh.Field {
	if rf.form == nil {
		return nil
	}
	return rf.form.GetFocusedField()
}

// Index returns the record the form edits
func (rf *RecordForm) Index() int {
	return rf.index
}
