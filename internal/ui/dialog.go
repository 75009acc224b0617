package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/dynform/internal/theme"
)

// Dialog wraps any tea.Model content and adds a header with its title.
//
// Usage:
//
//	dialog := NewDialog("Remove record", NewConfirmDialog(event), resources)
//	dialog.Init()       // Delegates to the content's Init()
//	dialog.Update(msg)  // Delegates to the content's Update(msg)
//	dialog.View()       // Returns header + content View()
type Dialog struct {
	content   tea.Model
	resources *theme.Resources
	title     string
}

// NewDialog creates a new dialog wrapper
func NewDialog(title string, content tea.Model, resources *theme.Resources) *Dialog {
	return &Dialog{
		content:   content,
		resources: resources,
		title:     title,
	}
}

// Init delegates to wrapped content's Init method.
func (d *Dialog) Init() tea.Cmd {
	return d.content.Init()
}

// Update delegates to wrapped content's Update method.
// The returned tea.Model is the Dialog itself with updated content.
func (d *Dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updatedContent, cmd := d.content.Update(msg)
	d.content = updatedContent
	return d, cmd
}

// View prepends the dialog header to the wrapped content's view.
func (d *Dialog) View() string {
	return d.resources.TitleStyle.Render(d.title) + "\n" + d.content.View()
}

// Content returns the wrapped content for type assertion.
func (d *Dialog) Content() tea.Model {
	return d.content
}
