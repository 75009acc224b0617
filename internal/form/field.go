package form

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/dynform/internal/theme"
)

// Field pairs one InputField with its label, required marker, visibility
// and layout inside a DynamicForm.
type Field struct {
	embedded        bool
	input           InputField
	label           string
	layout          theme.Layout
	readOnly        bool
	requiredVisible bool
	resources       *theme.Resources
	styleNames      []string
	visible         bool
}

func newField(input InputField, label string, resources *theme.Resources) *Field {
	f := &Field{
		input:     input,
		label:     label,
		layout:    resources.Layout,
		resources: resources,
		visible:   true,
	}
	f.redraw()
	return f
}

// Input returns the wrapped input field
func (f *Field) Input() InputField { return f.input }

// Label returns the label text
func (f *Field) Label() string { return f.label }

// Layout returns the label placement
func (f *Field) Layout() theme.Layout { return f.layout }

// Embedded reports whether the field renders without its label row
func (f *Field) Embedded() bool { return f.embedded }

// RequiredVisible reports whether the required marker is shown
func (f *Field) RequiredVisible() bool { return f.requiredVisible }

// Visible reports whether the field is rendered at all
func (f *Field) Visible() bool { return f.visible }

// StyleNames returns the extra style names applied to the label
func (f *Field) StyleNames() []string { return f.styleNames }

func (f *Field) setLabel(label string) {
	f.label = label
	if l, ok := f.input.(Labeled); ok {
		l.SetLabel(label)
	}
}

func (f *Field) addStyleName(name string) {
	for _, n := range f.styleNames {
		if n == name {
			return
		}
	}
	f.styleNames = append(f.styleNames, name)
}

func (f *Field) setReadOnly(readOnly bool) {
	f.input.SetReadOnly(readOnly)
	f.readOnly = f.input.IsReadOnly()
}

// redraw re-reads the input's flags
func (f *Field) redraw() {
	f.requiredVisible = f.input.IsRequired()
	f.readOnly = f.input.IsReadOnly()
}

// View renders the field. Hidden fields render as an empty string.
func (f *Field) View() string {
	if !f.visible {
		return ""
	}

	widget := f.input.Widget().WithTheme(f.resources.FieldTheme).View()
	if f.readOnly {
		widget = f.resources.ReadOnlyStyle.Render(widget)
	}
	if f.embedded {
		return widget
	}

	labelStyle := f.resources.Compose(f.resources.LabelStyle, f.styleNames)
	label := labelStyle.Render(f.label)
	if f.requiredVisible {
		label += " " + f.resources.RequiredStyle.Render(f.resources.RequiredMarker)
	}

	if f.layout == theme.LayoutHorizontal {
		label = lipgloss.NewStyle().Width(f.resources.LabelWidth).Render(label)
		return lipgloss.JoinHorizontal(lipgloss.Top, label, widget)
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, widget)
}
