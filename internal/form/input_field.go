package form

import (
	"github.com/charmbracelet/huh"

	"github.com/renato0307/dynform/internal/domain"
)

// InputField is the contract every form field satisfies. The declared Kind
// selects which typed channel a DynamicForm uses to move the value between
// the bound object and the widget.
type InputField interface {
	IsReadOnly() bool
	IsRequired() bool
	Kind() domain.ValueKind
	SetReadOnly(readOnly bool)
	SetRequired(required bool)
	Widget() huh.Field
}

// ValueField is an InputField carrying a typed channel for values of type V
// held by objects of type T.
type ValueField[T, V any] interface {
	InputField
	GetValue(obj T) V
	SetValue(obj T, v V)
	SetWidgetValue(v V)
	WidgetValue() V
}

// Labeled is implemented by fields whose widget shows the form label as its title
type Labeled interface {
	SetLabel(label string)
}

// Accessor reads and writes one property of T. Nil funcs make the
// accessor inert: Get yields the zero value and Set does nothing.
type Accessor[T, V any] struct {
	Get func(obj T) V
	Set func(obj T, v V)
}

// GetValue reads the property from obj
func (a Accessor[T, V]) GetValue(obj T) V {
	if a.Get == nil {
		var zero V
		return zero
	}
	return a.Get(obj)
}

// SetValue writes v into obj
func (a Accessor[T, V]) SetValue(obj T, v V) {
	if a.Set != nil {
		a.Set(obj, v)
	}
}

// fieldState holds the flags shared by every concrete field
type fieldState struct {
	description string
	label       string
	readOnly    bool
	required    bool
}

func (s *fieldState) IsReadOnly() bool          { return s.readOnly }
func (s *fieldState) IsRequired() bool          { return s.required }
func (s *fieldState) SetReadOnly(readOnly bool) { s.readOnly = readOnly }
func (s *fieldState) SetRequired(required bool) { s.required = required }
func (s *fieldState) SetLabel(label string)     { s.label = label }

// Label returns the title shown by the widget
func (s *fieldState) Label() string { return s.label }

// readOnlyWidget renders a value that cannot be edited
func (s *fieldState) readOnlyWidget(display string) huh.Field {
	return huh.NewNote().
		Title(s.label).
		Description(display)
}
