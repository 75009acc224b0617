package form

import (
	"github.com/charmbracelet/huh"

	"github.com/renato0307/dynform/internal/domain"
)

// TextField is a single-line string input
type TextField[T any] struct {
	fieldState
	Accessor[T, string]
	charLimit   int
	placeholder string
	value       string
}

// NewTextField creates a text field bound through get and set
func NewTextField[T any](get func(T) string, set func(T, string)) *TextField[T] {
	return &TextField[T]{Accessor: Accessor[T, string]{Get: get, Set: set}}
}

// Placeholder sets the hint shown while the input is empty
func (f *TextField[T]) Placeholder(p string) *TextField[T] {
	f.placeholder = p
	return f
}

// CharLimit caps the input length
func (f *TextField[T]) CharLimit(n int) *TextField[T] {
	f.charLimit = n
	return f
}

// Description sets the help line under the title
func (f *TextField[T]) Description(d string) *TextField[T] {
	f.description = d
	return f
}

func (f *TextField[T]) Kind() domain.ValueKind  { return domain.KindString }
func (f *TextField[T]) WidgetValue() string     { return f.value }
func (f *TextField[T]) SetWidgetValue(v string) { f.value = v }

func (f *TextField[T]) Widget() huh.Field {
	if f.readOnly {
		return f.readOnlyWidget(f.value)
	}
	input := huh.NewInput().
		Title(f.label).
		Description(f.description).
		Placeholder(f.placeholder).
		Value(&f.value)
	if f.charLimit > 0 {
		input = input.CharLimit(f.charLimit)
	}
	return input
}

// TextAreaField is a multi-line string input
type TextAreaField[T any] struct {
	fieldState
	Accessor[T, string]
	lines int
	value string
}

// NewTextAreaField creates a multi-line text field
func NewTextAreaField[T any](get func(T) string, set func(T, string)) *TextAreaField[T] {
	return &TextAreaField[T]{Accessor: Accessor[T, string]{Get: get, Set: set}, lines: 3}
}

// Lines sets the visible height
func (f *TextAreaField[T]) Lines(n int) *TextAreaField[T] {
	f.lines = n
	return f
}

func (f *TextAreaField[T]) Kind() domain.ValueKind  { return domain.KindString }
func (f *TextAreaField[T]) WidgetValue() string     { return f.value }
func (f *TextAreaField[T]) SetWidgetValue(v string) { f.value = v }

func (f *TextAreaField[T]) Widget() huh.Field {
	if f.readOnly {
		return f.readOnlyWidget(f.value)
	}
	return huh.NewText().
		Title(f.label).
		Lines(f.lines).
		Value(&f.value)
}
