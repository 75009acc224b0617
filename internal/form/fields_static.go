package form

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/renato0307/dynform/internal/domain"
)

// LabelField shows a string property without allowing edits
type LabelField[T any] struct {
	fieldState
	Accessor[T, string]
	value string
}

// NewLabelField creates a read-only text display. Only get is needed;
// the value is never written back.
func NewLabelField[T any](get func(T) string) *LabelField[T] {
	f := &LabelField[T]{Accessor: Accessor[T, string]{Get: get}}
	f.readOnly = true
	return f
}

func (f *LabelField[T]) Kind() domain.ValueKind  { return domain.KindString }
func (f *LabelField[T]) WidgetValue() string     { return f.value }
func (f *LabelField[T]) SetWidgetValue(v string) { f.value = v }

// SetReadOnly is ignored; labels are always read-only
func (f *LabelField[T]) SetReadOnly(bool) {}

func (f *LabelField[T]) Widget() huh.Field {
	return f.readOnlyWidget(f.value)
}

// SeparatorField draws a horizontal rule and binds nothing
type SeparatorField[T any] struct {
	fieldState
	Accessor[T, string]
	width int
}

// NewSeparatorField creates a line separator
func NewSeparatorField[T any](width int) *SeparatorField[T] {
	f := &SeparatorField[T]{width: width}
	f.readOnly = true
	return f
}

func (f *SeparatorField[T]) Kind() domain.ValueKind { return domain.KindString }
func (f *SeparatorField[T]) WidgetValue() string    { return "" }
func (f *SeparatorField[T]) SetWidgetValue(string) {}
func (f *SeparatorField[T]) SetReadOnly(bool) {}

func (f *SeparatorField[T]) Widget() huh.Field {
	return huh.NewNote().Title(strings.Repeat("─", f.width))
}
