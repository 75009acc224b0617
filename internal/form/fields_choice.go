package form

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/renato0307/dynform/internal/domain"
)

// CheckboxField is a yes/no toggle
type CheckboxField[T any] struct {
	fieldState
	Accessor[T, bool]
	affirmative string
	negative    string
	value       bool
}

// NewCheckboxField creates a boolean field
func NewCheckboxField[T any](get func(T) bool, set func(T, bool)) *CheckboxField[T] {
	return &CheckboxField[T]{
		Accessor:    Accessor[T, bool]{Get: get, Set: set},
		affirmative: "Yes",
		negative:    "No",
	}
}

// Labels sets the affirmative and negative button labels
func (f *CheckboxField[T]) Labels(affirmative, negative string) *CheckboxField[T] {
	f.affirmative = affirmative
	f.negative = negative
	return f
}

func (f *CheckboxField[T]) Kind() domain.ValueKind { return domain.KindBool }
func (f *CheckboxField[T]) WidgetValue() bool      { return f.value }
func (f *CheckboxField[T]) SetWidgetValue(v bool)  { f.value = v }

// Toggle flips the current widget value
func (f *CheckboxField[T]) Toggle() {
	if !f.readOnly {
		f.value = !f.value
	}
}

func (f *CheckboxField[T]) Widget() huh.Field {
	if f.readOnly {
		display := f.negative
		if f.value {
			display = f.affirmative
		}
		return f.readOnlyWidget(display)
	}
	return huh.NewConfirm().
		Title(f.label).
		Affirmative(f.affirmative).
		Negative(f.negative).
		Value(&f.value)
}

// Choice is one option of a dropdown
type Choice struct {
	Label string
	Value string
}

// DropdownField selects one string out of a fixed list
type DropdownField[T any] struct {
	fieldState
	Accessor[T, string]
	choices []Choice
	value   string
}

// NewDropdownField creates a string dropdown
func NewDropdownField[T any](choices []Choice, get func(T) string, set func(T, string)) *DropdownField[T] {
	return &DropdownField[T]{
		Accessor: Accessor[T, string]{Get: get, Set: set},
		choices:  choices,
	}
}

func (f *DropdownField[T]) Kind() domain.ValueKind  { return domain.KindString }
func (f *DropdownField[T]) WidgetValue() string     { return f.value }
func (f *DropdownField[T]) SetWidgetValue(v string) { f.value = v }

// Choices returns the available options
func (f *DropdownField[T]) Choices() []Choice {
	return f.choices
}

func (f *DropdownField[T]) display() string {
	for _, c := range f.choices {
		if c.Value == f.value {
			return c.Label
		}
	}
	return f.value
}

func (f *DropdownField[T]) Widget() huh.Field {
	if f.readOnly {
		return f.readOnlyWidget(f.display())
	}
	options := make([]huh.Option[string], 0, len(f.choices))
	for _, c := range f.choices {
		options = append(options, huh.NewOption(c.Label, c.Value))
	}
	return huh.NewSelect[string]().
		Title(f.label).
		Options(options...).
		Value(&f.value)
}

// ObjectChoice is one option of an object dropdown
type ObjectChoice struct {
	Label string
	Value any
}

// ObjectDropdownField selects one arbitrary value object out of a list.
// Choices are matched by index, so values need not be comparable.
type ObjectDropdownField[T any] struct {
	fieldState
	Accessor[T, any]
	choices  []ObjectChoice
	selected int
	value    any
}

// NewObjectDropdownField creates a dropdown over arbitrary objects
func NewObjectDropdownField[T any](choices []ObjectChoice, get func(T) any, set func(T, any)) *ObjectDropdownField[T] {
	return &ObjectDropdownField[T]{
		Accessor: Accessor[T, any]{Get: get, Set: set},
		choices:  choices,
		selected: -1,
	}
}

func (f *ObjectDropdownField[T]) Kind() domain.ValueKind { return domain.KindObject }

// WidgetValue returns the selected choice, or the value last set when it
// matches none of them
func (f *ObjectDropdownField[T]) WidgetValue() any {
	if f.selected >= 0 && f.selected < len(f.choices) {
		return f.choices[f.selected].Value
	}
	return f.value
}

func (f *ObjectDropdownField[T]) SetWidgetValue(v any) {
	f.value = v
	f.selected = slices.IndexFunc(f.choices, func(c ObjectChoice) bool {
		return sameObject(c.Value, v)
	})
}

func (f *ObjectDropdownField[T]) display() string {
	if f.selected >= 0 && f.selected < len(f.choices) {
		return f.choices[f.selected].Label
	}
	if f.value == nil {
		return ""
	}
	return fmt.Sprint(f.value)
}

func (f *ObjectDropdownField[T]) Widget() huh.Field {
	if f.readOnly {
		return f.readOnlyWidget(f.display())
	}
	options := make([]huh.Option[int], 0, len(f.choices))
	for i, c := range f.choices {
		options = append(options, huh.NewOption(c.Label, i))
	}
	return huh.NewSelect[int]().
		Title(f.label).
		Options(options...).
		Value(&f.selected)
}

// sameObject compares a and b with == when both are of one comparable
// type. Anything else never matches.
func sameObject(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// TagsField selects any number of strings
type TagsField[T any] struct {
	fieldState
	Accessor[T, []string]
	limit   int
	options []string
	value   []string
}

// NewTagsField creates a multi-select list field
func NewTagsField[T any](options []string, get func(T) []string, set func(T, []string)) *TagsField[T] {
	return &TagsField[T]{
		Accessor: Accessor[T, []string]{Get: get, Set: set},
		options:  options,
	}
}

// Limit caps how many options can be selected
func (f *TagsField[T]) Limit(n int) *TagsField[T] {
	f.limit = n
	return f
}

func (f *TagsField[T]) Kind() domain.ValueKind    { return domain.KindList }
func (f *TagsField[T]) WidgetValue() []string     { return slices.Clone(f.value) }
func (f *TagsField[T]) SetWidgetValue(v []string) { f.value = slices.Clone(v) }

func (f *TagsField[T]) Widget() huh.Field {
	if f.readOnly {
		return f.readOnlyWidget(strings.Join(f.value, ", "))
	}
	ms := huh.NewMultiSelect[string]().
		Title(f.label).
		Options(huh.NewOptions(f.options...)...).
		Value(&f.value)
	if f.limit > 0 {
		ms = ms.Limit(f.limit)
	}
	return ms
}
