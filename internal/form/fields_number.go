package form

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/renato0307/dynform/internal/domain"
)

// Number is the set of numeric value types a NumberField can carry
type Number interface {
	int | int64 | float64
}

// NumberField is a numeric input. With a step it behaves as a spinner:
// Increment and Decrement move the value and clamp it to the bounds.
type NumberField[T any, N Number] struct {
	fieldState
	Accessor[T, N]
	hasMax bool
	hasMin bool
	max    N
	min    N
	shown  string // text written by the last SetWidgetValue
	step   N
	text   string
	value  N
}

// NewSpinner creates an integer spinner stepping by one
func NewSpinner[T any](get func(T) int, set func(T, int)) *NumberField[T, int] {
	return &NumberField[T, int]{Accessor: Accessor[T, int]{Get: get, Set: set}, step: 1}
}

// NewLongField creates a 64-bit integer field
func NewLongField[T any](get func(T) int64, set func(T, int64)) *NumberField[T, int64] {
	return &NumberField[T, int64]{Accessor: Accessor[T, int64]{Get: get, Set: set}, step: 1}
}

// NewDoubleField creates a floating point field
func NewDoubleField[T any](get func(T) float64, set func(T, float64)) *NumberField[T, float64] {
	return &NumberField[T, float64]{Accessor: Accessor[T, float64]{Get: get, Set: set}, step: 1}
}

// Bounds limits the value to [min, max]
func (f *NumberField[T, N]) Bounds(min, max N) *NumberField[T, N] {
	f.min, f.max = min, max
	f.hasMin, f.hasMax = true, true
	return f
}

// Step sets the spinner increment
func (f *NumberField[T, N]) Step(step N) *NumberField[T, N] {
	f.step = step
	return f
}

func (f *NumberField[T, N]) Kind() domain.ValueKind {
	var zero N
	switch any(zero).(type) {
	case int:
		return domain.KindInteger
	case int64:
		return domain.KindLong
	default:
		return domain.KindDouble
	}
}

// WidgetValue returns the typed value. Untouched text yields the exact value
// last set; edited text is parsed, and unparsable text yields zero.
func (f *NumberField[T, N]) WidgetValue() N {
	if f.text == f.shown {
		return f.value
	}
	v, err := parseNumber[N](f.text)
	if err != nil {
		var zero N
		return zero
	}
	return v
}

func (f *NumberField[T, N]) SetWidgetValue(v N) {
	f.value = v
	f.text = formatNumber(v)
	f.shown = f.text
}

// Increment moves the value up by one step
func (f *NumberField[T, N]) Increment() {
	f.spin(f.step)
}

// Decrement moves the value down by one step
func (f *NumberField[T, N]) Decrement() {
	f.spin(-f.step)
}

func (f *NumberField[T, N]) spin(delta N) {
	if f.readOnly {
		return
	}
	f.SetWidgetValue(f.clamp(f.WidgetValue() + delta))
}

func (f *NumberField[T, N]) clamp(v N) N {
	if f.hasMin && v < f.min {
		return f.min
	}
	if f.hasMax && v > f.max {
		return f.max
	}
	return v
}

func (f *NumberField[T, N]) validate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := parseNumber[N](s)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if f.clamp(v) != v {
		return fmt.Errorf("must be between %s and %s", formatNumber(f.min), formatNumber(f.max))
	}
	return nil
}

func (f *NumberField[T, N]) Widget() huh.Field {
	if f.readOnly {
		return f.readOnlyWidget(f.text)
	}
	return huh.NewInput().
		Title(f.label).
		Description(f.description).
		Value(&f.text).
		Validate(f.validate)
}

func parseNumber[N Number](s string) (N, error) {
	s = strings.TrimSpace(s)
	var zero N
	if s == "" {
		return zero, nil
	}
	switch any(zero).(type) {
	case int:
		v, err := strconv.Atoi(s)
		return N(v), err
	case int64:
		v, err := strconv.ParseInt(s, 10, 64)
		return N(v), err
	default:
		v, err := strconv.ParseFloat(s, 64)
		return N(v), err
	}
}

func formatNumber[N Number](v N) string {
	switch n := any(v).(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

// DurationField edits a time.Duration. It declares the long kind and moves
// the duration as nanoseconds.
type DurationField[T any] struct {
	fieldState
	get   func(T) time.Duration
	set   func(T, time.Duration)
	shown string
	text  string
	value int64
}

// NewDurationField creates a duration field
func NewDurationField[T any](get func(T) time.Duration, set func(T, time.Duration)) *DurationField[T] {
	return &DurationField[T]{get: get, set: set}
}

func (f *DurationField[T]) Kind() domain.ValueKind { return domain.KindLong }

func (f *DurationField[T]) GetValue(obj T) int64 {
	if f.get == nil {
		return 0
	}
	return int64(f.get(obj))
}

func (f *DurationField[T]) SetValue(obj T, v int64) {
	if f.set != nil {
		f.set(obj, time.Duration(v))
	}
}

func (f *DurationField[T]) WidgetValue() int64 {
	if f.text == f.shown {
		return f.value
	}
	if strings.TrimSpace(f.text) == "" {
		return 0
	}
	d, err := time.ParseDuration(strings.TrimSpace(f.text))
	if err != nil {
		return 0
	}
	return int64(d)
}

func (f *DurationField[T]) SetWidgetValue(v int64) {
	f.value = v
	f.text = ""
	if v != 0 {
		f.text = time.Duration(v).String()
	}
	f.shown = f.text
}

func (f *DurationField[T]) Widget() huh.Field {
	if f.readOnly {
		return f.readOnlyWidget(f.text)
	}
	return huh.NewInput().
		Title(f.label).
		Placeholder("1h30m").
		Value(&f.text).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			if _, err := time.ParseDuration(strings.TrimSpace(s)); err != nil {
				return fmt.Errorf("invalid duration")
			}
			return nil
		})
}
