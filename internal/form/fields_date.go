package form

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/renato0307/dynform/internal/domain"
)

// DefaultDateLayout is used by date fields created without a layout
const DefaultDateLayout = "2006-01-02"

// PickerReadyMsg re-enables a date field's picker after a commit
type PickerReadyMsg struct {
	field any
}

// DateField edits a time.Time through a text layout. It also serves as
// the time field when given a clock layout.
type DateField[T any] struct {
	fieldState
	Accessor[T, time.Time]
	input            *huh.Input
	layout           string
	pickerSuppressed bool
	shown            string
	text             string
	value            time.Time
}

// NewDateField creates a date field using DefaultDateLayout
func NewDateField[T any](get func(T) time.Time, set func(T, time.Time)) *DateField[T] {
	return &DateField[T]{
		Accessor: Accessor[T, time.Time]{Get: get, Set: set},
		layout:   DefaultDateLayout,
	}
}

// NewTimeField creates a date field showing only the clock
func NewTimeField[T any](get func(T) time.Time, set func(T, time.Time)) *DateField[T] {
	return NewDateField(get, set).Layout("15:04")
}

// Layout sets the time layout used to show and parse the value
func (f *DateField[T]) Layout(layout string) *DateField[T] {
	f.layout = layout
	return f
}

func (f *DateField[T]) Kind() domain.ValueKind { return domain.KindDate }

// WidgetValue returns the exact value last set while the text is untouched,
// otherwise the parsed text. Unparsable text yields the zero time.
func (f *DateField[T]) WidgetValue() time.Time {
	if f.text == f.shown {
		return f.value
	}
	t, err := parseTime(f.layout, f.text)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (f *DateField[T]) SetWidgetValue(v time.Time) {
	f.value = v
	f.text = formatTime(f.layout, v)
	f.shown = f.text
	if f.input != nil {
		// resync the text input of a form already built
		f.input.Value(&f.text)
	}
}

// Commit sets the value from a picker interaction. The picker stays closed
// until the returned command delivers its PickerReadyMsg.
func (f *DateField[T]) Commit(v time.Time) tea.Cmd {
	f.SetWidgetValue(v)
	f.pickerSuppressed = true
	return func() tea.Msg {
		return PickerReadyMsg{field: f}
	}
}

// HandleMsg consumes the PickerReadyMsg addressed to this field
func (f *DateField[T]) HandleMsg(msg tea.Msg) bool {
	ready, ok := msg.(PickerReadyMsg)
	if !ok || ready.field != any(f) {
		return false
	}
	f.pickerSuppressed = false
	return true
}

// CanShowPicker reports whether the picker may open
func (f *DateField[T]) CanShowPicker() bool {
	return !f.readOnly && !f.pickerSuppressed
}

func (f *DateField[T]) Widget() huh.Field {
	if f.readOnly {
		f.input = nil
		return f.readOnlyWidget(f.text)
	}
	f.input = huh.NewInput().
		Title(f.label).
		Placeholder(f.layout).
		Value(&f.text).
		Validate(func(s string) error {
			if _, err := parseTime(f.layout, s); err != nil {
				return fmt.Errorf("expected format %s", f.layout)
			}
			return nil
		})
	return f.input
}

// PickToday returns a key handler committing now's date on key, as a
// picker would. It does nothing while the picker is suppressed.
func (f *DateField[T]) PickToday(key string, now func() time.Time) KeyHandler {
	return func(msg tea.KeyMsg) tea.Cmd {
		if msg.String() != key || !f.CanShowPicker() {
			return nil
		}
		return f.Commit(now())
	}
}

// DateRangeField edits a DateRange written as "start/end"
type DateRangeField[T any] struct {
	fieldState
	Accessor[T, domain.DateRange]
	layout string
	shown  string
	text   string
	value  domain.DateRange
}

// NewDateRangeField creates a date range field
func NewDateRangeField[T any](get func(T) domain.DateRange, set func(T, domain.DateRange)) *DateRangeField[T] {
	return &DateRangeField[T]{
		Accessor: Accessor[T, domain.DateRange]{Get: get, Set: set},
		layout:   DefaultDateLayout,
	}
}

// Layout sets the layout of each bound
func (f *DateRangeField[T]) Layout(layout string) *DateRangeField[T] {
	f.layout = layout
	return f
}

func (f *DateRangeField[T]) Kind() domain.ValueKind { return domain.KindDateRange }

func (f *DateRangeField[T]) WidgetValue() domain.DateRange {
	if f.text == f.shown {
		return f.value
	}
	r, err := parseRange(f.layout, f.text)
	if err != nil {
		return domain.DateRange{}
	}
	return r
}

func (f *DateRangeField[T]) SetWidgetValue(v domain.DateRange) {
	f.value = v
	f.text = ""
	if !v.IsZero() {
		f.text = formatTime(f.layout, v.Start) + "/" + formatTime(f.layout, v.End)
	}
	f.shown = f.text
}

func (f *DateRangeField[T]) Widget() huh.Field {
	if f.readOnly {
		return f.readOnlyWidget(f.text)
	}
	return huh.NewInput().
		Title(f.label).
		Placeholder(f.layout + "/" + f.layout).
		Value(&f.text).
		Validate(func(s string) error {
			r, err := parseRange(f.layout, s)
			if err != nil {
				return err
			}
			if !r.Ordered() {
				return fmt.Errorf("start must not be after end")
			}
			return nil
		})
}

func parseTime(layout, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(layout, s)
}

func formatTime(layout string, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

func parseRange(layout, s string) (domain.DateRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.DateRange{}, nil
	}
	start, end, ok := strings.Cut(s, "/")
	if !ok {
		return domain.DateRange{}, fmt.Errorf("expected start/end")
	}
	startTime, err := parseTime(layout, start)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid start: %w", err)
	}
	endTime, err := parseTime(layout, end)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid end: %w", err)
	}
	return domain.DateRange{Start: startTime, End: endTime}, nil
}
