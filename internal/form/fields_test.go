package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/dynform/internal/domain"
)

func TestNumberField_KindFollowsValueType(t *testing.T) {
	assert.Equal(t, domain.KindInteger, NewSpinner[*profile](nil, nil).Kind())
	assert.Equal(t, domain.KindLong, NewLongField[*profile](nil, nil).Kind())
	assert.Equal(t, domain.KindDouble, NewDoubleField[*profile](nil, nil).Kind())
	assert.Equal(t, domain.KindLong, NewDurationField[*profile](nil, nil).Kind())
}

func TestNumberField_ParsesEditedText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"plain", "3.5", 3.5},
		{"padded", "  -2 ", -2},
		{"empty", "", 0},
		{"garbage", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewDoubleField[*profile](nil, nil)
			f.SetWidgetValue(1)
			f.text = tt.text
			assert.Equal(t, tt.expected, f.WidgetValue())
		})
	}
}

func TestSpinner_StepsAndClamps(t *testing.T) {
	f := NewSpinner[*profile](nil, nil).Bounds(0, 10).Step(4)
	f.SetWidgetValue(8)

	f.Increment()
	assert.Equal(t, 10, f.WidgetValue())

	f.Decrement()
	f.Decrement()
	f.Decrement()
	assert.Equal(t, 0, f.WidgetValue())

	f.SetReadOnly(true)
	f.Increment()
	assert.Equal(t, 0, f.WidgetValue(), "read-only spinners don't move")
}

func TestSpinner_ValidateRejectsOutOfBounds(t *testing.T) {
	f := NewSpinner[*profile](nil, nil).Bounds(1, 5)

	assert.NoError(t, f.validate(""))
	assert.NoError(t, f.validate("3"))
	assert.Error(t, f.validate("9"))
	assert.Error(t, f.validate("x"))
}

func TestDurationField_ParsesEditedText(t *testing.T) {
	f := NewDurationField[*profile](nil, nil)
	f.SetWidgetValue(int64(time.Minute))
	assert.Equal(t, "1m0s", f.text)

	f.text = "1h30m"
	assert.Equal(t, int64(90*time.Minute), f.WidgetValue())

	f.text = "soon"
	assert.Equal(t, int64(0), f.WidgetValue())
}

func TestDateField_KeepsExactValueUntilEdited(t *testing.T) {
	f := NewDateField[*profile](nil, nil)
	exact := time.Date(2020, 2, 3, 4, 5, 6, 7, time.UTC)

	f.SetWidgetValue(exact)
	assert.Equal(t, "2020-02-03", f.text)
	assert.True(t, exact.Equal(f.WidgetValue()))

	f.text = "2021-12-31"
	assert.True(t, time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC).Equal(f.WidgetValue()))

	f.text = "31/12/2021"
	assert.True(t, f.WidgetValue().IsZero())
}

func TestTimeField_UsesClockLayout(t *testing.T) {
	f := NewTimeField[*profile](nil, nil)
	f.SetWidgetValue(time.Date(0, 1, 1, 9, 45, 0, 0, time.UTC))

	assert.Equal(t, "09:45", f.text)
}

func TestDateField_PickerSuppressedUntilReady(t *testing.T) {
	f := NewDateField[*profile](nil, nil)
	other := NewDateField[*profile](nil, nil)
	assert.True(t, f.CanShowPicker())

	cmd := f.Commit(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, cmd)
	assert.False(t, f.CanShowPicker())

	msg := cmd()
	assert.False(t, other.HandleMsg(msg), "the message targets one field")
	assert.True(t, f.HandleMsg(msg))
	assert.True(t, f.CanShowPicker())
	assert.Equal(t, 2024, f.WidgetValue().Year())
}

func TestDateRangeField_ParsesEditedText(t *testing.T) {
	f := NewDateRangeField[*profile](nil, nil)
	f.SetWidgetValue(domain.DateRange{})
	assert.Equal(t, "", f.text)

	f.text = "2024-01-01/2024-01-31"
	r := f.WidgetValue()
	assert.Equal(t, 1, r.Start.Day())
	assert.Equal(t, 31, r.End.Day())

	f.text = "2024-01-01"
	assert.True(t, f.WidgetValue().IsZero())
}

func TestTagsField_CopiesSlices(t *testing.T) {
	f := NewTagsField[*profile]([]string{"a", "b"}, nil, nil)
	in := []string{"a"}

	f.SetWidgetValue(in)
	in[0] = "mutated"

	assert.Equal(t, []string{"a"}, f.WidgetValue())
}

func TestCheckboxField_Toggle(t *testing.T) {
	f := NewCheckboxField[*profile](nil, nil)

	f.Toggle()
	assert.True(t, f.WidgetValue())

	f.SetReadOnly(true)
	f.Toggle()
	assert.True(t, f.WidgetValue())
}

func TestDropdownField_DisplaysChoiceLabel(t *testing.T) {
	f := NewDropdownField[*profile]([]Choice{{Label: "Portugal", Value: "pt"}}, nil, nil)

	f.SetWidgetValue("pt")
	assert.Equal(t, "Portugal", f.display())

	f.SetWidgetValue("es")
	assert.Equal(t, "es", f.display())
}

func TestSeparatorField_BindsNothing(t *testing.T) {
	f := NewSeparatorField[*profile](10)
	p := &profile{Name: "Ada"}

	f.SetValue(p, "changed")
	f.SetReadOnly(false)

	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "", f.GetValue(p))
	assert.True(t, f.IsReadOnly())
	assert.NotNil(t, f.Widget())
}

func TestObjectDropdownField_NonComparableValues(t *testing.T) {
	type tagged struct {
		Name string
		Tags []string
	}
	f := NewObjectDropdownField[*profile]([]ObjectChoice{
		{Label: "Tags", Value: []string{"a"}},
		{Label: "Tagged", Value: tagged{Name: "x"}},
		{Label: "Dog", Value: "dog"},
	}, nil, nil)

	assert.NotPanics(t, func() { f.SetWidgetValue([]string{"a"}) })
	assert.Equal(t, "[a]", f.display(), "slices never match a choice")

	assert.NotPanics(t, func() { f.SetWidgetValue(map[string]int{"a": 1}) })
	assert.Equal(t, "map[a:1]", f.display())

	f.SetWidgetValue("dog")
	assert.Equal(t, "Dog", f.display())
	assert.Equal(t, "dog", f.WidgetValue())

	f.SetWidgetValue(nil)
	assert.Equal(t, "", f.display())
	assert.Nil(t, f.WidgetValue())
	assert.NotNil(t, f.Widget())
}

func TestObjectDropdownField_SelectsByIndex(t *testing.T) {
	cat, dog := &struct{ Name string }{"cat"}, &struct{ Name string }{"dog"}
	f := NewObjectDropdownField[*profile]([]ObjectChoice{
		{Label: "Cat", Value: cat},
		{Label: "Dog", Value: dog},
	}, nil, nil)

	f.SetWidgetValue(dog)
	assert.Equal(t, "Dog", f.display())

	f.selected = 0
	assert.Same(t, cat, f.WidgetValue())
}
