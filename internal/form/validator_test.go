package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/dynform/internal/domain"
)

func TestRules(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		rule     Rule
		value    any
		expected bool
	}{
		{"required empty string", Required(), "  ", false},
		{"required string", Required(), "x", true},
		{"required zero time", Required(), time.Time{}, false},
		{"required time", Required(), day, true},
		{"required empty list", Required(), []string{}, false},
		{"required half range", Required(), domain.DateRange{Start: day}, false},
		{"required nil object", Required(), nil, false},
		{"required number", Required(), 0, true},
		{"min len short", MinLen(3), "ab", false},
		{"min len runes", MinLen(3), "ção", true},
		{"max len long", MaxLen(2), "abc", false},
		{"match empty", Match(`^\d+$`), "", true},
		{"match ok", Match(`^\d+$`), "123", true},
		{"match bad", Match(`^\d+$`), "12a", false},
		{"email ok", Email(), "ada@example.com", true},
		{"email no host dot", Email(), "ada@example", false},
		{"email leading at", Email(), "@example.com", false},
		{"email empty", Email(), "", true},
		{"range int inside", Range(1, 10), 5, true},
		{"range long outside", Range(1, 10), int64(11), false},
		{"range double edge", Range(1, 10), 10.0, true},
		{"date order ok", DateOrder(), domain.DateRange{Start: day, End: day.AddDate(0, 0, 1)}, true},
		{"date order reversed", DateOrder(), domain.DateRange{Start: day.AddDate(0, 0, 1), End: day}, false},
		{"true false", True(), false, false},
		{"true true", True(), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rule.Check(tt.value))
		})
	}
}

func TestValidator_RegistrationOrderAndRemoval(t *testing.T) {
	v := NewValidator()
	a := NewTextField[*profile](nil, nil)
	b := NewTextField[*profile](nil, nil)
	empty := func() any { return "" }

	v.AddField(b, Required(), empty, "b failed")
	v.AddField(a, Required(), empty, "")

	verr := v.Validate(nil, nil)
	assert.Equal(t, "b failed", verr.Message)

	verr = v.Validate([]InputField{a, b}, nil)
	assert.Equal(t, "required", verr.Message, "falls back to the rule's default message")

	v.RemoveField(b)
	v.RemoveField(b)
	verr = v.Validate(nil, nil)
	assert.Equal(t, a, verr.Field)

	verr = v.Validate(nil, func(InputField) bool { return true })
	assert.Nil(t, verr)
}
