package form

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/renato0307/dynform/internal/domain"
)

// Rule is a named check over a field's current widget value
type Rule struct {
	Check   func(value any) bool
	ID      string
	Message string // default message when none is given at registration
}

// ValidationError is the first failure found by a validation pass
type ValidationError struct {
	Field   InputField
	Label   string
	Message string
	RuleID  string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type registeredRule struct {
	message string
	rule    Rule
	value   func() any
}

// Validator is a declarative registry of rules per field
type Validator struct {
	order []InputField
	rules map[InputField][]registeredRule
}

// NewValidator creates an empty validator
func NewValidator() *Validator {
	return &Validator{rules: make(map[InputField][]registeredRule)}
}

// AddField registers a rule for field. value reads the field's current
// widget value. An empty message falls back to the rule's default.
func (v *Validator) AddField(field InputField, rule Rule, value func() any, message string) {
	if message == "" {
		message = rule.Message
	}
	if _, ok := v.rules[field]; !ok {
		v.order = append(v.order, field)
	}
	v.rules[field] = append(v.rules[field], registeredRule{message: message, rule: rule, value: value})
}

// RemoveField drops every rule registered for field
func (v *Validator) RemoveField(field InputField) {
	if _, ok := v.rules[field]; !ok {
		return
	}
	delete(v.rules, field)
	for i, f := range v.order {
		if f == field {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

// Rules returns how many rules are registered for field
func (v *Validator) Rules(field InputField) int {
	return len(v.rules[field])
}

// Validate checks fields in the given order and returns the first failure.
// A nil order means registration order. skip, when set, excludes fields.
func (v *Validator) Validate(order []InputField, skip func(InputField) bool) *ValidationError {
	if order == nil {
		order = v.order
	}
	for _, field := range order {
		if skip != nil && skip(field) {
			continue
		}
		for _, r := range v.rules[field] {
			if r.rule.Check == nil || r.rule.Check(r.value()) {
				continue
			}
			return &ValidationError{
				Field:   field,
				Message: r.message,
				RuleID:  r.rule.ID,
			}
		}
	}
	return nil
}

// Required fails on empty strings, zero dates and ranges, empty lists and nil objects.
// Booleans and numbers always pass; use True for checkboxes that must be ticked.
func Required() Rule {
	return Rule{
		ID:      "required",
		Message: "required",
		Check: func(value any) bool {
			switch v := value.(type) {
			case nil:
				return false
			case string:
				return strings.TrimSpace(v) != ""
			case time.Time:
				return !v.IsZero()
			case domain.DateRange:
				return !v.Start.IsZero() && !v.End.IsZero()
			case []string:
				return len(v) > 0
			}
			return true
		},
	}
}

// MinLen fails on strings shorter than n runes
func MinLen(n int) Rule {
	return Rule{
		ID:      "min_len",
		Message: fmt.Sprintf("min %d characters", n),
		Check: func(value any) bool {
			s, _ := value.(string)
			return len([]rune(s)) >= n
		},
	}
}

// MaxLen fails on strings longer than n runes
func MaxLen(n int) Rule {
	return Rule{
		ID:      "max_len",
		Message: fmt.Sprintf("max %d characters", n),
		Check: func(value any) bool {
			s, _ := value.(string)
			return len([]rune(s)) <= n
		},
	}
}

// Match fails on non-empty strings not matching pattern
func Match(pattern string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		ID:      "match",
		Message: "invalid format",
		Check: func(value any) bool {
			s, _ := value.(string)
			return s == "" || re.MatchString(s)
		},
	}
}

// Email fails on non-empty strings that don't look like email addresses
func Email() Rule {
	return Rule{
		ID:      "email",
		Message: "invalid email",
		Check: func(value any) bool {
			s, _ := value.(string)
			if s == "" {
				return true
			}
			at := strings.LastIndex(s, "@")
			if at <= 0 || at == len(s)-1 {
				return false
			}
			host := s[at+1:]
			return strings.Contains(host, ".") && !strings.HasSuffix(host, ".")
		},
	}
}

// Range fails on numbers outside [min, max]
func Range(min, max float64) Rule {
	return Rule{
		ID:      "range",
		Message: fmt.Sprintf("must be between %g and %g", min, max),
		Check: func(value any) bool {
			var n float64
			switch v := value.(type) {
			case int:
				n = float64(v)
			case int64:
				n = float64(v)
			case float64:
				n = v
			default:
				return true
			}
			return n >= min && n <= max
		},
	}
}

// DateOrder fails on date ranges whose start is after the end
func DateOrder() Rule {
	return Rule{
		ID:      "date_order",
		Message: "start must not be after end",
		Check: func(value any) bool {
			r, ok := value.(domain.DateRange)
			return !ok || r.Ordered()
		},
	}
}

// True fails unless the value is a true boolean
func True() Rule {
	return Rule{
		ID:      "true",
		Message: "required",
		Check: func(value any) bool {
			b, _ := value.(bool)
			return b
		},
	}
}

// Func wraps an arbitrary check
func Func(id string, check func(value any) bool) Rule {
	return Rule{ID: id, Message: "invalid value", Check: check}
}
