package complexinput

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/renato0307/dynform/internal/form"
)

type phone struct {
	id     string
	Number string
}

func (p *phone) ID() string      { return p.id }
func (p *phone) SetID(id string) { p.id = id }

type phoneTemplate struct{}

func (phoneTemplate) New() *phone { return &phone{} }

func (phoneTemplate) Clone(p *phone) *phone {
	c := *p
	return &c
}

func (phoneTemplate) Build(f *form.DynamicForm[*phone]) error {
	number := form.NewTextField(
		func(p *phone) string { return p.Number },
		func(p *phone, v string) { p.Number = v },
	)
	if err := f.AddField(number, "Number"); err != nil {
		return err
	}
	return f.AddRule(number, form.Required(), "number is required")
}

func (phoneTemplate) Summary(p *phone) string { return p.Number }

type contact struct {
	Name   string
	Phones []*phone
}

type contactTemplate struct{}

func (contactTemplate) New() *contact { return &contact{} }

func (contactTemplate) Clone(c *contact) *contact {
	return &contact{Name: c.Name, Phones: slices.Clone(c.Phones)}
}

func (contactTemplate) Build(f *form.DynamicForm[*contact]) error {
	name := form.NewTextField(
		func(c *contact) string { return c.Name },
		func(c *contact, v string) { c.Name = v },
	)
	if err := f.AddField(name, "Name"); err != nil {
		return err
	}
	phones, err := NewFromTemplate[*phone](phoneTemplate{}, f.Resources())
	if err != nil {
		return err
	}
	nested := Nest(phones,
		func(c *contact) []*phone { return c.Phones },
		func(c *contact, v []*phone) { c.Phones = v },
	)
	return f.AddField(nested, "Phones", form.Embedded())
}

func (contactTemplate) Summary(c *contact) string {
	numbers := make([]string, 0, len(c.Phones))
	for _, p := range c.Phones {
		numbers = append(numbers, p.Number)
	}
	return c.Name + " " + strings.Join(numbers, ",")
}

func newPhoneForm(t *testing.T) *ComplexInputForm[*phone] {
	t.Helper()
	c, err := NewFromTemplate[*phone](phoneTemplate{}, nil)
	require.NoError(t, err)
	return c
}

func newContactForm(t *testing.T) *ComplexInputForm[*contact] {
	t.Helper()
	c, err := NewFromTemplate[*contact](contactTemplate{}, nil)
	require.NoError(t, err)
	return c
}

// typeNumber writes into the Number widget of a phone record
func typeNumber(t *testing.T, rec ComplexInput[*phone], number string) {
	t.Helper()
	field, ok := rec.Form().Fields()[0].(*form.TextField[*phone])
	require.True(t, ok)
	field.SetWidgetValue(number)
}

// addPhone commits a number through the add slot
func addPhone(t *testing.T, c *ComplexInputForm[*phone], number string) {
	t.Helper()
	typeNumber(t, c.AddSlot(), number)
	require.NoError(t, c.Add())
}

// nestedPhones returns the phone list form inside a contact record
func nestedPhones(t *testing.T, rec ComplexInput[*contact]) *ComplexInputForm[*phone] {
	t.Helper()
	nested, ok := rec.Form().Fields()[1].(*Nested[*contact, *phone])
	require.True(t, ok)
	return nested.Form()
}

func numbers(list []*phone) []string {
	result := make([]string, len(list))
	for i, p := range list {
		result[i] = p.Number
	}
	return result
}
