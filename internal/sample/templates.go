package sample

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/renato0307/dynform/internal/complexinput"
	"github.com/renato0307/dynform/internal/domain"
	"github.com/renato0307/dynform/internal/form"
)

var phoneLabels = []form.Choice{
	{Label: "Mobile", Value: "mobile"},
	{Label: "Home", Value: "home"},
	{Label: "Work", Value: "work"},
}

var addressKinds = []form.Choice{
	{Label: "Home", Value: "home"},
	{Label: "Work", Value: "work"},
	{Label: "Billing", Value: "billing"},
}

// TodayKey fills the focused birthday with today's date
const TodayKey = "ctrl+t"

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PhoneTemplate builds phone records
type PhoneTemplate struct{}

func (PhoneTemplate) New() *Phone { return &Phone{Label: "mobile"} }

func (PhoneTemplate) Clone(p *Phone) *Phone {
	c := *p
	return &c
}

func (PhoneTemplate) Build(f *form.DynamicForm[*Phone]) error {
	number := form.NewTextField(
		func(p *Phone) string { return p.Number },
		func(p *Phone, v string) { p.Number = v },
	).Placeholder("+44 20 7946 0000")
	label := form.NewDropdownField(phoneLabels,
		func(p *Phone) string { return p.Label },
		func(p *Phone, v string) { p.Label = v },
	)
	primary := form.NewCheckboxField(
		func(p *Phone) bool { return p.Primary },
		func(p *Phone, v bool) { p.Primary = v },
	)

	if err := addFields(f,
		entry{number, "Number"},
		entry{label, "Label"},
		entry{primary, "Primary"},
	); err != nil {
		return err
	}
	if err := f.AddRule(number, form.Required(), "phone number is required"); err != nil {
		return err
	}
	return f.AddRule(number, form.Match(`^\+?[0-9 ()-]{6,}$`), "phone number may only contain digits, spaces and ()+-")
}

func (PhoneTemplate) Summary(p *Phone) string {
	s := fmt.Sprintf("%s (%s)", p.Number, p.Label)
	if p.Primary {
		s += " ★"
	}
	return s
}

// AddressTemplate builds address records. DateLayout formats Since.
type AddressTemplate struct {
	DateLayout string
}

func (AddressTemplate) New() *Address { return &Address{Kind: "home"} }

func (AddressTemplate) Clone(a *Address) *Address {
	c := *a
	return &c
}

func (t AddressTemplate) Build(f *form.DynamicForm[*Address]) error {
	kind := form.NewDropdownField(addressKinds,
		func(a *Address) string { return a.Kind },
		func(a *Address, v string) { a.Kind = v },
	)
	street := form.NewTextField(
		func(a *Address) string { return a.Street },
		func(a *Address, v string) { a.Street = v },
	)
	city := form.NewTextField(
		func(a *Address) string { return a.City },
		func(a *Address, v string) { a.City = v },
	)
	postcode := form.NewTextField(
		func(a *Address) string { return a.Postcode },
		func(a *Address, v string) { a.Postcode = v },
	).CharLimit(10)
	since := form.NewDateField(
		func(a *Address) time.Time { return a.Since },
		func(a *Address, v time.Time) { a.Since = v },
	).Layout(layoutOr(t.DateLayout, f.Resources().DateLayout))

	if err := addFields(f,
		entry{kind, "Kind"},
		entry{street, "Street"},
		entry{city, "City"},
		entry{postcode, "Postcode"},
		entry{since, "Since"},
	); err != nil {
		return err
	}
	if err := f.AddRule(street, form.Required(), "street is required"); err != nil {
		return err
	}
	return f.AddRule(city, form.Required(), "city is required")
}

func (AddressTemplate) Summary(a *Address) string {
	parts := []string{a.Street, a.City}
	if a.Postcode != "" {
		parts = append(parts, a.Postcode)
	}
	return fmt.Sprintf("%s: %s", a.Kind, strings.Join(parts, ", "))
}

// ContactTemplate builds contact records with nested phone and address lists
type ContactTemplate struct {
	Groups []*Group
	Tags   []string
}

func (ContactTemplate) New() *Contact { return &Contact{Priority: 3} }

// Clone copies c with its own slices. Phones, addresses and the group are
// shared until a nested save replaces them.
func (ContactTemplate) Clone(c *Contact) *Contact {
	clone := *c
	clone.Addresses = slices.Clone(c.Addresses)
	clone.Phones = slices.Clone(c.Phones)
	clone.Tags = slices.Clone(c.Tags)
	return &clone
}

func (t ContactTemplate) Build(f *form.DynamicForm[*Contact]) error {
	resources := f.Resources()

	id := form.NewLabelField(func(c *Contact) string { return c.ID() })
	name := form.NewTextField(
		func(c *Contact) string { return c.Name },
		func(c *Contact, v string) { c.Name = v },
	).CharLimit(60)
	email := form.NewTextField(
		func(c *Contact) string { return c.Email },
		func(c *Contact, v string) { c.Email = v },
	).Placeholder("name@example.com")
	birthday := form.NewDateField(
		func(c *Contact) time.Time { return c.Birthday },
		func(c *Contact, v time.Time) { c.Birthday = v },
	).Layout(resources.DateLayout)
	callAfter := form.NewTimeField(
		func(c *Contact) time.Time { return c.CallAfter },
		func(c *Contact, v time.Time) { c.CallAfter = v },
	).Layout(resources.TimeLayout)
	availability := form.NewDateRangeField(
		func(c *Contact) domain.DateRange { return c.Availability },
		func(c *Contact, v domain.DateRange) { c.Availability = v },
	).Layout(resources.DateLayout)
	favorite := form.NewCheckboxField(
		func(c *Contact) bool { return c.Favorite },
		func(c *Contact, v bool) { c.Favorite = v },
	)
	group := form.NewObjectDropdownField(groupChoices(t.Groups),
		func(c *Contact) any { return c.Group },
		func(c *Contact, v any) { c.Group, _ = v.(*Group) },
	)
	tags := form.NewTagsField(t.tagOptions(),
		func(c *Contact) []string { return c.Tags },
		func(c *Contact, v []string) { c.Tags = v },
	)
	priority := form.NewSpinner(
		func(c *Contact) int { return c.Priority },
		func(c *Contact, v int) { c.Priority = v },
	).Bounds(1, 5)
	followers := form.NewLongField(
		func(c *Contact) int64 { return c.Followers },
		func(c *Contact, v int64) { c.Followers = v },
	)
	rating := form.NewDoubleField(
		func(c *Contact) float64 { return c.Rating },
		func(c *Contact, v float64) { c.Rating = v },
	).Step(0.5)
	reminder := form.NewDurationField(
		func(c *Contact) time.Duration { return c.Reminder },
		func(c *Contact, v time.Duration) { c.Reminder = v },
	)
	notes := form.NewTextAreaField(
		func(c *Contact) string { return c.Notes },
		func(c *Contact, v string) { c.Notes = v },
	).Lines(3)

	phoneList, err := complexinput.NewFromTemplate[*Phone](PhoneTemplate{}, resources)
	if err != nil {
		return err
	}
	phones := complexinput.Nest(phoneList,
		func(c *Contact) []*Phone { return c.Phones },
		func(c *Contact, v []*Phone) { c.Phones = v },
	)
	addressList, err := complexinput.NewFromTemplate[*Address](AddressTemplate{}, resources)
	if err != nil {
		return err
	}
	addresses := complexinput.Nest(addressList,
		func(c *Contact) []*Address { return c.Addresses },
		func(c *Contact, v []*Address) { c.Addresses = v },
	)

	if err := addFields(f,
		entry{id, "ID"},
		entry{name, "Name"},
		entry{email, "Email"},
		entry{birthday, "Birthday"},
		entry{callAfter, "Call after"},
		entry{availability, "Available"},
		entry{favorite, "Favorite"},
		entry{group, "Group"},
		entry{tags, "Tags"},
		entry{priority, "Priority"},
		entry{followers, "Followers"},
		entry{rating, "Rating"},
		entry{reminder, "Remind every"},
		entry{notes, "Notes"},
		entry{form.NewSeparatorField[*Contact](40), ""},
	); err != nil {
		return err
	}
	if err := f.AddField(phones, "Phones", form.Embedded()); err != nil {
		return err
	}
	if err := f.AddField(addresses, "Addresses", form.Embedded()); err != nil {
		return err
	}
	if err := f.AddStyleNameToField(name, "bold"); err != nil {
		return err
	}
	if err := f.SetKeyDownFieldsHandler(birthday, birthday.PickToday(TodayKey, today)); err != nil {
		return err
	}

	rules := []struct {
		field   form.InputField
		rule    form.Rule
		message string
	}{
		{name, form.Required(), "name is required"},
		{name, form.MinLen(2), "name is too short"},
		{email, form.Email(), "email is not valid"},
		{availability, form.DateOrder(), "availability must start before it ends"},
		{rating, form.Range(0, 5), "rating goes from 0 to 5"},
		{followers, form.Range(0, 1e12), "followers cannot be negative"},
	}
	for _, r := range rules {
		if err := f.AddRule(r.field, r.rule, r.message); err != nil {
			return err
		}
	}
	return nil
}

func (ContactTemplate) Summary(c *Contact) string {
	s := c.Name
	if c.Email != "" {
		s += " <" + c.Email + ">"
	}
	if c.Favorite {
		s += " ★"
	}
	return fmt.Sprintf("%s · %d phones · %d addresses", s, len(c.Phones), len(c.Addresses))
}

func (t ContactTemplate) tagOptions() []string {
	if len(t.Tags) > 0 {
		return t.Tags
	}
	return DefaultTags
}

func groupChoices(groups []*Group) []form.ObjectChoice {
	if len(groups) == 0 {
		groups = DefaultGroups()
	}
	choices := make([]form.ObjectChoice, 0, len(groups)+1)
	choices = append(choices, form.ObjectChoice{Label: "None", Value: (*Group)(nil)})
	for _, g := range groups {
		choices = append(choices, form.ObjectChoice{Label: g.Name, Value: g})
	}
	return choices
}

func layoutOr(layout, fallback string) string {
	if layout != "" {
		return layout
	}
	return fallback
}

type entry struct {
	field form.InputField
	label string
}

func addFields[T any](f *form.DynamicForm[T], entries ...entry) error {
	for _, e := range entries {
		if err := f.AddField(e.field, e.label); err != nil {
			return fmt.Errorf("failed to add field %q: %w", e.label, err)
		}
	}
	return nil
}
