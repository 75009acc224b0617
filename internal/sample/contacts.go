package sample

import (
	"time"

	"github.com/renato0307/dynform/internal/domain"
)

// Group is a contact group offered by the object dropdown
type Group struct {
	Color string
	Name  string
}

// Phone is one phone number of a contact
type Phone struct {
	id      string
	Label   string
	Number  string
	Primary bool
}

func (p *Phone) ID() string      { return p.id }
func (p *Phone) SetID(id string) { p.id = id }

// Address is one postal address of a contact
type Address struct {
	id       string
	City     string
	Kind     string
	Postcode string
	Since    time.Time
	Street   string
}

func (a *Address) ID() string      { return a.id }
func (a *Address) SetID(id string) { a.id = id }

// Contact is the demo record. Its fields cover every bindable value kind.
type Contact struct {
	id           string
	Addresses    []*Address
	Availability domain.DateRange
	Birthday     time.Time
	CallAfter    time.Time
	Email        string
	Favorite     bool
	Followers    int64
	Group        *Group
	Name         string
	Notes        string
	Phones       []*Phone
	Priority     int
	Rating       float64
	Reminder     time.Duration
	Tags         []string
}

func (c *Contact) ID() string      { return c.id }
func (c *Contact) SetID(id string) { c.id = id }

// DefaultGroups are the groups offered when none are configured
func DefaultGroups() []*Group {
	return []*Group{
		{Name: "Family", Color: "205"},
		{Name: "Friends", Color: "86"},
		{Name: "Work", Color: "33"},
	}
}

// DefaultTags are the tags offered when settings configure none
var DefaultTags = []string{"client", "mentor", "neighbor", "supplier"}

// Seed returns a small address book for the demo
func Seed(groups []*Group) []*Contact {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	var work *Group
	for _, g := range groups {
		if g.Name == "Work" {
			work = g
		}
	}

	return []*Contact{
		{
			id:        "c-ada",
			Name:      "Ada Lovelace",
			Email:     "ada@example.com",
			Birthday:  date(1815, time.December, 10),
			CallAfter: time.Date(0, 1, 1, 9, 30, 0, 0, time.UTC),
			Favorite:  true,
			Followers: 1843,
			Group:     work,
			Priority:  1,
			Rating:    4.9,
			Reminder:  24 * time.Hour,
			Tags:      []string{"mentor"},
			Availability: domain.DateRange{
				Start: date(2025, time.January, 6),
				End:   date(2025, time.March, 28),
			},
			Phones: []*Phone{
				{id: "p-ada-1", Label: "mobile", Number: "+44 20 7946 0018", Primary: true},
			},
			Addresses: []*Address{
				{id: "a-ada-1", Kind: "home", Street: "12 St James's Square", City: "London", Postcode: "SW1Y 4JH", Since: date(1835, time.July, 8)},
			},
		},
		{
			id:       "c-alan",
			Name:     "Alan Turing",
			Email:    "alan@example.com",
			Birthday: date(1912, time.June, 23),
			Priority: 2,
			Rating:   4.7,
			Tags:     []string{"client", "neighbor"},
			Phones: []*Phone{
				{id: "p-alan-1", Label: "work", Number: "+44 161 496 0000"},
				{id: "p-alan-2", Label: "home", Number: "+44 161 496 0001", Primary: true},
			},
		},
	}
}
