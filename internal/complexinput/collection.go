package complexinput

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/renato0307/dynform/internal/domain"
)

// Collection is a ComplexInputForm with its record type erased, so a host
// can walk nested lists of different record types.
type Collection interface {
	Action(i int, name string, payload any) error
	Add() error
	BuildForm(i int) (*huh.Form, error)
	Cancel(i int) error
	Children(i int) []Collection
	Edit(i int) error
	IsReadOnly() bool
	Remove(i int) error
	Route(i int, focused huh.Field, msg tea.Msg) (bool, tea.Cmd)
	Save(i int) error
	Size() int
	StateAt(i int) domain.RecordState
	Title() string
	ViewAt(i int) string
}

// nestedCollection is implemented by fields wrapping a list form
type nestedCollection interface {
	Collection() Collection
}

// Collection returns the wrapped list form
func (n *Nested[T, V]) Collection() Collection { return n.form }

// Title returns the heading set with SetTitle
func (c *ComplexInputForm[V]) Title() string { return c.title }

// Size returns the number of records, add slot included
func (c *ComplexInputForm[V]) Size() int { return len(c.records) }

// StateAt returns the state of record i, or "" when out of range
func (c *ComplexInputForm[V]) StateAt(i int) domain.RecordState {
	if i < 0 || i >= len(c.records) {
		return ""
	}
	return c.records[i].State()
}

// ViewAt renders record i for its state
func (c *ComplexInputForm[V]) ViewAt(i int) string {
	if i < 0 || i >= len(c.records) {
		return ""
	}
	return c.records[i].View()
}

// BuildForm returns an interactive form over record i's fields. Only the
// add slot and records under edit can be built.
func (c *ComplexInputForm[V]) BuildForm(i int) (*huh.Form, error) {
	if i < 0 || i >= len(c.records) {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidIndex, i)
	}
	rec := c.records[i]
	if rec.State() == domain.StateView {
		return nil, fmt.Errorf("%w: record %d is not being edited", domain.ErrInvalidState, i)
	}
	return rec.Form().Build(), nil
}

// Route delivers msg to the fields of record i, focused being the widget
// under the cursor in the form BuildForm returned
func (c *ComplexInputForm[V]) Route(i int, focused huh.Field, msg tea.Msg) (bool, tea.Cmd) {
	if i < 0 || i >= len(c.records) {
		return false, nil
	}
	return c.records[i].Form().Route(focused, msg)
}

// Children returns the list forms nested in record i, in field order
func (c *ComplexInputForm[V]) Children(i int) []Collection {
	if i < 0 || i >= len(c.records) {
		return nil
	}
	var children []Collection
	for _, field := range c.records[i].Form().Fields() {
		if n, ok := field.(nestedCollection); ok {
			children = append(children, n.Collection())
		}
	}
	return children
}
