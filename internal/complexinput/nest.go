package complexinput

import (
	"github.com/charmbracelet/huh"

	"github.com/renato0307/dynform/internal/domain"
	"github.com/renato0307/dynform/internal/logging"
)

// Nested exposes a ComplexInputForm as an object field of an enclosing
// DynamicForm[T], bound to a []V property of T.
type Nested[T, V any] struct {
	form  *ComplexInputForm[V]
	get   func(T) []V
	label string
	set   func(T, []V)
}

// Nest wraps form as a field reading and writing the list through get and set
func Nest[T, V any](form *ComplexInputForm[V], get func(T) []V, set func(T, []V)) *Nested[T, V] {
	return &Nested[T, V]{form: form, get: get, set: set}
}

// Form returns the wrapped list form
func (n *Nested[T, V]) Form() *ComplexInputForm[V] { return n.form }

func (n *Nested[T, V]) Kind() domain.ValueKind    { return domain.KindObject }
func (n *Nested[T, V]) IsRequired() bool          { return n.form.IsRequired() }
func (n *Nested[T, V]) SetRequired(required bool) { n.form.SetRequired(required) }
func (n *Nested[T, V]) IsReadOnly() bool          { return n.form.IsReadOnly() }
func (n *Nested[T, V]) SetReadOnly(readOnly bool) { n.form.SetReadOnly(readOnly) }
func (n *Nested[T, V]) SetParent(parent Sink)     { n.form.SetParent(parent) }

// SetLabel uses the form label as the list title
func (n *Nested[T, V]) SetLabel(label string) {
	n.label = label
	n.form.SetTitle(label)
}

func (n *Nested[T, V]) GetValue(obj T) any {
	if n.get == nil {
		return []V(nil)
	}
	return n.get(obj)
}

func (n *Nested[T, V]) SetValue(obj T, v any) {
	if n.set == nil {
		return
	}
	list, _ := v.([]V)
	n.set(obj, list)
}

func (n *Nested[T, V]) WidgetValue() any {
	return n.form.Value()
}

// SetWidgetValue rebuilds the list form. Values of the wrong type clear it.
func (n *Nested[T, V]) SetWidgetValue(v any) {
	list, _ := v.([]V)
	if err := n.form.SetValue(list); err != nil {
		logging.Logger.Error("Failed to rebuild nested list", "label", n.label, "error", err)
	}
}

func (n *Nested[T, V]) Widget() huh.Field {
	return huh.NewNote().Description(n.form.Render())
}
