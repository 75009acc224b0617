package complexinput

import (
	"github.com/renato0307/dynform/internal/domain"
	"github.com/renato0307/dynform/internal/form"
)

// ComplexInput is one record of a repeating sub-form. It is in one of
// three states: View shows a summary, Edit edits the bound value through
// the nested form, Add edits a draft that becomes a new value.
type ComplexInput[V any] interface {
	Sink

	// Form returns the nested form editing the record
	Form() *form.DynamicForm[V]
	// State returns the current state
	State() domain.RecordState
	// Value returns the bound value. It is the zero value in Add state
	// until the draft is committed.
	Value() V
	// SetValue binds v and switches to View
	SetValue(v V)

	SetAddState()
	SetEditState()
	SetViewState()

	// AddField commits the draft into a new value and signals Add upward
	AddField() error
	// AddUndo discards in-progress edits and returns to the last committed state
	AddUndo()
	// CancelField signals Cancel upward so the owner can confirm the discard
	CancelField()
	// FireAction signals a caller-defined action upward
	FireAction(name string, payload any)
	// HasUnsavedData reports widget values not yet committed
	HasUnsavedData() bool
	// RemoveField signals Remove upward carrying the bound value and the record
	RemoveField()
	// SaveField commits the nested form into the bound value and switches to View
	SaveField() error

	// Bind sets where upward events go
	Bind(sink Sink)
	// View renders the record for its state
	View() string
}

// Template describes one kind of record
type Template[V any] interface {
	// Build registers the record's fields on f
	Build(f *form.DynamicForm[V]) error
	// Clone returns a working copy that edits may change without touching
	// v. Slices a form writes back must not be shared with v.
	Clone(v V) V
	// New returns an empty draft value
	New() V
	// Summary is the one-line text shown in View state
	Summary(v V) string
}

// Nestable is implemented by fields wrapping a ComplexInputForm so that
// the enclosing record can become its parent
type Nestable interface {
	SetParent(parent Sink)
}
