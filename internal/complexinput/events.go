package complexinput

// Event is a message passed from a record up through its owning forms.
// Payloads cross forms of different record types, so items and sources
// are carried untyped.
type Event interface {
	EventName() string
}

// Sink receives events from below
type Sink interface {
	Notify(ev Event)
}

// SinkFunc adapts a function to a Sink
type SinkFunc func(ev Event)

// Notify calls f(ev)
func (f SinkFunc) Notify(ev Event) { f(ev) }

// AddEvent is fired when the add slot asks to append its record
type AddEvent struct {
	Item   any
	Source any
}

// RemoveEvent is fired by a record asking to be removed and, once the
// removal is confirmed and applied, by its owner
type RemoveEvent struct {
	Item   any
	Source any
}

// CancelEvent is fired by a record asking to discard its edits and, once
// the edits are discarded, by its owner
type CancelEvent struct {
	Item   any
	Source any
}

// FieldAddEvent is fired after a new record has been committed to the list
type FieldAddEvent struct {
	Item   any
	Source any
}

// ActionEvent carries a caller-defined action
type ActionEvent struct {
	Item    any
	Name    string
	Payload any
	Source  any
}

// ConfirmationEvent asks the application whether a destructive step may proceed
type ConfirmationEvent struct {
	Confirmation  *Confirmation
	HasSideEffect bool // the record holds unsaved data
	Item          any
	Reason        string // action awaiting confirmation, e.g. "remove"
	Source        any
}

func (AddEvent) EventName() string          { return "add" }
func (RemoveEvent) EventName() string       { return "remove" }
func (CancelEvent) EventName() string       { return "cancel" }
func (FieldAddEvent) EventName() string     { return "field_add" }
func (ActionEvent) EventName() string       { return "action" }
func (ConfirmationEvent) EventName() string { return "confirmation" }
