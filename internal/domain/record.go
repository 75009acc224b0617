package domain

// RecordState is the editing state of a single record in a repeating sub-form
type RecordState string

const (
	StateAdd  RecordState = "add"
	StateEdit RecordState = "edit"
	StateView RecordState = "view"
)

// Outcome is the resolution of a discard confirmation
type Outcome string

const (
	OutcomeCancelled Outcome = "cancelled"
	OutcomeConfirmed Outcome = "confirmed"
	OutcomeDeclined  Outcome = "declined"
	OutcomePending   Outcome = "pending"
)

// Identified is implemented by record values that carry an identity.
// Records materialized from the add slot get a fresh identity assigned.
type Identified interface {
	ID() string
	SetID(id string)
}
