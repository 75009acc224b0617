package domain

import "time"

// ValueKind is the declared value type of an input field.
// The set is closed: a form only knows how to move these kinds between
// a data object and a widget.
type ValueKind int

const (
	KindString ValueKind = iota + 1
	KindDate
	KindBool
	KindList
	KindDateRange
	KindLong
	KindDouble
	KindObject
	KindInteger
)

var kindNames = map[ValueKind]string{
	KindString:    "string",
	KindDate:      "date",
	KindBool:      "bool",
	KindList:      "list",
	KindDateRange: "date_range",
	KindLong:      "long",
	KindDouble:    "double",
	KindObject:    "object",
	KindInteger:   "integer",
}

// SupportedKinds lists every kind a form can bind, in declaration order.
func SupportedKinds() []ValueKind {
	return []ValueKind{
		KindString, KindDate, KindBool, KindList, KindDateRange,
		KindLong, KindDouble, KindObject, KindInteger,
	}
}

// Supported reports whether k is one of the bindable kinds.
func (k ValueKind) Supported() bool {
	_, ok := kindNames[k]
	return ok
}

func (k ValueKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// DateRange is a value object carrying a start and an end date.
type DateRange struct {
	End   time.Time
	Start time.Time
}

// IsZero reports whether neither bound is set
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Ordered reports whether Start is not after End. Open ranges are ordered.
func (r DateRange) Ordered() bool {
	if r.Start.IsZero() || r.End.IsZero() {
		return true
	}
	return !r.Start.After(r.End)
}
