package batch

// Status describes the state of a single result slot.
type Status int

const (
	// StatusPending is the zero value; a slot is only pending while its
	// operation has not finished. Execute never returns pending slots.
	StatusPending Status = iota
	StatusSucceeded
	StatusFailed
	StatusCancelled
)

// String returns the lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is the result of running the operation on the item at Index.
// Value is only meaningful when Status is StatusSucceeded; Err is set for
// failed and cancelled slots.
type Outcome[R any] struct {
	Index  int
	Status Status
	Value  R
	Err    error
}

// OK reports whether the operation succeeded.
func (o Outcome[R]) OK() bool {
	return o.Status == StatusSucceeded
}

// Succeeded builds a successful outcome.
func Succeeded[R any](index int, value R) Outcome[R] {
	return Outcome[R]{Index: index, Status: StatusSucceeded, Value: value}
}

// Failed builds a failed outcome carrying err.
func Failed[R any](index int, err error) Outcome[R] {
	return Outcome[R]{Index: index, Status: StatusFailed, Err: err}
}

// Cancelled builds an outcome for an item that never ran.
func Cancelled[R any](index int, err error) Outcome[R] {
	return Outcome[R]{Index: index, Status: StatusCancelled, Err: err}
}
