package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned by Execute when the batch cannot be
	// started, for example a non-positive limit or a nil operation.
	ErrInvalidConfiguration = errors.New("invalid batch configuration")

	// ErrPanic marks an item whose operation panicked.
	ErrPanic = errors.New("operation panicked")

	// ErrCancelled marks an item that was never run because the batch context
	// was done before a worker could start it.
	ErrCancelled = errors.New("operation cancelled")
)

// ItemError ties an item failure to its position in the input.
type ItemError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying item error.
func (e *ItemError) Unwrap() error {
	return e.Err
}

// PanicError carries the value and stack of a recovered panic.
// It matches ErrPanic with errors.Is.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v", ErrPanic, e.Value)
}

// Is reports whether target is ErrPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrPanic
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
