package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by services. The API layer maps them to HTTP
// status codes.
var (
	// ErrExtractionNotOwned indicates the extraction belongs to another user.
	// API layer should map this to HTTP 403 Forbidden.
	ErrExtractionNotOwned = errors.New("extraction is owned by another user")

	// ErrTooManyItems indicates a batch request exceeded the configured maximum.
	ErrTooManyItems = errors.New("too many items in batch")

	// ErrNoItems indicates a batch request without any ids.
	ErrNoItems = errors.New("batch contains no items")

	// ErrInvalidPagination indicates a negative limit or offset.
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)

// ServiceError records which service operation failed.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service %s failed: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewExtractionServiceError wraps err for an extraction service operation.
func NewExtractionServiceError(operation string, err error) *ServiceError {
	return &ServiceError{Service: "extraction", Operation: operation, Err: err}
}
