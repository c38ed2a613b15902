package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/docextract/internal/api/shared"
	"github.com/phrazzld/docextract/internal/batch"
	"github.com/phrazzld/docextract/internal/domain"
	"github.com/phrazzld/docextract/internal/service"
	"github.com/phrazzld/docextract/internal/service/auth"
	"github.com/phrazzld/docextract/internal/store"
)

// ErrInvalidID is returned for malformed extraction ids in the path.
var ErrInvalidID = errors.New("invalid extraction id")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrExtractionNotOwned):
		return http.StatusForbidden

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, ErrInvalidID),
		errors.Is(err, shared.ErrInvalidRequestBody),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrNoItems),
		errors.Is(err, service.ErrTooManyItems),
		errors.Is(err, service.ErrInvalidPagination),
		isDomainValidationError(err):
		return http.StatusBadRequest

	case errors.Is(err, batch.ErrCancelled),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, service.ErrExtractionNotOwned):
		return "You do not own this extraction"
	case errors.Is(err, store.ErrNotFound):
		return "Extraction not found"
	case errors.Is(err, store.ErrDuplicate):
		return "Extraction already exists"

	case errors.Is(err, ErrInvalidID):
		return "Invalid extraction ID"
	case errors.Is(err, shared.ErrInvalidRequestBody):
		return "Invalid request format"
	case errors.Is(err, service.ErrNoItems):
		return "At least one id is required"
	case errors.Is(err, service.ErrTooManyItems):
		return "Too many ids in one request"
	case errors.Is(err, service.ErrInvalidPagination):
		return "Invalid pagination parameters"
	case errors.Is(err, domain.ErrEmptyDocumentName):
		return "Document name is required"
	case errors.Is(err, domain.ErrDocumentNameTooLong):
		return "Document name is too long"
	case errors.Is(err, store.ErrInvalidEntity), isDomainValidationError(err):
		return "Invalid extraction data"

	case errors.Is(err, batch.ErrCancelled), errors.Is(err, context.Canceled):
		return "Operation cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "Operation timed out"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and safe message for err, logging
// the redacted original. A non-empty fallback replaces the generic message
// for internal errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// HandleValidationError responds 400 with a field-level message.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

// SanitizeValidationError turns validator errors into a short message that
// names the first offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

func isDomainValidationError(err error) bool {
	return errors.Is(err, domain.ErrEmptyExtractionID) ||
		errors.Is(err, domain.ErrEmptyUserID) ||
		errors.Is(err, domain.ErrEmptyDocumentName) ||
		errors.Is(err, domain.ErrDocumentNameTooLong) ||
		errors.Is(err, domain.ErrInvalidExtractionStatus) ||
		errors.Is(err, domain.ErrInvalidFields)
}
