package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/patient-api/internal/api/shared"
	"github.com/phrazzld/patient-api/internal/domain"
	"github.com/phrazzld/patient-api/internal/store"
)

// ErrBadRequest marks requests that could not be parsed at all: malformed
// JSON, an empty body, a non-numeric path ID or a bad query parameter.
var ErrBadRequest = errors.New("bad request")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusUnprocessableEntity

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
	case errors.Is(err, ErrBadRequest):
		return "Invalid request format"

	// Not found errors
	case errors.Is(err, store.ErrPatientNotFound):
		return "Patient not found"
	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"
	case errors.Is(err, store.ErrItemNotFound):
		return "Item not found"
	case errors.Is(err, store.ErrNotFound):
		return "Record not found"

	// Conflict errors
	case errors.Is(err, store.ErrPatientExists):
		return "Patient already exists"
	case errors.Is(err, store.ErrBookExists):
		return "Book already exists"
	case errors.Is(err, store.ErrItemExists):
		return "Item already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Record already exists"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidID):
		return "Validation failed"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. The status and message
// come from MapErrorToStatusCode and GetSafeErrorMessage; defaultMsg, when
// set, replaces the generic message of a 500. Field diagnostics of a
// *domain.ValidationError are passed through as response details.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	var verr *domain.ValidationError
	if errors.As(err, &verr) && len(verr.Errors) > 0 {
		opts = append(opts, shared.WithDetails(verr.Errors))
	}
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
