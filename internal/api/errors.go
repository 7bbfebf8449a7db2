package api

import (
	"errors"
	"net/http"

	"github.com/bhasha-shikkha/coach-api/internal/domain"
	"github.com/bhasha-shikkha/coach-api/internal/service/review"
	"github.com/bhasha-shikkha/coach-api/internal/service/session"
	"github.com/bhasha-shikkha/coach-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, review.ErrEmptyWord),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, session.ErrNoVocabulary):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrUnsupportedLanguage):
		return "Unsupported language"

	case errors.Is(err, review.ErrEmptyWord):
		return "Word cannot be empty"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, store.ErrProgressNotFound):
		return "Word progress not found"

	case errors.Is(err, session.ErrNoVocabulary):
		return "No vocabulary available"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Already exists"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}
