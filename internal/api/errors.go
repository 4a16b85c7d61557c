package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/wordbank/internal/domain"
	"github.com/phrazzld/wordbank/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking their types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusConflict

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrContentTooLong),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, store.ErrWordNotFound), errors.Is(err, store.ErrNotFound):
		return "Word not found"
	case errors.Is(err, store.ErrDuplicate):
		return "Word already exists"
	case errors.Is(err, domain.ErrEmptyContent):
		return "Word and translation are required"
	case errors.Is(err, domain.ErrContentTooLong):
		return fmt.Sprintf("Word and translation must be at most %d characters", domain.MaxWordLength)
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return "Invalid word data"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator output into a short message
// naming the first failing field.
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
	default:
		return "validation failed"
	}
}
