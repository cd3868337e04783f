// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/export"
)

// ErrSessionNotFound indicates a token for a session that no longer exists
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		sessionNotFound *ErrSessionNotFound
		unknownField    *builder.ErrUnknownField
		unknownCategory *builder.ErrUnknownCategory
		unknownExtra    *builder.ErrUnknownExtra
		outOfRange      *builder.ErrPositionOutOfRange
		fieldHidden     *builder.ErrFieldHidden
		validation      *ErrValidation
		invalidOrder    *builder.ErrInvalidPermutation
		unknownTemplate *builder.ErrUnknownTemplate
		unsupported     *export.ErrUnsupportedFormat
		validatorErrs   validator.ValidationErrors
		exportErr       *export.ExportError
	)

	switch {
	case errors.As(err, &sessionNotFound),
		errors.As(err, &unknownField),
		errors.As(err, &unknownCategory),
		errors.As(err, &unknownExtra),
		errors.As(err, &outOfRange):
		return http.StatusNotFound
	case errors.As(err, &fieldHidden):
		return http.StatusConflict
	case errors.As(err, &validation),
		errors.As(err, &invalidOrder),
		errors.As(err, &unknownTemplate),
		errors.As(err, &unsupported),
		errors.As(err, &validatorErrs):
		return http.StatusBadRequest
	case errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
