// Package server provides the MindWell HTTP REST API.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/mindwell/internal/schemas"
	"github.com/jonathan/mindwell/internal/survey"
)

// ErrNotFound indicates the entity does not exist or is not the caller's
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
	Details map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrForbidden indicates the caller may not perform the action
type ErrForbidden struct {
	Action string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Action)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound   *ErrNotFound
		validation *ErrValidation
		forbidden  *ErrForbidden
		fields     validator.ValidationErrors
		schemaErr  *schemas.ValidationError
		unknown    *survey.UnknownTypeError
		decode     *survey.DecodeError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &validation), errors.As(err, &fields), errors.As(err, &schemaErr),
		errors.As(err, &unknown), errors.As(err, &decode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// validationDetails maps each failed field to the rule it broke.
func validationDetails(err error) map[string]string {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		out := make(map[string]string, len(fields))
		for _, f := range fields {
			out[f.Field()] = f.Tag()
		}
		return out
	}
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		out := make(map[string]string, len(schemaErr.Errors))
		for _, f := range schemaErr.Errors {
			out[f.Field] = f.Message
		}
		return out
	}
	var v *ErrValidation
	if errors.As(err, &v) && v.Details != nil {
		return v.Details
	}
	return nil
}
