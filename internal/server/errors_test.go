package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/mindwell/internal/schemas"
	"github.com/jonathan/mindwell/internal/survey"
	"github.com/jonathan/mindwell/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{Resource: "journal entry"}
	assert.Equal(t, "journal entry not found", err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "date", Message: "invalid format"}
	assert.Equal(t, "validation error: date - invalid format", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))

	assert.Equal(t, "bad", (&ErrValidation{Message: "bad"}).Error())
}

func TestErrForbidden(t *testing.T) {
	err := &ErrForbidden{Action: "create quiz"}
	assert.Equal(t, "forbidden: create quiz", err.Error())
	assert.Equal(t, http.StatusForbidden, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	fieldErr := (&types.MoodRequest{Score: 11}).Validate()
	require.Error(t, fieldErr)

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", &ErrNotFound{Resource: "alert"}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", &ErrNotFound{Resource: "quiz"}), http.StatusNotFound},
		{"forbidden", &ErrForbidden{Action: "x"}, http.StatusForbidden},
		{"validation", &ErrValidation{Field: "f", Message: "m"}, http.StatusBadRequest},
		{"validator field errors", fieldErr, http.StatusBadRequest},
		{"schema errors", &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "(root)", Message: "m"}}}, http.StatusBadRequest},
		{"unknown survey", &survey.UnknownTypeError{Type: "mystery"}, http.StatusBadRequest},
		{"undecodable survey", &survey.DecodeError{Cause: assert.AnError}, http.StatusBadRequest},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
		{"nil error", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestValidationDetails(t *testing.T) {
	err := (&types.MoodRequest{Score: 0}).Validate()
	assert.Equal(t, map[string]string{"Score": "required"}, validationDetails(err))

	schemaErr := &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "elements", Message: "is required"}}}
	assert.Equal(t, map[string]string{"elements": "is required"}, validationDetails(schemaErr))

	assert.Nil(t, validationDetails(assert.AnError))
}
