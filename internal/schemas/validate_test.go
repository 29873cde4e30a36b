package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchemasCompile(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			_, err := load(name)
			require.NoError(t, err)
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "nope.schema.json", loadErr.Path)
}

func TestValidateScene(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"empty canvas", `{"elements":[]}`, false},
		{"excalidraw export", `{"type":"excalidraw","version":2,"elements":[{"id":"a","type":"text","text":"calm","x":1,"y":2}],"appState":{"viewBackgroundColor":"#fff"},"files":{}}`, false},
		{"missing elements", `{"appState":{}}`, true},
		{"elements not array", `{"elements":{}}`, true},
		{"element without type", `{"elements":[{"text":"hi"}]}`, true},
		{"not an object", `[1,2]`, true},
		{"malformed", `{"elements":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScene([]byte(tt.doc))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %T: %v", err, err)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidateQuizQuestions(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"scale question", `[{"id":"q1","text":"How rested do you feel?","type":"scale","minValue":0,"maxValue":10}]`, false},
		{"choice question", `[{"id":"q1","text":"Pick one","type":"multipleChoice","options":["a","b"],"required":true}]`, false},
		{"free text", `[{"id":"q1","text":"Anything else?","type":"text","required":false}]`, false},
		{"empty set", `[]`, true},
		{"unknown type", `[{"id":"q1","text":"x","type":"slider"}]`, true},
		{"choice without options", `[{"id":"q1","text":"x","type":"checkbox"}]`, true},
		{"choice with one option", `[{"id":"q1","text":"x","type":"multipleChoice","options":["only"]}]`, true},
		{"scale without max", `[{"id":"q1","text":"x","type":"scale"}]`, true},
		{"missing text", `[{"id":"q1","type":"text"}]`, true},
		{"extra field", `[{"id":"q1","text":"x","type":"text","weight":2}]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuizQuestions([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"elements":[]}`), 0o644))

	assert.NoError(t, ValidateFile(Scene, good))

	err := ValidateFile(Scene, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {"name": {"type": "string"}}
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"person": {}}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, validationErr.Errors[0].Field, "person")
}

func TestValidationError_Messages(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "a", Message: "is required"},
			{Field: "b", Message: "must be a number"},
			{Field: "c", Message: "too long"},
			{Field: "d", Message: "too short"},
			{Field: "e", Message: "bad"},
		},
	}

	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "5. e: bad")
	assert.Equal(t, "a: is required; b: must be a number; c: too long; and 2 more", err.Summary())
}
