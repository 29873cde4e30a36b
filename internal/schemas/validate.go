// Package schemas validates client-supplied JSON documents against the
// embedded JSON Schemas: drawing scenes and authored quiz question sets.
package schemas

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Embedded schema names.
const (
	Scene         = "scene.schema.json"
	QuizQuestions = "quiz_questions.schema.json"
)

//go:embed *.schema.json
var schemaFiles embed.FS

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Summary is a single-line form of the first few errors, for API responses.
func (ve *ValidationError) Summary() string {
	parts := make([]string, 0, 3)
	for i, err := range ve.Errors {
		if i == 3 {
			parts = append(parts, fmt.Sprintf("and %d more", len(ve.Errors)-3))
			break
		}
		parts = append(parts, err.Field+": "+err.Message)
	}
	return strings.Join(parts, "; ")
}

// Names lists the embedded schemas.
func Names() []string {
	return []string{Scene, QuizQuestions}
}

// load compiles an embedded schema once.
func load(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "unknown schema", Cause: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "schema failed to compile", Cause: err}
	}
	compiled[name] = s
	return s, nil
}

// Validate checks doc against the named embedded schema.
func Validate(name string, doc []byte) error {
	s, err := load(name)
	if err != nil {
		return err
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "invalid JSON: " + err.Error()}}}
	}
	return toValidationError(result)
}

// ValidateScene checks a drawing scene payload.
func ValidateScene(doc []byte) error {
	return Validate(Scene, doc)
}

// ValidateQuizQuestions checks an authored quiz question set.
func ValidateQuizQuestions(doc []byte) error {
	return Validate(QuizQuestions, doc)
}

// ValidateFile validates a JSON file on disk against the named embedded schema.
func ValidateFile(name, jsonPath string) error {
	absPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", absPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	return Validate(name, data)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
