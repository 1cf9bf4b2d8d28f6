// Package schemas provides JSON Schema validation for model output.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/company-enricher/schemas"
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

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
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

var (
	enrichmentOnce   sync.Once
	enrichmentSchema *gojsonschema.Schema
	enrichmentErr    error
)

// ValidateEnrichment validates model output against the embedded
// enrichment.schema.json. The schema is compiled once.
func ValidateEnrichment(jsonContent string) error {
	enrichmentOnce.Do(func() {
		enrichmentSchema, enrichmentErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemafiles.Enrichment))
		if enrichmentErr != nil {
			enrichmentErr = &SchemaLoadError{
				Path:    "enrichment.schema.json",
				Message: "schema compilation failed",
				Cause:   enrichmentErr,
			}
		}
	})
	if enrichmentErr != nil {
		return enrichmentErr
	}

	result, err := enrichmentSchema.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return &SchemaLoadError{
			Path:    "(document)",
			Message: "document could not be loaded",
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
