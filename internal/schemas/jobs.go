// Package schemas provides JSON Schema validation for bulk job import
// payloads.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// jobsImportSchema validates the payload of POST /api/jobs/import: a
// non-empty array of job objects in transport form (skills as a
// semicolon-delimited string).
const jobsImportSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"title": "JobsImport",
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["job_id", "title", "company", "description"],
		"properties": {
			"job_id": {"type": "string", "minLength": 1},
			"title": {"type": "string", "minLength": 1},
			"company": {"type": "string", "minLength": 1},
			"location": {"type": "string"},
			"description": {"type": "string", "minLength": 1},
			"skills": {"type": "string"}
		},
		"additionalProperties": false
	}
}`

// ValidationError reports schema violations with their field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("job import validation failed:")
	for _, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf("\n  %s: %s", fe.Field, fe.Message))
	}
	return sb.String()
}

// ValidateJobsImport checks a raw JSON payload against the job import
// schema. It returns a *ValidationError describing every violation, or
// a plain error if the schema itself cannot be evaluated.
func ValidateJobsImport(payload []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(jobsImportSchema),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to validate job import payload: %w", err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}
