package annotate

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// responseSchema is the envelope the provider payload must satisfy before any
// field is trusted. It is deliberately permissive about leaf values (the Years
// type absorbs odd experience encodings) but strict about the envelope shape.
const responseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["jobAnalysis", "candidates"],
  "properties": {
    "jobAnalysis": {
      "type": "object",
      "properties": {
        "mustHaveSkills": {"type": "array", "items": {"type": "string"}},
        "goodToHaveSkills": {"type": "array", "items": {"type": "string"}},
        "softSkills": {"type": "array", "items": {"type": "string"}},
        "jobTitle": {"type": "string"}
      }
    },
    "candidates": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string"},
          "matchedKeywords": {"type": "array", "items": {"type": "string"}},
          "missingKeywords": {"type": "array", "items": {"type": "string"}},
          "whyHigh": {"type": "string"},
          "improvement": {"type": "string"},
          "summary": {"type": "string"}
        }
      }
    }
  }
}`

// validateResponse checks the cleaned provider payload against the envelope
// schema. Returns a descriptive error on the first violation set.
func validateResponse(doc string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(responseSchema),
		gojsonschema.NewStringLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("annotation payload invalid: %s: %s", errs[0].Field(), errs[0].Description())
		}
		return fmt.Errorf("annotation payload invalid")
	}

	return nil
}
