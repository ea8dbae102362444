// Package extraction - schema.go validates extractor output before it is trusted.
package extraction

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// parsedResumeSchema is the JSON Schema the extractor's payload must satisfy.
// It rejects responses with wrongly typed fields before unmarshalling; all
// fields are optional because absence is a valid extraction result.
const parsedResumeSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": ["string", "null"]},
    "email": {"type": ["string", "null"]},
    "phone": {"type": ["string", "null"]},
    "title": {"type": ["string", "null"]},
    "location": {"type": ["string", "null"]},
    "summary": {"type": ["string", "null"]},
    "skills": {"type": ["array", "null"], "items": {"type": "string"}},
    "experience": {"type": ["string", "null"]},
    "work_history": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": ["string", "null"]},
          "company": {"type": ["string", "null"]},
          "duration": {"type": ["string", "null"]},
          "description": {"type": ["string", "null"]}
        }
      }
    },
    "education": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "degree": {"type": ["string", "null"]},
          "institution": {"type": ["string", "null"]},
          "year": {"type": ["string", "null"]}
        }
      }
    },
    "certifications": {"type": ["array", "null"], "items": {"type": "string"}},
    "ats_score": {"type": ["number", "null"]}
  }
}`

var resumeSchemaLoader = gojsonschema.NewStringLoader(parsedResumeSchema)

// ValidateResumeJSON checks that raw extractor output conforms to the
// ParsedResume shape. Returns a ParseError describing the first violations.
func ValidateResumeJSON(raw string) error {
	result, err := gojsonschema.Validate(resumeSchemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return &ParseError{Message: "response is not valid JSON", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for i, desc := range result.Errors() {
		if i >= 3 {
			break
		}
		problems = append(problems, desc.String())
	}
	return &ParseError{Message: fmt.Sprintf("response does not match resume schema: %s", strings.Join(problems, "; "))}
}
