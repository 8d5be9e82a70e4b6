package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidTemplate is returned when a template fails schema validation.
var ErrInvalidTemplate = errors.New("invalid template")

// TemplateSchema is the JSON schema every stored template must satisfy.
const TemplateSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "attributes"],
  "properties": {
    "name": {"type": "string"},
    "symbol": {"type": "string"},
    "description": {"type": "string"},
    "seller_fee_basis_points": {"type": "integer", "minimum": 0, "maximum": 10000},
    "image": {"type": "string"},
    "animation_url": {"type": "string"},
    "external_url": {"type": "string"},
    "attributes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["trait_type", "value"],
        "properties": {
          "trait_type": {"type": ["string", "number"]},
          "value": {"type": ["string", "number", "boolean"]}
        }
      }
    },
    "properties": {
      "type": "object",
      "properties": {
        "category": {"type": "string"},
        "files": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["uri"],
            "properties": {
              "uri": {"type": "string"},
              "type": {"type": "string"}
            }
          }
        },
        "creators": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["address", "share"],
            "properties": {
              "address": {"type": "string"},
              "share": {"type": "integer", "minimum": 0, "maximum": 100}
            }
          }
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(TemplateSchema))
	})
	return schema, schemaErr
}

// ValidateTemplate checks raw template JSON against TemplateSchema.
// Violations are reported as one ErrInvalidTemplate listing every problem.
func ValidateTemplate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile template schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidTemplate, strings.Join(problems, "; "))
}

// ParseTemplate validates and decodes raw template JSON.
func ParseTemplate(raw []byte) (*Template, error) {
	if err := ValidateTemplate(raw); err != nil {
		return nil, err
	}
	var t Template
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	if t.Attributes == nil {
		t.Attributes = []Attribute{}
	}
	return &t, nil
}
