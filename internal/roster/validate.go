package roster

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// rosterSchema constrains uploaded roster payloads before they reach the
// store. Mandatory flags are number-or-boolean; string flags fail validation
// up front rather than silently normalizing to false.
const rosterSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "userId": {"type": "string", "minLength": 1},
      "department": {"type": "string"},
      "standupMandatory": {"type": ["number", "boolean"]},
      "trackifyMandatory": {"type": ["number", "boolean"]}
    },
    "required": ["userId"],
    "additionalProperties": true
  }
}`

// ValidateUpload validates a raw roster upload against the roster schema and
// unmarshals it into documents for normalization.
func ValidateUpload(payload []byte) ([]map[string]interface{}, error) {
	schemaLoader := gojsonschema.NewStringLoader(rosterSchema)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to validate roster upload: %w", err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return nil, fmt.Errorf("roster upload rejected: %v", errs)
	}

	var docs []map[string]interface{}
	if err := json.Unmarshal(payload, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse roster upload: %w", err)
	}
	return docs, nil
}
