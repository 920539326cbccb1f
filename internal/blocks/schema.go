package blocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrBodyInvalid reports that a raw body payload failed schema validation.
var ErrBodyInvalid = errors.New("blocks: body payload invalid")

// bodySchema constrains the persisted body shape: an ordered array of tagged
// envelopes. Variant payloads stay open objects; the typed decoder owns field
// level strictness, the schema guards the envelope contract at the storage
// boundary.
const bodySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "type": {"type": "string", "minLength": 1},
      "value": {"type": ["object", "null"]}
    },
    "required": ["type"],
    "additionalProperties": false
  }
}`

var (
	bodySchemaOnce     sync.Once
	bodySchemaCompiled *jsonschema.Schema
	bodySchemaErr      error
)

func compiledBodySchema() (*jsonschema.Schema, error) {
	bodySchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("body.json", bytes.NewReader([]byte(bodySchema))); err != nil {
			bodySchemaErr = err
			return
		}
		bodySchemaCompiled, bodySchemaErr = compiler.Compile("body.json")
	})
	return bodySchemaCompiled, bodySchemaErr
}

// ValidateBodyJSON checks a raw body document against the envelope schema
// before it reaches the typed decoder. Empty input is valid.
func ValidateBodyJSON(raw []byte) error {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var doc any
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrBodyInvalid, err)
	}

	schema, err := compiledBodySchema()
	if err != nil {
		return fmt.Errorf("blocks: compile body schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrBodyInvalid, err)
	}
	return nil
}
