package validator

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// NewJSONSchema fetches the JSON Schema at schemaURL with the given client
// and compiles it. Unlike the XSD path there is no include graph to resolve;
// a single fetch is enough.
func NewJSONSchema(schemaURL string, client *http.Client) (Validator, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("fetch json schema %s: %w", schemaURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch json schema %s: unexpected status %s", schemaURL, resp.Status)
	}

	doc, err := jsonschema.UnmarshalJSON(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse json schema %s: %w", schemaURL, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("register json schema %s: %w", schemaURL, err)
	}
	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile json schema %s: %w", schemaURL, err)
	}

	return &jsonSchemaValidator{schema: compiled}, nil
}

// jsonSchemaValidator wraps a compiled jsonschema.Schema to implement Validator.
type jsonSchemaValidator struct {
	schema *jsonschema.Schema
}

func (v *jsonSchemaValidator) Validate(data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &MalformedDocumentError{Wrapped: err}
	}
	if err := v.schema.Validate(doc); err != nil {
		return &SchemaViolationError{Wrapped: err}
	}
	return nil
}
