package validator

import (
	"fmt"
)

// MalformedDocumentError reports input that could not be parsed as XML or
// JSON at all. It is raised before any schema conformance checking.
type MalformedDocumentError struct {
	Wrapped error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("document is not well-formed: %v", e.Wrapped)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Wrapped
}

// SchemaViolationError reports a well-formed document that does not conform
// to the schema. The message carries the engine's diagnostic text.
type SchemaViolationError struct {
	Wrapped error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("document does not conform to schema: %v", e.Wrapped)
}

func (e *SchemaViolationError) Unwrap() error {
	return e.Wrapped
}
