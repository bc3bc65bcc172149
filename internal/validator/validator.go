// Package validator provides engine-agnostic document validation.
//
// Two concrete engines are wrapped: an XML Schema (XSD 1.0) engine for the
// XML metadata flavors and a JSON Schema engine for the JSON rendition of
// DataCite. Both distinguish documents that cannot be parsed at all from
// documents that parse but do not conform.
package validator

// A Validator checks a raw document against a compiled schema. A nil return
// means the document conforms. Compiled validators are immutable and may be
// reused for any number of documents.
type Validator interface {
	// Validate returns a *MalformedDocumentError if data is not well-formed,
	// a *SchemaViolationError if it is well-formed but does not conform, and
	// nil otherwise.
	Validate(data []byte) error
}
