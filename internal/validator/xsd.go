package validator

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/jacoelho/xsd"
)

// NewXSD compiles an XML Schema rooted at rootLocation, resolving every
// include and import through the given resolver. The resolver decides how
// schemaLocation values map to documents, which is where remote schema
// repositories are wired in.
//
// Imports without a schemaLocation are tolerated so that schemas referencing
// well-known namespaces (such as xml.xsd) still compile when the resolver
// cannot supply them.
func NewXSD(rootLocation string, resolver xsd.Resolver) (Validator, error) {
	engine, err := xsd.CompileFS(nil, rootLocation,
		xsd.WithResolver(resolver),
		xsd.WithAllowMissingImportLocations(true),
	)
	if err != nil {
		return nil, err
	}
	return &xsdValidator{engine: engine}, nil
}

// xsdValidator wraps a compiled xsd.Engine to implement Validator.
type xsdValidator struct {
	engine *xsd.Engine
}

func (v *xsdValidator) Validate(data []byte) error {
	// Well-formedness is checked first so that a parse failure is never
	// reported as a schema violation.
	if err := checkWellFormedXML(data); err != nil {
		return &MalformedDocumentError{Wrapped: err}
	}
	if err := v.engine.Validate(bytes.NewReader(data)); err != nil {
		return &SchemaViolationError{Wrapped: err}
	}
	return nil
}

// checkWellFormedXML walks the token stream to the end without building a
// tree. Any tokenisation error means the document is not well-formed, as
// does a document with no root element at all.
func checkWellFormedXML(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	sawElement := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if !sawElement {
				return fmt.Errorf("no root element")
			}
			return nil
		}
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}
}
