package validator

import (
	"fmt"
	"io"
	"path"
	"strings"
	"testing"

	"github.com/jacoelho/xsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapResolver serves schema documents from a map, resolving relative
// locations against the including document the same way the HTTP resolver
// resolves them against URLs.
type mapResolver map[string]string

func (m mapResolver) Resolve(req xsd.ResolveRequest) (io.ReadCloser, string, error) {
	systemID := req.SchemaLocation
	if req.BaseSystemID != "" && !strings.Contains(req.SchemaLocation, "://") {
		systemID = path.Join(path.Dir(req.BaseSystemID), req.SchemaLocation)
	}
	doc, ok := m[systemID]
	if !ok {
		return nil, "", fmt.Errorf("no such schema document: %s", systemID)
	}
	return io.NopCloser(strings.NewReader(doc)), systemID, nil
}

const personSchema = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns="http://example.com/person"
           targetNamespace="http://example.com/person"
           elementFormDefault="qualified">
  <xs:element name="person">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="name" type="xs:string"/>
        <xs:element name="age" type="xs:integer"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func newPersonValidator(t *testing.T) Validator {
	t.Helper()
	v, err := NewXSD("person.xsd", mapResolver{"person.xsd": personSchema})
	require.NoError(t, err)
	return v
}

func TestNewXSDResolvesIncludes(t *testing.T) {
	t.Parallel()

	root := `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns="http://example.com/md"
           targetNamespace="http://example.com/md"
           elementFormDefault="qualified">
  <xs:include schemaLocation="parts/title.xsd"/>
  <xs:element name="resource">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="title" type="titleType"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`
	title := `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           targetNamespace="http://example.com/md">
  <xs:simpleType name="titleType">
    <xs:restriction base="xs:string">
      <xs:minLength value="1"/>
    </xs:restriction>
  </xs:simpleType>
</xs:schema>`

	v, err := NewXSD("metadata.xsd", mapResolver{
		"metadata.xsd":    root,
		"parts/title.xsd": title,
	})
	require.NoError(t, err)

	require.NoError(t, v.Validate([]byte(`<resource xmlns="http://example.com/md"><title>ok</title></resource>`)))

	err = v.Validate([]byte(`<resource xmlns="http://example.com/md"><title></title></resource>`))
	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation, "empty title violates minLength from the included document")
}

func TestNewXSDFailsOnUnparsableSchema(t *testing.T) {
	t.Parallel()
	_, err := NewXSD("broken.xsd", mapResolver{"broken.xsd": "<xs:schema"})
	require.Error(t, err)
}

func TestXSDValidate(t *testing.T) {
	t.Parallel()
	v := newPersonValidator(t)

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()
		doc := `<person xmlns="http://example.com/person"><name>Ada</name><age>36</age></person>`
		require.NoError(t, v.Validate([]byte(doc)))
	})

	t.Run("schema violation has message", func(t *testing.T) {
		t.Parallel()
		doc := `<person xmlns="http://example.com/person"><name>Ada</name><age>unknown</age></person>`
		err := v.Validate([]byte(doc))
		require.Error(t, err)

		var violation *SchemaViolationError
		require.ErrorAs(t, err, &violation)
		assert.NotEmpty(t, violation.Error())
		assert.NotNil(t, violation.Unwrap())
	})

	t.Run("missing required element", func(t *testing.T) {
		t.Parallel()
		doc := `<person xmlns="http://example.com/person"><name>Ada</name></person>`
		err := v.Validate([]byte(doc))

		var violation *SchemaViolationError
		require.ErrorAs(t, err, &violation)
	})

	t.Run("malformed xml", func(t *testing.T) {
		t.Parallel()
		err := v.Validate([]byte(`<person xmlns="http://example.com/person"><name>Ada`))
		require.Error(t, err)

		var malformed *MalformedDocumentError
		require.ErrorAs(t, err, &malformed)
		assert.Contains(t, err.Error(), "not well-formed")
	})

	t.Run("empty input is malformed", func(t *testing.T) {
		t.Parallel()
		err := v.Validate(nil)
		var malformed *MalformedDocumentError
		require.ErrorAs(t, err, &malformed)
	})
}

func TestCheckWellFormedXML(t *testing.T) {
	t.Parallel()

	assert.NoError(t, checkWellFormedXML([]byte(`<a><b attr="1">text</b></a>`)))
	assert.Error(t, checkWellFormedXML([]byte(`<a><b></a>`)))
	assert.Error(t, checkWellFormedXML([]byte(`plain text`)))
}
