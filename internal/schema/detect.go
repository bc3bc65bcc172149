package schema

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/tidwall/gjson"
)

// Namespaces the detector recognises on XML root elements.
const (
	// dataCiteKernel4NS is shared by every 4.x kernel release; the detector
	// maps it to the latest supported release.
	dataCiteKernel4NS = "http://datacite.org/schema/kernel-4"
	pidInstNS         = "http://ods.rd-alliance.org/pidinst"
)

// DetectFlavor guesses the flavor of a document from its content: JSON
// documents by their schemaVersion field, XML documents by the namespace of
// the root element. path is only used for the error message.
func DetectFlavor(data []byte, path string) (Flavor, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return detectJSON(data, path)
	}
	return detectXML(data, path)
}

func detectJSON(data []byte, path string) (Flavor, error) {
	version := gjson.GetBytes(data, "schemaVersion").String()
	if strings.Contains(version, "kernel-4") {
		return FlavorDataCite45JSON, nil
	}
	// Older exports carry the namespace under "xmlns".
	if strings.Contains(gjson.GetBytes(data, "xmlns").String(), "kernel-4") {
		return FlavorDataCite45JSON, nil
	}
	return "", &UndetectableFlavorError{Path: path}
}

func detectXML(data []byte, path string) (Flavor, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", &UndetectableFlavorError{Path: path}
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Space {
		case dataCiteKernel4NS:
			return FlavorDataCite45, nil
		case pidInstNS:
			return FlavorPIDInst, nil
		}
		return "", &UndetectableFlavorError{Path: path}
	}
}
