// Package schema maps metadata-standard flavors to their published schema
// documents and builds validators for them.
package schema

import (
	"sort"
	"strings"
)

// Flavor identifies a supported metadata standard and serialisation.
type Flavor string

const (
	// FlavorDataCite44 is the DataCite Metadata Schema 4.4 (XML).
	FlavorDataCite44 Flavor = "datacite-4.4"
	// FlavorDataCite45 is the DataCite Metadata Schema 4.5 (XML).
	FlavorDataCite45 Flavor = "datacite-4.5"
	// FlavorPIDInst is the RDA PIDINST instrument-identification schema (XML).
	FlavorPIDInst Flavor = "pidinst"
	// FlavorDataCite45JSON is the JSON Schema rendition of DataCite 4.5.
	FlavorDataCite45JSON Flavor = "datacite-4.5-json"
)

// Format is the serialisation a flavor's documents use.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

// Definition describes where a flavor's schema lives and how it is compiled.
// BaseURL is the prefix that relative schemaLocation values are resolved
// against; RootDocument names the main schema document below it.
type Definition struct {
	Flavor       Flavor
	Format       Format
	BaseURL      string
	RootDocument string
	Description  string
}

// RootURL is the absolute URL of the flavor's main schema document.
func (d Definition) RootURL() string {
	return strings.TrimSuffix(d.BaseURL, "/") + "/" + d.RootDocument
}

var definitions = map[Flavor]Definition{
	FlavorDataCite44: {
		Flavor:       FlavorDataCite44,
		Format:       FormatXML,
		BaseURL:      "https://schema.datacite.org/meta/kernel-4.4/",
		RootDocument: "metadata.xsd",
		Description:  "DataCite Metadata Schema 4.4 (XML)",
	},
	FlavorDataCite45: {
		Flavor:       FlavorDataCite45,
		Format:       FormatXML,
		BaseURL:      "https://schema.datacite.org/meta/kernel-4.5/",
		RootDocument: "metadata.xsd",
		Description:  "DataCite Metadata Schema 4.5 (XML)",
	},
	FlavorPIDInst: {
		Flavor:       FlavorPIDInst,
		Format:       FormatXML,
		BaseURL:      "https://raw.githubusercontent.com/rdawg-pidinst/schema/master/",
		RootDocument: "schema.xsd",
		Description:  "RDA PIDINST instrument schema (XML)",
	},
	FlavorDataCite45JSON: {
		Flavor:       FlavorDataCite45JSON,
		Format:       FormatJSON,
		BaseURL:      "https://raw.githubusercontent.com/datacite/schema/master/source/json/kernel-4.5/",
		RootDocument: "datacite_4.5_schema.json",
		Description:  "DataCite Metadata Schema 4.5 (JSON Schema)",
	},
}

// Lookup returns the definition for f, or an *UnsupportedFlavorError if f is
// not one of the supported flavors.
func Lookup(f Flavor) (Definition, error) {
	d, ok := definitions[f]
	if !ok {
		return Definition{}, &UnsupportedFlavorError{Flavor: f}
	}
	return d, nil
}

// Definitions returns all supported flavors in stable order.
func Definitions() []Definition {
	out := make([]Definition, 0, len(definitions))
	for _, d := range definitions {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Flavor < out[j].Flavor
	})
	return out
}

// Flavors returns the names of all supported flavors in stable order.
func Flavors() []Flavor {
	defs := Definitions()
	out := make([]Flavor, len(defs))
	for i, d := range defs {
		out[i] = d.Flavor
	}
	return out
}
