package schema

import (
	"fmt"
	"strings"
)

type UnsupportedFlavorError struct {
	Flavor Flavor
}

func (e *UnsupportedFlavorError) Error() string {
	names := make([]string, 0, len(definitions))
	for _, f := range Flavors() {
		names = append(names, string(f))
	}
	return fmt.Sprintf("unsupported schema flavor %q - supported flavors are: %s",
		e.Flavor, strings.Join(names, ", "))
}

type UndetectableFlavorError struct {
	Path string
}

func (e *UndetectableFlavorError) Error() string {
	return fmt.Sprintf("cannot detect schema flavor of %s - specify one with --flavor", e.Path)
}

type SchemaFetchError struct {
	URL     string
	Status  string
	Wrapped error
}

func (e *SchemaFetchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("fetching %s failed: %v", e.URL, e.Wrapped)
	}
	return fmt.Sprintf("fetching %s failed: unexpected status %s", e.URL, e.Status)
}

func (e *SchemaFetchError) Unwrap() error {
	return e.Wrapped
}

type InvalidSchemaLocationError struct {
	Location string
	Reason   string
}

func (e *InvalidSchemaLocationError) Error() string {
	return fmt.Sprintf("schema location %q is invalid: %s", e.Location, e.Reason)
}
