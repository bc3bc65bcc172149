package config

import (
	"fmt"
)

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

type InvalidYAMLError struct {
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("%s is not a valid yaml document: %v", ConfigFile, e.Wrapped)
}

func (e *InvalidYAMLError) Unwrap() error {
	return e.Wrapped
}

type InvalidURLError struct {
	Wrapped  error
	Property string
	Value    string
}

func (e *InvalidURLError) Error() string {
	msg := fmt.Sprintf("%s property %s has invalid URL '%s': must be http(s)",
		ConfigFile, e.Property, e.Value)
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *InvalidURLError) Unwrap() error {
	return e.Wrapped
}

type InvalidTimeoutError struct {
	Value int
}

func (e *InvalidTimeoutError) Error() string {
	return fmt.Sprintf("%s property httpTimeoutSeconds must not be negative, got %d", ConfigFile, e.Value)
}
