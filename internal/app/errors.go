package app

import (
	"fmt"
)

type ValidationFailedError struct {
	Invalid int
}

func (e *ValidationFailedError) Error() string {
	if e.Invalid == 1 {
		return "1 document failed validation"
	}
	return fmt.Sprintf("%d documents failed validation", e.Invalid)
}

type NoInputFilesError struct{}

func (e *NoInputFilesError) Error() string {
	return "no input files given - pass one or more XML/JSON documents to validate"
}
