// Package report renders validation outcomes as text or JSON.
package report

import (
	"io"
	"time"

	"github.com/unna97/topst/internal/schema"
)

// Result is the outcome of validating one document: the (valid, message)
// pair plus where it came from and which flavor it was checked against.
type Result struct {
	Path    string
	Flavor  schema.Flavor
	Valid   bool
	Message string
}

// Report collects the results of one validation run.
type Report struct {
	StartTime time.Time
	EndTime   time.Time
	Results   []Result
}

// Failures counts the invalid documents.
func (r *Report) Failures() int {
	n := 0
	for _, res := range r.Results {
		if !res.Valid {
			n++
		}
	}
	return n
}

// Reporter writes a Report to w.
type Reporter interface {
	Write(w io.Writer, r *Report) error
}
