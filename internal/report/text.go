package report

import (
	"fmt"
	"io"
	"strings"
)

// TextReporter implements Reporter for plain text output.
type TextReporter struct {
	Verbose   bool
	UseColour bool
}

const (
	colReset     = "\033[0m"
	colRed       = "\033[31m"
	colGreen     = "\033[32m"
	colGrey      = "\033[90m"
	colWhite     = "\033[37m"
	colBoldRed   = "\033[1;31m"
	colBoldGreen = "\033[1;32m"
	colBoldWhite = "\033[1;37m"
)

// cs returns a string which will render with the given colour
// if colourisation is enabled.
func (tr *TextReporter) cs(c, s string) string {
	if !tr.UseColour {
		return s
	}
	return c + s + colReset
}

func (tr *TextReporter) Write(w io.Writer, r *Report) error {
	divider := strings.Repeat("-", 40)

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprint(w, tr.cs(colBoldWhite, "TOPST VALIDATION REPORT\n\n"))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Started: "), tr.cs(colWhite, r.StartTime.Format("15:04:05")))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Duration:"), tr.cs(colWhite, r.EndTime.Sub(r.StartTime).String()))
	fmt.Fprintf(w, "%s\n", divider)

	passed := 0
	for _, res := range r.Results {
		if res.Valid {
			passed++
			fmt.Fprintf(w, "%s %s %s\n",
				tr.cs(colGreen, "[VALID]  "),
				tr.cs(colWhite, res.Path),
				tr.cs(colGrey, "("+string(res.Flavor)+")"))
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n",
			tr.cs(colRed, "[INVALID]"),
			tr.cs(colRed, res.Path),
			tr.cs(colGrey, "("+string(res.Flavor)+")"))
		if res.Message != "" {
			if tr.Verbose {
				for _, line := range strings.Split(res.Message, "\n") {
					fmt.Fprintf(w, "  %s %s\n", tr.cs(colRed, "✗"), line)
				}
			} else {
				fmt.Fprintf(w, "  %s %s\n", tr.cs(colRed, "✗"), firstLine(res.Message))
			}
		}
	}

	failed := len(r.Results) - passed
	fmt.Fprintf(w, "%s\n", divider)
	statsColor := colBoldGreen
	if failed > 0 {
		statsColor = colBoldRed
	}
	fmt.Fprintf(w, "%s%s\n",
		tr.cs(colBoldWhite, "Summary: "),
		tr.cs(statsColor, fmt.Sprintf("%d valid, %d invalid", passed, failed)))
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
