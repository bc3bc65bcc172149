package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONReporter implements Reporter for JSON output.
type JSONReporter struct{}

type jsonResult struct {
	Path    string `json:"path"`
	Flavor  string `json:"flavor"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

type jsonOutput struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
	Stats     struct {
		Valid   int `json:"valid"`
		Invalid int `json:"invalid"`
	} `json:"stats"`
	Results []jsonResult `json:"results"`
}

func (jr *JSONReporter) Write(w io.Writer, r *Report) error {
	out := jsonOutput{
		StartTime: r.StartTime.Format(time.RFC3339),
		EndTime:   r.EndTime.Format(time.RFC3339),
		Duration:  r.EndTime.Sub(r.StartTime).String(),
		Results:   make([]jsonResult, 0, len(r.Results)),
	}

	for _, res := range r.Results {
		out.Results = append(out.Results, jsonResult{
			Path:    res.Path,
			Flavor:  string(res.Flavor),
			Valid:   res.Valid,
			Message: res.Message,
		})
		if res.Valid {
			out.Stats.Valid++
		} else {
			out.Stats.Invalid++
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
