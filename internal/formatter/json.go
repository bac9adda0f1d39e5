package formatter

import (
	"encoding/json"
	"time"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(outcomes []Outcome) ([]byte, error) {
	output := &JSONOutput{
		Results: createResultOutputs(outcomes),
		Summary: createSummaryOutput(summarize(outcomes)),
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput represents the JSON document
type JSONOutput struct {
	Results []*ResultOutput `json:"results"`
	Summary *SummaryOutput  `json:"summary"`
}

// ResultOutput represents one scored or failed file
type ResultOutput struct {
	ID          string     `json:"id,omitempty"`
	File        string     `json:"file"`
	Path        string     `json:"path"`
	Size        int64      `json:"size"`
	Probability *float64   `json:"probability,omitempty"`
	Percent     string     `json:"percent,omitempty"`
	Bucket      string     `json:"bucket,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	DurationMs  int64      `json:"duration_ms,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// SummaryOutput represents batch totals
type SummaryOutput struct {
	Total           int     `json:"total"`
	Scored          int     `json:"scored"`
	Failed          int     `json:"failed"`
	High            int     `json:"high"`
	MeanProbability float64 `json:"mean_probability"`
}

// createResultOutputs creates one output entry per outcome
func createResultOutputs(outcomes []Outcome) []*ResultOutput {
	outputs := make([]*ResultOutput, 0, len(outcomes))

	for _, o := range outcomes {
		output := &ResultOutput{
			File: o.File.Name,
			Path: o.File.Path,
			Size: o.File.Size,
		}

		if o.Failed() {
			output.Error = o.Error
			outputs = append(outputs, output)
			continue
		}

		r := o.Result
		p := float64(r.Probability)
		started, finished := r.StartedAt, r.FinishedAt
		output.ID = r.ID.String()
		output.Probability = &p
		output.Percent = r.Probability.Percent()
		output.Bucket = r.Probability.Bucket().String()
		output.StartedAt = &started
		output.FinishedAt = &finished
		output.DurationMs = r.Duration().Milliseconds()

		outputs = append(outputs, output)
	}

	return outputs
}

// createSummaryOutput creates the summary section
func createSummaryOutput(s summary) *SummaryOutput {
	return &SummaryOutput{
		Total:           s.total,
		Scored:          s.scored,
		Failed:          s.failed,
		High:            s.high,
		MeanProbability: s.mean,
	}
}
