package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"
)

// csvFormatter formats outcomes as CSV, one row per file
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(outcomes []Outcome) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"File",
		"Path",
		"Size",
		"Probability",
		"Percent",
		"Bucket",
		"Finished At",
		"Duration (ms)",
		"Error",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, o := range outcomes {
		record := []string{
			o.File.Name,
			o.File.Path,
			fmt.Sprintf("%d", o.File.Size),
			"", "", "", "", "",
			escapeCSVString(o.Error),
		}
		if !o.Failed() {
			r := o.Result
			record[3] = formatProbability(r.Probability)
			record[4] = r.Probability.Percent()
			record[5] = r.Probability.Bucket().String()
			record[6] = formatCSVTime(r.FinishedAt)
			record[7] = fmt.Sprintf("%d", r.Duration().Milliseconds())
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// formatCSVTime formats time for CSV output
func formatCSVTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// escapeCSVString flattens and truncates free text for CSV
func escapeCSVString(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	if len(s) > 100 {
		s = s[:97] + "..."
	}

	return s
}
