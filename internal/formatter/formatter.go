package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/aidetect/internal/detect"
)

// Outcome is the result of scoring one file. Exactly one of Result and
// Error is set.
type Outcome struct {
	File   detect.SelectedFile
	Result *detect.Result
	Error  string
}

// Failed reports whether scoring the file failed
func (o Outcome) Failed() bool {
	return o.Result == nil
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(outcomes []Outcome) ([]byte, error)
}

// Formats lists the supported output formats
var Formats = []string{"text", "json", "markdown", "csv"}

// New returns the formatter for a format name
func New(format string, color bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
}
