package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

// NewTerminalWithOptions creates a terminal formatter with explicit options
func NewTerminalWithOptions(color, emoji bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = emoji
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(outcomes []Outcome) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)

	for _, o := range outcomes {
		f.writeOutcome(&b, o)
	}

	if len(outcomes) > 1 {
		f.writeSummary(&b, summarize(outcomes))
	}

	return []byte(b.String()), nil
}

// writeHeader writes a boxed header
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "AI Content Detection"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeOutcome writes one file as a tree
func (f *terminalFormatter) writeOutcome(b *strings.Builder, o Outcome) {
	symbol := termfmt.GetEmoji("statistics", f.opts)

	var items []termfmt.TreeItem
	if o.Failed() {
		fmt.Fprintf(b, "%s %s: %s failed\n", symbol, o.File.Name, termfmt.GetEmoji("error", f.opts))
		items = []termfmt.TreeItem{
			{Label: "Error", Value: o.Error, Last: true},
		}
	} else {
		r := o.Result
		bucket := r.Probability.Bucket()
		fmt.Fprintf(b, "%s %s: %s (%s)\n", symbol, o.File.Name, r.Probability.Percent(), bucket.String())
		items = []termfmt.TreeItem{
			{Label: "AI Content Probability", Value: r.Probability.Percent()},
			{Label: "Confidence", Value: termfmt.CreateConfidenceBar(float64(r.Probability), f.opts)},
			{Label: "Bucket", Value: getBucketEmoji(bucket, f.opts) + " " + bucket.String()},
			{Label: "Size", Value: formatSize(r.File.Size)},
			{Label: "Duration", Value: r.Duration().String(), Last: true},
		}
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeSummary writes batch totals
func (f *terminalFormatter) writeSummary(b *strings.Builder, s summary) {
	symbol := termfmt.GetEmoji("insights", f.opts)
	b.WriteString(symbol + " Summary\n")

	items := []termfmt.TreeItem{
		{Label: "Files", Value: fmt.Sprintf("%d", s.total)},
		{Label: "Scored", Value: fmt.Sprintf("%d", s.scored)},
		{Label: "Failed", Value: fmt.Sprintf("%d", s.failed)},
		{Label: "High Probability", Value: fmt.Sprintf("%d", s.high)},
		{Label: "Mean Probability", Value: fmt.Sprintf("%.1f%%", s.mean*100), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n")
}
