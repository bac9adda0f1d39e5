package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/go-termfmt"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	now func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{now: time.Now}
}

func (f *markdownFormatter) Format(outcomes []Outcome) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# AI Content Detection Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", f.now().Format("2006-01-02 15:04:05"))

	f.writeSummaryTable(&b, summarize(outcomes))
	f.writeResultsTable(&b, outcomes)
	f.writeFailures(&b, outcomes)

	b.WriteString("---\n")
	b.WriteString("*Scores are simulated and do not reflect real content analysis*\n")

	return []byte(b.String()), nil
}

// writeSummaryTable writes batch totals
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, s summary) {
	b.WriteString("## Summary\n\n")

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Files | %d |\n", s.total)
	fmt.Fprintf(b, "| Scored | %d |\n", s.scored)
	fmt.Fprintf(b, "| Failed | %d |\n", s.failed)
	fmt.Fprintf(b, "| High Probability | %d |\n", s.high)
	fmt.Fprintf(b, "| Mean Probability | %.1f%% |\n\n", s.mean*100)
}

// writeResultsTable writes one row per scored file
func (f *markdownFormatter) writeResultsTable(b *strings.Builder, outcomes []Outcome) {
	b.WriteString("## Results\n\n")

	opts := termfmt.DefaultOptions()
	opts.Color = false

	b.WriteString("| File | Size | Probability | Bucket | Duration |\n")
	b.WriteString("|------|------|-------------|--------|----------|\n")
	for _, o := range outcomes {
		if o.Failed() {
			continue
		}
		r := o.Result
		bucket := r.Probability.Bucket()
		fmt.Fprintf(b, "| %s | %s | %s | %s %s | %s |\n",
			escapeMarkdownCell(r.File.Name),
			formatSize(r.File.Size),
			r.Probability.Percent(),
			getBucketEmoji(bucket, opts), bucket.String(),
			r.Duration().String())
	}
	b.WriteString("\n")
}

// writeFailures lists files that could not be scored
func (f *markdownFormatter) writeFailures(b *strings.Builder, outcomes []Outcome) {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	if len(failed) == 0 {
		return
	}

	b.WriteString("## Failures\n\n")
	for _, o := range failed {
		fmt.Fprintf(b, "- **%s**: %s\n", o.File.Name, o.Error)
	}
	b.WriteString("\n")
}

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
