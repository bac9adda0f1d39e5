package formatter

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/yildizm/aidetect/internal/detect"
	"github.com/yildizm/go-termfmt"
)

// summary aggregates a batch of outcomes
type summary struct {
	total  int
	scored int
	failed int
	mean   float64
	high   int
}

func summarize(outcomes []Outcome) summary {
	var s summary
	var sum float64
	for _, o := range outcomes {
		s.total++
		if o.Failed() {
			s.failed++
			continue
		}
		s.scored++
		sum += float64(o.Result.Probability)
		if o.Result.Probability.Bucket() == detect.BucketHigh {
			s.high++
		}
	}
	if s.scored > 0 {
		s.mean = sum / float64(s.scored)
	}
	return s
}

// getBucketEmoji returns the emoji for a probability bucket using go-termfmt
func getBucketEmoji(bucket detect.Bucket, opts *termfmt.TerminalOptions) string {
	switch bucket {
	case detect.BucketHigh:
		return termfmt.GetEmoji("error", opts)
	case detect.BucketMedium:
		return termfmt.GetEmoji("warning", opts)
	default:
		return termfmt.GetEmoji("info", opts)
	}
}

// formatSize formats a file size for display
func formatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

// formatProbability formats a raw probability with four decimals
func formatProbability(p detect.Probability) string {
	return fmt.Sprintf("%.4f", float64(p))
}
