package formatter

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yildizm/aidetect/internal/detect"
)

func testOutcomes() []Outcome {
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	report := detect.SelectedFile{Path: "/docs/report.pdf", Name: "report.pdf", Size: 2048}
	essay := detect.SelectedFile{Path: "/docs/essay.txt", Name: "essay.txt", Size: 512}
	broken := detect.SelectedFile{Path: "/docs/notes.doc", Name: "notes.doc", Size: 64}

	return []Outcome{
		{File: report, Result: &detect.Result{
			ID:          uuid.New(),
			File:        report,
			Probability: 0.42,
			StartedAt:   started,
			FinishedAt:  started.Add(2 * time.Second),
		}},
		{File: essay, Result: &detect.Result{
			ID:          uuid.New(),
			File:        essay,
			Probability: 0.9,
			StartedAt:   started,
			FinishedAt:  started.Add(2 * time.Second),
		}},
		{File: broken, Error: detect.MsgDetectionFailed},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"", false},
		{"text", false},
		{"JSON", false},
		{"markdown", false},
		{"md", false},
		{"csv", false},
		{"xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := New(tt.format, false)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported output format: xml")
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestSummarize(t *testing.T) {
	s := summarize(testOutcomes())

	assert.Equal(t, 3, s.total)
	assert.Equal(t, 2, s.scored)
	assert.Equal(t, 1, s.failed)
	assert.Equal(t, 1, s.high)
	assert.InDelta(t, 0.66, s.mean, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := summarize(nil)
	assert.Zero(t, s.total)
	assert.Zero(t, s.mean)
}

func TestTerminalFormat(t *testing.T) {
	out, err := NewTerminalWithOptions(false, false).Format(testOutcomes())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "AI Content Detection")
	assert.Contains(t, text, "report.pdf")
	assert.Contains(t, text, "42.0%")
	assert.Contains(t, text, "90.0%")
	assert.Contains(t, text, "medium")
	assert.Contains(t, text, "high")
	assert.Contains(t, text, detect.MsgDetectionFailed)
	assert.Contains(t, text, "Summary")
}

func TestTerminalFormatSingleHasNoSummary(t *testing.T) {
	out, err := NewTerminal(false).Format(testOutcomes()[:1])
	require.NoError(t, err)

	assert.Contains(t, string(out), "42.0%")
	assert.NotContains(t, string(out), "Summary")
}

func TestJSONFormat(t *testing.T) {
	out, err := NewJSON().Format(testOutcomes())
	require.NoError(t, err)

	var doc JSONOutput
	require.NoError(t, json.Unmarshal(out, &doc))

	require.Len(t, doc.Results, 3)
	first := doc.Results[0]
	assert.Equal(t, "report.pdf", first.File)
	require.NotNil(t, first.Probability)
	assert.InDelta(t, 0.42, *first.Probability, 1e-9)
	assert.Equal(t, "42.0%", first.Percent)
	assert.Equal(t, "medium", first.Bucket)
	assert.Equal(t, int64(2000), first.DurationMs)
	assert.Empty(t, first.Error)

	failed := doc.Results[2]
	assert.Nil(t, failed.Probability)
	assert.Empty(t, failed.Bucket)
	assert.Equal(t, detect.MsgDetectionFailed, failed.Error)

	assert.Equal(t, 3, doc.Summary.Total)
	assert.Equal(t, 1, doc.Summary.Failed)
}

func TestJSONZeroProbabilityKept(t *testing.T) {
	f := detect.SelectedFile{Name: "blank.txt"}
	out, err := NewJSON().Format([]Outcome{{File: f, Result: &detect.Result{File: f, Probability: 0}}})
	require.NoError(t, err)

	assert.Contains(t, string(out), `"probability": 0`)
	assert.Contains(t, string(out), `"bucket": "low"`)
}

func TestMarkdownFormat(t *testing.T) {
	f := &markdownFormatter{now: func() time.Time {
		return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	}}

	out, err := f.Format(testOutcomes())
	require.NoError(t, err)

	md := string(out)
	assert.True(t, strings.HasPrefix(md, "# AI Content Detection Report\n\nGenerated: 2026-03-01 12:30:00"))
	assert.Contains(t, md, "| Files | 3 |")
	assert.Contains(t, md, "| Mean Probability | 66.0% |")
	assert.Contains(t, md, "| report.pdf | 2.0 kB | 42.0% |")
	assert.Contains(t, md, "## Failures")
	assert.Contains(t, md, "- **notes.doc**: "+detect.MsgDetectionFailed)
}

func TestMarkdownNoFailuresSection(t *testing.T) {
	out, err := NewMarkdown().Format(testOutcomes()[:2])
	require.NoError(t, err)
	assert.NotContains(t, string(out), "## Failures")
}

func TestCSVFormat(t *testing.T) {
	out, err := NewCSV().Format(testOutcomes())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "File", records[0][0])
	assert.Equal(t, []string{
		"report.pdf", "/docs/report.pdf", "2048", "0.4200", "42.0%", "medium",
		"2026-03-01 10:00:02", "2000", "",
	}, records[1])
	assert.Equal(t, "", records[3][3])
	assert.Equal(t, detect.MsgDetectionFailed, records[3][8])
}

func TestEscapeCSVString(t *testing.T) {
	assert.Equal(t, "a b", escapeCSVString("a\nb"))
	long := strings.Repeat("x", 150)
	assert.Len(t, escapeCSVString(long), 100)
	assert.True(t, strings.HasSuffix(escapeCSVString(long), "..."))
}
