package detect

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// State is the analysis state derived from a session snapshot
type State int

const (
	StateIdle State = iota
	StateRunning
	StateDone
	StateFailed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Bucket classifies a probability for display
type Bucket int

const (
	BucketLow Bucket = iota
	BucketMedium
	BucketHigh
)

// String returns the bucket name
func (b Bucket) String() string {
	switch b {
	case BucketLow:
		return "low"
	case BucketMedium:
		return "medium"
	case BucketHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Bucket thresholds. Lower bound inclusive, upper bound exclusive.
const (
	MediumThreshold = 0.3
	HighThreshold   = 0.7
)

// Probability is the likelihood that content was machine generated, in [0,1]
type Probability float64

// Bucket returns the display bucket for the probability
func (p Probability) Bucket() Bucket {
	switch {
	case p < MediumThreshold:
		return BucketLow
	case p < HighThreshold:
		return BucketMedium
	default:
		return BucketHigh
	}
}

// Percent formats the probability as a percentage with one decimal
func (p Probability) Percent() string {
	return fmt.Sprintf("%.1f%%", float64(p)*100)
}

// clamp keeps the probability inside [0,1]
func (p Probability) clamp() Probability {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// SelectedFile is the file chosen by the user
type SelectedFile struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// StatFile builds a SelectedFile from a path on disk
func StatFile(path string) (*SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	return &SelectedFile{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
	}, nil
}

// Result is the published outcome of one detection run
type Result struct {
	ID          uuid.UUID    `json:"id"`
	File        SelectedFile `json:"file"`
	Probability Probability  `json:"probability"`
	StartedAt   time.Time    `json:"started_at"`
	FinishedAt  time.Time    `json:"finished_at"`
}

// Duration returns how long the run took
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Run identifies an in-flight detection
type Run struct {
	ID        uuid.UUID
	File      SelectedFile
	StartedAt time.Time
}

// Snapshot is a point-in-time copy of the session state
type Snapshot struct {
	File        *SelectedFile
	Busy        bool
	Probability *Probability
	Error       string
	Progress    int
	RunID       uuid.UUID
}

// State derives the analysis state from the snapshot flags
func (s Snapshot) State() State {
	switch {
	case s.Busy:
		return StateRunning
	case s.Probability != nil:
		return StateDone
	case s.Error != "" && s.File != nil:
		return StateFailed
	default:
		return StateIdle
	}
}

// HasFile reports whether a file is selected
func (s Snapshot) HasFile() bool {
	return s.File != nil
}

// CanTrigger reports whether the detect action is enabled
func (s Snapshot) CanTrigger() bool {
	return s.File != nil && !s.Busy
}
