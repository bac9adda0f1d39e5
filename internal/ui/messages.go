package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/yildizm/aidetect/internal/detect"
)

// Message types shared by the detection model

// progressTickMsg advances progress for one run
type progressTickMsg struct {
	runID uuid.UUID
}

// detectionDoneMsg carries the detector outcome for one run
type detectionDoneMsg struct {
	runID       uuid.UUID
	probability detect.Probability
	err         error
}

// selectFileMsg selects a file by path, as if picked in the file picker
type selectFileMsg struct {
	path string
}

// dirChangedMsg reports a change in the watched directory
type dirChangedMsg struct {
	dir string
}

// watchErrorMsg reports a watcher failure
type watchErrorMsg struct {
	err error
}

// SelectFile returns a command that selects the file at path
func SelectFile(path string) tea.Cmd {
	return func() tea.Msg {
		return selectFileMsg{path: path}
	}
}

// progressTick schedules the next progress tick for a run
func progressTick(interval time.Duration, runID uuid.UUID) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return progressTickMsg{runID: runID}
	})
}

// detectCommand runs the detector for a run and reports its outcome
func detectCommand(ctx context.Context, d detect.Detector, run detect.Run) tea.Cmd {
	return func() tea.Msg {
		p, err := d.Detect(ctx, run.File)
		return detectionDoneMsg{runID: run.ID, probability: p, err: err}
	}
}
