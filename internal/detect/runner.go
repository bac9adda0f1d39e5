package detect

import (
	"context"
	"time"
)

// ProgressFunc receives progress updates while a run is in flight
type ProgressFunc func(progress int)

// Runner drives a session through one detection run without a UI
type Runner struct {
	Interval time.Duration

	newTicker func(time.Duration) (<-chan time.Time, func())
}

// NewRunner creates a runner ticking at the given interval
func NewRunner(interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Runner{
		Interval:  interval,
		newTicker: systemTicker,
	}
}

func systemTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

type detectOutcome struct {
	probability Probability
	err         error
}

// Run begins detection on the session's selected file and blocks until the
// detector returns. Progress is reset to zero once the run ends, after which
// onProgress is called one final time.
func (r *Runner) Run(ctx context.Context, s *Session, d Detector, onProgress ProgressFunc) (*Result, error) {
	run, err := s.Begin()
	if err != nil {
		return nil, err
	}
	report(onProgress, 0)

	ticks, stop := r.newTicker(r.Interval)
	defer stop()

	done := make(chan detectOutcome, 1)
	go func() {
		p, err := d.Detect(ctx, run.File)
		done <- detectOutcome{probability: p, err: err}
	}()

	for {
		select {
		case <-ticks:
			if progress, ok := s.Tick(run.ID); ok {
				report(onProgress, progress)
			}
		case out := <-done:
			result, err := s.Finish(run.ID, out.probability, out.err)
			report(onProgress, 0)
			return result, err
		}
	}
}

func report(fn ProgressFunc, progress int) {
	if fn != nil {
		fn(progress)
	}
}
