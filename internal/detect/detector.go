package detect

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultDelay is how long the simulated detector takes
const DefaultDelay = 2000 * time.Millisecond

// Detector scores a file. Any error it returns is reported as a failed run.
type Detector interface {
	Detect(ctx context.Context, file SelectedFile) (Probability, error)
}

// SimulatedDetector waits a fixed delay and returns a uniformly random
// probability in [0,1). It performs no analysis of the file.
type SimulatedDetector struct {
	Delay time.Duration

	mu    sync.Mutex
	rng   *rand.Rand
	after func(time.Duration) <-chan time.Time
}

// NewSimulatedDetector creates a simulated detector. A zero seed draws from
// a randomly seeded source.
func NewSimulatedDetector(delay time.Duration, seed uint64) *SimulatedDetector {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &SimulatedDetector{
		Delay: delay,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		after: time.After,
	}
}

// Detect implements Detector
func (d *SimulatedDetector) Detect(ctx context.Context, _ SelectedFile) (Probability, error) {
	if d.Delay > 0 {
		select {
		case <-ctx.Done():
			return 0, NewDetectionError(ctx.Err())
		case <-d.after(d.Delay):
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return Probability(d.rng.Float64()), nil
}

// DetectorFunc adapts a function to the Detector interface
type DetectorFunc func(ctx context.Context, file SelectedFile) (Probability, error)

// Detect implements Detector
func (f DetectorFunc) Detect(ctx context.Context, file SelectedFile) (Probability, error) {
	return f(ctx, file)
}
