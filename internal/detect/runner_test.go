package detect

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTicker hands out a tick channel the test drives by hand
type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func newManualTicker() *manualTicker {
	return &manualTicker{ch: make(chan time.Time)}
}

func (m *manualTicker) factory(time.Duration) (<-chan time.Time, func()) {
	return m.ch, func() {
		m.mu.Lock()
		m.stopped = true
		m.mu.Unlock()
	}
}

func (m *manualTicker) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// simulatedWithManualDelay returns a detector whose delay fires when the
// returned channel is written to
func simulatedWithManualDelay(seed uint64) (*SimulatedDetector, chan time.Time) {
	fire := make(chan time.Time)
	d := NewSimulatedDetector(DefaultDelay, seed)
	d.after = func(time.Duration) <-chan time.Time { return fire }
	return d, fire
}

type progressRecorder struct {
	mu     sync.Mutex
	values []int
}

func (p *progressRecorder) record(v int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = append(p.values, v)
}

func (p *progressRecorder) snapshot() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.values...)
}

func TestRunnerEndToEnd(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Select(reportFile()))

	ticker := newManualTicker()
	runner := NewRunner(DefaultTickInterval)
	runner.newTicker = ticker.factory
	detector, fire := simulatedWithManualDelay(7)
	rec := &progressRecorder{}

	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := runner.Run(context.Background(), s, detector, rec.record)
		done <- outcome{result, err}
	}()

	// ten ticks at 200ms reach 100% when the 2000ms delay resolves
	for i := 0; i < 10; i++ {
		ticker.ch <- time.Now()
	}
	fire <- time.Now()

	out := <-done
	require.NoError(t, out.err)
	require.NotNil(t, out.result)
	assert.GreaterOrEqual(t, float64(out.result.Probability), 0.0)
	assert.Less(t, float64(out.result.Probability), 1.0)

	values := rec.snapshot()
	require.Len(t, values, 12)
	assert.Equal(t, 0, values[0])
	for i := 1; i <= 10; i++ {
		assert.Equal(t, i*10, values[i])
	}
	assert.Equal(t, 0, values[11])

	snap := s.Snapshot()
	assert.Equal(t, StateDone, snap.State())
	assert.Zero(t, snap.Progress)
	assert.True(t, ticker.isStopped())
}

func TestRunnerNoFile(t *testing.T) {
	s := NewSession()
	runner := NewRunner(DefaultTickInterval)

	result, err := runner.Run(context.Background(), s, NewSimulatedDetector(0, 1), nil)
	require.ErrorIs(t, err, ErrNoFile)
	assert.Nil(t, result)

	snap := s.Snapshot()
	assert.Equal(t, MsgNoFile, snap.Error)
	assert.False(t, snap.Busy)
}

func TestRunnerDetectorFailure(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Select(reportFile()))

	ticker := newManualTicker()
	runner := NewRunner(DefaultTickInterval)
	runner.newTicker = ticker.factory

	failing := DetectorFunc(func(ctx context.Context, file SelectedFile) (Probability, error) {
		return 0, errors.New("connection refused")
	})

	result, err := runner.Run(context.Background(), s, failing, nil)
	require.ErrorIs(t, err, ErrDetection)
	assert.Nil(t, result)

	snap := s.Snapshot()
	assert.Equal(t, StateFailed, snap.State())
	assert.Equal(t, MsgDetectionFailed, snap.Error)
	assert.Zero(t, snap.Progress)
	assert.True(t, ticker.isStopped())
}

func TestRunnerCancelledContextFails(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Select(reportFile()))

	ticker := newManualTicker()
	runner := NewRunner(DefaultTickInterval)
	runner.newTicker = ticker.factory
	detector, _ := simulatedWithManualDelay(3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, s, detector, nil)
	require.ErrorIs(t, err, ErrDetection)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateFailed, s.Snapshot().State())
}

func TestRunnerRealTimers(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Select(reportFile()))

	runner := NewRunner(5 * time.Millisecond)
	detector := NewSimulatedDetector(40*time.Millisecond, 11)
	rec := &progressRecorder{}

	result, err := runner.Run(context.Background(), s, detector, rec.record)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.GreaterOrEqual(t, result.Duration(), 40*time.Millisecond)

	values := rec.snapshot()
	require.NotEmpty(t, values)
	for i := 1; i < len(values)-1; i++ {
		assert.GreaterOrEqual(t, values[i], values[i-1])
		assert.LessOrEqual(t, values[i], MaxProgress)
	}
	assert.Equal(t, 0, values[len(values)-1])
}

func TestSimulatedDetectorWaitsForDelay(t *testing.T) {
	detector, fire := simulatedWithManualDelay(5)

	got := make(chan Probability, 1)
	go func() {
		p, _ := detector.Detect(context.Background(), SelectedFile{})
		got <- p
	}()

	select {
	case <-got:
		t.Fatal("detector returned before the delay elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	fire <- time.Now()
	p := <-got
	assert.GreaterOrEqual(t, float64(p), 0.0)
	assert.Less(t, float64(p), 1.0)
}

func TestSimulatedDetectorSeedIsDeterministic(t *testing.T) {
	a := NewSimulatedDetector(0, 99)
	b := NewSimulatedDetector(0, 99)

	for i := 0; i < 5; i++ {
		pa, err := a.Detect(context.Background(), SelectedFile{})
		require.NoError(t, err)
		pb, err := b.Detect(context.Background(), SelectedFile{})
		require.NoError(t, err)
		assert.Equal(t, pa, pb)
	}
}
