package detect

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Progress defaults
const (
	DefaultTickStep     = 10
	DefaultTickInterval = 200 * time.Millisecond
	MaxProgress         = 100
)

// Session holds the state of one detection component instance
type Session struct {
	mu sync.Mutex

	file        *SelectedFile
	busy        bool
	probability *Probability
	errMsg      string
	progress    int

	run       Run
	step      int
	validator Validator
	now       func() time.Time
}

// Option configures a Session
type Option func(*Session)

// WithValidator rejects selections the validator does not accept
func WithValidator(v Validator) Option {
	return func(s *Session) {
		s.validator = v
	}
}

// WithTickStep sets the progress increment per tick
func WithTickStep(step int) Option {
	return func(s *Session) {
		if step > 0 {
			s.step = step
		}
	}
}

// WithClock overrides the time source used for run timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates an idle session
func NewSession(opts ...Option) *Session {
	s := &Session{
		step: DefaultTickStep,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select replaces the selected file and discards any prior result or error.
// A nil file clears the selection. Rejected files clear the selection and
// leave the validation message as the current error, except while a run is
// in flight, when a rejected file leaves the session unchanged.
func (s *Session) Select(f *SelectedFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f != nil && s.validator != nil {
		if err := s.validator.Validate(f); err != nil {
			if s.busy {
				return err
			}
			s.probability = nil
			s.file = nil
			s.errMsg = userMessage(err)
			return err
		}
	}

	s.probability = nil
	s.errMsg = ""

	if f == nil {
		s.file = nil
		return nil
	}

	selected := *f
	s.file = &selected
	return nil
}

// Begin starts a detection run for the selected file
func (s *Session) Begin() (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return Run{}, ErrBusy
	}
	if s.file == nil {
		s.errMsg = MsgNoFile
		return Run{}, ErrNoFile
	}

	s.busy = true
	s.errMsg = ""
	s.probability = nil
	s.progress = 0
	s.run = Run{
		ID:        uuid.New(),
		File:      *s.file,
		StartedAt: s.now(),
	}

	return s.run, nil
}

// Tick advances progress for the given run. It reports false when the run
// is no longer current, which tells the caller to stop ticking.
func (s *Session) Tick(id uuid.UUID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.busy || s.run.ID != id {
		return s.progress, false
	}

	s.progress += s.step
	if s.progress > MaxProgress {
		s.progress = MaxProgress
	}
	return s.progress, true
}

// Finish ends the given run with either a probability or an error.
// Completions for runs that are no longer current are ignored.
func (s *Session) Finish(id uuid.UUID, p Probability, detectErr error) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.busy || s.run.ID != id {
		return nil, nil
	}

	s.busy = false
	s.progress = 0

	if detectErr != nil {
		s.probability = nil
		s.errMsg = MsgDetectionFailed
		if errors.Is(detectErr, ErrDetection) {
			return nil, detectErr
		}
		return nil, NewDetectionError(detectErr)
	}

	published := p.clamp()
	s.probability = &published
	s.errMsg = ""

	return &Result{
		ID:          s.run.ID,
		File:        s.run.File,
		Probability: published,
		StartedAt:   s.run.StartedAt,
		FinishedAt:  s.now(),
	}, nil
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Busy:     s.busy,
		Error:    s.errMsg,
		Progress: s.progress,
	}
	if s.file != nil {
		f := *s.file
		snap.File = &f
	}
	if s.probability != nil {
		p := *s.probability
		snap.Probability = &p
	}
	if s.busy {
		snap.RunID = s.run.ID
	}
	return snap
}

// userMessage extracts the banner text for an error
func userMessage(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
