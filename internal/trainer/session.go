package trainer

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"
)

var (
	// ErrComplete is returned when an answer is submitted to a finished session.
	ErrComplete = errors.New("activity is complete; reset to start a new problem")
	// ErrAdvancePending is returned while a correct answer is still being shown.
	ErrAdvancePending = errors.New("previous answer is still being applied")
)

// Exercise is the per-activity logic driven by a Session: a problem
// generator, the empty progress for a problem, and an answer validator.
type Exercise[P, G, A any] interface {
	NewProblem(rng *rand.Rand) P
	Start(p P) G
	Evaluate(p P, g G, a A) Verdict[G]
}

// Snapshot is a consistent copy of a session's state.
type Snapshot[P, G any] struct {
	Problem  P
	Progress G
	Feedback *Feedback
	Phase    Phase
	Epoch    uint64
	Attempts int
}

// Complete reports whether the terminal flag is set.
func (s Snapshot[P, G]) Complete() bool {
	return s.Phase == PhaseComplete
}

// Option configures a Session.
type Option func(*options)

type options struct {
	delay     time.Duration
	scheduler Scheduler
	notify    func()
	seed      *uint64
}

// WithDelay sets how long correct feedback is shown before progress advances.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.delay = d
		}
	}
}

// WithScheduler replaces the timer used for paced advances.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithNotify registers a callback invoked after every state change, including
// paced advances that land outside a Submit call.
func WithNotify(f func()) Option {
	return func(o *options) {
		o.notify = f
	}
}

// WithSeed makes problem generation deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// Session owns exactly one live problem and the trainee's progress through it.
type Session[P, G, A any] struct {
	mu        sync.Mutex
	exercise  Exercise[P, G, A]
	rng       *rand.Rand
	delay     time.Duration
	scheduler Scheduler
	notify    func()

	epoch    uint64
	problem  P
	progress G
	feedback *Feedback
	phase    Phase
	attempts int
	stop     func() bool
}

// NewSession creates a session and generates its first problem.
func NewSession[P, G, A any](ex Exercise[P, G, A], opts ...Option) *Session[P, G, A] {
	o := options{scheduler: TimerScheduler{}}
	for _, opt := range opts {
		opt(&o)
	}
	seed := RandomSeed()
	if o.seed != nil {
		seed = *o.seed
	}
	s := &Session[P, G, A]{
		exercise:  ex,
		rng:       NewRand(seed),
		delay:     o.delay,
		scheduler: o.scheduler,
		notify:    o.notify,
	}
	s.mu.Lock()
	s.regenerate()
	s.mu.Unlock()
	return s
}

// Snapshot returns the current state.
func (s *Session[P, G, A]) Snapshot() Snapshot[P, G] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Submit evaluates an answer against the current step.
func (s *Session[P, G, A]) Submit(answer A) (Snapshot[P, G], error) {
	s.mu.Lock()
	switch {
	case s.phase == PhaseComplete:
		snap := s.snapshot()
		s.mu.Unlock()
		return snap, ErrComplete
	case s.phase == PhaseAdvancing:
		snap := s.snapshot()
		s.mu.Unlock()
		return snap, ErrAdvancePending
	}

	s.phase = PhaseEvaluating
	v := s.exercise.Evaluate(s.problem, s.progress, answer)
	s.apply(v)
	snap := s.snapshot()
	s.mu.Unlock()

	s.changed()
	return snap, nil
}

// Reset discards the live problem, cancels any pending advance and starts over
// with a fresh problem.
func (s *Session[P, G, A]) Reset() Snapshot[P, G] {
	s.mu.Lock()
	s.regenerate()
	snap := s.snapshot()
	s.mu.Unlock()

	s.changed()
	return snap
}

// Close cancels any pending advance. The session must not be used afterwards.
func (s *Session[P, G, A]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPending()
	s.epoch++
	s.notify = nil
}

func (s *Session[P, G, A]) apply(v Verdict[G]) {
	fb := v.Feedback
	switch {
	case fb == nil:
		if v.Changed {
			s.progress = v.Next
		}
		s.feedback = nil
		s.phase = PhaseAwaitingInput
		return
	case fb.Kind == FeedbackUnanswered:
		s.feedback = fb
		s.phase = PhaseAwaitingInput
		return
	}

	s.attempts++
	s.feedback = fb
	switch {
	case v.Final:
		if v.Changed {
			s.progress = v.Next
		}
		s.phase = PhaseComplete
	case fb.Kind == FeedbackIncorrect:
		s.phase = PhaseRejected
	case !v.Changed:
		s.phase = PhaseAwaitingInput
	case s.delay == 0:
		s.progress = v.Next
		s.phase = PhaseAwaitingInput
	default:
		s.phase = PhaseAdvancing
		s.schedule(v.Next)
	}
}

// schedule installs next after the pacing delay, unless the session has moved
// on to another epoch by then.
func (s *Session[P, G, A]) schedule(next G) {
	epoch := s.epoch
	s.stop = s.scheduler.AfterFunc(s.delay, func() {
		s.mu.Lock()
		if s.epoch != epoch || s.phase != PhaseAdvancing {
			s.mu.Unlock()
			return
		}
		s.progress = next
		s.feedback = nil
		s.phase = PhaseAwaitingInput
		s.stop = nil
		s.mu.Unlock()

		s.changed()
	})
}

func (s *Session[P, G, A]) regenerate() {
	s.cancelPending()
	s.epoch++
	s.problem = s.exercise.NewProblem(s.rng)
	s.progress = s.exercise.Start(s.problem)
	s.feedback = nil
	s.phase = PhaseAwaitingInput
	s.attempts = 0
}

func (s *Session[P, G, A]) cancelPending() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

func (s *Session[P, G, A]) snapshot() Snapshot[P, G] {
	return Snapshot[P, G]{
		Problem:  s.problem,
		Progress: s.progress,
		Feedback: s.feedback,
		Phase:    s.phase,
		Epoch:    s.epoch,
		Attempts: s.attempts,
	}
}

func (s *Session[P, G, A]) changed() {
	s.mu.Lock()
	notify := s.notify
	s.mu.Unlock()
	if notify != nil {
		notify()
	}
}
