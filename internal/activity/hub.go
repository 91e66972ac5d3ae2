package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/p-n-ai/ibcs-hub/internal/events"
	"github.com/p-n-ai/ibcs-hub/internal/trainer"
)

const (
	DefaultAdvanceDelay = time.Second
	DefaultSessionTTL   = 2 * time.Hour

	subscriberBuffer = 4
)

// Config tunes a Hub.
type Config struct {
	AdvanceDelay time.Duration
	SessionTTL   time.Duration
	Scheduler    trainer.Scheduler
	Events       events.Logger
	Now          func() time.Time
}

// Hub owns the live activity sessions. Each session id hosts exactly one
// activity; removing it tears the session down.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	delay     time.Duration
	ttl       time.Duration
	scheduler trainer.Scheduler
	events    events.Logger
	now       func() time.Time
}

type entry struct {
	id   string
	kind Kind
	run  runner

	mu       sync.Mutex
	lastUsed time.Time
	subs     map[int]chan State
	nextSub  int
	closed   bool
}

// NewHub creates an empty hub.
func NewHub(cfg Config) *Hub {
	h := &Hub{
		sessions:  make(map[string]*entry),
		delay:     cfg.AdvanceDelay,
		ttl:       cfg.SessionTTL,
		scheduler: cfg.Scheduler,
		events:    cfg.Events,
		now:       cfg.Now,
	}
	if h.delay < 0 {
		h.delay = DefaultAdvanceDelay
	}
	if h.ttl <= 0 {
		h.ttl = DefaultSessionTTL
	}
	if h.scheduler == nil {
		h.scheduler = trainer.TimerScheduler{}
	}
	if h.events == nil {
		h.events = events.Nop{}
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Create starts a session for kind. A non-empty seed makes the problem
// sequence reproducible.
func (h *Hub) Create(kind Kind, seed string) (State, error) {
	f, ok := factories[kind]
	if !ok {
		return State{}, fmt.Errorf("create session %q: %w", kind, ErrUnknownKind)
	}

	id := uuid.NewString()
	opts := []trainer.Option{
		trainer.WithDelay(h.delay),
		trainer.WithScheduler(h.scheduler),
		trainer.WithNotify(func() { h.publish(id) }),
	}
	if seed != "" {
		opts = append(opts, trainer.WithSeed(trainer.SeedFromString(seed)))
	}

	e := &entry{
		id:       id,
		kind:     kind,
		run:      f(opts...),
		lastUsed: h.now(),
		subs:     make(map[int]chan State),
	}
	h.mu.Lock()
	h.sessions[id] = e
	h.mu.Unlock()

	h.logEvent(e, events.TypeActivityStarted, map[string]any{"seeded": seed != ""})
	slog.Info("activity session started", "session_id", id, "activity", kind)
	return e.state(), nil
}

// Get returns the current state of a session.
func (h *Hub) Get(id string) (State, error) {
	e, err := h.lookup(id)
	if err != nil {
		return State{}, err
	}
	return e.state(), nil
}

// Submit evaluates an answer payload. Errors from the trainer (ErrComplete,
// ErrAdvancePending) and ErrBadAnswer are returned alongside the current state.
func (h *Hub) Submit(id string, raw json.RawMessage) (State, error) {
	e, err := h.lookup(id)
	if err != nil {
		return State{}, err
	}

	st, err := e.run.submit(raw)
	st = e.stamp(st)
	if err != nil {
		return st, fmt.Errorf("submit answer: %w", err)
	}

	data := map[string]any{"phase": string(st.Phase), "attempts": st.Attempts}
	if st.Feedback != nil {
		data["result"] = string(st.Feedback.Kind)
	}
	h.logEvent(e, events.TypeAnswerSubmitted, data)
	if st.Complete {
		h.logEvent(e, events.TypeActivityCompleted, map[string]any{"attempts": st.Attempts})
	}
	return st, nil
}

// Reset replaces the session's problem with a fresh one.
func (h *Hub) Reset(id string) (State, error) {
	e, err := h.lookup(id)
	if err != nil {
		return State{}, err
	}
	st := e.stamp(e.run.reset())
	h.logEvent(e, events.TypeActivityReset, nil)
	return st, nil
}

// Remove stops a session, cancelling any pending advance and closing its
// subscribers.
func (h *Hub) Remove(id string) error {
	h.mu.Lock()
	e, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("remove session %s: %w", id, ErrSessionNotFound)
	}
	h.teardown(e)
	h.logEvent(e, events.TypeActivityClosed, nil)
	return nil
}

// Subscribe returns a channel that receives the session state after every
// transition, starting with the current one. Slow readers only see the latest
// state. The cancel function must be called to release the subscription.
func (h *Hub) Subscribe(id string) (<-chan State, func(), error) {
	e, err := h.lookup(id)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan State, subscriberBuffer)
	current := e.state()
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, nil, fmt.Errorf("subscribe %s: %w", id, ErrSessionNotFound)
	}
	key := e.nextSub
	e.nextSub++
	e.subs[key] = ch
	offer(ch, current)
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if c, ok := e.subs[key]; ok {
			delete(e.subs, key)
			close(c)
		}
	}
	return ch, cancel, nil
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many were
// removed.
func (h *Hub) Sweep() int {
	cutoff := h.now().Add(-h.ttl)

	h.mu.Lock()
	var expired []*entry
	for id, e := range h.sessions {
		if e.idleSince().Before(cutoff) {
			expired = append(expired, e)
			delete(h.sessions, id)
		}
	}
	h.mu.Unlock()

	for _, e := range expired {
		h.teardown(e)
		h.logEvent(e, events.TypeActivityClosed, map[string]any{"reason": "expired"})
	}
	if len(expired) > 0 {
		slog.Info("expired activity sessions", "count", len(expired))
	}
	return len(expired)
}

// Run sweeps idle sessions every interval until ctx is done.
func (h *Hub) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Sweep()
		}
	}
}

// Close tears down every session.
func (h *Hub) Close() {
	h.mu.Lock()
	all := h.sessions
	h.sessions = make(map[string]*entry)
	h.mu.Unlock()
	for _, e := range all {
		h.teardown(e)
	}
}

func (h *Hub) lookup(id string) (*entry, error) {
	h.mu.RLock()
	e, ok := h.sessions[id]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	e.touch(h.now())
	return e, nil
}

func (h *Hub) publish(id string) {
	h.mu.RLock()
	e, ok := h.sessions[id]
	h.mu.RUnlock()
	if !ok {
		return
	}
	st := e.state()

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ch := range e.subs {
		offer(ch, st)
	}
}

// offer delivers st, dropping the oldest buffered state when ch is full.
func offer(ch chan State, st State) {
	for {
		select {
		case ch <- st:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func (h *Hub) teardown(e *entry) {
	e.run.close()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	for key, ch := range e.subs {
		delete(e.subs, key)
		close(ch)
	}
}

func (h *Hub) logEvent(e *entry, eventType string, data map[string]any) {
	err := h.events.LogEvent(events.Event{
		SessionID: e.id,
		Activity:  string(e.kind),
		EventType: eventType,
		Data:      data,
	})
	if err != nil {
		slog.Warn("failed to log activity event", "session_id", e.id, "type", eventType, "error", err)
	}
}

func (e *entry) state() State {
	return e.stamp(e.run.state())
}

func (e *entry) stamp(st State) State {
	st.SessionID = e.id
	st.Kind = e.kind
	return st
}

func (e *entry) touch(now time.Time) {
	e.mu.Lock()
	e.lastUsed = now
	e.mu.Unlock()
}

func (e *entry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastUsed
}
