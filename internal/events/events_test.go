package events_test

import (
	"testing"

	"github.com/p-n-ai/ibcs-hub/internal/events"
)

func TestMemory_LogEvent(t *testing.T) {
	logger := events.NewMemory()

	err := logger.LogEvent(events.Event{
		SessionID: "5f0c6f9e-8a4b-4f55-9a39-0f3f1f0e2c11",
		Activity:  "logic-gate",
		EventType: events.TypeAnswerSubmitted,
		Data: map[string]any{
			"kind": "correct",
		},
	})
	if err != nil {
		t.Fatalf("LogEvent() error = %v", err)
	}

	got := logger.Events()
	if len(got) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(got))
	}
	if got[0].EventType != events.TypeAnswerSubmitted {
		t.Errorf("EventType = %q, want %s", got[0].EventType, events.TypeAnswerSubmitted)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if n := len(logger.OfType(events.TypeActivityStarted)); n != 0 {
		t.Errorf("OfType(started) = %d, want 0", n)
	}
}

func TestMemory_RequiresType(t *testing.T) {
	if err := events.NewMemory().LogEvent(events.Event{SessionID: "s"}); err == nil {
		t.Fatal("expected error for missing event type")
	}
}

func TestNop_LogEvent(t *testing.T) {
	var logger events.Logger = events.Nop{}
	if err := logger.LogEvent(events.Event{}); err != nil {
		t.Errorf("LogEvent() error = %v", err)
	}
}

func TestPostgres_LogEvent_NilPool(t *testing.T) {
	logger := events.NewPostgres(nil)

	err := logger.LogEvent(events.Event{
		SessionID: "s-1",
		EventType: events.TypeActivityStarted,
	})
	if err == nil {
		t.Fatal("expected error for nil pool")
	}
}
