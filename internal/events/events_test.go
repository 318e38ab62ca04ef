package events

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewFillsEnvelope(t *testing.T) {
	e := New(SlotCreated, map[string]string{"slot_id": "s1"})

	if e.ID == "" {
		t.Error("event ID should not be empty")
	}
	if e.Source != Source {
		t.Errorf("expected source %q, got %q", Source, e.Source)
	}
	if e.Version != Version {
		t.Errorf("expected version %q, got %q", Version, e.Version)
	}
	if e.Timestamp.IsZero() {
		t.Error("event timestamp should not be zero")
	}
}

func TestBusDeliversToSubscriber(t *testing.T) {
	bus := NewBus(testLogger())
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.Publish(ctx, New(AssignmentUpdated, map[string]string{"student_id": "s1"})); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-sub:
		if got.Type != AssignmentUpdated {
			t.Errorf("expected %s, got %s", AssignmentUpdated, got.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestMockPublisherRecordsAndClears(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())
	ctx := context.Background()

	_ = mock.Publish(ctx, New(SlotCreated, nil))
	_ = mock.Publish(ctx, New(SlotDeleted, nil))

	if got := len(mock.GetPublishedEvents()); got != 2 {
		t.Fatalf("expected 2 events, got %d", got)
	}
	if got := len(mock.EventsOfType(SlotCreated)); got != 1 {
		t.Fatalf("expected 1 slot.created, got %d", got)
	}

	mock.ClearEvents()
	if got := len(mock.GetPublishedEvents()); got != 0 {
		t.Fatalf("expected no events after clear, got %d", got)
	}
}
