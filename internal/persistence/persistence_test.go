package persistence

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tutorhub/scheduling-service/internal/events"
	"github.com/tutorhub/scheduling-service/internal/models"
	"github.com/tutorhub/scheduling-service/internal/store"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "test:snapshot")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	rs := newRedisStore(t)

	st := store.New()
	st.AddUser(models.User{ID: "u1", FullName: "Greta Olsen", Username: "greta", Email: "greta@x.example", Role: models.RoleTutor})
	st.AddSlot(models.Slot{ID: "s1", TutorID: "u1", When: time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC), Published: true})

	snap := st.Snapshot()
	if err := rs.Save(ctx, &snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := rs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Users) != 1 || loaded.Users[0].ID != "u1" {
		t.Errorf("users did not survive the round trip: %+v", loaded.Users)
	}
	if len(loaded.Slots) != 1 || !loaded.Slots[0].Published {
		t.Errorf("slots did not survive the round trip: %+v", loaded.Slots)
	}
	if loaded.Assignments == nil || loaded.Notifications == nil {
		t.Error("loaded snapshot must have normalized containers")
	}
}

func TestRedisStoreLoadMissing(t *testing.T) {
	rs := newRedisStore(t)
	if _, err := rs.Load(context.Background()); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestWriterFlush(t *testing.T) {
	ctx := context.Background()
	rs := newRedisStore(t)
	st := store.New()
	st.AddUser(models.User{ID: "u1", Username: "greta", Email: "greta@x.example", Role: models.RoleTutor})

	w := NewWriter(st, rs, time.Second, discardLogger())
	w.MarkDirty()
	if err := w.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	loaded, err := rs.Load(ctx)
	if err != nil {
		t.Fatalf("load after flush: %v", err)
	}
	if len(loaded.Users) != 1 {
		t.Errorf("expected flushed user, got %+v", loaded.Users)
	}
}

func TestWriterRunPersistsOnEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rs := newRedisStore(t)
	st := store.New()
	st.AddUser(models.User{ID: "u1", Username: "greta", Email: "greta@x.example", Role: models.RoleTutor})

	w := NewWriter(st, rs, 10*time.Millisecond, discardLogger())
	stream := make(chan events.Event, 1)
	go w.Run(ctx, stream)

	stream <- events.New(events.UserCreated, events.UserPayload{UserID: "u1", Role: "tutor"})

	deadline := time.After(2 * time.Second)
	for {
		if _, err := rs.Load(ctx); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("writer never flushed after an event")
		case <-time.After(10 * time.Millisecond):
		}
	}

	// Closing the stream triggers a final flush and ends Run.
	st.AddUser(models.User{ID: "u2", Username: "marco", Email: "marco@x.example", Role: models.RoleTutor})
	w.MarkDirty()
	close(stream)

	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("writer did not stop after the stream closed")
	}

	loaded, err := rs.Load(ctx)
	if err != nil {
		t.Fatalf("load after shutdown: %v", err)
	}
	if len(loaded.Users) != 2 {
		t.Errorf("final flush missed state, got %d users", len(loaded.Users))
	}
}
