package persistence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tutorhub/scheduling-service/internal/events"
	"github.com/tutorhub/scheduling-service/internal/store"
)

const defaultFlushInterval = 2 * time.Second

// Writer is the write-behind persister. It watches the event stream,
// marks the state dirty on every domain event, and flushes a snapshot
// at most once per interval. A failed flush is logged and retried on
// the next tick; request handling never waits on it.
type Writer struct {
	store    *store.Store
	snapshot SnapshotStore
	interval time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	dirty bool

	done chan struct{}
	once sync.Once
}

func NewWriter(st *store.Store, snapshot SnapshotStore, interval time.Duration, logger *slog.Logger) *Writer {
	if interval <= 0 {
		interval = defaultFlushInterval
	}
	return &Writer{
		store:    st,
		snapshot: snapshot,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// MarkDirty schedules a flush on the next tick.
func (w *Writer) MarkDirty() {
	w.mu.Lock()
	w.dirty = true
	w.mu.Unlock()
}

// Run consumes domain events and flushes on a ticker until ctx is
// cancelled. It is meant to run in its own goroutine.
func (w *Writer) Run(ctx context.Context, stream <-chan events.Event) {
	defer w.once.Do(func() { close(w.done) })

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case _, ok := <-stream:
			if !ok {
				w.flush(ctx)
				return
			}
			w.MarkDirty()
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Flush writes a snapshot now regardless of the dirty flag. Used for
// the final write during shutdown.
func (w *Writer) Flush(ctx context.Context) error {
	snap := w.store.Snapshot()
	if err := w.snapshot.Save(ctx, &snap); err != nil {
		return err
	}
	w.mu.Lock()
	w.dirty = false
	w.mu.Unlock()
	return nil
}

func (w *Writer) flush(ctx context.Context) {
	w.mu.Lock()
	dirty := w.dirty
	w.mu.Unlock()
	if !dirty {
		return
	}
	if err := w.Flush(ctx); err != nil {
		w.logger.Warn("snapshot flush failed", "error", err)
	}
}

// Done closes once Run has exited.
func (w *Writer) Done() <-chan struct{} {
	return w.done
}
