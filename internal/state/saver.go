package state

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// StoreWriter is the save half of the persistence boundary.
type StoreWriter interface {
	Save(ctx context.Context, s *HistoryStore) error
}

// Saver coalesces rapid edits into one write: each Queue replaces the
// pending snapshot and restarts the quiet-period timer, so only the latest
// pending document ever reaches the store. Writes are fire-and-forget;
// failures are logged and dropped, because the store is re-read in full on
// the next load and the in-memory copy stays authoritative.
type Saver struct {
	writer StoreWriter
	delay  time.Duration
	log    *slog.Logger

	mu      sync.Mutex
	pending *HistoryStore
	timer   *time.Timer
}

func NewSaver(writer StoreWriter, delay time.Duration, log *slog.Logger) *Saver {
	return &Saver{writer: writer, delay: delay, log: log}
}

// Queue snapshots the document and schedules a write after the quiet
// period. A snapshot queued before the previous one flushed replaces it.
func (s *Saver) Queue(store *HistoryStore) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = store.Clone()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.Flush(context.Background())
	})
}

// Flush writes the pending snapshot immediately, if there is one. Call it
// before process exit so the last edits are not lost to a still-running
// timer.
func (s *Saver) Flush(ctx context.Context) {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if pending == nil {
		return
	}
	if err := s.writer.Save(ctx, pending); err != nil {
		s.log.Warn("state save dropped", "error", err)
	}
}
