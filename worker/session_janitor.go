package worker

import (
	"context"
	"log/slog"
	"time"
)

// Evicter drops sessions idle for longer than the given duration.
type Evicter interface {
	Evict(idle time.Duration) int
}

// SessionJanitor periodically evicts idle visitor sessions.
type SessionJanitor struct {
	Sessions Evicter
	IdleTTL  time.Duration
	Interval time.Duration
}

func (w *SessionJanitor) Start(ctx context.Context) error {
	if w.IdleTTL <= 0 {
		w.IdleTTL = 2 * time.Hour
	}
	if w.Interval <= 0 {
		w.Interval = w.IdleTTL / 4
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := w.Sessions.Evict(w.IdleTTL); n > 0 {
				slog.Info("session-janitor: evicted idle sessions", "count", n)
			}
		}
	}
}
