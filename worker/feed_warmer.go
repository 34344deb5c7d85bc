package worker

import (
	"context"
	"log/slog"
	"time"

	"garim-lab/internal/model"
)

// Refresher reloads one category into the feed cache.
type Refresher interface {
	Refresh(ctx context.Context, cat model.Category) error
}

// FeedWarmer refreshes every category on a fixed interval so visitors rarely hit a cold cache.
type FeedWarmer struct {
	Feed       Refresher
	Categories []model.Category
	Interval   time.Duration
}

func (w *FeedWarmer) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 4 * time.Minute
	}
	if len(w.Categories) == 0 {
		w.Categories = model.Categories()
	}

	// initial run
	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *FeedWarmer) runOnce(ctx context.Context) {
	warmed := 0
	for _, cat := range w.Categories {
		if ctx.Err() != nil {
			return
		}
		if err := w.Feed.Refresh(ctx, cat); err != nil {
			slog.Warn("feed-warmer: refresh error", "category", cat, "error", err)
			continue
		}
		warmed++
	}
	slog.Debug("feed-warmer: completed", "warmed", warmed, "categories", len(w.Categories))
}
