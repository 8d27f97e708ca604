package app

import (
	"context"
	"time"

	"github.com/five82/carousel/internal/deck"
	"github.com/five82/carousel/internal/logging"
	"github.com/five82/carousel/internal/state"
)

const (
	defaultRestartDelay = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartWatcher launches a background goroutine that keeps the store in sync
// with the deck on disk. If the watch itself fails, for example because the
// deck directory was removed, it is restarted with exponential backoff. It
// returns immediately.
func StartWatcher(ctx context.Context, store *state.Store, path string, debounce time.Duration) {
	go func() {
		logger := logging.NewLogger("watcher")
		failures := 0

		for {
			err := deck.Watch(ctx, path, debounce, func(d deck.Deck, err error) {
				if err != nil {
					store.Update(nil, err)
					return
				}
				store.Update(&d, nil)
			})
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				failures++
				store.Update(nil, err)
				logger.WithError(err).WithField("failures", failures).Warn("Deck watcher stopped")
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(calculateBackoff(failures, defaultRestartDelay)):
			}

			// The deck may have come back while nobody was watching.
			if failures > 0 && refresh(store, path) == nil {
				failures = 0
			}
		}
	}()
}

func refresh(store *state.Store, path string) error {
	d, err := deck.Load(path)
	if err != nil {
		store.Update(nil, err)
		return err
	}
	store.Update(&d, nil)
	return nil
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	backoff := base
	for i := 0; i < failures && backoff < maxBackoff; i++ {
		backoff *= 2
	}
	return min(backoff, maxBackoff)
}
