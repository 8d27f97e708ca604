package deck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/five82/carousel/internal/logging"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// ErrDeckRemoved is returned by Watch when the watched directory disappears.
var ErrDeckRemoved = errors.New("deck directory removed")

// Watch reloads the deck at path whenever it changes and hands the result to
// onChange. It blocks until ctx is cancelled, or returns ErrDeckRemoved once
// the watched directory is removed or renamed away.
//
// A single file is watched through its parent directory so that editors that
// save by rename are still noticed. Reloads run on the watch loop, one at a
// time, so onChange always sees them in order.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func(Deck, error)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat deck: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Clean(path)
	target := ""
	if !info.IsDir() {
		dir = filepath.Dir(dir)
		target = filepath.Clean(path)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger := logging.NewLogger("deck-watcher")
	logger.Debugf("Watching %s", path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-fire:
			fire = nil
			d, err := Load(path)
			if err != nil {
				logger.WithError(err).Warn("Deck reload failed")
			} else {
				logger.Infof("Deck reloaded: %d slides", d.Len())
			}
			onChange(d, err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) == dir && event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				return fmt.Errorf("%w: %s", ErrDeckRemoved, dir)
			}
			if !relevant(event, target) {
				continue
			}
			logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("Watcher error: %v", err)
		}
	}
}
func relevant(event fsnotify.Event, target string) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if target != "" {
		return filepath.Clean(event.Name) == target
	}
	return slideExts[strings.ToLower(filepath.Ext(event.Name))]
}
