// ABOUTME: Filesystem watcher that keeps the slug index fresh.
// ABOUTME: Debounces fsnotify events from out-of-band edits to the notes tree.

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of events (editors write, chmod, and
// rename in quick succession) into a single index rebuild.
const watchDebounce = 200 * time.Millisecond

// Watch rebuilds the slug index whenever the notes tree changes on disk.
// It blocks until ctx is cancelled. Temp files from our own atomic
// writes are ignored.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.notesDir()); err != nil {
		return fmt.Errorf("watch notes dir: %w", err)
	}
	entries, err := os.ReadDir(s.notesDir())
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := watcher.Add(filepath.Join(s.notesDir(), e.Name())); err != nil {
				s.logger.Warn("watch category dir failed", "category", e.Name(), "error", err)
			}
		}
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if strings.Contains(filepath.Base(event.Name), tempFilePrefix) {
				continue
			}
			// New category folders need their own watch.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := s.rebuildIndex(); err != nil {
				s.logger.Error("index rebuild failed", "error", err)
			} else {
				s.logger.Debug("index rebuilt after filesystem change")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "error", err)
		}
	}
}
