package ledger

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever a CSV file in the directory is
// written, created, removed or renamed. onReload, if set, receives the
// result of every reload. Watch blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, onReload func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("watching %s: %w", s.dir, err)
	}
	s.logger.Info("watching ledger dir", "dir", s.dir)

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isLedgerFile(filepath.Base(ev.Name)) || ev.Op&relevant == 0 {
				continue
			}
			err := s.Load(ctx)
			if err != nil {
				s.logger.Warn("ledger reload failed", "file", ev.Name, "op", ev.Op.String(), "err", err)
			}
			if onReload != nil {
				onReload(err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "err", err)
		}
	}
}
