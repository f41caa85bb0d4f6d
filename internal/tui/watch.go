package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a single file.
// The parent directory is watched so atomic replace-by-rename is seen.
type Watcher struct {
	fsw     *fsnotify.Watcher
	path    string
	changes chan struct{}
	done    chan struct{}
	log     *slog.Logger
}

// Watch starts watching path. The parent directory is created if needed.
func Watch(path string, log *slog.Logger) (*Watcher, error) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create watch dir: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:     fsw,
		path:    path,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     log,
	}
	go w.loop()
	return w, nil
}

// Changes fires at most once per burst of events; it is closed by Close.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.log != nil {
				w.log.Warn("file watcher error", "path", w.path, "error", err)
			}
		}
	}
}
