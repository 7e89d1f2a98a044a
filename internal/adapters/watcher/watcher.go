package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/folio-site/folio/internal/core/ports"
	"github.com/fsnotify/fsnotify"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

var skipDirs = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

const eventChannelBuffer = 100

// Watcher watches image roots recursively with fsnotify. Only source image
// names are reported, so derivatives, manifests and temp files written by a
// build never trigger another build.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	events    chan ports.WatchEvent
	stopOnce  sync.Once
}

// NewWatcher creates a watcher. Watch errors are reported to log.
// No file system resources are held until Start.
func NewWatcher(log ports.Logger) *Watcher {
	return &Watcher{
		logger: log,
		events: make(chan ports.WatchEvent, eventChannelBuffer),
	}
}

// Start adds every directory below roots and begins delivering events.
// A root that does not exist is skipped.
func (w *Watcher) Start(ctx context.Context, roots []string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	for _, root := range roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		for dir := range dirsBelow(root) {
			if err := fw.Add(dir); err != nil {
				_ = fw.Close()
				return zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
			}
		}
	}

	w.fsWatcher = fw
	go w.processEvents(ctx)
	return nil
}

// Stop closes the underlying watcher. The Events iterator ends afterwards.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.fsWatcher == nil {
			close(w.events)
			return
		}
		err = w.fsWatcher.Close()
	})
	return err
}

// Events returns an iterator over source image events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			for _, ev := range w.translate(event) {
				select {
				case w.events <- ev:
				case <-ctx.Done():
					return
				}
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("file watcher error", "error", err.Error())
			}
		}
	}
}

// translate maps one fsnotify event to zero or more source image events.
// A directory created inside a root is watched and its existing images are reported.
func (w *Watcher) translate(event fsnotify.Event) []ports.WatchEvent {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			return w.addDir(event.Name)
		}
	}

	if !domain.IsSourceImageName(filepath.Base(event.Name)) {
		return nil
	}

	op, ok := convertOp(event.Op)
	if !ok {
		return nil
	}
	return []ports.WatchEvent{{Path: event.Name, Operation: op}}
}

func (w *Watcher) addDir(root string) []ports.WatchEvent {
	if skipDirs[filepath.Base(root)] {
		return nil
	}
	var found []ports.WatchEvent
	for dir := range dirsBelow(root) {
		_ = w.fsWatcher.Add(dir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.Type().IsRegular() && domain.IsSourceImageName(e.Name()) {
				found = append(found, ports.WatchEvent{Path: filepath.Join(dir, e.Name()), Operation: ports.OpCreate})
			}
		}
	}
	return found
}

func convertOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op.Has(fsnotify.Write):
		return ports.OpWrite, true
	case op.Has(fsnotify.Create):
		return ports.OpCreate, true
	case op.Has(fsnotify.Remove):
		return ports.OpRemove, true
	case op.Has(fsnotify.Rename):
		return ports.OpRename, true
	default:
		return 0, false
	}
}

// dirsBelow yields root and every directory beneath it, skipping VCS and dependency directories.
func dirsBelow(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
