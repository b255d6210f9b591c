package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc is called after a reload that changed the dataset. err is set
// when the reload failed and the source now reports no data.
type ChangeFunc func(err error)

// Watcher reloads a Source when its CSV file is written, created or
// replaced. It watches the parent directory so editors that save by rename
// are picked up.
type Watcher struct {
	source   *Source
	file     string
	debounce time.Duration
	onChange ChangeFunc
	logger   *slog.Logger
	fsw      *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   bool

	done chan struct{}
}

// NewWatcher creates a watcher for the source's file. debounce <= 0 uses
// DefaultDebounce.
func NewWatcher(source *Source, debounce time.Duration, onChange ChangeFunc, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(source.Path())
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		source:   source,
		file:     abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		fsw:      fsw,
		done:     make(chan struct{}),
	}, nil
}

// Start adds the directory watch and processes events until ctx is
// cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.file)
	if err := w.fsw.Add(dir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("dataset watcher started",
		"file", w.file,
		"debounce", w.debounce)
	return nil
}

// Stop closes the underlying watcher and waits for the event loop to exit.
// Only call it after a successful Start.
func (w *Watcher) Stop() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

// Done is closed when the event loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != w.file {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()

	w.logger.Debug("data file change detected", "op", event.Op.String())
}

func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if !w.pending {
		w.pendingMu.Unlock()
		return
	}
	w.pending = false
	w.pendingMu.Unlock()

	changed, err := w.source.Reload()
	if err != nil {
		w.logger.Warn("dataset reload failed", "error", err)
	}
	if !changed {
		w.logger.Debug("data file content unchanged")
		return
	}

	ds := w.source.Dataset()
	w.logger.Info("dataset reloaded",
		"rows", ds.Len(),
		"dropped", ds.Dropped(),
		"version", shortVersion(ds.Version()))
	if w.onChange != nil {
		w.onChange(err)
	}
}

func shortVersion(v string) string {
	if len(v) > 12 {
		return v[:12]
	}
	return v
}
