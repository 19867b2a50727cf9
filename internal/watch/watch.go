package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
)

type Op uint8

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

func (op Op) String() string {
	switch {
	case op&OpCreate != 0:
		return "create"
	case op&OpWrite != 0:
		return "write"
	case op&OpRemove != 0:
		return "remove"
	case op&OpRename != 0:
		return "rename"
	default:
		return "none"
	}
}

type Event struct {
	Path string
	Op   Op
}

// Watcher reports changes to source files below the watched paths.
type Watcher struct {
	w          *fsnotify.Watcher
	extensions []string
	logger     *slog.Logger

	evC chan Event
	erC chan error
}

// New creates a watcher that only reports files with one of the given
// extensions. A nil logger discards output.
func New(logger *slog.Logger, extensions ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Watcher{
		w:          w,
		extensions: extensions,
		logger:     logger.With(slog.String("component", "watch")),
		evC:        make(chan Event, 128),
		erC:        make(chan error, 1),
	}, nil
}

// Add watches a file's directory, or a directory and all of its
// subdirectories.
func (fw *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	if !info.IsDir() {
		return fw.w.Add(filepath.Dir(path))
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		fw.logger.Debug("watching directory", slog.String("path", p))
		return fw.w.Add(p)
	})
}

// Start translates fsnotify events until ctx is done or the watcher is
// closed. Events is closed when the loop exits.
func (fw *Watcher) Start(ctx context.Context) {
	go fw.loop(ctx)
}

func (fw *Watcher) loop(ctx context.Context) {
	defer close(fw.evC)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}

			event, relevant := fw.translate(ev)
			if !relevant {
				continue
			}

			if ev.Op&fsnotify.Create != 0 {
				fw.watchNewDir(ev.Name)
			}

			fw.logger.Debug("source changed", slog.String("path", event.Path), slog.String("op", event.Op.String()))
			select {
			case fw.evC <- event:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}

			select {
			case fw.erC <- err:
			default:
				fw.logger.Warn("dropping watcher error", slog.String("error", err.Error()))
			}
		}
	}
}

func (fw *Watcher) translate(ev fsnotify.Event) (Event, bool) {
	var op Op
	if ev.Op&fsnotify.Create != 0 {
		op |= OpCreate
	}
	if ev.Op&fsnotify.Write != 0 {
		op |= OpWrite
	}
	if ev.Op&fsnotify.Remove != 0 {
		op |= OpRemove
	}
	if ev.Op&fsnotify.Rename != 0 {
		op |= OpRename
	}

	if op == 0 {
		return Event{}, false
	}

	if op&OpCreate != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			return Event{Path: ev.Name, Op: op}, true
		}
	}

	if len(fw.extensions) > 0 && !slices.Contains(fw.extensions, filepath.Ext(ev.Name)) {
		return Event{}, false
	}

	return Event{Path: ev.Name, Op: op}, true
}

func (fw *Watcher) watchNewDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	if err := fw.Add(path); err != nil {
		fw.logger.Warn("failed to watch new directory", slog.String("path", path), slog.String("error", err.Error()))
	}
}

func (fw *Watcher) Events() <-chan Event { return fw.evC }
func (fw *Watcher) Errors() <-chan error { return fw.erC }
func (fw *Watcher) Close() error         { return fw.w.Close() }
