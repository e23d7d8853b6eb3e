// Package watch follows a file on disk and aligns every saved version with
// the previous one.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/katalvlaran/linetrack/match"
	"github.com/katalvlaran/linetrack/sequence"
)

// Change is one observed edit of the watched file.
type Change struct {
	Path           string
	Old, New       []string
	Correspondence *match.Correspondence
	At             time.Time
}

// Watcher holds the last seen version of one file.
type Watcher struct {
	path   string
	cmp    sequence.Comparator[sequence.Lines]
	opts   []match.Option
	logger *slog.Logger
	fsw    *fsnotify.Watcher
	last   []string
}

// New reads the current content of path and starts watching its directory,
// so that editors which save by renaming a temporary file are followed too.
// A nil logger uses slog.Default.
func New(path string, cmp sequence.Comparator[sequence.Lines], logger *slog.Logger, opts ...match.Option) (*Watcher, error) {
	if cmp == nil {
		return nil, match.ErrNilComparator
	}
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	lines, err := readLines(abs)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()

		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, cmp: cmp, opts: opts, logger: logger, fsw: fsw, last: lines}, nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return sequence.SplitLines(string(data)), nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Reload re-reads the file and aligns it with the last seen version. ok is
// false when the content did not change.
func (w *Watcher) Reload() (ch Change, ok bool, err error) {
	lines, err := readLines(w.path)
	if err != nil {
		return Change{}, false, err
	}
	if slices.Equal(lines, w.last) {
		return Change{}, false, nil
	}
	c, err := match.Lines(w.last, lines, w.cmp, w.opts...)
	if err != nil {
		return Change{}, false, err
	}
	ch = Change{Path: w.path, Old: w.last, New: lines, Correspondence: c, At: time.Now()}
	w.last = lines

	return ch, true, nil
}

// Run delivers a Change to fn for every saved edit until ctx is done or fn
// fails. Transient read failures, such as a save caught half way, are
// logged and skipped.
func (w *Watcher) Run(ctx context.Context, fn func(Change) error) error {
	w.logger.Debug("watching file", "path", w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			ch, changed, err := w.Reload()
			if err != nil {
				w.logger.Warn("reload failed", "path", w.path, "error", err)

				continue
			}
			if !changed {
				continue
			}
			if err := fn(ch); err != nil {
				return err
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "path", w.path, "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
