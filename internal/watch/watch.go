// Package watch re-runs a conversion whenever matching files in a directory change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc performs one conversion.
type RunFunc func(ctx context.Context) error

// Watcher watches a single directory, non-recursively.
type Watcher struct {
	dir      string
	patterns []string
	ignore   string
	debounce time.Duration
	run      RunFunc
	log      *slog.Logger
}

// New returns a watcher over dir. Events for ignore (normally the output file)
// never trigger a run.
func New(dir string, patterns []string, ignore string, debounce time.Duration, run RunFunc, log *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if ignore != "" {
		if abs, err := filepath.Abs(ignore); err == nil {
			ignore = abs
		}
	}
	return &Watcher{
		dir:      dir,
		patterns: patterns,
		ignore:   ignore,
		debounce: debounce,
		run:      run,
		log:      log,
	}
}

// Run converts once, then again after each quiet period following a change,
// until ctx is cancelled. Conversion errors are logged, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.Info("watching", "dir", w.dir, "patterns", w.patterns, "debounce", w.debounce)

	w.convert(ctx, "startup")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	pending := ""

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("change detected", "file", event.Name, "op", event.Op.String())
			pending = filepath.Base(event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watch error", "error", err)

		case <-timer.C:
			w.convert(ctx, pending)
			pending = ""
		}
	}
}

func (w *Watcher) convert(ctx context.Context, trigger string) {
	start := time.Now()
	if err := w.run(ctx); err != nil {
		w.log.Warn("conversion failed", "trigger", trigger, "error", err)
		return
	}
	w.log.Info("converted", "trigger", trigger, "duration_ms", time.Since(start).Milliseconds())
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.Matches(event.Name)
}

// Matches reports whether a change to name should trigger a run.
func (w *Watcher) Matches(name string) bool {
	if w.ignore != "" {
		if abs, err := filepath.Abs(name); err == nil && abs == w.ignore {
			return false
		}
	}
	base := filepath.Base(name)
	for _, p := range w.patterns {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}
