package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

var quiet = slog.New(slog.DiscardHandler)

func TestMatches(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, []string{"*.txt", "*.md"}, filepath.Join(dir, "models.csv"), 0, nil, quiet)

	tests := map[string]bool{
		filepath.Join(dir, "llama.txt"):   true,
		filepath.Join(dir, "notes.md"):    true,
		filepath.Join(dir, "weights.bin"): false,
		filepath.Join(dir, "models.csv"):  false,
	}
	for name, want := range tests {
		if got := w.Matches(name); got != want {
			t.Errorf("Matches(%s) = %v, want %v", filepath.Base(name), got, want)
		}
	}
}

func TestMatches_IgnoresOutputEvenWhenPatternMatches(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "models.txt")
	w := New(dir, []string{"*.txt"}, out, 0, nil, quiet)
	if w.Matches(out) {
		t.Error("output file should never trigger a run")
	}
}

func TestRun_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	var runs atomic.Int32
	ran := make(chan struct{}, 16)
	run := func(ctx context.Context) error {
		runs.Add(1)
		ran <- struct{}{}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w := New(dir, []string{"*.txt"}, filepath.Join(dir, "models.csv"), 150*time.Millisecond, run, quiet)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitRun(t, ran)

	// Unrelated files and the output do not count.
	os.WriteFile(filepath.Join(dir, "models.csv"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "weights.bin"), []byte("x"), 0o644)

	for i := range 5 {
		if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	waitRun(t, ran)

	time.Sleep(400 * time.Millisecond)
	if n := runs.Load(); n != 2 {
		t.Errorf("expected startup run plus one debounced run, got %d", n)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRun_ConversionErrorsAreNotFatal(t *testing.T) {
	dir := t.TempDir()
	ran := make(chan struct{}, 4)
	run := func(ctx context.Context) error {
		ran <- struct{}{}
		return errors.New("no data to write")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w := New(dir, []string{"*.txt"}, "", 50*time.Millisecond, run, quiet)
	go w.Run(ctx)

	waitRun(t, ran)
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644)
	waitRun(t, ran)
}

func TestRun_MissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope"), []string{"*.txt"}, "", 0, func(context.Context) error { return nil }, quiet)
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing dir")
	}
}

func waitRun(t *testing.T, ran <-chan struct{}) {
	t.Helper()
	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for conversion")
	}
}
