package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestIsCaptionFile(t *testing.T) {
	tests := map[string]bool{
		"talk.vtt":        true,
		"talk.SRT":        true,
		"talk.xml":        true,
		"talk.srv1":       true,
		"talk.mp4":        false,
		"talk.vtt.tmp":    false,
		"no-extension":    false,
		"dir/nested.srt":  true,
		"dir/nested.json": false,
	}
	for path, want := range tests {
		if got := isCaptionFile(path); got != want {
			t.Fatalf("isCaptionFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestNew_BadDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, zerolog.Nop(), 2)
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestWatcher_HandlesNewCaptionFile(t *testing.T) {
	dir := t.TempDir()

	handled := make(chan string, 1)
	handler := func(_ context.Context, path string) error {
		handled <- path
		return nil
	}

	w, err := New(dir, handler, zerolog.Nop(), 1)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()

	path := filepath.Join(dir, "talk.srt")
	if err := os.WriteFile(path, []byte("1\n00:00:01,000 --> 00:00:02,000\nhi\n"), 0o644); err != nil {
		t.Fatalf("write caption: %v", err)
	}
	// A sibling file the watcher must ignore.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case got := <-handled:
		if got != path {
			t.Fatalf("handled %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("handler never invoked")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher did not stop after cancel")
	}
}
