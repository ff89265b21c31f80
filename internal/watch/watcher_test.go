package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidatePatterns(t *testing.T) {
	if err := ValidatePatterns([]string{"content/**", "**/*.svx"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePatterns([]string{"content/[unclosed"}); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestNew_RejectsInvalidPattern(t *testing.T) {
	if _, err := New(Config{BaseDir: t.TempDir(), Patterns: []string{"["}, Log: discard()}); err == nil {
		t.Error("expected New to reject an invalid pattern")
	}
}

func TestIsIgnored(t *testing.T) {
	tests := []struct {
		rel  string
		want bool
	}{
		{".git/HEAD", true},
		{"content/.index.svx.swp", true},
		{"content/index.svx~", true},
		{"node_modules/pkg/index.js", true},
		{"content/00-intro/index.svx", false},
	}
	for _, tt := range tests {
		if got := isIgnored(tt.rel); got != tt.want {
			t.Errorf("isIgnored(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestMatches(t *testing.T) {
	w := &Watcher{cfg: Config{Patterns: []string{"content/**"}}}
	if !w.matches(filepath.FromSlash("content/00-intro/animations/counter.svelte")) {
		t.Error("expected nested content file to match")
	}
	if w.matches("README.md") {
		t.Error("expected file outside content to be skipped")
	}
	if !(&Watcher{}).matches("anything") {
		t.Error("expected empty pattern list to match everything")
	}
}

func TestWatcher_Debounce(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "content"), 0o755); err != nil {
		t.Fatal(err)
	}

	var (
		mu    sync.Mutex
		calls int
		got   []string
	)
	done := make(chan struct{})

	w, err := New(Config{
		BaseDir:  dir,
		Patterns: []string{"content/**"},
		Debounce: 100 * time.Millisecond,
		Log:      discard(),
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			got = append(got, changed...)
			if calls == 1 {
				close(done)
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	for _, name := range []string{"a.svx", "b.svx"} {
		if err := os.WriteFile(filepath.Join(dir, "content", name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	time.Sleep(300 * time.Millisecond)

	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("Run() error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("expected 1 callback, got %d", calls)
	}
	for _, want := range []string{"content/a.svx", "content/b.svx"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected %q in changed set %v", want, got)
		}
	}
	if slices.Contains(got, "notes.txt") {
		t.Errorf("expected notes.txt to be filtered, got %v", got)
	}
}

func TestWatcher_RunTwice(t *testing.T) {
	w, err := New(Config{BaseDir: t.TempDir(), Log: discard()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	if err := w.Run(ctx); err == nil {
		t.Error("expected second Run to fail")
	}
}
