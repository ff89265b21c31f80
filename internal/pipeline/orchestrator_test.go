package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/coursegen/internal/pathnorm"
	"github.com/dgallion1/coursegen/internal/render"
	"github.com/dgallion1/coursegen/internal/site"
	"github.com/dgallion1/coursegen/internal/source"
)

var norm = pathnorm.Normalizer{Root: "content", Ext: ".svx"}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSite(t *testing.T, src source.MemSource) *site.Site {
	t.Helper()
	s := site.New(src, norm, render.New(norm, src, ".svelte", 0), discard())
	if err := s.Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	return s
}

func fixture() source.MemSource {
	return source.MemSource{
		"content/index.svx":              "---\ntitle: Home\n---\nWelcome.",
		"content/00-intro/index.svx":     "---\ntitle: Intro\n---\nIntro body.",
		"content/00-intro/01-basics.svx": "Basics body.",
		"content/01-math/01-algebra.svx": "Algebra body.",
	}
}

func TestGenerator_WritesEveryPage(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(newSite(t, fixture()), out, 2, discard())

	report, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// root, intro, intro/basics, math, math/algebra
	if report.Pages != 5 || report.Written != 5 || report.Failed != 0 {
		t.Errorf("unexpected report %+v", report)
	}

	data, err := os.ReadFile(filepath.Join(out, "intro", "basics", "index.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if !strings.Contains(string(data), "<p>Basics body.</p>") {
		t.Errorf("expected rendered body, got:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(out, "math", "index.html")); err != nil {
		t.Errorf("expected structural page to be written: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(out, "paths.json"))
	if err != nil {
		t.Fatalf("read paths.json: %v", err)
	}
	var paths []string
	if err := json.Unmarshal(raw, &paths); err != nil {
		t.Fatalf("decode paths.json: %v", err)
	}
	if len(paths) != 4 || paths[0] != "intro" {
		t.Errorf("unexpected paths %v", paths)
	}
}

func TestGenerator_SkipsUnchangedPages(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(newSite(t, fixture()), out, 2, discard())

	if _, err := g.Generate(context.Background()); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	report, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if report.Unchanged != report.Pages || report.Written != 0 {
		t.Errorf("expected every page unchanged, got %+v", report)
	}
}

func TestGenerator_ReportsEveryFailure(t *testing.T) {
	src := fixture()
	src["content/00-intro/01-basics.svx"] = "::missing-one\n"
	src["content/01-math/01-algebra.svx"] = "![plot](plot.png)"
	out := t.TempDir()
	g := NewGenerator(newSite(t, src), out, 3, discard())

	report, err := g.Generate(context.Background())
	if err == nil {
		t.Fatal("expected generation error")
	}
	if report.Failed != 2 || report.Written != 3 {
		t.Errorf("unexpected report %+v", report)
	}
	var missing *render.MissingRefsError
	if !errors.As(err, &missing) {
		t.Errorf("expected MissingRefsError in %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "missing-one") || !strings.Contains(msg, "plot.png") {
		t.Errorf("expected both missing references in %q", msg)
	}
}

func TestGenerator_NotBuilt(t *testing.T) {
	s := site.New(source.MemSource{}, norm, render.New(norm, nil, ".svelte", 0), discard())
	g := NewGenerator(s, t.TempDir(), 1, discard())
	if _, err := g.Generate(context.Background()); !errors.Is(err, site.ErrNotBuilt) {
		t.Errorf("expected ErrNotBuilt, got %v", err)
	}
}

func TestGenerator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGenerator(newSite(t, fixture()), t.TempDir(), 2, discard())

	report, err := g.Generate(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if report.Failed != report.Pages {
		t.Errorf("expected every page to fail, got %+v", report)
	}
}
