package output

import (
	"strings"
	"testing"

	"github.com/dgallion1/coursegen/internal/doctree"
	"github.com/dgallion1/coursegen/internal/pathnorm"
	"github.com/dgallion1/coursegen/internal/source"
)

func testTree() *doctree.Node {
	norm := pathnorm.Normalizer{Root: "content", Ext: ".svx"}
	docs := []source.Document{
		source.Parse("content/00-intro/index.svx", "---\ntitle: Intro\n---\nBody."),
		source.Parse("content/01-math/01-algebra.svx", "Algebra."),
		source.Parse("content/01-math/02-draft.svx", "---\nignored: true\n---\nDraft."),
	}
	return doctree.Build(docs, norm).Root
}

func TestRenderTree(t *testing.T) {
	out := RenderTree(testTree(), TreeOptions{})

	for _, want := range []string{
		`+ / "root"`,
		`intro "Intro"`,
		`+ math "Math"`,
		`algebra "Algebra"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "draft") {
		t.Errorf("expected ignored node to be hidden:\n%s", out)
	}
	if !strings.Contains(out, "└──") {
		t.Errorf("expected tree branches in:\n%s", out)
	}
}

func TestRenderTree_Options(t *testing.T) {
	out := RenderTree(testTree(), TreeOptions{ShowIgnored: true, ShowLocations: true})

	if !strings.Contains(out, `draft "Draft" [ignored]`) {
		t.Errorf("expected ignored node to be marked:\n%s", out)
	}
	if !strings.Contains(out, "<- content/00-intro/index.svx") {
		t.Errorf("expected source location:\n%s", out)
	}
}

func TestRenderPaths(t *testing.T) {
	got := RenderPaths([]string{"intro", "math", "math/algebra"})
	want := "intro\nmath\n  math/algebra\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
