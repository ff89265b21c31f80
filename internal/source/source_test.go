package source

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
)

func TestParse_FrontMatterAndBody(t *testing.T) {
	raw := "---\ntitle: Intro\nprerequisites:\n  - math/algebra\n  - math/geometry\n---\n\n# Welcome\n\nBody text.\n"
	doc := Parse("src/content/00-intro/index.svx", raw)

	if doc.FrontMatter.Title != "Intro" {
		t.Errorf("expected title %q, got %q", "Intro", doc.FrontMatter.Title)
	}
	if len(doc.FrontMatter.Prerequisites) != 2 || doc.FrontMatter.Prerequisites[1] != "math/geometry" {
		t.Errorf("unexpected prerequisites: %v", doc.FrontMatter.Prerequisites)
	}
	if !doc.HasBody {
		t.Error("expected document to have body content")
	}
	if doc.Body != "\n# Welcome\n\nBody text.\n" {
		t.Errorf("unexpected body %q", doc.Body)
	}
}

func TestParse_FrontMatterOnly(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no trailing newline", "---\ntitle: Section\n---"},
		{"trailing newline", "---\ntitle: Section\n---\n"},
		{"whitespace body", "---\ntitle: Section\n---\n\n   \n\t\n"},
		{"crlf", "---\r\ntitle: Section\r\n---\r\n"},
	}
	for _, tt := range tests {
		doc := Parse("src/content/01-section/index.svx", tt.raw)
		if doc.HasBody {
			t.Errorf("%s: expected no body content, got body %q", tt.name, doc.Body)
		}
		if doc.FrontMatter.Title != "Section" {
			t.Errorf("%s: expected title %q, got %q", tt.name, "Section", doc.FrontMatter.Title)
		}
	}
}

func TestParse_NoFrontMatter(t *testing.T) {
	doc := Parse("src/content/plain.svx", "Just text.")
	if !doc.HasBody {
		t.Error("expected plain document to have body content")
	}
	if doc.Body != "Just text." {
		t.Errorf("expected body to be the whole source, got %q", doc.Body)
	}
	if doc.FrontMatter.Title != "" || doc.FrontMatter.Prerequisites != nil {
		t.Errorf("expected empty front-matter, got %+v", doc.FrontMatter)
	}

	empty := Parse("src/content/empty.svx", "")
	if empty.HasBody {
		t.Error("expected empty source to have no body content")
	}
}

func TestParse_EmptyFrontMatterBlock(t *testing.T) {
	doc := Parse("src/content/a.svx", "---\n---\nHello")
	if doc.Body != "Hello" {
		t.Errorf("expected body %q, got %q", "Hello", doc.Body)
	}
}

func TestParse_MalformedFrontMatter(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTitle string
		wantPre   []string
	}{
		{"invalid yaml", "---\ntitle: [unclosed\n---\nbody", "", nil},
		{"title is a list", "---\ntitle:\n  - a\n  - b\nprerequisites:\n  - x\n---\nbody", "", []string{"x"}},
		{"prerequisites is a string", "---\ntitle: Ok\nprerequisites: intro\n---\nbody", "Ok", nil},
		{"prerequisites contain maps", "---\ntitle: Ok\nprerequisites:\n  - a: b\n---\nbody", "Ok", nil},
		{"not a mapping", "---\n- just\n- a list\n---\nbody", "", nil},
	}
	for _, tt := range tests {
		doc := Parse("src/content/x.svx", tt.raw)
		if doc.FrontMatter.Title != tt.wantTitle {
			t.Errorf("%s: expected title %q, got %q", tt.name, tt.wantTitle, doc.FrontMatter.Title)
		}
		if len(doc.FrontMatter.Prerequisites) != len(tt.wantPre) {
			t.Errorf("%s: expected prerequisites %v, got %v", tt.name, tt.wantPre, doc.FrontMatter.Prerequisites)
		}
		if !doc.HasBody {
			t.Errorf("%s: expected body to survive malformed front-matter", tt.name)
		}
	}
}

func TestParse_Ignored(t *testing.T) {
	doc := Parse("src/content/x.svx", "---\nignored: true\n---\nbody")
	if !doc.FrontMatter.Ignored {
		t.Error("expected ignored flag to be set")
	}
}

func TestFSSource_ListDocuments(t *testing.T) {
	fsys := fstest.MapFS{
		"src/content/00-intro/index.svx":     {Data: []byte("---\ntitle: Intro\n---\nHello")},
		"src/content/00-intro/01-basics.svx": {Data: []byte("Basics body")},
		"src/content/00-intro/notes.txt":     {Data: []byte("not a document")},
		"src/other/outside.svx":              {Data: []byte("outside the root")},
		"src/content/index.svx":              {Data: []byte("Home")},
	}
	src := &FSSource{FS: fsys, Root: "src/content", Ext: ".svx"}

	docs, err := src.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"src/content/00-intro/01-basics.svx",
		"src/content/00-intro/index.svx",
		"src/content/index.svx",
	}
	if len(docs) != len(want) {
		t.Fatalf("expected %d documents, got %d", len(want), len(docs))
	}
	for i, w := range want {
		if docs[i].Location != w {
			t.Errorf("doc[%d]: expected location %q, got %q", i, w, docs[i].Location)
		}
	}
	if docs[1].FrontMatter.Title != "Intro" {
		t.Errorf("expected parsed title %q, got %q", "Intro", docs[1].FrontMatter.Title)
	}

	if !src.Exists("src/content/00-intro/notes.txt") {
		t.Error("expected Exists to find a regular file")
	}
	if src.Exists("src/content/00-intro") {
		t.Error("expected Exists to reject directories")
	}
}

func TestFSSource_CanceledContext(t *testing.T) {
	fsys := fstest.MapFS{
		"content/a.svx": {Data: []byte("a")},
	}
	src := &FSSource{FS: fsys, Root: "content", Ext: ".svx"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.ListDocuments(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMemSource_Sorted(t *testing.T) {
	src := MemSource{
		"content/b.svx": "b",
		"content/a.svx": "a",
	}
	docs, err := src.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs[0].Location != "content/a.svx" || docs[1].Location != "content/b.svx" {
		t.Errorf("expected sorted locations, got %q, %q", docs[0].Location, docs[1].Location)
	}
}
