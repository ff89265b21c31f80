package site

import (
	"fmt"
	"path"

	"github.com/dgallion1/coursegen/internal/doctree"
	"github.com/dgallion1/coursegen/internal/nav"
	"github.com/dgallion1/coursegen/internal/pathnorm"
	"github.com/dgallion1/coursegen/internal/render"
)

// Link points at another page.
type Link struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// Prerequisite is a prerequisite link. Unresolved prerequisites keep their
// raw path and a title derived from its last segment.
type Prerequisite struct {
	Link
	Resolved bool `json:"resolved"`
}

// Page is everything a page layout needs for one path.
type Page struct {
	Path          string            `json:"path"`
	Title         string            `json:"title"`
	HasContent    bool              `json:"has_content"`
	Breadcrumbs   []nav.Crumb       `json:"breadcrumbs"`
	Prev          *Link             `json:"prev,omitempty"`
	Next          *Link             `json:"next,omitempty"`
	Prerequisites []Prerequisite    `json:"prerequisites"`
	Children      []Link            `json:"children"`
	Outline       []*render.Heading `json:"outline,omitempty"`
	Excerpt       string            `json:"excerpt,omitempty"`
	Animations    []string          `json:"animations,omitempty"`
	HTML          string            `json:"html,omitempty"`
}

// Page assembles the page at p from the current snapshot.
func (s *Site) Page(p string) (*Page, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotBuilt
	}
	return snap.Page(p)
}

// Page assembles the page at p. It returns ErrNotFound when p does not
// resolve, and a *render.MissingRefsError when the body references missing
// assets.
func (snap *Snapshot) Page(p string) (*Page, error) {
	node := snap.Nav.FindNode(p)
	if node == nil {
		return nil, fmt.Errorf("%q: %w", p, ErrNotFound)
	}

	page := &Page{
		Path:          node.Path,
		Title:         node.Title,
		HasContent:    node.HasContent,
		Breadcrumbs:   snap.Nav.Breadcrumbs(node.Path),
		Prerequisites: snap.prerequisites(node),
		Children:      []Link{},
	}
	for _, c := range node.Children {
		if !c.Ignored {
			page.Children = append(page.Children, linkTo(c))
		}
	}
	sib := snap.Nav.Siblings(node.Path)
	if sib.Prev != nil {
		l := linkTo(sib.Prev)
		page.Prev = &l
	}
	if sib.Next != nil {
		l := linkTo(sib.Next)
		page.Next = &l
	}

	if !node.HasContent {
		return page, nil
	}
	doc, ok := snap.docs[node.Location]
	if !ok {
		return nil, fmt.Errorf("%q: document %s missing from snapshot", p, node.Location)
	}
	out, err := snap.renderer.Render(doc)
	if err != nil {
		return nil, err
	}
	page.HTML = out.HTML
	page.Outline = out.Outline
	page.Excerpt = out.Excerpt
	page.Animations = out.Animations

	return page, nil
}

func (snap *Snapshot) prerequisites(node *doctree.Node) []Prerequisite {
	out := make([]Prerequisite, 0, len(node.Prerequisites))
	for _, p := range node.Prerequisites {
		if target := snap.Nav.FindNode(p); target != nil && target.Path != "" {
			out = append(out, Prerequisite{Link: linkTo(target), Resolved: true})
			continue
		}
		out = append(out, Prerequisite{Link: Link{Path: p, Title: pathnorm.SlugToTitle(path.Base(p))}})
	}
	return out
}

func linkTo(n *doctree.Node) Link {
	return Link{Path: n.Path, Title: n.Title}
}
