package doctree

import (
	"github.com/dgallion1/coursegen/internal/pathnorm"
	"github.com/dgallion1/coursegen/internal/source"
)

// Tree is the course hierarchy built from one document set.
type Tree struct {
	Root       *Node
	Collisions []Collision // Paths claimed by more than one content document
}

// Node is one entry of the course tree. Nodes are shared read-only once
// Build returns.
type Node struct {
	Slug          string   `json:"slug"`
	Path          string   `json:"path"`
	Title         string   `json:"title"`
	Order         int      `json:"order"`
	HasContent    bool     `json:"has_content"`
	Ignored       bool     `json:"ignored,omitempty"`
	Location      string   `json:"location,omitempty"` // Source of the node's content
	Prerequisites []string `json:"prerequisites"`
	Children      []*Node  `json:"children"`
}

// Collision records a URL path that more than one content document
// normalizes to. The last location wins.
type Collision struct {
	Path      string   `json:"path"`
	Locations []string `json:"locations"`
}

// Winner returns the location whose content the node carries.
func (c Collision) Winner() string {
	return c.Locations[len(c.Locations)-1]
}

// Child returns the direct child with the given slug, or nil.
func (n *Node) Child(slug string) *Node {
	for _, c := range n.Children {
		if c.Slug == slug {
			return c
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func newRoot() *Node {
	return &Node{
		Title:         "root",
		Prerequisites: []string{},
		Children:      []*Node{},
	}
}

func newNode(seg pathnorm.Segment, path string) *Node {
	return &Node{
		Slug:          seg.Slug,
		Path:          path,
		Title:         pathnorm.SlugToTitle(seg.Slug),
		Order:         pathnorm.ExtractOrder(seg.Original),
		Prerequisites: []string{},
		Children:      []*Node{},
	}
}

func applyFrontMatter(n *Node, fm source.FrontMatter) {
	if fm.Title != "" {
		n.Title = fm.Title
	}
	if fm.Prerequisites != nil {
		n.Prerequisites = append([]string{}, fm.Prerequisites...)
	}
	if fm.Ignored {
		n.Ignored = true
	}
}
