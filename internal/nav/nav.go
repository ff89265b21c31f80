// Package nav answers navigation queries against a built course tree.
// All methods are read-only and safe for concurrent use.
package nav

import (
	"strings"

	"github.com/dgallion1/coursegen/internal/doctree"
)

// Crumb is one breadcrumb entry.
type Crumb struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// Siblings holds previous/next navigation targets. Either may be nil.
type Siblings struct {
	Prev *doctree.Node
	Next *doctree.Node
}

// Navigator queries a single immutable tree.
type Navigator struct {
	tree *doctree.Tree
}

// New returns a Navigator over tree.
func New(tree *doctree.Tree) *Navigator {
	return &Navigator{tree: tree}
}

// Tree returns the underlying tree.
func (n *Navigator) Tree() *doctree.Tree {
	return n.tree
}

// FindNode resolves path segment by segment from the root. The empty path
// is the root. It returns nil as soon as a segment does not match.
func (n *Navigator) FindNode(path string) *doctree.Node {
	current := n.tree.Root
	for _, seg := range split(path) {
		current = current.Child(seg)
		if current == nil {
			return nil
		}
	}
	return current
}

// Breadcrumbs returns one crumb per resolvable non-empty prefix of path,
// left to right.
func (n *Navigator) Breadcrumbs(path string) []Crumb {
	crumbs := []Crumb{}
	prefix := ""
	for _, seg := range split(path) {
		if prefix == "" {
			prefix = seg
		} else {
			prefix += "/" + seg
		}
		if node := n.FindNode(prefix); node != nil {
			crumbs = append(crumbs, Crumb{Path: prefix, Title: node.Title})
		}
	}
	return crumbs
}

// Siblings returns the reading-order neighbours of the node at path.
//
// Plain adjacency among the parent's non-ignored children is refined two
// ways: a node with content and children continues into its first
// non-ignored child, and a first child whose parent has content goes back
// to the parent.
func (n *Navigator) Siblings(path string) Siblings {
	segs := split(path)
	if len(segs) == 0 {
		return Siblings{}
	}
	node := n.FindNode(path)
	if node == nil {
		return Siblings{}
	}
	parent := n.FindNode(strings.Join(segs[:len(segs)-1], "/"))
	if parent == nil {
		return Siblings{}
	}

	visible := visibleChildren(parent)
	idx := -1
	for i, s := range visible {
		if s.Slug == node.Slug {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Siblings{}
	}

	var s Siblings
	if idx > 0 {
		s.Prev = visible[idx-1]
	}
	if idx < len(visible)-1 {
		s.Next = visible[idx+1]
	}

	if node.HasContent {
		if children := visibleChildren(node); len(children) > 0 {
			s.Next = children[0]
		}
	}
	if s.Prev == nil && parent.HasContent {
		s.Prev = parent
	}

	return s
}

// AllPaths lists every non-root path in depth-first pre-order.
func (n *Navigator) AllPaths() []string {
	var paths []string
	n.tree.Root.Walk(func(node *doctree.Node) {
		if node.Path != "" {
			paths = append(paths, node.Path)
		}
	})
	return paths
}

func visibleChildren(n *doctree.Node) []*doctree.Node {
	out := make([]*doctree.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if !c.Ignored {
			out = append(out, c)
		}
	}
	return out
}

func split(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
