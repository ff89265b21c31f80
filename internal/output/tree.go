// Package output formats the content tree for terminal display.
package output

import (
	"fmt"
	"strings"

	"github.com/disiqueira/gotree/v3"

	"github.com/dgallion1/coursegen/internal/doctree"
)

// TreeOptions selects what a rendered tree shows.
type TreeOptions struct {
	ShowIgnored   bool // Include ignored nodes, marked as such
	ShowLocations bool // Append the source location of content nodes
}

// RenderTree draws root and its descendants as an ASCII tree. Structural
// nodes without their own document are marked with "+".
func RenderTree(root *doctree.Node, opts TreeOptions) string {
	t := gotree.New(label(root, opts))
	addChildren(t, root, opts)
	return t.Print()
}

func addChildren(parent gotree.Tree, n *doctree.Node, opts TreeOptions) {
	for _, c := range n.Children {
		if c.Ignored && !opts.ShowIgnored {
			continue
		}
		addChildren(parent.Add(label(c, opts)), c, opts)
	}
}

func label(n *doctree.Node, opts TreeOptions) string {
	var b strings.Builder
	if !n.HasContent {
		b.WriteString("+ ")
	}
	if n.Path == "" {
		b.WriteString("/")
	} else {
		b.WriteString(n.Slug)
	}
	fmt.Fprintf(&b, " %q", n.Title)
	if n.Ignored {
		b.WriteString(" [ignored]")
	}
	if opts.ShowLocations && n.Location != "" {
		b.WriteString(" <- " + n.Location)
	}
	return b.String()
}

// RenderPaths lists every path, one per line, indented by depth.
func RenderPaths(paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		depth := strings.Count(p, "/")
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return b.String()
}
