package doctree

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dgallion1/coursegen/internal/pathnorm"
	"github.com/dgallion1/coursegen/internal/source"
)

// Build folds docs into a single sorted tree. Documents are processed in
// location order, so the result does not depend on the order of docs.
//
// Documents with a body create nodes and give them content. Documents
// without a body only lend their front-matter to a node that already exists
// and has no content of its own.
func Build(docs []source.Document, norm pathnorm.Normalizer) *Tree {
	sorted := slices.Clone(docs)
	slices.SortStableFunc(sorted, func(a, b source.Document) int {
		return strings.Compare(a.Location, b.Location)
	})

	root := newRoot()
	claimed := make(map[string][]string)
	var metaOnly []source.Document

	for _, doc := range sorted {
		if !doc.HasBody {
			metaOnly = append(metaOnly, doc)
			continue
		}
		n, ok := norm.Normalize(doc.Location)
		if !ok {
			continue
		}

		node := insert(root, n.Segments)
		node.HasContent = true
		node.Location = doc.Location
		applyFrontMatter(node, doc.FrontMatter)
		claimed[n.URLPath] = append(claimed[n.URLPath], doc.Location)
	}

	for _, doc := range metaOnly {
		n, ok := norm.Normalize(doc.Location)
		if !ok {
			continue
		}
		node := lookup(root, n.Segments)
		if node == nil || node.HasContent {
			continue
		}
		applyFrontMatter(node, doc.FrontMatter)
	}

	Sort(root)

	return &Tree{Root: root, Collisions: collisions(claimed)}
}

// insert walks segs from root, creating missing nodes. A new node takes its
// order from the original segment of the document that creates it.
func insert(root *Node, segs []pathnorm.Segment) *Node {
	current := root
	for i, seg := range segs {
		child := current.Child(seg.Slug)
		if child == nil {
			child = newNode(seg, joinSlugs(segs[:i+1]))
			current.Children = append(current.Children, child)
		}
		current = child
	}
	return current
}

func lookup(root *Node, segs []pathnorm.Segment) *Node {
	current := root
	for _, seg := range segs {
		current = current.Child(seg.Slug)
		if current == nil {
			return nil
		}
	}
	return current
}

func joinSlugs(segs []pathnorm.Segment) string {
	slugs := make([]string, len(segs))
	for i, s := range segs {
		slugs[i] = s.Slug
	}
	return strings.Join(slugs, "/")
}

func collisions(claimed map[string][]string) []Collision {
	var out []Collision
	for path, locs := range claimed {
		if len(locs) > 1 {
			out = append(out, Collision{Path: path, Locations: locs})
		}
	}
	slices.SortFunc(out, func(a, b Collision) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}

// Sort orders every node's children by order, then title, then slug. It
// must run once, after the whole tree is assembled.
func Sort(root *Node) {
	col := collate.New(language.Und)
	sortChildren(root, col)
}

func sortChildren(n *Node, col *collate.Collator) {
	slices.SortFunc(n.Children, func(a, b *Node) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		if c := col.CompareString(a.Title, b.Title); c != 0 {
			return c
		}
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
	for _, c := range n.Children {
		sortChildren(c, col)
	}
}
