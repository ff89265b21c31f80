package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Heading is one entry of a document's table of contents.
type Heading struct {
	Title    string     `json:"title"`
	ID       string     `json:"id,omitempty"`
	Level    int        `json:"level"`
	Children []*Heading `json:"children,omitempty"`
}

// buildOutline nests the document's headings by level.
func buildOutline(doc ast.Node, src []byte) []*Heading {
	type stackEntry struct {
		heading *Heading
		level   int
	}

	// Level 0 sentinel; all headings nest under it.
	root := &Heading{}
	stack := []stackEntry{{heading: root, level: 0}}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		node, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		h := &Heading{Title: extractText(node, src), Level: node.Level}
		if id, ok := node.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				h.ID = string(b)
			}
		}

		// Pop until the top is a shallower heading.
		for len(stack) > 1 && stack[len(stack)-1].level >= node.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].heading
		parent.Children = append(parent.Children, h)
		stack = append(stack, stackEntry{heading: h, level: node.Level})
	}

	return root.Children
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
