package render

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// excerpt returns the first paragraph's text cut to at most maxWords words.
func excerpt(doc ast.Node, src []byte, maxWords int) string {
	var first ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Kind() == ast.KindParagraph {
			first = n
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if first == nil {
		return ""
	}
	return truncateWords(extractText(first, src), maxWords)
}

func truncateWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ") + "…"
}
