package render

import (
	"fmt"
	"html"
	"regexp"
)

// animationDirective matches a line consisting solely of "::name".
var animationDirective = regexp.MustCompile(`(?m)^::([a-z][a-z0-9-]*)$`)

// ExpandAnimations replaces every animation directive in body with a
// placeholder element carrying the animation name and the document's
// directory. It returns the new body and the names found, in order.
func ExpandAnimations(body, dir string) (string, []string) {
	var names []string
	out := animationDirective.ReplaceAllStringFunc(body, func(line string) string {
		name := animationDirective.FindStringSubmatch(line)[1]
		names = append(names, name)
		// Blank lines keep the element a standalone HTML block.
		return fmt.Sprintf("\n<div class=\"animation\" data-animation=\"%s\" data-dir=\"%s\"></div>\n",
			name, html.EscapeString(dir))
	})
	return out, names
}
