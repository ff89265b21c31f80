package render

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
)

// MissingRefsError lists every asset a document references that does not
// exist in the content source.
type MissingRefsError struct {
	Location string
	Refs     []string
}

func (e *MissingRefsError) Error() string {
	return fmt.Sprintf("%s: %d missing reference(s): %s", e.Location, len(e.Refs), strings.Join(e.Refs, ", "))
}

// AnimationPath returns the source path of an animation referenced from a
// document in dir.
func (r *Renderer) AnimationPath(dir, name string) string {
	return path.Join(strings.Trim(r.norm.Root, "/"), dir, "animations", name+r.animationExt)
}

// references walks rendered HTML and returns the source paths of every
// animation and relative image it references, deduplicated in order.
func (r *Renderer) references(rendered, dir string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	seen := make(map[string]bool)
	var refs []string
	add := func(ref string) {
		if ref != "" && !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "div":
				if hasClass(n, "animation") {
					name := attr(n, "data-animation")
					if name != "" {
						add(r.AnimationPath(attr(n, "data-dir"), name))
					}
				}
			case "img":
				add(r.localAsset(dir, attr(n, "src")))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return refs, nil
}

// localAsset resolves a relative URL against the document directory. URLs
// with a scheme, host or absolute path are not checked.
func (r *Renderer) localAsset(dir, src string) string {
	if src == "" {
		return ""
	}
	u, err := url.Parse(src)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" || strings.HasPrefix(u.Path, "/") {
		return ""
	}
	return path.Join(strings.Trim(r.norm.Root, "/"), dir, u.Path)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
