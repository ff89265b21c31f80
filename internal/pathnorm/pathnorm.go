package pathnorm

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var orderPrefix = regexp.MustCompile(`^(\d+)-`)

// Segment is one path segment of a document location.
type Segment struct {
	Slug     string // Display segment, ordering prefix removed
	Original string // Segment as it appears in the location
}

// Normalized is the canonical form of a document location.
type Normalized struct {
	URLPath  string
	Segments []Segment
}

// Normalizer maps storage locations under Root to URL paths.
type Normalizer struct {
	Root string // Content root, e.g. "src/content"
	Ext  string // Source extension, e.g. ".svx"
}

// Normalize strips the content root and extension from location and derives
// its URL path. It reports false when location is outside the content root.
func (n Normalizer) Normalize(location string) (Normalized, bool) {
	rel, ok := n.relative(location)
	if !ok {
		return Normalized{}, false
	}
	rel = strings.TrimSuffix(rel, n.Ext)

	var segs []Segment
	var slugs []string
	for _, orig := range strings.Split(rel, "/") {
		if orig == "" {
			continue
		}
		slug := orderPrefix.ReplaceAllString(orig, "")
		if slug == "index" {
			continue
		}
		segs = append(segs, Segment{Slug: slug, Original: orig})
		slugs = append(slugs, slug)
	}

	return Normalized{URLPath: strings.Join(slugs, "/"), Segments: segs}, true
}

// Dir returns the directory of location relative to the content root, with
// ordering prefixes preserved. Documents directly under the root yield "".
func (n Normalizer) Dir(location string) string {
	rel, ok := n.relative(location)
	if !ok {
		return ""
	}
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return ""
	}
	return rel[:i]
}

func (n Normalizer) relative(location string) (string, bool) {
	root := strings.Trim(n.Root, "/")
	loc := strings.TrimPrefix(location, "/")
	if root == "" {
		return loc, true
	}
	if !strings.HasPrefix(loc, root+"/") {
		return "", false
	}
	return strings.TrimPrefix(loc, root+"/"), true
}

// ExtractOrder returns the numeric ordering prefix of an original segment,
// or 0 when there is none.
func ExtractOrder(segment string) int {
	m := orderPrefix.FindStringSubmatch(segment)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// SlugToTitle turns a kebab-case slug into a Title Case default title.
func SlugToTitle(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
