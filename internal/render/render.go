// Package render turns a document body into page HTML.
//
// Bodies are markdown. Before parsing, animation directives (a line holding
// only "::name") are expanded into placeholder elements. After rendering,
// every asset the HTML references is checked against the content source and
// all missing references are reported together.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/coursegen/internal/pathnorm"
	"github.com/dgallion1/coursegen/internal/source"
)

// DefaultExcerptWords bounds the excerpt length when none is configured.
const DefaultExcerptWords = 40

// AssetChecker reports whether a referenced file exists in the content source.
type AssetChecker interface {
	Exists(name string) bool
}

// Output is a rendered document body.
type Output struct {
	HTML       string
	Outline    []*Heading
	Excerpt    string
	Animations []string
}

// Renderer renders document bodies. It is safe for concurrent use.
type Renderer struct {
	norm         pathnorm.Normalizer
	assets       AssetChecker
	animationExt string
	excerptWords int
	md           goldmark.Markdown
}

// New creates a Renderer. A nil assets checker disables reference checks.
func New(norm pathnorm.Normalizer, assets AssetChecker, animationExt string, excerptWords int) *Renderer {
	if excerptWords <= 0 {
		excerptWords = DefaultExcerptWords
	}
	return &Renderer{
		norm:         norm,
		assets:       assets,
		animationExt: animationExt,
		excerptWords: excerptWords,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render converts doc's body to HTML. When referenced assets are missing
// the output is still returned together with a *MissingRefsError.
func (r *Renderer) Render(doc source.Document) (*Output, error) {
	dir := r.norm.Dir(doc.Location)
	body, animations := ExpandAnimations(doc.Body, dir)

	src := []byte(body)
	root := r.md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, root); err != nil {
		return nil, fmt.Errorf("render %s: %w", doc.Location, err)
	}

	out := &Output{
		HTML:       buf.String(),
		Outline:    buildOutline(root, src),
		Excerpt:    excerpt(root, src, r.excerptWords),
		Animations: animations,
	}

	if r.assets == nil {
		return out, nil
	}
	refs, err := r.references(out.HTML, dir)
	if err != nil {
		return nil, fmt.Errorf("scan references in %s: %w", doc.Location, err)
	}
	var missing []string
	for _, ref := range refs {
		if !r.assets.Exists(ref) {
			missing = append(missing, ref)
		}
	}
	if len(missing) > 0 {
		return out, &MissingRefsError{Location: doc.Location, Refs: missing}
	}
	return out, nil
}
