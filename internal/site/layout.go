package site

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/page.html.tmpl
var pageTemplate string

var layout = template.Must(template.New("page").
	Funcs(template.FuncMap{"url": URL}).
	Parse(pageTemplate))

// URL returns the site URL of a tree path. Pages live in directories so
// static output can be served without rewrites.
func URL(p string) string {
	if p == "" {
		return "/"
	}
	return "/" + p + "/"
}

// WriteHTML renders page into the site layout.
func WriteHTML(w io.Writer, page *Page) error {
	data := struct {
		Page *Page
		Body template.HTML
	}{
		Page: page,
		// Bodies come from the site's own authored content.
		Body: template.HTML(page.HTML),
	}
	if err := layout.Execute(w, data); err != nil {
		return fmt.Errorf("execute layout for %q: %w", page.Path, err)
	}
	return nil
}
