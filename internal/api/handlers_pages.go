package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/coursegen/internal/render"
	"github.com/dgallion1/coursegen/internal/site"
)

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	snap := s.site.Snapshot()
	if snap == nil {
		jsonError(w, site.ErrNotBuilt.Error(), http.StatusServiceUnavailable)
		return
	}
	tree := snap.Nav.Tree()
	writeJSON(w, map[string]any{
		"built_at":   snap.BuiltAt,
		"root":       tree.Root,
		"collisions": tree.Collisions,
	})
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	nav := s.site.Navigator()
	if nav == nil {
		jsonError(w, site.ErrNotBuilt.Error(), http.StatusServiceUnavailable)
		return
	}
	paths := nav.AllPaths()
	if paths == nil {
		paths = []string{}
	}
	writeJSON(w, map[string]any{"paths": paths})
}

// handlePage returns page metadata without the rendered body.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.site.Page(treePath(r))
	if err != nil {
		s.pageError(w, err)
		return
	}
	meta := *page
	meta.HTML = ""
	writeJSON(w, meta)
}

// handleHTML renders a page into the site layout. Pages are addressed with a
// trailing slash; other forms redirect to it.
func (s *Server) handleHTML(w http.ResponseWriter, r *http.Request) {
	p := treePath(r)
	page, err := s.site.Page(p)
	if err != nil {
		if errors.Is(err, site.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error("page failed", "path", p, "error", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if canonical := site.URL(page.Path); r.URL.Path != canonical {
		http.Redirect(w, r, canonical, http.StatusMovedPermanently)
		return
	}

	var buf bytes.Buffer
	if err := site.WriteHTML(&buf, page); err != nil {
		s.log.Error("layout failed", "path", p, "error", err)
		http.Error(w, "layout failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) pageError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	var missing *render.MissingRefsError
	if errors.As(err, &missing) {
		s.log.Error("missing references", "location", missing.Location, "refs", missing.Refs)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{
			"error":    err.Error(),
			"location": missing.Location,
			"missing":  missing.Refs,
		})
		return
	}
	if code == http.StatusInternalServerError {
		s.log.Error("page failed", "error", err)
	}
	jsonError(w, err.Error(), code)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, site.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, site.ErrNotBuilt):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func treePath(r *http.Request) string {
	return strings.Trim(chi.URLParam(r, "*"), "/")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
