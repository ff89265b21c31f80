package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/coursegen/internal/config"
	"github.com/dgallion1/coursegen/internal/site"
)

// Server serves the course site and its JSON API.
type Server struct {
	router chi.Router
	site   *site.Site
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(s *site.Site, log *slog.Logger, cfg config.Config) *Server {
	srv := &Server{
		site: s,
		log:  log,
		cfg:  cfg,
	}
	srv.setupRoutes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/api/tree", s.handleTree)
	r.Get("/api/paths", s.handlePaths)
	r.Get("/api/pages", s.handlePage)
	r.Get("/api/pages/*", s.handlePage)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		if s.cfg.AdminAPIKey == "" {
			r.Post("/api/rebuild", s.handleRebuildDisabled)
			return
		}
		r.Use(AuthMiddleware(s.cfg.AdminAPIKey, s.log))
		r.Post("/api/rebuild", s.handleRebuild)
	})

	r.Get("/", s.handleHTML)
	r.Get("/*", s.handleHTML)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.site.Snapshot() == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"building"}`))
		return
	}
	w.Write([]byte(`{"status":"ok"}`))
}
