package api

import (
	"net/http"
)

// handleRebuild rediscovers the content and publishes a new tree.
func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	if err := s.site.Rebuild(r.Context()); err != nil {
		s.log.Error("rebuild failed", "error", err)
		jsonError(w, "rebuild failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	snap := s.site.Snapshot()
	writeJSON(w, map[string]any{
		"status":     "ok",
		"built_at":   snap.BuiltAt,
		"paths":      len(snap.Nav.AllPaths()),
		"collisions": len(snap.Nav.Tree().Collisions),
	})
}

func (s *Server) handleRebuildDisabled(w http.ResponseWriter, r *http.Request) {
	jsonError(w, "rebuild endpoint disabled: ADMIN_API_KEY not set", http.StatusForbidden)
}
