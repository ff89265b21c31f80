package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgallion1/coursegen/internal/doctree"
	"github.com/dgallion1/coursegen/internal/nav"
	"github.com/dgallion1/coursegen/internal/pathnorm"
	"github.com/dgallion1/coursegen/internal/render"
	"github.com/dgallion1/coursegen/internal/source"
)

var (
	// ErrNotFound is returned for paths that do not resolve to a node.
	ErrNotFound = errors.New("page not found")
	// ErrNotBuilt is returned when no tree has been published yet.
	ErrNotBuilt = errors.New("site not built")
)

// Snapshot is one fully built, immutable view of the content.
type Snapshot struct {
	Nav     *nav.Navigator
	BuiltAt time.Time

	docs     map[string]source.Document // By location
	renderer *render.Renderer
}

// Site owns the current snapshot and rebuilds it on demand.
type Site struct {
	src      source.DocumentSource
	norm     pathnorm.Normalizer
	renderer *render.Renderer
	log      *slog.Logger

	mu      sync.Mutex // Serializes rebuilds
	current atomic.Pointer[Snapshot]
}

// New creates a Site. Call Rebuild before serving queries.
func New(src source.DocumentSource, norm pathnorm.Normalizer, renderer *render.Renderer, log *slog.Logger) *Site {
	return &Site{
		src:      src,
		norm:     norm,
		renderer: renderer,
		log:      log,
	}
}

// Rebuild discovers all documents, builds and sorts a new tree and publishes
// it. Readers keep seeing the previous snapshot until the new one is
// complete; on error the previous snapshot stays in place.
func (s *Site) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	docs, err := s.src.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("discover documents: %w", err)
	}

	tree := doctree.Build(docs, s.norm)
	for _, c := range tree.Collisions {
		s.log.Warn("path collision, last location wins",
			"path", c.Path,
			"locations", c.Locations,
			"winner", c.Winner(),
		)
	}

	byLocation := make(map[string]source.Document, len(docs))
	for _, d := range docs {
		byLocation[d.Location] = d
	}

	snap := &Snapshot{
		Nav:      nav.New(tree),
		BuiltAt:  time.Now(),
		docs:     byLocation,
		renderer: s.renderer,
	}
	s.current.Store(snap)

	s.log.Info("content tree built",
		"documents", len(docs),
		"paths", len(snap.Nav.AllPaths()),
		"collisions", len(tree.Collisions),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Snapshot returns the current snapshot, or nil before the first build.
func (s *Site) Snapshot() *Snapshot {
	return s.current.Load()
}

// Navigator returns the navigator of the current snapshot, or nil.
func (s *Site) Navigator() *nav.Navigator {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	return snap.Nav
}

// Document returns the source document published at location.
func (snap *Snapshot) Document(location string) (source.Document, bool) {
	d, ok := snap.docs[location]
	return d, ok
}
