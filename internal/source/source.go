package source

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DocumentSource enumerates every authored document up front.
type DocumentSource interface {
	ListDocuments(ctx context.Context) ([]Document, error)
}

// FSSource discovers documents under Root in a filesystem.
type FSSource struct {
	FS   fs.FS
	Root string // Content root inside FS, e.g. "src/content"
	Ext  string // Source extension, e.g. ".svx"
}

// Pattern returns the doublestar glob matching every source document.
func (s *FSSource) Pattern() string {
	return path.Join(strings.Trim(s.Root, "/"), "**", "*"+s.Ext)
}

// ListDocuments reads and parses every matching file, sorted by location.
func (s *FSSource) ListDocuments(ctx context.Context) ([]Document, error) {
	matches, err := doublestar.Glob(s.FS, s.Pattern(), doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", s.Pattern(), err)
	}
	slices.Sort(matches)

	docs := make([]Document, 0, len(matches))
	for _, loc := range matches {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		raw, err := fs.ReadFile(s.FS, loc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", loc, err)
		}
		docs = append(docs, Parse(loc, string(raw)))
	}
	return docs, nil
}

// Exists reports whether a regular file exists at name in the source FS.
func (s *FSSource) Exists(name string) bool {
	info, err := fs.Stat(s.FS, name)
	return err == nil && !info.IsDir()
}

// MemSource is an in-memory DocumentSource keyed by location.
type MemSource map[string]string

// ListDocuments parses every entry, sorted by location.
func (m MemSource) ListDocuments(ctx context.Context) ([]Document, error) {
	locs := make([]string, 0, len(m))
	for loc := range m {
		locs = append(locs, loc)
	}
	slices.Sort(locs)

	docs := make([]Document, 0, len(locs))
	for _, loc := range locs {
		docs = append(docs, Parse(loc, m[loc]))
	}
	return docs, nil
}

// Exists reports whether location is present.
func (m MemSource) Exists(name string) bool {
	_, ok := m[name]
	return ok
}
