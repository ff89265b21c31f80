package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgallion1/coursegen/internal/site"
)

// Generator writes every page of a site snapshot to disk.
type Generator struct {
	site    *site.Site
	outDir  string
	workers int
	log     *slog.Logger
}

// NewGenerator creates a static site generator.
func NewGenerator(s *site.Site, outDir string, workers int, log *slog.Logger) *Generator {
	if workers <= 0 {
		workers = 4
	}
	return &Generator{
		site:    s,
		outDir:  outDir,
		workers: workers,
		log:     log,
	}
}

// Generate renders the root and every path of the current snapshot. All
// pages are attempted; the returned error joins every page failure in path
// order.
func (g *Generator) Generate(ctx context.Context) (Report, error) {
	snap := g.site.Snapshot()
	if snap == nil {
		return Report{}, site.ErrNotBuilt
	}
	start := time.Now()

	paths := append([]string{""}, snap.Nav.AllPaths()...)
	jobs := make([]*Job, len(paths))
	queue := make(chan *Job, len(paths))
	for i, p := range paths {
		jobs[i] = &Job{Path: p, Status: StatusQueued}
		queue <- jobs[i]
	}
	close(queue)

	var wg sync.WaitGroup
	for range min(g.workers, len(jobs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := NewWorker(snap, g.outDir, g.log)
			for job := range queue {
				w.Process(ctx, job)
			}
		}()
	}
	wg.Wait()

	var report Report
	var errs []error
	for _, job := range jobs {
		report.add(job)
		if job.Err != nil {
			errs = append(errs, fmt.Errorf("page %q: %w", job.Path, job.Err))
		}
	}

	if err := g.writeIndex(snap); err != nil {
		errs = append(errs, err)
	}

	g.log.Info("site generated",
		"out", g.outDir,
		"pages", report.Pages,
		"written", report.Written,
		"unchanged", report.Unchanged,
		"failed", report.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, errors.Join(errs...)
}

// writeIndex writes the navigation tree and path list next to the pages.
func (g *Generator) writeIndex(snap *site.Snapshot) error {
	files := map[string]any{
		"tree.json":  snap.Nav.Tree().Root,
		"paths.json": snap.Nav.AllPaths(),
	}
	for name, v := range files {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		if err := os.MkdirAll(g.outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(filepath.Join(g.outDir, name), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
