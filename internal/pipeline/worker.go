package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/coursegen/internal/site"
)

// Worker renders pages from one snapshot into the output directory.
type Worker struct {
	snap   *site.Snapshot
	outDir string
	log    *slog.Logger
}

func NewWorker(snap *site.Snapshot, outDir string, log *slog.Logger) *Worker {
	return &Worker{
		snap:   snap,
		outDir: outDir,
		log:    log,
	}
}

// OutputFile returns the file a tree path is written to, relative to the
// output directory.
func OutputFile(path string) string {
	if path == "" {
		return "index.html"
	}
	return filepath.Join(filepath.FromSlash(path), "index.html")
}

// Process renders and writes the page for job. Files whose content is
// unchanged are left untouched.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("path", job.Path)

	if err := ctx.Err(); err != nil {
		job.SetStatus(StatusFailed, err)
		return
	}

	job.SetStatus(StatusRendering, nil)
	page, err := w.snap.Page(job.Path)
	if err != nil {
		log.Error("render failed", "error", err)
		job.SetStatus(StatusFailed, err)
		return
	}

	var buf bytes.Buffer
	if err := site.WriteHTML(&buf, page); err != nil {
		log.Error("layout failed", "error", err)
		job.SetStatus(StatusFailed, err)
		return
	}
	job.Bytes = buf.Len()
	job.File = OutputFile(job.Path)

	target := filepath.Join(w.outDir, job.File)
	if existing, err := os.ReadFile(target); err == nil && ContentHashHex(existing) == ContentHashHex(buf.Bytes()) {
		job.SetStatus(StatusUnchanged, nil)
		return
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		job.SetStatus(StatusFailed, fmt.Errorf("create directory for %q: %w", job.Path, err))
		return
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		job.SetStatus(StatusFailed, fmt.Errorf("write %s: %w", target, err))
		return
	}
	log.Debug("page written", "file", job.File, "bytes", job.Bytes)
	job.SetStatus(StatusWritten, nil)
}
