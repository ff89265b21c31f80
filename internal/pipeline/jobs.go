package pipeline

import (
	"crypto/sha256"
	"fmt"
)

// JobStatus represents the state of a page generation job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusRendering JobStatus = "rendering"
	StatusWritten   JobStatus = "written"
	StatusUnchanged JobStatus = "unchanged"
	StatusFailed    JobStatus = "failed"
)

// Job is the generation of one page. A job is owned by a single worker
// from the moment it is dequeued.
type Job struct {
	Path   string
	Status JobStatus
	File   string // Output file, relative to the output directory
	Bytes  int
	Err    error
}

// SetStatus records a status transition, keeping the first error.
func (j *Job) SetStatus(status JobStatus, err error) {
	j.Status = status
	if err != nil && j.Err == nil {
		j.Err = err
	}
}

// Report summarizes a generation run.
type Report struct {
	Pages     int `json:"pages"`
	Written   int `json:"written"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

func (r *Report) add(job *Job) {
	r.Pages++
	switch job.Status {
	case StatusWritten:
		r.Written++
	case StatusUnchanged:
		r.Unchanged++
	case StatusFailed:
		r.Failed++
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
