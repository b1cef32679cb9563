// Package report builds the machine-readable summary of a reassembly
// run, for operators and downstream CI steps to inspect after the fact.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/avolokita/chunkweld/internal/chunk"
	"github.com/avolokita/chunkweld/internal/fs"
	"github.com/avolokita/chunkweld/internal/util"
)

type SetReport struct {
	Base   string `json:"base"`
	Status string `json:"status"`
	Parts  int    `json:"parts"`
	Bytes  int64  `json:"bytes"`
	Error  string `json:"error,omitempty"`
}

type Report struct {
	RunID        string      `json:"run_id"`
	Root         string      `json:"root"`
	StartedAt    time.Time   `json:"started_at"`
	DurationMS   int64       `json:"duration_ms"`
	ChunksFound  int         `json:"chunks_found"`
	Reassembled  int         `json:"reassembled"`
	BytesWritten int64       `json:"bytes_written"`
	Failed       bool        `json:"failed"`
	Sets         []SetReport `json:"sets"`
}

func New(root string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Root:      root,
		StartedAt: time.Now().UTC(),
	}
}

// Finish folds a run result into the report and stamps the duration.
func (r *Report) Finish(res *chunk.Result) {
	r.DurationMS = time.Since(r.StartedAt).Milliseconds()
	r.ChunksFound = res.ChunksFound
	r.Reassembled = res.Reassembled
	r.BytesWritten = res.BytesWritten
	r.Failed = res.Failed()

	r.Sets = make([]SetReport, 0, len(res.Sets))
	for _, br := range res.Sets {
		sr := SetReport{
			Base:   br.Base,
			Status: br.Status.String(),
			Parts:  br.Parts,
			Bytes:  br.Bytes,
		}
		if br.Err != nil {
			sr.Error = br.Err.Error()
		}
		r.Sets = append(r.Sets, sr)
	}
}

// WriteFile stores the report as JSON, atomically.
func (r *Report) WriteFile(fsys fs.FS, path string) error {
	return util.WriteJSON(fsys, path, r)
}
