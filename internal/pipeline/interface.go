package pipeline

import (
	"context"
	"io"
)

// Request describes one submitted asset to be processed.
type Request struct {
	TaskID   string
	Filename string
	Content  io.Reader
}

// Result holds the outcome of the synchronous stages and the names of
// the artifacts they produced in storage.
type Result struct {
	Summary        string
	VideoName      string
	AudioName      string
	TranscriptName string
}

// Pipeline executes the fixed processing sequence for one task.
// Run drives ingest through summarization; Render is the final stage,
// deferred by the coordinator until after the submission response.
type Pipeline interface {
	Run(ctx context.Context, req Request) (*Result, error)
	Render(ctx context.Context, taskID, summary string) error
}

// DocumentName returns the storage name of the rendered document for a
// task id.
func DocumentName(taskID string) string {
	return taskID + ".docx"
}
