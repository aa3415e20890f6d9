package task

import (
	"context"
	"errors"
	"io"
)

// ErrNoViewer is returned when no notification channel opens for the
// task id within the configured wait window. The pipeline never starts
// in that case.
var ErrNoViewer = errors.New("no active notification channel for this task")

// Upload is the submitted asset.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Result is the submission response: the summary is complete, the
// document reference points at an artifact that is still rendering.
type Result struct {
	Summary  string `json:"summary"`
	Document string `json:"document"`
}

// Coordinator binds a submission to its viewer channel and drives the
// stage pipeline for it.
type Coordinator interface {
	Process(ctx context.Context, taskID string, upload Upload) (*Result, error)
}
