package pipeline

import (
	"context"
	"fmt"

	"vidbrief/internal/storage"
)

// ingest saves the uploaded video into storage under its sanitized name.
// Names are not namespaced per task: two tasks uploading files that
// sanitize to the same name share one blob, last writer wins.
func (p *implPipeline) ingest(ctx context.Context, req Request) (string, error) {
	p.reporter.Progress(ctx, req.TaskID, "Uploading video...", 10)

	videoName := storage.SanitizeFilename(req.Filename)
	if videoName == "" {
		err := fmt.Errorf("upload filename %q sanitizes to empty", req.Filename)
		p.reporter.Status(ctx, req.TaskID, fmt.Sprintf("Failed to save video: %v", err))
		return "", err
	}

	if _, err := p.store.Save(videoName, req.Content); err != nil {
		p.reporter.Status(ctx, req.TaskID, fmt.Sprintf("Failed to save video: %v", err))
		return "", err
	}

	p.reporter.Progress(ctx, req.TaskID, "Video uploaded successfully.", 20)
	return videoName, nil
}
