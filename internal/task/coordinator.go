package task

import (
	"context"
	"errors"
	"fmt"

	"vidbrief/internal/pipeline"
	"vidbrief/internal/registry"
)

// Process runs one submission end to end: wait for the viewer channel,
// drive ingest through summarization, then schedule rendering detached
// from the request. The summary is returned as soon as it exists; the
// document reference points at an artifact the deferred render will
// produce.
func (c *implCoordinator) Process(ctx context.Context, taskID string, upload Upload) (*Result, error) {
	if err := c.registry.Await(ctx, taskID, c.waitWindow); err != nil {
		if errors.Is(err, registry.ErrNoChannel) {
			c.logger.Warn(ctx, "submission for task %s rejected: no viewer within %s", taskID, c.waitWindow)
			return nil, fmt.Errorf("%w: %s", ErrNoViewer, taskID)
		}
		return nil, err
	}

	result, err := c.pipe.Run(ctx, pipeline.Request{
		TaskID:   taskID,
		Filename: upload.Filename,
		Content:  upload.Content,
	})
	if err != nil {
		c.logger.Error(ctx, "pipeline failed for task %s: %v", taskID, err)
		return nil, err
	}

	c.scheduleRender(taskID, result.Summary)

	return &Result{
		Summary:  result.Summary,
		Document: "/download/" + taskID,
	}, nil
}

// scheduleRender spawns the deferred render stage with its own error
// channel. The submitter has already been answered, so a failure here
// is observable only through the progress channel and the document
// endpoint staying not-found.
func (c *implCoordinator) scheduleRender(taskID, summary string) {
	errc := make(chan error, 1)

	go func() {
		// Detached from the request context: the response cycle that
		// spawned this work is already finished.
		errc <- c.pipe.Render(context.Background(), taskID, summary)
	}()

	go func() {
		err := <-errc
		if err != nil {
			c.logger.Error(context.Background(), "deferred render failed for task %s: %v", taskID, err)
		}
		if c.onRenderDone != nil {
			c.onRenderDone(taskID, err)
		}
	}()
}
