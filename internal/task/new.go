package task

import (
	"time"

	"vidbrief/internal/logger"
	"vidbrief/internal/pipeline"
	"vidbrief/internal/registry"
)

type implCoordinator struct {
	registry   *registry.Registry
	pipe       pipeline.Pipeline
	logger     logger.Logger
	waitWindow time.Duration

	// onRenderDone, when set, is invoked after the deferred render
	// finishes. Tests use it to observe the detached stage.
	onRenderDone func(taskID string, err error)
}

// New creates a Coordinator. waitWindow bounds how long a submission
// waits for its viewer channel to appear.
func New(reg *registry.Registry, pipe pipeline.Pipeline, log logger.Logger, waitWindow time.Duration) Coordinator {
	return &implCoordinator{
		registry:   reg,
		pipe:       pipe,
		logger:     log,
		waitWindow: waitWindow,
	}
}
