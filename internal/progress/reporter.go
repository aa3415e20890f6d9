package progress

import (
	"context"

	"vidbrief/internal/logger"
	"vidbrief/internal/registry"
)

type implReporter struct {
	registry *registry.Registry
	logger   logger.Logger
}

// New creates a Reporter that delivers updates through the connection
// registry. Updates for task ids with no open channel are dropped;
// a failed send deregisters the channel and is never surfaced to the
// reporting stage.
func New(reg *registry.Registry, log logger.Logger) Reporter {
	return &implReporter{
		registry: reg,
		logger:   log,
	}
}

func (r *implReporter) Status(ctx context.Context, taskID, text string) {
	r.send(ctx, taskID, registry.Message{Status: text})
}

func (r *implReporter) Progress(ctx context.Context, taskID, text string, pct int) {
	r.send(ctx, taskID, registry.Message{Status: text, Progress: &pct})
}

func (r *implReporter) send(ctx context.Context, taskID string, msg registry.Message) {
	sender, ok := r.registry.Get(taskID)
	if !ok {
		// Nobody is watching; processing continues regardless.
		return
	}

	if err := sender.Send(msg); err != nil {
		// A delivery failure means the viewer disconnected. Drop the
		// channel and move on; reporting never aborts processing.
		r.logger.Warn(ctx, "notification channel lost for task %s: %v", taskID, err)
		r.registry.Close(taskID)
	}
}
