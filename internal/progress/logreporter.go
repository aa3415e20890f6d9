package progress

import (
	"context"

	"vidbrief/internal/logger"
)

type logReporter struct {
	logger logger.Logger
}

// NewLogReporter creates a Reporter that writes updates to the log.
// Used by the batch runner, where no viewer connection exists.
func NewLogReporter(log logger.Logger) Reporter {
	return &logReporter{logger: log}
}

func (r *logReporter) Status(ctx context.Context, taskID, text string) {
	r.logger.Info(ctx, "[%s] %s", taskID, text)
}

func (r *logReporter) Progress(ctx context.Context, taskID, text string, pct int) {
	r.logger.Info(ctx, "[%s] %s (%d%%)", taskID, text, pct)
}
