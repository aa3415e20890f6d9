package progress

import "context"

// Reporter is the best-effort status-delivery capability handed to every
// pipeline stage. Delivery is observational: no implementation may fail
// the caller, whatever happens to the underlying channel.
type Reporter interface {
	// Status sends a human-readable update with no percentage.
	Status(ctx context.Context, taskID, text string)
	// Progress sends an update with a progress percentage in [0,100].
	Progress(ctx context.Context, taskID, text string, pct int)
}
