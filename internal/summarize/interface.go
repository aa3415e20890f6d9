package summarize

import "context"

// Summarizer turns a transcript into a structured markdown summary.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}
