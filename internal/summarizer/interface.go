package summarizer

import "context"

// Summarizer converts a raw transcript into markdown study notes
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}
