package source

import "context"

// VideoRef identifies one video. VideoID is stable across discovery runs
// and is the identity key for all dedup logic.
type VideoRef struct {
	URL     string
	VideoID string
}

// VideoSource defines the per-platform discovery and download capability
type VideoSource interface {
	// Discover returns the channel's videos in feed order, newest first,
	// truncated to limit when limit > 0.
	Discover(ctx context.Context, channelURL string, limit int) ([]VideoRef, error)
	// Download fetches one video into destDir and returns the local path.
	Download(ctx context.Context, ref VideoRef, destDir string) (string, error)
}
