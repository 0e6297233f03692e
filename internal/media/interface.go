package media

import "context"

// Extractor pulls the audio track out of a video file
type Extractor interface {
	Extract(ctx context.Context, videoPath, audioPath string) error
}
