package pipeline

import (
	"context"

	"github.com/phamquangvu19/notes-flow/internal/source"
)

// Dirs holds the per-channel output directories the pipeline writes into
type Dirs struct {
	Videos      string
	Audio       string
	Transcripts string
	Notes       string
}

// Downloader fetches a video into a directory and returns the local path
type Downloader interface {
	Download(ctx context.Context, ref source.VideoRef, destDir string) (string, error)
}

// AudioExtractor extracts the audio track of a video file
type AudioExtractor interface {
	Extract(ctx context.Context, videoPath, audioPath string) error
}

// Transcriber converts an audio file to text
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Summarizer converts a transcript into markdown study notes
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// Runner executes the four-stage pipeline for one video
type Runner interface {
	// Run executes download, extract, transcribe, and summarize in strict
	// sequence and returns the written notes filename (relative to
	// dirs.Notes). A failure at any stage stops immediately with a
	// *StageError.
	Run(ctx context.Context, ref source.VideoRef, dirs Dirs) (string, error)
	// RunLocal executes the same tail of the pipeline for a video file
	// that is already on disk.
	RunLocal(ctx context.Context, videoPath string, dirs Dirs) (string, error)
}
