package media

import (
	"context"
	"fmt"

	"github.com/phamquangvu19/notes-flow/internal/logger"
	"github.com/phamquangvu19/notes-flow/pkg/executor"
)

type implExtractor struct {
	executor executor.Executor
	logger   logger.Logger
}

// New creates an ffmpeg-backed Extractor
func New(exec executor.Executor, log logger.Logger) Extractor {
	return &implExtractor{executor: exec, logger: log}
}

// Extract converts the video's audio track to 16kHz mono PCM WAV, the
// format Whisper handles best.
func (e *implExtractor) Extract(ctx context.Context, videoPath, audioPath string) error {
	e.logger.Info(ctx, "Extracting audio: %s", videoPath)

	// -vn: drop video
	// -ar 16000 -ac 1: 16kHz mono for Whisper
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	e.logger.Info(ctx, "Audio extracted: %s", audioPath)
	return nil
}
