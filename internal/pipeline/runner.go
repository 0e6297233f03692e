package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phamquangvu19/notes-flow/internal/source"
)

// Run drives one video through download, extract, transcribe, and
// summarize. Each stage's output is the mandatory input of the next; on
// failure the run stops immediately and the failing stage is reported in
// a *StageError. Intermediate files (video, audio, transcript) are left
// in place for diagnostics.
func (r *implRunner) Run(ctx context.Context, ref source.VideoRef, dirs Dirs) (string, error) {
	startTime := time.Now()

	r.logger.Info(ctx, "Processing video %s: %s", ref.VideoID, ref.URL)

	if err := ensureDirs(dirs); err != nil {
		return "", &StageError{Stage: StageDownload, Err: err}
	}

	videoPath, err := r.downloader.Download(ctx, ref, dirs.Videos)
	if err != nil {
		return "", &StageError{Stage: StageDownload, Err: err}
	}

	notesFile, err := r.process(ctx, ref.VideoID, videoPath, dirs)
	if err != nil {
		return "", err
	}

	r.logger.Info(ctx, "Video %s done in %s", ref.VideoID, time.Since(startTime))
	return notesFile, nil
}

// RunLocal runs extract, transcribe, and summarize for a video file that
// is already on disk. The file's base name stands in for the video ID.
func (r *implRunner) RunLocal(ctx context.Context, videoPath string, dirs Dirs) (string, error) {
	base := filepath.Base(videoPath)
	videoID := strings.TrimSuffix(base, filepath.Ext(base))

	r.logger.Info(ctx, "Processing local video: %s", videoPath)

	if err := ensureDirs(dirs); err != nil {
		return "", &StageError{Stage: StageExtractAudio, Err: err}
	}
	return r.process(ctx, videoID, videoPath, dirs)
}

func (r *implRunner) process(ctx context.Context, videoID, videoPath string, dirs Dirs) (string, error) {
	audioPath := filepath.Join(dirs.Audio, videoID+".wav")
	if err := r.extractor.Extract(ctx, videoPath, audioPath); err != nil {
		return "", &StageError{Stage: StageExtractAudio, Err: err}
	}

	transcript, err := r.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return "", &StageError{Stage: StageTranscribe, Err: err}
	}

	transcriptPath := filepath.Join(dirs.Transcripts, videoID+".txt")
	if err := os.WriteFile(transcriptPath, []byte(transcript), 0o644); err != nil {
		return "", &StageError{Stage: StageTranscribe, Err: fmt.Errorf("write transcript: %w", err)}
	}

	summary, err := r.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return "", &StageError{Stage: StageSummarize, Err: err}
	}

	notesFile := videoID + "_notes.md"
	md := fmt.Sprintf("# Notes: %s\n\n_%s_\n\n%s\n",
		videoID,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)
	notesPath := filepath.Join(dirs.Notes, notesFile)
	if err := os.WriteFile(notesPath, []byte(md), 0o644); err != nil {
		return "", &StageError{Stage: StageSummarize, Err: fmt.Errorf("write notes: %w", err)}
	}

	r.logger.Info(ctx, "Notes written: %s", notesPath)
	return notesFile, nil
}

func ensureDirs(dirs Dirs) error {
	for _, dir := range []string{dirs.Videos, dirs.Audio, dirs.Transcripts, dirs.Notes} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
