package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phamquangvu19/notes-flow/internal/logger"
	"github.com/phamquangvu19/notes-flow/internal/source"
)

type stubDownloader struct {
	err error
}

func (s *stubDownloader) Download(ctx context.Context, ref source.VideoRef, destDir string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	path := filepath.Join(destDir, ref.VideoID+".mp4")
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type stubExtractor struct {
	err error
}

func (s *stubExtractor) Extract(ctx context.Context, videoPath, audioPath string) error {
	if s.err != nil {
		return s.err
	}
	return os.WriteFile(audioPath, []byte("audio"), 0o644)
}

type stubTranscriber struct {
	text string
	err  error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return s.text, s.err
}

type stubSummarizer struct {
	text string
	err  error
}

func (s *stubSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	return s.text, s.err
}

func testDirs(t *testing.T) Dirs {
	t.Helper()
	base := t.TempDir()
	return Dirs{
		Videos:      filepath.Join(base, "videos"),
		Audio:       filepath.Join(base, "audio"),
		Transcripts: filepath.Join(base, "transcripts"),
		Notes:       filepath.Join(base, "notes"),
	}
}

func TestRunSuccess(t *testing.T) {
	dirs := testDirs(t)
	runner := New(
		&stubDownloader{},
		&stubExtractor{},
		&stubTranscriber{text: "hello transcript"},
		&stubSummarizer{text: "## Notes\n- point one"},
		logger.New("error"),
	)

	ref := source.VideoRef{URL: "https://youtu.be/abc", VideoID: "abc"}
	notesFile, err := runner.Run(context.Background(), ref, dirs)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if notesFile != "abc_notes.md" {
		t.Errorf("notesFile = %q, want abc_notes.md", notesFile)
	}

	data, err := os.ReadFile(filepath.Join(dirs.Notes, notesFile))
	if err != nil {
		t.Fatalf("notes file missing: %v", err)
	}
	if !strings.Contains(string(data), "point one") {
		t.Errorf("notes content = %q", string(data))
	}

	transcript, err := os.ReadFile(filepath.Join(dirs.Transcripts, "abc.txt"))
	if err != nil {
		t.Fatalf("transcript missing: %v", err)
	}
	if string(transcript) != "hello transcript" {
		t.Errorf("transcript = %q", string(transcript))
	}
}

func TestRunStopsAtFailingStage(t *testing.T) {
	tests := []struct {
		name      string
		down      Downloader
		extract   AudioExtractor
		trans     Transcriber
		summ      Summarizer
		wantStage Stage
	}{
		{
			name:      "download fails",
			down:      &stubDownloader{err: fmt.Errorf("network down")},
			extract:   &stubExtractor{},
			trans:     &stubTranscriber{text: "t"},
			summ:      &stubSummarizer{text: "s"},
			wantStage: StageDownload,
		},
		{
			name:      "extract fails",
			down:      &stubDownloader{},
			extract:   &stubExtractor{err: fmt.Errorf("no audio track")},
			trans:     &stubTranscriber{text: "t"},
			summ:      &stubSummarizer{text: "s"},
			wantStage: StageExtractAudio,
		},
		{
			name:      "transcribe fails",
			down:      &stubDownloader{},
			extract:   &stubExtractor{},
			trans:     &stubTranscriber{err: fmt.Errorf("quota exceeded")},
			summ:      &stubSummarizer{text: "s"},
			wantStage: StageTranscribe,
		},
		{
			name:      "summarize fails",
			down:      &stubDownloader{},
			extract:   &stubExtractor{},
			trans:     &stubTranscriber{text: "t"},
			summ:      &stubSummarizer{err: fmt.Errorf("empty response")},
			wantStage: StageSummarize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs := testDirs(t)
			runner := New(tt.down, tt.extract, tt.trans, tt.summ, logger.New("error"))

			ref := source.VideoRef{URL: "https://youtu.be/abc", VideoID: "abc"}
			_, err := runner.Run(context.Background(), ref, dirs)
			if err == nil {
				t.Fatal("Run() succeeded, want failure")
			}

			var stageErr *StageError
			if !errors.As(err, &stageErr) {
				t.Fatalf("err = %T, want *StageError", err)
			}
			if stageErr.Stage != tt.wantStage {
				t.Errorf("stage = %s, want %s", stageErr.Stage, tt.wantStage)
			}

			// No partial notes on failure.
			if _, statErr := os.Stat(filepath.Join(dirs.Notes, "abc_notes.md")); statErr == nil {
				t.Error("notes file written despite failure")
			}
		})
	}
}

func TestRunKeepsIntermediatesOnFailure(t *testing.T) {
	dirs := testDirs(t)
	runner := New(
		&stubDownloader{},
		&stubExtractor{},
		&stubTranscriber{err: fmt.Errorf("quota exceeded")},
		&stubSummarizer{text: "s"},
		logger.New("error"),
	)

	ref := source.VideoRef{URL: "https://youtu.be/abc", VideoID: "abc"}
	if _, err := runner.Run(context.Background(), ref, dirs); err == nil {
		t.Fatal("Run() succeeded, want transcribe failure")
	}

	// The downloaded video and extracted audio stay for diagnostics.
	if _, err := os.Stat(filepath.Join(dirs.Videos, "abc.mp4")); err != nil {
		t.Errorf("video not preserved: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dirs.Audio, "abc.wav")); err != nil {
		t.Errorf("audio not preserved: %v", err)
	}
}

func TestRunLocal(t *testing.T) {
	dirs := testDirs(t)
	runner := New(
		nil, // no download stage for local files
		&stubExtractor{},
		&stubTranscriber{text: "local transcript"},
		&stubSummarizer{text: "local notes"},
		logger.New("error"),
	)

	videoPath := filepath.Join(t.TempDir(), "lecture01.mp4")
	if err := os.WriteFile(videoPath, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}

	notesFile, err := runner.RunLocal(context.Background(), videoPath, dirs)
	if err != nil {
		t.Fatalf("RunLocal() error = %v", err)
	}
	if notesFile != "lecture01_notes.md" {
		t.Errorf("notesFile = %q, want lecture01_notes.md", notesFile)
	}
	if _, err := os.Stat(filepath.Join(dirs.Notes, notesFile)); err != nil {
		t.Errorf("notes file missing: %v", err)
	}
}
