package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phamquangvu19/notes-flow/internal/config"
	"github.com/phamquangvu19/notes-flow/internal/logger"
	"github.com/phamquangvu19/notes-flow/pkg/executor"
)

type implTranscriber struct {
	cfg      *config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a whisper.cpp-backed Transcriber
func New(cfg *config.WhisperConfig, exec executor.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{cfg: cfg, executor: exec, logger: log}
}

// Transcribe runs the whisper.cpp binary against audioPath and returns
// the transcript text.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Info(ctx, "Transcribing with %d threads: %s", t.cfg.Threads, audioPath)

	// -otxt: plain text output
	// -l: force language, "auto" lets Whisper detect
	// -bo 5: best-of sampling for better accuracy
	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", t.cfg.Language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"-bo", "5",
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read transcript %s: %w", txtPath, err)
	}

	transcript := strings.TrimSpace(string(data))
	if transcript == "" {
		return "", fmt.Errorf("transcript is empty for %s", audioPath)
	}

	t.logger.Info(ctx, "Transcription completed: %s", txtPath)
	return transcript, nil
}
