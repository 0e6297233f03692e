package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/phamquangvu19/notes-flow/internal/logger"
)

type implWatcher struct {
	inputDir string
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
}

// Start begins monitoring the input directory for new video files. Files
// are handled one at a time: every handled file runs the full
// extract/transcribe/summarize tail, which is rate limited upstream.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.inputDir)
	w.logger.Info(ctx, "Supported formats: .mp4, .mov, .avi, .mkv, .webm, .m4v, .flv")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				if !w.isVideoFile(event.Name) {
					w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
					continue
				}
				w.logger.Info(ctx, "New video detected: %s", event.Name)

				// Small delay to ensure the file is fully written
				time.Sleep(500 * time.Millisecond)

				if err := w.handler(ctx, event.Name); err != nil {
					w.logger.Error(ctx, "Failed to process %s: %v", event.Name, err)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// isVideoFile checks if the file has a supported video extension
func (w *implWatcher) isVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	supportedFormats := []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv"}

	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}

	return false
}
