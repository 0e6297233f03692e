package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/phamquangvu19/notes-flow/internal/channel"
	"github.com/phamquangvu19/notes-flow/internal/config"
	"github.com/phamquangvu19/notes-flow/internal/logger"
	"github.com/phamquangvu19/notes-flow/internal/media"
	"github.com/phamquangvu19/notes-flow/internal/pipeline"
	"github.com/phamquangvu19/notes-flow/internal/planner"
	"github.com/phamquangvu19/notes-flow/internal/source"
	"github.com/phamquangvu19/notes-flow/internal/summarizer"
	"github.com/phamquangvu19/notes-flow/internal/transcriber"
	"github.com/phamquangvu19/notes-flow/internal/watcher"
	"github.com/phamquangvu19/notes-flow/pkg/executor"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to the YAML config file")
		limit      = flag.Int("limit", 0, "maximum number of videos to process (0 = all)")
		reprocess  = flag.Bool("reprocess", false, "ignore the processing ledger and process everything")
		reset      = flag.Bool("reset", false, "clear the processing ledger before running")
		watch      = flag.Bool("watch", false, "watch the input directory for local video files instead of processing a URL")
	)
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown: the ledger is persisted after every video, so an
	// interrupted run resumes cleanly on the next invocation.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info(ctx, "Shutdown signal received")
		cancel()
	}()

	apiKeys, err := config.GeminiAPIKeys()
	if err != nil {
		log.Error(ctx, "Gemini API keys unavailable: %v", err)
		os.Exit(1)
	}

	exec := executor.New()
	extractor := media.New(exec, log)
	trans := transcriber.New(&cfg.Whisper, exec, log)
	summ := summarizer.New(apiKeys, cfg.Gemini.Model, log)

	if *watch {
		// Watch mode never downloads, so the runner needs no source.
		runner := pipeline.New(nil, extractor, trans, summ, log)
		runWatch(ctx, cfg, runner, log)
		return
	}

	url := flag.Arg(0)
	if url == "" {
		usage()
		os.Exit(1)
	}

	src, err := source.ForURL(url, cfg, exec, log)
	if err != nil {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}

	runner := pipeline.New(src, extractor, trans, summ, log)
	proc := channel.New(cfg, src, runner, log)

	if source.IsVideoURL(url) {
		notesPath, err := proc.ProcessVideo(ctx, url)
		if err != nil {
			log.Error(ctx, "Video processing failed: %v", err)
			os.Exit(1)
		}
		if notesPath != "" {
			log.Info(ctx, "Notes written: %s", notesPath)
		}
		return
	}

	mode := planner.ModeDefault
	switch {
	case *reset:
		mode = planner.ModeReset
	case *reprocess:
		mode = planner.ModeReprocess
	}

	summary, err := proc.ProcessChannel(ctx, url, mode, *limit)
	printSummary(summary)
	if err != nil {
		log.Error(ctx, "Channel processing failed: %v", err)
		os.Exit(1)
	}
}

// runWatch monitors the configured input directory and runs the
// extract/transcribe/summarize tail on every dropped video file.
func runWatch(ctx context.Context, cfg *config.Config, runner pipeline.Runner, log logger.Logger) {
	if err := os.MkdirAll(cfg.Paths.Watch, 0o755); err != nil {
		log.Error(ctx, "Failed to create watch directory: %v", err)
		os.Exit(1)
	}

	base := filepath.Join(cfg.Paths.Output, "local")
	dirs := pipeline.Dirs{
		Audio:       filepath.Join(base, "audio"),
		Transcripts: filepath.Join(base, "transcripts"),
		Notes:       filepath.Join(base, "notes"),
	}

	handler := func(ctx context.Context, videoPath string) error {
		_, err := runner.RunLocal(ctx, videoPath, dirs)
		return err
	}

	w, err := watcher.New(cfg.Paths.Watch, handler, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	log.Info(ctx, "Watching %s, notes go to %s", cfg.Paths.Watch, dirs.Notes)
	if err := w.Start(ctx); err != nil && err != context.Canceled {
		log.Error(ctx, "Watcher error: %v", err)
		os.Exit(1)
	}
}

func printSummary(s channel.RunSummary) {
	fmt.Println("========================================")
	fmt.Println("CHANNEL PROCESSING SUMMARY")
	fmt.Println("========================================")
	fmt.Printf("Channel:    %s\n", s.ChannelName)
	fmt.Printf("Discovered: %d\n", s.Discovered)
	fmt.Printf("Processed:  %d\n", s.Processed)
	fmt.Printf("Skipped:    %d\n", s.Skipped)
	fmt.Printf("Failed:     %d\n", s.Failed)
	for _, f := range s.Failures {
		fmt.Printf("  - %s (stage %s): %s\n", f.URL, f.Stage, f.Cause)
	}
	fmt.Println("========================================")
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: notesflow [flags] <channel-or-video-url>
       notesflow -watch [flags]

Processes a TikTok or YouTube channel into markdown study notes:
download, extract audio, transcribe, summarize. Interrupted runs resume
where they left off.

Flags:
`)
	flag.PrintDefaults()
}
