package channel

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/phamquangvu19/notes-flow/internal/pipeline"
	"github.com/phamquangvu19/notes-flow/internal/planner"
	"github.com/phamquangvu19/notes-flow/internal/source"
	"github.com/phamquangvu19/notes-flow/internal/state"
)

// ProcessChannel discovers a channel's videos, plans the remaining work
// against the processing ledger, and runs the pipeline for each work item
// in discovery order. The ledger is persisted after every outcome, so a
// crash between videos loses at most the in-flight attempt. One failing
// video never aborts the run; discovery and ledger I/O failures do.
func (p *implProcessor) ProcessChannel(ctx context.Context, channelURL string, mode planner.Mode, limit int) (RunSummary, error) {
	runID := uuid.NewString()
	channelName := source.CleanChannelName(source.ChannelName(channelURL))

	summary := RunSummary{
		RunID:       runID,
		ChannelURL:  channelURL,
		ChannelName: channelName,
	}

	p.logger.Info(ctx, "[run %s] Processing channel %s (%s)", runID, channelName, channelURL)

	dirs := p.channelDirs(channelName)
	store := state.NewStore(filepath.Join(p.cfg.Paths.Output, channelName))

	st, err := p.loadState(ctx, store, channelURL, channelName, mode)
	if err != nil {
		return summary, fmt.Errorf("load processing state for %s: %w", channelName, err)
	}

	discovered, err := p.src.Discover(ctx, channelURL, limit)
	if err != nil {
		return summary, fmt.Errorf("discover videos for %s: %w", channelName, err)
	}
	summary.Discovered = len(discovered)
	if len(discovered) == 0 {
		p.logger.Warn(ctx, "[run %s] No videos found for %s", runID, channelURL)
		return summary, nil
	}

	work := planner.Plan(discovered, st, dirs.Notes, mode)
	summary.Skipped = len(discovered) - len(work)

	p.logger.Info(ctx, "[run %s] %d discovered, %d to process, %d skipped",
		runID, len(discovered), len(work), summary.Skipped)

	indexByID := make(map[string]int, len(discovered))
	for i, ref := range discovered {
		indexByID[ref.VideoID] = i
	}

	for i, ref := range work {
		p.logger.Info(ctx, "[run %s] Video %d/%d: %s", runID, i+1, len(work), ref.URL)

		notesFile, err := p.runner.Run(ctx, ref, dirs)
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, newFailure(ref, err))
			p.logger.Error(ctx, "[run %s] Video %s failed: %v", runID, ref.VideoID, err)
			st.RecordOutcome(ref.VideoID, ref.URL, "", indexByID[ref.VideoID], state.StatusFailed)
		} else {
			summary.Processed++
			st.RecordOutcome(ref.VideoID, ref.URL, notesFile, indexByID[ref.VideoID], state.StatusSuccess)
		}

		if err := store.Save(st); err != nil {
			return summary, fmt.Errorf("persist processing state for %s: %w", channelName, err)
		}
	}

	p.logger.Info(ctx, "[run %s] Done: %d processed, %d skipped, %d failed",
		runID, summary.Processed, summary.Skipped, summary.Failed)
	return summary, nil
}

// ProcessVideo runs the pipeline for a single video URL, recording the
// outcome in the video's channel ledger as a one-item run.
func (p *implProcessor) ProcessVideo(ctx context.Context, videoURL string) (string, error) {
	videoID := source.ExtractVideoID(videoURL)
	if videoID == "" {
		return "", fmt.Errorf("cannot extract video ID from %q", videoURL)
	}
	channelName := source.CleanChannelName(source.ChannelName(videoURL))

	dirs := p.channelDirs(channelName)
	store := state.NewStore(filepath.Join(p.cfg.Paths.Output, channelName))

	st, err := p.loadState(ctx, store, videoURL, channelName, planner.ModeDefault)
	if err != nil {
		return "", fmt.Errorf("load processing state for %s: %w", channelName, err)
	}

	ref := source.VideoRef{URL: videoURL, VideoID: videoID}
	if st.IsProcessed(videoID, dirs.Notes) {
		p.logger.Info(ctx, "Video %s already processed, skipping", videoID)
		return "", nil
	}

	notesFile, runErr := p.runner.Run(ctx, ref, dirs)
	if runErr != nil {
		st.RecordOutcome(videoID, videoURL, "", st.LastProcessedIndex, state.StatusFailed)
	} else {
		st.RecordOutcome(videoID, videoURL, notesFile, st.LastProcessedIndex+1, state.StatusSuccess)
	}
	if err := store.Save(st); err != nil {
		return "", fmt.Errorf("persist processing state for %s: %w", channelName, err)
	}
	if runErr != nil {
		return "", runErr
	}
	return filepath.Join(dirs.Notes, notesFile), nil
}

// loadState loads the ledger, tolerating corruption, and applies Reset
// mode by clearing and persisting the state before any work starts.
func (p *implProcessor) loadState(ctx context.Context, store *state.Store, channelURL, channelName string, mode planner.Mode) (*state.ChannelState, error) {
	if mode == planner.ModeReset {
		p.logger.Info(ctx, "Resetting processing state for %s", channelName)
		return store.Reset(channelURL, channelName)
	}

	st, err := store.Load(channelURL, channelName)
	if err != nil {
		if errors.Is(err, state.ErrCorruptedState) {
			p.logger.Warn(ctx, "Processing state unreadable, starting fresh: %v", err)
			return st, nil
		}
		return nil, err
	}
	return st, nil
}

func (p *implProcessor) channelDirs(channelName string) pipeline.Dirs {
	base := filepath.Join(p.cfg.Paths.Output, channelName)
	return pipeline.Dirs{
		Videos:      filepath.Join(base, "videos"),
		Audio:       filepath.Join(base, "audio"),
		Transcripts: filepath.Join(base, "transcripts"),
		Notes:       filepath.Join(base, "notes"),
	}
}

func newFailure(ref source.VideoRef, err error) Failure {
	f := Failure{
		VideoID: ref.VideoID,
		URL:     ref.URL,
		Cause:   err.Error(),
	}
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		f.Stage = stageErr.Stage
		f.Cause = stageErr.Err.Error()
	}
	return f
}
