package channel

import (
	"context"

	"github.com/phamquangvu19/notes-flow/internal/pipeline"
	"github.com/phamquangvu19/notes-flow/internal/planner"
)

// Failure describes one video that failed, with enough context for a
// manual re-invocation.
type Failure struct {
	VideoID string
	URL     string
	Stage   pipeline.Stage
	Cause   string
}

// RunSummary aggregates the outcome of one channel run
type RunSummary struct {
	RunID       string
	ChannelURL  string
	ChannelName string
	Discovered  int
	Processed   int
	Skipped     int
	Failed      int
	Failures    []Failure
}

// Processor drives discovery, planning, the per-video pipeline, and the
// processing ledger for a whole channel.
type Processor interface {
	ProcessChannel(ctx context.Context, channelURL string, mode planner.Mode, limit int) (RunSummary, error)
	ProcessVideo(ctx context.Context, videoURL string) (string, error)
}
