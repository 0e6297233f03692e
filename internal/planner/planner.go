package planner

import (
	"github.com/phamquangvu19/notes-flow/internal/source"
	"github.com/phamquangvu19/notes-flow/internal/state"
)

// Mode controls how the planner treats previously processed videos
type Mode string

const (
	// ModeDefault skips already-processed videos and resumes after the
	// last known-good one.
	ModeDefault Mode = "default"
	// ModeReprocess ignores the ledger and processes everything discovered
	ModeReprocess Mode = "reprocess"
	// ModeReset clears the ledger first; planning then sees an empty state
	ModeReset Mode = "reset"
)

// Plan computes the ordered subset of discovered videos still needing
// work. Two layers protect against both reordering and duplication: the
// resume cursor anchors on last_processed_url by URL match (indices are
// not stable across discovery runs), and every candidate past the cursor
// is still checked against the ledger and the notes directory. Repeated
// planning with no new videos yields an empty list.
func Plan(discovered []source.VideoRef, st *state.ChannelState, notesDir string, mode Mode) []source.VideoRef {
	if mode == ModeReprocess {
		out := make([]source.VideoRef, len(discovered))
		copy(out, discovered)
		return out
	}

	cursor := resumeIndex(discovered, st)

	work := make([]source.VideoRef, 0, len(discovered)-cursor)
	for _, ref := range discovered[cursor:] {
		if st.IsProcessed(ref.VideoID, notesDir) {
			continue
		}
		work = append(work, ref)
	}
	return work
}

// resumeIndex finds the position immediately after last_processed_url in
// the freshly discovered list. When the URL is absent the channel was
// reindexed (insertions or deletions upstream), so scanning restarts at
// zero rather than silently skipping unknown content.
func resumeIndex(discovered []source.VideoRef, st *state.ChannelState) int {
	if st == nil || st.LastProcessedURL == "" {
		return 0
	}
	for i, ref := range discovered {
		if ref.URL == st.LastProcessedURL {
			return i + 1
		}
	}
	return 0
}
