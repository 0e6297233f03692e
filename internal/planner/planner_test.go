package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/phamquangvu19/notes-flow/internal/source"
	"github.com/phamquangvu19/notes-flow/internal/state"
)

func videoList(n int) []source.VideoRef {
	refs := make([]source.VideoRef, n)
	for i := range refs {
		id := fmt.Sprintf("v%d", i+1)
		refs[i] = source.VideoRef{
			URL:     "https://youtu.be/" + id,
			VideoID: id,
		}
	}
	return refs
}

// markProcessed records a success for the video and writes its notes
// file, so both layers of the dedup check see it.
func markProcessed(t *testing.T, st *state.ChannelState, notesDir string, ref source.VideoRef, index int) {
	t.Helper()
	notesFile := ref.VideoID + "_notes.md"
	if err := os.WriteFile(filepath.Join(notesDir, notesFile), []byte("notes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	st.RecordOutcome(ref.VideoID, ref.URL, notesFile, index, state.StatusSuccess)
}

func TestPlanResumesAfterLastProcessedURL(t *testing.T) {
	notesDir := t.TempDir()
	discovered := videoList(5)
	st := state.NewChannelState("https://www.youtube.com/@ch", "ch")
	for i := range 3 {
		markProcessed(t, st, notesDir, discovered[i], i)
	}

	work := Plan(discovered, st, notesDir, ModeDefault)

	if len(work) != 2 || work[0].VideoID != "v4" || work[1].VideoID != "v5" {
		t.Errorf("work = %+v, want [v4 v5]", work)
	}
}

func TestPlanReindexFallback(t *testing.T) {
	notesDir := t.TempDir()
	discovered := videoList(5)
	st := state.NewChannelState("https://www.youtube.com/@ch", "ch")

	// v2 was processed under a URL no longer present in the discovery
	// list; scanning restarts at zero and the membership check still
	// filters v2 out by its notes file.
	markProcessed(t, st, notesDir, discovered[1], 1)
	st.RecordOutcome("gone", "https://youtu.be/gone", "gone_notes.md", 2, state.StatusSuccess)

	work := Plan(discovered, st, notesDir, ModeDefault)

	want := []string{"v1", "v3", "v4", "v5"}
	if len(work) != len(want) {
		t.Fatalf("work = %+v, want %v", work, want)
	}
	for i, id := range want {
		if work[i].VideoID != id {
			t.Errorf("work[%d] = %s, want %s", i, work[i].VideoID, id)
		}
	}
}

func TestPlanIdempotentWhenCaughtUp(t *testing.T) {
	notesDir := t.TempDir()
	discovered := videoList(3)
	st := state.NewChannelState("https://www.youtube.com/@ch", "ch")
	for i, ref := range discovered {
		markProcessed(t, st, notesDir, ref, i)
	}

	for range 3 {
		if work := Plan(discovered, st, notesDir, ModeDefault); len(work) != 0 {
			t.Fatalf("caught-up plan = %+v, want empty", work)
		}
	}
}

func TestPlanFiltersProcessedAfterCursor(t *testing.T) {
	notesDir := t.TempDir()
	discovered := videoList(5)
	st := state.NewChannelState("https://www.youtube.com/@ch", "ch")

	// v2 done in order, then v4 done out of band (separate run).
	markProcessed(t, st, notesDir, discovered[1], 1)
	notesFile := "v4_notes.md"
	if err := os.WriteFile(filepath.Join(notesDir, notesFile), []byte("notes\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	work := Plan(discovered, st, notesDir, ModeDefault)

	want := []string{"v3", "v5"}
	if len(work) != len(want) {
		t.Fatalf("work = %+v, want %v", work, want)
	}
	for i, id := range want {
		if work[i].VideoID != id {
			t.Errorf("work[%d] = %s, want %s", i, work[i].VideoID, id)
		}
	}
}

func TestPlanReprocessIgnoresLedger(t *testing.T) {
	notesDir := t.TempDir()
	discovered := videoList(3)
	st := state.NewChannelState("https://www.youtube.com/@ch", "ch")
	for i, ref := range discovered {
		markProcessed(t, st, notesDir, ref, i)
	}

	work := Plan(discovered, st, notesDir, ModeReprocess)
	if len(work) != 3 {
		t.Errorf("reprocess work = %d items, want all 3", len(work))
	}
}

func TestPlanEmptyStateProcessesEverything(t *testing.T) {
	notesDir := t.TempDir()
	discovered := videoList(4)
	st := state.NewChannelState("https://www.youtube.com/@ch", "ch")

	work := Plan(discovered, st, notesDir, ModeDefault)
	if len(work) != 4 {
		t.Errorf("work = %d items, want 4", len(work))
	}
}

func TestPlanDeletedNotesFileTriggersReprocess(t *testing.T) {
	notesDir := t.TempDir()
	discovered := videoList(3)
	st := state.NewChannelState("https://www.youtube.com/@ch", "ch")

	// v3 was done in a separate run, then its notes file was deleted.
	// The membership check past the cursor must bring v3 back. The
	// cursor anchors after v2, the last success in this ordering.
	markProcessed(t, st, notesDir, discovered[2], 2)
	markProcessed(t, st, notesDir, discovered[0], 0)
	markProcessed(t, st, notesDir, discovered[1], 1)
	if err := os.Remove(filepath.Join(notesDir, "v3_notes.md")); err != nil {
		t.Fatal(err)
	}

	work := Plan(discovered, st, notesDir, ModeDefault)
	if len(work) != 1 || work[0].VideoID != "v3" {
		t.Errorf("work = %+v, want [v3]", work)
	}
}
