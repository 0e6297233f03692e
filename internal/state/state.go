package state

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Status of one processed video in the ledger
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// ProcessingRecord is one ledger entry per video ID
type ProcessingRecord struct {
	URL         string `json:"url"`
	VideoID     string `json:"video_id"`
	NotesFile   string `json:"notes_file"`
	ProcessedAt string `json:"processed_at"`
	Status      Status `json:"status"`
}

// ChannelState is the full processing ledger for one channel, persisted
// as a single atomic unit.
type ChannelState struct {
	ChannelURL         string                      `json:"channel_url"`
	ChannelName        string                      `json:"channel_name"`
	LastProcessedURL   string                      `json:"last_processed_url"`
	LastProcessedIndex int                         `json:"last_processed_index"`
	LastUpdated        string                      `json:"last_updated"`
	ProcessedVideos    map[string]ProcessingRecord `json:"processed_videos"`
	TotalProcessed     int                         `json:"total_processed"`
	TotalSkipped       int                         `json:"total_skipped"`
	TotalFailed        int                         `json:"total_failed"`
}

// NewChannelState creates an empty ledger for a channel
func NewChannelState(channelURL, channelName string) *ChannelState {
	return &ChannelState{
		ChannelURL:         channelURL,
		ChannelName:        channelName,
		LastProcessedIndex: -1,
		ProcessedVideos:    map[string]ProcessingRecord{},
	}
}

// RecordOutcome upserts the record for videoID. last_processed_url and
// last_processed_index advance only on success; index is the video's
// position in the most recent discovery ordering. Totals stay equal to
// the sum of record statuses, so superseding a record adjusts both the
// old and the new counter.
func (s *ChannelState) RecordOutcome(videoID, url, notesFile string, index int, status Status) {
	if s.ProcessedVideos == nil {
		s.ProcessedVideos = map[string]ProcessingRecord{}
	}

	if prev, ok := s.ProcessedVideos[videoID]; ok {
		s.decrementTotal(prev.Status)
	}

	s.ProcessedVideos[videoID] = ProcessingRecord{
		URL:         url,
		VideoID:     videoID,
		NotesFile:   notesFile,
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
		Status:      status,
	}
	s.incrementTotal(status)

	if status == StatusSuccess {
		s.LastProcessedURL = url
		s.LastProcessedIndex = index
	}
	s.LastUpdated = time.Now().UTC().Format(time.RFC3339)
}

func (s *ChannelState) incrementTotal(status Status) {
	switch status {
	case StatusSuccess:
		s.TotalProcessed++
	case StatusFailed:
		s.TotalFailed++
	case StatusSkipped:
		s.TotalSkipped++
	}
}

func (s *ChannelState) decrementTotal(status Status) {
	switch status {
	case StatusSuccess:
		s.TotalProcessed--
	case StatusFailed:
		s.TotalFailed--
	case StatusSkipped:
		s.TotalSkipped--
	}
}

// IsProcessed reports whether videoID already has usable notes. The
// ledger record alone is not trusted: its notes file must still exist on
// disk. When the ledger has no usable record, a filename pattern match in
// notesDir covers the case where the ledger was lost but notes survived.
func (s *ChannelState) IsProcessed(videoID, notesDir string) bool {
	if s != nil && s.ProcessedVideos != nil {
		if rec, ok := s.ProcessedVideos[videoID]; ok && rec.Status == StatusSuccess && rec.NotesFile != "" {
			if _, err := os.Stat(filepath.Join(notesDir, rec.NotesFile)); err == nil {
				return true
			}
			// Stale entry: notes file was deleted externally, fall
			// through to the filename search.
		}
	}

	return findNotesByPattern(videoID, notesDir) != ""
}

// findNotesByPattern returns the first file in notesDir whose name
// contains videoID, or "".
func findNotesByPattern(videoID, notesDir string) string {
	entries, err := os.ReadDir(notesDir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.Contains(e.Name(), videoID) {
			return e.Name()
		}
	}
	return ""
}
