package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// StateFileName is the ledger file kept inside each channel directory
const StateFileName = ".processing_state.json"

// ErrCorruptedState marks a ledger file that exists but cannot be parsed.
// Load still returns a usable empty state; callers log a warning and rely
// on the filename fallback in IsProcessed for dedup.
var ErrCorruptedState = errors.New("processing state file is corrupted")

// Store persists one channel's ledger under its channel directory
type Store struct {
	channelDir string
}

// NewStore creates a Store rooted at the channel's output directory
func NewStore(channelDir string) *Store {
	return &Store{channelDir: channelDir}
}

// Path returns the canonical ledger file path
func (st *Store) Path() string {
	return filepath.Join(st.channelDir, StateFileName)
}

// Load reads the persisted ledger. A missing file yields a fresh empty
// state. An unparseable file yields a fresh empty state together with
// ErrCorruptedState; the run proceeds either way.
func (st *Store) Load(channelURL, channelName string) (*ChannelState, error) {
	data, err := os.ReadFile(st.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return NewChannelState(channelURL, channelName), nil
		}
		return NewChannelState(channelURL, channelName), fmt.Errorf("%w: %v", ErrCorruptedState, err)
	}

	var state ChannelState
	if err := json.Unmarshal(data, &state); err != nil {
		return NewChannelState(channelURL, channelName), fmt.Errorf("%w: %v", ErrCorruptedState, err)
	}
	if state.ProcessedVideos == nil {
		state.ProcessedVideos = map[string]ProcessingRecord{}
	}
	return &state, nil
}

// Save writes the full ledger back atomically: serialize to a temp file
// in the channel directory, then rename over the canonical path. A crash
// or concurrent reader never observes a half-written file.
func (st *Store) Save(state *ChannelState) error {
	if err := os.MkdirAll(st.channelDir, 0o755); err != nil {
		return fmt.Errorf("create channel directory %s: %w", st.channelDir, err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal processing state: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(st.channelDir, StateFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, st.Path()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("atomic rename state file: %w", err)
	}
	return nil
}

// Reset discards any persisted ledger and immediately persists a fresh
// empty state.
func (st *Store) Reset(channelURL, channelName string) (*ChannelState, error) {
	state := NewChannelState(channelURL, channelName)
	if err := st.Save(state); err != nil {
		return nil, fmt.Errorf("persist cleared state: %w", err)
	}
	return state, nil
}
