package source

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/phamquangvu19/notes-flow/internal/logger"
	"github.com/phamquangvu19/notes-flow/pkg/executor"
)

type implYouTube struct {
	executor executor.Executor
	logger   logger.Logger
}

// flatPlaylist mirrors the subset of yt-dlp's --flat-playlist -J output
// needed for discovery.
type flatPlaylist struct {
	Entries []flatEntry `json:"entries"`
}

type flatEntry struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Discover lists a channel's videos via yt-dlp's flat playlist dump
func (s *implYouTube) Discover(ctx context.Context, channelURL string, limit int) ([]VideoRef, error) {
	if IsVideoURL(channelURL) {
		id := ExtractVideoID(channelURL)
		if id == "" {
			return nil, fmt.Errorf("cannot extract video ID from %q", channelURL)
		}
		return []VideoRef{{URL: channelURL, VideoID: id}}, nil
	}

	s.logger.Info(ctx, "Discovering videos: %s", channelURL)

	out, err := s.executor.Execute(ctx, "yt-dlp", "--flat-playlist", "-J", channelURL)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp flat playlist: %w", err)
	}

	refs, err := parseFlatPlaylist(out)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(refs) > limit {
		refs = refs[:limit]
	}

	s.logger.Info(ctx, "Found %d videos on %s", len(refs), channelURL)
	return refs, nil
}

func parseFlatPlaylist(raw string) ([]VideoRef, error) {
	var playlist flatPlaylist
	if err := json.Unmarshal([]byte(raw), &playlist); err != nil {
		return nil, fmt.Errorf("parse playlist JSON: %w", err)
	}

	refs := make([]VideoRef, 0, len(playlist.Entries))
	seen := make(map[string]bool, len(playlist.Entries))
	for _, e := range playlist.Entries {
		id := e.ID
		if id == "" {
			id = ExtractVideoID(e.URL)
		}
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		url := e.URL
		if url == "" {
			url = "https://www.youtube.com/watch?v=" + id
		}
		refs = append(refs, VideoRef{URL: url, VideoID: id})
	}
	return refs, nil
}

// Download fetches the video as MP4 into destDir, named by video ID
func (s *implYouTube) Download(ctx context.Context, ref VideoRef, destDir string) (string, error) {
	outputPath := filepath.Join(destDir, ref.VideoID+".mp4")

	s.logger.Info(ctx, "Downloading video: %s", ref.URL)

	args := []string{
		"--no-playlist",
		"-f", "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/b",
		"--merge-output-format", "mp4",
		"-o", outputPath,
		ref.URL,
	}
	if _, err := s.executor.Execute(ctx, "yt-dlp", args...); err != nil {
		return "", fmt.Errorf("yt-dlp download %s: %w", ref.URL, err)
	}

	s.logger.Info(ctx, "Downloaded: %s", outputPath)
	return outputPath, nil
}
