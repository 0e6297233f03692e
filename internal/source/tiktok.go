package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/phamquangvu19/notes-flow/internal/config"
	"github.com/phamquangvu19/notes-flow/internal/logger"
	"github.com/phamquangvu19/notes-flow/pkg/executor"
)

type implTikTok struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

const collectVideoLinksJS = `[...document.querySelectorAll('a[href*="/video/"]')]
	.map(a => a.href.startsWith('http') ? a.href : 'https://www.tiktok.com' + a.getAttribute('href'))`

// Discover scrapes video links from a TikTok profile page with a headless
// browser. Profile feeds lazy-load, so the page is scrolled a configured
// number of passes before links are collected.
func (s *implTikTok) Discover(ctx context.Context, channelURL string, limit int) ([]VideoRef, error) {
	if IsVideoURL(channelURL) {
		id := ExtractVideoID(channelURL)
		if id == "" {
			return nil, fmt.Errorf("cannot extract video ID from %q", channelURL)
		}
		return []VideoRef{{URL: channelURL, VideoID: id}}, nil
	}

	s.logger.Info(ctx, "Scraping TikTok profile: %s", channelURL)

	opts := chromedp.DefaultExecAllocatorOptions[:]
	if s.cfg.Scraper.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(s.cfg.Scraper.UserAgent))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	timeout := time.Duration(s.cfg.Scraper.TimeoutSeconds) * time.Second
	scrapeCtx, scrapeCancel := context.WithTimeout(browserCtx, timeout)
	defer scrapeCancel()

	actions := []chromedp.Action{
		network.Enable(),
		network.SetBlockedURLs([]string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp"}),
		chromedp.Navigate(channelURL),
		chromedp.WaitVisible(`a[href*="/video/"]`, chromedp.ByQuery),
	}
	for range s.cfg.Scraper.ScrollPasses {
		actions = append(actions,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),
		)
	}

	var links []string
	actions = append(actions, chromedp.Evaluate(collectVideoLinksJS, &links))

	if err := chromedp.Run(scrapeCtx, actions...); err != nil {
		return nil, fmt.Errorf("scrape TikTok profile %s: %w", channelURL, err)
	}

	refs := make([]VideoRef, 0, len(links))
	seen := make(map[string]bool, len(links))
	for _, link := range links {
		id := ExtractVideoID(link)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, VideoRef{URL: link, VideoID: id})
		if limit > 0 && len(refs) >= limit {
			break
		}
	}

	s.logger.Info(ctx, "Found %d videos on %s", len(refs), channelURL)
	return refs, nil
}

// Download fetches the video via yt-dlp, which handles TikTok URLs too
func (s *implTikTok) Download(ctx context.Context, ref VideoRef, destDir string) (string, error) {
	outputPath := filepath.Join(destDir, ref.VideoID+".mp4")

	s.logger.Info(ctx, "Downloading video: %s", ref.URL)

	args := []string{
		"--no-playlist",
		"-f", "mp4/b",
		"-o", outputPath,
		ref.URL,
	}
	if _, err := s.executor.Execute(ctx, "yt-dlp", args...); err != nil {
		return "", fmt.Errorf("yt-dlp download %s: %w", ref.URL, err)
	}

	s.logger.Info(ctx, "Downloaded: %s", outputPath)
	return outputPath, nil
}
