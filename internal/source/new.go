package source

import (
	"fmt"

	"github.com/phamquangvu19/notes-flow/internal/config"
	"github.com/phamquangvu19/notes-flow/internal/logger"
	"github.com/phamquangvu19/notes-flow/pkg/executor"
)

// ForURL selects the platform variant for the given URL
func ForURL(url string, cfg *config.Config, exec executor.Executor, log logger.Logger) (VideoSource, error) {
	switch {
	case IsTikTokURL(url):
		return &implTikTok{cfg: cfg, executor: exec, logger: log}, nil
	case IsYouTubeURL(url):
		return &implYouTube{executor: exec, logger: log}, nil
	default:
		return nil, fmt.Errorf("unsupported URL %q: must be from TikTok or YouTube", url)
	}
}
