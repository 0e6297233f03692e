package channel

import (
	"github.com/phamquangvu19/notes-flow/internal/config"
	"github.com/phamquangvu19/notes-flow/internal/logger"
	"github.com/phamquangvu19/notes-flow/internal/pipeline"
	"github.com/phamquangvu19/notes-flow/internal/source"
)

type implProcessor struct {
	cfg    *config.Config
	src    source.VideoSource
	runner pipeline.Runner
	logger logger.Logger
}

// New creates a Processor for one platform source
func New(cfg *config.Config, src source.VideoSource, runner pipeline.Runner, log logger.Logger) Processor {
	return &implProcessor{
		cfg:    cfg,
		src:    src,
		runner: runner,
		logger: log,
	}
}
