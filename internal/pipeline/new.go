package pipeline

import (
	"github.com/phamquangvu19/notes-flow/internal/logger"
)

type implRunner struct {
	downloader  Downloader
	extractor   AudioExtractor
	transcriber Transcriber
	summarizer  Summarizer
	logger      logger.Logger
}

// New creates a Runner from the four stage collaborators
func New(down Downloader, extract AudioExtractor, trans Transcriber, summ Summarizer, log logger.Logger) Runner {
	return &implRunner{
		downloader:  down,
		extractor:   extract,
		transcriber: trans,
		summarizer:  summ,
		logger:      log,
	}
}
