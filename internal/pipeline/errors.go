package pipeline

import "fmt"

// Stage names one of the four sequential pipeline operations
type Stage string

const (
	StageDownload     Stage = "download"
	StageExtractAudio Stage = "extract_audio"
	StageTranscribe   Stage = "transcribe"
	StageSummarize    Stage = "summarize"
)

// StageError reports which stage failed and why. Already-produced
// intermediate artifacts stay on disk for diagnostics and retry.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
