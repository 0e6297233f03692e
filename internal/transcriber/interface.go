package transcriber

import "context"

// Transcriber converts an audio file into plain text
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
