package api

import "context"

// Transcriber defines a transcription interface for converting audio files to text.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath string) (string, error)
}

// HealthChecker is implemented by transcribers that can verify their backing
// model or service before the first request arrives.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
