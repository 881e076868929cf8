package services

import (
	"context"

	"audio-api/internal/api/v1/dto"
)

// TranscriptionService turns an uploaded audio file into text.
type TranscriptionService interface {
	Transcribe(ctx context.Context, upload dto.Upload) (*dto.TranscriptionResult, error)
}

// ConversionService turns an uploaded media file into an MP3 file.
// Callers must Release the returned audio once the bytes have been sent.
type ConversionService interface {
	Convert(ctx context.Context, upload dto.Upload) (*ConvertedAudio, error)
}
