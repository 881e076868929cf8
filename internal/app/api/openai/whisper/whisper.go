package whisper

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"
	apperrors "audio-api/internal/app/errors"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client   *openai.Client
	model    string
	language string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, model, language string) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	if language == "auto" {
		language = ""
	}
	return &RemoteTranscriber{client: client, model: model, language: language}
}

// Transcript uses the OpenAI API for remote transcription.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: inputFilePath,
		Language: rt.language,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrTranscriptionFailed, "createTranscription failed: %v", err)
	}

	return strings.TrimSpace(resp.Text), nil
}
