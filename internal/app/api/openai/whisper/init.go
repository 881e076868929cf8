package whisper

import (
	"audio-api/internal/app/api"
	"audio-api/internal/app/api/openai"
	"audio-api/internal/app/api/provider"
	apperrors "audio-api/internal/app/errors"
)

func init() {
	provider.RegisterProvider("openai", createOpenAIProvider)
}

func createOpenAIProvider(opts provider.Options) (api.Transcriber, error) {
	if opts.OpenAI.APIKey == "" {
		return nil, apperrors.Wrap(apperrors.ErrMissingAPIKey, "openai provider requires OPENAI_API_KEY")
	}

	client := openai.NewClient(opts.OpenAI.APIKey, opts.OpenAI.BaseURL)
	return NewRemoteTranscriber(client, opts.OpenAI.Model, opts.Language), nil
}
