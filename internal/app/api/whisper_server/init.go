package whisper_server

import (
	"audio-api/internal/app/api"
	"audio-api/internal/app/api/provider"
	apperrors "audio-api/internal/app/errors"
)

func init() {
	provider.RegisterProvider("whisper_server", createWhisperServerProvider)
}

func createWhisperServerProvider(opts provider.Options) (api.Transcriber, error) {
	if opts.WhisperServer.BaseURL == "" {
		return nil, apperrors.RequiredField("whisper_server base_url")
	}

	return NewWhisperServerProvider(WhisperServerConfig{
		BaseURL:       opts.WhisperServer.BaseURL,
		InferencePath: opts.WhisperServer.InferencePath,
		Timeout:       opts.WhisperServer.Timeout,
		Language:      opts.Language,
	}, opts.Logger), nil
}
