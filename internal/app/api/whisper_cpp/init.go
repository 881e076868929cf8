package whisper_cpp

import (
	"audio-api/internal/app/api"
	"audio-api/internal/app/api/provider"
	apperrors "audio-api/internal/app/errors"
)

func init() {
	provider.RegisterProvider("whisper_cpp", createWhisperCppProvider)
}

func createWhisperCppProvider(opts provider.Options) (api.Transcriber, error) {
	if opts.WhisperCpp.BinaryPath == "" {
		return nil, apperrors.RequiredField("whisper_cpp binary_path")
	}
	if opts.WhisperCpp.ModelPath == "" {
		return nil, apperrors.RequiredField("whisper_cpp model_path")
	}
	if opts.Wav == nil {
		return nil, apperrors.RequiredField("whisper_cpp wav preparer")
	}

	return NewLocalTranscriber(Config{
		BinaryPath: opts.WhisperCpp.BinaryPath,
		ModelPath:  opts.WhisperCpp.ModelPath,
		Language:   opts.Language,
		Threads:    opts.WhisperCpp.Threads,
	}, opts.Wav, opts.Logger), nil
}
