package config

import "time"

// Default configuration constants
const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"

	DefaultReadTimeout     = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	// 100 MiB
	DefaultMaxUploadBytes int64 = 100 << 20

	DefaultTranscriberProvider    = "whisper_cpp"
	DefaultWhisperLanguage        = "auto"
	DefaultWhisperCppBinary       = "whisper-cli"
	DefaultWhisperModel           = "models/ggml-tiny.bin"
	DefaultWhisperServerInference = "/inference"
	DefaultOpenAIModel            = "whisper-1"

	// Inference is serialised by default; conversions may overlap.
	DefaultTranscriberConcurrency = 1
	DefaultConverterConcurrency   = 4

	DefaultFFmpegBinary  = "ffmpeg"
	DefaultFFprobeBinary = "ffprobe"

	DefaultConfigFile = "config.yaml"
)

// Default returns a Config populated with the defaults above.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			Environment:     DefaultEnvironment,
			ReadTimeout:     DefaultReadTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			MaxUploadBytes:  DefaultMaxUploadBytes,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Transcriber: TranscriberConfig{
			Provider:       DefaultTranscriberProvider,
			Language:       DefaultWhisperLanguage,
			MaxConcurrency: DefaultTranscriberConcurrency,
			WhisperCpp: WhisperCppConfig{
				BinaryPath: DefaultWhisperCppBinary,
				ModelPath:  DefaultWhisperModel,
			},
			WhisperServer: WhisperServerConfig{
				InferencePath: DefaultWhisperServerInference,
			},
			OpenAI: OpenAIConfig{
				Model: DefaultOpenAIModel,
			},
		},
		Converter: ConverterConfig{
			FFmpegPath:     DefaultFFmpegBinary,
			FFprobePath:    DefaultFFprobeBinary,
			MaxConcurrency: DefaultConverterConcurrency,
		},
	}
}
