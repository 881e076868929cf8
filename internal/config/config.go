package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	apperrors "audio-api/internal/app/errors"
)

// Config is the complete service configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	Converter   ConverterConfig   `yaml:"converter"`
	Storage     StorageConfig     `yaml:"storage"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	Environment     string        `yaml:"environment" validate:"oneof=development production test"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"min=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"min=0"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" validate:"gt=0"`
	// StrictStatus makes /transcrever answer failures with their real HTTP
	// status instead of 200.
	StrictStatus bool `yaml:"strict_status"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// TranscriberConfig selects and configures the speech-to-text provider.
type TranscriberConfig struct {
	Provider        string              `yaml:"provider" validate:"oneof=whisper_cpp whisper_server openai"`
	Language        string              `yaml:"language"`
	MaxConcurrency  int64               `yaml:"max_concurrency" validate:"min=1"`
	Timeout         time.Duration       `yaml:"timeout" validate:"min=0"`
	SkipHealthCheck bool                `yaml:"skip_health_check"`
	WhisperCpp      WhisperCppConfig    `yaml:"whisper_cpp"`
	WhisperServer   WhisperServerConfig `yaml:"whisper_server"`
	OpenAI          OpenAIConfig        `yaml:"openai"`
}

// WhisperCppConfig configures the local whisper.cpp binary.
type WhisperCppConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Threads    int    `yaml:"threads" validate:"min=0"`
}

// WhisperServerConfig configures a remote whisper-server.
type WhisperServerConfig struct {
	BaseURL       string        `yaml:"base_url" validate:"omitempty,url"`
	InferencePath string        `yaml:"inference_path"`
	Timeout       time.Duration `yaml:"timeout" validate:"min=0"`
}

// OpenAIConfig configures the OpenAI transcription API.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
	Model   string `yaml:"model"`
}

// ConverterConfig configures ffmpeg.
type ConverterConfig struct {
	FFmpegPath     string        `yaml:"ffmpeg_path" validate:"required"`
	FFprobePath    string        `yaml:"ffprobe_path" validate:"required"`
	MaxConcurrency int64         `yaml:"max_concurrency" validate:"min=1"`
	Timeout        time.Duration `yaml:"timeout" validate:"min=0"`
}

// StorageConfig configures where request workspaces live. Empty means os.TempDir().
type StorageConfig struct {
	TempDir string `yaml:"temp_dir"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and the provider-specific requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}

	switch c.Transcriber.Provider {
	case "whisper_cpp":
		if c.Transcriber.WhisperCpp.BinaryPath == "" {
			return apperrors.RequiredField("transcriber.whisper_cpp.binary_path")
		}
		if c.Transcriber.WhisperCpp.ModelPath == "" {
			return apperrors.RequiredField("transcriber.whisper_cpp.model_path")
		}
	case "whisper_server":
		if c.Transcriber.WhisperServer.BaseURL == "" {
			return apperrors.RequiredField("transcriber.whisper_server.base_url")
		}
	case "openai":
		if c.Transcriber.OpenAI.APIKey == "" {
			return apperrors.RequiredField("transcriber.openai.api_key")
		}
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
