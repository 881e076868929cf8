package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	apperrors "audio-api/internal/app/errors"
)

var envPaths = []string{
	".env",
	".env.local",
}

// LoadEnv loads environment variables from the first .env file found.
// A missing file is not an error; variables may be set system-wide.
// It returns the path that was loaded, or "" when none was.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}
	return "", nil
}

// Load builds the configuration: defaults, then the YAML file (if any), then
// environment overrides, then validation.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	if configFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			configFile = DefaultConfigFile
		}
	}
	if configFile != "" {
		if err := LoadFile(configFile, cfg); err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any environment variables that are set.
func ApplyEnv(cfg *Config) error {
	envString("HOST", &cfg.Server.Host)
	if err := envInt("PORT", &cfg.Server.Port); err != nil {
		return err
	}
	envString("ENVIRONMENT", &cfg.Server.Environment)
	if err := envInt64("MAX_UPLOAD_BYTES", &cfg.Server.MaxUploadBytes); err != nil {
		return err
	}
	if err := envBool("STRICT_STATUS", &cfg.Server.StrictStatus); err != nil {
		return err
	}
	envString("LOG_LEVEL", &cfg.Log.Level)

	envString("TRANSCRIBER_PROVIDER", &cfg.Transcriber.Provider)
	envString("WHISPER_LANGUAGE", &cfg.Transcriber.Language)
	if err := envInt64("TRANSCRIBER_MAX_CONCURRENCY", &cfg.Transcriber.MaxConcurrency); err != nil {
		return err
	}
	if err := envDuration("TRANSCRIBER_TIMEOUT", &cfg.Transcriber.Timeout); err != nil {
		return err
	}
	envString("WHISPER_CPP_BINARY", &cfg.Transcriber.WhisperCpp.BinaryPath)
	envString("WHISPER_CPP_MODEL", &cfg.Transcriber.WhisperCpp.ModelPath)
	if err := envInt("WHISPER_CPP_THREADS", &cfg.Transcriber.WhisperCpp.Threads); err != nil {
		return err
	}
	envString("WHISPER_SERVER_URL", &cfg.Transcriber.WhisperServer.BaseURL)
	envString("OPENAI_API_KEY", &cfg.Transcriber.OpenAI.APIKey)
	envString("OPENAI_BASE_URL", &cfg.Transcriber.OpenAI.BaseURL)

	envString("FFMPEG_BINARY", &cfg.Converter.FFmpegPath)
	envString("FFPROBE_BINARY", &cfg.Converter.FFprobePath)
	if err := envInt64("CONVERTER_MAX_CONCURRENCY", &cfg.Converter.MaxConcurrency); err != nil {
		return err
	}
	if err := envDuration("CONVERTER_TIMEOUT", &cfg.Converter.Timeout); err != nil {
		return err
	}

	envString("TEMP_DIR", &cfg.Storage.TempDir)
	return nil
}

func lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func envString(key string, dst *string) {
	if value, ok := lookup(key); ok {
		*dst = value
	}
}

func envInt(key string, dst *int) error {
	value, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return apperrors.InvalidField(key, fmt.Sprintf("%q is not an integer", value))
	}
	*dst = n
	return nil
}

func envInt64(key string, dst *int64) error {
	value, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return apperrors.InvalidField(key, fmt.Sprintf("%q is not an integer", value))
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	value, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return apperrors.InvalidField(key, fmt.Sprintf("%q is not a boolean", value))
	}
	*dst = b
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	value, ok := lookup(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return apperrors.InvalidField(key, fmt.Sprintf("%q is not a duration", value))
	}
	*dst = d
	return nil
}
