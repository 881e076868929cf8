package app

import (
	"context"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"
	"audio-api/internal/api/server"
	v1routes "audio-api/internal/api/v1/routes"
	"audio-api/internal/api/v1/services"
	"audio-api/internal/app/api"
	"audio-api/internal/app/api/provider"
	"audio-api/internal/app/audio"
	"audio-api/internal/app/metrics"
	"audio-api/internal/app/util/files"
	"audio-api/internal/config"

	// Register transcription providers
	_ "audio-api/internal/app/api/openai/whisper"
	_ "audio-api/internal/app/api/whisper_cpp"
	_ "audio-api/internal/app/api/whisper_server"
)

// Version is the build version reported by /health and build_info.
type Version string

const startupCheckTimeout = 10 * time.Second

// ProviderSet is the dependency graph of a running server.
var ProviderSet = wire.NewSet(
	metrics.New,
	provideFileManager,
	provideFFmpeg,
	provideTranscriber,
	provideTranscriptionService,
	provideConversionService,
	provideServiceContainer,
	provideServerConfig,
	server.NewServer,
	NewApplication,
	wire.Bind(new(audio.Converter), new(*audio.FFmpeg)),
)

func provideFileManager(cfg *config.Config) (*files.Manager, error) {
	return files.NewManager(cfg.Storage.TempDir)
}

// provideFFmpeg builds the conversion engine. A missing binary is only logged:
// conversion requests fail individually while transcription keeps working.
func provideFFmpeg(cfg *config.Config, logger *zap.Logger) *audio.FFmpeg {
	ffmpeg := audio.NewFFmpeg(cfg.Converter.FFmpegPath, cfg.Converter.FFprobePath, logger)
	if err := ffmpeg.CheckAvailable(); err != nil {
		logger.Warn("ffmpeg is not available, conversions will fail", zap.Error(err))
	}
	return ffmpeg
}

// provideTranscriber creates the configured provider once. A missing model or
// binary fails startup unless the health check is skipped.
func provideTranscriber(cfg *config.Config, ffmpeg *audio.FFmpeg, logger *zap.Logger) (api.Transcriber, error) {
	tc := cfg.Transcriber
	transcriber, err := provider.NewTranscriber(tc.Provider, provider.Options{
		Language: tc.Language,
		WhisperCpp: provider.WhisperCppOptions{
			BinaryPath: tc.WhisperCpp.BinaryPath,
			ModelPath:  tc.WhisperCpp.ModelPath,
			Threads:    tc.WhisperCpp.Threads,
		},
		WhisperServer: provider.WhisperServerOptions{
			BaseURL:       tc.WhisperServer.BaseURL,
			InferencePath: tc.WhisperServer.InferencePath,
			Timeout:       tc.WhisperServer.Timeout,
		},
		OpenAI: provider.OpenAIOptions{
			APIKey:  tc.OpenAI.APIKey,
			BaseURL: tc.OpenAI.BaseURL,
			Model:   tc.OpenAI.Model,
		},
		Wav:    ffmpeg,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	if checker, ok := transcriber.(api.HealthChecker); ok && !tc.SkipHealthCheck {
		ctx, cancel := context.WithTimeout(context.Background(), startupCheckTimeout)
		defer cancel()
		if err := checker.HealthCheck(ctx); err != nil {
			return nil, err
		}
	}

	logger.Info("transcriber ready", zap.String("provider", tc.Provider))
	return transcriber, nil
}

func provideTranscriptionService(
	cfg *config.Config,
	transcriber api.Transcriber,
	manager *files.Manager,
	m *metrics.Metrics,
	logger *zap.Logger,
) services.TranscriptionService {
	return services.NewTranscriptionService(transcriber, manager, services.AdapterLimits{
		MaxConcurrency: cfg.Transcriber.MaxConcurrency,
		Timeout:        cfg.Transcriber.Timeout,
	}, m, logger)
}

func provideConversionService(
	cfg *config.Config,
	converter audio.Converter,
	manager *files.Manager,
	m *metrics.Metrics,
	logger *zap.Logger,
) services.ConversionService {
	return services.NewConversionService(converter, manager, services.AdapterLimits{
		MaxConcurrency: cfg.Converter.MaxConcurrency,
		Timeout:        cfg.Converter.Timeout,
	}, m, logger)
}

func provideServiceContainer(transcription services.TranscriptionService, conversion services.ConversionService) *v1routes.ServiceContainer {
	return &v1routes.ServiceContainer{
		TranscriptionService: transcription,
		ConversionService:    conversion,
	}
}

func provideServerConfig(cfg *config.Config, version Version) server.Config {
	return server.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		Environment:    cfg.Server.Environment,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		StrictStatus:   cfg.Server.StrictStatus,
		Version:        string(version),
		Provider:       cfg.Transcriber.Provider,
	}
}
