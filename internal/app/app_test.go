package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	apperrors "audio-api/internal/app/errors"
	"audio-api/internal/config"
)

func whisperServerConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.Environment = "test"
	cfg.Server.ShutdownTimeout = 5 * time.Second
	cfg.Transcriber.Provider = "whisper_server"
	cfg.Transcriber.WhisperServer.BaseURL = baseURL
	cfg.Storage.TempDir = t.TempDir()
	return cfg
}

func TestInitializeApplication_RunAndShutdown(t *testing.T) {
	whisper := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer whisper.Close()

	application, err := InitializeApplication(whisperServerConfig(t, whisper.URL), "test", zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + application.Server().Addr() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("application did not shut down")
	}
}

func TestInitializeApplication_UnknownProvider(t *testing.T) {
	cfg := whisperServerConfig(t, "http://127.0.0.1:1")
	cfg.Transcriber.Provider = "missing"

	_, err := InitializeApplication(cfg, "test", zap.NewNop())
	assert.ErrorIs(t, err, apperrors.ErrProviderNotFound)
}

func TestInitializeApplication_MissingModelFailsStartup(t *testing.T) {
	cfg := whisperServerConfig(t, "")
	cfg.Transcriber.Provider = "whisper_cpp"
	cfg.Transcriber.WhisperCpp.BinaryPath = "sh"
	cfg.Transcriber.WhisperCpp.ModelPath = filepath.Join(t.TempDir(), "ggml-tiny.bin")

	_, err := InitializeApplication(cfg, "test", zap.NewNop())
	assert.ErrorIs(t, err, apperrors.ErrModelNotFound)

	cfg.Transcriber.SkipHealthCheck = true
	_, err = InitializeApplication(cfg, "test", zap.NewNop())
	assert.NoError(t, err)
}
