package app

import (
	"context"

	"go.uber.org/zap"
	"audio-api/internal/api/server"
	"audio-api/internal/app/metrics"
	"audio-api/internal/config"
)

// Application is a fully wired server ready to Run.
type Application struct {
	config *config.Config
	server *server.Server
	logger *zap.Logger
}

// NewApplication assembles the application and records its build info.
func NewApplication(cfg *config.Config, srv *server.Server, m *metrics.Metrics, version Version, logger *zap.Logger) *Application {
	m.SetBuildInfo(string(version), cfg.Transcriber.Provider)
	return &Application{config: cfg, server: srv, logger: logger}
}

// Server returns the HTTP server.
func (a *Application) Server() *server.Server {
	return a.server
}

// Run serves until ctx is cancelled or the server fails, then shuts down
// within the configured shutdown timeout.
func (a *Application) Run(ctx context.Context) error {
	if err := a.server.Start(); err != nil {
		return err
	}

	var serveErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case serveErr = <-a.server.Errors():
	}

	timeout := a.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = config.DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return serveErr
}
