//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"audio-api/internal/config"
)

// InitializeApplication builds the server graph from configuration.
func InitializeApplication(cfg *config.Config, version Version, logger *zap.Logger) (*Application, error) {
	wire.Build(ProviderSet)
	return &Application{}, nil
}
