package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"audio-api/internal/api/v1/handlers"
	"audio-api/internal/api/v1/services"
)

// ServiceContainer holds the services the routes are served by.
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	ConversionService    services.ConversionService
}

// RegisterRoutes registers the audio endpoints on router.
func RegisterRoutes(router gin.IRoutes, container *ServiceContainer, options handlers.AudioOptions, logger *zap.Logger) {
	audioHandler := handlers.NewAudioHandler(
		container.TranscriptionService,
		container.ConversionService,
		options,
		logger,
	)

	router.POST("/transcrever", audioHandler.Transcribe)
	router.POST("/converter", audioHandler.Convert)
}
