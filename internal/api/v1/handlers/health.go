package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"audio-api/internal/api/errors"
	"audio-api/internal/api/middleware"
	"audio-api/internal/api/v1/dto"
	"audio-api/internal/app/api"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler reports liveness and the active transcription engine.
type HealthHandler struct {
	transcriber api.Transcriber
	provider    string
	version     string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(transcriber api.Transcriber, provider, version string) *HealthHandler {
	return &HealthHandler{transcriber: transcriber, provider: provider, version: version}
}

// Health handles GET /health
//
// @Summary Health check
// @Description Reports whether the transcription engine is usable
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if checker, ok := h.transcriber.(api.HealthChecker); ok {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()
		if err := checker.HealthCheck(ctx); err != nil {
			middleware.HandleError(c, errors.NewServiceUnavailableError(err.Error()))
			return
		}
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().Unix(),
		Transcriber: h.provider,
	})
}

// Info handles GET /
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ServiceInfo{
		Message:       "Audio API",
		Version:       h.version,
		Documentation: "/swagger/index.html",
		Endpoints: map[string]string{
			"health":      "/health",
			"metrics":     "/metrics",
			"transcrever": "/transcrever",
			"converter":   "/converter",
		},
	})
}
