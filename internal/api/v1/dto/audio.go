package dto

import "io"

// Upload is a multipart file part handed from a handler to a service.
// The service owns Content and closes it once it has been copied to disk.
type Upload struct {
	Filename string
	Size     int64
	Content  io.ReadCloser
}

// TranscriptionResult is the success body of POST /transcrever.
type TranscriptionResult struct {
	Text string `json:"text" example:"olá, tudo bem?"`
}

// ErrorResponse is the failure body of both audio endpoints.
type ErrorResponse struct {
	Error string `json:"error" example:"ffmpeg error: exit status 1"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status      string `json:"status" example:"healthy"`
	Timestamp   int64  `json:"timestamp"`
	Transcriber string `json:"transcriber" example:"whisper_cpp"`
}

// ServiceInfo is returned by GET /.
type ServiceInfo struct {
	Message       string            `json:"message"`
	Version       string            `json:"version"`
	Documentation string            `json:"documentation"`
	Endpoints     map[string]string `json:"endpoints"`
}
