package whisper_server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	apperrors "audio-api/internal/app/errors"
)

// WhisperServerProvider implements transcription via HTTP to a whisper-server
// instance, which keeps the model loaded between requests.
type WhisperServerProvider struct {
	config WhisperServerConfig
	client *http.Client
	logger *zap.Logger
}

// WhisperServerConfig represents configuration for whisper-server HTTP API
type WhisperServerConfig struct {
	BaseURL       string        `yaml:"base_url"`       // e.g. "http://127.0.0.1:8080"
	InferencePath string        `yaml:"inference_path"` // default "/inference"
	Timeout       time.Duration `yaml:"timeout"`        // 0 means no client timeout
	Language      string        `yaml:"language"`
}

// WhisperServerResponse represents the response from whisper-server
type WhisperServerResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// NewWhisperServerProvider creates a new whisper-server HTTP provider
func NewWhisperServerProvider(config WhisperServerConfig, logger *zap.Logger) *WhisperServerProvider {
	if config.InferencePath == "" {
		config.InferencePath = "/inference"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WhisperServerProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger.With(zap.String("provider", "whisper_server")),
	}
}

// HealthCheck confirms the server answers before the first request is routed to it.
func (wsp *WhisperServerProvider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wsp.config.BaseURL+"/", nil)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRequestFailed, err.Error())
	}
	resp, err := wsp.client.Do(req)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrRequestFailed, "whisper-server unreachable at %s: %v", wsp.config.BaseURL, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return apperrors.Wrapf(apperrors.ErrRequestFailed, "whisper-server returned status %d", resp.StatusCode)
	}
	return nil
}

// Transcript uploads inputFilePath to the server's inference endpoint.
func (wsp *WhisperServerProvider) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	if _, err := os.Stat(inputFilePath); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrFileNotFound, "input file not found: %s", inputFilePath)
	}

	body, contentType, err := wsp.createMultipartForm(inputFilePath)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrTranscriptionFailed, "failed to create multipart form: %v", err)
	}

	url := wsp.config.BaseURL + wsp.config.InferencePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrRequestFailed, "failed to create HTTP request: %v", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := wsp.client.Do(httpReq)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrRequestFailed, "HTTP request failed: %v", err)
	}
	defer resp.Body.Close()

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrResponseInvalid, "failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.Wrapf(apperrors.ErrTranscriptionFailed, "API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(responseData)))
	}

	var parsed WhisperServerResponse
	if err := json.Unmarshal(responseData, &parsed); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrResponseInvalid, "failed to parse JSON response: %v", err)
	}
	if parsed.Error != "" {
		return "", apperrors.Wrap(apperrors.ErrTranscriptionFailed, parsed.Error)
	}

	wsp.logger.Debug("transcription completed",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("language", parsed.Language),
	)

	return strings.TrimSpace(parsed.Text), nil
}

// createMultipartForm creates the multipart form for the API request
func (wsp *WhisperServerProvider) createMultipartForm(inputFilePath string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	file, err := os.Open(inputFilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(inputFilePath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %v", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy file content: %v", err)
	}

	params := map[string]string{
		"response_format": "json",
		"temperature":     "0.00",
	}
	if wsp.config.Language != "" {
		params["language"] = wsp.config.Language
	}
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %v", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType(), nil
}
