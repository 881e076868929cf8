package services

import (
	"context"

	"go.uber.org/zap"
	"audio-api/internal/api/errors"
	"audio-api/internal/api/v1/dto"
	"audio-api/internal/app/api"
	"audio-api/internal/app/metrics"
	"audio-api/internal/app/util/files"
)

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	transcriber api.Transcriber
	files       *files.Manager
	gate        *adapterGate
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(
	transcriber api.Transcriber,
	fileManager *files.Manager,
	limits AdapterLimits,
	m *metrics.Metrics,
	logger *zap.Logger,
) *TranscriptionServiceImpl {
	if m == nil {
		m = metrics.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptionServiceImpl{
		transcriber: transcriber,
		files:       fileManager,
		gate:        newAdapterGate(metrics.OperationTranscribe, limits, m),
		metrics:     m,
		logger:      logger,
	}
}

// Transcribe writes the upload to a private workspace, runs the transcriber on
// it and removes every file it created before returning.
func (s *TranscriptionServiceImpl) Transcribe(ctx context.Context, upload dto.Upload) (*dto.TranscriptionResult, error) {
	ws, err := s.files.NewWorkspace()
	if err != nil {
		upload.Content.Close()
		return nil, errors.WrapError(err, errors.KindUpload)
	}
	defer cleanupWorkspace(ws, s.metrics, s.logger)

	// The engine sniffs the real format, the suffix is only a name.
	inputPath := ws.Path("upload", ".mp3")
	size, err := stageUpload(ws, inputPath, upload)
	if err != nil {
		return nil, errors.WrapError(err, errors.KindUpload)
	}
	s.metrics.ObserveUpload(metrics.OperationTranscribe, size)

	s.logger.Debug("transcribing upload",
		zap.String("filename", upload.Filename),
		zap.Int64("size", size),
		zap.String("path", inputPath),
	)

	var text string
	err = s.gate.run(ctx, func(ctx context.Context) error {
		var runErr error
		text, runErr = s.transcriber.Transcript(ctx, inputPath)
		return runErr
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.KindTranscription)
	}

	return &dto.TranscriptionResult{Text: text}, nil
}
