package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"audio-api/internal/api/errors"
	"audio-api/internal/api/v1/dto"
	"audio-api/internal/app/audio"
	apperrors "audio-api/internal/app/errors"
	"audio-api/internal/app/metrics"
	"audio-api/internal/app/util/files"
)

const maxExtLength = 16

// ConvertedAudio is an MP3 file that lives until Release is called.
type ConvertedAudio struct {
	Path string
	Size int64

	once    sync.Once
	release func()
}

// Open opens the MP3 for reading.
func (a *ConvertedAudio) Open() (*os.File, error) {
	return os.Open(a.Path)
}

// Release removes the MP3 and its workspace. Safe to call more than once.
func (a *ConvertedAudio) Release() {
	a.once.Do(func() {
		if a.release != nil {
			a.release()
		}
	})
}

// ConversionServiceImpl implements ConversionService
type ConversionServiceImpl struct {
	converter audio.Converter
	files     *files.Manager
	gate      *adapterGate
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewConversionService creates a new conversion service
func NewConversionService(
	converter audio.Converter,
	fileManager *files.Manager,
	limits AdapterLimits,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ConversionServiceImpl {
	if m == nil {
		m = metrics.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversionServiceImpl{
		converter: converter,
		files:     fileManager,
		gate:      newAdapterGate(metrics.OperationConvert, limits, m),
		metrics:   m,
		logger:    logger,
	}
}

// Convert stages the upload, converts it to MP3 and hands back the output.
// On error nothing is left on disk.
func (s *ConversionServiceImpl) Convert(ctx context.Context, upload dto.Upload) (*ConvertedAudio, error) {
	ws, err := s.files.NewWorkspace()
	if err != nil {
		upload.Content.Close()
		return nil, errors.WrapError(err, errors.KindUpload)
	}

	handedOff := false
	defer func() {
		if !handedOff {
			cleanupWorkspace(ws, s.metrics, s.logger)
		}
	}()

	inputPath := ws.Path("input", inputExt(upload.Filename))
	outputPath := ws.Path("output", ".mp3")

	size, err := stageUpload(ws, inputPath, upload)
	if err != nil {
		return nil, errors.WrapError(err, errors.KindUpload)
	}
	s.metrics.ObserveUpload(metrics.OperationConvert, size)

	if size == 0 {
		return nil, errors.WrapError(apperrors.Wrap(apperrors.ErrConversionFailed, apperrors.ErrEmptyUpload.Error()), errors.KindConversion)
	}

	s.logger.Debug("converting upload",
		zap.String("filename", upload.Filename),
		zap.Int64("size", size),
		zap.String("input", inputPath),
		zap.String("output", outputPath),
	)

	err = s.gate.run(ctx, func(ctx context.Context) error {
		return s.converter.ConvertToMp3(ctx, inputPath, outputPath)
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.KindConversion)
	}

	if err := ws.Remove(inputPath); err != nil {
		s.logger.Warn("failed to remove conversion input", zap.String("path", inputPath), zap.Error(err))
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return nil, errors.WrapError(apperrors.Wrapf(apperrors.ErrConversionFailed, "missing output file: %v", err), errors.KindConversion)
	}

	handedOff = true
	return &ConvertedAudio{
		Path: outputPath,
		Size: info.Size(),
		release: func() {
			if err := ws.Remove(outputPath); err != nil {
				s.logger.Warn("failed to remove converted file", zap.String("path", outputPath), zap.Error(err))
			}
			cleanupWorkspace(ws, s.metrics, s.logger)
		},
	}, nil
}

// inputExt keeps the client's extension so ffmpeg can use it as a hint.
func inputExt(filename string) string {
	ext := filepath.Ext(filename)
	if len(ext) > maxExtLength {
		return ""
	}
	return ext
}
