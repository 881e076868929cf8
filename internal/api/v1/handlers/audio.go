package handlers

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"audio-api/internal/api/errors"
	"audio-api/internal/api/middleware"
	"audio-api/internal/api/v1/dto"
	"audio-api/internal/api/v1/services"
	apperrors "audio-api/internal/app/errors"
)

const (
	// UploadField is the multipart field both endpoints read.
	UploadField = "file"
	// ConvertedFilename is the download name of every converted file.
	ConvertedFilename = "convertido.mp3"
)

// AudioOptions tunes request handling.
type AudioOptions struct {
	MaxUploadBytes int64
	// StrictStatus answers failed transcriptions with the error's own status
	// instead of 200.
	StrictStatus bool
}

// AudioHandler handles the transcription and conversion endpoints
type AudioHandler struct {
	transcription services.TranscriptionService
	conversion    services.ConversionService
	options       AudioOptions
	logger        *zap.Logger
}

// NewAudioHandler creates a new audio handler
func NewAudioHandler(
	transcription services.TranscriptionService,
	conversion services.ConversionService,
	options AudioOptions,
	logger *zap.Logger,
) *AudioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudioHandler{
		transcription: transcription,
		conversion:    conversion,
		options:       options,
		logger:        logger,
	}
}

// Transcribe handles POST /transcrever
//
// @Summary Transcribe an audio file
// @Description Runs speech recognition on the uploaded audio and returns the text. Processing failures are reported with status 200 and an error field.
// @Tags audio
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file to transcribe"
// @Success 200 {object} dto.TranscriptionResult "Recognized text"
// @Failure 400 {object} dto.ErrorResponse "No file uploaded"
// @Failure 413 {object} dto.ErrorResponse "Upload too large"
// @Router /transcrever [post]
func (h *AudioHandler) Transcribe(c *gin.Context) {
	defer removeMultipartFiles(c)

	upload, err := h.readUpload(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	result, err := h.transcription.Transcribe(c.Request.Context(), upload)
	if err != nil {
		h.logger.Error("transcription failed",
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.String("filename", upload.Filename),
			zap.Error(err),
		)
		status := http.StatusOK
		if h.options.StrictStatus {
			status = 0
		}
		middleware.HandleErrorWithStatus(c, err, status)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Convert handles POST /converter
//
// @Summary Convert a media file to MP3
// @Description Transcodes the uploaded audio or video file and returns it as an MP3 download named convertido.mp3.
// @Tags audio
// @Accept multipart/form-data
// @Produce audio/mpeg
// @Produce json
// @Param file formData file true "Media file to convert"
// @Success 200 {file} binary "MP3 audio"
// @Failure 400 {object} dto.ErrorResponse "No file uploaded"
// @Failure 413 {object} dto.ErrorResponse "Upload too large"
// @Failure 500 {object} dto.ErrorResponse "Conversion failed"
// @Router /converter [post]
func (h *AudioHandler) Convert(c *gin.Context) {
	defer removeMultipartFiles(c)

	upload, err := h.readUpload(c)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	converted, err := h.conversion.Convert(c.Request.Context(), upload)
	if err != nil {
		h.logger.Error("conversion failed",
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.String("filename", upload.Filename),
			zap.Error(err),
		)
		middleware.HandleError(c, err)
		return
	}
	defer converted.Release()

	f, err := converted.Open()
	if err != nil {
		middleware.HandleError(c, errors.WrapError(err, errors.KindConversion))
		return
	}
	defer f.Close()

	c.DataFromReader(http.StatusOK, converted.Size, "audio/mpeg", f, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, ConvertedFilename),
	})
}

// removeMultipartFiles deletes parts the multipart parser spilled to disk.
func removeMultipartFiles(c *gin.Context) {
	if form := c.Request.MultipartForm; form != nil {
		_ = form.RemoveAll()
	}
}

// readUpload parses the multipart body and opens the file part.
func (h *AudioHandler) readUpload(c *gin.Context) (dto.Upload, error) {
	if h.options.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.options.MaxUploadBytes)
	}

	header, err := c.FormFile(UploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			return dto.Upload{}, errors.WrapError(apperrors.Wrapf(apperrors.ErrUploadTooLarge, "limit is %d bytes", tooLarge.Limit), errors.KindUpload)
		case stderrors.Is(err, http.ErrMissingFile):
			return dto.Upload{}, errors.NewBadRequestError(fmt.Sprintf("no file uploaded in field %q", UploadField))
		default:
			return dto.Upload{}, errors.NewBadRequestError(fmt.Sprintf("invalid multipart body: %v", err))
		}
	}

	f, err := header.Open()
	if err != nil {
		return dto.Upload{}, errors.WrapError(apperrors.Wrap(apperrors.ErrFileReadFailed, err.Error()), errors.KindUpload)
	}

	return dto.Upload{Filename: header.Filename, Size: header.Size, Content: f}, nil
}
