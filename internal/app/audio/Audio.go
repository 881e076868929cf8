package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	apperrors "audio-api/internal/app/errors"
	"audio-api/internal/app/model"
)

// Converter turns any ffmpeg-readable media file into an MP3 file.
type Converter interface {
	ConvertToMp3(ctx context.Context, inputPath, outputPath string) error
}

var wavInputFormats = []string{".mp3", ".m4a", ".wav", ".ogg", ".oga", ".opus", ".flac", ".webm", ".mp4", ".aac"}

// FFmpeg wraps the ffmpeg and ffprobe binaries.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	logger      *zap.Logger
}

// NewFFmpeg creates an FFmpeg wrapper. Empty paths fall back to the binaries on PATH.
func NewFFmpeg(ffmpegPath, ffprobePath string, logger *zap.Logger) *FFmpeg {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FFmpeg{
		ffmpegPath:  lo.Ternary(ffmpegPath == "", "ffmpeg", ffmpegPath),
		ffprobePath: lo.Ternary(ffprobePath == "", "ffprobe", ffprobePath),
		logger:      logger,
	}
}

// CheckAvailable verifies that both binaries can be executed.
func (f *FFmpeg) CheckAvailable() error {
	for _, bin := range []string{f.ffmpegPath, f.ffprobePath} {
		if _, err := exec.LookPath(bin); err != nil {
			return apperrors.Wrapf(apperrors.ErrBinaryNotFound, "%s: %v", bin, err)
		}
	}
	return nil
}

// GetAudioDuration returns the media duration in whole seconds.
func (f *FFmpeg) GetAudioDuration(ctx context.Context, filePath string) (int, error) {
	cmd := exec.CommandContext(ctx, f.ffprobePath, "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	return parseDuration(string(output))
}

func parseDuration(output string) (int, error) {
	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(durationFloat)), nil
}

// ConvertToMp3 transcodes inputPath into an MP3 at outputPath, overwriting any
// existing file. It blocks until ffmpeg exits.
func (f *FFmpeg) ConvertToMp3(ctx context.Context, inputPath, outputPath string) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrFileNotFound, inputPath)
	}
	if info.Size() == 0 {
		return apperrors.Wrap(apperrors.ErrConversionFailed, apperrors.ErrEmptyUpload.Error())
	}

	f.logger.Debug("converting to mp3", zap.String("input", inputPath), zap.String("output", outputPath))

	cmd := exec.CommandContext(ctx, f.ffmpegPath,
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-f", "mp3",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return apperrors.Wrapf(apperrors.ErrConversionFailed, "ffmpeg error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	f.logger.Debug("mp3 conversion completed", zap.String("output", outputPath))
	return nil
}

// Is16kHzWavFile reports whether filePath already holds 16 kHz PCM audio.
func (f *FFmpeg) Is16kHzWavFile(ctx context.Context, filePath string) (bool, error) {
	cmd := exec.CommandContext(ctx, f.ffprobePath, "-v", "quiet", "-print_format", "json", "-show_streams", filePath)
	output, err := cmd.Output()
	if err != nil {
		return false, err
	}
	return is16kHzPCM(output)
}

func is16kHzPCM(ffprobeJSON []byte) (bool, error) {
	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(ffprobeJSON, &probeOutput); err != nil {
		return false, err
	}

	for _, stream := range probeOutput.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" && stream.SampleRate == 16000 {
			return true, nil
		}
	}
	return false, nil
}

// ConvertTo16kHzWav writes a 16 kHz mono WAV next to inputFilePath and returns its path.
// The caller owns the returned file.
func (f *FFmpeg) ConvertTo16kHzWav(ctx context.Context, inputFilePath string) (string, error) {
	outputFilePath := strings.TrimSuffix(inputFilePath, filepath.Ext(inputFilePath)) + "_16khz.wav"
	if err := f.convertTo16kHzWav(ctx, inputFilePath, outputFilePath); err != nil {
		return "", err
	}
	return outputFilePath, nil
}

func (f *FFmpeg) convertTo16kHzWav(ctx context.Context, inputAudioFilePath, outputWavPath string) error {
	ext := strings.ToLower(filepath.Ext(inputAudioFilePath))
	if !lo.Contains(wavInputFormats, ext) {
		return fmt.Errorf("unsupported audio format not in %v: %s", wavInputFormats, ext)
	}

	f.logger.Debug("converting to 16kHz wav", zap.String("input", inputAudioFilePath))

	cmd := exec.CommandContext(ctx, f.ffmpegPath, "-y", "-i", inputAudioFilePath, "-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputWavPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("FFmpeg error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	f.logger.Debug("16kHz wav conversion completed", zap.String("output", outputWavPath))
	return nil
}
