package whisper_cpp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	apperrors "audio-api/internal/app/errors"
	"audio-api/internal/app/util/files"
)

// WavPreparer probes and converts input audio into the 16kHz WAV whisper.cpp expects.
type WavPreparer interface {
	Is16kHzWavFile(ctx context.Context, filePath string) (bool, error)
	ConvertTo16kHzWav(ctx context.Context, inputFilePath string) (string, error)
}

// Config holds the whisper.cpp invocation settings.
type Config struct {
	BinaryPath string
	ModelPath  string
	Language   string
	Threads    int
}

// LocalTranscriber implements local transcription, using local binary commands.
type LocalTranscriber struct {
	binaryPath string
	modelPath  string
	language   string
	threads    int
	wav        WavPreparer
	logger     *zap.Logger
}

// NewLocalTranscriber creates a new instance of LocalTranscriber.
func NewLocalTranscriber(config Config, wav WavPreparer, logger *zap.Logger) *LocalTranscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalTranscriber{
		binaryPath: config.BinaryPath,
		modelPath:  config.ModelPath,
		language:   lo.Ternary(config.Language == "", "auto", config.Language),
		threads:    config.Threads,
		wav:        wav,
		logger:     logger.With(zap.String("provider", "whisper_cpp")),
	}
}

// HealthCheck verifies the binary is executable and the model file exists.
// It runs once at startup so a missing model fails the process, not a request.
func (lt *LocalTranscriber) HealthCheck(ctx context.Context) error {
	if _, err := exec.LookPath(lt.binaryPath); err != nil {
		return apperrors.Wrapf(apperrors.ErrBinaryNotFound, "whisper.cpp binary %s: %v", lt.binaryPath, err)
	}
	info, err := os.Stat(lt.modelPath)
	if err != nil || info.IsDir() {
		return apperrors.Wrapf(apperrors.ErrModelNotFound, "whisper.cpp model %s", lt.modelPath)
	}
	return nil
}

// Transcript runs whisper.cpp on inputFilePath and returns the recognized text.
// Intermediate files are created next to the input and removed before returning.
func (lt *LocalTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	lt.logger.Debug("starting transcription", zap.String("file", inputFilePath))

	if _, err := os.Stat(inputFilePath); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrFileNotFound, "error checking input file: %v", err)
	}

	is16kHzWav, err := lt.wav.Is16kHzWavFile(ctx, inputFilePath)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrTranscriptionFailed, "error checking input file: %v", err)
	}

	wavPath := inputFilePath
	if !is16kHzWav {
		wavPath, err = lt.wav.ConvertTo16kHzWav(ctx, inputFilePath)
		if err != nil {
			return "", apperrors.Wrapf(apperrors.ErrTranscriptionFailed, "error converting input file: %v", err)
		}
		defer files.RemoveIfExists(wavPath)
	}

	outputPrefix := strings.TrimSuffix(inputFilePath, filepath.Ext(inputFilePath)) + "_transcript"
	outputFile := outputPrefix + ".txt"
	defer files.RemoveIfExists(outputFile)

	args := lt.buildArgs(wavPath, outputPrefix)
	command := exec.CommandContext(ctx, lt.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	lt.logger.Debug("running transcription command", zap.String("command", lt.binaryPath+" "+strings.Join(args, " ")))

	if err := command.Run(); err != nil {
		return "", apperrors.Wrapf(apperrors.ErrTranscriptionFailed, "command execution error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	output, err := files.ReadOutputFile(outputFile)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrTranscriptionFailed, "failed to read output file: %v", err)
	}

	return cleanTranscript(output), nil
}

func (lt *LocalTranscriber) buildArgs(inputFilePath, outputPrefix string) []string {
	args := []string{
		"-m", lt.modelPath,
		"-l", lt.language,
		"-nt",
		"-otxt",
		"-f", inputFilePath,
		"-of", outputPrefix,
	}
	if lt.threads > 0 {
		args = append(args, "-t", strconv.Itoa(lt.threads))
	}
	return args
}

// whisper.cpp marks segments without speech with tokens like [BLANK_AUDIO].
var nonSpeechMarkers = []string{"[BLANK_AUDIO]", "[SILENCE]", "[ Silence ]", "(silence)"}

// cleanTranscript joins the per-segment lines into one string and drops non-speech markers.
func cleanTranscript(raw string) string {
	lines := lo.FilterMap(strings.Split(raw, "\n"), func(line string, _ int) (string, bool) {
		for _, marker := range nonSpeechMarkers {
			line = strings.ReplaceAll(line, marker, "")
		}
		line = strings.TrimSpace(line)
		return line, line != ""
	})
	return strings.Join(lines, " ")
}

func (lt *LocalTranscriber) String() string {
	return fmt.Sprintf("whisper_cpp(%s)", filepath.Base(lt.modelPath))
}
