package whisper_cpp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "audio-api/internal/app/errors"
)

// fakeWav records calls and produces a derived wav next to the input when asked.
type fakeWav struct {
	is16k      bool
	probeErr   error
	convertErr error
	converted  string
}

func (f *fakeWav) Is16kHzWavFile(ctx context.Context, filePath string) (bool, error) {
	return f.is16k, f.probeErr
}

func (f *fakeWav) ConvertTo16kHzWav(ctx context.Context, inputFilePath string) (string, error) {
	if f.convertErr != nil {
		return "", f.convertErr
	}
	out := strings.TrimSuffix(inputFilePath, filepath.Ext(inputFilePath)) + "_16khz.wav"
	if err := os.WriteFile(out, []byte("RIFF"), 0o644); err != nil {
		return "", err
	}
	f.converted = out
	return out, nil
}

// writeOutputScript writes the given text to "<-of value>.txt" like whisper.cpp -otxt.
func writeOutputScript(text string) string {
	return `#!/bin/bash
of=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-of" ]; then of="$a"; fi
  prev="$a"
done
printf '%s' "` + text + `" > "$of.txt"
`
}

func createMockBinary(t *testing.T, scriptContent string) string {
	t.Helper()
	scriptFile := filepath.Join(t.TempDir(), "mock_whisper.sh")
	require.NoError(t, os.WriteFile(scriptFile, []byte(scriptContent), 0o755))
	return scriptFile
}

func createModelFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ggml-tiny.bin")
	require.NoError(t, os.WriteFile(path, []byte("model"), 0o644))
	return path
}

func createTempAudioFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "upload_0001.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3 audio"), 0o644))
	return path
}

func TestLocalTranscriber_Transcript(t *testing.T) {
	dir := t.TempDir()
	bin := createMockBinary(t, writeOutputScript("ask not what your country can do for you"))
	wav := &fakeWav{}
	lt := NewLocalTranscriber(Config{BinaryPath: bin, ModelPath: createModelFile(t)}, wav, nil)

	input := createTempAudioFile(t, dir)
	got, err := lt.Transcript(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "ask not what your country can do for you", got)

	// derived wav and the text output are removed, the input is left to its owner
	assert.NoFileExists(t, wav.converted)
	assert.NoFileExists(t, filepath.Join(dir, "upload_0001_transcript.txt"))
	assert.FileExists(t, input)
}

func TestLocalTranscriber_SkipsConversionFor16kHzWav(t *testing.T) {
	bin := createMockBinary(t, writeOutputScript("hello"))
	wav := &fakeWav{is16k: true}
	lt := NewLocalTranscriber(Config{BinaryPath: bin, ModelPath: createModelFile(t)}, wav, nil)

	got, err := lt.Transcript(context.Background(), createTempAudioFile(t, t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Empty(t, wav.converted)
}

func TestLocalTranscriber_SilentAudio(t *testing.T) {
	bin := createMockBinary(t, writeOutputScript("\n [BLANK_AUDIO]\n"))
	lt := NewLocalTranscriber(Config{BinaryPath: bin, ModelPath: createModelFile(t)}, &fakeWav{}, nil)

	got, err := lt.Transcript(context.Background(), createTempAudioFile(t, t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestLocalTranscriber_FileNotFound(t *testing.T) {
	lt := NewLocalTranscriber(Config{BinaryPath: "/bin/true", ModelPath: "/mock/model.bin"}, &fakeWav{}, nil)

	_, err := lt.Transcript(context.Background(), "/non/existent/audio.mp3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrFileNotFound))
	assert.Contains(t, err.Error(), "error checking input file")
}

func TestLocalTranscriber_ProbeError(t *testing.T) {
	lt := NewLocalTranscriber(Config{BinaryPath: "/bin/true", ModelPath: "/mock/model.bin"},
		&fakeWav{probeErr: errors.New("Invalid data found when processing input")}, nil)

	_, err := lt.Transcript(context.Background(), createTempAudioFile(t, t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTranscriptionFailed))
	assert.Contains(t, err.Error(), "Invalid data found")
}

func TestLocalTranscriber_ConvertError(t *testing.T) {
	lt := NewLocalTranscriber(Config{BinaryPath: "/bin/true", ModelPath: "/mock/model.bin"},
		&fakeWav{convertErr: errors.New("FFmpeg error: exit status 1")}, nil)

	_, err := lt.Transcript(context.Background(), createTempAudioFile(t, t.TempDir()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error converting input file")
}

func TestLocalTranscriber_CommandFailure(t *testing.T) {
	script := `#!/bin/bash
echo "error: failed to read WAV file" >&2
exit 1
`
	lt := NewLocalTranscriber(Config{BinaryPath: createMockBinary(t, script), ModelPath: createModelFile(t)}, &fakeWav{}, nil)

	_, err := lt.Transcript(context.Background(), createTempAudioFile(t, t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTranscriptionFailed))
	assert.Contains(t, err.Error(), "command execution error")
	assert.Contains(t, err.Error(), "failed to read WAV file")
}

func TestLocalTranscriber_OutputFileNotCreated(t *testing.T) {
	script := `#!/bin/bash
exit 0
`
	lt := NewLocalTranscriber(Config{BinaryPath: createMockBinary(t, script), ModelPath: createModelFile(t)}, &fakeWav{}, nil)

	_, err := lt.Transcript(context.Background(), createTempAudioFile(t, t.TempDir()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read output file")
}

func TestLocalTranscriber_ArgumentsValidation(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args.txt")
	script := `#!/bin/bash
echo "$@" > "` + argsFile + `"
of=""
prev=""
for a in "$@"; do
  if [ "$prev" = "-of" ]; then of="$a"; fi
  prev="$a"
done
echo "Test" > "$of.txt"
`
	modelPath := createModelFile(t)
	lt := NewLocalTranscriber(Config{
		BinaryPath: createMockBinary(t, script),
		ModelPath:  modelPath,
		Language:   "pt",
		Threads:    4,
	}, &fakeWav{is16k: true}, nil)

	input := createTempAudioFile(t, t.TempDir())
	_, err := lt.Transcript(context.Background(), input)
	require.NoError(t, err)

	argsData, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	capturedArgs := strings.Fields(string(argsData))

	expectedPairs := map[string]string{
		"-m":  modelPath,
		"-l":  "pt",
		"-f":  input,
		"-of": strings.TrimSuffix(input, ".mp3") + "_transcript",
		"-t":  "4",
	}
	for i := 0; i < len(capturedArgs)-1; i++ {
		if want, ok := expectedPairs[capturedArgs[i]]; ok {
			assert.Equal(t, want, capturedArgs[i+1], "argument %s", capturedArgs[i])
		}
	}
	assert.Contains(t, capturedArgs, "-otxt")
	assert.Contains(t, capturedArgs, "-nt")
}

func TestLocalTranscriber_DefaultLanguageIsAuto(t *testing.T) {
	lt := NewLocalTranscriber(Config{BinaryPath: "whisper-cli", ModelPath: "ggml-tiny.bin"}, &fakeWav{}, nil)
	args := lt.buildArgs("in.wav", "out")
	assert.Equal(t, []string{"-m", "ggml-tiny.bin", "-l", "auto", "-nt", "-otxt", "-f", "in.wav", "-of", "out"}, args)
}

func TestLocalTranscriber_HealthCheck(t *testing.T) {
	bin := createMockBinary(t, writeOutputScript("x"))

	ok := NewLocalTranscriber(Config{BinaryPath: bin, ModelPath: createModelFile(t)}, &fakeWav{}, nil)
	assert.NoError(t, ok.HealthCheck(context.Background()))

	noModel := NewLocalTranscriber(Config{BinaryPath: bin, ModelPath: "/non/existent/ggml-tiny.bin"}, &fakeWav{}, nil)
	err := noModel.HealthCheck(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrModelNotFound))

	noBinary := NewLocalTranscriber(Config{BinaryPath: "/definitely/not/a/real/binary", ModelPath: createModelFile(t)}, &fakeWav{}, nil)
	err = noBinary.HealthCheck(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBinaryNotFound))
}

func TestCleanTranscript(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "single line", raw: "hello world", want: "hello world"},
		{name: "segments joined", raw: " first segment\n second segment\n", want: "first segment second segment"},
		{name: "blank audio", raw: "[BLANK_AUDIO]", want: ""},
		{name: "mixed", raw: "[BLANK_AUDIO]\nbom dia\n[BLANK_AUDIO]", want: "bom dia"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanTranscript(tt.raw))
		})
	}
}
