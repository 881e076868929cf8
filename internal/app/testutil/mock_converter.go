package testutil

import (
	"context"
	"os"
	"sync"

	"github.com/stretchr/testify/mock"
	"audio-api/internal/app/audio"
)

var _ audio.Converter = (*MockConverter)(nil)

// ConversionCall records one ConvertToMp3 invocation.
type ConversionCall struct {
	InputPath  string
	OutputPath string
	InputSize  int64
}

// MockConverter is a testify mock of audio.Converter. When the mocked call
// returns nil, Output is written to the output path.
type MockConverter struct {
	mock.Mock
	Output []byte

	mu    sync.Mutex
	calls []ConversionCall
}

// NewMockConverter creates a MockConverter that writes FakeMP3 on success.
func NewMockConverter() *MockConverter {
	return &MockConverter{Output: FakeMP3()}
}

// ConvertToMp3 implements audio.Converter.
func (m *MockConverter) ConvertToMp3(ctx context.Context, inputPath, outputPath string) error {
	call := ConversionCall{InputPath: inputPath, OutputPath: outputPath, InputSize: -1}
	if info, err := os.Stat(inputPath); err == nil {
		call.InputSize = info.Size()
	}
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	args := m.Called(ctx, inputPath, outputPath)
	if err := args.Error(0); err != nil {
		return err
	}
	return os.WriteFile(outputPath, m.Output, 0o600)
}

// Calls returns a copy of every recorded call.
func (m *MockConverter) Calls() []ConversionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ConversionCall(nil), m.calls...)
}
