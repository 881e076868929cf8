package testutil

import (
	"context"
	"os"
	"sync"

	"github.com/stretchr/testify/mock"
	"audio-api/internal/app/api"
)

var _ api.Transcriber = (*MockTranscriber)(nil)

// TranscriptionCall records the state of the input file at call time.
type TranscriptionCall struct {
	InputFilePath string
	Existed       bool
	Size          int64
}

// MockTranscriber is a testify mock of api.Transcriber.
type MockTranscriber struct {
	mock.Mock
	mu    sync.Mutex
	calls []TranscriptionCall
}

// NewMockTranscriber creates an empty MockTranscriber.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Transcript implements api.Transcriber.
func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	call := TranscriptionCall{InputFilePath: inputFilePath}
	if info, err := os.Stat(inputFilePath); err == nil {
		call.Existed = true
		call.Size = info.Size()
	}
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	args := m.Called(ctx, inputFilePath)
	return args.String(0), args.Error(1)
}

// Calls returns a copy of every recorded call.
func (m *MockTranscriber) Calls() []TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TranscriptionCall(nil), m.calls...)
}
