package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"audio-api/internal/app/api"
	apperrors "audio-api/internal/app/errors"
)

// WavPreparer is the audio probing/conversion surface local providers need.
type WavPreparer interface {
	Is16kHzWavFile(ctx context.Context, filePath string) (bool, error)
	ConvertTo16kHzWav(ctx context.Context, inputFilePath string) (string, error)
}

// WhisperCppOptions configures the whisper_cpp provider.
type WhisperCppOptions struct {
	BinaryPath string
	ModelPath  string
	Threads    int
}

// WhisperServerOptions configures the whisper_server provider.
type WhisperServerOptions struct {
	BaseURL       string
	InferencePath string
	Timeout       time.Duration
}

// OpenAIOptions configures the openai provider.
type OpenAIOptions struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Options is everything a provider creator may need. Each creator reads only
// its own section.
type Options struct {
	Language      string
	WhisperCpp    WhisperCppOptions
	WhisperServer WhisperServerOptions
	OpenAI        OpenAIOptions

	Wav    WavPreparer
	Logger *zap.Logger
}

// ProviderCreator is a function that creates a provider from configuration
type ProviderCreator func(opts Options) (api.Transcriber, error)

var (
	providerRegistry = make(map[string]ProviderCreator)
	registryMutex    sync.RWMutex
)

// RegisterProvider registers a provider creator function
func RegisterProvider(providerType string, creator ProviderCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	providerRegistry[providerType] = creator
}

// GetProviderCreator returns the creator function for a provider type
func GetProviderCreator(providerType string) (ProviderCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := providerRegistry[providerType]
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrProviderNotFound, fmt.Sprintf("provider type %s not registered", providerType))
	}
	return creator, nil
}

// ListRegisteredProviders returns all registered provider types, sorted.
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	providers := lo.Keys(providerRegistry)
	sort.Strings(providers)
	return providers
}

// NewTranscriber builds the transcriber registered under providerType.
func NewTranscriber(providerType string, opts Options) (api.Transcriber, error) {
	creator, err := GetProviderCreator(providerType)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return creator(opts)
}
