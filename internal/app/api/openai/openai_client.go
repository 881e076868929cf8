package openai

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient builds an OpenAI client. A non-empty baseURL points it at an
// OpenAI-compatible server instead of api.openai.com.
func NewClient(token, baseURL string) *openai.Client {
	config := openai.DefaultConfig(token)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}
