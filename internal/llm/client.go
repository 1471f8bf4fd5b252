// Package llm narrows the OpenAI-compatible client surface so the scraper
// capability can be tested without a live backend.
package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal chat-completion interface the LLM scraper needs.
// Any OpenAI-compatible or local backend can be adapted to it.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// New builds a real client for an OpenAI-compatible endpoint. An empty
// baseURL keeps the library default.
func New(baseURL, apiKey string) Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}
