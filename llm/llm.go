// Package llm provides the optional transcript enhancement step, backed by an
// OpenAI-compatible chat completion API.
package llm

import (
	"context"
	"net/http"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer performs chat completions.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Config holds the parameters shared by completers.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// NewCompleter creates a Completer for an OpenAI-compatible endpoint.
func NewCompleter(cfg Config) Completer {
	return &openaiCompleter{
		http: &http.Client{},
		cfg:  cfg,
	}
}
