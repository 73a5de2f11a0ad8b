package api

import (
	"context"
	"time"
)

// NewsQuery selects which headlines to ask the news service for.
type NewsQuery struct {
	Topic string
	Limit int
}

// NewsClient fetches headline titles from a news aggregation service.
type NewsClient interface {
	// Headlines returns article titles in upstream order. An empty slice with
	// a nil error means the service answered but had nothing to offer.
	Headlines(ctx context.Context, query NewsQuery) ([]string, error)
}

// Prompt is a single system/user exchange sent to a language model.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// CompletionClient sends one prompt to a language model and returns its raw text.
type CompletionClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// NewsConfig configures the GNews client.
type NewsConfig struct {
	BaseURL  string
	APIKey   string
	Language string
	Country  string
	Timeout  time.Duration
}

// CompletionConfig configures a completion provider.
type CompletionConfig struct {
	Provider string
	BaseURL  string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)
