package api

import (
	"context"
	"fmt"
	"strings"
)

// NewCompletionClient selects the provider named in config. Callers should
// close the result when it implements io.Closer.
func NewCompletionClient(ctx context.Context, config CompletionConfig, connManager *ConnectionManager) (CompletionClient, error) {
	switch strings.ToLower(config.Provider) {
	case "", ProviderOpenAI:
		return NewOpenAIClient(config, connManager), nil
	case ProviderGemini:
		if config.APIKey == "" {
			return unconfiguredClient{service: geminiServiceName}, nil
		}
		client, err := NewGeminiClient(ctx, config)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, config.Provider)
	}
}

// unconfiguredClient stands in for a provider whose credential is missing so
// the service keeps answering with fallback content.
type unconfiguredClient struct {
	service string
}

func (c unconfiguredClient) Complete(context.Context, Prompt) (string, error) {
	return "", fmt.Errorf("%s: %w", c.service, ErrMissingAPIKey)
}
