package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"dicas-api/pkg/logger"
)

const (
	DefaultGeminiModel = "gemini-1.5-flash"
	geminiServiceName  = "gemini"
)

// GeminiClient is a CompletionClient backed by Google's Generative AI SDK.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *logger.Logger
}

// NewGeminiClient creates the SDK client. No request is made until Complete.
func NewGeminiClient(ctx context.Context, config CompletionConfig) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", geminiServiceName, ErrMissingAPIKey)
	}
	if config.Model == "" {
		config.Model = DefaultGeminiModel
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultCompletionTimeout
	}

	opts := []option.ClientOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(config.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", geminiServiceName, err)
	}

	return &GeminiClient{
		client:  client,
		model:   config.Model,
		timeout: config.Timeout,
		log:     logger.GetLogger().WithField("component", "gemini_client"),
	}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(float32(prompt.Temperature))
	if prompt.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(prompt.MaxTokens))
	}
	if prompt.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(prompt.System)},
		}
	}

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", geminiServiceName, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	c.log.WithFields(map[string]interface{}{
		"model":       c.model,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Gemini completion received")

	return text, nil
}

// Close releases the SDK's underlying connections.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	text := firstCandidateText(resp)
	if text == "" {
		return "", fmt.Errorf("%s: %w", geminiServiceName, ErrEmptyCompletion)
	}
	return text, nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		return sb.String()
	}
	return ""
}
