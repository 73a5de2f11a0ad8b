package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/valyala/fasthttp"

	"dicas-api/pkg/logger"
)

const (
	DefaultOpenAIBaseURL     = "https://api.openai.com/v1"
	DefaultOpenAIModel       = "gpt-4o-mini"
	DefaultCompletionTimeout = 30 * time.Second
	openAIServiceName        = "openai"
	chatCompletionsPath      = "/chat/completions"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type openAIClient struct {
	config      CompletionConfig
	connManager *ConnectionManager
	log         *logger.Logger
}

// NewOpenAIClient builds a CompletionClient for the OpenAI chat-completions API
// or any endpoint that speaks the same protocol.
func NewOpenAIClient(config CompletionConfig, connManager *ConnectionManager) CompletionClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultOpenAIBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultOpenAIModel
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultCompletionTimeout
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &openAIClient{
		config:      config,
		connManager: connManager,
		log:         logger.GetLogger().WithField("component", "openai_client"),
	}
}

func (c *openAIClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.config.APIKey == "" {
		return "", fmt.Errorf("%s: %w", openAIServiceName, ErrMissingAPIKey)
	}

	messages := make([]chatMessage, 0, 2)
	if prompt.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: prompt.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt.User})

	payload, err := json.Marshal(chatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: prompt.Temperature,
		MaxTokens:   prompt.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.config.BaseURL + chatCompletionsPath)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.SetBody(payload)

	start := time.Now()
	ctxDeadline, hasDeadline := ctx.Deadline()
	deadline := deadlineFor(ctxDeadline, hasDeadline, c.config.Timeout)

	c.log.WithFields(map[string]interface{}{
		"model":      c.config.Model,
		"max_tokens": prompt.MaxTokens,
	}).Debug("Requesting chat completion")

	if err := c.connManager.GetFastHTTPClient().DoDeadline(req, resp, deadline); err != nil {
		return "", fmt.Errorf("%s request failed: %w", openAIServiceName, err)
	}

	body := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = truncate(string(body), maxErrorBodyPreview)
		}
		return "", &StatusError{Service: openAIServiceName, StatusCode: resp.StatusCode(), Message: msg}
	}

	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: %s body is not valid JSON", ErrMalformedResponse, openAIServiceName)
	}
	content := gjson.GetBytes(body, "choices.0.message.content")
	if content.Type != gjson.String {
		return "", fmt.Errorf("%w: %s response has no message content", ErrMalformedResponse, openAIServiceName)
	}

	c.log.WithFields(map[string]interface{}{
		"duration_ms":   time.Since(start).Milliseconds(),
		"finish_reason": gjson.GetBytes(body, "choices.0.finish_reason").String(),
	}).Debug("Chat completion received")

	return content.String(), nil
}
