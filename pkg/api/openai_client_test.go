package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) CompletionClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cm := NewConnectionManager(DefaultConnectionConfig())
	t.Cleanup(cm.Close)

	return NewOpenAIClient(CompletionConfig{
		BaseURL: server.URL,
		APIKey:  "sk-test",
		Timeout: time.Second,
	}, cm)
}

func TestOpenAIClient_Complete(t *testing.T) {
	var got chatCompletionRequest
	var gotAuth, gotPath string

	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "- Título A\n- Título B"}}]
		}`))
	})

	text, err := client.Complete(context.Background(), Prompt{
		System:      "persona",
		User:        "pedido",
		Temperature: 0.8,
		MaxTokens:   300,
	})

	require.NoError(t, err)
	assert.Equal(t, "- Título A\n- Título B", text)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, DefaultOpenAIModel, got.Model)
	assert.Equal(t, 0.8, got.Temperature)
	assert.Equal(t, 300, got.MaxTokens)
	assert.Equal(t, []chatMessage{
		{Role: "system", Content: "persona"},
		{Role: "user", Content: "pedido"},
	}, got.Messages)
}

func TestOpenAIClient_StatusError(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "requests"}}`))
	})

	_, err := client.Complete(context.Background(), Prompt{User: "pedido"})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "Rate limit reached", statusErr.Message)
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	_, err := client.Complete(context.Background(), Prompt{User: "pedido"})

	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestOpenAIClient_MissingAPIKey(t *testing.T) {
	client := NewOpenAIClient(CompletionConfig{}, NewConnectionManager(DefaultConnectionConfig()))

	_, err := client.Complete(context.Background(), Prompt{User: "pedido"})

	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewCompletionClient(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	defer cm.Close()

	client, err := NewCompletionClient(context.Background(), CompletionConfig{Provider: "OpenAI", APIKey: "sk"}, cm)
	require.NoError(t, err)
	assert.IsType(t, &openAIClient{}, client)

	client, err = NewCompletionClient(context.Background(), CompletionConfig{Provider: ProviderGemini}, cm)
	require.NoError(t, err)
	_, err = client.Complete(context.Background(), Prompt{User: "pedido"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewCompletionClient(context.Background(), CompletionConfig{Provider: "llama"}, cm)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), CompletionConfig{Provider: ProviderGemini})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
