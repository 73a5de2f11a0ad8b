package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dicas-api/internal/fallback"
	"dicas-api/internal/service"
	"dicas-api/pkg/api"
)

type stubNews struct {
	titles []string
	err    error
}

func (s stubNews) Headlines(context.Context, api.NewsQuery) ([]string, error) {
	return s.titles, s.err
}

type stubCompletion struct {
	text string
	err  error
}

func (s stubCompletion) Complete(context.Context, api.Prompt) (string, error) {
	return s.text, s.err
}

func newTestApp(news api.NewsClient, completion api.CompletionClient) *fiber.App {
	trends := service.NewTrendsService(news, service.TrendsOptions{
		Topic: "noticias", Limit: 10, Source: "GNews", Country: "Brasil",
	})
	suggestions := service.NewSuggestionService(completion, service.SamplingOptions{Temperature: 0.8, MaxTokens: 300})
	ctl := NewController(trends, suggestions, ControllerConfig{RequestTimeout: time.Second})
	return NewApp(ctl, nil)
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request, out interface{}) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp
}

func postSuggestion(body string) *http.Request {
	req := httptest.NewRequest(fiber.MethodPost, "/gerar_sugestoes", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func TestHome(t *testing.T) {
	app := newTestApp(stubNews{err: api.ErrMissingAPIKey}, stubCompletion{err: api.ErrMissingAPIKey})

	var body StatusResponse
	resp := doJSON(t, app, httptest.NewRequest(fiber.MethodGet, "/", nil), &body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, DefaultStatusMessage, body.Status)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestTrends_UpstreamData(t *testing.T) {
	app := newTestApp(stubNews{titles: []string{"Manchete"}}, stubCompletion{})

	var body map[string]interface{}
	resp := doJSON(t, app, httptest.NewRequest(fiber.MethodGet, "/trends", nil), &body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{
		"fonte":      "GNews",
		"pais":       "Brasil",
		"tendencias": []interface{}{"Manchete"},
	}, body)
}

func TestTrends_EmptyArticlesServesFallback(t *testing.T) {
	app := newTestApp(stubNews{titles: []string{}}, stubCompletion{})

	var body service.TrendsResult
	resp := doJSON(t, app, httptest.NewRequest(fiber.MethodGet, "/trends", nil), &body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, fallback.Trends(), body.Trends)
}

func TestTrends_UpstreamTimeoutStillOK(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	}))
	defer upstream.Close()

	cm := api.NewConnectionManager(api.DefaultConnectionConfig())
	defer cm.Close()
	news := api.NewGNewsClient(api.NewsConfig{
		BaseURL: upstream.URL, APIKey: "k", Language: "pt", Country: "br", Timeout: 50 * time.Millisecond,
	}, cm)
	app := newTestApp(news, stubCompletion{})

	var body map[string]interface{}
	resp := doJSON(t, app, httptest.NewRequest(fiber.MethodGet, "/trends", nil), &body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["tendencias"], 10)
	assert.NotContains(t, body, "error")
}

func TestGenerateSuggestions_Success(t *testing.T) {
	app := newTestApp(stubNews{}, stubCompletion{text: "1) ignorado\n- Título A\n- Título B"})

	var body map[string]interface{}
	resp := doJSON(t, app, postSuggestion(`{"tema": "culinária"}`), &body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "culinária", body["tema"])
	assert.Equal(t, []interface{}{"1) ignorado", "Título A", "Título B"}, body["sugestoes"])
	assert.NotContains(t, body, "erro")
}

func TestGenerateSuggestions_UpstreamFailure(t *testing.T) {
	app := newTestApp(stubNews{}, stubCompletion{err: &api.StatusError{Service: "openai", StatusCode: 503}})

	var body service.SuggestionResult
	resp := doJSON(t, app, postSuggestion(`{"tema": "finanças pessoais"}`), &body)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "finanças pessoais", body.Topic)
	assert.Equal(t, []string{
		"Guia Completo sobre finanças pessoais",
		"Como ganhar dinheiro com finanças pessoais",
		"Segredos para dominar finanças pessoais",
		"Passo a passo para iniciantes em finanças pessoais",
		"Estratégias avançadas sobre finanças pessoais",
	}, body.Suggestions)
	assert.NotEmpty(t, body.Error)
}

func TestGenerateSuggestions_Validation(t *testing.T) {
	app := newTestApp(stubNews{}, stubCompletion{text: "x"})

	cases := map[string]string{
		"invalid json":  `{"tema":`,
		"missing field": `{}`,
		"blank topic":   `{"tema": "   "}`,
		"wrong type":    `{"tema": 42}`,
	}

	for name, payload := range cases {
		payload := payload
		t.Run(name, func(t *testing.T) {
			var body ErrorResponse
			resp := doJSON(t, app, postSuggestion(payload), &body)

			assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
			assert.NotEmpty(t, body.Detail)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(stubNews{}, stubCompletion{})

	req := httptest.NewRequest(fiber.MethodOptions, "/gerar_sugestoes", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://app.example.com")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, fiber.MethodPost)
	req.Header.Set(fiber.HeaderAccessControlRequestHeaders, "Content-Type, X-Custom")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowMethods), fiber.MethodPost)
	assert.Equal(t, "Content-Type, X-Custom", resp.Header.Get(fiber.HeaderAccessControlAllowHeaders))
}

func TestUnknownRouteReturnsJSONError(t *testing.T) {
	app := newTestApp(stubNews{}, stubCompletion{})

	var body ErrorResponse
	resp := doJSON(t, app, httptest.NewRequest(fiber.MethodGet, "/nope", nil), &body)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, body.Detail)
}
