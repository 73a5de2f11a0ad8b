package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/valyala/fasthttp"

	"dicas-api/pkg/logger"
)

const (
	DefaultNewsBaseURL  = "https://gnews.io/api/v4"
	DefaultNewsTimeout  = 10 * time.Second
	newsServiceName     = "gnews"
	topHeadlinesPath    = "/top-headlines"
	maxErrorBodyPreview = 256
)

type gnewsClient struct {
	config      NewsConfig
	connManager *ConnectionManager
	log         *logger.Logger
	secure      *logger.SecurityLogger
}

// NewGNewsClient builds a NewsClient backed by the GNews top-headlines endpoint.
func NewGNewsClient(config NewsConfig, connManager *ConnectionManager) NewsClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultNewsBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultNewsTimeout
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	log := logger.GetLogger().WithField("component", "gnews_client")
	return &gnewsClient{
		config:      config,
		connManager: connManager,
		log:         log,
		secure:      logger.NewSecurityLogger(log),
	}
}

func (c *gnewsClient) Headlines(ctx context.Context, query NewsQuery) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.config.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", newsServiceName, ErrMissingAPIKey)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.config.BaseURL + topHeadlinesPath)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	args := req.URI().QueryArgs()
	args.Add("lang", c.config.Language)
	args.Add("country", c.config.Country)
	args.Add("q", query.Topic)
	if query.Limit > 0 {
		args.Add("max", strconv.Itoa(query.Limit))
	}
	args.Add("apikey", c.config.APIKey)

	start := time.Now()
	ctxDeadline, hasDeadline := ctx.Deadline()
	deadline := deadlineFor(ctxDeadline, hasDeadline, c.config.Timeout)

	c.secure.SafeInfo("Fetching headlines", map[string]interface{}{
		"url":   req.URI().String(),
		"topic": query.Topic,
		"limit": query.Limit,
	})

	if err := c.connManager.GetFastHTTPClient().DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%s request failed: %w", newsServiceName, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &StatusError{
			Service:    newsServiceName,
			StatusCode: resp.StatusCode(),
			Message:    gnewsErrorMessage(resp.Body()),
		}
	}

	titles, err := parseHeadlines(resp.Body())
	if err != nil {
		return nil, err
	}

	c.log.WithFields(map[string]interface{}{
		"count":       len(titles),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Headlines fetched")

	return titles, nil
}

// parseHeadlines extracts articles[].title in order. A body without an
// articles key yields an empty list; an article without a title is malformed.
func parseHeadlines(body []byte) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %s body is not valid JSON", ErrMalformedResponse, newsServiceName)
	}

	articles := gjson.GetBytes(body, "articles")
	if !articles.Exists() || articles.Type == gjson.Null {
		return []string{}, nil
	}
	if !articles.IsArray() {
		return nil, fmt.Errorf("%w: %s articles is not an array", ErrMalformedResponse, newsServiceName)
	}

	var (
		titles   = []string{}
		parseErr error
		index    int
	)
	articles.ForEach(func(_, article gjson.Result) bool {
		title := article.Get("title")
		if title.Type != gjson.String {
			parseErr = fmt.Errorf("%w: %s article %d has no title", ErrMalformedResponse, newsServiceName, index)
			return false
		}
		titles = append(titles, title.String())
		index++
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return titles, nil
}

// gnewsErrorMessage pulls the first entry of GNews' {"errors": [...]} body.
func gnewsErrorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "errors.0"); msg.Exists() {
		return msg.String()
	}
	return truncate(string(body), maxErrorBodyPreview)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
