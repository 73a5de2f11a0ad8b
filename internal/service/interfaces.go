package service

import "context"

// TrendsResult is the payload of the trends endpoint.
type TrendsResult struct {
	Source  string   `json:"fonte"`
	Country string   `json:"pais"`
	Trends  []string `json:"tendencias"`
}

// SuggestionResult is the payload of the suggestions endpoint. Error is set
// only when Suggestions holds fallback content.
type SuggestionResult struct {
	Topic       string   `json:"tema"`
	Suggestions []string `json:"sugestoes"`
	Error       string   `json:"erro,omitempty"`
}

// TrendsService always produces a non-empty trend list.
type TrendsService interface {
	Trends(ctx context.Context) TrendsResult
}

// SuggestionService always produces a non-empty suggestion list for topic.
type SuggestionService interface {
	Suggest(ctx context.Context, topic string) SuggestionResult
}
