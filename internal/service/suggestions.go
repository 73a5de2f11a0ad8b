package service

import (
	"context"
	"fmt"

	"dicas-api/internal/fallback"
	"dicas-api/pkg/api"
	"dicas-api/pkg/logger"
	"dicas-api/pkg/parser"
)

type suggestionService struct {
	completion api.CompletionClient
	sampling   SamplingOptions
	secure     *logger.SecurityLogger
}

func NewSuggestionService(completion api.CompletionClient, sampling SamplingOptions) SuggestionService {
	if sampling.MaxTokens <= 0 {
		sampling.MaxTokens = DefaultMaxTokens
	}

	return &suggestionService{
		completion: completion,
		sampling:   sampling,
		secure:     logger.NewSecurityLogger(logger.GetLogger().WithField("component", "suggestion_service")),
	}
}

func (s *suggestionService) Suggest(ctx context.Context, topic string) SuggestionResult {
	outcome := s.attempt(ctx, topic)
	decision := fallback.MergeSuggestions(topic, outcome)

	result := SuggestionResult{
		Topic:       topic,
		Suggestions: decision.Suggestions,
	}

	if decision.UsedFallback {
		result.Error = s.secure.MaskLogMessage(decision.Error)
		s.secure.SafeError("Completion upstream failed, serving fallback suggestions", outcome.Err, map[string]interface{}{
			"reason": decision.Reason.String(),
		})
	}

	return result
}

func (s *suggestionService) attempt(ctx context.Context, topic string) fallback.Outcome {
	text, err := s.completion.Complete(ctx, EbookTitlePrompt(topic, s.sampling))
	if err != nil {
		return fallback.Failed(err)
	}

	titles := parser.CleanTitles(text)
	if len(titles) == 0 {
		return fallback.Failed(fmt.Errorf("%w: model answer had no usable lines", api.ErrEmptyCompletion))
	}
	return fallback.Succeeded(titles)
}
