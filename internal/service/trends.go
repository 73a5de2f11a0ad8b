package service

import (
	"context"

	"dicas-api/internal/fallback"
	"dicas-api/pkg/api"
	"dicas-api/pkg/logger"
)

// TrendsOptions fixes what the trends endpoint asks for and how it labels it.
type TrendsOptions struct {
	Topic   string
	Limit   int
	Source  string
	Country string
}

type trendsService struct {
	news   api.NewsClient
	opts   TrendsOptions
	secure *logger.SecurityLogger
}

func NewTrendsService(news api.NewsClient, opts TrendsOptions) TrendsService {
	return &trendsService{
		news:   news,
		opts:   opts,
		secure: logger.NewSecurityLogger(logger.GetLogger().WithField("component", "trends_service")),
	}
}

func (s *trendsService) Trends(ctx context.Context) TrendsResult {
	titles, err := s.news.Headlines(ctx, api.NewsQuery{Topic: s.opts.Topic, Limit: s.opts.Limit})
	decision := fallback.MergeTrends(fallback.From(titles, err))

	if decision.UsedFallback {
		fields := map[string]interface{}{"reason": decision.Reason.String()}
		if err != nil {
			s.secure.SafeError("News upstream failed, serving fallback trends", err, fields)
		} else {
			s.secure.SafeWarn("News upstream returned no articles, serving fallback trends", fields)
		}
	}

	return TrendsResult{
		Source:  s.opts.Source,
		Country: s.opts.Country,
		Trends:  decision.Trends,
	}
}
