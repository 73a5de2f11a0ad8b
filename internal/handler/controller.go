package handler

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"dicas-api/internal/service"
	"dicas-api/pkg/logger"
)

const DefaultStatusMessage = "API DicasApp rodando"

// Controller translates HTTP requests into service calls.
type Controller struct {
	trends      service.TrendsService
	suggestions service.SuggestionService
	config      ControllerConfig
	log         *logger.Logger
}

type ControllerConfig struct {
	StatusMessage string
	// RequestTimeout bounds the upstream work done for one request.
	RequestTimeout time.Duration
}

type StatusResponse struct {
	Status string `json:"status"`
}

// SuggestionRequest is the body of POST /gerar_sugestoes.
type SuggestionRequest struct {
	Topic string `json:"tema"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewController(
	trends service.TrendsService,
	suggestions service.SuggestionService,
	config ControllerConfig,
) *Controller {
	if config.StatusMessage == "" {
		config.StatusMessage = DefaultStatusMessage
	}

	return &Controller{
		trends:      trends,
		suggestions: suggestions,
		config:      config,
		log:         logger.GetLogger().WithField("component", "controller"),
	}
}

// Home is the liveness probe. It never touches an upstream.
func (ctl *Controller) Home(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{Status: ctl.config.StatusMessage})
}

// Trends serves current headlines, or the fallback list when none are available.
func (ctl *Controller) Trends(c *fiber.Ctx) error {
	ctx, cancel := ctl.requestContext(c)
	defer cancel()

	return c.JSON(ctl.trends.Trends(ctx))
}

// GenerateSuggestions serves e-book title ideas for the posted topic.
func (ctl *Controller) GenerateSuggestions(c *fiber.Ctx) error {
	var req SuggestionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		ctl.log.WithError(err).Debug("Rejected suggestion request body")
		return fiber.NewError(fiber.StatusUnprocessableEntity, "corpo da requisição deve ser JSON com o campo \"tema\"")
	}
	if strings.TrimSpace(req.Topic) == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "campo \"tema\" é obrigatório")
	}

	ctx, cancel := ctl.requestContext(c)
	defer cancel()

	return c.JSON(ctl.suggestions.Suggest(ctx, req.Topic))
}

func (ctl *Controller) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if ctl.config.RequestTimeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), ctl.config.RequestTimeout)
}
