package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"dicas-api/pkg/logger"
)

const AppName = "API DicasApp"

// NewApp wires middleware and routes around ctl.
func NewApp(ctl *Controller, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               AppName,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(logger.FiberMiddleware(log))
	app.Use(recover.New())
	// AllowHeaders is left empty on purpose: fiber then echoes the
	// preflight's Access-Control-Request-Headers, so every header is allowed.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodHead,
			fiber.MethodPut,
			fiber.MethodDelete,
			fiber.MethodPatch,
			fiber.MethodOptions,
		}, ","),
	}))

	RegisterRoutes(app, ctl)
	return app
}

func RegisterRoutes(router fiber.Router, ctl *Controller) {
	router.Get("/", ctl.Home)
	router.Get("/trends", ctl.Trends)
	router.Post("/gerar_sugestoes", ctl.GenerateSuggestions)
}

// errorHandler renders every error as {"detail": ...}. Upstream failures
// never get here; the services turn them into fallback content.
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "erro interno"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else if log != nil {
			log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
		}

		return c.Status(code).JSON(ErrorResponse{Detail: message})
	}
}
