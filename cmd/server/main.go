package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"dicas-api/internal/config"
	"dicas-api/internal/handler"
	"dicas-api/internal/service"
	"dicas-api/pkg/api"
	"dicas-api/pkg/logger"
)

type Application struct {
	configPath string
	envFile    string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", "", "Optional configuration file path (yaml)")
	flag.StringVar(&app.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if err := app.Run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func (app *Application) Run() error {
	if err := godotenv.Load(app.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", app.envFile, err)
	}

	cfg, err := config.NewManager().Load(app.configPath)
	if err != nil {
		return err
	}

	logCfg := logger.Config(cfg.Logger)
	if app.debug {
		logCfg.Level = "debug"
	}
	appLog := logger.New(logCfg)
	logger.SetLogger(appLog)
	mainLog := logger.WithField("component", "main")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, cleanup, err := buildServer(ctx, cfg, appLog)
	if err != nil {
		return err
	}
	defer cleanup()

	secure := logger.NewSecurityLogger(mainLog)
	secure.SafeInfo("Configuration loaded", map[string]interface{}{
		"address":             cfg.Server.Address(),
		"config_source":       configSource(app.configPath),
		"news_url":            cfg.News.BaseURL,
		"news_api_key":        cfg.News.APIKey,
		"completion_provider": cfg.Completion.Provider,
		"completion_api_key":  cfg.Completion.APIKey,
	})
	if cfg.News.APIKey == "" {
		logger.WithFields(map[string]interface{}{
			"component": "main",
			"endpoint":  "/trends",
		}).Warn("News API key is not set, serving fallback content")
	}
	if cfg.Completion.APIKey == "" {
		logger.WithFields(map[string]interface{}{
			"component": "main",
			"endpoint":  "/gerar_sugestoes",
			"provider":  cfg.Completion.Provider,
		}).Warn("Completion API key is not set, serving fallback content")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		mainLog.WithField("address", cfg.Server.Address()).Info("Server listening")
		errChan <- server.Listen(cfg.Server.Address())
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-sigChan:
		mainLog.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	if err := server.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	mainLog.Info("Server stopped")
	return nil
}

// buildServer constructs every dependency explicitly from cfg. The returned
// cleanup releases upstream connections.
func buildServer(ctx context.Context, cfg *config.Config, appLog *logger.Logger) (*fiber.App, func(), error) {
	connManager := api.NewConnectionManager(api.ConnectionConfig{
		MaxConnsPerHost:     cfg.Upstream.MaxConnsPerHost,
		MaxIdleConnDuration: cfg.Upstream.MaxIdleConnDuration,
		ReadTimeout:         maxDuration(cfg.News.Timeout, cfg.Completion.Timeout),
		WriteTimeout:        maxDuration(cfg.News.Timeout, cfg.Completion.Timeout),
		UserAgent:           cfg.Upstream.UserAgent,
	})

	news := api.NewGNewsClient(api.NewsConfig{
		BaseURL:  cfg.News.BaseURL,
		APIKey:   cfg.News.APIKey,
		Language: cfg.News.Language,
		Country:  cfg.News.Country,
		Timeout:  cfg.News.Timeout,
	}, connManager)

	completion, err := api.NewCompletionClient(ctx, api.CompletionConfig{
		Provider: cfg.Completion.Provider,
		BaseURL:  cfg.Completion.BaseURL,
		APIKey:   cfg.Completion.APIKey,
		Model:    cfg.Completion.Model,
		Timeout:  cfg.Completion.Timeout,
	}, connManager)
	if err != nil {
		connManager.Close()
		return nil, nil, err
	}

	trends := service.NewTrendsService(news, service.TrendsOptions{
		Topic:   cfg.News.Topic,
		Limit:   cfg.News.Limit,
		Source:  cfg.News.Source,
		Country: cfg.News.Region,
	})
	suggestions := service.NewSuggestionService(completion, service.SamplingOptions{
		Temperature: cfg.Completion.Temperature,
		MaxTokens:   cfg.Completion.MaxTokens,
	})

	ctl := handler.NewController(trends, suggestions, handler.ControllerConfig{
		StatusMessage:  cfg.Server.StatusMessage,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	cleanup := func() {
		if closer, ok := completion.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				appLog.WithError(err).Warn("Failed to close completion client")
			}
		}
		connManager.Close()
	}

	return handler.NewApp(ctl, appLog), cleanup, nil
}

func configSource(path string) string {
	if path == "" {
		return "defaults_and_env"
	}
	return path
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
