package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "DICAS"

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.setupViper(); err != nil {
		return nil, fmt.Errorf("failed to setup viper: %w", err)
	}

	if configPath != "" {
		m.viper.SetConfigFile(configPath)
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Completion.Provider = strings.ToLower(config.Completion.Provider)
	if config.Completion.Provider == "gemini" {
		config.Completion.APIKey = m.geminiAPIKey()
	}

	if err := m.validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	m.config = &config
	return &config, nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// geminiAPIKey never falls back to OPENAI_API_KEY, which shares the
// completion.api_key binding.
func (m *manager) geminiAPIKey() string {
	if key := m.viper.GetString("gemini_api_key"); key != "" {
		return key
	}
	return os.Getenv(envPrefix + "_COMPLETION_API_KEY")
}

func (m *manager) setupViper() error {
	setDefaults(m.viper)

	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	// Bare names used by the hosting platform and existing deployments.
	bindings := map[string][]string{
		"server.port":        {"DICAS_SERVER_PORT", "PORT"},
		"news.api_key":       {"DICAS_NEWS_API_KEY", "API_KEY_GNEWS"},
		"completion.api_key": {"DICAS_COMPLETION_API_KEY", "OPENAI_API_KEY"},
		"gemini_api_key":     {"GEMINI_API_KEY"},
		"logger.level":       {"DICAS_LOGGER_LEVEL", "LOG_LEVEL"},
	}
	for key, envs := range bindings {
		if err := m.viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if os.Getenv("DEBUG") == "true" {
		m.viper.SetDefault("logger.level", "debug")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.status_message", "API DicasApp rodando")
	v.SetDefault("server.request_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("news.base_url", "https://gnews.io/api/v4")
	v.SetDefault("news.api_key", "")
	v.SetDefault("news.language", "pt")
	v.SetDefault("news.country", "br")
	v.SetDefault("news.topic", "noticias")
	v.SetDefault("news.limit", 10)
	v.SetDefault("news.timeout", 10*time.Second)
	v.SetDefault("news.source_label", "GNews")
	v.SetDefault("news.country_label", "Brasil")

	v.SetDefault("completion.provider", "openai")
	v.SetDefault("completion.base_url", "")
	v.SetDefault("completion.api_key", "")
	v.SetDefault("completion.model", "")
	v.SetDefault("completion.temperature", 0.8)
	v.SetDefault("completion.max_tokens", 300)
	v.SetDefault("completion.timeout", 10*time.Second)
	v.SetDefault("gemini_api_key", "")

	v.SetDefault("upstream.max_conns_per_host", 64)
	v.SetDefault("upstream.max_idle_conn_duration", 90*time.Second)
	v.SetDefault("upstream.user_agent", "dicas-api/2.0")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.time_format", "")
}

func (m *manager) validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive")
	}

	if config.News.BaseURL == "" {
		return fmt.Errorf("news.base_url cannot be empty")
	}

	if config.News.Limit <= 0 {
		return fmt.Errorf("news.limit must be positive")
	}

	if config.News.Timeout <= 0 || config.Completion.Timeout <= 0 {
		return fmt.Errorf("upstream timeouts must be positive")
	}

	switch config.Completion.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unknown completion provider: %q", config.Completion.Provider)
	}

	if config.Completion.Temperature < 0 || config.Completion.Temperature > 2 {
		return fmt.Errorf("completion.temperature must be within [0, 2]: %v", config.Completion.Temperature)
	}

	if config.Completion.MaxTokens <= 0 {
		return fmt.Errorf("completion.max_tokens must be positive")
	}

	return nil
}
