package config

import (
	"net"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	News       NewsConfig       `mapstructure:"news"`
	Completion CompletionConfig `mapstructure:"completion"`
	Upstream   UpstreamConfig   `mapstructure:"upstream"`
	Logger     LoggerConfig     `mapstructure:"logger"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	StatusMessage   string        `mapstructure:"status_message"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// NewsConfig drives the /trends endpoint.
type NewsConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Language string        `mapstructure:"language"`
	Country  string        `mapstructure:"country"`
	Topic    string        `mapstructure:"topic"`
	Limit    int           `mapstructure:"limit"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Source   string        `mapstructure:"source_label"`
	Region   string        `mapstructure:"country_label"`
}

// CompletionConfig drives the /gerar_sugestoes endpoint.
type CompletionConfig struct {
	Provider    string        `mapstructure:"provider"`
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type UpstreamConfig struct {
	MaxConnsPerHost     int           `mapstructure:"max_conns_per_host"`
	MaxIdleConnDuration time.Duration `mapstructure:"max_idle_conn_duration"`
	UserAgent           string        `mapstructure:"user_agent"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

// Address is the host:port the HTTP server listens on.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type Manager interface {
	// Load reads defaults, the optional file at configPath and the environment.
	Load(configPath string) (*Config, error)
	GetConfig() *Config
}
