package api

import (
	"time"

	"github.com/valyala/fasthttp"

	"dicas-api/pkg/logger"
)

// ConnectionConfig holds configuration for upstream HTTP connections
type ConnectionConfig struct {
	MaxConnsPerHost     int           `json:"max_conns_per_host"`
	MaxIdleConnDuration time.Duration `json:"max_idle_conn_duration"`
	ReadTimeout         time.Duration `json:"read_timeout"`
	WriteTimeout        time.Duration `json:"write_timeout"`
	UserAgent           string        `json:"user_agent"`
}

// DefaultConnectionConfig returns settings suited to a handful of slow
// third-party APIs rather than high fan-out traffic.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxConnsPerHost:     64,
		MaxIdleConnDuration: 90 * time.Second,
		ReadTimeout:         30 * time.Second,
		WriteTimeout:        30 * time.Second,
		UserAgent:           "dicas-api/2.0",
	}
}

// ConnectionManager owns the fasthttp client shared by the upstream clients.
type ConnectionManager struct {
	config ConnectionConfig
	client *fasthttp.Client
	log    *logger.Logger
}

// NewConnectionManager creates a new connection manager with specified config
func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	client := &fasthttp.Client{
		Name:                config.UserAgent,
		MaxConnsPerHost:     config.MaxConnsPerHost,
		MaxIdleConnDuration: config.MaxIdleConnDuration,
		ReadTimeout:         config.ReadTimeout,
		WriteTimeout:        config.WriteTimeout,
	}

	return &ConnectionManager{
		config: config,
		client: client,
		log:    logger.GetLogger().WithField("component", "connection_manager"),
	}
}

// GetFastHTTPClient returns the managed client. It is safe for concurrent use.
func (cm *ConnectionManager) GetFastHTTPClient() *fasthttp.Client {
	return cm.client
}

// Close closes all idle connections
func (cm *ConnectionManager) Close() {
	cm.log.Debug("Closing idle upstream connections")
	cm.client.CloseIdleConnections()
}

// deadlineFor returns the earlier of now+timeout and the context deadline.
func deadlineFor(ctxDeadline time.Time, hasDeadline bool, timeout time.Duration) time.Time {
	deadline := time.Now().Add(timeout)
	if hasDeadline && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}
	return deadline
}
