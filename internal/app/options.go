package app

import (
	"log/slog"

	"github.com/thenoetrevino/mytasks/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	noDaemon    bool
}

// WithEventPublisher sets the event publisher for the application.
// Open will not dial the daemon itself when one is given.
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithoutDaemon skips connecting to the event daemon
func WithoutDaemon() Option {
	return func(cfg *appConfig) {
		cfg.noDaemon = true
	}
}
