package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/mytasks/internal/app"
	"github.com/thenoetrevino/mytasks/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with use cases

	// borrowed apps belong to the caller and are not closed by Close
	borrowed bool
}

// NewCLI loads the config, opens the database and connects to the daemon
// when it is running
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &CLI{App: application}, nil
}

// GetCLIFromContext returns a CLI over the app stored in ctx by WithApp,
// or opens a new one
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := appFromContext(ctx); ok {
		return &CLI{App: a, borrowed: true}, nil
	}
	return NewCLI(ctx)
}

// Close flushes pending daemon events and closes the database
func (c *CLI) Close() error {
	if c.borrowed {
		return nil
	}
	return c.App.Close()
}
