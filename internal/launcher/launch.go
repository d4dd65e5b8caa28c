// Package launcher starts the long-running front ends: the terminal UI, the
// HTTP API and the event daemon.
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/mytasks/internal/app"
	"github.com/thenoetrevino/mytasks/internal/config"
	"github.com/thenoetrevino/mytasks/internal/logging"
	"github.com/thenoetrevino/mytasks/internal/tui"
)

// Launch starts the TUI application and blocks until it exits or ctx is done
func Launch(ctx context.Context, cfg *config.Config) error {
	// Initialize logging to file before anything else
	logFile, err := logging.Init(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}

	model := tui.New(ctx, application, cfg)

	// screens are disposed before the database goes away
	defer func() {
		model.Close()
		if err := application.Close(); err != nil {
			slog.Error("error closing application", "error", err)
		}
	}()

	p := tea.NewProgram(model, tea.WithContext(ctx))

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		select {
		case <-errChan:
		case <-time.After(2 * time.Second):
		}
	}
	return nil
}
