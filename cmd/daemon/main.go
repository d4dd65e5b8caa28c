package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/mytasks/internal/config"
	"github.com/thenoetrevino/mytasks/internal/launcher"
)

// Standalone daemon binary for running under systemd or launchd
func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := launcher.Daemon(ctx, cfg.SocketPath, os.Getenv("MYTASKS_METRICS_ADDR")); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}
}
