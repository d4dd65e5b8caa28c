package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/thenoetrevino/mytasks/internal/api"
	"github.com/thenoetrevino/mytasks/internal/app"
	"github.com/thenoetrevino/mytasks/internal/config"
)

const shutdownTimeout = 5 * time.Second

// Serve exposes the task API on addr until ctx is done
func Serve(ctx context.Context, cfg *config.Config, addr string) error {
	application, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("error closing application", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.New(application).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("api listening", "addr", addr, "live_updates", application.Connected())
	return runHTTP(ctx, srv)
}

// runHTTP serves until ctx is done, then shuts srv down gracefully
func runHTTP(ctx context.Context, srv *http.Server) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
