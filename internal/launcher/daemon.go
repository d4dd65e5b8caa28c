package launcher

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/thenoetrevino/mytasks/internal/daemon"
)

// Daemon runs the event relay on socketPath until ctx is done. A non-empty
// metricsAddr also serves its counters over HTTP.
func Daemon(ctx context.Context, socketPath, metricsAddr string) error {
	server, err := daemon.NewServer(socketPath)
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		srv := &http.Server{
			Addr:              metricsAddr,
			Handler:           daemon.MetricsRouter(server.Metrics()),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := runHTTP(ctx, srv); err != nil {
				slog.Error("metrics endpoint stopped", "error", err)
			}
		}()
		slog.Info("daemon metrics listening", "addr", metricsAddr)
	}

	slog.Info("mytasks daemon starting", "socket_path", socketPath, "pid", os.Getpid())

	// Start blocks until shutdown
	if err := server.Start(ctx); err != nil {
		return err
	}

	slog.Info("mytasks daemon shutting down gracefully")
	return nil
}
