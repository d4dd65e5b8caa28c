package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/mytasks/internal/daemon"
	"github.com/thenoetrevino/mytasks/internal/events"
)

// GetTestSocketPath generates a unique temporary socket path for testing.
// The socket does not exist yet and is removed by test cleanup.
func GetTestSocketPath(t *testing.T) string {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "test-mytasks.sock")

	t.Cleanup(func() {
		if _, err := os.Stat(socketPath); err == nil {
			_ = os.Remove(socketPath)
		}
	})

	return socketPath
}

// SetupTestDaemon creates a test daemon server on a temporary socket and
// starts it in the background. Cleanup is automatic via t.Cleanup().
func SetupTestDaemon(t *testing.T) (*daemon.Server, string) {
	t.Helper()

	socketPath := GetTestSocketPath(t)

	server, err := daemon.NewServer(socketPath)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	// Register cleanup FIRST, before starting server
	t.Cleanup(func() {
		if err := server.Shutdown(); err != nil {
			t.Logf("Warning: daemon shutdown error during cleanup: %v", err)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() {
		if err := server.Start(ctx); err != nil {
			t.Logf("Server error: %v", err)
		}
	}()

	return server, socketPath
}

// SetupTestClient creates a test event client connected to the given socket path.
// Cleanup is automatic via t.Cleanup().
func SetupTestClient(t *testing.T, socketPath string) *events.Client {
	t.Helper()

	client, err := events.NewClient(socketPath, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("Warning: client close error during cleanup: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect test client: %v", err)
	}

	return client
}

// WaitForClientCount waits for the daemon to report the expected number of
// connected clients
func WaitForClientCount(t *testing.T, server *daemon.Server, expected int, timeout time.Duration) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if int(server.Metrics().ConnectedClients.Load()) == expected {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}
