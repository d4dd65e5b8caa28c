package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/mytasks/internal/models"
)

// setupTestDB creates an in-memory database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// setupTestDBFile creates a file-based database for testing persistence across restarts
func setupTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mytasks-test.db")
	db, err := InitDB(context.Background(), path)
	require.NoError(t, err)
	return db, path
}

// nextSnapshot waits for the next emission of a live query
func nextSnapshot(t *testing.T, ch <-chan []models.Task) []models.Task {
	t.Helper()
	select {
	case tasks, ok := <-ch:
		require.True(t, ok, "live query closed")
		return tasks
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for live query")
		return nil
	}
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func taskDue(title string, due time.Time) models.Task {
	return models.Task{Title: title, Description: title + " description", DueDate: due}
}
