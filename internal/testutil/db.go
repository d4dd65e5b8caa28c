// Package testutil holds fixtures shared by tests across packages
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/thenoetrevino/mytasks/internal/database"
	"github.com/thenoetrevino/mytasks/internal/models"
)

// SetupTestDB creates an in-memory database with full schema.
// The database is closed by test cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestTask inserts a task and returns its ID
func CreateTestTask(t *testing.T, db *sql.DB, title, description string, due time.Time) int64 {
	t.Helper()
	id, err := database.NewTaskDAO(db).InsertOrReplace(context.Background(), models.Task{
		Title:       title,
		Description: description,
		DueDate:     due,
	})
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return id
}

// GetTestTask reads a task row directly, bypassing the store
func GetTestTask(t *testing.T, db *sql.DB, id int64) (models.Task, bool) {
	t.Helper()
	var (
		task models.Task
		due  int64
	)
	err := db.QueryRowContext(context.Background(),
		"SELECT id, title, description, due_date, is_completed FROM tasks WHERE id = ?", id).
		Scan(&task.ID, &task.Title, &task.Description, &due, &task.Completed)
	if err == sql.ErrNoRows {
		return models.Task{}, false
	}
	if err != nil {
		t.Fatalf("Failed to read test task: %v", err)
	}
	task.DueDate = time.UnixMilli(due)
	return task, true
}

// CountTasks returns the number of rows in the tasks table
func CountTasks(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM tasks").Scan(&n); err != nil {
		t.Fatalf("Failed to count tasks: %v", err)
	}
	return n
}
