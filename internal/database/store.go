package database

import (
	"context"

	"github.com/thenoetrevino/mytasks/internal/models"
)

// TaskStore is the persistence contract the repository layer depends on.
type TaskStore interface {
	// ObserveAll streams the whole task list, ordered by due date then id,
	// once immediately and again after every committed write. The task
	// channel closes when ctx is done or a query fails; in the latter case
	// the error is readable from the error channel after the task channel closes.
	ObserveAll(ctx context.Context) (<-chan []models.Task, <-chan error)

	// InsertOrReplace inserts a task with ID 0 or replaces the row with the
	// same id, returning the row id.
	InsertOrReplace(ctx context.Context, task models.Task) (int64, error)

	// Update overwrites the row with task.ID and returns the affected row count
	Update(ctx context.Context, task models.Task) (int64, error)

	// Delete removes the row with task.ID and returns the affected row count
	Delete(ctx context.Context, task models.Task) (int64, error)
}

// Compile-time verification that *TaskDAO implements TaskStore
var _ TaskStore = (*TaskDAO)(nil)
