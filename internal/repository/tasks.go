// Package repository turns raw store outcomes into classified results.
package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/thenoetrevino/mytasks/internal/database"
	"github.com/thenoetrevino/mytasks/internal/models"
)

// TasksRepository is the data contract every task screen depends on.
// Streams from the mutation methods carry at most one value and then close.
type TasksRepository interface {
	GetTasks(ctx context.Context) <-chan models.Result[[]models.Task]
	AddTask(ctx context.Context, task models.Task) <-chan models.Result[models.Unit]
	UpdateTask(ctx context.Context, task models.Task) <-chan models.Result[models.Unit]
	DeleteTask(ctx context.Context, task models.Task) <-chan models.Result[models.Unit]
}

// Repository implements TasksRepository over a database.TaskStore
type Repository struct {
	store database.TaskStore
}

var _ TasksRepository = (*Repository)(nil)

// New creates a repository over store
func New(store database.TaskStore) *Repository {
	return &Repository{store: store}
}

// GetTasks streams the task list. A store fault is reported once as
// DatabaseReadError and ends the stream.
func (r *Repository) GetTasks(ctx context.Context) <-chan models.Result[[]models.Task] {
	out := make(chan models.Result[[]models.Task])

	go func() {
		defer close(out)

		live, errc := r.store.ObserveAll(ctx)
		for tasks := range live {
			select {
			case out <- models.Success(tasks):
			case <-ctx.Done():
				return
			}
		}

		err := <-errc
		if err == nil || cancelled(ctx, err) {
			return
		}

		slog.Warn("failed to read tasks", "error", err)
		select {
		case out <- models.Failure[[]models.Task](models.DatabaseReadError):
		case <-ctx.Done():
		}
	}()

	return out
}

// TaskCreator inserts a task and reports the id the store assigned to it
type TaskCreator interface {
	CreateTask(ctx context.Context, task models.Task) <-chan models.Result[int64]
}

var _ TaskCreator = (*Repository)(nil)

// AddTask inserts task, or replaces the stored task with the same id
func (r *Repository) AddTask(ctx context.Context, task models.Task) <-chan models.Result[models.Unit] {
	return mutate(ctx, "add", task, false, r.store.InsertOrReplace, unit)
}

// CreateTask is AddTask for callers that need the stored id
func (r *Repository) CreateTask(ctx context.Context, task models.Task) <-chan models.Result[int64] {
	return mutate(ctx, "create", task, false, r.store.InsertOrReplace, func(id int64) int64 { return id })
}

// UpdateTask succeeds only if a stored task was changed
func (r *Repository) UpdateTask(ctx context.Context, task models.Task) <-chan models.Result[models.Unit] {
	return mutate(ctx, "update", task, true, r.store.Update, unit)
}

// DeleteTask succeeds only if a stored task was removed
func (r *Repository) DeleteTask(ctx context.Context, task models.Task) <-chan models.Result[models.Unit] {
	return mutate(ctx, "delete", task, true, r.store.Delete, unit)
}

func unit(int64) models.Unit { return models.Unit{} }

// mutate runs one store write and classifies its outcome. value turns the
// store's answer (new id or affected rows) into the success payload.
func mutate[T any](
	ctx context.Context,
	op string,
	task models.Task,
	requireRows bool,
	write func(context.Context, models.Task) (int64, error),
	value func(int64) T,
) <-chan models.Result[T] {
	out := make(chan models.Result[T], 1)

	go func() {
		defer close(out)

		n, err := write(ctx, task)
		if cancelled(ctx, err) {
			return
		}

		if err == nil && requireRows && n == 0 {
			err = ErrNoRowsAffected
		}
		if err != nil {
			slog.Warn("failed to write task", "op", op, "task_id", task.ID, "error", err)
			out <- models.Failure[T](models.DatabaseWriteError)
			return
		}

		out <- models.Success(value(n))
	}()

	return out
}

// cancelled reports whether the caller gave up on the operation; such
// outcomes are never classified as data errors
func cancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
