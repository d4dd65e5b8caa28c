// Package usecase holds one interactor per task operation. Each forwards to
// the repository unchanged so screens depend on a single narrow capability.
package usecase

import (
	"context"

	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/repository"
)

// GetTasks streams the live task list
type GetTasks struct {
	Repo repository.TasksRepository
}

// Invoke opens the stream; it ends when ctx is done or the store fails
func (u GetTasks) Invoke(ctx context.Context) <-chan models.Result[[]models.Task] {
	return u.Repo.GetTasks(ctx)
}

// AddTask saves a new task
type AddTask struct {
	Repo repository.TasksRepository
}

// Invoke returns a single-shot stream with the outcome of the insert
func (u AddTask) Invoke(ctx context.Context, task models.Task) <-chan models.Result[models.Unit] {
	return u.Repo.AddTask(ctx, task)
}

// UpdateTask overwrites a stored task
type UpdateTask struct {
	Repo repository.TasksRepository
}

// Invoke fails with DatabaseWriteError when no task has the id
func (u UpdateTask) Invoke(ctx context.Context, task models.Task) <-chan models.Result[models.Unit] {
	return u.Repo.UpdateTask(ctx, task)
}

// DeleteTask removes a stored task
type DeleteTask struct {
	Repo repository.TasksRepository
}

// Invoke fails with DatabaseWriteError when no task has the id
func (u DeleteTask) Invoke(ctx context.Context, task models.Task) <-chan models.Result[models.Unit] {
	return u.Repo.DeleteTask(ctx, task)
}

// CreateTask saves a new task and reports its id. Front ends that must
// echo the id use it in place of AddTask.
type CreateTask struct {
	Repo repository.TaskCreator
}

// Invoke returns a single-shot stream carrying the new id
func (u CreateTask) Invoke(ctx context.Context, task models.Task) <-chan models.Result[int64] {
	return u.Repo.CreateTask(ctx, task)
}

// Set bundles the interactors built over one repository
type Set struct {
	GetTasks   GetTasks
	AddTask    AddTask
	UpdateTask UpdateTask
	DeleteTask DeleteTask
}

// NewSet wires every interactor to repo
func NewSet(repo repository.TasksRepository) Set {
	return Set{
		GetTasks:   GetTasks{Repo: repo},
		AddTask:    AddTask{Repo: repo},
		UpdateTask: UpdateTask{Repo: repo},
		DeleteTask: DeleteTask{Repo: repo},
	}
}
