package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/mytasks/internal/models"
)

// stubRepo hands back the exact channels it was given so forwarding is observable
type stubRepo struct {
	list  chan models.Result[[]models.Task]
	unit  chan models.Result[models.Unit]
	calls []string
	seen  models.Task
}

func (s *stubRepo) GetTasks(context.Context) <-chan models.Result[[]models.Task] {
	s.calls = append(s.calls, "get")
	return s.list
}

func (s *stubRepo) AddTask(_ context.Context, t models.Task) <-chan models.Result[models.Unit] {
	s.calls = append(s.calls, "add")
	s.seen = t
	return s.unit
}

func (s *stubRepo) UpdateTask(_ context.Context, t models.Task) <-chan models.Result[models.Unit] {
	s.calls = append(s.calls, "update")
	s.seen = t
	return s.unit
}

func (s *stubRepo) DeleteTask(_ context.Context, t models.Task) <-chan models.Result[models.Unit] {
	s.calls = append(s.calls, "delete")
	s.seen = t
	return s.unit
}

func (s *stubRepo) CreateTask(_ context.Context, t models.Task) <-chan models.Result[int64] {
	s.calls = append(s.calls, "create")
	s.seen = t
	out := make(chan models.Result[int64], 1)
	out <- models.Failure[int64](models.DatabaseWriteError)
	close(out)
	return out
}

func TestCreateTask_ForwardsUnchanged(t *testing.T) {
	repo := &stubRepo{}
	task := models.Task{Title: "x"}

	got := <-CreateTask{Repo: repo}.Invoke(context.Background(), task)

	assert.Equal(t, models.DatabaseWriteError, got.Error())
	assert.Equal(t, []string{"create"}, repo.calls)
	assert.Equal(t, task, repo.seen)
}

func TestSet_ForwardsUnchanged(t *testing.T) {
	repo := &stubRepo{
		list: make(chan models.Result[[]models.Task], 1),
		unit: make(chan models.Result[models.Unit], 1),
	}
	set := NewSet(repo)
	ctx := context.Background()
	task := models.Task{ID: 3, Title: "x"}

	repo.unit <- models.Failure[models.Unit](models.DiskFull)

	assert.Equal(t, (<-chan models.Result[[]models.Task])(repo.list), set.GetTasks.Invoke(ctx))
	got := <-set.AddTask.Invoke(ctx, task)
	assert.Equal(t, models.DiskFull, got.Error(), "errors are not remapped")
	assert.Equal(t, task, repo.seen)

	set.UpdateTask.Invoke(ctx, task)
	set.DeleteTask.Invoke(ctx, task)

	assert.Equal(t, []string{"get", "add", "update", "delete"}, repo.calls)
}
