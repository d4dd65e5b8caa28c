package app

import (
	"context"

	"github.com/thenoetrevino/mytasks/internal/models"
)

// Tasks reads the current task list once through the GetTasks use case
func (a *App) Tasks(ctx context.Context) ([]models.Task, models.DataError) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	res, ok := <-a.UseCases.GetTasks.Invoke(ctx)
	if !ok {
		return nil, models.DatabaseReadError
	}
	if !res.IsSuccess() {
		return nil, res.Error()
	}
	return res.Value(), nil
}

// FindTask looks up one task by id. found is false when no row has that id.
func (a *App) FindTask(ctx context.Context, id int64) (task models.Task, found bool, err models.DataError) {
	tasks, err := a.Tasks(ctx)
	if err != nil {
		return models.Task{}, false, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, true, nil
		}
	}
	return models.Task{}, false, nil
}
