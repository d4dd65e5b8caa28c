package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/mytasks/internal/app"
	"github.com/thenoetrevino/mytasks/internal/models"
)

// ErrTaskNotFound is returned when no task has the requested id
var ErrTaskNotFound = errors.New("task not found")

// ParseDueDate parses the --due flag
func ParseDueDate(value string) (time.Time, error) {
	return models.ParseDueDate(value)
}

// ParseTaskID parses a positional task id
func ParseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// ReadDescription returns value, or all of stdin when value is "-"
func ReadDescription(cmd *cobra.Command, value string) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read description from stdin: %w", err)
	}
	return string(data), nil
}

// LoadTasks reads the current task list
func LoadTasks(ctx context.Context, a *app.App) ([]models.Task, models.DataError) {
	return a.Tasks(ctx)
}

// FindTask looks up one task by id
func FindTask(ctx context.Context, a *app.App, id int64) (models.Task, error) {
	task, found, dataErr := a.FindTask(ctx, id)
	if dataErr != nil {
		return models.Task{}, dataErr
	}
	if !found {
		return models.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	return task, nil
}

// Await returns the single outcome of a mutation stream. A stream closed
// without a value means ctx was cancelled.
func Await[T any](ctx context.Context, stream <-chan models.Result[T]) (models.Result[T], error) {
	select {
	case res, ok := <-stream:
		if !ok {
			if err := context.Cause(ctx); err != nil {
				return models.Result[T]{}, err
			}
			return models.Result[T]{}, context.Canceled
		}
		return res, nil
	case <-ctx.Done():
		return models.Result[T]{}, ctx.Err()
	}
}
