// Package task holds the "mytasks task" subcommands
package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/mytasks/internal/cli"
	"github.com/thenoetrevino/mytasks/internal/models"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DoneCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// openCLI initializes the CLI, reporting a failure through formatter
func openCLI(cmd *cobra.Command, formatter *cli.OutputFormatter) (*cli.CLI, func(), error) {
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return nil, nil, formatter.Fail(cli.ExitError, "INITIALIZATION_ERROR", err, "")
	}
	closeFn := func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}
	return cliInstance, closeFn, nil
}

// lookupTask parses the positional id and loads the task it names
func lookupTask(ctx context.Context, cliInstance *cli.CLI, formatter *cli.OutputFormatter, arg string) (models.Task, error) {
	id, err := cli.ParseTaskID(arg)
	if err != nil {
		return models.Task{}, formatter.Fail(cli.ExitUsage, "INVALID_ID", err, "Task ids are positive integers")
	}

	task, err := cli.FindTask(ctx, cliInstance.App, id)
	if errors.Is(err, cli.ErrTaskNotFound) {
		return models.Task{}, formatter.Fail(cli.ExitNotFound, "TASK_NOT_FOUND",
			fmt.Errorf("task %d not found", id), "Use 'mytasks task list' to see available tasks")
	}
	var dataErr models.DataError
	if errors.As(err, &dataErr) {
		return models.Task{}, formatter.FailData(dataErr)
	}
	return task, err
}

// reportWrite turns the outcome of a mutation into the command result
func reportWrite(ctx context.Context, formatter *cli.OutputFormatter, task models.Task, stream <-chan models.Result[models.Unit]) error {
	res, err := cli.Await(ctx, stream)
	if err != nil {
		return formatter.Fail(cli.ExitError, "CANCELLED", err, "")
	}
	if !res.IsSuccess() {
		if cli.ExitCodeForDataError(res.Error()) == cli.ExitNotFound {
			return formatter.Fail(cli.ExitNotFound, "TASK_NOT_FOUND",
				fmt.Errorf("task %d not found", task.ID), "Use 'mytasks task list' to see available tasks")
		}
		return formatter.FailData(res.Error())
	}
	return nil
}
