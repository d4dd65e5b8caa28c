package task

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/mytasks/internal/cli"
	"github.com/thenoetrevino/mytasks/internal/feature/taskform"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task_id>",
		Short: "Update a task",
		Long: `Update the fields of an existing task. Only the flags given are changed.

Examples:
  mytasks task update 42 --title "Buy oat milk"
  mytasks task update 42 --due "2026-11-02 09:30" --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description, - reads stdin")
	cmd.Flags().String("due", "", "New due date, YYYY-MM-DD or YYYY-MM-DD HH:MM")
	cmd.Flags().Bool("completed", false, "Completion flag")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	flags := cmd.Flags()

	if !flags.Changed("title") && !flags.Changed("description") &&
		!flags.Changed("due") && !flags.Changed("completed") {
		return formatter.Fail(cli.ExitUsage, "NO_CHANGES", errors.New("nothing to update"),
			"Pass at least one of --title, --description, --due, --completed")
	}

	cliInstance, closeCLI, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeCLI()

	task, err := lookupTask(ctx, cliInstance, formatter, args[0])
	if err != nil {
		return err
	}

	if flags.Changed("title") {
		task.Title, _ = flags.GetString("title")
	}
	if flags.Changed("description") {
		value, _ := flags.GetString("description")
		if task.Description, err = cli.ReadDescription(cmd, value); err != nil {
			return formatter.Fail(cli.ExitDataErr, "STDIN_READ_ERROR", err, "")
		}
	}
	if flags.Changed("due") {
		value, _ := flags.GetString("due")
		if task.DueDate, err = cli.ParseDueDate(value); err != nil {
			return formatter.Fail(cli.ExitDataErr, "INVALID_DUE_DATE", err, "")
		}
	}
	if flags.Changed("completed") {
		task.Completed, _ = flags.GetBool("completed")
	}

	form := taskform.State{ID: task.ID, Title: task.Title, Description: task.Description, DueDate: task.DueDate, Completed: task.Completed}
	if text, ok := taskform.Validate(form); !ok {
		return formatter.Fail(cli.ExitValidation, "VALIDATION_ERROR", errors.New(text.Resolve()), "")
	}

	if err := reportWrite(ctx, formatter, task, cliInstance.App.UseCases.UpdateTask.Invoke(ctx, task)); err != nil {
		return err
	}

	return formatter.Success(task)
}
