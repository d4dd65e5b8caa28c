package task

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/mytasks/internal/cli"
	"github.com/thenoetrevino/mytasks/internal/feature/taskform"
)

// AddCmd returns the task add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		Long: `Create a new task.

Examples:
  # Task due now
  mytasks task add --title "Buy milk" --description "2 litres"

  # Description from stdin
  echo "long notes" | mytasks task add --title "Write report" --description - --due 2026-11-02

  # Capture the new id
  TASK_ID=$(mytasks task add --title "Call back" --description "re: invoice" --quiet)
`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}

	cmd.Flags().String("title", "", "Task title (required)")
	cmd.Flags().String("description", "", "Task description, - reads stdin (required)")
	cmd.Flags().String("due", "", "Due date, YYYY-MM-DD or YYYY-MM-DD HH:MM (default now)")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	title, _ := cmd.Flags().GetString("title")
	descFlag, _ := cmd.Flags().GetString("description")
	dueFlag, _ := cmd.Flags().GetString("due")

	description, err := cli.ReadDescription(cmd, descFlag)
	if err != nil {
		return formatter.Fail(cli.ExitDataErr, "STDIN_READ_ERROR", err, "")
	}

	due := time.Now()
	if dueFlag != "" {
		if due, err = cli.ParseDueDate(dueFlag); err != nil {
			return formatter.Fail(cli.ExitDataErr, "INVALID_DUE_DATE", err, "")
		}
	}

	form := taskform.State{Title: title, Description: description, DueDate: due}
	if text, ok := taskform.Validate(form); !ok {
		return formatter.Fail(cli.ExitValidation, "VALIDATION_ERROR", errors.New(text.Resolve()),
			"Pass a non-blank --title and --description")
	}

	cliInstance, closeCLI, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeCLI()

	task := form.Task()
	res, err := cli.Await(ctx, cliInstance.App.CreateTask.Invoke(ctx, task))
	if err != nil {
		return formatter.Fail(cli.ExitError, "CANCELLED", err, "")
	}
	if !res.IsSuccess() {
		return formatter.FailData(res.Error())
	}
	task.ID = res.Value()

	return formatter.Success(task)
}
