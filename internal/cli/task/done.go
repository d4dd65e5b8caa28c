package task

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/mytasks/internal/cli"
)

// DoneCmd returns the task done subcommand
func DoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <task_id>",
		Short: "Mark a task as completed",
		Long: `Mark a task as completed, or as pending again with --undo.

Examples:
  mytasks task done 42
  mytasks task done 42 --undo --quiet
`,
		Args: cobra.ExactArgs(1),
		RunE: runDone,
	}

	cmd.Flags().Bool("undo", false, "Mark the task as not completed")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDone(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	undo, _ := cmd.Flags().GetBool("undo")

	cliInstance, closeCLI, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeCLI()

	task, err := lookupTask(ctx, cliInstance, formatter, args[0])
	if err != nil {
		return err
	}

	task.Completed = !undo
	if err := reportWrite(ctx, formatter, task, cliInstance.App.UseCases.UpdateTask.Invoke(ctx, task)); err != nil {
		return err
	}

	return formatter.Success(task)
}
