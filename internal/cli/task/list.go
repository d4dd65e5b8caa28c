package task

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/mytasks/internal/cli"
	"github.com/thenoetrevino/mytasks/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  "List all tasks ordered by due date.",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cmd.Flags().Bool("pending", false, "Only show tasks that are not completed")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	pendingOnly, _ := cmd.Flags().GetBool("pending")

	cliInstance, closeCLI, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeCLI()

	tasks, dataErr := cli.LoadTasks(ctx, cliInstance.App)
	if dataErr != nil {
		return formatter.FailData(dataErr)
	}

	if pendingOnly {
		pending := make([]models.Task, 0, len(tasks))
		for _, t := range tasks {
			if !t.Completed {
				pending = append(pending, t)
			}
		}
		tasks = pending
	}

	return formatter.Success(tasks)
}
