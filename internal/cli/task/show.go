package task

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/mytasks/internal/cli"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task_id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	cliInstance, closeCLI, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeCLI()

	task, err := lookupTask(cmd.Context(), cliInstance, formatter, args[0])
	if err != nil {
		return err
	}

	return formatter.Success(task)
}
