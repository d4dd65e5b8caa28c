// Package cmd assembles the mytasks command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/mytasks/internal/cli/task"
	"github.com/thenoetrevino/mytasks/internal/config"
	"github.com/thenoetrevino/mytasks/internal/launcher"
)

// NewRootCmd builds the command tree. Running it without a subcommand
// opens the terminal UI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mytasks",
		Short: "mytasks - a terminal task list",
		Long: `mytasks keeps a list of tasks in a local SQLite database.

Run it without arguments for the interactive UI, or use the task
subcommands from scripts. Start "mytasks daemon" to keep every open
window in sync.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return launcher.Launch(cmd.Context(), cfg)
		},
	}

	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(daemonCmd())

	return rootCmd
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.HTTPAddr
			}
			return launcher.Serve(cmd.Context(), cfg, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config http_addr)")
	return cmd
}

func daemonCmd() *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Relay change notifications between running instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return launcher.Daemon(cmd.Context(), cfg.SocketPath, metricsAddr)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve /debug/metrics and /healthz on this address")
	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
