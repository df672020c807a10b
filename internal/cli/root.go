package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jejak/internal/version"
)

// NewRootCommand creates the top-level Cobra command hosting the subcommands.
func NewRootCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jejak",
		Short:         "Reconcile org-mode clock tables against a Jira work log.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newSyncCommand(ctx),
		newCheckCommand(ctx),
		newVersionCommand(),
	)

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
			return nil
		},
	}
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	cmd := NewRootCommand(ctx)
	return cmd.Execute()
}

// Main is a helper used by cmd/jejak/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
