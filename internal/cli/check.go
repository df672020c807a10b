package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newCheckCommand(ctx context.Context) *cobra.Command {
	var (
		verbose    bool
		configFlag string
	)

	cmd := &cobra.Command{
		Use:   "check <from..to> [<from..to> ...]",
		Short: "Match and resolve clocked time without touching the tracker.",
		Long: "check runs the same traversal, matching, and issue resolution as sync " +
			"but never talks to the tracker, so the report shows no added time.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(ctx, cmd, args, runOptions{
				configPath:  configFlag,
				verbose:     verbose,
				queryRemote: false,
				sendData:    false,
			})
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log matching and resolution steps")
	cmd.Flags().StringVar(&configFlag, "config", "", "Path to the settings file (default: ~/.jejak/config.toml)")

	return cmd
}
