package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/faizmokh/jejak/internal/config"
	"github.com/faizmokh/jejak/internal/jira"
	"github.com/faizmokh/jejak/internal/org"
	"github.com/faizmokh/jejak/internal/report"
	"github.com/faizmokh/jejak/internal/timeline"
)

type runOptions struct {
	configPath  string
	verbose     bool
	queryRemote bool
	sendData    bool
}

func newSyncCommand(ctx context.Context) *cobra.Command {
	var (
		dontSend   bool
		dontQuery  bool
		verbose    bool
		configFlag string
	)

	cmd := &cobra.Command{
		Use:   "sync <from..to> [<from..to> ...]",
		Short: "Send unsynchronized clocked time to the tracker and print totals.",
		Long: "sync walks the configured org files, matches clocked time against the " +
			"requested date intervals (YYYY-MM-DD..YYYY-MM-DD, end day exclusive), and " +
			"creates a tracker work-log for every matched interval not already present.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(ctx, cmd, args, runOptions{
				configPath:  configFlag,
				verbose:     verbose,
				queryRemote: !dontQuery,
				sendData:    !dontSend,
			})
		},
	}

	cmd.Flags().BoolVar(&dontSend, "dont-send", false, "Do not create work-logs on the tracker")
	cmd.Flags().BoolVar(&dontQuery, "dont-query", false, "Skip the remote duplicate check (duplicate writes become possible)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log matching and resolution steps")
	cmd.Flags().StringVar(&configFlag, "config", "", "Path to the settings file (default: ~/.jejak/config.toml)")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, args []string, opts runOptions) error {
	windows, err := timeline.ParseIntervals(args)
	if err != nil {
		return err
	}

	path, err := config.ResolvePath(opts.configPath)
	if err != nil {
		return err
	}
	settings, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := settings.ValidateFiles(); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	logger.Debug("settings loaded",
		"config", path,
		"server", settings.Server,
		"project_keys", settings.ProjectKeys,
		"org_files", settings.OrgFiles,
	)

	var tracker timeline.Tracker
	if opts.queryRemote || opts.sendData {
		if err := settings.ValidateRemote(); err != nil {
			return err
		}
		client := jira.NewClient(settings.Server, settings.Email, settings.Token)
		tracker = client

		// Without configured project keys, fall back to the keys the
		// server knows about.
		if len(settings.ProjectKeys) == 0 && opts.queryRemote {
			keys, err := client.Projects(ctx)
			if err != nil {
				return err
			}
			logger.Debug("project keys fetched from tracker", "keys", keys)
			if err := settings.SetProjectKeys(keys); err != nil {
				return err
			}
		}
	}

	roots := make([]*org.Node, 0, len(settings.OrgFiles))
	for _, file := range settings.OrgFiles {
		root, err := org.LoadFile(file)
		if err != nil {
			return err
		}
		roots = append(roots, root)
	}

	resolver := timeline.NewResolver(settings.ProjectPatterns, settings.Tags, logger)
	gate := timeline.NewGate(tracker, opts.queryRemote, opts.sendData, logger)
	engine := timeline.NewEngine(resolver, gate, logger)

	summary, err := engine.Run(ctx, roots, windows)
	if err != nil {
		return err
	}

	report.Render(cmd.OutOrStdout(), summary)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
