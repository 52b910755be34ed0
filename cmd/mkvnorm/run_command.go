package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mkvnorm/internal/batch"
	"mkvnorm/internal/outcome"
	"mkvnorm/internal/preflight"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var profileFlag string
	var workers int
	var dryRun bool
	var skipChecks bool

	cmd := &cobra.Command{
		Use:   "run [directory]",
		Short: "Normalize every container under a directory",
		Long: "Probe each container, attach sidecar subtitles and audio, fix default\n" +
			"flags and labels, and write \"<name> (1).mkv\" beside the original.\n" +
			"Defaults to paths.library_dir when no directory is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := executeBatch(cmd, ctx, args, batchFlags{
				profile:    profileFlag,
				workers:    workers,
				dryRun:     dryRun,
				skipChecks: skipChecks,
			})
			if err != nil && report == nil {
				return err
			}
			printReport(cmd, *report)
			if err != nil {
				return err
			}
			if failed := report.Summary().Failed; failed > 0 {
				return fmt.Errorf("%d file(s) failed; see log for details", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "Content profile (series or movies)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Containers to process in parallel (default from config)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Plan only; do not invoke mkvmerge")
	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "Skip preflight checks")
	return cmd
}

type batchFlags struct {
	profile    string
	workers    int
	dryRun     bool
	skipChecks bool
}

// executeBatch runs the batch pipeline. A nil report means the run never started.
func executeBatch(cmd *cobra.Command, ctx *commandContext, args []string, flags batchFlags) (*batch.Report, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	root, err := ctx.resolveRoot(args)
	if err != nil {
		return nil, err
	}
	p, err := ctx.resolveProfile(flags.profile)
	if err != nil {
		return nil, err
	}
	if flags.workers > 0 {
		cfg.Batch.Workers = flags.workers
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !flags.dryRun && !flags.skipChecks {
		if failed := preflight.Failed(preflight.RunAll(signalCtx, cfg, root)); len(failed) > 0 {
			for _, f := range failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "preflight: %s: %s\n", f.Name, f.Detail)
			}
			return nil, errors.New("preflight checks failed; run `mkvnorm check` for details")
		}
	}

	logger, closer, err := ctx.newLogger(cmd)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	store, err := ctx.openHistory()
	if err != nil {
		return nil, err
	}
	if store != nil {
		defer store.Close()
	}

	runner, err := batch.FromConfig(cfg, recorder(store), flags.dryRun, logger)
	if err != nil {
		return nil, err
	}
	report, err := runner.Run(signalCtx, root, p)
	if err != nil && report.RunID == "" {
		return nil, err
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.ErrOrStderr(), "run interrupted; finished outputs were kept")
	}
	return &report, err
}

func printReport(cmd *cobra.Command, report batch.Report) {
	out := cmd.OutOrStdout()
	if len(report.Items) == 0 {
		fmt.Fprintf(out, "No containers found under %s\n", report.Root)
		return
	}

	rows := make([][]string, 0, len(report.Items))
	for _, item := range report.Items {
		rows = append(rows, []string{
			relativePath(report.Root, item.Path),
			string(item.Status),
			itemDetail(item),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"File", "Status", "Detail"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft}))

	s := report.Summary()
	fmt.Fprintf(out, "Run %s: %d file(s), %d remuxed, %d planned, %d skipped, %d failed in %s\n",
		shortID(report.RunID), s.Total, s.Remuxed, s.Planned, s.Skipped, s.Failed, formatDuration(report.Duration()))
}

func itemDetail(item batch.Item) string {
	switch item.Status {
	case outcome.StatusRemuxed, outcome.StatusPlanned:
		detail := item.Title
		if len(item.Warnings) > 0 {
			detail = fmt.Sprintf("%s (%d warning(s))", detail, len(item.Warnings))
		}
		return detail
	default:
		return truncate(item.Reason, 80)
	}
}
