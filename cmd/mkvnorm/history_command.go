package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mkvnorm/internal/history"
)

const historyRunScan = 500

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or the files of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				return errors.New("run history is disabled (history.enabled = false)")
			}
			defer store.Close()

			if len(args) == 0 {
				runs, err := store.Runs(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, runs)
				}
				printRuns(cmd, runs)
				return nil
			}

			run, err := findRun(cmd, store, args[0])
			if err != nil {
				return err
			}
			entries, err := store.Entries(cmd.Context(), run.ID, limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, entries)
			}
			printEntries(cmd, run, entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum rows to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// findRun resolves a full or abbreviated run id.
func findRun(cmd *cobra.Command, store *history.Store, id string) (history.Run, error) {
	id = strings.TrimSpace(id)
	runs, err := store.Runs(cmd.Context(), historyRunScan)
	if err != nil {
		return history.Run{}, err
	}
	var matches []history.Run
	for _, run := range runs {
		if run.ID == id {
			return run, nil
		}
		if strings.HasPrefix(run.ID, id) {
			matches = append(matches, run)
		}
	}
	switch len(matches) {
	case 0:
		return history.Run{}, fmt.Errorf("no run matches %q", id)
	case 1:
		return matches[0], nil
	default:
		return history.Run{}, fmt.Errorf("run id %q is ambiguous (%d matches)", id, len(matches))
	}
}

func printRuns(cmd *cobra.Command, runs []history.Run) {
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		finished := "running"
		if run.FinishedAt != nil {
			finished = formatDuration(run.FinishedAt.Sub(run.StartedAt))
		}
		rows = append(rows, []string{
			shortID(run.ID),
			humanize.Time(run.StartedAt),
			run.Profile,
			yesNo(run.DryRun),
			finished,
			run.Root,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Started", "Profile", "Dry Run", "Duration", "Root"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
}

func printEntries(cmd *cobra.Command, run history.Run, entries []history.Entry) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s, %s profile, started %s)\n",
		run.ID, run.Root, run.Profile, run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if len(entries) == 0 {
		fmt.Fprintln(out, "No files recorded")
		return
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		detail := e.Title
		if detail == "" {
			detail = truncate(e.Reason, 80)
		}
		rows = append(rows, []string{
			relativePath(run.Root, e.Path),
			string(e.Status),
			formatDuration(e.Duration),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Status", "Time", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
}
