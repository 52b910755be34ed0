package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mkvnorm/internal/batch"
	"mkvnorm/internal/outcome"
	"mkvnorm/internal/remux"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var profileFlag string
	var showCommands bool
	var showTracks bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "plan [directory]",
		Short: "Show what run would change without writing anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := executeBatch(cmd, ctx, args, batchFlags{profile: profileFlag, dryRun: true})
			if err != nil && report == nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, planJSON(*report))
			}
			printReport(cmd, *report)
			cfg, _ := ctx.ensureConfig()
			out := cmd.OutOrStdout()
			for _, item := range report.Items {
				if item.Status != outcome.StatusPlanned {
					continue
				}
				if showTracks {
					fmt.Fprintf(out, "\n%s\n", item.Title)
					fmt.Fprintln(out, renderTracks(item))
				}
				if showCommands {
					fmt.Fprintln(out, remux.Result{Args: item.Args}.CommandLine(cfg.MKVMergeBinary()))
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "Content profile (series or movies)")
	cmd.Flags().BoolVar(&showCommands, "commands", false, "Print the mkvmerge command for each planned file")
	cmd.Flags().BoolVar(&showTracks, "tracks", false, "Print the resulting track layout for each planned file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func renderTracks(item batch.Item) string {
	rows := make([][]string, 0, len(item.Tracks))
	for _, t := range item.Tracks {
		source := fmt.Sprintf("#%d", t.SourceID)
		if t.IsSidecar() {
			source = t.SourcePath
		}
		flags := []string{}
		if t.Default {
			flags = append(flags, "default")
		}
		if t.Forced {
			flags = append(flags, "forced")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.ID),
			string(t.Kind),
			t.Lang(),
			t.Name,
			strings.Join(flags, ","),
			source,
		})
	}
	return renderTable(
		[]string{"ID", "Kind", "Lang", "Name", "Flags", "Source"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

type planTrackJSON struct {
	ID       int    `json:"id"`
	Kind     string `json:"kind"`
	Language string `json:"language"`
	Name     string `json:"name,omitempty"`
	Default  bool   `json:"default"`
	Forced   bool   `json:"forced,omitempty"`
	Source   string `json:"source,omitempty"`
}

type planItemJSON struct {
	Path     string          `json:"path"`
	Status   string          `json:"status"`
	Reason   string          `json:"reason,omitempty"`
	Title    string          `json:"title,omitempty"`
	Output   string          `json:"output,omitempty"`
	Args     []string        `json:"args,omitempty"`
	Tracks   []planTrackJSON `json:"tracks,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}

type planReportJSON struct {
	RunID   string          `json:"run_id"`
	Root    string          `json:"root"`
	Profile string          `json:"profile"`
	Summary outcome.Summary `json:"summary"`
	Items   []planItemJSON  `json:"items"`
}

func planJSON(report batch.Report) planReportJSON {
	out := planReportJSON{
		RunID:   report.RunID,
		Root:    report.Root,
		Profile: report.Profile.String(),
		Summary: report.Summary(),
		Items:   make([]planItemJSON, 0, len(report.Items)),
	}
	for _, item := range report.Items {
		entry := planItemJSON{
			Path:   item.Path,
			Status: string(item.Status),
			Reason: item.Reason,
			Title:  item.Title,
			Output: item.Output,
			Args:   item.Args,
		}
		for _, t := range item.Tracks {
			entry.Tracks = append(entry.Tracks, planTrackJSON{
				ID:       t.ID,
				Kind:     string(t.Kind),
				Language: t.Lang(),
				Name:     t.Name,
				Default:  t.Default,
				Forced:   t.Forced,
				Source:   t.SourcePath,
			})
		}
		for _, w := range item.Warnings {
			entry.Warnings = append(entry.Warnings, w.Error())
		}
		out.Items = append(out.Items, entry)
	}
	return out
}
