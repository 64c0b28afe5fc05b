package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"backdate/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var limit int

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *report.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
					return nil
				}
				table := renderTable(
					[]string{"Run", "Started", "Duration", "Root", "Found", "Updated", "Skipped", "Errors", "Dry Run"},
					buildRunRows(runs),
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	reportCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")

	reportCmd.AddCommand(newReportShowCommand(ctx))
	reportCmd.AddCommand(newReportClearCommand(ctx))

	return reportCmd
}

func newReportShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN",
		Short: "Show one run in detail",
		Long: `Show displays a single recorded run: its settings, the outcome counters,
and the per-file rows recorded for updates and errors. RUN may be a full
run ID or a unique prefix of one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *report.Store) error {
				run, err := store.FindRun(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("no run matches %q", args[0])
				}
				files, err := store.RunFiles(cmd.Context(), run.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("Run "+shortRunID(run.ID), colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintf(out, "ID:       %s\n", run.ID)
				fmt.Fprintf(out, "Root:     %s\n", run.Root)
				fmt.Fprintf(out, "Started:  %s\n", run.StartedAt.Local().Format(time.RFC3339))
				fmt.Fprintf(out, "Duration: %s\n", formatDuration(run.Duration()))
				fmt.Fprintf(out, "Workers:  %d\n", run.Workers)
				fmt.Fprintf(out, "Dry run:  %s\n", yesNo(run.DryRun))
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable(
					[]string{"Result", "Count"},
					buildSummaryRows(run.Counts),
					[]columnAlignment{alignLeft, alignRight},
				))

				if len(files) == 0 {
					return nil
				}
				fmt.Fprintln(out)
				for _, line := range renderSectionHeader("Recorded Files", colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Outcome", "Path", "Detail"},
					buildFileRows(files),
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}

func newReportClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *report.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d run(s)\n", removed)
				return nil
			})
		},
	}
}
