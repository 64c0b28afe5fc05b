package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"backdate/internal/runner"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var workers int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run DIRECTORY",
		Short: "Reconcile metadata sidecars with their media files",
		Long: `Run scans DIRECTORY for takeout metadata sidecars, matches each one to
its media file, and writes the sidecar's capture timestamp into files that
do not already carry an embedded date. Item failures are reported and
counted; they never abort the run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := resolveDirectory(args[0])
			if err != nil {
				return err
			}

			store, err := ctx.openHistory()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warn: run history unavailable: %v\n", err)
			}
			if store != nil {
				defer store.Close()
			}

			r, err := runner.New(cfg, store)
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			record, err := r.Execute(signalCtx, runner.Options{Root: root, Workers: workers, DryRun: dryRun})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s finished in %s\n", shortRunID(record.ID), formatDuration(record.Duration()))
			fmt.Fprintln(out, renderTable(
				[]string{"Result", "Count"},
				buildSummaryRows(record.Counts),
				[]columnAlignment{alignLeft, alignRight},
			))
			if record.DryRun {
				fmt.Fprintln(out, "Dry run: no files were modified")
			}
			if record.Counts.Errors > 0 {
				fmt.Fprintf(out, "Completed with %d error(s); see the run log for details\n", record.Counts.Errors)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker pool size (0 selects one per CPU)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	return cmd
}
