package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"backdate/internal/config"
	"backdate/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [DIRECTORY]",
		Short: "Check configuration, directories, and external tools",
		Long: `Doctor runs the same checks a reconciliation run performs before touching
any files. Pass a directory to also verify access to a target tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			root := ""
			if len(args) == 1 {
				// Expand only; a missing directory should surface as a
				// failed check, not abort the diagnosis.
				root, err = config.ExpandPath(strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Log directory", statusInfo, cfg.Paths.LogDir, colorize))
			historyKind := statusInfo
			historyDetail := cfg.Paths.HistoryDB
			if !cfg.History.Enabled {
				historyKind = statusWarn
				historyDetail = "recording disabled"
			}
			fmt.Fprintln(out, renderStatusLine("Run history", historyKind, historyDetail, colorize))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Checks", colorize) {
				fmt.Fprintln(out, line)
			}
			results := preflight.RunAll(cmd.Context(), cfg, root)
			for _, res := range results {
				kind := statusOK
				if !res.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(res.Name, kind, res.Detail, colorize))
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d check(s) failed", len(failed))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
