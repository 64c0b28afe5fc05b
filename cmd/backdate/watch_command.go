package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"backdate/internal/logging"
	"backdate/internal/runner"
	"backdate/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "watch DIRECTORY",
		Short: "Reconcile continuously as new sidecars appear",
		Long: `Watch performs an initial reconciliation pass over DIRECTORY, then keeps
watching it for new metadata sidecars. Each burst of filesystem activity is
debounced into a single follow-up pass, so a tree that grows while archives
are extracted is reconciled once the extraction settles. Interrupt with
Ctrl-C to stop.`,
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

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return err
			}

			svc := watch.NewService(root, func(runCtx context.Context) error {
				_, runErr := r.Execute(runCtx, runner.Options{Root: root, Workers: workers})
				return runErr
			}, cfg, logger)

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return svc.Start(signalCtx)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker pool size (0 selects one per CPU)")
	return cmd
}
