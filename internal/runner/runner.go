package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"backdate/internal/config"
	"backdate/internal/exiftool"
	"backdate/internal/logging"
	"backdate/internal/preflight"
	"backdate/internal/probe"
	"backdate/internal/reconcile"
	"backdate/internal/report"
	"backdate/internal/scan"
)

// Options configures a single reconciliation pass.
type Options struct {
	// Root is the tree to scan. Required.
	Root string
	// Workers overrides the configured worker count when positive.
	Workers int
	// DryRun probes and plans but never writes.
	DryRun bool
}

// Runner executes reconciliation passes over target trees.
type Runner struct {
	cfg   *config.Config
	store *report.Store
}

// New constructs a runner. The store may be nil when history is disabled.
func New(cfg *config.Config, store *report.Store) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("runner requires config")
	}
	return &Runner{cfg: cfg, store: store}, nil
}

// Execute performs one complete run over opts.Root and returns its record.
// The returned record carries whatever counters accumulated even when the
// run aborts early.
func (r *Runner) Execute(ctx context.Context, opts Options) (report.RunRecord, error) {
	root, err := resolveRoot(opts.Root)
	if err != nil {
		return report.RunRecord{}, err
	}

	runID := uuid.New().String()
	logger, err := logging.NewFromConfig(r.cfg, runID)
	if err != nil {
		return report.RunRecord{}, fmt.Errorf("build logger: %w", err)
	}
	runLog := logging.NewComponentLogger(logger, "run")

	logging.CleanupOldLogs(logger, r.cfg.Logging.RetentionDays, logging.RetentionTarget{
		Dir:     r.cfg.Paths.LogDir,
		Pattern: "backdate-*.log",
		Exclude: []string{logging.RunLogPath(r.cfg.Paths.LogDir, runID)},
	})

	if failed := preflight.Failed(preflight.RunAll(ctx, r.cfg, root)); len(failed) > 0 {
		for _, check := range failed {
			runLog.Error("preflight check failed",
				logging.String("check", check.Name),
				logging.String("detail", check.Detail),
			)
		}
		return report.RunRecord{}, fmt.Errorf("preflight: %d check(s) failed", len(failed))
	}

	lock := flock.New(filepath.Join(root, r.cfg.Reconcile.LockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return report.RunRecord{}, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return report.RunRecord{}, fmt.Errorf("another run is already active in %s", root)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			runLog.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	runLog.Info("run started",
		logging.String("run_id", runID),
		logging.String("root", root),
		logging.Bool("dry_run", opts.DryRun),
	)

	paths, err := scan.Collect(root, logging.NewComponentLogger(logger, "scan"))
	if err != nil {
		return report.RunRecord{}, err
	}
	plan := reconcile.NewPlan(paths)
	runLog.Info("scan complete",
		logging.Int("sidecars", plan.Size()),
		logging.Int("settled", len(plan.Settled)),
	)

	client := exiftool.New(r.cfg.Exiftool.Binary, r.cfg.Exiftool.TimeoutSeconds)
	var writer reconcile.Writer = client
	if opts.DryRun {
		runLog.Info("dry run: no files will be modified")
		writer = reconcile.NopWriter{}
	}
	worker := &reconcile.Worker{
		Prober: probe.NewSelector(client),
		Writer: writer,
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = r.cfg.Reconcile.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	itemLog := logging.NewComponentLogger(logger, "reconcile")
	var files []report.FileRecord
	pool := &reconcile.Pool{
		Workers:   workers,
		Processor: worker,
		OnResult: func(res reconcile.Result) {
			logResult(itemLog, res)
			if report.Persistable(res.Outcome) {
				files = append(files, report.FileRecordFor(runID, res))
			}
		},
	}

	started := time.Now().UTC()
	counts, runErr := pool.Run(ctx, plan)
	finished := time.Now().UTC()

	record := report.RunRecord{
		ID:         runID,
		Root:       root,
		StartedAt:  started,
		FinishedAt: finished,
		DryRun:     opts.DryRun,
		Workers:    workers,
		Counts:     counts,
	}

	if runErr != nil {
		runLog.Error("run aborted", logging.Error(runErr))
		return record, fmt.Errorf("run aborted: %w", runErr)
	}

	runLog.Info("run complete",
		logging.String("run_id", runID),
		logging.Duration("elapsed", record.Duration()),
		logging.Group("summary",
			logging.Int64("found", counts.Found),
			logging.Int64("updated", counts.Updated),
			logging.Int64("skipped", counts.Skipped()),
			logging.Int64("errors", counts.Errors),
		),
	)

	if r.store != nil {
		if err := r.store.SaveRun(ctx, record, files); err != nil {
			runLog.Warn("failed to record run history", logging.Error(err))
		}
	}

	return record, nil
}

func resolveRoot(root string) (string, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return "", errors.New("target directory is required")
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve target path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("target directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("target path %s is not a directory", abs)
	}
	return abs, nil
}

func logResult(logger *slog.Logger, res reconcile.Result) {
	switch res.Outcome {
	case reconcile.OutcomeUpdated:
		logger.Info("timestamp written", logging.String("media", res.Item.MediaPath))
	case reconcile.OutcomeSkippedHasDate:
		logger.Debug("capture date already present", logging.String("media", res.Item.MediaPath))
	case reconcile.OutcomeSkippedMissingMedia:
		logger.Warn("media file missing", logging.String("sidecar", res.Item.SidecarPath))
	case reconcile.OutcomeSkippedMissingTimestamp:
		logger.Warn("sidecar lacks a usable timestamp", logging.String("sidecar", res.Item.SidecarPath))
	case reconcile.OutcomeError:
		logger.Error("item failed",
			logging.String("sidecar", res.Item.SidecarPath),
			logging.String("class", reconcile.Class(res.Err)),
			logging.Error(res.Err),
		)
	}
}
