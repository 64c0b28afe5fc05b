package preflight

import (
	"context"
	"path/filepath"
	"strings"

	"backdate/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config. The
// root argument names the tree an upcoming run will scan; pass an empty
// string to skip the target check when no run is planned.
func RunAll(ctx context.Context, cfg *config.Config, root string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if strings.TrimSpace(root) != "" {
		results = append(results, CheckDirectoryAccess("Target directory", root))
	}

	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	if cfg.History.Enabled {
		results = append(results, CheckDirectoryAccess("History directory", filepath.Dir(cfg.Paths.HistoryDB)))
	}

	for _, status := range CheckSystemDeps(ctx, cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Detail}
		if !result.Passed && result.Detail == "" {
			result.Detail = "unavailable"
		}
		results = append(results, result)
	}

	return results
}

// Failed filters results down to the checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}
