package report

import (
	"time"

	"backdate/internal/reconcile"
)

// RunRecord captures one reconciliation run.
type RunRecord struct {
	ID         string
	Root       string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool
	Workers    int
	Counts     reconcile.Counts
}

// Duration reports how long the run took.
func (r RunRecord) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// FileRecord captures a single file outcome preserved for review.
type FileRecord struct {
	RunID        string
	SidecarPath  string
	MediaPath    string
	Outcome      string
	ErrorMessage string
}

// Persistable reports whether a result's outcome warrants a file row. Skips
// are summarized by the run counters alone.
func Persistable(outcome reconcile.Outcome) bool {
	return outcome == reconcile.OutcomeUpdated || outcome == reconcile.OutcomeError
}

// FileRecordFor converts a reconcile result into a row for the given run.
func FileRecordFor(runID string, result reconcile.Result) FileRecord {
	record := FileRecord{
		RunID:       runID,
		SidecarPath: result.Item.SidecarPath,
		MediaPath:   result.Item.MediaPath,
		Outcome:     result.Outcome.String(),
	}
	if result.Err != nil {
		record.ErrorMessage = result.Err.Error()
	}
	return record
}
