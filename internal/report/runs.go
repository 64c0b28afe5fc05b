package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"backdate/internal/reconcile"
)

const runColumns = "id, root, started_at, finished_at, dry_run, workers, found, updated, skipped_has_date, skipped_missing_media, skipped_missing_timestamp, errors"

const fileColumns = "run_id, sidecar_path, media_path, outcome, error_message"

// SaveRun records a completed run and its reviewable file rows in one
// transaction.
func (s *Store) SaveRun(ctx context.Context, run RunRecord, files []FileRecord) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id is empty")
	}
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		return s.saveRunOnce(ctx, run, files)
	})
}

func (s *Store) saveRunOnce(ctx context.Context, run RunRecord, files []FileRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (`+runColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Root,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		boolToInt(run.DryRun),
		run.Workers,
		run.Counts.Found,
		run.Counts.Updated,
		run.Counts.SkippedHasDate,
		run.Counts.SkippedMissingMedia,
		run.Counts.SkippedMissingTimestamp,
		run.Counts.Errors,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, file := range files {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO run_files (run_id, sidecar_path, media_path, outcome, error_message)
             VALUES (?, ?, ?, ?, ?)`,
			run.ID,
			file.SidecarPath,
			nullableString(file.MediaPath),
			file.Outcome,
			nullableString(file.ErrorMessage),
		); err != nil {
			return fmt.Errorf("insert run file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns recorded runs newest first. A limit of zero or less
// returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// FindRun resolves a run by full ID or unique-enough prefix. When several
// runs share the prefix the newest wins. Returns nil without error when
// nothing matches.
func (s *Store) FindRun(ctx context.Context, id string) (*RunRecord, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ORDER BY started_at DESC LIMIT 1`,
		trimmed,
		trimmed+"%",
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find run: %w", err)
	}
	return run, nil
}

// RunFiles returns the reviewable file rows for a run in insertion order.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT `+fileColumns+` FROM run_files WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list run files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

// Clear removes all recorded runs. File rows cascade.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*RunRecord, error) {
	var (
		id               string
		root             string
		startedRaw       string
		finishedRaw      string
		dryRun           sql.NullInt64
		workers          sql.NullInt64
		found            int64
		updated          int64
		hasDate          int64
		missingMedia     int64
		missingTimestamp int64
		errorCount       int64
	)

	if err := scanner.Scan(
		&id,
		&root,
		&startedRaw,
		&finishedRaw,
		&dryRun,
		&workers,
		&found,
		&updated,
		&hasDate,
		&missingMedia,
		&missingTimestamp,
		&errorCount,
	); err != nil {
		return nil, err
	}

	run := &RunRecord{
		ID:      id,
		Root:    root,
		DryRun:  dryRun.Valid && dryRun.Int64 != 0,
		Workers: int(workers.Int64),
		Counts: reconcile.Counts{
			Found:                   found,
			Updated:                 updated,
			SkippedHasDate:          hasDate,
			SkippedMissingMedia:     missingMedia,
			SkippedMissingTimestamp: missingTimestamp,
			Errors:                  errorCount,
		},
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finished, err := parseTimeString(finishedRaw); err == nil {
		run.FinishedAt = finished
	}
	return run, nil
}

func scanFile(scanner interface{ Scan(dest ...any) error }) (FileRecord, error) {
	var (
		runID        string
		sidecarPath  string
		mediaPath    sql.NullString
		outcome      string
		errorMessage sql.NullString
	)
	if err := scanner.Scan(&runID, &sidecarPath, &mediaPath, &outcome, &errorMessage); err != nil {
		return FileRecord{}, err
	}
	return FileRecord{
		RunID:        runID,
		SidecarPath:  sidecarPath,
		MediaPath:    mediaPath.String,
		Outcome:      outcome,
		ErrorMessage: errorMessage.String,
	}, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
