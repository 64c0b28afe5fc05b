package main

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"backdate/internal/reconcile"
	"backdate/internal/report"
)

func buildRunRows(runs []report.RunRecord) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortRunID(run.ID),
			run.StartedAt.Local().Format(time.RFC3339),
			formatDuration(run.Duration()),
			run.Root,
			strconv.FormatInt(run.Counts.Found, 10),
			strconv.FormatInt(run.Counts.Updated, 10),
			strconv.FormatInt(run.Counts.Skipped(), 10),
			strconv.FormatInt(run.Counts.Errors, 10),
			yesNo(run.DryRun),
		})
	}
	return rows
}

func buildFileRows(files []report.FileRecord) [][]string {
	rows := make([][]string, 0, len(files))
	for _, file := range files {
		path := file.MediaPath
		if path == "" {
			path = file.SidecarPath
		}
		rows = append(rows, []string{displayOutcome(file.Outcome), path, file.ErrorMessage})
	}
	return rows
}

func buildSummaryRows(counts reconcile.Counts) [][]string {
	return [][]string{
		{"Metadata files found", strconv.FormatInt(counts.Found, 10)},
		{"Media files updated", strconv.FormatInt(counts.Updated, 10)},
		{"Skipped (date already present)", strconv.FormatInt(counts.SkippedHasDate, 10)},
		{"Skipped (media file missing)", strconv.FormatInt(counts.SkippedMissingMedia, 10)},
		{"Skipped (no usable timestamp)", strconv.FormatInt(counts.SkippedMissingTimestamp, 10)},
		{"Errors", strconv.FormatInt(counts.Errors, 10)},
	}
}

// displayOutcome turns a stored outcome label into its table form, for
// example "skipped-has-date" into "Skipped Has Date".
func displayOutcome(label string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(label, "-", " "))
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Round(100 * time.Millisecond).String()
}
