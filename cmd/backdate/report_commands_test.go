package main

import (
	"context"
	"testing"
	"time"

	"backdate/internal/reconcile"
	"backdate/internal/report"
	"backdate/internal/testsupport"
)

func seedRun(t *testing.T, env *cliTestEnv) report.RunRecord {
	t.Helper()
	store := testsupport.MustOpenStore(t, env.cfg)

	now := time.Now().UTC().Truncate(time.Second)
	run := report.RunRecord{
		ID:         "4f9d2c1e-5b1a-47ab-9c6f-1234567890ab",
		Root:       "/takeout/photos",
		StartedAt:  now.Add(-time.Minute),
		FinishedAt: now,
		Workers:    4,
		Counts:     reconcile.Counts{Found: 3, Updated: 2, SkippedHasDate: 1},
	}
	files := []report.FileRecord{
		{
			RunID:       run.ID,
			SidecarPath: "/takeout/photos/a.jpg.supplemental-metadata.json",
			MediaPath:   "/takeout/photos/a.jpg",
			Outcome:     "updated",
		},
	}
	if err := store.SaveRun(context.Background(), run, files); err != nil {
		t.Fatalf("seed run: %v", err)
	}
	return run
}

func TestReportListEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestReportListShowsRuns(t *testing.T) {
	env := setupCLITestEnv(t)
	seedRun(t, env)

	out, _, err := runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "4f9d2c1e")
	requireContains(t, out, "/takeout/photos")
}

func TestReportShowByPrefix(t *testing.T) {
	env := setupCLITestEnv(t)
	run := seedRun(t, env)

	out, _, err := runCLI(t, []string{"report", "show", "4f9d2c1e"}, env.configPath)
	if err != nil {
		t.Fatalf("report show: %v", err)
	}
	requireContains(t, out, run.ID)
	requireContains(t, out, "Updated")
	requireContains(t, out, "/takeout/photos/a.jpg")
}

func TestReportShowUnknownRun(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"report", "show", "ffffffff"}, env.configPath)
	if err == nil {
		t.Fatal("expected an error for an unknown run")
	}
	requireContains(t, err.Error(), "no run matches")
}

func TestReportClear(t *testing.T) {
	env := setupCLITestEnv(t)
	seedRun(t, env)

	out, _, err := runCLI(t, []string{"report", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("report clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 run(s)")

	out, _, err = runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report after clear: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}
