package main

import (
	"path/filepath"
	"testing"
)

func TestWatchCommandMissingDirectory(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"watch", filepath.Join(t.TempDir(), "gone")}, env.configPath)
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
	requireContains(t, err.Error(), "does not exist")
}
