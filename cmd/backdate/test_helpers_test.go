package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"backdate/internal/config"
	"backdate/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	argLog     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	argLog := filepath.Join(base, "exiftool-args.log")
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedExiftool(exiftoolStubScript(argLog)))

	configPath := filepath.Join(homeDir, ".config", "backdate", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, argLog: argLog}
}

// exiftoolStubScript answers version probes and appends every other
// invocation's arguments to argLog.
func exiftoolStubScript(argLog string) string {
	return fmt.Sprintf("#!/bin/sh\nif [ \"$1\" = \"-ver\" ]; then\n  echo 13.10\n  exit 0\nfi\necho \"$@\" >> %q\nexit 0\n", argLog)
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
