package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateReconcile(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	return ensurePositiveMap(map[string]int{
		"exiftool.timeout_seconds": c.Exiftool.TimeoutSeconds,
		"watch.debounce_seconds":   c.Watch.DebounceSeconds,
	})
}

func (c *Config) validateReconcile() error {
	if c.Reconcile.Workers < 0 {
		return errors.New("reconcile.workers must be >= 0 (0 selects one worker per CPU)")
	}
	if strings.ContainsAny(c.Reconcile.LockFile, "/\\") {
		return errors.New("reconcile.lock_file must be a bare file name, not a path")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && strings.TrimSpace(c.Paths.HistoryDB) == "" {
		return errors.New("paths.history_db must be set when history.enabled is true")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
