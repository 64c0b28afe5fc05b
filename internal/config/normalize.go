package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExiftool()
	c.normalizeReconcile()
	c.normalizeLogging()
	c.normalizeWatch()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDBPath()
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeExiftool() {
	c.Exiftool.Binary = strings.TrimSpace(c.Exiftool.Binary)
	if c.Exiftool.Binary == "" {
		if value, ok := os.LookupEnv("BACKDATE_EXIFTOOL"); ok {
			c.Exiftool.Binary = strings.TrimSpace(value)
		}
	}
	if c.Exiftool.Binary == "" {
		c.Exiftool.Binary = defaultExiftoolBinary
	}
	if c.Exiftool.TimeoutSeconds <= 0 {
		c.Exiftool.TimeoutSeconds = defaultExiftoolTimeoutSeconds
	}
}

func (c *Config) normalizeReconcile() {
	if c.Reconcile.Workers < 0 {
		c.Reconcile.Workers = 0
	}
	c.Reconcile.LockFile = strings.TrimSpace(c.Reconcile.LockFile)
	if c.Reconcile.LockFile == "" {
		c.Reconcile.LockFile = defaultLockFileName
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func (c *Config) normalizeWatch() {
	if c.Watch.DebounceSeconds <= 0 {
		c.Watch.DebounceSeconds = defaultWatchDebounceSeconds
	}
}
