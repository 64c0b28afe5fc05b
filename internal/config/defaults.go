package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultLogDir                 = "~/.local/share/backdate/logs"
	defaultLogRetentionDays       = 30
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultExiftoolBinary         = "exiftool"
	defaultExiftoolTimeoutSeconds = 300
	defaultLockFileName           = ".backdate.lock"
	defaultWatchDebounceSeconds   = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDBPath(),
		},
		Exiftool: Exiftool{
			Binary:         defaultExiftoolBinary,
			TimeoutSeconds: defaultExiftoolTimeoutSeconds,
		},
		Reconcile: Reconcile{
			Workers:  0,
			LockFile: defaultLockFileName,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		History: History{
			Enabled: true,
		},
		Watch: Watch{
			DebounceSeconds: defaultWatchDebounceSeconds,
		},
	}
}

func defaultHistoryDBPath() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "backdate", "history.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.local/share/backdate/history.db"
	}
	return filepath.Join(home, ".local", "share", "backdate", "history.db")
}
