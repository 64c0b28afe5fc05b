// Package scan discovers sidecar files under a directory tree.
package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"backdate/internal/logging"
	"backdate/internal/sidecar"
)

// Collect walks root and returns every sidecar path in WalkDir's lexical
// order, which keeps later duplicate resolution deterministic. Symlinks are
// not followed. Unreadable entries below the root are logged and skipped;
// only an unusable root fails the scan.
func Collect(root string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("scan root: %w", err)
			}
			logger.Warn("skipping unreadable entry", logging.String("path", path), logging.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if sidecar.IsSidecar(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
