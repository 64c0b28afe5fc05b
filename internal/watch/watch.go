package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"backdate/internal/config"
	"backdate/internal/logging"
	"backdate/internal/sidecar"
)

// RunFunc executes one reconciliation pass over the watched tree.
type RunFunc func(ctx context.Context) error

// Service watches a directory tree for new metadata sidecars and triggers a
// reconciliation pass once each burst of filesystem activity settles. Pass
// failures are logged and the service keeps watching; only a dead context
// stops it.
type Service struct {
	root     string
	runFn    RunFunc
	logger   *slog.Logger
	debounce time.Duration

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	watching map[string]bool
}

// NewService creates a watcher over root that invokes runFn after sidecar
// activity settles. The debounce interval comes from cfg.Watch.
func NewService(root string, runFn RunFunc, cfg *config.Config, logger *slog.Logger) *Service {
	debounce := 5 * time.Second
	if cfg != nil && cfg.Watch.DebounceSeconds > 0 {
		debounce = time.Duration(cfg.Watch.DebounceSeconds) * time.Second
	}
	return &Service{
		root:     root,
		runFn:    runFn,
		logger:   logging.NewComponentLogger(logger, "watch"),
		debounce: debounce,
		watching: make(map[string]bool),
	}
}

// SetDebounce overrides the configured debounce interval (for testing).
func (s *Service) SetDebounce(d time.Duration) {
	s.debounce = d
}

// Start blocks until ctx is canceled. It watches the tree, performs one
// initial pass, then re-runs after each settled burst of activity.
func (s *Service) Start(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create filesystem watcher: %w", err)
	}
	defer w.Close()

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()

	if err := s.watchTree(s.root); err != nil {
		return err
	}

	s.logger.Info("watching for new sidecars", logging.String("root", s.root))

	// Initial pass so files already present are reconciled before the first
	// event arrives. Watches are established beforehand; events raised
	// during the pass queue up and are handled by the loop.
	if err := s.runFn(ctx); err != nil {
		s.logger.Error("initial pass failed", logging.Error(err))
	}

	// Debounce timer for coalescing events into a single pass. Starts
	// stopped; reset on each relevant event.
	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}
	runPending := false

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("watcher stopping")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				s.forgetDir(ev.Name)
			}
			if s.relevant(ev) {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
				debounceTimer.Reset(s.debounce)
				runPending = true
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watch error", logging.Error(err))

		case <-debounceTimer.C:
			if runPending {
				runPending = false
				s.logger.Info("activity settled, starting pass")
				if err := s.runFn(ctx); err != nil {
					s.logger.Error("triggered pass failed", logging.Error(err))
				}
			}
		}
	}
}

// relevant reports whether an event should schedule a pass. New or rewritten
// sidecars count, as do new directories; everything else is extraction noise.
// Writes to media files in particular must not count, or the tool's own
// timestamp updates would re-trigger the watcher.
func (s *Service) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	if strings.HasSuffix(ev.Name, sidecar.Suffix) {
		return true
	}
	if ev.Has(fsnotify.Create) {
		info, err := os.Stat(ev.Name)
		if err != nil || !info.IsDir() {
			return false
		}
		// Watch the new directory, and schedule a pass: files may have
		// landed inside it before the watch was in place.
		if err := s.watchTree(ev.Name); err != nil {
			s.logger.Warn("failed to watch new directory",
				logging.String("path", ev.Name),
				logging.Error(err))
		}
		return true
	}
	return false
}

// watchTree adds watches for dir and every directory below it.
func (s *Service) watchTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return s.watchDir(path)
	})
}

func (s *Service) watchDir(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watching[path] {
		return nil
	}
	if err := s.watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	s.watching[path] = true
	s.logger.Debug("watching directory", logging.String("path", path))
	return nil
}

// forgetDir drops bookkeeping for a removed directory so a later recreation
// at the same path is watched again. The kernel already dropped the watch
// itself when the directory went away.
func (s *Service) forgetDir(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.watching[path] {
		return
	}
	delete(s.watching, path)
	prefix := path + string(filepath.Separator)
	for p := range s.watching {
		if strings.HasPrefix(p, prefix) {
			delete(s.watching, p)
		}
	}
}
