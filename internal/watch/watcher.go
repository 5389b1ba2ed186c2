// Package watch re-runs a callback when portfolio content or assets change.
// Events are collected and debounced so a burst of saves triggers one call.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ariel-frischer/folio/internal/content"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last event before the
// callback runs.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// ContentDir is watched recursively for Markdown and YAML files. Required.
	ContentDir string
	// AssetsDir is watched recursively for any file. Optional; skipped when
	// it does not exist.
	AssetsDir string
	Debounce  time.Duration
	Logger    *zap.Logger
}

// Stats counts watcher activity.
type Stats struct {
	Events        int
	Triggers      int
	Errors        int
	LastEventPath string
	LastEventType string
	LastEventTime time.Time
}

// Watcher watches the content and assets directories and calls onChange with
// the settled paths once events stop arriving for the debounce period.
// onChange always runs on the watcher's own goroutine, one call at a time.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	contentDir  string
	assetsDir   string
	debounceDur time.Duration
	logger      *zap.Logger
	onChange    func(paths []string)

	pending   map[string]struct{}
	lastEvent time.Time
	// dirs holds every directory added to the fsnotify watch.
	dirs map[string]struct{}

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
	stats   Stats
}

// New creates a Watcher. It does not start watching until Start is called.
func New(opts Options, onChange func(paths []string)) (*Watcher, error) {
	if opts.ContentDir == "" {
		return nil, errors.New("watch: content directory is required")
	}
	if onChange == nil {
		return nil, errors.New("watch: onChange callback is required")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		watcher:     fw,
		contentDir:  filepath.Clean(opts.ContentDir),
		assetsDir:   cleanOptional(opts.AssetsDir),
		debounceDur: debounce,
		logger:      logger,
		onChange:    onChange,
		pending:     make(map[string]struct{}),
		dirs:        make(map[string]struct{}),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start adds the watched directory trees and starts the event loop in a
// goroutine. It returns an error only if the content directory cannot be
// watched.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	if err := w.addTree(w.contentDir, false); err != nil {
		_ = w.watcher.Close()
		return fmt.Errorf("watching content directory: %w", err)
	}
	if w.assetsDir != "" {
		if _, err := os.Stat(w.assetsDir); err == nil {
			if err := w.addTree(w.assetsDir, false); err != nil {
				w.logger.Warn("failed to watch assets directory", zap.String("dir", w.assetsDir), zap.Error(err))
			}
		}
	}

	w.mu.Lock()
	w.running = true
	w.mu.Unlock()

	w.logger.Debug("watching for changes",
		zap.Strings("dirs", w.watcher.WatchList()),
		zap.Duration("debounce", w.debounceDur))

	go w.run(ctx)
	return nil
}

// Stop ends the event loop and waits for it to exit. It is safe to call
// after the context passed to Start was cancelled, and more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
}

// Done is closed when the event loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

// Stats returns a snapshot of the watcher counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("error closing file watcher", zap.Error(err))
		}
	}()

	ticker := time.NewTicker(tickInterval(w.debounceDur))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watch context cancelled")
			return

		case <-w.stopCh:
			w.logger.Debug("watch stop requested")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Remove != 0:
		eventType = "delete"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	default:
		return
	}

	if eventType == "create" {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name, true); err != nil {
				w.logger.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}

	// A removed or renamed directory only reports its own path, never the
	// files that went with it.
	if (eventType == "delete" || eventType == "rename") && w.forgetDir(event.Name) {
		w.logger.Debug("directory removed", zap.String("event", eventType), zap.String("path", event.Name))
		w.markPending(filepath.Clean(event.Name), eventType)
		return
	}

	if !w.Relevant(event.Name) {
		return
	}

	w.logger.Debug("content change", zap.String("event", eventType), zap.String("path", event.Name))
	w.markPending(event.Name, eventType)
}

func (w *Watcher) markPending(path, eventType string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	w.pending[path] = struct{}{}
	w.lastEvent = now
	w.stats.Events++
	w.stats.LastEventPath = path
	w.stats.LastEventType = eventType
	w.stats.LastEventTime = now
}

// flush calls onChange once the pending set has been quiet for the debounce
// period.
func (w *Watcher) flush() {
	w.mu.Lock()
	if len(w.pending) == 0 || time.Since(w.lastEvent) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.stats.Triggers++
	w.mu.Unlock()

	sort.Strings(paths)
	w.onChange(paths)
}

// addTree watches dir and every non-hidden directory below it. When
// markFiles is set, relevant files already present are marked pending; files
// written into a new directory before its watch was added are not missed.
func (w *Watcher) addTree(dir string, markFiles bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				return err
			}
			w.mu.Lock()
			w.dirs[filepath.Clean(path)] = struct{}{}
			w.mu.Unlock()
			return nil
		}
		if markFiles && w.Relevant(path) {
			w.markPending(path, "create")
		}
		return nil
	})
}

// forgetDir drops dir and everything below it from the watched set and
// reports whether dir was being watched.
func (w *Watcher) forgetDir(dir string) bool {
	dir = filepath.Clean(dir)
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.dirs[dir]; !ok {
		return false
	}
	for d := range w.dirs {
		if within(dir, d) {
			delete(w.dirs, d)
		}
	}
	return true
}

// Relevant reports whether a change to path should trigger revalidation:
// files under the content directory that belong to a content layout, and any
// file under the assets directory.
func (w *Watcher) Relevant(path string) bool {
	path = filepath.Clean(path)
	if isHidden(filepath.Base(path)) {
		return false
	}
	if w.assetsDir != "" && within(w.assetsDir, path) {
		return true
	}
	if !within(w.contentDir, path) {
		return false
	}
	rel, err := filepath.Rel(w.contentDir, path)
	if err != nil {
		return false
	}
	return content.MatchesAny(rel)
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// isHidden matches editor swap files and dot directories.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~")
}

func tickInterval(debounce time.Duration) time.Duration {
	interval := debounce / 3
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	return interval
}

func cleanOptional(dir string) string {
	if dir == "" {
		return ""
	}
	return filepath.Clean(dir)
}
