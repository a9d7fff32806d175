package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/wordbook/internal/core/ports/driven"
	"github.com/custodia-labs/wordbook/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeNotifier = (*Watcher)(nil)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 250 * time.Millisecond

// ErrNoPaths is returned when the watcher has nothing to observe.
var ErrNoPaths = errors.New("no paths to watch")

// Config configures a Watcher.
type Config struct {
	// Paths are the files to observe. They need not exist yet,
	// but their directories must.
	Paths []string
	// Debounce is the quiet period after the last event before onChange runs.
	Debounce time.Duration
	// MaxPerSecond caps onChange calls. Zero means unlimited.
	MaxPerSecond int
}

// Watcher reports changes to a set of files.
type Watcher struct {
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
	limiter  *rate.Limiter
}

// New creates a watcher for the configured paths.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, ErrNoPaths
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(cfg.Paths)),
		debounce: cfg.Debounce,
		limiter:  rate.NewLimiter(rate.Inf, 1),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if cfg.MaxPerSecond > 0 {
		w.limiter = rate.NewLimiter(rate.Limit(cfg.MaxPerSecond), 1)
	}

	seenDirs := make(map[string]bool)
	for _, path := range cfg.Paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		w.files[absPath] = struct{}{}

		// Watch the directory so files created later (the WAL) are seen.
		if dir := filepath.Dir(absPath); !seenDirs[dir] {
			seenDirs[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}

	return w, nil
}

// Watch calls onChange after the watched files settle following a change.
// It blocks until ctx is cancelled and then returns ctx.Err().
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		logger.Debug("watch: observing %s", dir)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.limiter.Wait(ctx); err != nil {
				return ctx.Err()
			}
			logger.Debug("watch: change detected")
			onChange()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	absPath, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[absPath]
	return ok
}
