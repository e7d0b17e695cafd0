package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the delay between the last change event and a re-check.
const DefaultDebounce = 250 * time.Millisecond

// Result is the outcome of one load and validation pass.
type Result struct {
	Config map[string]any
	Err    error
}

// Watcher re-loads and re-validates configuration files when they change.
type Watcher struct {
	paths    []string
	meta     Meta
	checker  *Checker
	logger   zerolog.Logger
	debounce time.Duration
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithWatchLogger sets the watcher logger.
func WithWatchLogger(logger zerolog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a watcher for paths. Files are merged in order and
// validated with checker against meta.
func NewWatcher(paths []string, meta Meta, checker *Checker, opts ...WatcherOption) *Watcher {
	if checker == nil {
		checker = NewChecker()
	}
	w := &Watcher{
		paths:    paths,
		meta:     meta,
		checker:  checker,
		logger:   zerolog.Nop(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Check performs a single load and validation pass.
func (w *Watcher) Check() Result {
	cfg, err := LoadAll(w.paths...)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Config: cfg, Err: w.checker.Validate(cfg, w.meta)}
}

// Run checks the files once, then again after every debounced write or
// create event, calling handle with each result. It blocks until ctx is
// cancelled.
func (w *Watcher) Run(ctx context.Context, handle func(Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors replace files on save, so the parent directories are watched
	// and events are filtered by name.
	targets := make(map[string]struct{}, len(w.paths))
	dirs := make(map[string]struct{})
	for _, path := range w.paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w.logger.Info().Int("files", len(targets)).Msg("Watching configuration files")
	handle(w.Check())

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, watched := targets[name]; !watched {
				continue
			}

			w.logger.Debug().
				Str("file", name).
				Str("op", event.Op.String()).
				Msg("Configuration file changed")

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C

		case <-timerCh:
			timer, timerCh = nil, nil
			handle(w.Check())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("Watcher error")
		}
	}
}
