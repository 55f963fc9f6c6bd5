package watch

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period before a change triggers the action.
const DefaultDebounce = 250 * time.Millisecond

// Action is called after the watched files changed. The names of the files
// that changed since the previous call are passed in sorted order.
type Action func(ctx context.Context, changed []string) error

// Watcher observes a fixed set of files.
type Watcher struct {
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
	logger   zerolog.Logger
}

// New creates a watcher for files. Paths are made absolute.
func New(files ...string) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "nothing to watch")
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(files)),
		debounce: DefaultDebounce,
		logger:   logging.GetLogger("watch"),
	}
	seen := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPath, "cannot resolve %s", f)
		}
		w.files[abs] = struct{}{}
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	sort.Strings(w.dirs)
	return w, nil
}

// WithDebounce sets the quiet period. Zero or negative keeps the default.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Run blocks until ctx is done, calling action after each burst of changes.
// Errors returned by action are logged and watching continues. Run returns
// nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, action Action) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot create file watcher")
	}
	defer func() { _ = fsw.Close() }()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot watch %s", dir).WithDetail("dir", dir)
		}
		w.logger.Debug().Str("dir", dir).Msg("Watching directory")
	}

	var (
		timer   *time.Timer
		pending = make(map[string]struct{})
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stop()

	fire := func() <-chan time.Time {
		if timer == nil {
			return nil
		}
		return timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Trace().Str("file", event.Name).Str("op", event.Op.String()).Msg("Change observed")
			pending[event.Name] = struct{}{}
			stop()
			timer = time.NewTimer(w.debounce)

		case <-fire():
			timer = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			pending = make(map[string]struct{})

			w.logger.Debug().Strs("files", changed).Msg("Running action")
			if err := action(ctx, changed); err != nil {
				w.logger.Warn().Err(err).Msg("Watch action failed")
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	_, ok := w.files[filepath.Clean(event.Name)]
	return ok
}
