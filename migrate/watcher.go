package migrate

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/causeway-db/causeway/errors"
	"github.com/causeway-db/causeway/logger"
)

// RunCallback is invoked after the scripts directory settles following a
// change. It receives a context cancelled when the watcher stops.
type RunCallback func(ctx context.Context)

// Watcher watches a scripts directory and triggers a migration run when its
// contents change. Used by the watch command as a development workflow:
// save a script, see it applied.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher

	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration

	// limiter caps run frequency; editors that write many files in quick
	// succession (or touch temp files) must not stack up runs.
	limiter *rate.Limiter

	callback RunCallback
	cancel   context.CancelFunc
	done     chan struct{}
	logger   *zap.SugaredLogger
}

// NewWatcher creates a watcher over the scripts directory.
func NewWatcher(dir string, callback RunCallback) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating fsnotify watcher")
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "watching scripts directory %s", dir)
	}

	return &Watcher{
		dir:            dir,
		watcher:        fsw,
		debouncePeriod: 500 * time.Millisecond, // Debounce rapid file changes
		limiter:        rate.NewLimiter(rate.Every(2*time.Second), 1),
		callback:       callback,
		done:           make(chan struct{}),
		logger:         logger.ComponentLogger("migrate.watcher"),
	}, nil
}

// Start begins watching for script changes.
func (w *Watcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	go w.watchLoop(ctx)
}

// Stop shuts the watcher down and waits for the loop to exit.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.watcher.Close()
	<-w.done

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()
}

// watchLoop monitors file system events until the watcher stops.
func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debugw("Script change detected",
				logger.FieldFile, event.Name,
				logger.FieldOperation, event.Op.String(),
			)
			w.scheduleRun(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err.Error())
		}
	}
}

// scheduleRun resets the debounce timer; the run fires once events settle
// and the rate limiter permits.
func (w *Watcher) scheduleRun(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		if err := w.limiter.Wait(ctx); err != nil {
			return // watcher stopped while waiting
		}
		w.logger.Infow("Scripts changed, running pending migrations", logger.FieldPath, w.dir)
		w.callback(ctx)
	})
}
