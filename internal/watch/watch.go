// Package watch signals when the registry database changes on disk, so an
// open TUI can reload after another process issues or archives records.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce groups the burst of writes one transaction makes.
const DefaultDebounce = 150 * time.Millisecond

// Watcher monitors the database file and its WAL/SHM companions.
type Watcher struct {
	fs       *fsnotify.Watcher
	names    map[string]bool
	debounce time.Duration
	log      zerolog.Logger
	changes  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// New starts watching dbPath. The parent directory is watched so WAL
// checkpoints and a recreated database are seen too.
func New(dbPath string, debounce time.Duration, log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(dbPath)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(dbPath), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	base := filepath.Base(dbPath)
	w := &Watcher{
		fs:       fw,
		names:    map[string]bool{base: true, base + "-wal": true, base + "-shm": true},
		debounce: debounce,
		log:      log.With().Str("component", "watch").Logger(),
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes receives one value per debounced burst of writes. Signals that
// arrive while one is pending are merged.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.names[filepath.Base(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.signal)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.changes <- struct{}{}:
		w.log.Debug().Msg("database changed")
	default:
	}
}
