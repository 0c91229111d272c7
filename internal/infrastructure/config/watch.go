package config

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports changed config files under one or more directories.
// Events carries the changed file's path.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching dirs
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes Events and Errors. It is safe to call
// more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	d := newDebouncer(debounce)
	var flush <-chan time.Time
	schedule := func(now time.Time) {
		flush = nil
		if wait, ok := d.next(now); ok {
			flush = time.After(wait)
		}
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !IsConfigFile(event.Name) {
				continue
			}
			now := time.Now()
			d.touch(event.Name, now)
			schedule(now)
		case now := <-flush:
			for _, path := range d.due(now) {
				select {
				case w.Events <- path:
				case <-w.closeCh:
					return
				}
			}
			schedule(now)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// debouncer holds a path back until no event has touched it for delay, so a
// truncate followed by a write reports once, after the write
type debouncer struct {
	delay   time.Duration
	pending map[string]time.Time // last event per path
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, pending: make(map[string]time.Time)}
}

func (d *debouncer) touch(path string, now time.Time) {
	d.pending[path] = now
}

// due removes and returns the paths quiet for at least delay, sorted
func (d *debouncer) due(now time.Time) []string {
	var out []string
	for path, last := range d.pending {
		if now.Sub(last) >= d.delay {
			out = append(out, path)
			delete(d.pending, path)
		}
	}
	slices.Sort(out)
	return out
}

// next returns the wait until the earliest pending path is due
func (d *debouncer) next(now time.Time) (time.Duration, bool) {
	if len(d.pending) == 0 {
		return 0, false
	}
	wait := d.delay
	for _, last := range d.pending {
		wait = min(wait, last.Add(d.delay).Sub(now))
	}
	return max(wait, 0), true
}

// IsConfigFile reports whether path has a config file extension
func IsConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
