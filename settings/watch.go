package settings

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports changes to a fixed set of files. Events carries the changed
// path once writes to it have settled; the host loop drains it on its own
// thread.
type Watcher struct {
	watcher *fsnotify.Watcher
	targets map[string]struct{}
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches the directories holding paths and filters events to
// those files. Editors that replace files on save are handled because the
// directory, not the file, is watched. Empty paths are skipped.
func NewWatcher(paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	targets := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, path := range paths {
		if path == "" {
			continue
		}
		path = filepath.Clean(path)
		targets[path] = struct{}{}
		dir := filepath.Dir(path)
		if _, ok := dirs[dir]; ok {
			continue
		}
		dirs[dir] = struct{}{}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		targets: targets,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	dirty := make(map[string]struct{})
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if _, ok := w.targets[name]; !ok {
				continue
			}
			dirty[name] = struct{}{}
			timer.Reset(debounce)
		case <-timer.C:
			for name := range dirty {
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
				delete(dirty, name)
			}
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

// Drain returns the distinct paths changed since the last call without
// blocking, along with the first pending watch error.
func (w *Watcher) Drain() ([]string, error) {
	if w == nil {
		return nil, nil
	}
	var changed []string
	seen := make(map[string]struct{})
	for {
		select {
		case name := <-w.Events:
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				changed = append(changed, name)
			}
		case err := <-w.Errors:
			return changed, err
		default:
			return changed, nil
		}
	}
}
