// internal/level/watch.go
package level

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a level file whenever it changes on disk. Parsed levels
// arrive on Levels, load and watch failures on Errors. Both channels are
// closed after Close.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	Levels   chan *Level
	Errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// NewWatcher watches the directory holding path, since editors often
// replace files instead of writing them in place.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		Levels:   make(chan *Level, 1),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
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
		close(w.Levels)
		close(w.Errors)
		close(w.done)
	}()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			lvl, err := Load(w.path)
			if err != nil {
				w.sendErr(err)
				continue
			}
			select {
			case w.Levels <- lvl:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

// sendErr drops the error when nobody is draining Errors.
func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
