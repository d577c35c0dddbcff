package assets

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to files in a directory. Bursts of events are
// coalesced into a single pending notification.
type Watcher struct {
	watcher *fsnotify.Watcher
	changed chan string
	done    chan struct{}
}

// Watch starts watching dir. Close must be called to stop it.
func Watch(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		watcher: fw,
		changed: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			switch {
			case event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create ||
				event.Op&fsnotify.Rename == fsnotify.Rename:
				select {
				case w.changed <- filepath.Base(event.Name):
				default:
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Asset watcher error: %v", err)
		}
	}
}

// Changed delivers the name of a changed file. Only one notification is
// buffered; further changes before it is received are dropped.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Poll reports whether a change is pending, without blocking.
func (w *Watcher) Poll() (string, bool) {
	select {
	case name := <-w.changed:
		return name, true
	default:
		return "", false
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
