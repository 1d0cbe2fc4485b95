package availability

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the checker whenever its settings file changes, so a
// long-running timer or agenda session picks up edits without a
// restart. Returns a stop function. If the watcher cannot be created
// the checker simply stays on its last loaded settings.
func (c *Checker) Watch() (stop func()) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return func() {}
	}

	// Watch the directory: editors replace files on save, which drops
	// a watch on the file itself.
	if err := watcher.Add(filepath.Dir(c.path)); err != nil {
		watcher.Close()
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != c.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					// A failed reload keeps the previous settings.
					c.Reload()
				}
			case <-watcher.Errors:
				// Keep watching.
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}
}
