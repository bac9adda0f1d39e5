package ui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// listingOps are the events that change a directory listing
const listingOps = fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// dirWatcher follows the picker's current directory
type dirWatcher struct {
	watcher *fsnotify.Watcher
	dir     string
}

// newDirWatcher creates a watcher that is not yet watching anything
func newDirWatcher() (*dirWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &dirWatcher{watcher: watcher}, nil
}

// Watch moves the watch to dir
func (d *dirWatcher) Watch(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if abs == d.dir {
		return nil
	}

	if d.dir != "" {
		// The old directory may already be gone
		_ = d.watcher.Remove(d.dir)
	}
	if err := d.watcher.Add(abs); err != nil {
		d.dir = ""
		return fmt.Errorf("failed to watch directory: %w", err)
	}
	d.dir = abs
	return nil
}

// Dir returns the watched directory
func (d *dirWatcher) Dir() string {
	return d.dir
}

// Next waits for the next listing change or watcher error
func (d *dirWatcher) Next() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-d.watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&listingOps == 0 {
					continue
				}
				return dirChangedMsg{dir: filepath.Dir(event.Name)}
			case err, ok := <-d.watcher.Errors:
				if !ok {
					return nil
				}
				return watchErrorMsg{err: err}
			}
		}
	}
}

// Close releases the watcher
func (d *dirWatcher) Close() error {
	return d.watcher.Close()
}
