package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"catalyst/internal/eventbus"
)

// Watcher publishes a ConfigChangedEvent whenever the config file is rewritten
type Watcher struct {
	path     string
	bus      eventbus.EventBus
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// NewWatcher watches the directory holding path, since editors usually
// replace the file rather than writing it in place
func NewWatcher(path string, bus eventbus.EventBus) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{
		path:     filepath.Clean(path),
		bus:      bus,
		debounce: 150 * time.Millisecond,
		fsw:      fsw,
	}, nil
}

// Run blocks until ctx is done
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// Editors emit bursts of events for one save
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			log.Printf("Config file changed: %s", w.path)
			w.bus.Publish(eventbus.ConfigChangedEvent{Path: w.path})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}
