package editor

import (
	"path/filepath"
	"time"

	"peek/config"

	"github.com/fsnotify/fsnotify"
	"pkt.systems/pslog"
)

const reloadDebounce = 100 * time.Millisecond

// watchConfig reloads the settings file when it changes and posts the new
// config to events. The directory is watched rather than the file so that
// editors that replace the file on save are still seen.
func watchConfig(path string, events chan<- event, done <-chan struct{}, log pslog.Logger) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	target := filepath.Clean(path)

	go func() {
		debounce := time.NewTimer(reloadDebounce)
		debounce.Stop()
		defer debounce.Stop()

		for {
			select {
			case <-done:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				debounce.Reset(reloadDebounce)
			case <-debounce.C:
				cfg, err := config.Load(path)
				if err != nil {
					log.Warn("config reload failed", "path", path, "err", err)
					continue
				}
				select {
				case events <- configEvent{cfg: cfg}:
				case <-done:
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher error", "err", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
