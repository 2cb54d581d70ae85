package config

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/lone-faerie/unitconv/log"
)

// Watch watches the given config files and calls onChange with the
// re-loaded Config whenever one of them is written or replaced. The
// watcher runs until ctx is canceled. Load errors are logged and the
// previous config stays in effect.
func Watch(ctx context.Context, onChange func(*Config), file ...string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	for _, f := range file {
		if err := w.Add(f); err != nil {
			w.Close()
			return err
		}
	}

	go func() {
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}

				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}

				log.Debug("Config changed", "file", ev.Name)

				cfg, err := Load(file...)
				if err != nil {
					log.Error("Unable to reload config", err, "file", ev.Name)
					continue
				}

				onChange(cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}

				log.Error("Config watch error", err)
			}
		}
	}()

	return nil
}
