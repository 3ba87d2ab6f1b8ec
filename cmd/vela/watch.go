package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchLoop re-runs the command whenever the declaration file changes.
// The containing directory is watched rather than the file itself:
// editors typically replace files on save, which drops a watch on the
// file but not on its directory.
func watchLoop(file string, r *runner) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	r.run()
	fmt.Fprintf(r.errOut, "watching %s\n", file)

	var last time.Time
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Editors fire bursts of events per save.
			if time.Since(last) < 100*time.Millisecond {
				continue
			}
			last = time.Now()
			fmt.Fprintf(r.errOut, "reloading %s\n", file)
			r.run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(r.errOut, "watch error: %v\n", err)
		}
	}
}
