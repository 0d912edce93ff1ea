// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watcher.go - Stats file change notification for live dashboard reloads.

package ui

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the write/rename event bursts an atomic file
// replace produces into one reload signal.
const watchDebounce = 250 * time.Millisecond

// watchFile watches the stats file for changes and signals on the returned
// channel. The watch is on the parent directory: atomic writes replace the
// file, so watching the path itself would lose the watch on the first save.
//
// The returned stop function releases the watcher and closes the channel.
func watchFile(path string) (<-chan struct{}, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	ch := make(chan struct{}, 1)
	done := make(chan struct{})
	name := filepath.Base(path)

	go func() {
		defer close(ch)

		var timer *time.Timer
		var fire <-chan time.Time
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-done:
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
					fire = timer.C
				} else {
					timer.Reset(watchDebounce)
				}

			case <-fire:
				timer = nil
				fire = nil
				select {
				case ch <- struct{}{}:
				default:
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	stop := func() {
		close(done)
		watcher.Close()
	}
	return ch, stop, nil
}
