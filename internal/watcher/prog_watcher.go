// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package watcher

import (
	"context"
	"expvar"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var errorCount = expvar.NewInt("prog_watcher_error_count")

// ProgWatcher watches program files.  Editors often replace a file rather
// than write it in place, so the watch is placed on the directory holding
// each program and events are filtered down to the observed paths.
type ProgWatcher struct {
	watcher *fsnotify.Watcher

	watchedMu sync.RWMutex // protects `watched' and `dirs'
	watched   map[string][]Processor
	dirs      map[string]struct{}

	eventsDone chan struct{} // Closed when the events handler is done.
	closeOnce  sync.Once
}

// NewProgWatcher returns a new ProgWatcher, or returns an error.
func NewProgWatcher() (*ProgWatcher, error) {
	f, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	w := &ProgWatcher{
		watcher:    f,
		watched:    make(map[string][]Processor),
		dirs:       make(map[string]struct{}),
		eventsDone: make(chan struct{}),
	}
	go w.runEvents()
	return w, nil
}

func (w *ProgWatcher) runEvents() {
	defer close(w.eventsDone)

	go func() {
		for err := range w.watcher.Errors {
			errorCount.Add(1)
			glog.Errorf("fsnotify error: %s\n", err)
		}
	}()

	for e := range w.watcher.Events {
		glog.V(2).Infof("watcher event %v", e)
		switch {
		case e.Has(fsnotify.Create):
			w.sendEvent(Event{Create, e.Name})
		case e.Has(fsnotify.Write):
			w.sendEvent(Event{Update, e.Name})
		case e.Has(fsnotify.Remove), e.Has(fsnotify.Rename):
			// A rename is seen on the old path; the new path receives a Create.
			w.sendEvent(Event{Delete, e.Name})
		}
	}
	glog.V(1).Info("Shutting down program watcher.")
}

func (w *ProgWatcher) sendEvent(e Event) {
	w.watchedMu.RLock()
	ps := w.watched[e.Pathname]
	w.watchedMu.RUnlock()
	if len(ps) == 0 {
		glog.V(2).Infof("No watch for path %q", e.Pathname)
		return
	}
	for _, p := range ps {
		p.ProcessFileEvent(context.TODO(), e)
	}
}

// Observe sends events for the program at path to processor.
func (w *ProgWatcher) Observe(path string, processor Processor) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to lookup absolute path of %q", path)
	}
	w.watchedMu.Lock()
	defer w.watchedMu.Unlock()
	dir := filepath.Dir(absPath)
	if _, ok := w.dirs[dir]; !ok {
		glog.V(2).Infof("Adding a watch on directory %q", dir)
		if err := w.watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to create a new watch on %q", dir)
		}
		w.dirs[dir] = struct{}{}
	}
	for _, p := range w.watched[absPath] {
		if p == processor {
			return nil
		}
	}
	w.watched[absPath] = append(w.watched[absPath], processor)
	return nil
}

// IsWatching indicates if the program at path is observed.
func (w *ProgWatcher) IsWatching(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		glog.V(2).Infof("Couldn't resolve path %q: %s", path, err)
		return false
	}
	w.watchedMu.RLock()
	defer w.watchedMu.RUnlock()
	_, ok := w.watched[absPath]
	return ok
}

// Close shuts down the ProgWatcher.  It is safe to call this from multiple clients.
func (w *ProgWatcher) Close() (err error) {
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
		<-w.eventsDone
	})
	return err
}
