package backend

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/r-owen/toika-loom-client/internal/logging/events"
)

// Kind represents the type of data emitted by the watcher.
type Kind int

const (
	KindFiles Kind = iota
	KindError
)

// Event carries a batch of changed pattern files or a watch error.
type Event struct {
	Kind  Kind
	Files []string
	Err   error
}

// PatternExtensions are the file types the loom server can read.
var PatternExtensions = []string{".wif", ".dtx"}

// IsPatternFile reports whether path names a pattern file.
func IsPatternFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range PatternExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Watcher reports pattern files created or rewritten in a directory.
// Bursts of writes are collected until the directory has been quiet for the
// debounce interval, then published as one batch.
type Watcher struct {
	dir      string
	debounce time.Duration
	throttle *throttle
	fs       *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching dir. Batches are at least minInterval apart.
func NewWatcher(dir string, debounce, minInterval time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:      dir,
		debounce: debounce,
		throttle: newThrottle(minInterval),
		fs:       fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}
	events.Watcher.Start(dir)

	w.wg.Add(1)
	go w.loop()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of watcher events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Dir is the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Stop cancels the watcher and releases the underlying OS watch.
func (w *Watcher) Stop() {
	w.cancel()
	_ = w.fs.Close()
}

// Wait blocks until the loop has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 || !IsPatternFile(evt.Name) {
				continue
			}
			pending[evt.Name] = struct{}{}
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			events.Watcher.Error(err)
			if !w.emit(Event{Kind: KindError, Err: err}) {
				return
			}
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			files := make([]string, 0, len(pending))
			for path := range pending {
				files = append(files, path)
			}
			sort.Strings(files)
			pending = make(map[string]struct{})
			w.throttle.wait()
			events.Watcher.Files(files)
			if !w.emit(Event{Kind: KindFiles, Files: files}) {
				return
			}
		}
	}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
