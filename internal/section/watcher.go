package section

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SettleDelay is how long a new CSV file must go without writes before it
// is reported.
const SettleDelay = 300 * time.Millisecond

// Watcher reports CSV files that appear in the sections directory after
// startup. It never invalidates cached sections.
type Watcher struct {
	dir     string
	settle  time.Duration
	watcher *fsnotify.Watcher
	events  chan Entry
	done    chan struct{}
	once    sync.Once
	logger  *slog.Logger
}

// Watch starts watching dir for new *.csv files. A file is reported once it
// has been quiet for SettleDelay, so a half-written file is not offered for
// loading.
func Watch(dir string, logger *slog.Logger) (*Watcher, error) {
	return watch(dir, SettleDelay, logger)
}

func watch(dir string, settle time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		dir:     dir,
		settle:  settle,
		watcher: fw,
		events:  make(chan Entry, 16),
		done:    make(chan struct{}),
		logger:  logger,
	}
	go w.loop()
	return w, nil
}

// Events delivers one entry per newly created CSV file. The channel is
// closed when the watcher stops.
func (w *Watcher) Events() <-chan Entry {
	return w.events
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.events)

	pending := make(map[string]*time.Timer)
	settled := make(chan string)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".csv") {
				continue
			}
			switch {
			case ev.Has(fsnotify.Create):
				if t, ok := pending[ev.Name]; ok {
					t.Reset(w.settle)
					continue
				}
				name := ev.Name
				pending[name] = time.AfterFunc(w.settle, func() {
					select {
					case settled <- name:
					case <-w.done:
					}
				})
			case ev.Has(fsnotify.Write):
				if t, ok := pending[ev.Name]; ok {
					t.Reset(w.settle)
				}
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				if t, ok := pending[ev.Name]; ok {
					t.Stop()
					delete(pending, ev.Name)
				}
			}
		case name := <-settled:
			// A stopped timer may still deliver; only pending files count.
			if _, ok := pending[name]; !ok {
				continue
			}
			delete(pending, name)
			if !w.emit(name) {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("sections watcher error", "dir", w.dir, "err", err)
		}
	}
}

func (w *Watcher) emit(name string) bool {
	rel, err := filepath.Rel(w.dir, name)
	if err != nil {
		rel = filepath.Base(name)
	}
	entry := Entry{Title: TitleFromPath(rel), Path: filepath.ToSlash(rel)}
	select {
	case w.events <- entry:
		return true
	case <-w.done:
		return false
	}
}
