package graphics

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Reloader keeps a program built from shader files in a directory and
// rebuilds it when one of those files changes.
//
// The watcher goroutine only flags changes; the rebuild happens in Poll, on
// the thread that owns the GL context.
type Reloader struct {
	ctx     *Context
	fsys    fs.FS
	names   []string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	done    chan struct{}
	dirty   atomic.Bool
	program *Program
}

// NewReloader starts watching dir, then builds the program from names
// (files directly inside dir). A build failure here is returned as is.
func NewReloader(ctx *Context, dir string, names []string, logger *slog.Logger) (*Reloader, error) {
	return newReloader(ctx, dir, os.DirFS(dir), names, logger)
}

func newReloader(ctx *Context, dir string, fsys fs.FS, names []string, logger *slog.Logger) (*Reloader, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create shader watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("could not watch shader directory: %w", err)
	}

	r := &Reloader{
		ctx:     ctx,
		fsys:    fsys,
		names:   names,
		logger:  logger,
		watcher: w,
		done:    make(chan struct{}),
	}
	// edits saved during the first build flag a rebuild for the next Poll
	go r.watch()

	p, err := r.build()
	if err != nil {
		w.Close()
		<-r.done
		return nil, err
	}
	r.program = p
	return r, nil
}

// Program returns the current program.
func (r *Reloader) Program() *Program { return r.program }

// Request schedules a rebuild on the next Poll even if no file changed.
// It is safe to call from any goroutine.
func (r *Reloader) Request() { r.dirty.Store(true) }

// Poll rebuilds the program if a watched file changed since the last call.
// It reports whether the program was replaced; callers must then resolve
// uniform locations again. On error the previous program stays in use.
func (r *Reloader) Poll() (bool, error) {
	if !r.dirty.Swap(false) {
		return false, nil
	}
	p, err := r.build()
	if err != nil {
		return false, err
	}
	wasBound := r.program.Bound()
	r.program.Delete()
	r.program = p
	if wasBound {
		p.Bind()
	}
	r.logger.Info("reloaded shaders", "files", r.names, "program", p.ID())
	return true, nil
}

// Close stops watching and deletes the current program.
func (r *Reloader) Close() error {
	if r.watcher == nil {
		return nil
	}
	err := r.watcher.Close()
	<-r.done
	r.watcher = nil
	r.program.Delete()
	return err
}

func (r *Reloader) build() (*Program, error) {
	sources, err := LoadSources(r.fsys, r.names...)
	if err != nil {
		return nil, err
	}
	return NewProgram(r.ctx, sources...)
}

func (r *Reloader) watch() {
	defer close(r.done)
	for {
		select {
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !r.watched(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				r.dirty.Store(true)
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("shader watcher error", "error", err)
		}
	}
}

func (r *Reloader) watched(file string) bool {
	base := filepath.Base(file)
	for _, name := range r.names {
		if name == base {
			return true
		}
	}
	return false
}
