package pulse

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ReloadableProgram is a program built from shader files. With watching
// enabled, the program is rebuilt whenever one of the files changes.
// A failed rebuild keeps the previous program.
type ReloadableProgram struct {
	ctx          *Context
	vertexPath   string
	fragmentPath string

	program *Program
	lastErr error

	watcher *fsnotify.Watcher
	changed chan struct{}
}

func LoadReloadableProgram(ctx *Context, vertexPath, fragmentPath string, watch bool) (*ReloadableProgram, error) {
	program, err := LoadProgram(ctx, vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}

	rp := &ReloadableProgram{
		ctx:          ctx,
		vertexPath:   filepath.Clean(vertexPath),
		fragmentPath: filepath.Clean(fragmentPath),
		program:      program,
		changed:      make(chan struct{}, 1),
	}

	if watch {
		if err := rp.watch(); err != nil {
			return nil, fmt.Errorf("watch shader files: %w", err)
		}
	}

	ctx.track(rp)

	return rp, nil
}

func (rp *ReloadableProgram) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// editors often replace files instead of writing them,
	// so watch the directories and filter by name
	dirs := map[string]bool{
		filepath.Dir(rp.vertexPath):   true,
		filepath.Dir(rp.fragmentPath): true,
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return err
		}
	}

	rp.watcher = watcher

	go rp.watchLoop(watcher)

	slog.Info("Watching shader files",
		slog.String("vertex", rp.vertexPath),
		slog.String("fragment", rp.fragmentPath),
	)

	return nil
}

func (rp *ReloadableProgram) watchLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if !rp.isSource(event.Name) || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}

			slog.Debug("Shader file changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))

			select {
			case rp.changed <- struct{}{}:
			default:
				// a reload is already pending
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			slog.Warn("Watching shader files failed", slog.String("err", err.Error()))
		}
	}
}

func (rp *ReloadableProgram) isSource(name string) bool {
	name = filepath.Clean(name)
	return name == rp.vertexPath || name == rp.fragmentPath
}

// Program returns the current program. If a source file changed since the
// last call, the program is rebuilt first. Must be called on the thread
// owning the graphics context.
func (rp *ReloadableProgram) Program() *Program {
	select {
	case <-rp.changed:
		rp.reload()
	default:
	}

	return rp.program
}

// LastError returns the error of the last rebuild, or nil if it succeeded.
func (rp *ReloadableProgram) LastError() error {
	return rp.lastErr
}

func (rp *ReloadableProgram) reload() {
	program, err := LoadProgram(rp.ctx, rp.vertexPath, rp.fragmentPath)
	if err != nil {
		slog.Error("Rebuilding program failed, keeping the previous one", slog.String("err", err.Error()))
		rp.lastErr = err
		return
	}

	slog.Info("Program rebuilt", slog.String("fragment", rp.fragmentPath))

	rp.program.Release()
	rp.ctx.untrack(rp.program)

	rp.program = program
	rp.lastErr = nil
}

// Release stops watching and deletes the current program.
func (rp *ReloadableProgram) Release() {
	if rp.watcher != nil {
		_ = rp.watcher.Close()
		rp.watcher = nil
	}

	rp.program.Release()
}
