// Package app wires the editor to a terminal for one session. It owns the
// session logger, the terminal's lifetime and top-level error handling:
// whatever way Run ends, the terminal is restored before Run returns.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/dshills/keyview/internal/editor"
	"github.com/dshills/keyview/internal/engine/buffer"
	"github.com/dshills/keyview/internal/renderer/backend"
	"github.com/dshills/keyview/internal/renderer/statusline"
)

// ErrInterrupted is returned by Run when Shutdown stopped the session
// before the user quit.
var ErrInterrupted = errors.New("interrupted")

// Options configures the application.
type Options struct {
	// Path is the file to open. Empty opens an untitled scratch buffer.
	Path string

	// LogLevel sets the logging verbosity.
	LogLevel LogLevel

	// LogFile receives the session log. Empty disables logging.
	LogFile string

	// Theme overrides the status line theme.
	Theme *statusline.Theme

	// Backend replaces the terminal. When nil a tcell terminal is opened
	// on the process's stdin/stdout, which must be a TTY.
	Backend backend.Backend
}

// Application runs one editing session.
type Application struct {
	opts    Options
	log     *Logger
	logFile io.Closer
	metrics *Metrics
	buf     *buffer.Buffer

	mu      sync.Mutex
	backend backend.Backend

	running      atomic.Bool
	interrupted  atomic.Bool
	backendOnce  sync.Once
	teardownOnce sync.Once
	teardownErr  error
}

// New loads the document and sets up logging. A load failure is returned
// as the buffer's *FileError.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		log:     NewNopLogger(),
		metrics: NewMetrics(),
	}

	if opts.LogFile != "" {
		f, err := openLogFile(opts.LogFile)
		if err != nil {
			return nil, err
		}
		app.logFile = f
		app.log = NewLogger(LoggerConfig{
			Level:  opts.LogLevel,
			Output: f,
			Prefix: "keyview",
		}).WithField("session", uuid.NewString())
	}

	buf, err := buffer.Load(opts.Path)
	if err != nil {
		app.log.Error("load: %v", err)
		_ = app.Close()
		return nil, err
	}
	app.buf = buf
	app.log.Info("loaded %s: %d lines", buf.Name(), buf.LineCount())

	return app, nil
}

// Buffer returns the document being edited.
func (app *Application) Buffer() *buffer.Buffer {
	return app.buf
}

// Logger returns the session logger.
func (app *Application) Logger() *Logger {
	return app.log
}

// Metrics returns the session metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Run opens the terminal and runs the editor until the user quits, ctx is
// cancelled, Shutdown is called or an error occurs. The terminal is shut
// down on every path, including a panic inside the editor, which is
// returned as a *RecoveredPanicError.
func (app *Application) Run(ctx context.Context) (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	defer func() {
		if r := recover(); r != nil {
			perr := NewRecoveredPanicError(r, string(debug.Stack()))
			app.log.Error("%v", perr)
			err = perr
		}
	}()

	b, err := app.openBackend()
	if err != nil {
		return err
	}
	if err := b.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer app.closeBackend()

	opts := []editor.Option{editor.WithLogger(app.log.WithComponent("editor"))}
	if app.opts.Theme != nil {
		opts = append(opts, editor.WithTheme(*app.opts.Theme))
	}
	ed, err := editor.New(app.buf, newMeteredBackend(b, app.metrics), opts...)
	if err != nil {
		return &InitError{Component: "editor", Err: err}
	}

	err = ed.Run(ctx)
	app.log.Info("session: %s", app.metrics.Snapshot())

	switch {
	case err == nil:
		return nil
	case app.interrupted.Load() && errors.Is(err, backend.ErrClosed):
		return ErrInterrupted
	default:
		return NewComponentError("editor", "run", err)
	}
}

// openBackend returns the configured backend or opens the terminal.
func (app *Application) openBackend() (backend.Backend, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.interrupted.Load() {
		return nil, ErrInterrupted
	}

	b := app.opts.Backend
	if b == nil {
		if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
			return nil, &InitError{Component: "terminal", Err: ErrNotTerminal}
		}
		t, err := backend.NewTerminal()
		if err != nil {
			return nil, &InitError{Component: "terminal", Err: err}
		}
		b = t
	}
	app.backend = b
	return b, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// closeBackend restores the terminal. Only the first call has an effect.
func (app *Application) closeBackend() {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()

	if b == nil {
		return
	}
	app.backendOnce.Do(func() {
		b.Shutdown()
		app.log.Debug("terminal restored")
	})
}

// Shutdown stops a running session from another goroutine, typically a
// signal handler. The terminal is restored immediately, which makes the
// blocked event read fail and Run return ErrInterrupted.
func (app *Application) Shutdown() {
	app.interrupted.Store(true)
	app.log.Info("shutdown requested")
	app.closeBackend()
}

// Close releases everything the application holds: the terminal, if Run
// left it open, and the log file. It is safe to call more than once.
func (app *Application) Close() error {
	app.teardownOnce.Do(func() {
		app.closeBackend()

		var errs ErrorList
		if app.logFile != nil {
			errs.Add(app.logFile.Close())
		}
		app.teardownErr = errs.AsError()
	})
	return app.teardownErr
}
