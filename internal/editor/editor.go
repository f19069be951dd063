// Package editor implements the modal viewer/editor: cursor and viewport
// state, the clamp step that keeps the cursor on a valid cell, mode
// dependent key dispatch and the two-pass frame render.
//
// The cursor is kept in screen coordinates (cursorCol, cursorRow) relative
// to the viewport whose top-left buffer cell is (viewportTop, viewportLeft).
// The buffer row under the cursor is therefore viewportTop+cursorRow.
//
// The loop in Run is strictly sequential: clamp, render, read one event,
// interpret it, apply the resulting action, repeat.
package editor

import (
	"errors"
	"fmt"

	"github.com/dshills/keyview/internal/engine/buffer"
	"github.com/dshills/keyview/internal/renderer/backend"
	"github.com/dshills/keyview/internal/renderer/statusline"
)

// statusRows is the number of rows at the bottom of the screen reserved for
// the status line region.
const statusRows = 2

var (
	// ErrQuit is returned by Apply for the Quit action.
	ErrQuit = errors.New("quit requested")

	// ErrTerminalSize indicates the backend reported an unusable size.
	ErrTerminalSize = errors.New("terminal size unavailable")
)

// Logger is the diagnostics sink the editor writes to.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTheme sets the status line theme.
func WithTheme(theme statusline.Theme) Option {
	return func(e *Editor) {
		e.status = statusline.New(theme)
	}
}

// State is a snapshot of the editor's cursor, viewport and mode.
type State struct {
	CursorCol    int
	CursorRow    int
	ViewportTop  int
	ViewportLeft int
	Mode         Mode
	Width        int
	Height       int
}

// AbsoluteRow returns the buffer row under the cursor.
func (s State) AbsoluteRow() int {
	return s.ViewportTop + s.CursorRow
}

// Editor owns the cursor, the viewport and the mode of one document shown
// on one backend. It is not safe for concurrent use; all mutation happens
// on the goroutine running Run.
type Editor struct {
	buf     *buffer.Buffer
	backend backend.Backend
	status  *statusline.StatusLine
	log     Logger

	cx, cy      int // cursor, screen relative
	vtop, vleft int // viewport origin, buffer absolute
	mode        Mode
	width       int
	height      int
}

// New creates an editor for buf drawing on b. The backend must already be
// initialized so its size is known.
func New(buf *buffer.Buffer, b backend.Backend, opts ...Option) (*Editor, error) {
	width, height := b.Size()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTerminalSize, width, height)
	}

	e := &Editor{
		buf:     buf,
		backend: b,
		status:  statusline.New(statusline.DefaultTheme()),
		log:     nopLogger{},
		mode:    ModeNormal,
		width:   width,
		height:  height,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// State returns a snapshot of the current state.
func (e *Editor) State() State {
	return State{
		CursorCol:    e.cx,
		CursorRow:    e.cy,
		ViewportTop:  e.vtop,
		ViewportLeft: e.vleft,
		Mode:         e.mode,
		Width:        e.width,
		Height:       e.height,
	}
}

// Mode returns the current mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// Buffer returns the document being edited.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// Resize records new terminal dimensions. The cursor is brought back onto
// the screen by the next Clamp.
func (e *Editor) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	e.width = width
	e.height = height
}

// viewportHeight is the number of rows available for buffer lines.
func (e *Editor) viewportHeight() int {
	if e.height <= statusRows {
		return 0
	}
	return e.height - statusRows
}

// Clamp forces the state back onto a valid, visible cell. It is a fixed
// point: calling it twice has the same effect as calling it once.
//
// The row is settled before the column so the column is measured against
// the line the cursor finally sits on.
func (e *Editor) Clamp() {
	// Keep the cursor inside the viewport after the terminal shrinks by
	// scrolling, which preserves the buffer row.
	if vh := e.viewportHeight(); e.cy >= vh {
		last := vh - 1
		if last < 0 {
			last = 0
		}
		e.vtop += e.cy - last
		e.cy = last
	}

	// Pull the cursor up to the last line. Only when the viewport itself
	// starts past the end (empty document) does the viewport move.
	last := e.buf.LineCount() - 1
	switch {
	case last < 0:
		e.vtop, e.cy = 0, 0
	case e.vtop > last:
		e.vtop, e.cy = last, 0
	case e.vtop+e.cy > last:
		e.cy = last - e.vtop
	}

	// Column: within the line, then within the screen. The line limit is a
	// buffer column; a viewport scrolled past it is brought back so the
	// cursor cell is on screen.
	limit := e.columnLimit()
	if e.vleft > limit {
		e.vleft = limit - max(e.width-1, 0)
		if e.vleft < 0 {
			e.vleft = 0
		}
	}
	if e.vleft+e.cx > limit {
		e.cx = limit - e.vleft
	}
	if e.cx >= e.width {
		e.cx = e.width - 1
	}
	if e.cx < 0 {
		e.cx = 0
	}
}

// columnLimit is the largest valid buffer column on the current line. In
// Insert mode the cursor may sit one past the last character so text can be
// appended.
func (e *Editor) columnLimit() int {
	n := e.buf.LineLen(e.vtop + e.cy)
	if e.mode == ModeInsert {
		return n
	}
	if n == 0 {
		return 0
	}
	return n - 1
}

// Apply performs action. It returns ErrQuit for the Quit action and the
// buffer's error if an edit fails.
func (e *Editor) Apply(action Action) error {
	switch action.Kind {
	case ActionQuit:
		return ErrQuit

	case ActionMoveLeft:
		if e.cx > 0 {
			e.cx--
		} else if e.vleft > 0 {
			e.vleft--
		}

	case ActionMoveRight:
		e.cx++

	case ActionMoveUp:
		if e.cy == 0 {
			if e.vtop > 0 {
				e.vtop--
			}
		} else {
			e.cy--
		}

	case ActionMoveDown:
		e.moveDown()

	case ActionEnterMode:
		e.log.Debug("mode %s -> %s", e.mode, action.Mode)
		e.mode = action.Mode

	case ActionAddChar:
		if err := e.buf.InsertRune(e.vtop+e.cy, e.vleft+e.cx, action.Char); err != nil {
			return fmt.Errorf("insert %q: %w", action.Char, err)
		}
		e.moveRightScrolling()

	case ActionNewLine:
		if err := e.buf.SplitLine(e.vtop+e.cy, e.vleft+e.cx); err != nil {
			return fmt.Errorf("newline: %w", err)
		}
		e.cx, e.vleft = 0, 0
		e.moveDown()
	}

	e.log.Debug("%s cx=%d cy=%d vtop=%d", action, e.cx, e.cy, e.vtop)
	return nil
}

// moveDown advances the cursor one row, scrolling when it would leave the
// viewport so the cursor stays pinned to the last visible row.
func (e *Editor) moveDown() {
	e.cy++
	if e.cy >= e.viewportHeight() {
		e.vtop++
		e.cy--
	}
}

// moveRightScrolling advances the cursor one column after an insertion,
// scrolling the viewport right at the screen edge so the cursor keeps
// following the insertion point.
func (e *Editor) moveRightScrolling() {
	e.cx++
	if e.cx >= e.width {
		e.vleft++
		e.cx--
	}
}

// HandleEvent interprets one backend event and applies the resulting
// action. Resize events update the terminal size regardless of mode and
// produce no action. Error events are returned wrapped.
func (e *Editor) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventError:
		return fmt.Errorf("read event: %w", ev.Err)
	case backend.EventResize:
		e.log.Debug("resize %dx%d", ev.Width, ev.Height)
		e.Resize(ev.Width, ev.Height)
		return nil
	}

	action, ok := Dispatch(e.mode, ev)
	if !ok {
		return nil
	}
	return e.Apply(action)
}
