// Package backend provides terminal backend abstraction for the renderer.
package backend

import (
	"errors"

	"github.com/dshills/keyview/internal/renderer/core"
)

// ErrClosed is reported by PollEvent once the backend has been shut down
// or, for NullBackend, when no scripted events remain.
var ErrClosed = errors.New("backend closed")

// CursorStyle defines how the cursor appears.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventError
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int

	// Error event field
	Err error
}

// KeyEvent builds a key event for a special key.
func KeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// RuneEvent builds a key event for a printable character.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// ResizeEvent builds a resize notification.
func ResizeEvent(width, height int) Event {
	return Event{Type: EventResize, Width: width, Height: height}
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend is the terminal the editor draws on and reads input from.
// Implementations own raw mode and the alternate screen between Init and
// Shutdown.
type Backend interface {
	// Init enables raw mode and switches to the alternate screen.
	// Must be called before any other methods.
	Init() error

	// Shutdown leaves the alternate screen and restores the terminal mode.
	// Calling it more than once is a no-op.
	Shutdown()

	// Size returns the current terminal dimensions in cells.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// SetCursorStyle changes the cursor appearance.
	SetCursorStyle(style CursorStyle)

	// Show flushes all pending cell changes to the display as one frame.
	Show()

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call.
	PollEvent() Event
}

// NullBackend is an in-memory backend for testing.
// PollEvent never blocks: once the scripted events are consumed it reports
// an EventError wrapping ErrClosed.
type NullBackend struct {
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorStyle   CursorStyle
	events        chan Event

	inits     int
	shutdowns int
	frames    int
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.inits++
	b.allocate()
	return nil
}

func (b *NullBackend) allocate() {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = core.EmptyCell()
		}
	}
}

func (b *NullBackend) Shutdown() {
	b.shutdowns++
}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height && y < len(b.cells) {
		b.cells[y][x] = cell
	}
}

// GetCell returns the cell at the given position.
// Returns an empty cell for positions outside the terminal.
func (b *NullBackend) GetCell(x, y int) core.Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height && y < len(b.cells) {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

// Row returns the runes of row y as a string.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= len(b.cells) {
		return ""
	}
	runes := make([]rune, 0, b.width)
	for _, c := range b.cells[y] {
		runes = append(runes, c.Rune)
	}
	return string(runes)
}

func (b *NullBackend) Show() {
	b.frames++
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) SetCursorStyle(style CursorStyle) {
	b.cursorStyle = style
}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	default:
		return Event{Type: EventError, Err: ErrClosed}
	}
}

// PostEvent queues a scripted event.
func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// CursorStyleValue returns the current cursor style for testing.
func (b *NullBackend) CursorStyleValue() CursorStyle {
	return b.cursorStyle
}

// Frames returns how many times Show was called.
func (b *NullBackend) Frames() int {
	return b.frames
}

// Lifecycle returns how many times Init and Shutdown were called.
func (b *NullBackend) Lifecycle() (inits, shutdowns int) {
	return b.inits, b.shutdowns
}

// Resize simulates a terminal resize: the cell grid is reallocated and a
// resize event is queued, as a real terminal would deliver it.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocate()
	b.PostEvent(ResizeEvent(width, height))
}
