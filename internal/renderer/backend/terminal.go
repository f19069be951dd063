package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyview/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
// tcell's Init puts the tty in raw mode and enters the alternate screen;
// Fini reverses both.
type Terminal struct {
	screen   tcell.Screen
	mu       sync.Mutex
	finiOnce sync.Once
	closed   bool
}

// NewTerminal creates a new terminal backend on the controlling tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing tcell screen, such as a
// simulation screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.Clear()
	return nil
}

func (t *Terminal) Shutdown() {
	t.finiOnce.Do(func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		t.closed = true
		t.screen.Fini()
	})
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

// GetCell returns the cell at the given position.
func (t *Terminal) GetCell(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return core.Cell{
		Rune:  mainc,
		Width: core.RuneWidth(mainc),
		Style: convertTcellStyle(style),
	}
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) SetCursorStyle(style CursorStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var tcellStyle tcell.CursorStyle
	switch style {
	case CursorBlock:
		tcellStyle = tcell.CursorStyleSteadyBlock
	case CursorUnderline:
		tcellStyle = tcell.CursorStyleSteadyUnderline
	case CursorBar:
		tcellStyle = tcell.CursorStyleSteadyBar
	default:
		tcellStyle = tcell.CursorStyleDefault
	}
	t.screen.SetCursorStyle(tcellStyle)
}

// PollEvent blocks on the tcell event queue. The lock is not held while
// waiting so Shutdown can interrupt a pending poll.
func (t *Terminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(tcell.NewRGBColor(int32(s.Foreground.R), int32(s.Foreground.G), int32(s.Foreground.B)))
	}
	if !s.Background.IsDefault() {
		style = style.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}

	return style
}

// convertTcellStyle converts tcell.Style back to our Style.
func convertTcellStyle(ts tcell.Style) core.Style {
	fg, bg, attrs := ts.Decompose()

	s := core.Style{
		Foreground: convertTcellColor(fg),
		Background: convertTcellColor(bg),
		Attributes: core.AttrNone,
	}

	if attrs&tcell.AttrBold != 0 {
		s.Attributes |= core.AttrBold
	}
	if attrs&tcell.AttrDim != 0 {
		s.Attributes |= core.AttrDim
	}
	if attrs&tcell.AttrItalic != 0 {
		s.Attributes |= core.AttrItalic
	}
	if attrs&tcell.AttrReverse != 0 {
		s.Attributes |= core.AttrReverse
	}

	return s
}

// convertTcellColor converts tcell.Color to our Color.
func convertTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}
	r, g, b := tc.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case nil:
		// tcell returns nil once the screen has been finalized.
		return Event{Type: EventError, Err: ErrClosed}

	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return ResizeEvent(w, h)

	case *tcell.EventError:
		return Event{Type: EventError, Err: e}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyPgUp:
		return KeyPageUp
	case tcell.KeyPgDn:
		return KeyPageDown
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyCtrlC:
		return KeyCtrlC
	default:
		return KeyNone
	}
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}
