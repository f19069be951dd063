// Package statusline renders the bottom status bar: a mode indicator, the
// file label and the cursor position, joined by powerline separators.
package statusline

import (
	"strconv"
	"strings"

	"github.com/dshills/keyview/internal/renderer"
	"github.com/dshills/keyview/internal/renderer/backend"
	"github.com/dshills/keyview/internal/renderer/core"
)

// Powerline separator glyphs.
const (
	SeparatorRight = "\ue0b0"
	SeparatorLeft  = "\ue0b2"
)

// Theme holds the colors and separators of the status bar.
type Theme struct {
	Mode     core.Style
	File     core.Style
	Position core.Style

	// LeftSeparator follows the mode segment, RightSeparator precedes the
	// position segment.
	LeftSeparator  string
	RightSeparator string
}

// Theme colors.
var (
	ColorAccent  = core.ColorFromRGB(184, 144, 243)
	ColorBarFill = core.ColorFromRGB(60, 70, 89)
)

// DefaultTheme returns the purple-on-slate theme.
func DefaultTheme() Theme {
	return Theme{
		Mode:           core.DefaultStyle().WithForeground(core.ColorBlack).WithBackground(ColorAccent),
		File:           core.DefaultStyle().WithForeground(core.ColorWhite).WithBackground(ColorBarFill).Bold(),
		Position:       core.DefaultStyle().WithForeground(core.ColorBlack).WithBackground(ColorAccent).Bold(),
		LeftSeparator:  SeparatorRight,
		RightSeparator: SeparatorLeft,
	}
}

// StatusLine renders the bottom status line.
type StatusLine struct {
	mode     string // Mode name as shown, e.g. "NORMAL"
	filename string
	col, row int
	width    int
	theme    Theme
}

// New creates a status line using theme.
func New(theme Theme) *StatusLine {
	return &StatusLine{
		mode:  "NORMAL",
		theme: theme,
	}
}

// SetMode updates the displayed mode. The name is shown upper-cased.
func (s *StatusLine) SetMode(mode string) {
	s.mode = strings.ToUpper(mode)
}

// SetFilename updates the displayed file label.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetPosition updates the displayed cursor position (0-based, screen relative).
func (s *StatusLine) SetPosition(col, row int) {
	s.col = col
	s.row = row
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Segments returns the text of the mode, file and position segments before
// the file segment is padded to its elastic width.
func (s *StatusLine) Segments() (mode, file, pos string) {
	mode = " " + s.mode + "  "
	file = " " + s.filename
	pos = " " + strconv.Itoa(s.col) + ":" + strconv.Itoa(s.row) + " "
	return mode, file, pos
}

// FileWidth returns the number of cells left for the file segment once the
// fixed segments and separators are placed. It never goes below zero, so on
// a terminal narrower than MinWidth the bar is cut off on the right.
func (s *StatusLine) FileWidth() int {
	mode, _, pos := s.Segments()
	w := s.width -
		core.StringWidth(mode) -
		core.StringWidth(pos) -
		core.StringWidth(s.theme.LeftSeparator) -
		core.StringWidth(s.theme.RightSeparator)
	if w < 0 {
		return 0
	}
	return w
}

// MinWidth is the narrowest width at which every segment fits with at
// least one cell of file label.
func (s *StatusLine) MinWidth() int {
	mode, _, pos := s.Segments()
	return core.StringWidth(mode) +
		core.StringWidth(pos) +
		core.StringWidth(s.theme.LeftSeparator) +
		core.StringWidth(s.theme.RightSeparator) + 1
}

// Render draws the status line on row. Each segment overwrites its whole
// span; the file label is truncated or padded to FileWidth.
func (s *StatusLine) Render(b backend.Backend, row int) {
	mode, file, pos := s.Segments()

	modeSep := s.theme.File.WithForeground(s.theme.Mode.Background).Bold()
	posSep := s.theme.File.WithForeground(s.theme.Position.Background)

	x := 0
	x = renderer.DrawText(b, x, row, core.StringWidth(mode), mode, s.theme.Mode)
	x = renderer.DrawText(b, x, row, core.StringWidth(s.theme.LeftSeparator), s.theme.LeftSeparator, modeSep)
	x = renderer.DrawText(b, x, row, s.FileWidth(), file, s.theme.File)
	x = renderer.DrawText(b, x, row, core.StringWidth(s.theme.RightSeparator), s.theme.RightSeparator, posSep)
	renderer.DrawText(b, x, row, core.StringWidth(pos), pos, s.theme.Position)
}
