// Package core provides the cell and style types shared by the renderer,
// the status line and the terminal backends.
// It has no dependencies on the rest of the renderer so backends can import it.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint/dim text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Color is a 24-bit color or the terminal's default color.
type Color struct {
	R, G, B uint8
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack = Color{R: 0, G: 0, B: 0}
	ColorWhite = Color{R: 255, G: 255, B: 255}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex parses "#RRGGBB" or "#RGB" (the leading '#' is optional).
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color length: %q", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %q", hex)
	}
	return ColorFromRGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default || other.Default {
		return c.Default == other.Default
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns "default" or the "#RRGGBB" form.
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
		Attributes: AttrNone,
	}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}

// Cell represents a single terminal cell.
type Cell struct {
	// Rune is the character to display.
	Rune rune

	// Width is the display width of this cell.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns an empty cell with default style.
func EmptyCell() Cell {
	return Cell{
		Rune:  ' ',
		Width: 1,
		Style: DefaultStyle(),
	}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{
		Rune:  r,
		Width: RuneWidth(r),
		Style: style,
	}
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune &&
		c.Width == other.Width &&
		c.Style.Equals(other.Style)
}

// widths measures cells independently of the user's locale so layout is the
// same on every terminal; East Asian ambiguous runes count as one cell.
var widths = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// RuneWidth returns the display width of a rune in terminal cells.
func RuneWidth(r rune) int {
	return widths.RuneWidth(r)
}

// StringWidth returns the display width of s in terminal cells.
func StringWidth(s string) int {
	return widths.StringWidth(s)
}
