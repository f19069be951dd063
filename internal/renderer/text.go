package renderer

import (
	"github.com/dshills/keyview/internal/renderer/backend"
	"github.com/dshills/keyview/internal/renderer/core"
)

// DrawText draws text left-aligned at (x, y) in exactly width cells: text
// that does not fit is cut off and the remainder of the span is filled with
// spaces in the same style. Runes with no display width (tabs, control
// characters) occupy one blank cell. Returns the column after the span.
func DrawText(b backend.Backend, x, y, width int, text string, style core.Style) int {
	if width <= 0 {
		return x
	}

	col := 0
	for _, r := range text {
		w := core.RuneWidth(r)
		if w == 0 {
			r, w = ' ', 1
		}
		if col+w > width {
			break
		}
		b.SetCell(x+col, y, core.Cell{Rune: r, Width: w, Style: style})
		col += w
	}

	blank := core.Cell{Rune: ' ', Width: 1, Style: style}
	for ; col < width; col++ {
		b.SetCell(x+col, y, blank)
	}

	return x + width
}

// DisplayColumn returns the screen column of rune index col in text, using
// the same width rules as DrawText. Indices past the end extend one cell per
// rune.
func DisplayColumn(text string, col int) int {
	screen := 0
	i := 0
	for _, r := range text {
		if i == col {
			return screen
		}
		w := core.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		screen += w
		i++
	}
	return screen + (col - i)
}
