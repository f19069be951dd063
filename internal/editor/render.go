package editor

import (
	"github.com/dshills/keyview/internal/renderer"
	"github.com/dshills/keyview/internal/renderer/backend"
	"github.com/dshills/keyview/internal/renderer/core"
)

// Render draws one frame: the viewport body, then the status line, then
// places the cursor and flushes. Every row is overwritten in full so the
// backend never shows a mix of two frames.
func (e *Editor) Render() {
	e.renderViewport()
	e.renderStatusLine()

	if e.mode == ModeInsert {
		e.backend.SetCursorStyle(backend.CursorBar)
	} else {
		e.backend.SetCursorStyle(backend.CursorBlock)
	}
	e.backend.ShowCursor(e.screenColumn(), e.cy)
	e.backend.Show()
}

// renderViewport draws viewportHeight buffer lines starting at viewportTop.
// Rows past the end of the document are drawn blank.
func (e *Editor) renderViewport() {
	style := core.DefaultStyle()
	for row := 0; row < e.viewportHeight(); row++ {
		renderer.DrawText(e.backend, 0, row, e.width, e.visibleText(row), style)
	}
}

// renderStatusLine draws the status line on the first reserved row and
// blanks the row below it.
func (e *Editor) renderStatusLine() {
	row := e.height - statusRows
	if row < 0 {
		row = 0
	}

	e.status.SetMode(e.mode.String())
	e.status.SetFilename(e.buf.Name())
	e.status.SetPosition(e.cx, e.cy)
	e.status.Resize(e.width)
	e.status.Render(e.backend, row)

	for r := row + 1; r < e.height; r++ {
		renderer.DrawText(e.backend, 0, r, e.width, "", core.DefaultStyle())
	}
}

// visibleText returns the part of the buffer line on screen row row that
// starts at viewportLeft.
func (e *Editor) visibleText(row int) string {
	line, ok := e.buf.LineAt(e.vtop + row)
	if !ok {
		return ""
	}
	if e.vleft == 0 {
		return line
	}
	runes := []rune(line)
	if e.vleft >= len(runes) {
		return ""
	}
	return string(runes[e.vleft:])
}

// screenColumn converts the cursor column into a terminal column, which
// differs from the rune index only for wide characters.
func (e *Editor) screenColumn() int {
	x := renderer.DisplayColumn(e.visibleText(e.cy), e.cx)
	if x >= e.width {
		x = e.width - 1
	}
	if x < 0 {
		x = 0
	}
	return x
}
