package editor

import (
	"strings"
	"testing"

	"github.com/dshills/keyview/internal/renderer/backend"
	"github.com/dshills/keyview/internal/renderer/statusline"
)

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-len([]rune(s)))
}

func TestRenderViewport(t *testing.T) {
	e, b := newTestEditor(t, []string{"hello", "hi"}, 30, 5)

	e.Clamp()
	e.Render()

	want := []string{pad("hello", 30), pad("hi", 30), pad("", 30)}
	for y, w := range want {
		if got := b.Row(y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
	if got := b.Row(4); got != pad("", 30) {
		t.Errorf("row below status line should be blank, got %q", got)
	}
	if b.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", b.Frames())
	}
}

func TestRenderStatusLine(t *testing.T) {
	e, b := newTestEditor(t, []string{"hello"}, 30, 5)

	e.Clamp()
	e.Render()

	row := b.Row(3)
	wantPrefix := " NORMAL  " + statusline.SeparatorRight + " Untitled"
	if !strings.HasPrefix(row, wantPrefix) {
		t.Errorf("status row %q should start with %q", row, wantPrefix)
	}
	wantSuffix := statusline.SeparatorLeft + " 0:0 "
	if !strings.HasSuffix(row, wantSuffix) {
		t.Errorf("status row %q should end with %q", row, wantSuffix)
	}
	if n := len([]rune(row)); n != 30 {
		t.Errorf("status row has %d cells, want 30", n)
	}

	cell := b.GetCell(1, 3)
	theme := statusline.DefaultTheme()
	if !cell.Style.Equals(theme.Mode) {
		t.Errorf("mode segment style = %+v, want %+v", cell.Style, theme.Mode)
	}
}

func TestRenderStatusTracksModeAndPosition(t *testing.T) {
	e, b := newTestEditor(t, []string{"hello", "world"}, 40, 6)

	mustApply(t, e, MoveDown, MoveRight, MoveRight, EnterMode(ModeInsert))
	e.Render()

	row := b.Row(4)
	if !strings.HasPrefix(row, " INSERT  ") {
		t.Errorf("status row %q should show INSERT", row)
	}
	if !strings.HasSuffix(row, " 2:1 ") {
		t.Errorf("status row %q should show position 2:1", row)
	}
}

func TestRenderOverwritesShorterLines(t *testing.T) {
	e, b := newTestEditor(t, []string{"a much longer line", "x"}, 20, 3) // viewport of 1 row

	e.Clamp()
	e.Render()
	if got := b.Row(0); got != pad("a much longer line", 20) {
		t.Fatalf("row 0 = %q", got)
	}

	mustApply(t, e, MoveDown)
	e.Render()
	if got := b.Row(0); got != pad("x", 20) {
		t.Errorf("stale text left on row 0: %q", got)
	}
}

func TestRenderCursor(t *testing.T) {
	e, b := newTestEditor(t, []string{"hello", "world"}, 30, 6)

	mustApply(t, e, MoveDown, MoveRight, MoveRight)
	e.Render()

	x, y, visible := b.CursorPosition()
	if !visible || x != 2 || y != 1 {
		t.Errorf("cursor at (%d,%d) visible=%v, want (2,1)", x, y, visible)
	}
	if b.CursorStyleValue() != backend.CursorBlock {
		t.Errorf("normal mode should use a block cursor")
	}

	mustApply(t, e, EnterMode(ModeInsert))
	e.Render()
	if b.CursorStyleValue() != backend.CursorBar {
		t.Errorf("insert mode should use a bar cursor")
	}
}

func TestRenderCursorAfterWideCharacters(t *testing.T) {
	e, b := newTestEditor(t, []string{"日本語"}, 30, 6)

	mustApply(t, e, MoveRight, MoveRight)
	e.Render()

	x, _, _ := b.CursorPosition()
	if x != 4 {
		t.Errorf("cursor should sit on the third wide character at column 4, got %d", x)
	}
}

func TestRenderTruncatesLongLines(t *testing.T) {
	e, b := newTestEditor(t, []string{strings.Repeat("abcdef", 10)}, 12, 4)

	e.Clamp()
	e.Render()
	if got := b.Row(0); got != "abcdefabcdef" {
		t.Errorf("row 0 = %q, want the first 12 cells", got)
	}
}

func TestRenderAfterResize(t *testing.T) {
	e, b := newTestEditor(t, numberedLines(20), 30, 10)

	b.Resize(25, 6)
	if err := e.HandleEvent(b.PollEvent()); err != nil {
		t.Fatal(err)
	}
	e.Clamp()
	e.Render()

	if n := len([]rune(b.Row(4))); n != 25 {
		t.Errorf("status row has %d cells after resize, want 25", n)
	}
	if !strings.HasPrefix(b.Row(4), " NORMAL  ") {
		t.Errorf("status line should move to the new row 4, got %q", b.Row(4))
	}
}
