package buffer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if b.LineCount() != 0 {
		t.Errorf("expected 0 lines, got %d", b.LineCount())
	}
	if b.Name() != ScratchName {
		t.Errorf("expected name %q, got %q", ScratchName, b.Name())
	}
	if _, ok := b.LineAt(0); ok {
		t.Error("LineAt(0) on empty buffer should report no line")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	b, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") unexpected error: %v", err)
	}
	if b.LineCount() != 0 {
		t.Errorf("expected scratch buffer, got %d lines", b.LineCount())
	}
	if b.Path() != "" {
		t.Errorf("expected empty path, got %q", b.Path())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("abc\n\ndefg\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load unexpected error: %v", err)
	}

	want := []string{"abc", "", "defg"}
	if b.LineCount() != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), b.LineCount())
	}
	for i, w := range want {
		got, ok := b.LineAt(i)
		if !ok || got != w {
			t.Errorf("LineAt(%d) = (%q, %v), want (%q, true)", i, got, ok, w)
		}
	}
	if b.Name() != path {
		t.Errorf("expected name %q, got %q", path, b.Name())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FileError, got %T", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped fs.ErrNotExist, got %v", err)
	}
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single no newline", "abc", []string{"abc"}},
		{"single with newline", "abc\n", []string{"abc"}},
		{"trailing empty line kept", "abc\n\n", []string{"abc", ""}},
		{"interior empty line", "a\n\nb", []string{"a", "", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"only newline", "\n", []string{""}},
		{"cr before eof", "a\r", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReadLinesLongLine(t *testing.T) {
	long := strings.Repeat("x", 17<<20)

	got, err := ReadLines(strings.NewReader(long + "\nend\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	if len(got[0]) != len(long) || got[1] != "end" {
		t.Errorf("first line has length %d, second is %q", len(got[0]), got[1])
	}
}

func TestReadLinesError(t *testing.T) {
	readErr := errors.New("device gone")

	if _, err := ReadLines(iotest.ErrReader(readErr)); !errors.Is(err, readErr) {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestLineAtOutOfRange(t *testing.T) {
	b := NewBufferFromLines([]string{"one"})

	for _, i := range []int{-1, 1, 100} {
		if line, ok := b.LineAt(i); ok || line != "" {
			t.Errorf("LineAt(%d) = (%q, %v), want (\"\", false)", i, line, ok)
		}
	}
}

func TestLineLen(t *testing.T) {
	b := NewBufferFromLines([]string{"abc", "", "héllo"})

	tests := []struct {
		i    int
		want int
	}{
		{0, 3},
		{1, 0},
		{2, 5},
		{3, 0},
	}
	for _, tt := range tests {
		if got := b.LineLen(tt.i); got != tt.want {
			t.Errorf("LineLen(%d) = %d, want %d", tt.i, got, tt.want)
		}
	}
}

func TestNewBufferFromLinesCopies(t *testing.T) {
	src := []string{"a", "b"}
	b := NewBufferFromLines(src)
	src[0] = "changed"

	if line, _ := b.LineAt(0); line != "a" {
		t.Errorf("buffer should not alias its input, got %q", line)
	}
}

func TestAppendEmptyLineAfter(t *testing.T) {
	b := NewBufferFromLines([]string{"a", "b"})

	if err := b.AppendEmptyLineAfter(0); err != nil {
		t.Fatal(err)
	}
	if got := b.Text(); got != "a\n\nb" {
		t.Errorf("after insert in middle got %q", got)
	}

	if err := b.AppendEmptyLineAfter(5); err != nil {
		t.Fatal(err)
	}
	if b.LineCount() != 7 {
		t.Errorf("expected buffer to grow to 7 lines, got %d", b.LineCount())
	}

	if err := b.AppendEmptyLineAfter(-1); !errors.Is(err, ErrNegativeIndex) {
		t.Errorf("expected ErrNegativeIndex, got %v", err)
	}
}

func TestInsertRune(t *testing.T) {
	b := NewBufferFromLines([]string{"ac"})

	if err := b.InsertRune(0, 1, 'b'); err != nil {
		t.Fatal(err)
	}
	if line, _ := b.LineAt(0); line != "abc" {
		t.Errorf("expected \"abc\", got %q", line)
	}

	// Append at end of line
	if err := b.InsertRune(0, 3, 'd'); err != nil {
		t.Fatal(err)
	}
	if line, _ := b.LineAt(0); line != "abcd" {
		t.Errorf("expected \"abcd\", got %q", line)
	}

	// Past end of line pads with spaces
	if err := b.InsertRune(0, 6, 'x'); err != nil {
		t.Fatal(err)
	}
	if line, _ := b.LineAt(0); line != "abcd  x" {
		t.Errorf("expected padded line, got %q", line)
	}
}

func TestInsertRuneIntoEmptyBuffer(t *testing.T) {
	b := NewBuffer()

	if err := b.InsertRune(0, 0, 'h'); err != nil {
		t.Fatal(err)
	}
	if b.LineCount() != 1 {
		t.Fatalf("expected 1 line, got %d", b.LineCount())
	}
	if line, _ := b.LineAt(0); line != "h" {
		t.Errorf("expected \"h\", got %q", line)
	}
}

func TestInsertRuneMultibyte(t *testing.T) {
	b := NewBufferFromLines([]string{"hllo"})

	if err := b.InsertRune(0, 1, 'é'); err != nil {
		t.Fatal(err)
	}
	if line, _ := b.LineAt(0); line != "héllo" {
		t.Errorf("expected \"héllo\", got %q", line)
	}
	if b.LineLen(0) != 5 {
		t.Errorf("expected 5 runes, got %d", b.LineLen(0))
	}
}

func TestSplitLine(t *testing.T) {
	b := NewBufferFromLines([]string{"hello world", "next"})

	if err := b.SplitLine(0, 5); err != nil {
		t.Fatal(err)
	}
	if got := b.Text(); got != "hello\n world\nnext" {
		t.Errorf("unexpected text after split: %q", got)
	}

	// Splitting past the end opens an empty line
	if err := b.SplitLine(2, 99); err != nil {
		t.Fatal(err)
	}
	if got := b.Text(); got != "hello\n world\nnext\n" {
		t.Errorf("unexpected text after split at end: %q", got)
	}
}

func TestSplitLineGrowsEmptyBuffer(t *testing.T) {
	b := NewBuffer()

	if err := b.SplitLine(0, 0); err != nil {
		t.Fatal(err)
	}
	if b.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", b.LineCount())
	}
}

func TestNegativeIndices(t *testing.T) {
	b := NewBuffer()

	if err := b.InsertRune(-1, 0, 'x'); !errors.Is(err, ErrNegativeIndex) {
		t.Errorf("InsertRune: expected ErrNegativeIndex, got %v", err)
	}
	if err := b.SplitLine(0, -1); !errors.Is(err, ErrNegativeIndex) {
		t.Errorf("SplitLine: expected ErrNegativeIndex, got %v", err)
	}
	if b.LineCount() != 0 {
		t.Errorf("failed mutations should not grow the buffer, got %d lines", b.LineCount())
	}
}

func TestFileErrorMessage(t *testing.T) {
	err := &FileError{Op: "open", Path: "x.txt", Err: fs.ErrPermission}
	if !strings.Contains(err.Error(), "open x.txt") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("FileError should unwrap to its cause")
	}
}
