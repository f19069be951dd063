package buffer

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"
)

// ScratchName is the display label of a buffer that has no backing file.
const ScratchName = "Untitled"

// ErrNegativeIndex is returned by mutations given a negative line or column.
var ErrNegativeIndex = errors.New("negative index")

// Buffer is the ordered, 0-indexed list of lines of one document.
// Lines are never reordered; edits only grow a line or insert new lines.
// All methods are thread-safe.
type Buffer struct {
	mu    sync.RWMutex
	path  string
	lines []string
}

// NewBuffer creates an empty scratch buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferFromLines creates a scratch buffer holding a copy of lines.
func NewBufferFromLines(lines []string) *Buffer {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Buffer{lines: cp}
}

// Load reads the file at path into a new buffer.
// An empty path yields an empty scratch buffer with zero lines.
func Load(path string) (*Buffer, error) {
	if path == "" {
		return NewBuffer(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}

	return &Buffer{path: path, lines: lines}, nil
}

// ReadLines splits r into lines. Lines end at '\n' and a trailing '\r' is
// dropped. A final line terminator does not produce an extra empty line, but
// empty lines before it are kept.
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)

	lines := []string{}
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if err != nil && line == "" {
			break
		}

		line = strings.TrimSuffix(line, "\n")
		lines = append(lines, strings.TrimSuffix(line, "\r"))
		if err != nil {
			break
		}
	}
	return lines, nil
}

// Path returns the file the buffer was loaded from, or "" for scratch buffers.
func (b *Buffer) Path() string {
	return b.path
}

// Name returns the label shown in the status line.
func (b *Buffer) Name() string {
	if b.path == "" {
		return ScratchName
	}
	return b.path
}

// LineAt returns the text of line i. ok is false when i is out of range.
func (b *Buffer) LineAt(i int) (line string, ok bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i < 0 || i >= len(b.lines) {
		return "", false
	}
	return b.lines[i], true
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.lines)
}

// LineLen returns the length of line i in runes, or 0 when i is out of range.
func (b *Buffer) LineLen(i int) int {
	line, ok := b.LineAt(i)
	if !ok {
		return 0
	}
	return utf8.RuneCountInString(line)
}

// Text returns the whole document joined with '\n'.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return strings.Join(b.lines, "\n")
}

// AppendEmptyLineAfter inserts an empty line directly after line i.
// When i is at or past the end, the buffer grows with empty lines until
// line i+1 exists.
func (b *Buffer) AppendEmptyLineAfter(i int) error {
	if i < 0 {
		return ErrNegativeIndex
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if i >= len(b.lines) {
		b.growTo(i + 2)
		return nil
	}
	b.insertLine(i+1, "")
	return nil
}

// InsertRune inserts r before the rune at column col of line row.
// Missing lines are created empty and a column past the end of the line is
// padded with spaces.
func (b *Buffer) InsertRune(row, col int, r rune) error {
	if row < 0 || col < 0 {
		return ErrNegativeIndex
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.growTo(row + 1)
	runes := padTo([]rune(b.lines[row]), col)

	out := make([]rune, 0, len(runes)+1)
	out = append(out, runes[:col]...)
	out = append(out, r)
	out = append(out, runes[col:]...)
	b.lines[row] = string(out)
	return nil
}

// SplitLine breaks line row at column col: the text from col onwards moves
// to a new line inserted after row.
func (b *Buffer) SplitLine(row, col int) error {
	if row < 0 || col < 0 {
		return ErrNegativeIndex
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.growTo(row + 1)
	runes := []rune(b.lines[row])
	if col > len(runes) {
		col = len(runes)
	}

	b.lines[row] = string(runes[:col])
	b.insertLine(row+1, string(runes[col:]))
	return nil
}

// growTo appends empty lines until the buffer has at least n lines.
// Caller must hold the write lock.
func (b *Buffer) growTo(n int) {
	for len(b.lines) < n {
		b.lines = append(b.lines, "")
	}
}

// insertLine inserts text at index i (0 <= i <= len).
// Caller must hold the write lock.
func (b *Buffer) insertLine(i int, text string) {
	b.lines = append(b.lines, "")
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = text
}

func padTo(runes []rune, n int) []rune {
	for len(runes) < n {
		runes = append(runes, ' ')
	}
	return runes
}
