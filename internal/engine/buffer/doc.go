// Package buffer holds the document the editor displays: an ordered,
// 0-indexed list of lines loaded once from a file (or empty for a scratch
// buffer).
//
// Queries never panic. LineAt reports out-of-range indices through its
// boolean result and callers draw an empty line in their place.
//
// The only mutations are the ones Insert mode needs:
//
//   - InsertRune inserts a character at a line/column, creating missing lines
//   - SplitLine breaks a line in two at a column (Enter)
//   - AppendEmptyLineAfter grows the document past its loaded end
//
// Columns are rune indices, not byte offsets.
//
// Basic usage:
//
//	buf, err := buffer.Load("notes.txt")
//	if err != nil {
//	    return err
//	}
//	line, ok := buf.LineAt(3)
package buffer
