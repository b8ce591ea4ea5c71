package syntax

import "fmt"

// Pos represents the source span of a token or node.
// The zero value is an invalid position.
type Pos struct {
	filename string // source file name
	line     uint32 // 1-based line number
	col      uint32 // 1-based column number (byte offset in line)
	offset   int    // 0-based byte offset in the source
	length   int    // span length in bytes
}

// NewPos creates a new Pos with the given filename, line, column, byte offset and length.
// Line and column numbers are 1-based.
func NewPos(filename string, line, col uint32, offset, length int) Pos {
	return Pos{filename: filename, line: line, col: col, offset: offset, length: length}
}

// String returns a string representation of the position in the format
// "filename:line:col" or "line:col" if filename is empty.
func (p Pos) String() string {
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether the position is valid.
// A position is valid if line > 0.
func (p Pos) IsValid() bool {
	return p.line > 0
}

// Line returns the 1-based line number.
func (p Pos) Line() uint32 {
	return p.line
}

// Col returns the 1-based column number (byte offset in line).
func (p Pos) Col() uint32 {
	return p.col
}

// Offset returns the 0-based byte offset of the first byte of the span.
func (p Pos) Offset() int {
	return p.offset
}

// Len returns the length of the span in bytes.
func (p Pos) Len() int {
	return p.length
}

// End returns the byte offset immediately after the span.
func (p Pos) End() int {
	return p.offset + p.length
}

// Filename returns the source file name.
func (p Pos) Filename() string {
	return p.filename
}

// To returns a span starting at p and ending where q ends.
func (p Pos) To(q Pos) Pos {
	if !q.IsValid() || q.End() < p.offset {
		return p
	}
	p.length = q.End() - p.offset
	return p
}
