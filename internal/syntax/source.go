package syntax

import (
	"unicode"
	"unicode/utf8"
)

// source is a character reader with position tracking.
// It reads UTF-8 encoded source text and provides character-by-character access.
type source struct {
	// Input
	buf string // entire source text

	// Position tracking
	filename string // source file name
	line     uint32 // current line number (1-based)
	col      uint32 // current column number (1-based)

	// Current state
	ch    rune // current character, -1 for EOF
	offs  int  // byte offset of ch in buf
	roffs int  // byte offset immediately after ch

	// Invalid UTF-8
	invalid  bool // ch was decoded from an invalid byte
	nInvalid int  // invalid bytes read so far

	// Error handling
	errh func(line, col uint32, offs int, msg string)
}

// newSource creates a new source over src.
// The errh function is called for each error; if nil, errors are silently ignored.
func newSource(filename, src string, errh func(line, col uint32, offs int, msg string)) source {
	s := source{
		buf:      src,
		filename: filename,
		line:     1,
		col:      0,  // Will be incremented to 1 by first nextch()
		ch:       -1, // Sentinel: -1 means "before first char", prevents position update
		errh:     errh,
	}
	s.nextch()
	return s
}

// nextch reads the next character from the source and updates position.
// Sets s.ch to -1 at EOF.
//
// Position tracking: (line, col, offs) always refers to the position of s.ch after nextch() returns.
// Initial state: line=1, col=0, s.ch=-1
// After first nextch(): line=1, col=1, s.ch=first char
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.offs = s.roffs
	if s.roffs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRuneInString(s.buf[s.roffs:])
	s.invalid = r == utf8.RuneError && width == 1
	if s.invalid {
		s.nInvalid++
		s.error("invalid UTF-8 encoding")
		// Continue anyway to avoid getting stuck
	}

	s.ch = r
	s.roffs += width
}

// peek returns the character after s.ch without consuming anything, or -1 at EOF.
func (s *source) peek() rune {
	if s.roffs >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.buf[s.roffs:])
	return r
}

// mark captures the position of s.ch as the start of a token.
func (s *source) mark() Pos {
	return NewPos(s.filename, s.line, s.col, s.offs, 0)
}

// span completes a position started by mark, ending just before s.ch.
func (s *source) span(start Pos) Pos {
	start.length = s.offs - start.offset
	return start
}

// text returns the source text between start and s.ch.
func (s *source) text(start Pos) string {
	return s.buf[start.offset:s.offs]
}

// error reports a lexical error at the current position.
func (s *source) error(msg string) {
	if s.errh != nil {
		s.errh(s.line, s.col, s.offs, msg)
	}
}

// Character classification helpers

// isLetter reports whether r may start an identifier (letters or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' ||
		r >= utf8.RuneSelf && unicode.IsLetter(r)
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isHexDigit reports whether r is a hexadecimal digit (0-9, a-f, A-F).
func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= lower(r) && lower(r) <= 'f'
}

// lower returns the lowercase version of r if r is an ASCII letter.
// ('a' - 'A') is 0x20; OR-ing it in folds ASCII upper case onto lower case.
func lower(r rune) rune {
	return ('a' - 'A') | r
}

// isWhitespace reports whether r is a whitespace character (space, tab, or carriage return).
// Newline is handled separately because it may end a logical line.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

// isOperatorStart reports whether r can start an operator or delimiter.
func isOperatorStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '&', '|', '^', '~', '<', '>', '=', '!', '?', ':',
		'(', ')', '[', ']', '{', '}', ',', ';', '.', '@':
		return true
	}
	return false
}
