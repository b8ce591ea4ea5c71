package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// tabWidth is the number of indentation columns a tab counts for.
const tabWidth = 8

// Lexer performs lexical analysis on Slate source code.
//
// Next returns one token per call. Indentation at the start of each logical
// line is turned into INDENT/DEDENT tokens, except while a bracket, paren,
// brace or template interpolation is open.
type Lexer struct {
	source // embedded character reader

	// Off-side rule state
	indents        []int // open indentation levels, indents[0] == 0
	pendingDedents int   // DEDENT tokens still owed to the caller
	pending        []Token
	atLineStart    bool

	// Nesting of (), [] and {} (template interpolations count as braces)
	parenDepth int
	brackDepth int
	braceDepth int

	// Template literal regions, innermost last
	templates []templateFrame

	// Configuration
	strictIndent bool // reject tabs and spaces mixed in one indentation

	diags []Diagnostic
	done  bool
	eof   Token
}

// templateFrame tracks one backtick region.
type templateFrame struct {
	inExpr     bool // inside ${ ... }
	braceDepth int  // brace depth within the interpolation, 1 right after ${
}

// NewLexer creates a new Lexer for src. The filename is only used in diagnostics;
// it defaults to "<input>".
func NewLexer(filename, src string) *Lexer {
	if filename == "" {
		filename = "<input>"
	}
	l := &Lexer{
		indents:     []int{0},
		atLineStart: true,
	}
	l.source = newSource(filename, src, func(line, col uint32, offs int, msg string) {
		l.errorAt(NewPos(filename, line, col, offs, 0), msg)
	})
	return l
}

// SetStrictIndent makes tabs and spaces mixed in the indentation of one line an error.
// By default their widths are summed (tab = 8 columns).
func (l *Lexer) SetStrictIndent(strict bool) {
	l.strictIndent = strict
}

// HasErrors reports whether any lexical error was recorded.
func (l *Lexer) HasErrors() bool {
	return len(l.diags) > 0
}

// Errors returns the lexical errors formatted as "file:line:col: message".
func (l *Lexer) Errors() []string {
	return formatDiagnostics(l.diags)
}

// Diagnostics returns the recorded lexical errors.
func (l *Lexer) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), l.diags...)
}

// Filename returns the display name used in diagnostics.
func (l *Lexer) Filename() string {
	return l.filename
}

// AllTokens drains the lexer up to and including EOF.
func (l *Lexer) AllTokens() []Token {
	var toks []Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Kind == _EOF {
			return toks
		}
	}
}

// Next scans and returns the next token. After EOF it keeps returning EOF.
func (l *Lexer) Next() Token {
	if l.done {
		return l.eof
	}
	if l.pendingDedents > 0 {
		l.pendingDedents--
		return l.marker(_Dedent)
	}
	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t
	}

	if n := len(l.templates); n > 0 && !l.templates[n-1].inExpr {
		return l.scanTemplateText()
	}

redo:
	if l.atLineStart && l.nesting() == 0 {
		if t, ok := l.indentation(); ok {
			return t
		}
	}

	l.skipWhitespace()
	start := l.mark()

	switch {
	case l.ch < 0:
		return l.scanEOF()

	case l.ch == '\n':
		l.nextch()
		if l.nesting() > 0 {
			goto redo
		}
		l.atLineStart = true
		return l.token(_Newline, start, nil)

	case l.ch == '#':
		l.skipComment()
		goto redo

	case l.ch == '\\' && (l.peek() == '\n' || l.peek() == '\r'):
		// explicit line joining
		l.nextch()
		if l.ch == '\r' {
			l.nextch()
		}
		if l.ch == '\n' {
			l.nextch()
		}
		goto redo

	case isLetter(l.ch):
		return l.scanIdent()

	case isDigit(l.ch):
		return l.scanNumber()

	case l.ch == '"' || l.ch == '\'':
		return l.scanString()

	case l.ch == '`':
		l.nextch()
		l.templates = append(l.templates, templateFrame{})
		return l.token(_TemplateStart, start, nil)

	case isOperatorStart(l.ch):
		kind := l.scanOperator()
		return l.token(kind, start, nil)

	default:
		ch, invalid := l.ch, l.invalid
		l.nextch()
		if invalid {
			// already reported by the source
			return l.token(_Error, start, nil)
		}
		return l.errorToken(start, fmt.Sprintf("unexpected character %q", ch))
	}
}

// nesting returns the number of open brackets, parens and braces.
func (l *Lexer) nesting() int {
	return l.parenDepth + l.brackDepth + l.braceDepth
}

// token builds a token spanning from start to the current character.
func (l *Lexer) token(kind Kind, start Pos, value any) Token {
	return Token{Kind: kind, Lexeme: l.text(start), Pos: l.span(start), Value: value}
}

// marker builds a zero-width structural token at the current character.
func (l *Lexer) marker(kind Kind) Token {
	return Token{Kind: kind, Pos: l.mark()}
}

// errorToken records msg at start and returns an ERROR token covering the scanned text.
func (l *Lexer) errorToken(start Pos, msg string) Token {
	l.errorAt(start, msg)
	return l.token(_Error, start, nil)
}

// errorAt records a lexical diagnostic.
func (l *Lexer) errorAt(pos Pos, msg string) {
	l.diags = append(l.diags, Diagnostic{Pos: pos, Msg: msg})
}

// skipWhitespace skips space, tab, and carriage return.
// Newline is not skipped here because it may end a logical line.
func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.nextch()
	}
}

// skipComment skips a # comment up to, but not including, the newline.
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch >= 0 {
		l.nextch()
	}
}

// ----------------------------------------------------------------------------
// Indentation

// indentation measures the leading whitespace of a logical line and compares it
// to the indentation stack. Blank and comment-only lines are skipped. It returns
// ok == false when the line stays at the current level.
func (l *Lexer) indentation() (Token, bool) {
	var (
		width        int
		tabs, spaces bool
		start        Pos
	)
	for {
		width, tabs, spaces = 0, false, false
		start = l.mark()
		for isWhitespace(l.ch) {
			switch l.ch {
			case ' ':
				width++
				spaces = true
			case '\t':
				width += tabWidth
				tabs = true
			}
			l.nextch()
		}
		if l.ch == '#' {
			l.skipComment()
		}
		if l.ch != '\n' {
			break
		}
		l.nextch()
	}

	l.atLineStart = false
	if l.ch < 0 {
		return Token{}, false
	}

	if tabs && spaces && l.strictIndent {
		l.errorAt(start, "mixed tabs and spaces in indentation")
		l.pending = append(l.pending, l.token(_Error, start, nil))
	}

	top := l.indents[len(l.indents)-1]
	switch {
	case width > top:
		l.indents = append(l.indents, width)
		return l.marker(_Indent), true

	case width < top:
		n := 0
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
			l.indents = l.indents[:len(l.indents)-1]
			n++
		}
		if l.indents[len(l.indents)-1] != width {
			pos := l.mark()
			l.errorAt(pos, "inconsistent indentation")
			l.pending = append(l.pending, Token{Kind: _Error, Pos: pos})
		}
		l.pendingDedents = n - 1
		return l.marker(_Dedent), true
	}

	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t, true
	}
	return Token{}, false
}

// scanEOF flushes the indentation stack with DEDENT tokens and then emits EOF.
func (l *Lexer) scanEOF() Token {
	start := l.mark()
	if len(l.templates) > 0 {
		l.templates = nil
		l.braceDepth = 0
		return l.errorToken(start, "unterminated template literal")
	}
	if n := len(l.indents) - 1; n > 0 {
		l.indents = l.indents[:1]
		l.pendingDedents = n - 1
		return l.marker(_Dedent)
	}
	l.done = true
	l.eof = l.marker(_EOF)
	return l.eof
}

// ----------------------------------------------------------------------------
// Identifiers and literals

// scanIdent scans an identifier or keyword.
func (l *Lexer) scanIdent() Token {
	start := l.mark()
	for isLetter(l.ch) || isDigit(l.ch) {
		l.nextch()
	}

	kind := LookupKeyword(l.text(start))
	switch kind {
	case _True:
		return l.token(kind, start, true)
	case _False:
		return l.token(kind, start, false)
	}
	return l.token(kind, start, nil)
}

// scanNumber scans an integer, hexadecimal or floating point literal.
func (l *Lexer) scanNumber() Token {
	start := l.mark()

	if l.ch == '0' && lower(l.peek()) == 'x' {
		l.nextch()
		l.nextch()
		valid := isHexDigit(l.ch)
		for isHexDigit(l.ch) {
			l.nextch()
		}
		if isLetter(l.ch) || isDigit(l.ch) {
			valid = false
			for isLetter(l.ch) || isDigit(l.ch) {
				l.nextch()
			}
		}
		if !valid {
			return l.errorToken(start, "invalid hexadecimal literal")
		}
		v, err := strconv.ParseInt(l.text(start)[2:], 16, 64)
		if err != nil {
			return l.errorToken(start, "integer literal out of range")
		}
		return l.token(_Int, start, v)
	}

	kind := _Int
	l.scanDecimalDigits()

	// A dot only starts a fraction when a digit follows, so 1..5 stays a range.
	if l.ch == '.' && isDigit(l.peek()) {
		kind = _Float
		l.nextch()
		l.scanDecimalDigits()
	}

	if lower(l.ch) == 'e' {
		kind = _Float
		l.nextch()
		if l.ch == '+' || l.ch == '-' {
			l.nextch()
		}
		if !isDigit(l.ch) {
			return l.errorToken(start, "invalid exponent in numeric literal")
		}
		l.scanDecimalDigits()
	}

	text := l.text(start)
	if kind == _Float {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return l.errorToken(start, "invalid floating point literal")
		}
		return l.token(_Float, start, v)
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return l.errorToken(start, "integer literal out of range")
	}
	return l.token(_Int, start, v)
}

// scanDecimalDigits scans decimal digits.
func (l *Lexer) scanDecimalDigits() {
	for isDigit(l.ch) {
		l.nextch()
	}
}

// scanString scans a single- or double-quoted string literal.
// Strings may span lines. The token value is the decoded content.
func (l *Lexer) scanString() Token {
	start := l.mark()
	quote := l.ch
	nInvalid := l.nInvalid
	l.nextch()

	var b strings.Builder
	for {
		switch {
		case l.ch == quote:
			l.nextch()
			if l.nInvalid > nInvalid {
				// the bad bytes are already reported
				return l.token(_Error, start, nil)
			}
			return l.token(_String, start, b.String())

		case l.ch < 0:
			return l.errorToken(start, "unterminated string literal")

		case l.ch == '\\':
			l.nextch()
			if l.ch < 0 {
				continue
			}
			b.WriteRune(unescape(l.ch))
			l.nextch()

		default:
			b.WriteRune(l.ch)
			l.nextch()
		}
	}
}

// unescape decodes the character following a backslash.
// Unknown escapes stand for the character itself.
func unescape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return ch
}

// ----------------------------------------------------------------------------
// Template literals

// scanTemplateText scans inside a backtick region, outside any ${ } interpolation.
func (l *Lexer) scanTemplateText() Token {
	start := l.mark()
	nInvalid := l.nInvalid
	f := &l.templates[len(l.templates)-1]

	switch {
	case l.ch < 0:
		l.templates = l.templates[:len(l.templates)-1]
		return l.errorToken(start, "unterminated template literal")

	case l.ch == '`':
		l.nextch()
		l.templates = l.templates[:len(l.templates)-1]
		return l.token(_TemplateEnd, start, nil)

	case l.ch == '$' && l.peek() == '{':
		l.nextch()
		l.nextch()
		f.inExpr = true
		f.braceDepth = 1
		l.braceDepth++
		return l.token(_TemplateExprStart, start, nil)

	case l.ch == '$' && isLetter(l.peek()):
		l.nextch()
		nameStart := l.mark()
		for isLetter(l.ch) || isDigit(l.ch) {
			l.nextch()
		}
		return l.token(_TemplateSimpleVar, start, l.text(nameStart))
	}

	var b strings.Builder
	for l.ch >= 0 && l.ch != '`' && !l.atInterpolation() {
		if l.ch == '\\' {
			l.nextch()
			if l.ch < 0 {
				break
			}
			b.WriteRune(unescape(l.ch))
			l.nextch()
			continue
		}
		b.WriteRune(l.ch)
		l.nextch()
	}
	if l.nInvalid > nInvalid {
		return l.token(_Error, start, nil)
	}
	return l.token(_TemplateText, start, b.String())
}

// atInterpolation reports whether the current character starts $name or ${.
func (l *Lexer) atInterpolation() bool {
	return l.ch == '$' && (l.peek() == '{' || isLetter(l.peek()))
}

// ----------------------------------------------------------------------------
// Operators

// got consumes the current character if it is ch.
func (l *Lexer) got(ch rune) bool {
	if l.ch == ch {
		l.nextch()
		return true
	}
	return false
}

// scanOperator scans an operator or delimiter and returns its kind.
// It also maintains bracket nesting and template interpolation depth.
func (l *Lexer) scanOperator() Kind {
	ch := l.ch
	l.nextch()

	switch ch {
	case '+':
		switch {
		case l.got('+'):
			return _Inc
		case l.got('='):
			return _AddAssign
		}
		return _Add
	case '-':
		switch {
		case l.got('-'):
			return _Dec
		case l.got('='):
			return _SubAssign
		case l.got('>'):
			return _Arrow
		}
		return _Sub
	case '*':
		if l.got('*') {
			if l.got('=') {
				return _PowAssign
			}
			return _Pow
		}
		if l.got('=') {
			return _MulAssign
		}
		return _Mul
	case '/':
		if l.got('/') {
			if l.got('=') {
				return _FloorDivAssign
			}
			return _FloorDiv
		}
		if l.got('=') {
			return _DivAssign
		}
		return _Div
	case '%':
		if l.got('=') {
			return _RemAssign
		}
		return _Rem
	case '&':
		if l.got('&') {
			if l.got('=') {
				return _AndAndAssign
			}
			return _AndAnd
		}
		if l.got('=') {
			return _AndAssign
		}
		return _And
	case '|':
		if l.got('|') {
			if l.got('=') {
				return _OrOrAssign
			}
			return _OrOr
		}
		if l.got('=') {
			return _OrAssign
		}
		return _Or
	case '^':
		if l.got('=') {
			return _XorAssign
		}
		return _Xor
	case '~':
		return _Tilde
	case '<':
		if l.got('<') {
			if l.got('=') {
				return _ShlAssign
			}
			return _Shl
		}
		if l.got('=') {
			return _Leq
		}
		return _Lss
	case '>':
		if l.got('>') {
			if l.got('>') {
				if l.got('=') {
					return _UShrAssign
				}
				return _UShr
			}
			if l.got('=') {
				return _ShrAssign
			}
			return _Shr
		}
		if l.got('=') {
			return _Geq
		}
		return _Gtr
	case '=':
		switch {
		case l.got('='):
			return _Eql
		case l.got('>'):
			return _FatArrow
		}
		return _Assign
	case '!':
		if l.got('=') {
			return _Neq
		}
		return _Not
	case '?':
		switch {
		case l.got('?'):
			if l.got('=') {
				return _NullishAssign
			}
			return _Nullish
		case l.got('.'):
			return _QuestionDot
		}
		return _Question
	case '.':
		if l.got('.') {
			if l.got('<') {
				return _RangeExcl
			}
			return _Range
		}
		return _Dot
	case ':':
		return _Colon
	case ',':
		return _Comma
	case ';':
		return _Semi
	case '@':
		return _At
	case '(':
		l.parenDepth++
		return _Lparen
	case ')':
		if l.parenDepth > 0 {
			l.parenDepth--
		}
		return _Rparen
	case '[':
		l.brackDepth++
		return _Lbrack
	case ']':
		if l.brackDepth > 0 {
			l.brackDepth--
		}
		return _Rbrack
	case '{':
		if n := len(l.templates); n > 0 && l.templates[n-1].inExpr {
			l.templates[n-1].braceDepth++
		}
		l.braceDepth++
		return _Lbrace
	case '}':
		if l.braceDepth > 0 {
			l.braceDepth--
		}
		if n := len(l.templates); n > 0 && l.templates[n-1].inExpr {
			f := &l.templates[n-1]
			f.braceDepth--
			if f.braceDepth == 0 {
				f.inExpr = false
				return _TemplateExprEnd
			}
		}
		return _Rbrace
	}

	l.errorAt(l.mark(), fmt.Sprintf("unexpected character %q", ch))
	return _Error
}
