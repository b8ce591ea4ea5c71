package syntax

import (
	"errors"
	"fmt"
)

// Default number of errors before aborting parse.
const defaultMaxErrors = 100

// Parser performs syntax analysis on Slate source code.
//
// The parser drains its Lexer into a token buffer up front and walks it with
// an integer cursor. Sub-parsers return errors instead of recording them;
// statement loops are the recovery points.
type Parser struct {
	toks []Token
	cur  int

	// Position of the last consumed token that carries source text.
	lastPos Pos

	// Number of INDENT tokens consumed and not yet closed by a DEDENT.
	indent int

	// Error handling
	errs      []*SyntaxError
	maxErrors int
	abort     bool // set to true when error limit reached
}

// NewParser creates a new Parser reading every token from lx.
func NewParser(lx *Lexer) *Parser {
	p := &Parser{
		toks:      lx.AllTokens(),
		maxErrors: defaultMaxErrors,
	}
	p.lastPos = p.toks[0].Pos
	return p
}

// SetMaxErrors sets how many syntax errors are recorded before parsing stops.
// A value <= 0 removes the limit.
func (p *Parser) SetMaxErrors(n int) {
	p.maxErrors = n
}

// Tokens returns the token buffer the parser reads from.
func (p *Parser) Tokens() []Token {
	return p.toks
}

// ----------------------------------------------------------------------------
// Token navigation

// tok returns the current token.
func (p *Parser) tok() Token {
	return p.toks[p.cur]
}

// at reports whether the current token has kind k.
func (p *Parser) at(k Kind) bool {
	return p.toks[p.cur].Kind == k
}

// peek returns the token n positions ahead of the current one.
// Looking past the end yields the EOF token.
func (p *Parser) peek(n int) Token {
	if i := p.cur + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

// next advances to the next token. The cursor never moves past EOF.
func (p *Parser) next() {
	t := p.toks[p.cur]
	switch t.Kind {
	case _Indent:
		p.indent++
	case _Dedent:
		if p.indent > 0 {
			p.indent--
		}
	case _Newline, _EOF:
	default:
		p.lastPos = t.Pos
	}
	if p.cur < len(p.toks)-1 {
		p.cur++
	}
}

// parserState is a cursor position the parser can back up to.
type parserState struct {
	cur, indent int
	lastPos     Pos
	errs        int
	abort       bool
}

func (p *Parser) save() parserState {
	return parserState{cur: p.cur, indent: p.indent, lastPos: p.lastPos, errs: len(p.errs), abort: p.abort}
}

// restore backs up to st, dropping errors recorded since.
func (p *Parser) restore(st parserState) {
	p.cur, p.indent, p.lastPos = st.cur, st.indent, st.lastPos
	p.errs = p.errs[:st.errs]
	p.abort = st.abort
}

// got reports whether the current token is k.
// If so, it consumes the token and returns true.
func (p *Parser) got(k Kind) bool {
	if p.at(k) {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it matches k.
// Otherwise, it returns an error naming the expected token.
func (p *Parser) want(k Kind) error {
	if p.got(k) {
		return nil
	}
	kind, ok := wantKinds[k]
	if !ok {
		kind = ErrExpectedToken
	}
	return p.expected(kind, "'"+k.String()+"'")
}

// wantKinds maps punctuation to the error kind reported when it is missing.
var wantKinds = map[Kind]ErrorKind{
	_Lparen: ErrExpectedLParen,
	_Rparen: ErrExpectedRParen,
	_Rbrack: ErrExpectedRBracket,
	_Rbrace: ErrExpectedRBrace,
	_Colon:  ErrExpectedColon,
	_Semi:   ErrExpectedSemicolon,
	_Arrow:  ErrExpectedArrow,
	_Assign: ErrExpectedAssign,
}

// gotClause consumes k when it is the current token or when it starts the
// next line, as in an else placed below a single-line then branch.
func (p *Parser) gotClause(k Kind) bool {
	if p.got(k) {
		return true
	}
	if p.at(_Newline) && p.peek(1).Kind == k {
		p.next()
		p.next()
		return true
	}
	return false
}

// endTrailer consumes an optional "end X" trailer, on this line or the next,
// when the token after end satisfies match. Nothing is consumed otherwise.
func (p *Parser) endTrailer(match func(Token) bool) bool {
	i := 0
	if p.at(_Newline) {
		i = 1
	}
	if p.peek(i).Kind != _End || !match(p.peek(i+1)) {
		return false
	}
	for ; i >= 0; i-- {
		p.next()
	}
	p.next()
	return true
}

// endKeyword matches an end trailer naming keyword k, such as end while.
func endKeyword(k Kind) func(Token) bool {
	return func(t Token) bool { return t.Kind == k }
}

// endName matches an end trailer repeating a declared name.
func endName(name string) func(Token) bool {
	return func(t Token) bool { return t.Kind == _Ident && t.Lexeme == name }
}

// atBlock reports whether an indented block starts here.
func (p *Parser) atBlock() bool {
	return p.at(_Newline) && p.peek(1).Kind == _Indent
}

// span returns the span from start through the last consumed token.
func (p *Parser) span(start Pos) Pos {
	return start.To(p.lastPos)
}

// ----------------------------------------------------------------------------
// Error handling

// errorAt creates a syntax error at pos.
func (p *Parser) errorAt(kind ErrorKind, pos Pos, msg string) error {
	return &SyntaxError{Kind: kind, Pos: pos, Msg: msg}
}

// expected creates an "expected what, found ..." error at the current token.
// Errors hit when only line ends remain are reported as ErrUnexpectedEOF.
func (p *Parser) expected(kind ErrorKind, what string) error {
	t := p.tok()
	if p.atEnd() {
		kind = ErrUnexpectedEOF
	}
	return p.errorAt(kind, t.Pos, fmt.Sprintf("expected %s, found %s", what, describe(t)))
}

// atEnd reports whether nothing but NEWLINE, DEDENT and EOF tokens remain.
func (p *Parser) atEnd() bool {
	for _, t := range p.toks[p.cur:] {
		switch t.Kind {
		case _Newline, _Dedent, _EOF:
		default:
			return false
		}
	}
	return true
}

// describe names a token for error messages.
func describe(t Token) string {
	switch {
	case t.Kind == _EOF:
		return "end of file"
	case t.Kind == _Newline:
		return "newline"
	case t.Kind == _Indent:
		return "indentation"
	case t.Kind == _Dedent:
		return "end of block"
	case t.Kind == _Error:
		return fmt.Sprintf("invalid token %q", t.Lexeme)
	case t.Kind == _Ident:
		return "identifier " + t.Lexeme
	case t.Kind.IsLiteral():
		return "literal " + t.Lexeme
	case t.Kind.IsKeyword():
		return "keyword " + t.Lexeme
	case t.Kind.IsTemplate():
		return "template " + t.Kind.String()
	}
	return "'" + t.Lexeme + "'"
}

// record stores a syntax error returned by a sub-parser.
func (p *Parser) record(err error) {
	if p.abort {
		return
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		se = &SyntaxError{Kind: ErrInternal, Pos: p.tok().Pos, Msg: err.Error()}
	}
	p.errs = append(p.errs, se)

	if p.maxErrors > 0 && len(p.errs) >= p.maxErrors {
		p.abort = true
		p.errs = append(p.errs, &SyntaxError{Kind: ErrInternal, Pos: se.Pos, Msg: "too many errors; aborting parse"})
	}
}

// HasErrors reports whether any syntax error was recorded.
func (p *Parser) HasErrors() bool {
	return len(p.errs) > 0
}

// Errors returns the syntax errors formatted as "file:line:col: message".
func (p *Parser) Errors() []string {
	return formatDiagnostics(p.Diagnostics())
}

// Diagnostics returns the recorded syntax errors.
func (p *Parser) Diagnostics() []Diagnostic {
	diags := make([]Diagnostic, len(p.errs))
	for i, e := range p.errs {
		diags[i] = Diagnostic{Pos: e.Pos, Msg: e.Msg}
	}
	return diags
}

// FirstError returns the first error encountered, or nil if none.
func (p *Parser) FirstError() error {
	if len(p.errs) == 0 {
		return nil
	}
	return p.errs[0]
}

// isStmtStart reports whether k begins a statement; panic-mode recovery stops there.
func isStmtStart(k Kind) bool {
	switch k {
	case _Var, _Val, _Def, _If, _While, _For, _Loop, _Match,
		_Import, _Package, _Data, _Return, _Break, _Continue:
		return true
	}
	return false
}

// synchronize skips tokens after an error until a NEWLINE or statement keyword
// at indentation level, or the end of the enclosing block.
// This is panic-mode error recovery.
func (p *Parser) synchronize(level int) {
	if p.at(_EOF) || p.at(_Dedent) && p.indent == level && level > 0 {
		return
	}
	skipped := p.tok().Kind
	p.next()
	if skipped == _Dedent && p.indent == level {
		return
	}
	for {
		k := p.tok().Kind
		switch {
		case k == _EOF:
			return
		case k == _Dedent:
			if p.indent <= level && level > 0 {
				return
			}
			p.next()
			if p.indent == level {
				// a nested block of the broken statement just closed
				return
			}
		case k == _Newline && p.peek(1).Kind == _Indent:
			// the broken line opened a block; skip it too
			p.next()
		case (k == _Newline || isStmtStart(k)) && p.indent == level:
			return
		default:
			p.next()
		}
	}
}

// ----------------------------------------------------------------------------
// Parsing entry points

// ParseProgram parses the whole token stream.
//
// The returned Node is always the program assembled from every statement
// that parsed, so tools can use it even when Err is set. Err is an
// ErrInternal aggregate when any syntax error was recorded; Errors lists them.
func (p *Parser) ParseProgram() ParseResult[*Program] {
	prog := &Program{}
	start := p.tok().Pos
	prog.Body = p.stmtList(0)
	prog.pos = p.span(start)

	if len(p.errs) > 0 {
		first := p.errs[0]
		return ParseResult[*Program]{
			Node: prog,
			Err: &SyntaxError{
				Kind: ErrInternal,
				Pos:  first.Pos,
				Msg:  syntaxErrorCount(len(p.errs)),
			},
		}
	}
	return ParseResult[*Program]{Node: prog}
}

func syntaxErrorCount(n int) string {
	if n == 1 {
		return "1 syntax error"
	}
	return fmt.Sprintf("%d syntax errors", n)
}

// ParseExpression parses a single expression that must span the whole input.
func (p *Parser) ParseExpression() ParseResult[Expr] {
	for p.at(_Newline) {
		p.next()
	}
	x, err := p.expr()
	if err == nil {
		for p.at(_Newline) || p.at(_Dedent) {
			p.next()
		}
		if !p.at(_EOF) {
			err = p.errorAt(ErrUnexpectedToken, p.tok().Pos, "unexpected "+describe(p.tok())+" after expression")
		}
	}
	if err != nil {
		p.record(err)
		return ParseResult[Expr]{Err: p.errs[len(p.errs)-1]}
	}
	return ParseResult[Expr]{Node: x}
}

// ----------------------------------------------------------------------------
// Statements

// stmtList parses statements until the end of the block opened at indentation
// level, or EOF for the top level (level 0). Each failing statement is
// recorded and followed by panic-mode recovery.
func (p *Parser) stmtList(level int) []Stmt {
	var list []Stmt
	for !p.abort {
		switch p.tok().Kind {
		case _Newline, _Semi:
			p.next()
			continue
		case _EOF:
			return list
		case _Dedent:
			if level > 0 {
				return list
			}
			p.next() // stray DEDENT after an earlier indentation error
			continue
		case _Indent:
			s, err := p.strayIndent()
			if err != nil {
				p.record(err)
			}
			list = append(list, s)
			continue
		}

		s, err := p.stmt()
		if err == nil {
			list = append(list, s)
			err = p.endOfStmt()
		}
		if err != nil {
			p.record(err)
			if p.atDetachedBlock(err) {
				list = append(list, p.hoistBlock()...)
				continue
			}
			p.synchronize(level)
		}
	}
	return list
}

// atDetachedBlock reports whether err was reported at a line end that opens
// an indented block the broken statement could not take as its value.
func (p *Parser) atDetachedBlock(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Kind == ErrExpectedExpression &&
		se.Pos == p.tok().Pos && p.atBlock()
}

// hoistBlock parses the statements of the indented block that starts at the
// current NEWLINE as if they were written at the enclosing level.
func (p *Parser) hoistBlock() []Stmt {
	p.next() // NEWLINE
	p.next() // INDENT
	list := p.stmtList(p.indent)
	p.got(_Dedent)
	return list
}

// strayIndent reports an indented block that no construct opened and parses
// it as a block so the matching DEDENT stays balanced.
func (p *Parser) strayIndent() (Stmt, error) {
	pos := p.tok().Pos
	p.next() // INDENT
	b := &BlockExpr{}
	b.pos = p.tok().Pos
	b.Stmts = p.stmtList(p.indent)
	p.got(_Dedent)
	b.pos = p.span(b.pos)
	b.Value = blockValue(b.Stmts)
	s := &ExprStmt{X: b}
	s.pos = b.pos
	return s, p.errorAt(ErrMismatchedIndentation, pos, "unexpected indentation")
}

// endOfStmt checks that a statement is properly terminated.
func (p *Parser) endOfStmt() error {
	return p.endOfLine("statement")
}

// endOfLine checks that the construct named by what ends its line: a NEWLINE
// or ';' (consumed), the end of the enclosing block, or a block it opened.
func (p *Parser) endOfLine(what string) error {
	switch p.tok().Kind {
	case _Newline, _Semi:
		p.next()
		return nil
	case _EOF, _Dedent:
		return nil
	}
	// a statement that ended with an indented block is already terminated
	if p.cur > 0 && p.toks[p.cur-1].Kind == _Dedent {
		return nil
	}
	return p.expected(ErrExpectedNewline, "newline after "+what)
}

// stmt parses a statement.
func (p *Parser) stmt() (Stmt, error) {
	switch p.tok().Kind {
	case _Var, _Val:
		return p.varDecl()
	case _Def:
		if p.peek(1).Kind != _Lparen {
			return p.funcDecl()
		}
	case _Import:
		return p.importStmt()
	case _Package:
		return p.packageStmt()
	case _Data, _Private:
		return p.dataDecl()
	}
	return p.exprStmt()
}

// exprStmt parses an expression used as a statement.
func (p *Parser) exprStmt() (Stmt, error) {
	pos := p.tok().Pos
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	s := &ExprStmt{X: x}
	s.pos = p.span(pos)
	return s, nil
}

// name parses an identifier and returns a Name node.
func (p *Parser) name() (*Name, error) {
	t := p.tok()
	if t.Kind != _Ident {
		return nil, p.expected(ErrExpectedIdentifier, "identifier")
	}
	n := &Name{Value: t.Lexeme}
	n.pos = t.Pos
	p.next()
	return n, nil
}

// ----------------------------------------------------------------------------
// Variable declarations

// varDecl parses: var Pattern [= Value] | val Pattern = Value
func (p *Parser) varDecl() (*VarDecl, error) {
	d := &VarDecl{Mutable: p.at(_Var)}
	pos := p.tok().Pos
	p.next()

	target, err := p.pattern()
	if err != nil {
		return nil, err
	}
	d.Target = target

	if p.got(_Assign) {
		nl := p.tok()
		st := p.save()
		if d.Value, err = p.expr(); err != nil {
			return nil, err
		}
		if b, ok := d.Value.(*BlockExpr); ok && nl.Kind == _Newline && b.Value == nil {
			// a block with no value leaves the declaration uninitialized;
			// its statements are read at the enclosing level instead
			p.restore(st)
			return nil, p.errorAt(ErrExpectedExpression, nl.Pos, "expected expression after '=', found a block without a value")
		}
	} else if !d.Mutable {
		return nil, p.expected(ErrExpectedAssign, "'=' and initializer in val declaration")
	}

	d.pos = p.span(pos)
	return d, nil
}

// ----------------------------------------------------------------------------
// Function declarations

// funcDecl parses: def Name(Params) = Body [end Name]
func (p *Parser) funcDecl() (*FuncDecl, error) {
	d := &FuncDecl{}
	pos := p.tok().Pos
	p.next() // def

	var err error
	if d.Name, err = p.name(); err != nil {
		return nil, err
	}
	if d.Params, err = p.paramList(); err != nil {
		return nil, err
	}
	if !p.got(_Assign) {
		return nil, p.expected(ErrInvalidFunction, "'=' before body of function "+d.Name.Value)
	}
	if d.Body, err = p.body(); err != nil {
		return nil, err
	}
	d.HasEnd = p.endTrailer(endName(d.Name.Value))

	d.pos = p.span(pos)
	return d, nil
}

// paramList parses (p1, p2, ...) and rejects repeated names.
func (p *Parser) paramList() ([]*Name, error) {
	if err := p.want(_Lparen); err != nil {
		return nil, err
	}

	var params []*Name
	seen := make(map[string]bool)
	for !p.at(_Rparen) {
		n, err := p.name()
		if err != nil {
			return nil, err
		}
		if seen[n.Value] {
			return nil, p.errorAt(ErrDuplicateParameter, n.pos, "duplicate parameter "+n.Value)
		}
		seen[n.Value] = true
		params = append(params, n)

		if !p.got(_Comma) {
			break
		}
	}

	if err := p.want(_Rparen); err != nil {
		return nil, err
	}
	return params, nil
}

// ----------------------------------------------------------------------------
// Import and package statements

// importStmt parses:
//
//	import a.b.c
//	import a.b.{x, y => z}
//	import a.b._
//	import a.b.*
func (p *Parser) importStmt() (*ImportStmt, error) {
	s := &ImportStmt{}
	pos := p.tok().Pos
	p.next() // import

	if !p.at(_Ident) {
		return nil, p.expected(ErrInvalidImport, "module path after import")
	}
	first, _ := p.name()
	s.Path = append(s.Path, first)

	for p.got(_Dot) {
		t := p.tok()
		switch {
		case t.Kind == _Ident && t.Lexeme == "_", t.Kind == _Mul:
			p.next()
			s.Kind = ImportWildcard
		case t.Kind == _Ident:
			n, _ := p.name()
			s.Path = append(s.Path, n)
			continue
		case t.Kind == _Lbrace:
			items, err := p.importItems()
			if err != nil {
				return nil, err
			}
			s.Kind = ImportSelective
			s.Items = items
		default:
			return nil, p.expected(ErrInvalidImport, "name, '{', '_' or '*' after '.' in import")
		}
		break
	}

	s.pos = p.span(pos)
	return s, nil
}

// importItems parses {name, name => alias, ...}.
func (p *Parser) importItems() ([]*ImportItem, error) {
	lbrace := p.tok().Pos
	p.next() // {

	var items []*ImportItem
	for !p.at(_Rbrace) {
		item := &ImportItem{}
		pos := p.tok().Pos
		n, err := p.name()
		if err != nil {
			return nil, err
		}
		item.Name = n
		if p.got(_FatArrow) {
			if item.Alias, err = p.name(); err != nil {
				return nil, err
			}
		}
		item.pos = p.span(pos)
		items = append(items, item)

		if !p.got(_Comma) {
			break
		}
	}
	if err := p.want(_Rbrace); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, p.errorAt(ErrInvalidImport, lbrace, "empty import list")
	}
	return items, nil
}

// packageStmt parses: package a.b.c
func (p *Parser) packageStmt() (*PackageStmt, error) {
	s := &PackageStmt{}
	pos := p.tok().Pos
	p.next() // package

	for {
		n, err := p.name()
		if err != nil {
			return nil, err
		}
		s.Path = append(s.Path, n)
		if !p.got(_Dot) {
			break
		}
	}

	s.pos = p.span(pos)
	return s, nil
}

// ----------------------------------------------------------------------------
// Data declarations

// dataDecl parses a data type declaration with its constructors and methods.
func (p *Parser) dataDecl() (*DataDecl, error) {
	d := &DataDecl{}
	pos := p.tok().Pos

	d.Private = p.got(_Private)
	if !p.got(_Data) {
		return nil, p.expected(ErrInvalidDataDecl, "'data' after 'private'")
	}

	var err error
	if d.Name, err = p.name(); err != nil {
		return nil, err
	}

	if p.atBlock() {
		p.next() // NEWLINE
		p.next() // INDENT
	body:
		for {
			switch p.tok().Kind {
			case _Newline, _Semi:
				p.next()
			case _Dedent:
				p.next()
				break body
			case _EOF:
				break body
			case _Case:
				c, err := p.constructor()
				if err != nil {
					return nil, err
				}
				d.Constructors = append(d.Constructors, c)
				if err := p.endOfLine("constructor"); err != nil {
					return nil, err
				}
			case _Def:
				m, err := p.funcDecl()
				if err != nil {
					return nil, err
				}
				d.Methods = append(d.Methods, m)
				if err := p.endOfLine("method"); err != nil {
					return nil, err
				}
			default:
				return nil, p.expected(ErrInvalidDataDecl, "'case' or 'def' in body of data "+d.Name.Value)
			}
		}
	}
	d.HasEnd = p.endTrailer(endName(d.Name.Value))

	d.pos = p.span(pos)
	return d, nil
}

// constructor parses: case Name | case Name(params)
func (p *Parser) constructor() (*Constructor, error) {
	c := &Constructor{}
	pos := p.tok().Pos
	p.next() // case

	var err error
	if c.Name, err = p.name(); err != nil {
		return nil, err
	}
	if p.at(_Lparen) {
		if c.Params, err = p.paramList(); err != nil {
			return nil, err
		}
		if c.Params == nil {
			c.Params = []*Name{}
		}
	} else {
		c.Singleton = true
	}

	c.pos = p.span(pos)
	return c, nil
}
