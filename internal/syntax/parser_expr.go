package syntax

// ----------------------------------------------------------------------------
// Expressions
//
// Precedence layers, loosest first:
//
//	assignment   right-associative, = and compound operators
//	ternary      Cond ? Then : Else
//	binaryExpr   precedence climbing over Kind.Precedence
//	unaryExpr    + - ! not ~ ++ -- typeof
//	postfixExpr  calls, selectors, indexing, postfix ++ --
//	primaryExpr  literals, names, groups and control flow

// expr parses an expression.
func (p *Parser) expr() (Expr, error) {
	return p.assignment()
}

// assignment parses Target Op Value. The target must be a name, a selector
// or an index expression.
func (p *Parser) assignment() (Expr, error) {
	pos := p.tok().Pos
	x, err := p.ternary()
	if err != nil {
		return nil, err
	}

	op := p.tok().Kind
	if !op.IsAssignOp() {
		return x, nil
	}
	if !assignable(x) {
		return nil, p.errorAt(ErrInvalidAssignmentTarget, x.Pos(), "invalid assignment target")
	}
	p.next()

	v, err := p.assignment()
	if err != nil {
		return nil, err
	}
	a := &AssignExpr{Op: op, Target: x, Value: v}
	a.pos = p.span(pos)
	return a, nil
}

// assignable reports whether x may appear on the left of an assignment.
func assignable(x Expr) bool {
	switch x := x.(type) {
	case *Name, *IndexExpr:
		return true
	case *SelectorExpr:
		return !x.Optional
	}
	return false
}

// ternary parses Cond ? Then : Else.
func (p *Parser) ternary() (Expr, error) {
	pos := p.tok().Pos
	cond, err := p.binaryExpr(precNullish)
	if err != nil || !p.got(_Question) {
		return cond, err
	}

	t := &TernaryExpr{Cond: cond}
	if t.Then, err = p.assignment(); err != nil {
		return nil, err
	}
	if err := p.want(_Colon); err != nil {
		return nil, err
	}
	if t.Else, err = p.ternary(); err != nil {
		return nil, err
	}
	t.pos = p.span(pos)
	return t, nil
}

// binaryExpr parses binary operators binding at least as tightly as prec.
// Range operators build a RangeExpr and take an optional step operand.
func (p *Parser) binaryExpr(prec int) (Expr, error) {
	pos := p.tok().Pos
	x, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		op := p.tok().Kind
		oprec := op.Precedence()
		if oprec == precNone || oprec < prec {
			return x, nil
		}
		p.next()

		next := oprec + 1
		if op.RightAssoc() {
			next = oprec
		}
		y, err := p.binaryExpr(next)
		if err != nil {
			return nil, err
		}

		if op == _Range || op == _RangeExcl {
			r := &RangeExpr{Start: x, End: y, Exclusive: op == _RangeExcl}
			if p.got(_Step) {
				if r.Step, err = p.binaryExpr(precRange + 1); err != nil {
					return nil, err
				}
			}
			r.pos = p.span(pos)
			x = r
			continue
		}

		b := &BinaryExpr{Op: op, X: x, Y: y}
		b.pos = p.span(pos)
		x = b
	}
}

// unaryExpr parses prefix operators.
func (p *Parser) unaryExpr() (Expr, error) {
	switch op := p.tok().Kind; op {
	case _Add, _Sub, _Not, _NotKw, _Tilde, _Inc, _Dec, _Typeof:
		pos := p.tok().Pos
		p.next()
		x, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		if (op == _Inc || op == _Dec) && !assignable(x) {
			return nil, p.errorAt(ErrInvalidAssignmentTarget, x.Pos(), "invalid operand for "+op.String())
		}
		u := &UnaryExpr{Op: op, X: x}
		u.pos = p.span(pos)
		return u, nil
	}
	return p.postfixExpr()
}

// postfixExpr parses a primary expression followed by any chain of
// calls, selectors, index expressions and postfix ++/--.
func (p *Parser) postfixExpr() (Expr, error) {
	pos := p.tok().Pos
	x, err := p.primaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		switch p.tok().Kind {
		case _Lparen:
			args, err := p.argList()
			if err != nil {
				return nil, err
			}
			c := &CallExpr{Fun: x, Args: args}
			c.pos = p.span(pos)
			x = c

		case _Dot, _QuestionDot:
			optional := p.at(_QuestionDot)
			p.next()
			sel, err := p.selector()
			if err != nil {
				return nil, err
			}
			s := &SelectorExpr{X: x, Sel: sel, Optional: optional}
			s.pos = p.span(pos)
			x = s

		case _Lbrack:
			p.next()
			index, err := p.expr()
			if err != nil {
				return nil, err
			}
			if err := p.want(_Rbrack); err != nil {
				return nil, err
			}
			ix := &IndexExpr{X: x, Index: index}
			ix.pos = p.span(pos)
			x = ix

		case _Inc, _Dec:
			op := p.tok().Kind
			if !assignable(x) {
				return nil, p.errorAt(ErrInvalidAssignmentTarget, x.Pos(), "invalid operand for "+op.String())
			}
			p.next()
			u := &UnaryExpr{Op: op, X: x, Postfix: true}
			u.pos = p.span(pos)
			x = u

		default:
			return x, nil
		}
	}
}

// selector parses the name after . or ?. where keywords are plain names.
func (p *Parser) selector() (*Name, error) {
	t := p.tok()
	switch {
	case t.Kind == _Ident, t.Kind.IsKeyword():
	case t.Kind >= _True && t.Kind <= _Undefined:
	default:
		return nil, p.expected(ErrExpectedIdentifier, "property name")
	}
	n := &Name{Value: t.Lexeme}
	n.pos = t.Pos
	p.next()
	return n, nil
}

// argList parses (arg, arg, ...).
func (p *Parser) argList() ([]Expr, error) {
	p.next() // (
	var args []Expr
	for !p.at(_Rparen) {
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, x)
		if !p.got(_Comma) {
			break
		}
	}
	if err := p.want(_Rparen); err != nil {
		return nil, err
	}
	return args, nil
}

// primaryExpr parses operands and control-flow expressions.
func (p *Parser) primaryExpr() (Expr, error) {
	t := p.tok()
	switch t.Kind {
	case _Int, _Float, _String, _True, _False, _Null, _Undefined:
		return p.basicLit(), nil

	case _Ident:
		return p.name()

	case _Lparen:
		pos := t.Pos
		p.next()
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.want(_Rparen); err != nil {
			return nil, err
		}
		px := &ParenExpr{X: x}
		px.pos = p.span(pos)
		return px, nil

	case _Lbrack:
		return p.arrayLit()

	case _Lbrace:
		return p.objectLit()

	case _TemplateStart:
		return p.templateLit()

	case _Newline:
		if p.atBlock() {
			return p.block()
		}

	case _If:
		return p.ifExpr()

	case _While:
		return p.whileExpr()

	case _Do:
		return p.doWhileExpr()

	case _For:
		return p.forExpr()

	case _Loop:
		return p.loopExpr()

	case _Match:
		return p.matchExpr()

	case _Break, _Continue:
		b := &BranchExpr{Tok: t.Kind}
		b.pos = t.Pos
		p.next()
		return b, nil

	case _Return:
		return p.returnExpr()

	case _Def:
		return p.funcLit()

	case _EOF:
		return nil, p.errorAt(ErrUnexpectedEOF, t.Pos, "unexpected end of file, expected expression")

	case _Error:
		return nil, p.errorAt(ErrUnexpectedToken, t.Pos, "unexpected "+describe(t))
	}

	return nil, p.expected(ErrExpectedExpression, "expression")
}

// basicLit converts the current literal token into a BasicLit.
func (p *Parser) basicLit() *BasicLit {
	t := p.tok()
	lit := &BasicLit{Kind: t.Kind, Raw: t.Lexeme, Value: t.Value}
	lit.pos = t.Pos
	p.next()
	return lit
}

// arrayLit parses [elem, elem, ...]. A trailing comma is allowed.
func (p *Parser) arrayLit() (*ArrayLit, error) {
	a := &ArrayLit{}
	pos := p.tok().Pos
	p.next() // [

	for !p.at(_Rbrack) {
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		a.Elems = append(a.Elems, x)
		if !p.got(_Comma) {
			break
		}
	}
	if err := p.want(_Rbrack); err != nil {
		return nil, err
	}

	a.pos = p.span(pos)
	return a, nil
}

// objectLit parses {key: value, key, ...}. Keys are identifiers or strings;
// a bare identifier key is shorthand for key: key.
func (p *Parser) objectLit() (*ObjectLit, error) {
	o := &ObjectLit{}
	pos := p.tok().Pos
	p.next() // {

	for !p.at(_Rbrace) {
		prop, err := p.property()
		if err != nil {
			return nil, err
		}
		o.Props = append(o.Props, prop)
		if !p.got(_Comma) {
			break
		}
	}
	if err := p.want(_Rbrace); err != nil {
		return nil, err
	}

	o.pos = p.span(pos)
	return o, nil
}

func (p *Parser) property() (*Property, error) {
	t := p.tok()
	prop := &Property{}
	switch {
	case t.Kind == _String:
		prop.Key, _ = t.Value.(string)
	case t.Kind == _Ident || t.Kind.IsKeyword():
		prop.Key = t.Lexeme
	default:
		return nil, p.expected(ErrExpectedIdentifier, "property key")
	}
	p.next()

	if p.got(_Colon) {
		v, err := p.expr()
		if err != nil {
			return nil, err
		}
		prop.Value = v
	} else if t.Kind == _Ident {
		n := &Name{Value: t.Lexeme}
		n.pos = t.Pos
		prop.Value = n
		prop.Shorthand = true
	} else {
		return nil, p.expected(ErrExpectedColon, "':' after property key")
	}

	prop.pos = p.span(t.Pos)
	return prop, nil
}

// templateLit reassembles the TEMPLATE_* token run into a TemplateLit.
func (p *Parser) templateLit() (*TemplateLit, error) {
	tl := &TemplateLit{}
	pos := p.tok().Pos
	p.next() // `

	for {
		t := p.tok()
		switch t.Kind {
		case _TemplateEnd:
			p.next()
			tl.pos = p.span(pos)
			return tl, nil

		case _TemplateText:
			text := &TemplateText{}
			text.Text, _ = t.Value.(string)
			text.pos = t.Pos
			tl.Parts = append(tl.Parts, text)
			p.next()

		case _TemplateSimpleVar:
			v := &TemplateVar{}
			v.Name, _ = t.Value.(string)
			v.pos = t.Pos
			tl.Parts = append(tl.Parts, v)
			p.next()

		case _TemplateExprStart:
			p.next()
			x, err := p.expr()
			if err != nil {
				return nil, err
			}
			if !p.at(_TemplateExprEnd) {
				return nil, p.expected(ErrInvalidTemplate, "'}' closing template interpolation")
			}
			p.next()
			e := &TemplateExpr{X: x}
			e.pos = p.span(t.Pos)
			tl.Parts = append(tl.Parts, e)

		default:
			return nil, p.expected(ErrInvalidTemplate, "template text, interpolation or '`'")
		}
	}
}

// funcLit parses def (Params) = Body.
func (p *Parser) funcLit() (*FuncLit, error) {
	f := &FuncLit{}
	pos := p.tok().Pos
	p.next() // def

	var err error
	if f.Params, err = p.paramList(); err != nil {
		return nil, err
	}
	if !p.got(_Assign) {
		return nil, p.expected(ErrInvalidFunction, "'=' before body of anonymous function")
	}
	if f.Body, err = p.body(); err != nil {
		return nil, err
	}

	f.pos = p.span(pos)
	return f, nil
}

// ----------------------------------------------------------------------------
// Blocks and bodies

// block parses NEWLINE INDENT stmts DEDENT. Statement errors inside the block
// are recorded and recovered from, so a block itself never fails.
func (p *Parser) block() (*BlockExpr, error) {
	b := &BlockExpr{}
	p.next() // NEWLINE
	p.next() // INDENT
	pos := p.tok().Pos

	b.Stmts = p.stmtList(p.indent)
	p.got(_Dedent)

	b.Value = blockValue(b.Stmts)
	b.pos = p.span(pos)
	return b, nil
}

// blockValue returns the expression a block evaluates to: its last
// statement when that is an expression statement, or nil.
func blockValue(stmts []Stmt) Expr {
	if len(stmts) == 0 {
		return nil
	}
	if s, ok := stmts[len(stmts)-1].(*ExprStmt); ok {
		return s.X
	}
	return nil
}

// body parses the body of a declaration or control-flow form: an optional
// connective keyword followed by an indented block or a single expression.
func (p *Parser) body(connectives ...Kind) (Expr, error) {
	for _, k := range connectives {
		if p.got(k) {
			break
		}
	}
	if p.atBlock() {
		return p.block()
	}
	return p.expr()
}

// ----------------------------------------------------------------------------
// Control flow

// ifExpr parses if Cond [then] Body {elif Cond [then] Body} [else Body] [end if].
func (p *Parser) ifExpr() (*IfExpr, error) {
	pos := p.tok().Pos
	p.next() // if

	x, err := p.ifTail(pos)
	if err != nil {
		return nil, err
	}
	if p.endTrailer(endKeyword(_If)) {
		x.pos = p.span(pos)
	}
	return x, nil
}

// ifTail parses the remainder of an if or elif clause after its keyword.
func (p *Parser) ifTail(pos Pos) (*IfExpr, error) {
	x := &IfExpr{}

	var err error
	if x.Cond, err = p.expr(); err != nil {
		return nil, err
	}
	if x.Then, err = p.body(_Then); err != nil {
		return nil, err
	}

	switch {
	case p.gotClause(_Elif):
		elif, err := p.ifTail(p.lastPos)
		if err != nil {
			return nil, err
		}
		x.Else = elif
	case p.gotClause(_Else):
		if x.Else, err = p.body(); err != nil {
			return nil, err
		}
	}

	x.pos = p.span(pos)
	return x, nil
}

// whileExpr parses while Cond [do] Body [end while].
func (p *Parser) whileExpr() (*WhileExpr, error) {
	w := &WhileExpr{}
	pos := p.tok().Pos
	p.next() // while

	var err error
	if w.Cond, err = p.expr(); err != nil {
		return nil, err
	}
	if w.Body, err = p.body(_Do); err != nil {
		return nil, err
	}
	p.endTrailer(endKeyword(_While))

	w.pos = p.span(pos)
	return w, nil
}

// doWhileExpr parses do Body while Cond.
func (p *Parser) doWhileExpr() (*DoWhileExpr, error) {
	d := &DoWhileExpr{}
	pos := p.tok().Pos
	p.next() // do

	var err error
	if d.Body, err = p.body(); err != nil {
		return nil, err
	}
	if !p.gotClause(_While) {
		return nil, p.expected(ErrExpectedToken, "'while' after do body")
	}
	if d.Cond, err = p.expr(); err != nil {
		return nil, err
	}

	d.pos = p.span(pos)
	return d, nil
}

// forExpr parses for [Init]; [Cond]; [Update] [do] Body [end for].
func (p *Parser) forExpr() (*ForExpr, error) {
	f := &ForExpr{}
	pos := p.tok().Pos
	p.next() // for

	if !p.at(_Semi) {
		var err error
		if p.at(_Var) || p.at(_Val) {
			f.Init, err = p.varDecl()
		} else {
			f.Init, err = p.exprStmt()
		}
		if err != nil {
			return nil, err
		}
	}
	if err := p.want(_Semi); err != nil {
		return nil, err
	}

	if !p.at(_Semi) {
		cond, err := p.expr()
		if err != nil {
			return nil, err
		}
		f.Cond = cond
	}
	if err := p.want(_Semi); err != nil {
		return nil, err
	}

	if !p.at(_Do) && !p.at(_Newline) && !p.at(_EOF) {
		update, err := p.expr()
		if err != nil {
			return nil, err
		}
		f.Update = update
	}

	var err error
	if f.Body, err = p.body(_Do); err != nil {
		return nil, err
	}
	p.endTrailer(endKeyword(_For))

	f.pos = p.span(pos)
	return f, nil
}

// loopExpr parses loop Body [end loop].
func (p *Parser) loopExpr() (*LoopExpr, error) {
	l := &LoopExpr{}
	pos := p.tok().Pos
	p.next() // loop

	var err error
	if l.Body, err = p.body(); err != nil {
		return nil, err
	}
	p.endTrailer(endKeyword(_Loop))

	l.pos = p.span(pos)
	return l, nil
}

// matchExpr parses
//
//	match Value
//	    case Pattern [if Guard] -> Body
//	    default [->] Body
//	[end match]
func (p *Parser) matchExpr() (*MatchExpr, error) {
	m := &MatchExpr{}
	pos := p.tok().Pos
	p.next() // match

	var err error
	if m.Value, err = p.expr(); err != nil {
		return nil, err
	}
	if !p.atBlock() {
		return nil, p.expected(ErrExpectedNewline, "indented case arms after match value")
	}
	p.next() // NEWLINE
	p.next() // INDENT

arms:
	for {
		switch p.tok().Kind {
		case _Newline, _Semi:
			p.next()

		case _Dedent:
			p.next()
			break arms

		case _EOF:
			break arms

		case _Case:
			arm, err := p.matchArm()
			if err != nil {
				return nil, err
			}
			m.Arms = append(m.Arms, arm)
			if err := p.endOfLine("match arm"); err != nil {
				return nil, err
			}

		case _Default:
			p.next()
			p.got(_Arrow)
			if m.Default, err = p.body(); err != nil {
				return nil, err
			}
			if err := p.endOfLine("default arm"); err != nil {
				return nil, err
			}

		default:
			return nil, p.expected(ErrExpectedToken, "'case' or 'default' in match")
		}
	}
	p.endTrailer(endKeyword(_Match))

	m.pos = p.span(pos)
	return m, nil
}

// matchArm parses case Pattern [if Guard] -> Body.
func (p *Parser) matchArm() (*MatchArm, error) {
	arm := &MatchArm{}
	pos := p.tok().Pos
	p.next() // case

	var err error
	if arm.Pattern, err = p.pattern(); err != nil {
		return nil, err
	}
	if p.got(_If) {
		if arm.Guard, err = p.expr(); err != nil {
			return nil, err
		}
	}
	if err := p.want(_Arrow); err != nil {
		return nil, err
	}
	if arm.Body, err = p.body(); err != nil {
		return nil, err
	}

	arm.pos = p.span(pos)
	return arm, nil
}

// returnExpr parses return [Result].
func (p *Parser) returnExpr() (*ReturnExpr, error) {
	r := &ReturnExpr{}
	pos := p.tok().Pos
	p.next() // return

	if !endsExpr(p.tok().Kind) {
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		r.Result = x
	}

	r.pos = p.span(pos)
	return r, nil
}

// endsExpr reports whether k cannot begin an expression and so ends an
// optional operand such as the result of a bare return.
func endsExpr(k Kind) bool {
	switch k {
	case _EOF, _Newline, _Dedent, _Semi, _Comma, _Rparen, _Rbrack, _Rbrace,
		_TemplateExprEnd, _End, _Else, _Elif, _Case, _Default, _Then, _Do, _Colon:
		return true
	}
	return false
}
