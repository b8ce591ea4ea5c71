package syntax

// ----------------------------------------------------------------------------
// Patterns
//
//	pattern         binding { "|" binding }
//	binding         name "@" primary | name ":" Type | primary
//	primary         "(" pattern ")" | array | object | literal | Name "(" ... ")" | name

// pattern parses an alternation of patterns.
func (p *Parser) pattern() (Pattern, error) {
	pos := p.tok().Pos
	x, err := p.bindingPattern()
	if err != nil || !p.at(_Or) {
		return x, err
	}

	alt := &AltPattern{Alts: []Pattern{x}}
	for p.got(_Or) {
		y, err := p.bindingPattern()
		if err != nil {
			return nil, err
		}
		alt.Alts = append(alt.Alts, y)
	}
	alt.pos = p.span(pos)
	return alt, nil
}

// bindingPattern parses name@pattern and name: Type, or falls through to a
// primary pattern.
func (p *Parser) bindingPattern() (Pattern, error) {
	if !p.at(_Ident) {
		return p.primaryPattern()
	}
	pos := p.tok().Pos

	switch p.peek(1).Kind {
	case _At:
		name, _ := p.name()
		p.next() // @
		x, err := p.primaryPattern()
		if err != nil {
			return nil, err
		}
		b := &BindingPattern{Name: name, Pattern: x}
		b.pos = p.span(pos)
		return b, nil

	case _Colon:
		name, _ := p.name()
		p.next() // :
		typ, err := p.name()
		if err != nil {
			return nil, err
		}
		t := &TypePattern{Name: name, Type: typ}
		t.pos = p.span(pos)
		return t, nil
	}
	return p.primaryPattern()
}

// primaryPattern parses a pattern without alternation or binding.
func (p *Parser) primaryPattern() (Pattern, error) {
	t := p.tok()
	switch t.Kind {
	case _Lparen:
		p.next()
		x, err := p.pattern()
		if err != nil {
			return nil, err
		}
		if err := p.want(_Rparen); err != nil {
			return nil, err
		}
		return x, nil

	case _Lbrack:
		return p.arrayPattern()

	case _Lbrace:
		return p.objectPattern()

	case _Int, _Float, _String, _True, _False, _Null, _Undefined:
		lp := &LiteralPattern{Value: p.basicLit()}
		lp.pos = t.Pos
		return lp, nil

	case _Sub:
		// negative number literal
		if k := p.peek(1).Kind; k == _Int || k == _Float {
			p.next()
			lit := p.basicLit()
			lit.Raw = "-" + lit.Raw
			switch v := lit.Value.(type) {
			case int64:
				lit.Value = -v
			case float64:
				lit.Value = -v
			}
			lit.pos = p.span(t.Pos)
			lp := &LiteralPattern{Value: lit}
			lp.pos = lit.pos
			return lp, nil
		}

	case _Ident:
		name, _ := p.name()
		if p.at(_Lparen) {
			return p.constructorPattern(name)
		}
		id := &IdentPattern{Name: name.Value}
		id.pos = name.pos
		return id, nil

	case _EOF:
		return nil, p.errorAt(ErrUnexpectedEOF, t.Pos, "unexpected end of file, expected pattern")
	}

	return nil, p.expected(ErrInvalidPattern, "pattern")
}

// constructorPattern parses the argument list of Name(p1, p2, ...).
func (p *Parser) constructorPattern(name *Name) (*ConstructorPattern, error) {
	c := &ConstructorPattern{Name: name, Args: []Pattern{}}
	p.next() // (

	for !p.at(_Rparen) {
		x, err := p.pattern()
		if err != nil {
			return nil, err
		}
		c.Args = append(c.Args, x)
		if !p.got(_Comma) {
			break
		}
	}
	if err := p.want(_Rparen); err != nil {
		return nil, err
	}

	c.pos = p.span(name.pos)
	return c, nil
}

// arrayPattern parses [p1, , p3]. An empty position is a hole bound to "_".
func (p *Parser) arrayPattern() (*ArrayPattern, error) {
	a := &ArrayPattern{}
	pos := p.tok().Pos
	p.next() // [

	for !p.at(_Rbrack) {
		if p.at(_Comma) {
			hole := &IdentPattern{Name: "_"}
			hole.pos = p.tok().Pos
			a.Elems = append(a.Elems, hole)
			p.next()
			continue
		}
		x, err := p.pattern()
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

// objectPattern parses {key, key: pattern, ...}.
func (p *Parser) objectPattern() (*ObjectPattern, error) {
	o := &ObjectPattern{}
	pos := p.tok().Pos
	p.next() // {

	for !p.at(_Rbrace) {
		t := p.tok()
		if t.Kind != _Ident {
			return nil, p.expected(ErrInvalidPattern, "field name in object pattern")
		}
		p.next()

		f := &FieldPattern{Key: t.Lexeme}
		if p.got(_Colon) {
			x, err := p.pattern()
			if err != nil {
				return nil, err
			}
			f.Value = x
		} else {
			id := &IdentPattern{Name: t.Lexeme}
			id.pos = t.Pos
			f.Value = id
			f.Shorthand = true
		}
		f.pos = p.span(t.Pos)
		o.Fields = append(o.Fields, f)

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
