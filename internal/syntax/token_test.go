package syntax

import (
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{_EOF, "EOF"},
		{_Error, "ERROR"},
		{_Newline, "NEWLINE"},
		{_Indent, "INDENT"},
		{_Dedent, "DEDENT"},
		{_Ident, "IDENTIFIER"},
		{_Int, "INTEGER"},
		{_Float, "FLOAT"},
		{_String, "STRING"},
		{_TemplateStart, "TEMPLATE_START"},
		{_TemplateSimpleVar, "TEMPLATE_SIMPLE_VAR"},
		{_NullishAssign, "??="},
		{_UShrAssign, ">>>="},
		{_RangeExcl, "..<"},
		{_FloorDiv, "//"},
		{_QuestionDot, "?."},
		{_FatArrow, "=>"},
		{_Instanceof, "instanceof"},
		{_Step, "step"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestKindNamesComplete(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		if kindNames[k] == "" {
			t.Errorf("Kind(%d) has no name", k)
		}
	}
}

func TestKindStringUnknown(t *testing.T) {
	got := Kind(999).String()
	if !strings.HasPrefix(got, "kind(") {
		t.Errorf("unknown kind string = %q, want prefix 'kind('", got)
	}
}

func TestKindPrecedence(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		// Non-operators and the dedicated layers have precedence 0
		{_EOF, precNone},
		{_Ident, precNone},
		{_Assign, precNone},
		{_AddAssign, precNone},
		{_Question, precNone},
		{_Lparen, precNone},
		{_Not, precNone},

		{_Nullish, precNullish},
		{_OrOr, precOr},
		{_OrKw, precOr},
		{_AndAnd, precAnd},
		{_AndKw, precAnd},
		{_Eql, precEquality},
		{_Neq, precEquality},
		{_Lss, precRelational},
		{_Geq, precRelational},
		{_In, precRelational},
		{_Instanceof, precRelational},
		{_Or, precBitOr},
		{_Xor, precBitXor},
		{_And, precBitAnd},
		{_Range, precRange},
		{_RangeExcl, precRange},
		{_Shl, precShift},
		{_UShr, precShift},
		{_Add, precAdditive},
		{_Sub, precAdditive},
		{_Mul, precMultiplicative},
		{_FloorDiv, precMultiplicative},
		{_Mod, precMultiplicative},
		{_Pow, precPower},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Precedence(); got != tt.want {
				t.Errorf("%v.Precedence() = %d, want %d", tt.kind, got, tt.want)
			}
		})
	}
}

func TestKindPrecedenceOrder(t *testing.T) {
	// loosest to tightest
	order := []Kind{_Nullish, _OrOr, _AndAnd, _Eql, _Lss, _Or, _Xor, _And, _Range, _Shl, _Add, _Mul, _Pow}
	for i := 1; i < len(order); i++ {
		if order[i-1].Precedence() >= order[i].Precedence() {
			t.Errorf("%v should bind looser than %v", order[i-1], order[i])
		}
	}
}

func TestKindRightAssoc(t *testing.T) {
	if !_Pow.RightAssoc() {
		t.Error("** should be right-associative")
	}
	for _, k := range []Kind{_Add, _Sub, _Mul, _Nullish, _Range} {
		if k.RightAssoc() {
			t.Errorf("%v should be left-associative", k)
		}
	}
}

func TestKindClasses(t *testing.T) {
	tests := []struct {
		kind                               Kind
		keyword, literal, operator, assign bool
	}{
		{_Var, true, false, false, false},
		{_Step, true, false, false, false},
		{_NotKw, true, false, false, false},
		{_True, false, true, false, false},
		{_Undefined, false, true, false, false},
		{_Int, false, true, false, false},
		{_Ident, false, false, false, false},
		{_Assign, false, false, true, true},
		{_NullishAssign, false, false, true, true},
		{_Add, false, false, true, false},
		{_Dec, false, false, true, false},
		{_Lparen, false, false, false, false},
		{_EOF, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.IsKeyword(); got != tt.keyword {
				t.Errorf("IsKeyword() = %v, want %v", got, tt.keyword)
			}
			if got := tt.kind.IsLiteral(); got != tt.literal {
				t.Errorf("IsLiteral() = %v, want %v", got, tt.literal)
			}
			if got := tt.kind.IsOperator(); got != tt.operator {
				t.Errorf("IsOperator() = %v, want %v", got, tt.operator)
			}
			if got := tt.kind.IsAssignOp(); got != tt.assign {
				t.Errorf("IsAssignOp() = %v, want %v", got, tt.assign)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	for word, want := range keywords {
		if got := LookupKeyword(word); got != want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", word, got, want)
		}
	}

	for _, word := range []string{"foo", "Var", "let", "function", "nil", "_"} {
		if got := LookupKeyword(word); got != _Ident {
			t.Errorf("LookupKeyword(%q) = %v, want IDENTIFIER", word, got)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: _Int, Lexeme: "0xFF", Value: int64(255)}
	if got, want := tok.String(), `INTEGER "0xFF" (255)`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	tok = Token{Kind: _Add, Lexeme: "+"}
	if got, want := tok.String(), `+ "+"`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
