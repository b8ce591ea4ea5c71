// Package syntax implements lexical and syntactic analysis for the Slate programming language.
package syntax

import "fmt"

// Kind represents the type of a lexical token.
type Kind uint

const (
	// Special tokens
	_EOF     Kind = iota // end of file
	_Error               // lexical error
	_Newline             // end of a logical line
	_Indent              // start of an indented block
	_Dedent              // end of an indented block

	// Literals
	_Ident     // identifier: foo, bar, Rectangle
	_Int       // 123, 0xFF
	_Float     // 3.14, 1e10, 2.5e-3
	_String    // "hello", 'world'
	_True      // true
	_False     // false
	_Null      // null
	_Undefined // undefined

	// Template literal fragments
	_TemplateStart     // `
	_TemplateText      // raw text between interpolations
	_TemplateSimpleVar // $name
	_TemplateExprStart // ${
	_TemplateExprEnd   // } closing an interpolation
	_TemplateEnd       // `

	// Assignment operators
	_Assign         // =
	_AddAssign      // +=
	_SubAssign      // -=
	_MulAssign      // *=
	_DivAssign      // /=
	_FloorDivAssign // //=
	_RemAssign      // %=
	_PowAssign      // **=
	_ShlAssign      // <<=
	_ShrAssign      // >>=
	_UShrAssign     // >>>=
	_AndAssign      // &=
	_XorAssign      // ^=
	_OrAssign       // |=
	_AndAndAssign   // &&=
	_OrOrAssign     // ||=
	_NullishAssign  // ??=

	// Operators (ordered by precedence, low to high)
	_Question  // ?
	_Nullish   // ??
	_OrOr      // ||
	_AndAnd    // &&
	_Eql       // ==
	_Neq       // !=
	_Lss       // <
	_Leq       // <=
	_Gtr       // >
	_Geq       // >=
	_Or        // |
	_Xor       // ^
	_And       // &
	_Range     // ..
	_RangeExcl // ..<
	_Shl       // <<
	_Shr       // >>
	_UShr      // >>>
	_Add       // +
	_Sub       // -
	_Mul       // *
	_Div       // /
	_FloorDiv  // //
	_Rem       // %
	_Pow       // **
	_Not       // !
	_Tilde     // ~
	_Inc       // ++
	_Dec       // --

	// Delimiters
	_Lparen      // (
	_Rparen      // )
	_Lbrack      // [
	_Rbrack      // ]
	_Lbrace      // {
	_Rbrace      // }
	_Comma       // ,
	_Semi        // ;
	_Colon       // :
	_Dot         // .
	_QuestionDot // ?.
	_Arrow       // ->
	_FatArrow    // =>
	_At          // @

	// Keywords
	_Var
	_Val
	_Def
	_End
	_If
	_Then
	_Elif
	_Else
	_While
	_Do
	_For
	_Loop
	_Match
	_Case
	_Default
	_Break
	_Continue
	_Return
	_Import
	_Package
	_Data
	_Private
	_NotKw
	_AndKw
	_OrKw
	_Mod
	_In
	_Instanceof
	_Typeof
	_Step

	kindCount
)

// kindNames maps token kinds to their string representation.
var kindNames = [...]string{
	_EOF:     "EOF",
	_Error:   "ERROR",
	_Newline: "NEWLINE",
	_Indent:  "INDENT",
	_Dedent:  "DEDENT",

	_Ident:     "IDENTIFIER",
	_Int:       "INTEGER",
	_Float:     "FLOAT",
	_String:    "STRING",
	_True:      "true",
	_False:     "false",
	_Null:      "null",
	_Undefined: "undefined",

	_TemplateStart:     "TEMPLATE_START",
	_TemplateText:      "TEMPLATE_TEXT",
	_TemplateSimpleVar: "TEMPLATE_SIMPLE_VAR",
	_TemplateExprStart: "TEMPLATE_EXPR_START",
	_TemplateExprEnd:   "TEMPLATE_EXPR_END",
	_TemplateEnd:       "TEMPLATE_END",

	_Assign:         "=",
	_AddAssign:      "+=",
	_SubAssign:      "-=",
	_MulAssign:      "*=",
	_DivAssign:      "/=",
	_FloorDivAssign: "//=",
	_RemAssign:      "%=",
	_PowAssign:      "**=",
	_ShlAssign:      "<<=",
	_ShrAssign:      ">>=",
	_UShrAssign:     ">>>=",
	_AndAssign:      "&=",
	_XorAssign:      "^=",
	_OrAssign:       "|=",
	_AndAndAssign:   "&&=",
	_OrOrAssign:     "||=",
	_NullishAssign:  "??=",

	_Question:  "?",
	_Nullish:   "??",
	_OrOr:      "||",
	_AndAnd:    "&&",
	_Eql:       "==",
	_Neq:       "!=",
	_Lss:       "<",
	_Leq:       "<=",
	_Gtr:       ">",
	_Geq:       ">=",
	_Or:        "|",
	_Xor:       "^",
	_And:       "&",
	_Range:     "..",
	_RangeExcl: "..<",
	_Shl:       "<<",
	_Shr:       ">>",
	_UShr:      ">>>",
	_Add:       "+",
	_Sub:       "-",
	_Mul:       "*",
	_Div:       "/",
	_FloorDiv:  "//",
	_Rem:       "%",
	_Pow:       "**",
	_Not:       "!",
	_Tilde:     "~",
	_Inc:       "++",
	_Dec:       "--",

	_Lparen:      "(",
	_Rparen:      ")",
	_Lbrack:      "[",
	_Rbrack:      "]",
	_Lbrace:      "{",
	_Rbrace:      "}",
	_Comma:       ",",
	_Semi:        ";",
	_Colon:       ":",
	_Dot:         ".",
	_QuestionDot: "?.",
	_Arrow:       "->",
	_FatArrow:    "=>",
	_At:          "@",

	_Var:        "var",
	_Val:        "val",
	_Def:        "def",
	_End:        "end",
	_If:         "if",
	_Then:       "then",
	_Elif:       "elif",
	_Else:       "else",
	_While:      "while",
	_Do:         "do",
	_For:        "for",
	_Loop:       "loop",
	_Match:      "match",
	_Case:       "case",
	_Default:    "default",
	_Break:      "break",
	_Continue:   "continue",
	_Return:     "return",
	_Import:     "import",
	_Package:    "package",
	_Data:       "data",
	_Private:    "private",
	_NotKw:      "not",
	_AndKw:      "and",
	_OrKw:       "or",
	_Mod:        "mod",
	_In:         "in",
	_Instanceof: "instanceof",
	_Typeof:     "typeof",
	_Step:       "step",
}

// String returns the string representation of the token kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Binary operator precedence levels (higher = binds tighter).
// Assignment and the ternary conditional sit below precNullish and are
// parsed by dedicated layers; prefix and postfix operators bind tighter
// than precPower.
const (
	precNone = iota
	precNullish
	precOr
	precAnd
	precEquality
	precRelational
	precBitOr
	precBitXor
	precBitAnd
	precRange
	precShift
	precAdditive
	precMultiplicative
	precPower
)

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
//
//	 1: ??
//	 2: || or
//	 3: && and
//	 4: == !=
//	 5: < <= > >= in instanceof
//	 6: |
//	 7: ^
//	 8: &
//	 9: .. ..<
//	10: << >> >>>
//	11: + -
//	12: * / // % mod
//	13: **
func (k Kind) Precedence() int {
	switch k {
	case _Nullish:
		return precNullish
	case _OrOr, _OrKw:
		return precOr
	case _AndAnd, _AndKw:
		return precAnd
	case _Eql, _Neq:
		return precEquality
	case _Lss, _Leq, _Gtr, _Geq, _In, _Instanceof:
		return precRelational
	case _Or:
		return precBitOr
	case _Xor:
		return precBitXor
	case _And:
		return precBitAnd
	case _Range, _RangeExcl:
		return precRange
	case _Shl, _Shr, _UShr:
		return precShift
	case _Add, _Sub:
		return precAdditive
	case _Mul, _Div, _FloorDiv, _Rem, _Mod:
		return precMultiplicative
	case _Pow:
		return precPower
	}
	return precNone
}

// RightAssoc reports whether the binary operator k groups right to left.
func (k Kind) RightAssoc() bool {
	return k == _Pow
}

// IsAssignOp reports whether k is = or a compound assignment operator.
func (k Kind) IsAssignOp() bool {
	return k >= _Assign && k <= _NullishAssign
}

// IsKeyword reports whether k is a keyword token.
func (k Kind) IsKeyword() bool {
	return k >= _Var && k <= _Step
}

// IsLiteral reports whether k is a literal token.
func (k Kind) IsLiteral() bool {
	return k >= _Int && k <= _Undefined
}

// IsOperator reports whether k is an operator token.
func (k Kind) IsOperator() bool {
	return k >= _Assign && k <= _Dec
}

// IsTemplate reports whether k is one of the template literal fragments.
func (k Kind) IsTemplate() bool {
	return k >= _TemplateStart && k <= _TemplateEnd
}

// IsEOF reports whether k is the EOF token.
func (k Kind) IsEOF() bool {
	return k == _EOF
}

// IsError reports whether k is the lexical error token.
func (k Kind) IsError() bool {
	return k == _Error
}

// Exported structural kinds for tools that inspect the token stream.
const (
	EOF     Kind = _EOF
	Error   Kind = _Error
	Newline Kind = _Newline
	Indent  Kind = _Indent
	Dedent  Kind = _Dedent
)

// keywords maps keyword strings to their token kind.
var keywords = map[string]Kind{
	"var":        _Var,
	"val":        _Val,
	"def":        _Def,
	"end":        _End,
	"if":         _If,
	"then":       _Then,
	"elif":       _Elif,
	"else":       _Else,
	"while":      _While,
	"do":         _Do,
	"for":        _For,
	"loop":       _Loop,
	"match":      _Match,
	"case":       _Case,
	"default":    _Default,
	"break":      _Break,
	"continue":   _Continue,
	"return":     _Return,
	"import":     _Import,
	"package":    _Package,
	"data":       _Data,
	"private":    _Private,
	"not":        _NotKw,
	"and":        _AndKw,
	"or":         _OrKw,
	"mod":        _Mod,
	"in":         _In,
	"instanceof": _Instanceof,
	"typeof":     _Typeof,
	"step":       _Step,
	"true":       _True,
	"false":      _False,
	"null":       _Null,
	"undefined":  _Undefined,
}

// LookupKeyword returns the token kind for the given identifier string.
// If the identifier is a keyword, returns the keyword kind.
// Otherwise, returns _Ident.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return _Ident
}

// Token is one lexical unit produced by the Lexer.
type Token struct {
	Kind   Kind
	Lexeme string // exact source text covered by Pos
	Pos    Pos
	Value  any // decoded literal: int64, float64, string, bool, or nil
}

// String formats the token for diagnostics and token dumps.
func (t Token) String() string {
	if t.Value != nil {
		return fmt.Sprintf("%s %q (%v)", t.Kind, t.Lexeme, t.Value)
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
}
