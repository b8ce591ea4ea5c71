package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 main classes of nodes: Statements, Expressions, and Patterns.
// All nodes implement the Node interface. Statement, Expression, and Pattern
// nodes further implement their respective interfaces. The marker methods keep
// each set closed to this package, so a type switch over them is exhaustive.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // source span of the node
	aNode()   // marker method to restrict implementations to this package
}

// Stmt is the interface for all statement nodes. Statements produce no value.
type Stmt interface {
	Node
	aStmt()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Pattern is the interface for all pattern nodes used by var/val targets and match arms.
type Pattern interface {
	Node
	aPattern()
}

// TemplatePart is one piece of a template literal.
type TemplatePart interface {
	Node
	aTemplatePart()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// pattern is embedded in all pattern nodes.
type pattern struct{ node }

func (*pattern) aPattern() {}

// part is embedded in all template parts.
type part struct{ node }

func (*part) aTemplatePart() {}

// ----------------------------------------------------------------------------
// Program and statements

// Program is the root of a parsed source file.
type Program struct {
	node
	Body []Stmt // top-level statements in source order
}

// VarDecl represents var Pattern [= Value] or val Pattern = Value.
type VarDecl struct {
	stmt
	Mutable bool    // true for var, false for val
	Target  Pattern // destructuring target
	Value   Expr    // initializer (nil for var without one)
}

// FuncDecl represents def Name(Params) = Body [end Name].
type FuncDecl struct {
	stmt
	Name   *Name   // function name
	Params []*Name // parameter names
	Body   Expr    // block or single expression
	HasEnd bool    // closed by a matching end Name
}

// ImportKind distinguishes the import forms.
type ImportKind uint8

const (
	ImportNamespace ImportKind = iota // import a.b
	ImportSelective                   // import a.b.{x, y => z}
	ImportWildcard                    // import a.b._ or import a.b.*
)

func (k ImportKind) String() string {
	switch k {
	case ImportSelective:
		return "selective"
	case ImportWildcard:
		return "wildcard"
	}
	return "namespace"
}

// ImportStmt represents an import statement.
type ImportStmt struct {
	stmt
	Path  []*Name       // dotted module path
	Kind  ImportKind    // import form
	Items []*ImportItem // selected names (ImportSelective only)
}

// ImportItem is one name in a selective import: name or name => alias.
type ImportItem struct {
	node
	Name  *Name
	Alias *Name // nil if not renamed
}

// PackageStmt represents package a.b.c.
type PackageStmt struct {
	stmt
	Path []*Name
}

// DataDecl represents an algebraic data type declaration.
//
//	[private] data Name
//	    case Leaf
//	    case Node(left, right)
//	    def size(self) = ...
//	end Name
type DataDecl struct {
	stmt
	Private      bool
	Name         *Name
	Constructors []*Constructor
	Methods      []*FuncDecl
	HasEnd       bool
}

// Constructor is one case of a data declaration.
// case Leaf is a singleton; case Square() is a zero-argument constructor.
type Constructor struct {
	node
	Name      *Name
	Params    []*Name
	Singleton bool // declared without parentheses
}

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	stmt
	X Expr
}

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier.
type Name struct {
	expr
	Value string
}

// BasicLit represents a number, string, boolean, null or undefined literal.
type BasicLit struct {
	expr
	Kind  Kind   // _Int, _Float, _String, _True, _False, _Null, _Undefined
	Raw   string // source text
	Value any    // decoded value (int64, float64, string, bool or nil)
}

// BinaryExpr represents X Op Y.
type BinaryExpr struct {
	expr
	Op Kind
	X  Expr
	Y  Expr
}

// UnaryExpr represents a prefix operation (Op X) or, with Postfix set, X++ / X--.
type UnaryExpr struct {
	expr
	Op      Kind
	X       Expr
	Postfix bool
}

// TernaryExpr represents Cond ? Then : Else.
type TernaryExpr struct {
	expr
	Cond Expr
	Then Expr
	Else Expr
}

// AssignExpr represents Target Op Value where Op is = or a compound assignment.
type AssignExpr struct {
	expr
	Op     Kind
	Target Expr
	Value  Expr
}

// CallExpr represents a function call: Fun(Args...)
type CallExpr struct {
	expr
	Fun  Expr
	Args []Expr
}

// SelectorExpr represents X.Sel, or X?.Sel when Optional is set.
type SelectorExpr struct {
	expr
	X        Expr
	Sel      *Name
	Optional bool
}

// IndexExpr represents X[Index].
type IndexExpr struct {
	expr
	X     Expr
	Index Expr
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr
}

// ArrayLit represents [Elems...].
type ArrayLit struct {
	expr
	Elems []Expr
}

// ObjectLit represents {key: value, ...}.
type ObjectLit struct {
	expr
	Props []*Property
}

// Property is one key: value pair of an object literal.
type Property struct {
	node
	Key       string
	Value     Expr
	Shorthand bool // written as {key}
}

// TemplateLit represents a backtick template literal.
type TemplateLit struct {
	expr
	Parts []TemplatePart
}

// TemplateText is literal text inside a template, escapes decoded.
type TemplateText struct {
	part
	Text string
}

// TemplateVar is a $name interpolation.
type TemplateVar struct {
	part
	Name string
}

// TemplateExpr is a ${expr} interpolation.
type TemplateExpr struct {
	part
	X Expr
}

// RangeExpr represents Start..End or Start..<End, optionally followed by step Step.
type RangeExpr struct {
	expr
	Start     Expr
	End       Expr
	Step      Expr // nil if absent
	Exclusive bool // ..<
}

// FuncLit represents an anonymous function: def (Params) = Body.
type FuncLit struct {
	expr
	Params []*Name
	Body   Expr
}

// BlockExpr represents an indented block. Its value is Value, the last
// expression of the block, or nil when the block yields no value.
type BlockExpr struct {
	expr
	Stmts []Stmt
	Value Expr
}

// IfExpr represents if Cond [then] Then [elif ...] [else Else] [end if].
// An elif chain is represented by an *IfExpr in Else.
type IfExpr struct {
	expr
	Cond Expr
	Then Expr
	Else Expr // nil, *IfExpr for elif, or any expression
}

// WhileExpr represents while Cond [do] Body [end while].
type WhileExpr struct {
	expr
	Cond Expr
	Body Expr
}

// DoWhileExpr represents do Body while Cond.
type DoWhileExpr struct {
	expr
	Body Expr
	Cond Expr
}

// ForExpr represents for [Init]; [Cond]; [Update] [do] Body [end for].
type ForExpr struct {
	expr
	Init   Stmt // nil, *VarDecl or *ExprStmt
	Cond   Expr // nil if omitted
	Update Expr // nil if omitted
	Body   Expr
}

// LoopExpr represents loop Body [end loop].
type LoopExpr struct {
	expr
	Body Expr
}

// MatchExpr represents a match over Value with case arms and an optional default.
type MatchExpr struct {
	expr
	Value   Expr
	Arms    []*MatchArm
	Default Expr // nil if absent
}

// MatchArm represents case Pattern [if Guard] -> Body.
type MatchArm struct {
	node
	Pattern Pattern
	Guard   Expr // nil if absent
	Body    Expr
}

// BranchExpr represents break or continue.
type BranchExpr struct {
	expr
	Tok Kind // _Break or _Continue
}

// ReturnExpr represents return [Result].
type ReturnExpr struct {
	expr
	Result Expr // nil for bare return
}

// ----------------------------------------------------------------------------
// Patterns

// IdentPattern binds the matched value to Name. Array holes use the name "_".
type IdentPattern struct {
	pattern
	Name string
}

// LiteralPattern matches a literal value.
type LiteralPattern struct {
	pattern
	Value *BasicLit
}

// TypePattern matches values of type Type and binds them to Name: name: Type.
type TypePattern struct {
	pattern
	Name *Name
	Type *Name
}

// ConstructorPattern matches Name(Args...). Name() has no arguments.
type ConstructorPattern struct {
	pattern
	Name *Name
	Args []Pattern
}

// ArrayPattern destructures [p1, p2, ...].
type ArrayPattern struct {
	pattern
	Elems []Pattern
}

// ObjectPattern destructures {key, key: pattern, ...}.
type ObjectPattern struct {
	pattern
	Fields []*FieldPattern
}

// FieldPattern is one entry of an object pattern.
type FieldPattern struct {
	node
	Key       string
	Value     Pattern
	Shorthand bool // written as {key}
}

// BindingPattern matches Pattern and binds the whole value to Name: name@pattern.
type BindingPattern struct {
	pattern
	Name    *Name
	Pattern Pattern
}

// AltPattern matches if any alternative matches: p1 | p2 | ...
type AltPattern struct {
	pattern
	Alts []Pattern
}
