package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// field prints a labelled child one level deeper. Nil children are omitted.
func (p *printer) field(label string, node Node) {
	if node == nil {
		return
	}
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

// list prints a labelled slice of children. Empty slices are omitted.
func list[N Node](p *printer, label string, nodes []N) {
	if len(nodes) == 0 {
		return
	}
	p.printf("%s:\n", label)
	p.indent++
	for _, n := range nodes {
		p.print(n)
	}
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.pos)
		p.indent++
		for _, s := range n.Body {
			p.print(s)
		}
		p.indent--

	// Statements

	case *VarDecl:
		kw := "val"
		if n.Mutable {
			kw = "var"
		}
		p.printf("VarDecl %s %s\n", n.pos, kw)
		p.indent++
		p.field("Target", n.Target)
		p.field("Value", n.Value)
		p.indent--

	case *FuncDecl:
		p.printf("FuncDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name.Value)
		if len(n.Params) > 0 {
			p.printf("Params: %s\n", nameList(n.Params))
		}
		p.field("Body", n.Body)
		p.indent--

	case *ImportStmt:
		p.printf("ImportStmt %s %s\n", n.pos, n.Kind)
		p.indent++
		p.printf("Path: %s\n", dotted(n.Path))
		for _, item := range n.Items {
			if item.Alias != nil {
				p.printf("Item: %s => %s\n", item.Name.Value, item.Alias.Value)
			} else {
				p.printf("Item: %s\n", item.Name.Value)
			}
		}
		p.indent--

	case *PackageStmt:
		p.printf("PackageStmt %s %s\n", n.pos, dotted(n.Path))

	case *DataDecl:
		if n.Private {
			p.printf("DataDecl %s private\n", n.pos)
		} else {
			p.printf("DataDecl %s\n", n.pos)
		}
		p.indent++
		p.printf("Name: %s\n", n.Name.Value)
		for _, c := range n.Constructors {
			p.print(c)
		}
		for _, m := range n.Methods {
			p.print(m)
		}
		p.indent--

	case *Constructor:
		if n.Singleton {
			p.printf("Constructor %s %s singleton\n", n.pos, n.Name.Value)
		} else {
			p.printf("Constructor %s %s(%s)\n", n.pos, n.Name.Value, nameList(n.Params))
		}

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	// Expressions

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s %s %s\n", n.pos, n.Kind, n.Raw)

	case *BinaryExpr:
		p.printf("BinaryExpr %s %s\n", n.pos, n.Op)
		p.indent++
		p.field("X", n.X)
		p.field("Y", n.Y)
		p.indent--

	case *UnaryExpr:
		if n.Postfix {
			p.printf("UnaryExpr %s postfix %s\n", n.pos, n.Op)
		} else {
			p.printf("UnaryExpr %s %s\n", n.pos, n.Op)
		}
		p.indent++
		p.print(n.X)
		p.indent--

	case *TernaryExpr:
		p.printf("TernaryExpr %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.field("Then", n.Then)
		p.field("Else", n.Else)
		p.indent--

	case *AssignExpr:
		p.printf("AssignExpr %s %s\n", n.pos, n.Op)
		p.indent++
		p.field("Target", n.Target)
		p.field("Value", n.Value)
		p.indent--

	case *CallExpr:
		p.printf("CallExpr %s\n", n.pos)
		p.indent++
		p.field("Fun", n.Fun)
		list(p, "Args", n.Args)
		p.indent--

	case *SelectorExpr:
		if n.Optional {
			p.printf("SelectorExpr %s optional\n", n.pos)
		} else {
			p.printf("SelectorExpr %s\n", n.pos)
		}
		p.indent++
		p.field("X", n.X)
		p.printf("Sel: %s\n", n.Sel.Value)
		p.indent--

	case *IndexExpr:
		p.printf("IndexExpr %s\n", n.pos)
		p.indent++
		p.field("X", n.X)
		p.field("Index", n.Index)
		p.indent--

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *ArrayLit:
		p.printf("ArrayLit %s\n", n.pos)
		p.indent++
		for _, e := range n.Elems {
			p.print(e)
		}
		p.indent--

	case *ObjectLit:
		p.printf("ObjectLit %s\n", n.pos)
		p.indent++
		for _, prop := range n.Props {
			p.print(prop)
		}
		p.indent--

	case *Property:
		if n.Shorthand {
			p.printf("Property %s %q shorthand\n", n.pos, n.Key)
			break
		}
		p.printf("Property %s %q\n", n.pos, n.Key)
		p.indent++
		p.print(n.Value)
		p.indent--

	case *TemplateLit:
		p.printf("TemplateLit %s\n", n.pos)
		p.indent++
		for _, part := range n.Parts {
			p.print(part)
		}
		p.indent--

	case *TemplateText:
		p.printf("Text %s %q\n", n.pos, n.Text)

	case *TemplateVar:
		p.printf("Var %s %s\n", n.pos, n.Name)

	case *TemplateExpr:
		p.printf("Interp %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *RangeExpr:
		if n.Exclusive {
			p.printf("RangeExpr %s exclusive\n", n.pos)
		} else {
			p.printf("RangeExpr %s\n", n.pos)
		}
		p.indent++
		p.field("Start", n.Start)
		p.field("End", n.End)
		p.field("Step", n.Step)
		p.indent--

	case *FuncLit:
		p.printf("FuncLit %s (%s)\n", n.pos, nameList(n.Params))
		p.indent++
		p.field("Body", n.Body)
		p.indent--

	case *BlockExpr:
		p.printf("BlockExpr %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *IfExpr:
		p.printf("IfExpr %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.field("Then", n.Then)
		p.field("Else", n.Else)
		p.indent--

	case *WhileExpr:
		p.printf("WhileExpr %s\n", n.pos)
		p.indent++
		p.field("Cond", n.Cond)
		p.field("Body", n.Body)
		p.indent--

	case *DoWhileExpr:
		p.printf("DoWhileExpr %s\n", n.pos)
		p.indent++
		p.field("Body", n.Body)
		p.field("Cond", n.Cond)
		p.indent--

	case *ForExpr:
		p.printf("ForExpr %s\n", n.pos)
		p.indent++
		p.field("Init", n.Init)
		p.field("Cond", n.Cond)
		p.field("Update", n.Update)
		p.field("Body", n.Body)
		p.indent--

	case *LoopExpr:
		p.printf("LoopExpr %s\n", n.pos)
		p.indent++
		p.field("Body", n.Body)
		p.indent--

	case *MatchExpr:
		p.printf("MatchExpr %s\n", n.pos)
		p.indent++
		p.field("Value", n.Value)
		for _, arm := range n.Arms {
			p.print(arm)
		}
		p.field("Default", n.Default)
		p.indent--

	case *MatchArm:
		p.printf("Case %s\n", n.pos)
		p.indent++
		p.field("Pattern", n.Pattern)
		p.field("Guard", n.Guard)
		p.field("Body", n.Body)
		p.indent--

	case *BranchExpr:
		p.printf("BranchExpr %s %s\n", n.pos, n.Tok)

	case *ReturnExpr:
		p.printf("ReturnExpr %s\n", n.pos)
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	// Patterns

	case *IdentPattern:
		p.printf("IdentPattern %s %s\n", n.pos, n.Name)

	case *LiteralPattern:
		p.printf("LiteralPattern %s %s %s\n", n.pos, n.Value.Kind, n.Value.Raw)

	case *TypePattern:
		p.printf("TypePattern %s %s: %s\n", n.pos, n.Name.Value, n.Type.Value)

	case *ConstructorPattern:
		p.printf("ConstructorPattern %s %s\n", n.pos, n.Name.Value)
		p.indent++
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *ArrayPattern:
		p.printf("ArrayPattern %s\n", n.pos)
		p.indent++
		for _, e := range n.Elems {
			p.print(e)
		}
		p.indent--

	case *ObjectPattern:
		p.printf("ObjectPattern %s\n", n.pos)
		p.indent++
		for _, f := range n.Fields {
			p.print(f)
		}
		p.indent--

	case *FieldPattern:
		if n.Shorthand {
			p.printf("Field %s %s shorthand\n", n.pos, n.Key)
			break
		}
		p.printf("Field %s %s\n", n.pos, n.Key)
		p.indent++
		p.print(n.Value)
		p.indent--

	case *BindingPattern:
		p.printf("BindingPattern %s %s\n", n.pos, n.Name.Value)
		p.indent++
		p.print(n.Pattern)
		p.indent--

	case *AltPattern:
		p.printf("AltPattern %s\n", n.pos)
		p.indent++
		for _, a := range n.Alts {
			p.print(a)
		}
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}

// nameList joins names with ", ".
func nameList(names []*Name) string {
	s := make([]string, len(names))
	for i, n := range names {
		s[i] = n.Value
	}
	return strings.Join(s, ", ")
}

// dotted joins a module path with ".".
func dotted(path []*Name) string {
	s := make([]string, len(path))
	for i, n := range path {
		s[i] = n.Value
	}
	return strings.Join(s, ".")
}
