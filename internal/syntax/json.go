package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToTree(node))
}

// ToTree converts an AST into nested maps and slices of plain values,
// suitable for any generic encoder (JSON, YAML). Every node map carries
// "type" and "pos"; nil children are omitted.
func ToTree(node Node) map[string]any {
	if node == nil {
		return nil
	}

	m := map[string]any{"pos": node.Pos().String()}
	set := func(key string, child Node) {
		if child != nil {
			m[key] = ToTree(child)
		}
	}

	switch n := node.(type) {
	case *Program:
		m["type"] = "Program"
		m["body"] = treeList(n.Body)

	// Statements

	case *VarDecl:
		m["type"] = "VarDecl"
		m["mutable"] = n.Mutable
		set("target", n.Target)
		set("value", n.Value)

	case *FuncDecl:
		m["type"] = "FuncDecl"
		m["name"] = n.Name.Value
		m["params"] = names(n.Params)
		set("body", n.Body)
		m["hasEnd"] = n.HasEnd

	case *ImportStmt:
		m["type"] = "ImportStmt"
		m["path"] = dotted(n.Path)
		m["kind"] = n.Kind.String()
		if n.Kind == ImportSelective {
			m["items"] = treeList(n.Items)
		}

	case *ImportItem:
		m["type"] = "ImportItem"
		m["name"] = n.Name.Value
		if n.Alias != nil {
			m["alias"] = n.Alias.Value
		}

	case *PackageStmt:
		m["type"] = "PackageStmt"
		m["path"] = dotted(n.Path)

	case *DataDecl:
		m["type"] = "DataDecl"
		m["name"] = n.Name.Value
		m["private"] = n.Private
		m["constructors"] = treeList(n.Constructors)
		m["methods"] = treeList(n.Methods)

	case *Constructor:
		m["type"] = "Constructor"
		m["name"] = n.Name.Value
		m["singleton"] = n.Singleton
		if !n.Singleton {
			m["params"] = names(n.Params)
		}

	case *ExprStmt:
		m["type"] = "ExprStmt"
		set("x", n.X)

	// Expressions

	case *Name:
		m["type"] = "Name"
		m["value"] = n.Value

	case *BasicLit:
		m["type"] = "BasicLit"
		m["kind"] = n.Kind.String()
		m["raw"] = n.Raw
		m["value"] = n.Value

	case *BinaryExpr:
		m["type"] = "BinaryExpr"
		m["op"] = n.Op.String()
		set("x", n.X)
		set("y", n.Y)

	case *UnaryExpr:
		m["type"] = "UnaryExpr"
		m["op"] = n.Op.String()
		m["postfix"] = n.Postfix
		set("x", n.X)

	case *TernaryExpr:
		m["type"] = "TernaryExpr"
		set("cond", n.Cond)
		set("then", n.Then)
		set("else", n.Else)

	case *AssignExpr:
		m["type"] = "AssignExpr"
		m["op"] = n.Op.String()
		set("target", n.Target)
		set("value", n.Value)

	case *CallExpr:
		m["type"] = "CallExpr"
		set("fun", n.Fun)
		m["args"] = treeList(n.Args)

	case *SelectorExpr:
		m["type"] = "SelectorExpr"
		set("x", n.X)
		m["sel"] = n.Sel.Value
		m["optional"] = n.Optional

	case *IndexExpr:
		m["type"] = "IndexExpr"
		set("x", n.X)
		set("index", n.Index)

	case *ParenExpr:
		m["type"] = "ParenExpr"
		set("x", n.X)

	case *ArrayLit:
		m["type"] = "ArrayLit"
		m["elems"] = treeList(n.Elems)

	case *ObjectLit:
		m["type"] = "ObjectLit"
		m["props"] = treeList(n.Props)

	case *Property:
		m["type"] = "Property"
		m["key"] = n.Key
		m["shorthand"] = n.Shorthand
		set("value", n.Value)

	case *TemplateLit:
		m["type"] = "TemplateLit"
		m["parts"] = treeList(n.Parts)

	case *TemplateText:
		m["type"] = "TemplateText"
		m["text"] = n.Text

	case *TemplateVar:
		m["type"] = "TemplateVar"
		m["name"] = n.Name

	case *TemplateExpr:
		m["type"] = "TemplateExpr"
		set("x", n.X)

	case *RangeExpr:
		m["type"] = "RangeExpr"
		m["exclusive"] = n.Exclusive
		set("start", n.Start)
		set("end", n.End)
		set("step", n.Step)

	case *FuncLit:
		m["type"] = "FuncLit"
		m["params"] = names(n.Params)
		set("body", n.Body)

	case *BlockExpr:
		m["type"] = "BlockExpr"
		m["stmts"] = treeList(n.Stmts)

	case *IfExpr:
		m["type"] = "IfExpr"
		set("cond", n.Cond)
		set("then", n.Then)
		set("else", n.Else)

	case *WhileExpr:
		m["type"] = "WhileExpr"
		set("cond", n.Cond)
		set("body", n.Body)

	case *DoWhileExpr:
		m["type"] = "DoWhileExpr"
		set("body", n.Body)
		set("cond", n.Cond)

	case *ForExpr:
		m["type"] = "ForExpr"
		set("init", n.Init)
		set("cond", n.Cond)
		set("update", n.Update)
		set("body", n.Body)

	case *LoopExpr:
		m["type"] = "LoopExpr"
		set("body", n.Body)

	case *MatchExpr:
		m["type"] = "MatchExpr"
		set("value", n.Value)
		m["arms"] = treeList(n.Arms)
		set("default", n.Default)

	case *MatchArm:
		m["type"] = "MatchArm"
		set("pattern", n.Pattern)
		set("guard", n.Guard)
		set("body", n.Body)

	case *BranchExpr:
		m["type"] = "BranchExpr"
		m["token"] = n.Tok.String()

	case *ReturnExpr:
		m["type"] = "ReturnExpr"
		set("result", n.Result)

	// Patterns

	case *IdentPattern:
		m["type"] = "IdentPattern"
		m["name"] = n.Name

	case *LiteralPattern:
		m["type"] = "LiteralPattern"
		m["value"] = ToTree(n.Value)

	case *TypePattern:
		m["type"] = "TypePattern"
		m["name"] = n.Name.Value
		m["typeName"] = n.Type.Value

	case *ConstructorPattern:
		m["type"] = "ConstructorPattern"
		m["name"] = n.Name.Value
		m["args"] = treeList(n.Args)

	case *ArrayPattern:
		m["type"] = "ArrayPattern"
		m["elems"] = treeList(n.Elems)

	case *ObjectPattern:
		m["type"] = "ObjectPattern"
		m["fields"] = treeList(n.Fields)

	case *FieldPattern:
		m["type"] = "FieldPattern"
		m["key"] = n.Key
		m["shorthand"] = n.Shorthand
		set("value", n.Value)

	case *BindingPattern:
		m["type"] = "BindingPattern"
		m["name"] = n.Name.Value
		set("pattern", n.Pattern)

	case *AltPattern:
		m["type"] = "AltPattern"
		m["alts"] = treeList(n.Alts)

	default:
		m["type"] = "Unknown"
	}
	return m
}

// treeList converts a slice of nodes. Empty slices become empty lists, not null.
func treeList[N Node](s []N) []any {
	result := make([]any, len(s))
	for i, v := range s {
		result[i] = ToTree(v)
	}
	return result
}

func names(s []*Name) []string {
	result := make([]string, len(s))
	for i, n := range s {
		result[i] = n.Value
	}
	return result
}
