package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkList(n.Body, v)

	// Statements
	case *VarDecl:
		Walk(n.Target, v)
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *FuncDecl:
		Walk(n.Name, v)
		walkList(n.Params, v)
		Walk(n.Body, v)

	case *ImportStmt:
		walkList(n.Path, v)
		walkList(n.Items, v)

	case *ImportItem:
		Walk(n.Name, v)
		if n.Alias != nil {
			Walk(n.Alias, v)
		}

	case *PackageStmt:
		walkList(n.Path, v)

	case *DataDecl:
		Walk(n.Name, v)
		walkList(n.Constructors, v)
		walkList(n.Methods, v)

	case *Constructor:
		Walk(n.Name, v)
		walkList(n.Params, v)

	case *ExprStmt:
		Walk(n.X, v)

	// Expressions
	case *BinaryExpr:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *UnaryExpr:
		Walk(n.X, v)

	case *TernaryExpr:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		Walk(n.Else, v)

	case *AssignExpr:
		Walk(n.Target, v)
		Walk(n.Value, v)

	case *CallExpr:
		Walk(n.Fun, v)
		walkList(n.Args, v)

	case *SelectorExpr:
		Walk(n.X, v)
		Walk(n.Sel, v)

	case *IndexExpr:
		Walk(n.X, v)
		Walk(n.Index, v)

	case *ParenExpr:
		Walk(n.X, v)

	case *ArrayLit:
		walkList(n.Elems, v)

	case *ObjectLit:
		walkList(n.Props, v)

	case *Property:
		Walk(n.Value, v)

	case *TemplateLit:
		walkList(n.Parts, v)

	case *TemplateExpr:
		Walk(n.X, v)

	case *RangeExpr:
		Walk(n.Start, v)
		Walk(n.End, v)
		if n.Step != nil {
			Walk(n.Step, v)
		}

	case *FuncLit:
		walkList(n.Params, v)
		Walk(n.Body, v)

	case *BlockExpr:
		walkList(n.Stmts, v)

	case *IfExpr:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *WhileExpr:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *DoWhileExpr:
		Walk(n.Body, v)
		Walk(n.Cond, v)

	case *ForExpr:
		if n.Init != nil {
			Walk(n.Init, v)
		}
		if n.Cond != nil {
			Walk(n.Cond, v)
		}
		if n.Update != nil {
			Walk(n.Update, v)
		}
		Walk(n.Body, v)

	case *LoopExpr:
		Walk(n.Body, v)

	case *MatchExpr:
		Walk(n.Value, v)
		walkList(n.Arms, v)
		if n.Default != nil {
			Walk(n.Default, v)
		}

	case *MatchArm:
		Walk(n.Pattern, v)
		if n.Guard != nil {
			Walk(n.Guard, v)
		}
		Walk(n.Body, v)

	case *ReturnExpr:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	// Patterns
	case *LiteralPattern:
		Walk(n.Value, v)

	case *TypePattern:
		Walk(n.Name, v)
		Walk(n.Type, v)

	case *ConstructorPattern:
		Walk(n.Name, v)
		walkList(n.Args, v)

	case *ArrayPattern:
		walkList(n.Elems, v)

	case *ObjectPattern:
		walkList(n.Fields, v)

	case *FieldPattern:
		Walk(n.Value, v)

	case *BindingPattern:
		Walk(n.Name, v)
		Walk(n.Pattern, v)

	case *AltPattern:
		walkList(n.Alts, v)

	// Leaf nodes: Name, BasicLit, TemplateText, TemplateVar, BranchExpr,
	// IdentPattern. No children to visit.
	}
}

// walkList walks each node of a slice in order.
func walkList[N Node](list []N, v Visitor) {
	for _, n := range list {
		Walk(n, v)
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
