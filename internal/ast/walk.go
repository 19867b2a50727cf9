package ast

// Walk traverses the AST starting from node, calling fn for each node.
// Children are visited in declaration order. If fn returns false, Walk
// stops traversing that branch.
func Walk(node AstNode, fn func(AstNode) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Unit:
		for _, imp := range n.PackageImports {
			Walk(imp, fn)
		}
		for _, imp := range n.MemberImports {
			Walk(imp, fn)
		}
		walkStmts(n.Members, fn)

	case *PackageImportStatement, *MemberImportStatement:

	case *ClassDeclaration:
		if n.BaseClass != nil {
			Walk(n.BaseClass, fn)
		}
		walkTypes(n.GenericTypes, fn)
		walkStmts(n.Members, fn)

	case *FunctionDeclaration:
		walkParams(n.Parameters, fn)
		if n.ReturnType != nil {
			Walk(n.ReturnType, fn)
		}
		walkStmts(n.Body, fn)
		walkTypes(n.GenericTypes, fn)

	case *Parameter:
		if n.Type != nil {
			Walk(n.Type, fn)
		}

	case *VariableDeclaration:
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *ReturnStatement:
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *IfStatement:
		Walk(n.Condition, fn)
		walkStmts(n.Then, fn)
		walkStmts(n.Else, fn)

	case *ForStatement:
		if n.Initializer != nil {
			Walk(n.Initializer, fn)
		}
		if n.Condition != nil {
			Walk(n.Condition, fn)
		}
		if n.Increment != nil {
			Walk(n.Increment, fn)
		}
		walkStmts(n.Body, fn)

	case *ForeachStatement:
		Walk(n.Iterable, fn)
		walkStmts(n.Body, fn)

	case *WhileStatement:
		Walk(n.Condition, fn)
		walkStmts(n.Body, fn)

	case *BreakStatement, *ContinueStatement:

	case *TypeReference:
		walkTypes(n.GenericArgs, fn)

	case *BinaryExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryExpression:
		Walk(n.Operand, fn)

	case *CallExpression:
		walkTypes(n.GenericArgs, fn)
		walkExprs(n.Arguments, fn)

	case *ConstructorCallExpression:
		walkTypes(n.GenericArgs, fn)
		walkExprs(n.Arguments, fn)

	case *DotAccessExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *ClosureExpression:
		walkParams(n.Parameters, fn)
		if n.ReturnType != nil {
			Walk(n.ReturnType, fn)
		}
		walkStmts(n.Body, fn)
		walkTypes(n.GenericTypes, fn)

	case *LambdaExpression:
		walkParams(n.Parameters, fn)
		Walk(n.Body, fn)
		if n.ReturnType != nil {
			Walk(n.ReturnType, fn)
		}
		walkTypes(n.GenericTypes, fn)

	case *LiteralExpression, *VariableExpression:

	default:
		panic("ast.Walk: unexpected node type")
	}
}

func walkStmts(stmts []Stmt, fn func(AstNode) bool) {
	for _, stmt := range stmts {
		Walk(stmt, fn)
	}
}

func walkExprs(exprs []Expr, fn func(AstNode) bool) {
	for _, expr := range exprs {
		Walk(expr, fn)
	}
}

func walkTypes(types []*TypeReference, fn func(AstNode) bool) {
	for _, t := range types {
		Walk(t, fn)
	}
}

func walkParams(params []*Parameter, fn func(AstNode) bool) {
	for _, param := range params {
		Walk(param, fn)
	}
}

// Inspect calls fn for every node with its depth below node, in the order
// Walk visits them.
func Inspect(node AstNode, fn func(n AstNode, depth int)) {
	var visit func(AstNode, int)
	visit = func(n AstNode, depth int) {
		fn(n, depth)
		Walk(n, func(child AstNode) bool {
			if child == n {
				return true
			}
			visit(child, depth+1)
			return false
		})
	}

	visit(node, 0)
}
