package ast

import "github.com/kievzenit/soda/internal/lexer"

type AccessModifier int

const (
	AccessDefault AccessModifier = iota
	AccessPublic
	AccessPrivate
)

func (a AccessModifier) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessPrivate:
		return "private"
	default:
		return ""
	}
}

type ClassDeclaration struct {
	StartToken *lexer.Token

	Name         string
	IsStatic     bool
	Access       AccessModifier
	BaseClass    *TypeReference
	GenericTypes []*TypeReference
	Members      []Stmt
}

type FunctionDeclaration struct {
	StartToken *lexer.Token

	Name          string
	IsStatic      bool
	IsConstructor bool
	Access        AccessModifier
	Parameters    []*Parameter
	ReturnType    *TypeReference
	Body          []Stmt
	GenericTypes  []*TypeReference
}

type Parameter struct {
	StartToken *lexer.Token

	Name string
	Type *TypeReference
}

type VariableDeclaration struct {
	StartToken *lexer.Token

	Name     string
	IsStatic bool
	Access   AccessModifier
	Type     *TypeReference
	Value    Expr
}

type ReturnStatement struct {
	StartToken *lexer.Token

	Value Expr
}

// IfStatement keeps an else-if chain as an Else body holding a single
// nested IfStatement.
type IfStatement struct {
	StartToken *lexer.Token

	Condition Expr
	Then      []Stmt
	Else      []Stmt
}

type ForStatement struct {
	StartToken *lexer.Token

	Initializer Stmt
	Condition   Expr
	Increment   Expr
	Body        []Stmt
}

type ForeachStatement struct {
	StartToken *lexer.Token

	Variable string
	Iterable Expr
	Body     []Stmt
}

type WhileStatement struct {
	StartToken *lexer.Token

	Condition Expr
	Body      []Stmt
}

type BreakStatement struct {
	StartToken *lexer.Token
}

type ContinueStatement struct {
	StartToken *lexer.Token
}

func (c *ClassDeclaration) AstNode()    {}
func (f *FunctionDeclaration) AstNode() {}
func (p *Parameter) AstNode()           {}
func (v *VariableDeclaration) AstNode() {}
func (r *ReturnStatement) AstNode()     {}
func (i *IfStatement) AstNode()         {}
func (f *ForStatement) AstNode()        {}
func (f *ForeachStatement) AstNode()    {}
func (w *WhileStatement) AstNode()      {}
func (b *BreakStatement) AstNode()      {}
func (c *ContinueStatement) AstNode()   {}

func (c *ClassDeclaration) Kind() NodeKind    { return ClassDeclarationKind }
func (f *FunctionDeclaration) Kind() NodeKind { return FunctionDeclarationKind }
func (p *Parameter) Kind() NodeKind           { return ParameterKind }
func (v *VariableDeclaration) Kind() NodeKind { return VariableDeclarationKind }
func (r *ReturnStatement) Kind() NodeKind     { return ReturnStatementKind }
func (i *IfStatement) Kind() NodeKind         { return IfStatementKind }
func (f *ForStatement) Kind() NodeKind        { return ForStatementKind }
func (f *ForeachStatement) Kind() NodeKind    { return ForeachStatementKind }
func (w *WhileStatement) Kind() NodeKind      { return WhileStatementKind }
func (b *BreakStatement) Kind() NodeKind      { return BreakStatementKind }
func (c *ContinueStatement) Kind() NodeKind   { return ContinueStatementKind }

func (c *ClassDeclaration) FirstToken() *lexer.Token    { return c.StartToken }
func (f *FunctionDeclaration) FirstToken() *lexer.Token { return f.StartToken }
func (p *Parameter) FirstToken() *lexer.Token           { return p.StartToken }
func (v *VariableDeclaration) FirstToken() *lexer.Token { return v.StartToken }
func (r *ReturnStatement) FirstToken() *lexer.Token     { return r.StartToken }
func (i *IfStatement) FirstToken() *lexer.Token         { return i.StartToken }
func (f *ForStatement) FirstToken() *lexer.Token        { return f.StartToken }
func (f *ForeachStatement) FirstToken() *lexer.Token    { return f.StartToken }
func (w *WhileStatement) FirstToken() *lexer.Token      { return w.StartToken }
func (b *BreakStatement) FirstToken() *lexer.Token      { return b.StartToken }
func (c *ContinueStatement) FirstToken() *lexer.Token   { return c.StartToken }

func (c *ClassDeclaration) StmtNode()    {}
func (f *FunctionDeclaration) StmtNode() {}
func (v *VariableDeclaration) StmtNode() {}
func (r *ReturnStatement) StmtNode()     {}
func (i *IfStatement) StmtNode()         {}
func (f *ForStatement) StmtNode()        {}
func (f *ForeachStatement) StmtNode()    {}
func (w *WhileStatement) StmtNode()      {}
func (b *BreakStatement) StmtNode()      {}
func (c *ContinueStatement) StmtNode()   {}
