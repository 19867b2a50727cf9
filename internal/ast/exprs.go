package ast

import "github.com/kievzenit/soda/internal/lexer"

type LiteralKind int

const (
	StringLiteral LiteralKind = iota
	IntegerLiteral
	FloatLiteral
	LongLiteral
	DoubleLiteral
	BooleanLiteral
)

func (k LiteralKind) String() string {
	switch k {
	case StringLiteral:
		return "string"
	case IntegerLiteral:
		return "integer"
	case FloatLiteral:
		return "float"
	case LongLiteral:
		return "long"
	case DoubleLiteral:
		return "double"
	case BooleanLiteral:
		return "boolean"
	default:
		return "unknown"
	}
}

// LiteralKindOf maps a literal token kind to its LiteralKind.
func LiteralKindOf(kind lexer.TokenKind) (LiteralKind, bool) {
	switch kind {
	case lexer.STRING:
		return StringLiteral, true
	case lexer.INT:
		return IntegerLiteral, true
	case lexer.FLOAT:
		return FloatLiteral, true
	case lexer.LONG:
		return LongLiteral, true
	case lexer.DOUBLE:
		return DoubleLiteral, true
	case lexer.BOOL:
		return BooleanLiteral, true
	}

	return 0, false
}

type LiteralExpression struct {
	StartToken *lexer.Token

	Value       string
	LiteralKind LiteralKind
}

type VariableExpression struct {
	StartToken *lexer.Token

	Name string
}

type BinaryExpression struct {
	StartToken *lexer.Token

	Operator string
	Left     Expr
	Right    Expr
}

type UnaryExpression struct {
	StartToken *lexer.Token

	Operator string
	Operand  Expr
}

type CallExpression struct {
	StartToken *lexer.Token

	Callee      string
	GenericArgs []*TypeReference
	Arguments   []Expr
}

// ConstructorCallExpression is a CallExpression whose Callee names a class.
type ConstructorCallExpression struct {
	CallExpression
}

type DotAccessExpression struct {
	StartToken *lexer.Token

	Left  Expr
	Right Expr
}

type ClosureExpression struct {
	StartToken *lexer.Token

	Parameters   []*Parameter
	ReturnType   *TypeReference
	Body         []Stmt
	GenericTypes []*TypeReference
}

type LambdaExpression struct {
	StartToken *lexer.Token

	Parameters   []*Parameter
	Body         Expr
	ReturnType   *TypeReference
	GenericTypes []*TypeReference
}

func (e *LiteralExpression) AstNode()   {}
func (e *VariableExpression) AstNode()  {}
func (e *BinaryExpression) AstNode()    {}
func (e *UnaryExpression) AstNode()     {}
func (e *CallExpression) AstNode()      {}
func (e *DotAccessExpression) AstNode() {}
func (e *ClosureExpression) AstNode()   {}
func (e *LambdaExpression) AstNode()    {}

func (e *LiteralExpression) Kind() NodeKind         { return LiteralExpressionKind }
func (e *VariableExpression) Kind() NodeKind        { return VariableExpressionKind }
func (e *BinaryExpression) Kind() NodeKind          { return BinaryExpressionKind }
func (e *UnaryExpression) Kind() NodeKind           { return UnaryExpressionKind }
func (e *CallExpression) Kind() NodeKind            { return CallExpressionKind }
func (e *ConstructorCallExpression) Kind() NodeKind { return ConstructorCallExpressionKind }
func (e *DotAccessExpression) Kind() NodeKind       { return DotAccessExpressionKind }
func (e *ClosureExpression) Kind() NodeKind         { return ClosureExpressionKind }
func (e *LambdaExpression) Kind() NodeKind          { return LambdaExpressionKind }

func (e *LiteralExpression) FirstToken() *lexer.Token   { return e.StartToken }
func (e *VariableExpression) FirstToken() *lexer.Token  { return e.StartToken }
func (e *BinaryExpression) FirstToken() *lexer.Token    { return e.StartToken }
func (e *UnaryExpression) FirstToken() *lexer.Token     { return e.StartToken }
func (e *CallExpression) FirstToken() *lexer.Token      { return e.StartToken }
func (e *DotAccessExpression) FirstToken() *lexer.Token { return e.StartToken }
func (e *ClosureExpression) FirstToken() *lexer.Token   { return e.StartToken }
func (e *LambdaExpression) FirstToken() *lexer.Token    { return e.StartToken }

func (e *LiteralExpression) StmtNode()   {}
func (e *VariableExpression) StmtNode()  {}
func (e *BinaryExpression) StmtNode()    {}
func (e *UnaryExpression) StmtNode()     {}
func (e *CallExpression) StmtNode()      {}
func (e *DotAccessExpression) StmtNode() {}
func (e *ClosureExpression) StmtNode()   {}
func (e *LambdaExpression) StmtNode()    {}

func (e *LiteralExpression) ExprNode()   {}
func (e *VariableExpression) ExprNode()  {}
func (e *BinaryExpression) ExprNode()    {}
func (e *UnaryExpression) ExprNode()     {}
func (e *CallExpression) ExprNode()      {}
func (e *DotAccessExpression) ExprNode() {}
func (e *ClosureExpression) ExprNode()   {}
func (e *LambdaExpression) ExprNode()    {}
