package ast

import (
	"fmt"

	"github.com/kievzenit/soda/internal/lexer"
)

type AstNode interface {
	AstNode()
	Kind() NodeKind
	FirstToken() *lexer.Token
}

// Stmt is anything that may appear in a member list or a body.
type Stmt interface {
	AstNode
	StmtNode()
}

// Expr is a Stmt too: a standalone expression is stored as-is in a body.
type Expr interface {
	Stmt
	ExprNode()
}

type NodeKind int

const (
	UnitKind NodeKind = iota
	PackageImportKind
	MemberImportKind
	ClassDeclarationKind
	FunctionDeclarationKind
	ParameterKind
	VariableDeclarationKind
	ReturnStatementKind
	IfStatementKind
	ForStatementKind
	ForeachStatementKind
	WhileStatementKind
	BreakStatementKind
	ContinueStatementKind
	TypeReferenceKind
	BinaryExpressionKind
	UnaryExpressionKind
	CallExpressionKind
	ConstructorCallExpressionKind
	DotAccessExpressionKind
	ClosureExpressionKind
	LambdaExpressionKind
	LiteralExpressionKind
	VariableExpressionKind
)

func (k NodeKind) String() string {
	switch k {
	case UnitKind:
		return "Unit"
	case PackageImportKind:
		return "PackageImportStatement"
	case MemberImportKind:
		return "MemberImportStatement"
	case ClassDeclarationKind:
		return "ClassDeclaration"
	case FunctionDeclarationKind:
		return "FunctionDeclaration"
	case ParameterKind:
		return "Parameter"
	case VariableDeclarationKind:
		return "VariableDeclaration"
	case ReturnStatementKind:
		return "ReturnStatement"
	case IfStatementKind:
		return "IfStatement"
	case ForStatementKind:
		return "ForStatement"
	case ForeachStatementKind:
		return "ForeachStatement"
	case WhileStatementKind:
		return "WhileStatement"
	case BreakStatementKind:
		return "BreakStatement"
	case ContinueStatementKind:
		return "ContinueStatement"
	case TypeReferenceKind:
		return "TypeReference"
	case BinaryExpressionKind:
		return "BinaryExpression"
	case UnaryExpressionKind:
		return "UnaryExpression"
	case CallExpressionKind:
		return "CallExpression"
	case ConstructorCallExpressionKind:
		return "ConstructorCallExpression"
	case DotAccessExpressionKind:
		return "DotAccessExpression"
	case ClosureExpressionKind:
		return "ClosureExpression"
	case LambdaExpressionKind:
		return "LambdaExpression"
	case LiteralExpressionKind:
		return "LiteralExpression"
	case VariableExpressionKind:
		return "VariableExpression"
	default:
		panic(fmt.Sprintf("NodeKind.String(): received illegal node kind: %d", k))
	}
}

// Unit is the root of every parse. It has no parent.
type Unit struct {
	StartToken *lexer.Token

	Name           string
	PackageImports []*PackageImportStatement
	MemberImports  []*MemberImportStatement
	Members        []Stmt
}

type PackageImportStatement struct {
	StartToken *lexer.Token

	Path string
}

type MemberImportStatement struct {
	StartToken *lexer.Token

	PackageName string
	MemberName  string
}

func (u *Unit) AstNode()                   {}
func (p *PackageImportStatement) AstNode() {}
func (m *MemberImportStatement) AstNode()  {}

func (u *Unit) Kind() NodeKind                   { return UnitKind }
func (p *PackageImportStatement) Kind() NodeKind { return PackageImportKind }
func (m *MemberImportStatement) Kind() NodeKind  { return MemberImportKind }

func (u *Unit) FirstToken() *lexer.Token                   { return u.StartToken }
func (p *PackageImportStatement) FirstToken() *lexer.Token { return p.StartToken }
func (m *MemberImportStatement) FirstToken() *lexer.Token  { return m.StartToken }
