package parser_test

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/kievzenit/soda/internal/ast"
	"github.com/kievzenit/soda/internal/compiler_errors"
	"github.com/kievzenit/soda/internal/lexer"
	"github.com/kievzenit/soda/internal/parser"
)

var _ compiler_errors.LocatedError = (*parser.ParseError)(nil)

func parseSource(t *testing.T, src string) *ast.Unit {
	t.Helper()

	unit, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if unit == nil {
		t.Fatalf("unit is nil")
	}

	return unit
}

func parseFailure(t *testing.T, src string) *parser.ParseError {
	t.Helper()

	unit, err := parser.ParseString(src)
	if err == nil {
		t.Fatalf("expected a parse error for %q", src)
	}
	if unit != nil {
		t.Errorf("expected no unit alongside an error")
	}

	var parseErr *parser.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *parser.ParseError, got %T", err)
	}

	return parseErr
}

func as[T any](t *testing.T, node any) T {
	t.Helper()

	typed, ok := node.(T)
	if !ok {
		var zero T
		t.Fatalf("expected %T, got %T", zero, node)
	}

	return typed
}

func onlyMember[T any](t *testing.T, unit *ast.Unit) T {
	t.Helper()

	if len(unit.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(unit.Members))
	}

	return as[T](t, unit.Members[0])
}

// render prints an expression in fully parenthesised form.
func render(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		return "(" + render(e.Left) + " " + e.Operator + " " + render(e.Right) + ")"
	case *ast.UnaryExpression:
		return "(" + e.Operator + render(e.Operand) + ")"
	case *ast.VariableExpression:
		return e.Name
	case *ast.LiteralExpression:
		return e.Value
	case *ast.DotAccessExpression:
		return render(e.Left) + "." + render(e.Right)
	case *ast.CallExpression:
		args := make([]string, len(e.Arguments))
		for i, arg := range e.Arguments {
			args[i] = render(arg)
		}
		return e.Callee + "(" + strings.Join(args, ", ") + ")"
	default:
		return expr.Kind().String()
	}
}

func TestParsePackageDecl(t *testing.T) {
	unit := parseSource(t, "package demo;")

	if unit.Name != "demo" {
		t.Errorf("expected package name %q, got %q", "demo", unit.Name)
	}
	if unit.Members == nil || len(unit.Members) != 0 {
		t.Errorf("expected empty non-nil members, got %#v", unit.Members)
	}
}

func TestParsePackageBlock(t *testing.T) {
	unit := parseSource(t, "package app.core { var x = 1; function main() { } }")

	if unit.Name != "app.core" {
		t.Errorf("expected package name %q, got %q", "app.core", unit.Name)
	}
	if len(unit.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(unit.Members))
	}
	as[*ast.VariableDeclaration](t, unit.Members[0])
	as[*ast.FunctionDeclaration](t, unit.Members[1])
}

func TestParseDuplicatePackage(t *testing.T) {
	err := parseFailure(t, "package a; package b;")

	if err.Token.Kind != lexer.PACKAGE || err.Token.Column != 12 {
		t.Errorf("expected error at second package keyword, got %s", err)
	}
}

func TestParseVariableDecl(t *testing.T) {
	unit := parseSource(t, "var x: Int = 5;")
	decl := onlyMember[*ast.VariableDeclaration](t, unit)

	if decl.Name != "x" {
		t.Errorf("expected name x, got %q", decl.Name)
	}
	if decl.Type == nil || decl.Type.Name != "Int" || len(decl.Type.GenericArgs) != 0 {
		t.Errorf("expected type Int, got %v", decl.Type)
	}

	value := as[*ast.LiteralExpression](t, decl.Value)
	if value.Value != "5" || value.LiteralKind != ast.IntegerLiteral {
		t.Errorf("expected integer literal 5, got %s %q", value.LiteralKind, value.Value)
	}

	if decl.StartToken == nil || decl.StartToken.Line != 1 || decl.StartToken.Column != 1 {
		t.Errorf("unexpected start token %v", decl.StartToken)
	}
}

func TestParseVariableDeclForms(t *testing.T) {
	unit := parseSource(t, "var a; var b: Map[String, List[Int]]; var c = true; var d = 2.5d; var e = \"s\";")

	if len(unit.Members) != 5 {
		t.Fatalf("expected 5 members, got %d", len(unit.Members))
	}

	a := as[*ast.VariableDeclaration](t, unit.Members[0])
	if a.Type != nil || a.Value != nil {
		t.Errorf("expected bare declaration, got %+v", a)
	}

	b := as[*ast.VariableDeclaration](t, unit.Members[1])
	if got := b.Type.TypeName(); got != "Map[String, List[Int]]" {
		t.Errorf("expected nested generic type, got %q", got)
	}

	kinds := []ast.LiteralKind{ast.BooleanLiteral, ast.DoubleLiteral, ast.StringLiteral}
	for i, kind := range kinds {
		decl := as[*ast.VariableDeclaration](t, unit.Members[i+2])
		literal := as[*ast.LiteralExpression](t, decl.Value)
		if literal.LiteralKind != kind {
			t.Errorf("member %d: expected %s literal, got %s", i+2, kind, literal.LiteralKind)
		}
	}
}

func TestParseFunctionDecl(t *testing.T) {
	unit := parseSource(t, "function add(a: Int) => Int { return a; }")
	fn := onlyMember[*ast.FunctionDeclaration](t, unit)

	if fn.Name != "add" || fn.IsConstructor || fn.IsStatic {
		t.Errorf("unexpected function header %+v", fn)
	}
	if len(fn.Parameters) != 1 || fn.Parameters[0].Name != "a" || fn.Parameters[0].Type.Name != "Int" {
		t.Fatalf("expected parameter a: Int, got %v", fn.Parameters)
	}
	if fn.ReturnType == nil || fn.ReturnType.Name != "Int" {
		t.Errorf("expected return type Int, got %v", fn.ReturnType)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body))
	}

	ret := as[*ast.ReturnStatement](t, fn.Body[0])
	if v := as[*ast.VariableExpression](t, ret.Value); v.Name != "a" {
		t.Errorf("expected return a, got %s", v.Name)
	}
}

func TestParseGenericFunctionDecl(t *testing.T) {
	unit := parseSource(t, "function pair[K, V](k: K, v: V) => Pair[K, V] { return; }")
	fn := onlyMember[*ast.FunctionDeclaration](t, unit)

	if len(fn.GenericTypes) != 2 || fn.GenericTypes[0].Name != "K" || fn.GenericTypes[1].Name != "V" {
		t.Errorf("expected generics K, V in order, got %v", fn.GenericTypes)
	}
	if len(fn.Parameters) != 2 {
		t.Errorf("expected 2 parameters, got %d", len(fn.Parameters))
	}
	if fn.ReturnType.TypeName() != "Pair[K, V]" {
		t.Errorf("unexpected return type %s", fn.ReturnType)
	}

	ret := as[*ast.ReturnStatement](t, fn.Body[0])
	if ret.Value != nil {
		t.Errorf("expected bare return, got %v", ret.Value)
	}
}

func TestParseMemberCallStatement(t *testing.T) {
	unit := parseSource(t, `Sys.print("hi");`)

	if len(unit.MemberImports) != 0 {
		t.Errorf("call statement parsed as member import")
	}

	dot := onlyMember[*ast.DotAccessExpression](t, unit)
	if left := as[*ast.VariableExpression](t, dot.Left); left.Name != "Sys" {
		t.Errorf("expected left Sys, got %s", left.Name)
	}

	call := as[*ast.CallExpression](t, dot.Right)
	if call.Callee != "print" {
		t.Errorf("expected callee print, got %s", call.Callee)
	}
	if call.GenericArgs == nil || len(call.GenericArgs) != 0 {
		t.Errorf("expected empty generic args, got %v", call.GenericArgs)
	}
	if len(call.Arguments) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(call.Arguments))
	}

	arg := as[*ast.LiteralExpression](t, call.Arguments[0])
	if arg.Value != "hi" || arg.LiteralKind != ast.StringLiteral {
		t.Errorf("expected string literal hi, got %s %q", arg.LiteralKind, arg.Value)
	}
}

func TestParseImports(t *testing.T) {
	unit := parseSource(t, "import std.io.files; import math; io.File; a.b.c;")

	if len(unit.PackageImports) != 2 {
		t.Fatalf("expected 2 package imports, got %d", len(unit.PackageImports))
	}
	if unit.PackageImports[0].Path != "std.io.files" || unit.PackageImports[1].Path != "math" {
		t.Errorf("unexpected import paths %q, %q", unit.PackageImports[0].Path, unit.PackageImports[1].Path)
	}

	if len(unit.MemberImports) != 1 {
		t.Fatalf("expected 1 member import, got %d", len(unit.MemberImports))
	}
	if imp := unit.MemberImports[0]; imp.PackageName != "io" || imp.MemberName != "File" {
		t.Errorf("unexpected member import %s.%s", imp.PackageName, imp.MemberName)
	}

	dot := onlyMember[*ast.DotAccessExpression](t, unit)
	if got := render(dot); got != "a.b.c" {
		t.Errorf("expected a.b.c expression, got %s", got)
	}
}

func TestParseInvalidImport(t *testing.T) {
	tests := []string{
		"import ;",
		"import a.;",
		"import a b;",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			err := parseFailure(t, src)
			if err.Kind != parser.ErrInvalidImport && err.Kind != parser.ErrUnexpectedToken {
				t.Errorf("expected an import error, got %s", err.Kind)
			}
		})
	}

	if err := parseFailure(t, "import ;"); err.Kind != parser.ErrInvalidImport {
		t.Errorf("expected ErrInvalidImport, got %s", err.Kind)
	}
}

func TestParseClassDecl(t *testing.T) {
	src := `public static class Box[T, U] extends Base[T] {
	private var value: T;
	constructor(v: T) { value = v; }
	public function get() => T { return value; }
}`
	unit := parseSource(t, src)
	class := onlyMember[*ast.ClassDeclaration](t, unit)

	if class.Name != "Box" || class.Access != ast.AccessPublic || !class.IsStatic {
		t.Errorf("unexpected class header %+v", class)
	}
	if class.StartToken.Kind != lexer.PUBLIC {
		t.Errorf("expected class to start at its first modifier, got %v", class.StartToken)
	}
	if len(class.GenericTypes) != 2 || class.GenericTypes[1].Name != "U" {
		t.Errorf("unexpected generic types %v", class.GenericTypes)
	}
	if class.BaseClass == nil || class.BaseClass.TypeName() != "Base[T]" {
		t.Errorf("unexpected base class %v", class.BaseClass)
	}
	if len(class.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(class.Members))
	}

	field := as[*ast.VariableDeclaration](t, class.Members[0])
	if field.Access != ast.AccessPrivate || field.Type.Name != "T" {
		t.Errorf("unexpected field %+v", field)
	}

	ctor := as[*ast.FunctionDeclaration](t, class.Members[1])
	if !ctor.IsConstructor || len(ctor.Parameters) != 1 || len(ctor.Body) != 1 {
		t.Errorf("unexpected constructor %+v", ctor)
	}
	if got := render(as[ast.Expr](t, ctor.Body[0])); got != "(value = v)" {
		t.Errorf("unexpected constructor body %s", got)
	}

	get := as[*ast.FunctionDeclaration](t, class.Members[2])
	if get.Name != "get" || get.Access != ast.AccessPublic || get.ReturnType.Name != "T" {
		t.Errorf("unexpected method %+v", get)
	}
}

func TestParseModifierErrors(t *testing.T) {
	tests := []struct {
		src     string
		message string
	}{
		{"public public var x;", "duplicate access modifier"},
		{"public private var x;", "duplicate access modifier"},
		{"static static var x;", "duplicate 'static' modifier"},
		{"public return;", "expected one of"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			err := parseFailure(t, tt.src)
			if !strings.Contains(err.Message, tt.message) {
				t.Errorf("expected message containing %q, got %q", tt.message, err.Message)
			}
		})
	}
}

func TestParseControlFlow(t *testing.T) {
	t.Run("if else-if else", func(t *testing.T) {
		unit := parseSource(t, "if a { } else if b { x; } else { y; z; }")
		stmt := onlyMember[*ast.IfStatement](t, unit)

		if len(stmt.Then) != 0 {
			t.Errorf("expected empty then branch")
		}
		if len(stmt.Else) != 1 {
			t.Fatalf("expected else-if to hold one statement, got %d", len(stmt.Else))
		}

		nested := as[*ast.IfStatement](t, stmt.Else[0])
		if render(nested.Condition) != "b" || len(nested.Then) != 1 || len(nested.Else) != 2 {
			t.Errorf("unexpected nested if %+v", nested)
		}
	})

	t.Run("if without else", func(t *testing.T) {
		stmt := onlyMember[*ast.IfStatement](t, parseSource(t, "if (a == 1) { return; }"))
		if stmt.Else != nil {
			t.Errorf("expected nil else, got %v", stmt.Else)
		}
		if got := render(stmt.Condition); got != "(a == 1)" {
			t.Errorf("unexpected condition %s", got)
		}
	})

	t.Run("for", func(t *testing.T) {
		stmt := onlyMember[*ast.ForStatement](t, parseSource(t, "for (var i = 0; i < 10; i = i + 1) { continue; }"))

		init := as[*ast.VariableDeclaration](t, stmt.Initializer)
		if init.Name != "i" {
			t.Errorf("unexpected initializer %+v", init)
		}
		if got := render(stmt.Condition); got != "(i < 10)" {
			t.Errorf("unexpected condition %s", got)
		}
		if got := render(stmt.Increment); got != "(i = (i + 1))" {
			t.Errorf("unexpected increment %s", got)
		}
		as[*ast.ContinueStatement](t, stmt.Body[0])
	})

	t.Run("for with empty clauses", func(t *testing.T) {
		stmt := onlyMember[*ast.ForStatement](t, parseSource(t, "for (;;) { break; }"))

		if stmt.Initializer != nil || stmt.Condition != nil || stmt.Increment != nil {
			t.Errorf("expected empty clauses, got %+v", stmt)
		}
		as[*ast.BreakStatement](t, stmt.Body[0])
	})

	t.Run("for with expression initializer", func(t *testing.T) {
		stmt := onlyMember[*ast.ForStatement](t, parseSource(t, "for (i = 0; ; ) { }"))
		if got := render(as[ast.Expr](t, stmt.Initializer)); got != "(i = 0)" {
			t.Errorf("unexpected initializer %s", got)
		}
	})

	t.Run("foreach", func(t *testing.T) {
		stmt := onlyMember[*ast.ForeachStatement](t, parseSource(t, "foreach (item in list.items()) { print(item); }"))

		if stmt.Variable != "item" {
			t.Errorf("unexpected loop variable %q", stmt.Variable)
		}
		if got := render(stmt.Iterable); got != "list.items()" {
			t.Errorf("unexpected iterable %s", got)
		}
		if got := render(as[ast.Expr](t, stmt.Body[0])); got != "print(item)" {
			t.Errorf("unexpected body %s", got)
		}
	})

	t.Run("while", func(t *testing.T) {
		stmt := onlyMember[*ast.WhileStatement](t, parseSource(t, "while i < 3 { i = i + 1; }"))

		if got := render(stmt.Condition); got != "(i < 3)" {
			t.Errorf("unexpected condition %s", got)
		}
		if len(stmt.Body) != 1 {
			t.Errorf("expected 1 body statement, got %d", len(stmt.Body))
		}
	})

	t.Run("lone semicolons are skipped", func(t *testing.T) {
		unit := parseSource(t, ";; function f() { ; return; ; }")
		fn := onlyMember[*ast.FunctionDeclaration](t, unit)
		if len(fn.Body) != 1 {
			t.Errorf("expected 1 body statement, got %d", len(fn.Body))
		}
	})
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{"x = 1 + 2 * 3;", "(x = (1 + (2 * 3)))"},
		{"a - b - c;", "((a - b) - c)"},
		{"a / b % c;", "((a / b) % c)"},
		{"a = b = c;", "(a = (b = c))"},
		{"a := b;", "(a := b)"},
		{"a < b == c >= d;", "((a < b) == (c >= d))"},
		{"a != b + c;", "(a != (b + c))"},
		{"x is Foo;", "(x is Foo)"},
		{"a is B == c;", "((a is B) == c)"},
		{"func(a);", "func(a)"},
		{"!a == -b;", "((!a) == (-b))"},
		{"~a * b;", "((~a) * b)"},
		{"-a.b;", "(-a.b)"},
		{"(a + b) * c;", "((a + b) * c)"},
		{"x.y = f(a, b + 1);", "(x.y = f(a, (b + 1)))"},
		{"a.b().c.d(1);", "a.b().c.d(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			unit := parseSource(t, tt.src)
			expr := onlyMember[ast.Expr](t, unit)

			if got := render(expr); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestParseDotAccessShape(t *testing.T) {
	expr := onlyMember[*ast.DotAccessExpression](t, parseSource(t, "a.b.c();"))

	inner := as[*ast.DotAccessExpression](t, expr.Left)
	as[*ast.VariableExpression](t, inner.Left)
	as[*ast.VariableExpression](t, inner.Right)
	as[*ast.CallExpression](t, expr.Right)
}

func TestParseInvalidAssignment(t *testing.T) {
	tests := []string{
		"a + b = c;",
		"f() = 1;",
		"1 = x;",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			err := parseFailure(t, src)
			if err.Kind != parser.ErrInvalidExpression {
				t.Errorf("expected ErrInvalidExpression, got %s", err.Kind)
			}
			if err.Token.Kind != lexer.ASSIGN {
				t.Errorf("expected error at '=', got %v", err.Token)
			}
		})
	}
}

func TestParseClosure(t *testing.T) {
	unit := parseSource(t, "var f = function[T](a: T, b: Int) => Int { return b; };")
	decl := onlyMember[*ast.VariableDeclaration](t, unit)
	closure := as[*ast.ClosureExpression](t, decl.Value)

	if len(closure.GenericTypes) != 1 || closure.GenericTypes[0].Name != "T" {
		t.Errorf("unexpected generics %v", closure.GenericTypes)
	}
	if len(closure.Parameters) != 2 || closure.Parameters[1].Type.Name != "Int" {
		t.Errorf("unexpected parameters %v", closure.Parameters)
	}
	if closure.ReturnType == nil || closure.ReturnType.Name != "Int" {
		t.Errorf("unexpected return type %v", closure.ReturnType)
	}
	if len(closure.Body) != 1 {
		t.Errorf("expected 1 body statement, got %d", len(closure.Body))
	}
}

func TestParseClosureStatement(t *testing.T) {
	closure := onlyMember[*ast.ClosureExpression](t, parseSource(t, "function() { };"))

	if len(closure.Parameters) != 0 || closure.ReturnType != nil {
		t.Errorf("unexpected closure %+v", closure)
	}
}

func TestParseLambda(t *testing.T) {
	tests := []struct {
		src        string
		params     int
		generics   int
		returnType string
		body       string
	}{
		{"var g = (x: Int): Int => x * 2;", 1, 0, "Int", "(x * 2)"},
		{"var h = () => 1;", 0, 0, "", "1"},
		{"var id = [T](v: T) => v;", 1, 1, "", "v"},
		{"var add = (a: Int, b: Int) => a + b;", 2, 0, "", "(a + b)"},
		{"var k = (): Bool => true;", 0, 0, "Bool", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			decl := onlyMember[*ast.VariableDeclaration](t, parseSource(t, tt.src))
			lambda := as[*ast.LambdaExpression](t, decl.Value)

			if len(lambda.Parameters) != tt.params {
				t.Errorf("expected %d parameters, got %d", tt.params, len(lambda.Parameters))
			}
			if len(lambda.GenericTypes) != tt.generics {
				t.Errorf("expected %d generics, got %d", tt.generics, len(lambda.GenericTypes))
			}

			returnType := ""
			if lambda.ReturnType != nil {
				returnType = lambda.ReturnType.Name
			}
			if returnType != tt.returnType {
				t.Errorf("expected return type %q, got %q", tt.returnType, returnType)
			}

			if got := render(lambda.Body); got != tt.body {
				t.Errorf("expected body %s, got %s", tt.body, got)
			}
		})
	}
}

func TestParseConstructorCall(t *testing.T) {
	decl := onlyMember[*ast.VariableDeclaration](t, parseSource(t, `var m = new Map[String, Int](1, "a");`))
	call := as[*ast.ConstructorCallExpression](t, decl.Value)

	if call.Kind() != ast.ConstructorCallExpressionKind {
		t.Errorf("unexpected kind %s", call.Kind())
	}
	if call.Callee != "Map" {
		t.Errorf("expected callee Map, got %s", call.Callee)
	}
	if len(call.GenericArgs) != 2 || call.GenericArgs[0].Name != "String" || call.GenericArgs[1].Name != "Int" {
		t.Errorf("unexpected generic args %v", call.GenericArgs)
	}
	if len(call.Arguments) != 2 {
		t.Errorf("expected 2 arguments, got %d", len(call.Arguments))
	}
	if call.FirstToken().Kind != lexer.NEW {
		t.Errorf("expected constructor call to start at 'new', got %v", call.FirstToken())
	}
}

func TestParseGenericCall(t *testing.T) {
	decl := onlyMember[*ast.VariableDeclaration](t, parseSource(t, "var r = convert[List[Int], String](x);"))
	call := as[*ast.CallExpression](t, decl.Value)

	if call.Callee != "convert" || len(call.GenericArgs) != 2 || len(call.Arguments) != 1 {
		t.Errorf("unexpected call %+v", call)
	}
	if call.GenericArgs[0].TypeName() != "List[Int]" {
		t.Errorf("unexpected first generic arg %s", call.GenericArgs[0])
	}
}

func TestParsePrimitiveTypeReceiver(t *testing.T) {
	dot := onlyMember[*ast.DotAccessExpression](t, parseSource(t, `Int.parse("5");`))

	if left := as[*ast.VariableExpression](t, dot.Left); left.Name != "Int" {
		t.Errorf("expected Int receiver, got %s", left.Name)
	}
	as[*ast.CallExpression](t, dot.Right)
}

func TestParseMissingSemicolon(t *testing.T) {
	err := parseFailure(t, "var x")

	if err.Kind != parser.ErrUnexpectedToken {
		t.Errorf("expected ErrUnexpectedToken, got %s", err.Kind)
	}
	if err.Token.Kind != lexer.EOF || err.GetLine() != 1 || err.GetColumn() != 6 {
		t.Errorf("expected error at end of input 1:6, got %s at %d:%d", err.Token.Kind, err.GetLine(), err.GetColumn())
	}
	if len(err.Expected) != 1 || err.Expected[0] != lexer.SEMICOLON {
		t.Errorf("expected SEMICOLON to be expected, got %v", err.Expected)
	}
	if err.Next != nil {
		t.Errorf("expected no next token at end of input, got %v", err.Next)
	}
}

func TestParseUnmatchedBrace(t *testing.T) {
	tests := []struct {
		src    string
		line   int
		column int
	}{
		{"class A {", 1, 9},
		{"function f() {\n  if x { }\n", 1, 14},
		{"package p {\n  class A { }", 1, 11},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			err := parseFailure(t, tt.src)

			if err.Kind != parser.ErrUnmatchedBrace {
				t.Fatalf("expected ErrUnmatchedBrace, got %s", err.Kind)
			}
			if err.Token.Kind != lexer.LBRACE || err.GetLine() != tt.line || err.GetColumn() != tt.column {
				t.Errorf("expected error at '{' %d:%d, got %s", tt.line, tt.column, err)
			}
			if err.Message != "unmatched opening brace" {
				t.Errorf("unexpected message %q", err.Message)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kind  parser.ErrorKind
		token lexer.TokenKind
	}{
		{"variable name", "var 5 = x;", parser.ErrUnexpectedToken, lexer.INT},
		{"missing expression", "x = ;", parser.ErrInvalidExpression, lexer.SEMICOLON},
		{"stray closing brace", "}", parser.ErrInvalidExpression, lexer.RBRACE},
		{"missing semicolon in block", "class A { var x = 1 }", parser.ErrUnexpectedToken, lexer.RBRACE},
		{"parameter without type", "function f(a) { }", parser.ErrUnexpectedToken, lexer.RPAREN},
		{"unclosed argument list", "f(a, b;", parser.ErrUnexpectedToken, lexer.SEMICOLON},
		{"empty generic list", "var x: List[] ;", parser.ErrUnexpectedToken, lexer.RBRACKET},
		{"else without block", "if a { } else x;", parser.ErrUnexpectedToken, lexer.IDENT},
		{"foreach without in", "foreach (a b) { }", parser.ErrUnexpectedToken, lexer.IDENT},
		{"lambda without arrow", "var f = (a: Int) a;", parser.ErrUnexpectedToken, lexer.IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseFailure(t, tt.src)

			if err.Kind != tt.kind {
				t.Errorf("expected %s, got %s (%s)", tt.kind, err.Kind, err)
			}
			if err.Token.Kind != tt.token {
				t.Errorf("expected error at %s, got %s (%s)", tt.token, err.Token.Kind, err)
			}
		})
	}
}

func TestParseErrorRendering(t *testing.T) {
	_, err := parser.ParseString("var x y;", parser.WithFileName("main.soda"))
	if err == nil {
		t.Fatal("expected an error")
	}

	var parseErr *parser.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *parser.ParseError, got %T", err)
	}

	if parseErr.Next == nil || parseErr.Next.Kind != lexer.SEMICOLON {
		t.Errorf("expected next token ';', got %v", parseErr.Next)
	}
	if parseErr.GetFileName() != "main.soda" {
		t.Errorf("unexpected file name %q", parseErr.GetFileName())
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, "main.soda:1:7: expected ';' after variable declaration") {
		t.Errorf("unexpected error text %q", msg)
	}
	if !strings.Contains(msg, "'y' IDENT") {
		t.Errorf("expected offending token in %q", msg)
	}
}

func TestParseIsRepeatable(t *testing.T) {
	src := `package demo {
	import_me.Thing;
	class Node[T] extends Base {
		var next: Node[T];
		constructor(v: T) { this.value = v; }
	}
	function main() => Void {
		var n = new Node[Int](1);
		var f = (x: Int): Int => x * 2 + 1;
		for (var i = 0; i < 3; i = i + 1) { Sys.print(f(i)); }
	}
}`

	tokens := lexer.Tokenize(src)
	original := append([]lexer.Token(nil), tokens...)

	first, err := parser.ParseTokens(tokens)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	second, err := parser.ParseTokens(tokens)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same tokens twice produced different trees")
	}
	if !reflect.DeepEqual(tokens, original) {
		t.Error("parser modified the token sequence")
	}
	if first == second {
		t.Error("expected distinct trees")
	}
}

func TestParseDumpShowsDistinctBodies(t *testing.T) {
	unit := parseSource(t, "if a { } else { }")
	out := ast.Dump(unit)

	if strings.Contains(out, "p0") {
		t.Errorf("dump should not contain pointer references:\n%s", out)
	}
	for _, want := range []string{"Then: []Stmt{}", "Else: []Stmt{}"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in dump:\n%s", want, out)
		}
	}
}

func TestParseNodesAreNotShared(t *testing.T) {
	unit := parseSource(t, "function f(a: Int, b: Int) => Int { return a + b * a; }")

	seen := make(map[ast.AstNode]bool)
	ast.Walk(unit, func(n ast.AstNode) bool {
		if seen[n] {
			t.Errorf("node %s reached twice", n.Kind())
		}
		seen[n] = true
		return true
	})

	tokens := make(map[*lexer.Token]bool)
	for n := range seen {
		tok := n.FirstToken()
		if tok == nil {
			t.Errorf("node %s has no first token", n.Kind())
			continue
		}
		if tokens[tok] {
			t.Errorf("token %v shared between nodes", tok)
		}
		tokens[tok] = true
	}
}

func TestParseWithLogger(t *testing.T) {
	var out strings.Builder
	logger := newTestLogger(&out)

	if _, err := parser.ParseString("package demo; var x = 1;", parser.WithLogger(logger)); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	logs := out.String()
	for _, want := range []string{"component=parser", "component=lexer", "parse completed"} {
		if !strings.Contains(logs, want) {
			t.Errorf("expected %q in log output:\n%s", want, logs)
		}
	}
}

func newTestLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
