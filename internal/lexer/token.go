package lexer

import (
	"fmt"
)

type TokenKind int

const (
	EOF TokenKind = iota

	INT
	FLOAT
	LONG
	DOUBLE
	BOOL
	STRING

	IDENT

	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	PERCENT  // %

	ASSIGN     // =
	ASSIGN_REF // :=

	EQ  // ==
	NEQ // !=
	LT  // <
	LEQ // <=
	GT  // >
	GEQ // >=

	ARROW // =>

	LPAREN   // (
	LBRACKET // [
	LBRACE   // {

	RPAREN   // )
	RBRACKET // ]
	RBRACE   // }

	COLON     // :
	SEMICOLON // ;
	DOT       // .
	COMMA     // ,
	TILDE     // ~
	XMARK     // !
	QMARK     // ?
	DOLLAR    // $

	PACKAGE
	IMPORT
	PUBLIC
	PRIVATE
	VAR
	FUNCTION
	RETURN
	IF
	ELSE
	FOR
	FOREACH
	WHILE
	IN
	CONTINUE
	BREAK
	IS
	CLASS
	EXTENDS
	CONSTRUCTOR
	STATIC
	NEW

	STRING_TYPE
	INT_TYPE
	FLOAT_TYPE
	LONG_TYPE
	DOUBLE_TYPE
	NUMBER_TYPE
	ANY_TYPE
	ARRAY_TYPE
	DICTIONARY_TYPE
	BOOL_TYPE
	VOID_TYPE
)

func (tk TokenKind) String() string {
	switch tk {
	case EOF:
		return "EOF"
	case INT:
		return "INT"
	case FLOAT:
		return "FLOAT"
	case LONG:
		return "LONG"
	case DOUBLE:
		return "DOUBLE"
	case BOOL:
		return "BOOL"
	case STRING:
		return "STRING"
	case IDENT:
		return "IDENT"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case ASTERISK:
		return "ASTERISK"
	case SLASH:
		return "SLASH"
	case PERCENT:
		return "PERCENT"
	case ASSIGN:
		return "ASSIGN"
	case ASSIGN_REF:
		return "ASSIGN_REF"
	case EQ:
		return "EQ"
	case NEQ:
		return "NEQ"
	case LT:
		return "LT"
	case LEQ:
		return "LEQ"
	case GT:
		return "GT"
	case GEQ:
		return "GEQ"
	case ARROW:
		return "ARROW"
	case LPAREN:
		return "LPAREN"
	case LBRACKET:
		return "LBRACKET"
	case LBRACE:
		return "LBRACE"
	case RPAREN:
		return "RPAREN"
	case RBRACKET:
		return "RBRACKET"
	case RBRACE:
		return "RBRACE"
	case COLON:
		return "COLON"
	case SEMICOLON:
		return "SEMICOLON"
	case DOT:
		return "DOT"
	case COMMA:
		return "COMMA"
	case TILDE:
		return "TILDE"
	case XMARK:
		return "XMARK"
	case QMARK:
		return "QMARK"
	case DOLLAR:
		return "DOLLAR"
	case PACKAGE:
		return "PACKAGE"
	case IMPORT:
		return "IMPORT"
	case PUBLIC:
		return "PUBLIC"
	case PRIVATE:
		return "PRIVATE"
	case VAR:
		return "VAR"
	case FUNCTION:
		return "FUNCTION"
	case RETURN:
		return "RETURN"
	case IF:
		return "IF"
	case ELSE:
		return "ELSE"
	case FOR:
		return "FOR"
	case FOREACH:
		return "FOREACH"
	case WHILE:
		return "WHILE"
	case IN:
		return "IN"
	case CONTINUE:
		return "CONTINUE"
	case BREAK:
		return "BREAK"
	case IS:
		return "IS"
	case CLASS:
		return "CLASS"
	case EXTENDS:
		return "EXTENDS"
	case CONSTRUCTOR:
		return "CONSTRUCTOR"
	case STATIC:
		return "STATIC"
	case NEW:
		return "NEW"
	case STRING_TYPE:
		return "STRING_TYPE"
	case INT_TYPE:
		return "INT_TYPE"
	case FLOAT_TYPE:
		return "FLOAT_TYPE"
	case LONG_TYPE:
		return "LONG_TYPE"
	case DOUBLE_TYPE:
		return "DOUBLE_TYPE"
	case NUMBER_TYPE:
		return "NUMBER_TYPE"
	case ANY_TYPE:
		return "ANY_TYPE"
	case ARRAY_TYPE:
		return "ARRAY_TYPE"
	case DICTIONARY_TYPE:
		return "DICTIONARY_TYPE"
	case BOOL_TYPE:
		return "BOOL_TYPE"
	case VOID_TYPE:
		return "VOID_TYPE"
	default:
		panic(fmt.Sprintf("TokenKind.String(): received illegal token kind: %d", tk))
	}
}

// IsLiteral reports whether tokens of this kind carry a literal value.
func (tk TokenKind) IsLiteral() bool {
	switch tk {
	case INT, FLOAT, LONG, DOUBLE, BOOL, STRING:
		return true
	}

	return false
}

// IsPrimitiveType reports whether the kind is one of the built-in type names.
func (tk TokenKind) IsPrimitiveType() bool {
	return tk >= STRING_TYPE && tk <= VOID_TYPE
}

var keywords = map[string]TokenKind{
	"package":     PACKAGE,
	"import":      IMPORT,
	"public":      PUBLIC,
	"private":     PRIVATE,
	"var":         VAR,
	"function":    FUNCTION,
	"return":      RETURN,
	"if":          IF,
	"else":        ELSE,
	"for":         FOR,
	"foreach":     FOREACH,
	"while":       WHILE,
	"in":          IN,
	"continue":    CONTINUE,
	"break":       BREAK,
	"is":          IS,
	"class":       CLASS,
	"extends":     EXTENDS,
	"constructor": CONSTRUCTOR,
	"static":      STATIC,
	"new":         NEW,

	"String":     STRING_TYPE,
	"Int":        INT_TYPE,
	"Float":      FLOAT_TYPE,
	"Long":       LONG_TYPE,
	"Double":     DOUBLE_TYPE,
	"Number":     NUMBER_TYPE,
	"Any":        ANY_TYPE,
	"Array":      ARRAY_TYPE,
	"Dictionary": DICTIONARY_TYPE,
	"Bool":       BOOL_TYPE,
	"Void":       VOID_TYPE,

	"true":  BOOL,
	"false": BOOL,
}

// LookupKeyword classifies a word against the keyword table. Words that are not
// keywords, type names or boolean literals are identifiers.
func LookupKeyword(word string) TokenKind {
	if kind, ok := keywords[word]; ok {
		return kind
	}

	return IDENT
}

type Token struct {
	Kind  TokenKind
	Value string

	Line   int
	Column int
}

func (t *Token) hasActualValue() bool {
	return t.Kind.IsLiteral() || t.Kind == IDENT
}

func (t *Token) String() string {
	if !t.hasActualValue() {
		return fmt.Sprintf("%s()", t.Kind)
	}

	return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
}

// Position renders the token location as line:column.
func (t *Token) Position() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}
