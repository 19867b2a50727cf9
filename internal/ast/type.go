package ast

import (
	"strings"

	"github.com/kievzenit/soda/internal/lexer"
)

// TypeReference names a type, optionally applied to generic arguments.
// The same node shape is used for generic type parameters of declarations.
type TypeReference struct {
	StartToken *lexer.Token

	Name        string
	GenericArgs []*TypeReference
}

func (*TypeReference) AstNode()                   {}
func (*TypeReference) Kind() NodeKind             { return TypeReferenceKind }
func (t *TypeReference) FirstToken() *lexer.Token { return t.StartToken }

// TypeName renders the reference in source form, e.g. Map[String, List[Int]].
func (t *TypeReference) TypeName() string {
	if len(t.GenericArgs) == 0 {
		return t.Name
	}

	args := make([]string, len(t.GenericArgs))
	for i, arg := range t.GenericArgs {
		args[i] = arg.TypeName()
	}

	return t.Name + "[" + strings.Join(args, ", ") + "]"
}

func (t *TypeReference) String() string {
	return t.TypeName()
}
