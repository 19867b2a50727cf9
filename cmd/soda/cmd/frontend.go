package cmd

import (
	"errors"

	"github.com/kievzenit/soda/internal/ast"
	"github.com/kievzenit/soda/internal/compiler_errors"
	"github.com/kievzenit/soda/internal/lexer"
	"github.com/kievzenit/soda/internal/parser"
)

// frontend scans and parses one file, handing every diagnostic to eh. It
// returns nil when the file does not parse.
func frontend(path string, src []byte, eh compiler_errors.ErrorHandler) *ast.Unit {
	l := lexer.NewLexer(src, lexer.WithFileName(path), lexer.WithLogger(logger))
	tokens := l.Tokenize()
	for _, diag := range l.Diagnostics() {
		eh.AddError(diag)
	}

	unit, err := parser.ParseTokens(tokens, parser.WithFileName(path), parser.WithLogger(logger))
	if err != nil {
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			eh.AddError(parseErr)
		} else {
			eh.AddError(plainError{err})
		}
		return nil
	}

	return unit
}

type plainError struct {
	err error
}

func (e plainError) GetMessage() string { return e.err.Error() }
