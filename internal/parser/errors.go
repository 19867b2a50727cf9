package parser

import (
	"fmt"
	"strings"

	"github.com/kievzenit/soda/internal/lexer"
)

type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrUnmatchedBrace
	ErrInvalidImport
	ErrInvalidExpression
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrUnmatchedBrace:
		return "unmatched brace"
	case ErrInvalidImport:
		return "invalid import"
	case ErrInvalidExpression:
		return "invalid expression"
	default:
		return "unknown"
	}
}

// ParseError is the single failure a parse can produce. Token is the token
// the parser stopped at and Next the one after it, when there is one.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Expected []lexer.TokenKind

	Token lexer.Token
	Next  *lexer.Token

	FileName string
}

func (e *ParseError) Error() string {
	var b strings.Builder

	if e.FileName != "" {
		fmt.Fprintf(&b, "%s:", e.FileName)
	}
	fmt.Fprintf(&b, "%d:%d: %s (near %s)", e.Token.Line, e.Token.Column, e.Message, describe(e.Token))
	if e.Next != nil {
		fmt.Fprintf(&b, ", next %s at %d:%d", describe(*e.Next), e.Next.Line, e.Next.Column)
	}

	return b.String()
}

func (e *ParseError) GetMessage() string {
	if e.Next == nil {
		return fmt.Sprintf("%s (near %s)", e.Message, describe(e.Token))
	}

	return fmt.Sprintf("%s (near %s, next %s)", e.Message, describe(e.Token), describe(*e.Next))
}

func (e *ParseError) GetFileName() string { return e.FileName }
func (e *ParseError) GetLine() int        { return e.Token.Line }
func (e *ParseError) GetColumn() int      { return e.Token.Column }

func describe(t lexer.Token) string {
	if t.Kind == lexer.EOF {
		return "end of input"
	}

	return fmt.Sprintf("'%s' %s", t.Value, t.Kind)
}

func (p *Parser) newErrorAt(kind ErrorKind, index int, message string) *ParseError {
	at := p.scanner.At(index)
	err := &ParseError{
		Kind:     kind,
		Message:  message,
		Token:    at,
		FileName: p.fileName,
	}

	if at.Kind != lexer.EOF && index+1 < p.scanner.Len() {
		next := p.scanner.At(index + 1)
		err.Next = &next
	}

	return err
}

func (p *Parser) newError(kind ErrorKind, message string) *ParseError {
	return p.newErrorAt(kind, p.scanner.Pos(), message)
}

func (p *Parser) unexpectedExpected(expected lexer.TokenKind, message string) *ParseError {
	err := p.newError(ErrUnexpectedToken, message)
	err.Expected = []lexer.TokenKind{expected}

	return err
}

func (p *Parser) unexpectedExpectedMany(expected ...lexer.TokenKind) *ParseError {
	names := make([]string, len(expected))
	for i, kind := range expected {
		names[i] = kind.String()
	}

	err := p.newError(
		ErrUnexpectedToken,
		fmt.Sprintf("unexpected token %s, expected one of: %s", p.curr.Kind, strings.Join(names, ", ")))
	err.Expected = expected

	return err
}

func (p *Parser) unexpected(message string) *ParseError {
	return p.newError(ErrUnexpectedToken, message)
}
