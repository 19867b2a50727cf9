package parser

import (
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/kievzenit/soda/internal/ast"
	"github.com/kievzenit/soda/internal/lexer"
)

type Option func(*Parser)

// WithFileName attributes every ParseError to the given file.
func WithFileName(name string) Option {
	return func(p *Parser) {
		p.fileName = name
	}
}

// WithLogger enables debug tracing of the parse. Parsers log nothing by default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Parser is a recursive-descent parser over a finished token sequence. It
// keeps a single forward cursor (owned by the scanner) and only looks ahead
// through PeekAt; tokens are never modified.
type Parser struct {
	fileName string

	scanner lexer.TokenScanner
	logger  *slog.Logger

	curr lexer.Token
}

func NewParser(scanner lexer.TokenScanner, opts ...Option) *Parser {
	p := &Parser{
		scanner: scanner,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(slog.String("component", "parser"))
	p.curr = scanner.Peek()

	return p
}

// ParseTokens parses an already tokenized program.
func ParseTokens(tokens []lexer.Token, opts ...Option) (*ast.Unit, error) {
	return NewParser(lexer.NewTokenScanner(tokens), opts...).Parse()
}

// ParseString tokenizes src and parses it. The lexer shares the parser's
// file name and logger.
func ParseString(src string, opts ...Option) (*ast.Unit, error) {
	settings := &Parser{}
	for _, opt := range opts {
		opt(settings)
	}

	lexerOpts := []lexer.Option{lexer.WithFileName(settings.fileName)}
	if settings.logger != nil {
		lexerOpts = append(lexerOpts, lexer.WithLogger(settings.logger))
	}

	tokens := lexer.NewLexer([]byte(src), lexerOpts...).Tokenize()

	return ParseTokens(tokens, opts...)
}

// Parse builds the whole unit. The first syntax error aborts the parse and
// no partial tree is returned.
func (p *Parser) Parse() (*ast.Unit, error) {
	p.logger.Debug("starting parse", slog.String("file", p.fileName), slog.Int("tokens", p.scanner.Len()))

	unit := &ast.Unit{
		StartToken: tokenRef(p.curr),

		PackageImports: make([]*ast.PackageImportStatement, 0),
		MemberImports:  make([]*ast.MemberImportStatement, 0),
		Members:        make([]ast.Stmt, 0),
	}

	seenPackage := false
	for p.scanner.HasTokens() {
		switch {
		case p.curr.Kind == lexer.IMPORT:
			imp, err := p.parseImport()
			if err != nil {
				return nil, p.fail(err)
			}
			unit.PackageImports = append(unit.PackageImports, imp)

		case p.isMemberImport():
			imp, err := p.parseMemberImport()
			if err != nil {
				return nil, p.fail(err)
			}
			unit.MemberImports = append(unit.MemberImports, imp)

		case p.curr.Kind == lexer.PACKAGE:
			if seenPackage {
				return nil, p.fail(p.unexpected("duplicate package declaration"))
			}
			seenPackage = true

			if err := p.parsePackage(unit); err != nil {
				return nil, p.fail(err)
			}

		default:
			member, err := p.parseDeclaration()
			if err != nil {
				return nil, p.fail(err)
			}
			if member != nil {
				unit.Members = append(unit.Members, member)
			}
		}
	}

	p.logger.Debug("parse completed",
		slog.String("file", p.fileName),
		slog.String("package", unit.Name),
		slog.Int("members", len(unit.Members)))

	return unit, nil
}

func (p *Parser) fail(err error) error {
	p.logger.Debug("parse failed", slog.String("file", p.fileName), slog.String("error", err.Error()))
	return err
}

func (p *Parser) parsePackage(unit *ast.Unit) error {
	p.trace("parsing package declaration")
	p.read()

	name, err := p.parseQualifiedName("expected package name after 'package'")
	if err != nil {
		return err
	}
	unit.Name = name

	switch p.curr.Kind {
	case lexer.SEMICOLON:
		p.read()
		return nil
	case lexer.LBRACE:
		members, err := p.parseBlock()
		if err != nil {
			return err
		}
		unit.Members = append(unit.Members, members...)
		return nil
	}

	return p.newError(ErrUnexpectedToken, "expected block or ';' after package declaration")
}

func (p *Parser) parseImport() (*ast.PackageImportStatement, error) {
	p.trace("parsing import statement")
	startToken := p.read()

	if p.curr.Kind != lexer.IDENT {
		return nil, p.newError(ErrInvalidImport, "expected identifier after 'import'")
	}

	path, err := p.parseQualifiedName("expected identifier after '.' in import path")
	if err != nil {
		return nil, err
	}

	if p.curr.Kind != lexer.SEMICOLON {
		return nil, p.newError(ErrInvalidImport, "expected ';' after import path")
	}
	p.read()

	return &ast.PackageImportStatement{
		StartToken: tokenRef(startToken),

		Path: path,
	}, nil
}

// isMemberImport matches exactly IDENT '.' IDENT ';'. Anything longer that
// starts with an identifier is an expression statement.
func (p *Parser) isMemberImport() bool {
	return p.curr.Kind == lexer.IDENT &&
		p.scanner.PeekAt(1).Kind == lexer.DOT &&
		p.scanner.PeekAt(2).Kind == lexer.IDENT &&
		p.scanner.PeekAt(3).Kind == lexer.SEMICOLON
}

func (p *Parser) parseMemberImport() (*ast.MemberImportStatement, error) {
	p.trace("parsing member import statement")
	startToken := p.read()

	if p.curr.Kind != lexer.DOT {
		return nil, p.newError(ErrInvalidImport, "expected '.' after package name")
	}
	p.read()

	if p.curr.Kind != lexer.IDENT {
		return nil, p.newError(ErrInvalidImport, "expected member name after '.'")
	}
	member := p.read()

	if p.curr.Kind != lexer.SEMICOLON {
		return nil, p.newError(ErrInvalidImport, "expected ';' after member import")
	}
	p.read()

	return &ast.MemberImportStatement{
		StartToken: tokenRef(startToken),

		PackageName: startToken.Value,
		MemberName:  member.Value,
	}, nil
}

func (p *Parser) parseQualifiedName(message string) (string, error) {
	first, err := p.consume(lexer.IDENT, message)
	if err != nil {
		return "", err
	}

	parts := []string{first.Value}
	for p.curr.Kind == lexer.DOT {
		p.read()

		part, err := p.consume(lexer.IDENT, message)
		if err != nil {
			return "", err
		}
		parts = append(parts, part.Value)
	}

	return strings.Join(parts, "."), nil
}

// matchingBrace returns the index of the '}' closing the '{' at open.
func (p *Parser) matchingBrace(open int) (int, error) {
	depth := 0
	for i := open; i < p.scanner.Len(); i++ {
		switch p.scanner.At(i).Kind {
		case lexer.LBRACE:
			depth++
		case lexer.RBRACE:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}

	return -1, p.newErrorAt(ErrUnmatchedBrace, open, "unmatched opening brace")
}

// parseBlock locates the closing brace of the block at the cursor before
// descending, then parses declarations up to it.
func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if p.curr.Kind != lexer.LBRACE {
		return nil, p.unexpectedExpected(lexer.LBRACE, "expected '{'")
	}

	end, err := p.matchingBrace(p.scanner.Pos())
	if err != nil {
		return nil, err
	}
	p.read()

	return p.parseDeclarationsUntil(end)
}

func (p *Parser) parseDeclarationsUntil(end int) ([]ast.Stmt, error) {
	p.logger.Debug("parsing declarations until",
		slog.Int("line", p.scanner.At(end).Line),
		slog.Int("column", p.scanner.At(end).Column))

	stmts := make([]ast.Stmt, 0)
	for p.scanner.Pos() < end {
		stmt, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}

		if p.scanner.Pos() > end {
			return nil, p.newErrorAt(ErrUnexpectedToken, end, "declaration runs past the end of its block")
		}

		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	p.read()

	return stmts, nil
}

// read consumes the current token and returns it.
func (p *Parser) read() lexer.Token {
	token := p.scanner.Read()
	p.curr = p.scanner.Peek()

	return token
}

func (p *Parser) consume(kind lexer.TokenKind, message string) (lexer.Token, error) {
	if p.curr.Kind != kind {
		return lexer.Token{}, p.unexpectedExpected(kind, message)
	}

	return p.read(), nil
}

func (p *Parser) consumeSemicolon() error {
	_, err := p.consume(lexer.SEMICOLON, "expected ';'")
	return err
}

func (p *Parser) isCurrAny(kinds ...lexer.TokenKind) bool {
	return slices.Contains(kinds, p.curr.Kind)
}

func (p *Parser) trace(msg string) {
	p.logger.Debug(msg,
		slog.String("token", p.curr.String()),
		slog.Int("line", p.curr.Line),
		slog.Int("column", p.curr.Column))
}

func tokenRef(t lexer.Token) *lexer.Token {
	return &t
}

func isName(kind lexer.TokenKind) bool {
	return kind == lexer.IDENT || kind.IsPrimitiveType()
}
