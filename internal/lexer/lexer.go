package lexer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/kievzenit/soda/internal/compiler_errors"
)

// LexerError describes a lexical gap. Lexing never stops on one; the
// offending input is skipped and the error is kept for the caller.
type LexerError struct {
	Message string

	FileName string
	Line     int
	Column   int
}

func newUnexpectedError(unexpected rune, fileName string, line, col int) *LexerError {
	return &LexerError{
		Message:  fmt.Sprintf("unexpected character: %q", unexpected),
		FileName: fileName,
		Line:     line,
		Column:   col,
	}
}

func newUnterminatedError(what string, fileName string, line, col int) *LexerError {
	return &LexerError{
		Message:  fmt.Sprintf("unterminated %s", what),
		FileName: fileName,
		Line:     line,
		Column:   col,
	}
}

func (e *LexerError) GetMessage() string  { return e.Message }
func (e *LexerError) GetFileName() string { return e.FileName }
func (e *LexerError) GetLine() int        { return e.Line }
func (e *LexerError) GetColumn() int      { return e.Column }

func (e *LexerError) GetSeverity() compiler_errors.Severity {
	return compiler_errors.SeverityWarning
}

type Option func(*Lexer)

// WithLogger attaches a logger for debug output. Lexers log nothing by default.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lexer) {
		if logger != nil {
			l.logger = logger.With(slog.String("component", "lexer"))
		}
	}
}

// WithFileName attributes diagnostics to the given file.
func WithFileName(name string) Option {
	return func(l *Lexer) {
		l.fileName = name
	}
}

type Lexer struct {
	buf []byte
	pos int

	line, col int

	fileName    string
	diagnostics []*LexerError
	logger      *slog.Logger
}

func NewLexer(buf []byte, opts ...Option) *Lexer {
	l := &Lexer{
		buf: buf,
		pos: 0,

		line: 1,
		col:  1,

		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Tokenize scans the whole buffer and returns the token sequence, always
// terminated by a single EOF token.
func (l *Lexer) Tokenize() []Token {
	tokens := make([]Token, 0)

	for l.hasChars() {
		switch {
		case l.isCurrSkippable():
			l.advance()

		case l.isCurrComment():
			l.skipComment()

		case l.isCurrDigit():
			tokens = append(tokens, l.processNumber())

		case l.isCurrIdentifierStart():
			tokens = append(tokens, l.processIdentifier())

		case l.read() == '"':
			tokens = append(tokens, l.processStringLiteral())

		case l.isCurrPunctuation():
			tokens = append(tokens, l.processPunctuation())

		default:
			l.skipUnexpected()
		}
	}

	tokens = append(tokens, Token{
		Kind:   EOF,
		Line:   l.line,
		Column: l.col,
	})

	l.logger.Debug("tokenized input",
		slog.String("file", l.fileName),
		slog.Int("bytes", len(l.buf)),
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", len(l.diagnostics)))

	return tokens
}

// Diagnostics returns the lexical gaps found by the last Tokenize call.
func (l *Lexer) Diagnostics() []*LexerError {
	return l.diagnostics
}

// Tokenize is a shorthand for NewLexer(src).Tokenize().
func Tokenize(src string) []Token {
	return NewLexer([]byte(src)).Tokenize()
}

func (l *Lexer) isCurrIdentifierStart() bool {
	return (l.read() >= 'a' && l.read() <= 'z') || (l.read() >= 'A' && l.read() <= 'Z') || l.read() == '_'
}

func (l *Lexer) isCurrDigit() bool {
	return isDigit(l.read())
}

func (l *Lexer) isCurrPunctuation() bool {
	switch l.read() {
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '(', ')', '[', ']', '{', '}', ':', ';', '.', ',', '?', '$', '~':
		return true
	}
	return false
}

func (l *Lexer) isCurrSkippable() bool {
	switch l.read() {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}

func (l *Lexer) isCurrComment() bool {
	return l.read() == '/' && l.hasNext() && (l.next() == '/' || l.next() == '*')
}

func (l *Lexer) skipComment() {
	line, col := l.line, l.col
	l.advance()

	if l.read() == '/' {
		for l.hasChars() && l.read() != '\n' {
			l.advance()
		}
		return
	}

	l.advance()
	for l.hasChars() {
		if l.read() == '*' && l.hasNext() && l.next() == '/' {
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}

	l.diagnostics = append(l.diagnostics, newUnterminatedError("block comment", l.fileName, line, col))
}

func (l *Lexer) skipUnexpected() {
	line, col := l.line, l.col
	unexpected := rune(l.read())

	l.advance()
	if unexpected >= 0x80 {
		start := l.pos - 1
		for l.hasChars() && isContinuationByte(l.read()) {
			l.advance()
		}
		unexpected = []rune(string(l.buf[start:l.pos]))[0]
	}

	l.diagnostics = append(l.diagnostics, newUnexpectedError(unexpected, l.fileName, line, col))
}

func (l *Lexer) processIdentifier() Token {
	line, col := l.line, l.col
	start := l.pos

	for l.hasChars() && (l.isCurrIdentifierStart() || l.isCurrDigit()) {
		l.advance()
	}
	identifier := string(l.buf[start:l.pos])

	return Token{
		Kind:   LookupKeyword(identifier),
		Value:  identifier,
		Line:   line,
		Column: col,
	}
}

func (l *Lexer) processNumber() Token {
	line, col := l.line, l.col
	start := l.pos
	kind := INT

	for l.hasChars() && l.isCurrDigit() {
		l.advance()
	}

	if l.hasChars() && l.read() == '.' && l.hasNext() && isDigit(l.next()) {
		kind = FLOAT
		l.advance()
		for l.hasChars() && l.isCurrDigit() {
			l.advance()
		}
	}

	// A suffix letter followed by more word characters starts an identifier.
	if l.hasChars() && !(l.hasNext() && isWordByte(l.next())) {
		switch l.read() {
		case 'L', 'l':
			if kind == INT {
				kind = LONG
				l.advance()
			}
		case 'd', 'D':
			kind = DOUBLE
			l.advance()
		case 'f', 'F':
			kind = FLOAT
			l.advance()
		}
	}

	return Token{
		Kind:   kind,
		Value:  string(l.buf[start:l.pos]),
		Line:   line,
		Column: col,
	}
}

func (l *Lexer) processStringLiteral() Token {
	quoteLine, quoteCol := l.line, l.col
	l.advance()

	line, col := l.line, l.col
	stringBuf := make([]byte, 0)
	var foundClosingQuote bool
	for l.hasChars() {
		if l.read() == '\\' && l.hasNext() && l.next() == '"' {
			stringBuf = append(stringBuf, '"')
			l.advance()
			l.advance()
			continue
		}

		if l.read() == '"' {
			foundClosingQuote = true
			l.advance()
			break
		}

		stringBuf = append(stringBuf, l.read())
		l.advance()
	}

	if !foundClosingQuote {
		l.diagnostics = append(l.diagnostics, newUnterminatedError("string literal", l.fileName, quoteLine, quoteCol))
	}

	return Token{
		Kind:   STRING,
		Value:  string(stringBuf),
		Line:   line,
		Column: col,
	}
}

// processPair emits the two-character kind when the current character is
// followed by second, and the single-character kind otherwise.
func (l *Lexer) processPair(single TokenKind, second byte, double TokenKind) Token {
	line, col := l.line, l.col
	first := l.read()
	l.advance()

	if l.hasChars() && l.read() == second {
		l.advance()
		return Token{
			Kind:   double,
			Value:  string([]byte{first, second}),
			Line:   line,
			Column: col,
		}
	}

	return Token{
		Kind:   single,
		Value:  string(first),
		Line:   line,
		Column: col,
	}
}

func (l *Lexer) processEquals() Token {
	if l.hasNext() && l.next() == '>' {
		return l.processPair(ASSIGN, '>', ARROW)
	}

	return l.processPair(ASSIGN, '=', EQ)
}

func (l *Lexer) processSingle(kind TokenKind) Token {
	token := Token{
		Kind:   kind,
		Value:  string(l.read()),
		Line:   l.line,
		Column: l.col,
	}
	l.advance()

	return token
}

func (l *Lexer) processPunctuation() Token {
	switch l.read() {
	case '+':
		return l.processSingle(PLUS)
	case '-':
		return l.processSingle(MINUS)
	case '*':
		return l.processSingle(ASTERISK)
	case '/':
		return l.processSingle(SLASH)
	case '%':
		return l.processSingle(PERCENT)
	case '=':
		return l.processEquals()
	case '!':
		return l.processPair(XMARK, '=', NEQ)
	case '<':
		return l.processPair(LT, '=', LEQ)
	case '>':
		return l.processPair(GT, '=', GEQ)
	case ':':
		return l.processPair(COLON, '=', ASSIGN_REF)
	case '(':
		return l.processSingle(LPAREN)
	case '[':
		return l.processSingle(LBRACKET)
	case '{':
		return l.processSingle(LBRACE)
	case ')':
		return l.processSingle(RPAREN)
	case ']':
		return l.processSingle(RBRACKET)
	case '}':
		return l.processSingle(RBRACE)
	case ';':
		return l.processSingle(SEMICOLON)
	case '.':
		return l.processSingle(DOT)
	case ',':
		return l.processSingle(COMMA)
	case '?':
		return l.processSingle(QMARK)
	case '$':
		return l.processSingle(DOLLAR)
	case '~':
		return l.processSingle(TILDE)
	}

	panic("unreachable")
}

// advance moves past the current byte, keeping line and column in step.
// UTF-8 continuation bytes do not move the column.
func (l *Lexer) advance() {
	switch b := l.buf[l.pos]; {
	case b == '\n':
		l.line++
		l.col = 1
	case isContinuationByte(b):
	default:
		l.col++
	}
	l.pos++
}

func (l *Lexer) hasChars() bool { return l.pos < len(l.buf) }
func (l *Lexer) hasNext() bool  { return l.pos+1 < len(l.buf) }
func (l *Lexer) next() byte     { return l.buf[l.pos+1] }
func (l *Lexer) read() byte     { return l.buf[l.pos] }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || isDigit(b)
}

func isContinuationByte(b byte) bool { return b&0xC0 == 0x80 }
