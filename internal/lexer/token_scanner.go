package lexer

// TokenScanner is a read-only, random-access view over a finished token
// sequence. Reads past the end yield the trailing EOF token.
type TokenScanner interface {
	Read() Token
	Peek() Token
	PeekAt(offset int) Token
	At(index int) Token
	Pos() int
	Len() int
	HasTokens() bool
}

type SimpleTokenScanner struct {
	tokens []Token

	pos int
}

// NewTokenScanner wraps tokens. A missing trailing EOF token is appended to a
// private copy so the caller's slice is never touched.
func NewTokenScanner(tokens []Token) TokenScanner {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		owned := make([]Token, len(tokens), len(tokens)+1)
		copy(owned, tokens)

		eof := Token{Kind: EOF, Line: 1, Column: 1}
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			eof.Line = last.Line
			eof.Column = last.Column + len(last.Value)
		}
		tokens = append(owned, eof)
	}

	return &SimpleTokenScanner{
		tokens: tokens,
	}
}

func (s *SimpleTokenScanner) Read() Token {
	token := s.At(s.pos)
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}

	return token
}

func (s *SimpleTokenScanner) Peek() Token {
	return s.At(s.pos)
}

func (s *SimpleTokenScanner) PeekAt(offset int) Token {
	return s.At(s.pos + offset)
}

func (s *SimpleTokenScanner) At(index int) Token {
	if index < 0 {
		index = 0
	}
	if index >= len(s.tokens) {
		index = len(s.tokens) - 1
	}

	return s.tokens[index]
}

func (s *SimpleTokenScanner) Pos() int { return s.pos }
func (s *SimpleTokenScanner) Len() int { return len(s.tokens) }

// HasTokens reports whether anything but the trailing EOF is left.
func (s *SimpleTokenScanner) HasTokens() bool {
	return s.tokens[s.pos].Kind != EOF
}
