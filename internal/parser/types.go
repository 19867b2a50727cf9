package parser

import (
	"github.com/kievzenit/soda/internal/ast"
	"github.com/kievzenit/soda/internal/lexer"
)

// parseTypeReference parses name ['[' type {',' type} ']'].
func (p *Parser) parseTypeReference() (*ast.TypeReference, error) {
	if !isName(p.curr.Kind) {
		return nil, p.unexpectedExpected(lexer.IDENT, "expected type name")
	}
	name := p.read()

	args := make([]*ast.TypeReference, 0)
	if p.curr.Kind == lexer.LBRACKET {
		var err error
		args, err = p.parseTypeList()
		if err != nil {
			return nil, err
		}
	}

	return &ast.TypeReference{
		StartToken: tokenRef(name),

		Name:        name.Value,
		GenericArgs: args,
	}, nil
}

// parseTypeList parses a bracketed, comma-separated, non-empty list of
// types. It serves both generic arguments and generic parameters.
func (p *Parser) parseTypeList() ([]*ast.TypeReference, error) {
	if _, err := p.consume(lexer.LBRACKET, "expected '['"); err != nil {
		return nil, err
	}

	types := make([]*ast.TypeReference, 0)
	for {
		t, err := p.parseTypeReference()
		if err != nil {
			return nil, err
		}
		types = append(types, t)

		if p.curr.Kind == lexer.COMMA {
			p.read()
			continue
		}

		if _, err := p.consume(lexer.RBRACKET, "expected ',' or ']' in generic list"); err != nil {
			return nil, err
		}

		return types, nil
	}
}

func (p *Parser) parseOptionalReturnType(introducer lexer.TokenKind) (*ast.TypeReference, error) {
	if p.curr.Kind != introducer {
		return nil, nil
	}
	p.read()

	return p.parseTypeReference()
}

func (p *Parser) parseParameters() ([]*ast.Parameter, error) {
	if _, err := p.consume(lexer.LPAREN, "expected '(' before parameter list"); err != nil {
		return nil, err
	}

	params := make([]*ast.Parameter, 0)
	if p.curr.Kind == lexer.RPAREN {
		p.read()
		return params, nil
	}

	for {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		if p.curr.Kind == lexer.COMMA {
			p.read()
			continue
		}

		if _, err := p.consume(lexer.RPAREN, "expected ',' or ')' in parameter list"); err != nil {
			return nil, err
		}

		return params, nil
	}
}

func (p *Parser) parseParameter() (*ast.Parameter, error) {
	name, err := p.consume(lexer.IDENT, "expected parameter name")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.COLON, "expected ':' after parameter name"); err != nil {
		return nil, err
	}

	paramType, err := p.parseTypeReference()
	if err != nil {
		return nil, err
	}

	return &ast.Parameter{
		StartToken: tokenRef(name),

		Name: name.Value,
		Type: paramType,
	}, nil
}
