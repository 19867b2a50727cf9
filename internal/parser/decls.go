package parser

import (
	"log/slog"

	"github.com/kievzenit/soda/internal/ast"
	"github.com/kievzenit/soda/internal/lexer"
)

type modifiers struct {
	start    *lexer.Token
	access   ast.AccessModifier
	isStatic bool
}

func (m modifiers) startOr(t lexer.Token) *lexer.Token {
	if m.start != nil {
		return m.start
	}

	return tokenRef(t)
}

// parseDeclaration parses one member or body element. A lone ';' yields a
// nil statement.
func (p *Parser) parseDeclaration() (ast.Stmt, error) {
	p.trace("parsing declaration")

	switch p.curr.Kind {
	case lexer.PUBLIC, lexer.PRIVATE, lexer.STATIC:
		return p.parseModifiedDeclaration()
	case lexer.CLASS:
		return p.parseClass(modifiers{})
	case lexer.FUNCTION:
		if p.scanner.PeekAt(1).Kind == lexer.IDENT {
			return p.parseFunction(modifiers{})
		}
	case lexer.CONSTRUCTOR:
		return p.parseConstructor(modifiers{})
	case lexer.VAR:
		return p.parseVariable(modifiers{})
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IF:
		return p.parseIf()
	case lexer.FOR:
		return p.parseFor()
	case lexer.FOREACH:
		return p.parseForeach()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.BREAK:
		start := p.read()
		if err := p.consumeSemicolon(); err != nil {
			return nil, err
		}
		return &ast.BreakStatement{StartToken: tokenRef(start)}, nil
	case lexer.CONTINUE:
		start := p.read()
		if err := p.consumeSemicolon(); err != nil {
			return nil, err
		}
		return &ast.ContinueStatement{StartToken: tokenRef(start)}, nil
	case lexer.SEMICOLON:
		p.read()
		return nil, nil
	case lexer.EOF:
		return nil, p.unexpected("unexpected end of input")
	}

	return p.parseExpressionStatement()
}

func (p *Parser) parseModifiers() (modifiers, error) {
	var mods modifiers

	for {
		switch p.curr.Kind {
		case lexer.PUBLIC, lexer.PRIVATE:
			if mods.access != ast.AccessDefault {
				return mods, p.unexpected("duplicate access modifier")
			}
			mods.access = ast.AccessPublic
			if p.curr.Kind == lexer.PRIVATE {
				mods.access = ast.AccessPrivate
			}
		case lexer.STATIC:
			if mods.isStatic {
				return mods, p.unexpected("duplicate 'static' modifier")
			}
			mods.isStatic = true
		default:
			return mods, nil
		}

		if mods.start == nil {
			mods.start = tokenRef(p.curr)
		}
		p.read()
	}
}

func (p *Parser) parseModifiedDeclaration() (ast.Stmt, error) {
	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}

	switch p.curr.Kind {
	case lexer.CLASS:
		return p.parseClass(mods)
	case lexer.FUNCTION:
		return p.parseFunction(mods)
	case lexer.CONSTRUCTOR:
		return p.parseConstructor(mods)
	case lexer.VAR:
		return p.parseVariable(mods)
	}

	return nil, p.unexpectedExpectedMany(lexer.CLASS, lexer.FUNCTION, lexer.CONSTRUCTOR, lexer.VAR)
}

func (p *Parser) parseClass(mods modifiers) (*ast.ClassDeclaration, error) {
	p.trace("parsing class declaration")
	start := mods.startOr(p.read())

	name, err := p.consume(lexer.IDENT, "expected class name after 'class'")
	if err != nil {
		return nil, err
	}

	generics := make([]*ast.TypeReference, 0)
	if p.curr.Kind == lexer.LBRACKET {
		generics, err = p.parseTypeList()
		if err != nil {
			return nil, err
		}
	}

	var base *ast.TypeReference
	if p.curr.Kind == lexer.EXTENDS {
		p.read()
		base, err = p.parseTypeReference()
		if err != nil {
			return nil, err
		}
	}

	members, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	p.logger.Debug("parsed class", slog.String("name", name.Value), slog.Int("members", len(members)))

	return &ast.ClassDeclaration{
		StartToken: start,

		Name:         name.Value,
		IsStatic:     mods.isStatic,
		Access:       mods.access,
		BaseClass:    base,
		GenericTypes: generics,
		Members:      members,
	}, nil
}

func (p *Parser) parseFunction(mods modifiers) (*ast.FunctionDeclaration, error) {
	p.trace("parsing function declaration")
	start := mods.startOr(p.read())

	name, err := p.consume(lexer.IDENT, "expected function name after 'function'")
	if err != nil {
		return nil, err
	}

	generics := make([]*ast.TypeReference, 0)
	if p.curr.Kind == lexer.LBRACKET {
		generics, err = p.parseTypeList()
		if err != nil {
			return nil, err
		}
	}

	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}

	returnType, err := p.parseOptionalReturnType(lexer.ARROW)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	p.logger.Debug("parsed function", slog.String("name", name.Value), slog.Int("params", len(params)))

	return &ast.FunctionDeclaration{
		StartToken: start,

		Name:         name.Value,
		IsStatic:     mods.isStatic,
		Access:       mods.access,
		Parameters:   params,
		ReturnType:   returnType,
		Body:         body,
		GenericTypes: generics,
	}, nil
}

func (p *Parser) parseConstructor(mods modifiers) (*ast.FunctionDeclaration, error) {
	p.trace("parsing constructor")
	keyword := p.read()
	start := mods.startOr(keyword)

	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDeclaration{
		StartToken: start,

		Name:          keyword.Value,
		IsStatic:      mods.isStatic,
		IsConstructor: true,
		Access:        mods.access,
		Parameters:    params,
		Body:          body,
		GenericTypes:  make([]*ast.TypeReference, 0),
	}, nil
}

func (p *Parser) parseVariable(mods modifiers) (*ast.VariableDeclaration, error) {
	p.trace("parsing variable declaration")
	start := mods.startOr(p.read())

	name, err := p.consume(lexer.IDENT, "expected variable name after 'var'")
	if err != nil {
		return nil, err
	}

	var varType *ast.TypeReference
	if p.curr.Kind == lexer.COLON {
		p.read()
		varType, err = p.parseTypeReference()
		if err != nil {
			return nil, err
		}
	}

	var value ast.Expr
	if p.curr.Kind == lexer.ASSIGN {
		p.read()
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(lexer.SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}

	return &ast.VariableDeclaration{
		StartToken: start,

		Name:     name.Value,
		IsStatic: mods.isStatic,
		Access:   mods.access,
		Type:     varType,
		Value:    value,
	}, nil
}

func (p *Parser) parseReturn() (*ast.ReturnStatement, error) {
	start := p.read()

	var value ast.Expr
	if p.curr.Kind != lexer.SEMICOLON {
		var err error
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(lexer.SEMICOLON, "expected ';' after return statement"); err != nil {
		return nil, err
	}

	return &ast.ReturnStatement{
		StartToken: tokenRef(start),

		Value: value,
	}, nil
}

func (p *Parser) parseIf() (*ast.IfStatement, error) {
	p.trace("parsing if statement")
	start := p.read()

	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBody []ast.Stmt
	if p.curr.Kind == lexer.ELSE {
		p.read()

		switch p.curr.Kind {
		case lexer.IF:
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			elseBody = []ast.Stmt{nested}
		case lexer.LBRACE:
			elseBody, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		default:
			return nil, p.unexpectedExpectedMany(lexer.IF, lexer.LBRACE)
		}
	}

	return &ast.IfStatement{
		StartToken: tokenRef(start),

		Condition: condition,
		Then:      then,
		Else:      elseBody,
	}, nil
}

func (p *Parser) parseFor() (*ast.ForStatement, error) {
	p.trace("parsing for statement")
	start := p.read()

	if _, err := p.consume(lexer.LPAREN, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	switch p.curr.Kind {
	case lexer.VAR:
		decl, err := p.parseVariable(modifiers{})
		if err != nil {
			return nil, err
		}
		initializer = decl
	case lexer.SEMICOLON:
		p.read()
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.SEMICOLON, "expected ';' after for initializer"); err != nil {
			return nil, err
		}
		initializer = expr
	}

	var condition ast.Expr
	if p.curr.Kind != lexer.SEMICOLON {
		var err error
		condition, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.SEMICOLON, "expected ';' after for condition"); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if p.curr.Kind != lexer.RPAREN {
		var err error
		increment, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.RPAREN, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForStatement{
		StartToken: tokenRef(start),

		Initializer: initializer,
		Condition:   condition,
		Increment:   increment,
		Body:        body,
	}, nil
}

func (p *Parser) parseForeach() (*ast.ForeachStatement, error) {
	p.trace("parsing foreach statement")
	start := p.read()

	if _, err := p.consume(lexer.LPAREN, "expected '(' after 'foreach'"); err != nil {
		return nil, err
	}

	variable, err := p.consume(lexer.IDENT, "expected loop variable name")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.IN, "expected 'in' after loop variable"); err != nil {
		return nil, err
	}

	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.RPAREN, "expected ')' after foreach iterable"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForeachStatement{
		StartToken: tokenRef(start),

		Variable: variable.Value,
		Iterable: iterable,
		Body:     body,
	}, nil
}

func (p *Parser) parseWhile() (*ast.WhileStatement, error) {
	p.trace("parsing while statement")
	start := p.read()

	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStatement{
		StartToken: tokenRef(start),

		Condition: condition,
		Body:      body,
	}, nil
}

func (p *Parser) parseExpressionStatement() (ast.Expr, error) {
	p.trace("parsing expression statement")

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}

	return expr, nil
}
