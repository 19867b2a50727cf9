package parser

import (
	"github.com/kievzenit/soda/internal/ast"
	"github.com/kievzenit/soda/internal/lexer"
)

const (
	assignmentBindingPower = 10
	prefixBindingPower     = 60
)

var bindingPowerLookup = map[lexer.TokenKind]int{
	lexer.ASSIGN:     assignmentBindingPower,
	lexer.ASSIGN_REF: assignmentBindingPower,

	lexer.EQ:  20,
	lexer.NEQ: 20,

	lexer.LT:  30,
	lexer.GT:  30,
	lexer.LEQ: 30,
	lexer.GEQ: 30,
	lexer.IS:  30,

	lexer.PLUS:  40,
	lexer.MINUS: 40,

	lexer.ASTERISK: 50,
	lexer.SLASH:    50,
	lexer.PERCENT:  50,
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr folds every infix operator binding tighter than minBP.
// Assignment recurses one step lower so it associates to the right.
func (p *Parser) parseBinaryExpr(minBP int) (ast.Expr, error) {
	start := p.curr

	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		bp, ok := bindingPowerLookup[p.curr.Kind]
		if !ok || bp <= minBP {
			return left, nil
		}

		opIndex := p.scanner.Pos()
		op := p.read()

		nextMinBP := bp
		if bp == assignmentBindingPower {
			if !isAssignable(left) {
				return nil, p.newErrorAt(ErrInvalidExpression, opIndex, "invalid assignment target")
			}
			nextMinBP = bp - 1
		}

		right, err := p.parseBinaryExpr(nextMinBP)
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpression{
			StartToken: tokenRef(start),

			Operator: op.Value,
			Left:     left,
			Right:    right,
		}
	}
}

func isAssignable(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.VariableExpression, *ast.DotAccessExpression:
		return true
	}

	return false
}

func (p *Parser) parseUnaryExpr() (ast.Expr, error) {
	if !p.isCurrAny(lexer.XMARK, lexer.MINUS, lexer.TILDE) {
		return p.parsePostfixExpr()
	}

	op := p.read()
	operand, err := p.parseBinaryExpr(prefixBindingPower)
	if err != nil {
		return nil, err
	}

	return &ast.UnaryExpression{
		StartToken: tokenRef(op),

		Operator: op.Value,
		Operand:  operand,
	}, nil
}

func (p *Parser) parsePostfixExpr() (ast.Expr, error) {
	start := p.curr

	left, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}

	for p.curr.Kind == lexer.DOT {
		p.read()

		if p.curr.Kind != lexer.IDENT {
			return nil, p.unexpectedExpected(lexer.IDENT, "expected member name after '.'")
		}

		var right ast.Expr
		if p.isCallAhead() {
			right, err = p.parseCall()
			if err != nil {
				return nil, err
			}
		} else {
			name := p.read()
			right = &ast.VariableExpression{StartToken: tokenRef(name), Name: name.Value}
		}

		left = &ast.DotAccessExpression{
			StartToken: tokenRef(start),

			Left:  left,
			Right: right,
		}
	}

	return left, nil
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	if literalKind, ok := ast.LiteralKindOf(p.curr.Kind); ok {
		literal := p.read()
		return &ast.LiteralExpression{
			StartToken: tokenRef(literal),

			Value:       literal.Value,
			LiteralKind: literalKind,
		}, nil
	}

	switch {
	case p.curr.Kind == lexer.IDENT:
		if p.isCallAhead() {
			return p.parseCall()
		}
		name := p.read()
		return &ast.VariableExpression{StartToken: tokenRef(name), Name: name.Value}, nil

	case p.curr.Kind.IsPrimitiveType():
		name := p.read()
		return &ast.VariableExpression{StartToken: tokenRef(name), Name: name.Value}, nil

	case p.curr.Kind == lexer.NEW:
		return p.parseConstructorCall()

	case p.curr.Kind == lexer.FUNCTION:
		return p.parseClosure()

	case p.curr.Kind == lexer.LBRACKET:
		return p.parseLambda()

	case p.curr.Kind == lexer.LPAREN:
		if p.isLambdaAhead() {
			return p.parseLambda()
		}
		return p.parseGrouping()
	}

	return nil, p.newError(ErrInvalidExpression, "expected expression")
}

// isCallAhead reports whether the identifier at the cursor starts a call,
// looking past an optional generic argument list for '('.
func (p *Parser) isCallAhead() bool {
	switch p.scanner.PeekAt(1).Kind {
	case lexer.LPAREN:
		return true
	case lexer.LBRACKET:
		end, ok := p.closingBracketAhead(1)
		return ok && p.scanner.PeekAt(end+1).Kind == lexer.LPAREN
	}

	return false
}

// closingBracketAhead returns the offset of the ']' closing the '[' at
// offset, giving up on any token that cannot appear in a type list.
func (p *Parser) closingBracketAhead(offset int) (int, bool) {
	depth := 0
	for i := offset; ; i++ {
		kind := p.scanner.PeekAt(i).Kind
		switch {
		case kind == lexer.LBRACKET:
			depth++
		case kind == lexer.RBRACKET:
			depth--
			if depth == 0 {
				return i, true
			}
		case kind == lexer.COMMA || isName(kind):
		default:
			return 0, false
		}
	}
}

// isLambdaAhead distinguishes a lambda parameter list from a parenthesised
// expression: "()" or "(name:" open a lambda.
func (p *Parser) isLambdaAhead() bool {
	next := p.scanner.PeekAt(1).Kind
	if next == lexer.RPAREN {
		return true
	}

	return next == lexer.IDENT && p.scanner.PeekAt(2).Kind == lexer.COLON
}

func (p *Parser) parseCall() (*ast.CallExpression, error) {
	name := p.read()

	generics := make([]*ast.TypeReference, 0)
	if p.curr.Kind == lexer.LBRACKET {
		var err error
		generics, err = p.parseTypeList()
		if err != nil {
			return nil, err
		}
	}

	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}

	return &ast.CallExpression{
		StartToken: tokenRef(name),

		Callee:      name.Value,
		GenericArgs: generics,
		Arguments:   args,
	}, nil
}

func (p *Parser) parseArguments() ([]ast.Expr, error) {
	if _, err := p.consume(lexer.LPAREN, "expected '(' before arguments"); err != nil {
		return nil, err
	}

	args := make([]ast.Expr, 0)
	if p.curr.Kind == lexer.RPAREN {
		p.read()
		return args, nil
	}

	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.curr.Kind == lexer.COMMA {
			p.read()
			continue
		}

		if _, err := p.consume(lexer.RPAREN, "expected ',' or ')' in argument list"); err != nil {
			return nil, err
		}

		return args, nil
	}
}

func (p *Parser) parseConstructorCall() (*ast.ConstructorCallExpression, error) {
	start := p.read()

	classType, err := p.parseTypeReference()
	if err != nil {
		return nil, err
	}

	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}

	return &ast.ConstructorCallExpression{
		CallExpression: ast.CallExpression{
			StartToken: tokenRef(start),

			Callee:      classType.Name,
			GenericArgs: classType.GenericArgs,
			Arguments:   args,
		},
	}, nil
}

func (p *Parser) parseClosure() (*ast.ClosureExpression, error) {
	p.trace("parsing closure")
	start := p.read()

	generics := make([]*ast.TypeReference, 0)
	if p.curr.Kind == lexer.LBRACKET {
		var err error
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

	return &ast.ClosureExpression{
		StartToken: tokenRef(start),

		Parameters:   params,
		ReturnType:   returnType,
		Body:         body,
		GenericTypes: generics,
	}, nil
}

func (p *Parser) parseLambda() (*ast.LambdaExpression, error) {
	p.trace("parsing lambda")
	start := p.curr

	generics := make([]*ast.TypeReference, 0)
	if p.curr.Kind == lexer.LBRACKET {
		var err error
		generics, err = p.parseTypeList()
		if err != nil {
			return nil, err
		}
	}

	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}

	returnType, err := p.parseOptionalReturnType(lexer.COLON)
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.ARROW, "expected '=>' before lambda body"); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.LambdaExpression{
		StartToken: tokenRef(start),

		Parameters:   params,
		Body:         body,
		ReturnType:   returnType,
		GenericTypes: generics,
	}, nil
}

func (p *Parser) parseGrouping() (ast.Expr, error) {
	p.read()

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.RPAREN, "expected ')' after expression"); err != nil {
		return nil, err
	}

	return expr, nil
}
