package parser

import (
	"github.com/murust-lang/murust/internal/ast"
	"github.com/murust-lang/murust/internal/lexer"
	"github.com/murust-lang/murust/internal/position"
)

// Operator precedence, lowest first:
//
//	=            assignment
//	||           lazy or
//	&&           lazy and
//	== != < > <= >=   comparison, non-chaining
//	|            bitwise or
//	^            bitwise xor
//	&            bitwise and
//	+ -          additive
//	* / %        multiplicative
//	as           type cast
//	- !          unary
//
// Every binary level parses one operand at the next level and then loops
// over operators of its own level, so chains are left-associative and long
// chains do not grow the call stack.

// binaryBuilder constructs the node for one binary operator.
type binaryBuilder func(lhs, rhs ast.ValueExpr, span position.Span) ast.Expr

func arith(op ast.ArithOp) binaryBuilder {
	return func(lhs, rhs ast.ValueExpr, span position.Span) ast.Expr {
		return &ast.ArithOrLogic{Op: op, LHS: lhs, RHS: rhs, Span: span}
	}
}

func comparison(op ast.CompOp) binaryBuilder {
	return func(lhs, rhs ast.ValueExpr, span position.Span) ast.Expr {
		return &ast.Comparison{Op: op, LHS: lhs, RHS: rhs, Span: span}
	}
}

func lazyBool(op ast.LazyBoolOp) binaryBuilder {
	return func(lhs, rhs ast.ValueExpr, span position.Span) ast.Expr {
		return &ast.LazyBool{Op: op, LHS: lhs, RHS: rhs, Span: span}
	}
}

var (
	lazyOrOps  = map[lexer.TokenType]binaryBuilder{lexer.TokenOr: lazyBool(ast.LazyOr)}
	lazyAndOps = map[lexer.TokenType]binaryBuilder{lexer.TokenAnd: lazyBool(ast.LazyAnd)}
	compOps    = map[lexer.TokenType]binaryBuilder{
		lexer.TokenEq: comparison(ast.CompEq),
		lexer.TokenNe: comparison(ast.CompNe),
		lexer.TokenGt: comparison(ast.CompGt),
		lexer.TokenLt: comparison(ast.CompLt),
		lexer.TokenGe: comparison(ast.CompGe),
		lexer.TokenLe: comparison(ast.CompLe),
	}
	bitOrOps  = map[lexer.TokenType]binaryBuilder{lexer.TokenBitOr: arith(ast.OpBitOr)}
	bitXorOps = map[lexer.TokenType]binaryBuilder{lexer.TokenBitXor: arith(ast.OpBitXor)}
	bitAndOps = map[lexer.TokenType]binaryBuilder{lexer.TokenBitAnd: arith(ast.OpBitAnd)}
	addOps    = map[lexer.TokenType]binaryBuilder{
		lexer.TokenPlus:  arith(ast.OpAdd),
		lexer.TokenMinus: arith(ast.OpSub),
	}
	mulOps = map[lexer.TokenType]binaryBuilder{
		lexer.TokenStar:    arith(ast.OpMul),
		lexer.TokenSlash:   arith(ast.OpDiv),
		lexer.TokenPercent: arith(ast.OpRem),
	}
)

// parseExpr parses a full expression.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignment()
}

// parseBinaryLevel parses `operand (op operand)*` for the operators in ops.
func (p *Parser) parseBinaryLevel(operand func() (ast.Expr, error), ops map[lexer.TokenType]binaryBuilder) (ast.Expr, error) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		build, ok := ops[tok.Type]
		if !ok {
			return lhs, nil
		}
		p.consume()

		rhs, err := operand()
		if err != nil {
			return nil, err
		}
		span := spanFrom(lhs.GetSpan().Start, rhs.GetSpan())
		lhs = build(p.value(lhs, "operand"), p.value(rhs, "operand"), span)
	}
}

func (p *Parser) parseAssignment() (ast.Expr, error) {
	lhs, err := p.parseLazyOr()
	if err != nil {
		return nil, err
	}
	for {
		_, ok, err := p.accept(lexer.TokenAssign)
		if err != nil {
			return nil, err
		}
		if !ok {
			return lhs, nil
		}

		rhs, err := p.parseLazyOr()
		if err != nil {
			return nil, err
		}
		lhs = &ast.Assign{
			Target: p.assignee(lhs, "assignment target"),
			Value:  p.value(rhs, "assigned value"),
			Span:   spanFrom(lhs.GetSpan().Start, rhs.GetSpan()),
		}
	}
}

func (p *Parser) parseLazyOr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseLazyAnd, lazyOrOps)
}

func (p *Parser) parseLazyAnd() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseComparison, lazyAndOps)
}

// parseComparison parses at most one comparison; `a < b < c` is rejected.
func (p *Parser) parseComparison() (ast.Expr, error) {
	lhs, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	build, ok := compOps[tok.Type]
	if !ok {
		return lhs, nil
	}
	p.consume()

	rhs, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	expr := build(p.value(lhs, "operand"), p.value(rhs, "operand"), spanFrom(lhs.GetSpan().Start, rhs.GetSpan()))

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if _, chained := compOps[tok.Type]; chained {
		return nil, p.unexpectedNext("comparison operators cannot be chained")
	}
	return expr, nil
}

func (p *Parser) parseBitOr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseBitXor, bitOrOps)
}

func (p *Parser) parseBitXor() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseBitAnd, bitXorOps)
}

func (p *Parser) parseBitAnd() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseAdditive, bitAndOps)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, addOps)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseCast, mulOps)
}

// parseCast parses `unary (as type)*`.
func (p *Parser) parseCast() (ast.Expr, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		_, ok, err := p.accept(lexer.TokenAs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return expr, nil
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		expr = &ast.Cast{
			Value: p.value(expr, "cast operand"),
			Type:  ty,
			Span:  spanFrom(expr.GetSpan().Start, ty.Span),
		}
	}
}

// parseUnary parses prefix `-` and `!`. The operand is itself a unary
// expression.
func (p *Parser) parseUnary() (ast.Expr, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	var op ast.NegOp
	switch tok.Type {
	case lexer.TokenMinus:
		op = ast.NegMinus
	case lexer.TokenNot:
		op = ast.NegNot
	default:
		return p.parsePrimary()
	}
	p.consume()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Negation{
		Op:      op,
		Operand: p.value(operand, "operand"),
		Span:    spanFrom(tok.Span.Start, operand.GetSpan()),
	}, nil
}

// canStartExpr reports whether a token of type tt can begin an expression.
func canStartExpr(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenInteger, lexer.TokenFloat, lexer.TokenBool,
		lexer.TokenIdentifier, lexer.TokenUnderscore, lexer.TokenLParen,
		lexer.TokenLBrace, lexer.TokenIf, lexer.TokenLoop, lexer.TokenWhile,
		lexer.TokenUnsafe, lexer.TokenReturn, lexer.TokenMinus, lexer.TokenNot:
		return true
	}
	return false
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case lexer.TokenInteger:
		p.consume()
		return &ast.Literal{Kind: ast.LitInt, Int: tok.Int, Span: tok.Span}, nil
	case lexer.TokenFloat:
		p.consume()
		return &ast.Literal{Kind: ast.LitFloat, Float: tok.Float, Span: tok.Span}, nil
	case lexer.TokenBool:
		p.consume()
		return &ast.Literal{Kind: ast.LitBool, Bool: tok.Bool, Span: tok.Span}, nil
	case lexer.TokenUnderscore:
		p.consume()
		return &ast.Underscore{Span: tok.Span}, nil
	case lexer.TokenIdentifier:
		return p.parsePathOrCall()
	case lexer.TokenLParen:
		return p.parseGroupedOrUnit()
	case lexer.TokenLBrace:
		return p.parseBlock()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenLoop:
		return p.parseLoop()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenUnsafe:
		return p.parseUnsafe()
	case lexer.TokenReturn:
		return p.parseReturn()
	default:
		return nil, p.unexpectedNext("<expr>")
	}
}

func (p *Parser) parsePathOrCall() (ast.Expr, error) {
	tok, err := p.expect(lexer.TokenIdentifier, "<path>")
	if err != nil {
		return nil, err
	}
	path := &ast.Path{Name: tok.Literal, Span: tok.Span}

	if _, ok, err := p.accept(lexer.TokenLParen); err != nil || !ok {
		return path, err
	}

	var args []ast.ValueExpr
	for {
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		if next.Type == lexer.TokenRParen {
			break
		}
		if !canStartExpr(next.Type) {
			return nil, p.unexpectedNext("<expr>")
		}

		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, p.value(arg, "function argument"))

		next, err = p.peek()
		if err != nil {
			return nil, err
		}
		if next.Type == lexer.TokenComma {
			p.consume()
			continue
		}
		if next.Type != lexer.TokenRParen {
			return nil, p.unexpectedNext("',', ')'")
		}
	}

	rparen, err := p.expect(lexer.TokenRParen, "')'")
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: path, Args: args, Span: spanFrom(path.Span.Start, rparen.Span)}, nil
}

// parseGroupedOrUnit parses `( expr )` or the unit literal `()`.
func (p *Parser) parseGroupedOrUnit() (ast.Expr, error) {
	lparen, err := p.expect(lexer.TokenLParen, "'('")
	if err != nil {
		return nil, err
	}

	if rparen, ok, err := p.accept(lexer.TokenRParen); err != nil {
		return nil, err
	} else if ok {
		return &ast.Literal{Kind: ast.LitUnit, Span: spanFrom(lparen.Span.Start, rparen.Span)}, nil
	}

	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	rparen, err := p.expect(lexer.TokenRParen, "')'")
	if err != nil {
		return nil, err
	}
	return &ast.Grouped{
		Inner: p.value(inner, "grouped expression"),
		Span:  spanFrom(lparen.Span.Start, rparen.Span),
	}, nil
}

func (p *Parser) parseIf() (*ast.If, error) {
	kw, err := p.expect(lexer.TokenIf, "'if'")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	node := &ast.If{
		Cond: p.value(cond, "if condition"),
		Then: then,
		Span: spanFrom(kw.Span.Start, then.Span),
	}

	if _, ok, err := p.accept(lexer.TokenElse); err != nil || !ok {
		return node, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case lexer.TokenIf:
		elseIf, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		node.Else = elseIf
	case lexer.TokenLBrace:
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Else = elseBlock
	default:
		return nil, p.unexpectedNext("'if', '{'")
	}

	node.Span = spanFrom(kw.Span.Start, node.Else.GetSpan())
	return node, nil
}

func (p *Parser) parseLoop() (*ast.Loop, error) {
	kw, err := p.expect(lexer.TokenLoop, "'loop'")
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Loop{Body: body, Span: spanFrom(kw.Span.Start, body.Span)}, nil
}

func (p *Parser) parseWhile() (*ast.While, error) {
	kw, err := p.expect(lexer.TokenWhile, "'while'")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{
		Cond: p.value(cond, "while condition"),
		Body: body,
		Span: spanFrom(kw.Span.Start, body.Span),
	}, nil
}

func (p *Parser) parseUnsafe() (*ast.Unsafe, error) {
	kw, err := p.expect(lexer.TokenUnsafe, "'unsafe'")
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Unsafe{Body: body, Span: spanFrom(kw.Span.Start, body.Span)}, nil
}

// parseReturn parses `return expr?`.
func (p *Parser) parseReturn() (*ast.Return, error) {
	kw, err := p.expect(lexer.TokenReturn, "'return'")
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !canStartExpr(tok.Type) {
		return &ast.Return{Span: kw.Span}, nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Return{
		Value: p.value(expr, "return value"),
		Span:  spanFrom(kw.Span.Start, expr.GetSpan()),
	}, nil
}
