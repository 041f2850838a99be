package parser

import (
	"github.com/murust-lang/murust/internal/ast"
	"github.com/murust-lang/murust/internal/lexer"
	"github.com/murust-lang/murust/internal/position"
)

// supportedABI is the only ABI accepted on extern blocks.
const supportedABI = "C"

// parseItems parses top-level items until EOF.
func (p *Parser) parseItems() ([]ast.Item, error) {
	var items []ast.Item
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		var item ast.Item
		switch tok.Type {
		case lexer.TokenFn:
			item, err = p.parseFunction()
		case lexer.TokenStatic:
			item, err = p.parseStatic(false)
		case lexer.TokenExtern:
			item, err = p.parseExtern()
		case lexer.TokenEOF:
			return items, nil
		default:
			return nil, p.unexpectedNext("<item>")
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (p *Parser) parseFunction() (*ast.Function, error) {
	proto, err := p.parseFuncProto()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Function{
		Proto: proto,
		Body:  body,
		Span:  spanFrom(proto.Span.Start, body.Span),
	}, nil
}

// parseFuncProto parses `fn name(params) (-> type)?`.
func (p *Parser) parseFuncProto() (*ast.FuncProto, error) {
	fn, err := p.expect(lexer.TokenFn, "'fn'")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.TokenIdentifier, "<ident>")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLParen, "'('"); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	rparen, err := p.expect(lexer.TokenRParen, "')'")
	if err != nil {
		return nil, err
	}

	// Without a return type the prototype ends at the closing parenthesis.
	end := rparen.Span.End
	ret := ast.Type{Kind: ast.TypeUnit, Span: position.NewSpan(end, end)}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case lexer.TokenArrow:
		p.consume()
		if ret, err = p.parseType(); err != nil {
			return nil, err
		}
		end = ret.Span.End
	case lexer.TokenSemicolon, lexer.TokenLBrace:
	default:
		return nil, p.unexpectedNext("'->', ';', '{'")
	}

	return &ast.FuncProto{
		Name:       name.Literal,
		Params:     params,
		ReturnType: ret,
		Span:       position.NewSpan(fn.Span.Start, end),
	}, nil
}

// parseParams parses a comma separated parameter list up to, not including,
// the closing parenthesis. A trailing comma is allowed.
func (p *Parser) parseParams() ([]*ast.Param, error) {
	var params []*ast.Param
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case lexer.TokenMut, lexer.TokenUnderscore, lexer.TokenIdentifier:
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		case lexer.TokenRParen:
			return params, nil
		default:
			return nil, p.unexpectedNext("<fn parameter>")
		}

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case lexer.TokenComma:
			p.consume()
		case lexer.TokenRParen:
			return params, nil
		default:
			return nil, p.unexpectedNext("',', ')'")
		}
	}
}

// parseParam parses `mut? (ident | _) : type`.
func (p *Parser) parseParam() (*ast.Param, error) {
	start, err := p.peek()
	if err != nil {
		return nil, err
	}
	mutable, err := p.parseMut()
	if err != nil {
		return nil, err
	}
	pattern, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon, "':'"); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.Param{
		Mutable: mutable,
		Pattern: p.assignee(pattern, "parameter pattern"),
		Type:    ty,
		Span:    spanFrom(start.Span.Start, ty.Span),
	}, nil
}

// parsePattern parses a binding pattern: an identifier or `_`.
func (p *Parser) parsePattern() (ast.Expr, error) {
	tok, err := p.consume()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case lexer.TokenIdentifier:
		return &ast.Path{Name: tok.Literal, Span: tok.Span}, nil
	case lexer.TokenUnderscore:
		return &ast.Underscore{Span: tok.Span}, nil
	default:
		return nil, unexpected(tok, "<pattern>")
	}
}

func (p *Parser) parseMut() (bool, error) {
	_, ok, err := p.accept(lexer.TokenMut)
	return ok, err
}

// parseType parses one of `i32`, `f64`, `bool` or `()`.
func (p *Parser) parseType() (ast.Type, error) {
	tok, err := p.consume()
	if err != nil {
		return ast.Type{}, err
	}
	switch tok.Type {
	case lexer.TokenIdentifier:
		kind, ok := ast.LookupType(tok.Literal)
		if !ok || kind == ast.TypeUnit {
			return ast.Type{}, unexpected(tok, "<type>")
		}
		return ast.Type{Kind: kind, Span: tok.Span}, nil
	case lexer.TokenLParen:
		rparen, err := p.expect(lexer.TokenRParen, "')'")
		if err != nil {
			return ast.Type{}, err
		}
		return ast.Type{Kind: ast.TypeUnit, Span: spanFrom(tok.Span.Start, rparen.Span)}, nil
	default:
		return ast.Type{}, unexpected(tok, "<type>")
	}
}

// parseStatic parses a static item. Inside an extern block a static must
// not have an initializer; elsewhere it must have one.
func (p *Parser) parseStatic(inExtern bool) (*ast.Static, error) {
	kw, err := p.expect(lexer.TokenStatic, "'static'")
	if err != nil {
		return nil, err
	}
	mutable, err := p.parseMut()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.TokenIdentifier, "<ident>")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon, "':'"); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}

	var init ast.ValueExpr
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case lexer.TokenAssign:
		p.consume()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		init = p.value(expr, "static initializer")
	case lexer.TokenSemicolon:
	default:
		return nil, p.unexpectedNext("'=', ';'")
	}

	semi, err := p.expect(lexer.TokenSemicolon, "';'")
	if err != nil {
		return nil, err
	}

	static := &ast.Static{
		Name:    name.Literal,
		Mutable: mutable,
		Type:    ty,
		Init:    init,
		Span:    spanFrom(kw.Span.Start, semi.Span),
	}

	switch {
	case inExtern && static.HasInit():
		p.addError(&SemanticError{Kind: ExternStaticWithInitializer, Span: init.Expr().GetSpan()})
	case !inExtern && !static.HasInit():
		p.addError(&SemanticError{Kind: StaticWithoutInitializer, Span: static.Span})
	}

	return static, nil
}

// parseExtern parses `extern "ABI" { items }`.
func (p *Parser) parseExtern() (*ast.Extern, error) {
	kw, err := p.expect(lexer.TokenExtern, "'extern'")
	if err != nil {
		return nil, err
	}
	abi, err := p.expect(lexer.TokenABI, "<ABI>")
	if err != nil {
		return nil, err
	}
	if abi.Literal != supportedABI {
		p.addError(&UnsupportedABIError{ABI: abi.Literal, Span: abi.Span})
	}

	if _, err := p.expect(lexer.TokenLBrace, "'{'"); err != nil {
		return nil, err
	}

	var items []ast.ExternItem
	for done := false; !done; {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		var item ast.ExternItem
		switch tok.Type {
		case lexer.TokenFn:
			item, err = p.parseExternFunc()
		case lexer.TokenStatic:
			item, err = p.parseStatic(true)
		case lexer.TokenRBrace:
			done = true
			continue
		default:
			return nil, p.unexpectedNext("<extern item>")
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	rbrace, err := p.expect(lexer.TokenRBrace, "'}'")
	if err != nil {
		return nil, err
	}

	return &ast.Extern{
		ABI:   abi.Literal,
		Items: items,
		Span:  spanFrom(kw.Span.Start, rbrace.Span),
	}, nil
}

// parseExternFunc parses a function declaration inside an extern block. A
// body is parsed and discarded so that parsing can continue.
func (p *Parser) parseExternFunc() (*ast.FuncProto, error) {
	proto, err := p.parseFuncProto()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case lexer.TokenSemicolon:
		p.consume()
	case lexer.TokenLBrace:
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		p.addError(&SemanticError{Kind: ExternFunctionWithBody, Span: body.Span})
	default:
		return nil, p.unexpectedNext("';', '{'")
	}

	return proto, nil
}
