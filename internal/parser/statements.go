package parser

import (
	"github.com/murust-lang/murust/internal/ast"
	"github.com/murust-lang/murust/internal/lexer"
	"github.com/murust-lang/murust/internal/position"
)

// parseBlock parses `{ statements tail? }`.
//
// An expression without a trailing `;` directly before `}` becomes the
// block's tail expression. A block-like expression (block, if, loop, while,
// unsafe) may stand as a statement without `;`. Any other expression missing
// its `;` is recorded as a MissingTokenError and kept as a statement.
func (p *Parser) parseBlock() (*ast.Block, error) {
	lbrace, err := p.expect(lexer.TokenLBrace, "'{'")
	if err != nil {
		return nil, err
	}

	block := &ast.Block{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case lexer.TokenRBrace:
			rbrace, _ := p.consume()
			block.Span = spanFrom(lbrace.Span.Start, rbrace.Span)
			return block, nil

		case lexer.TokenSemicolon:
			p.consume()

		case lexer.TokenLet:
			stmt, err := p.parseLet()
			if err != nil {
				return nil, err
			}
			block.Stmts = append(block.Stmts, stmt)

		default:
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			stmt, isTail, err := p.finishExprStmt(expr)
			if err != nil {
				return nil, err
			}
			if isTail {
				block.Tail = p.value(expr, "block tail expression")
				continue
			}
			block.Stmts = append(block.Stmts, stmt)
		}
	}
}

// finishExprStmt decides, from one token of lookahead, whether expr is a
// statement or the tail expression of the enclosing block.
func (p *Parser) finishExprStmt(expr ast.Expr) (*ast.ExprStmt, bool, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, false, err
	}

	span := expr.GetSpan()
	switch {
	case tok.Type == lexer.TokenSemicolon:
		p.consume()
		span = spanFrom(span.Start, tok.Span)
	case tok.Type == lexer.TokenRBrace:
		return nil, true, nil
	case ast.IsBlockLike(expr):
	default:
		p.addError(&MissingTokenError{Expected: lexer.TokenSemicolon, Pos: span.End})
	}

	return &ast.ExprStmt{Expr: expr, Span: span}, false, nil
}

// parseLet parses `let mut? pattern : type (= expr)? ;`.
func (p *Parser) parseLet() (*ast.Let, error) {
	kw, err := p.expect(lexer.TokenLet, "'let'")
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

	let := &ast.Let{
		Mutable: mutable,
		Pattern: p.assignee(pattern, "let pattern"),
		Type:    ty,
	}
	end := ty.Span.End

	if _, ok, err := p.accept(lexer.TokenAssign); err != nil {
		return nil, err
	} else if ok {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		let.Init = p.value(expr, "let initializer")
		end = expr.GetSpan().End
	}

	semi, ok, err := p.accept(lexer.TokenSemicolon)
	if err != nil {
		return nil, err
	}
	if ok {
		end = semi.Span.End
	} else {
		p.addError(&MissingTokenError{Expected: lexer.TokenSemicolon, Pos: end})
	}

	let.Span = position.NewSpan(kw.Span.Start, end)
	return let, nil
}
