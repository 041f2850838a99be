// Package parser implements the μRust recursive descent parser.
//
// The parser pulls tokens from a lexer through a one-token lookahead buffer
// and builds an *ast.Crate. Fatal errors abort the parse immediately.
// Recoverable errors are accumulated and reported together once the whole
// file has been parsed; a parse that recovered from any error never returns
// a crate.
package parser

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/murust-lang/murust/internal/ast"
	"github.com/murust-lang/murust/internal/lexer"
	"github.com/murust-lang/murust/internal/position"
)

// Parser represents the recursive descent parser
type Parser struct {
	lexer *lexer.Lexer

	// One-token lookahead buffer.
	next     lexer.Token
	hasNext  bool
	finished bool

	errors []RecoverableError
}

// Open creates a parser for the file at path.
func Open(path string) (*Parser, error) {
	l, err := lexer.Open(path)
	if err != nil {
		return nil, err
	}
	return New(l), nil
}

// New creates a parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{lexer: l}
}

// CrateName derives a crate name from a file name: the base name without
// its extension.
func CrateName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Parse parses the whole file. It returns either a crate or an error, never
// both. The parser must not be used again afterwards.
func (p *Parser) Parse() (*ast.Crate, error) {
	defer p.lexer.Close()

	items, err := p.parseItems()
	if err != nil {
		return nil, err
	}

	eof, err := p.consume()
	if err != nil {
		return nil, err
	}

	if len(p.errors) > 0 {
		return nil, &Error{Kind: ErrAggregated, Recovered: p.errors}
	}

	return &ast.Crate{
		Name:  CrateName(p.lexer.Name()),
		Items: items,
		Span:  position.NewSpan(position.New(), eof.Span.End),
	}, nil
}

// peek returns the next token without consuming it.
func (p *Parser) peek() (lexer.Token, error) {
	if p.hasNext {
		return p.next, nil
	}
	if p.finished {
		return lexer.Token{}, &Error{Kind: ErrUnexpectedEOF}
	}

	tok, err := p.lexer.Next()
	if err != nil {
		var lexErr *lexer.Error
		switch {
		case errors.Is(err, io.EOF):
			p.finished = true
			return lexer.Token{}, &Error{Kind: ErrUnexpectedEOF}
		case errors.As(err, &lexErr):
			return lexer.Token{}, &Error{Kind: ErrLexical, Lexical: lexErr}
		default:
			return lexer.Token{}, err
		}
	}

	p.next, p.hasNext = tok, true
	return tok, nil
}

// consume returns the next token and advances past it.
func (p *Parser) consume() (lexer.Token, error) {
	tok, err := p.peek()
	if err != nil {
		return lexer.Token{}, err
	}
	p.hasNext = false
	return tok, nil
}

// peekIs reports whether the next token has type tt.
func (p *Parser) peekIs(tt lexer.TokenType) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	return tok.Type == tt, nil
}

// expect consumes the next token and fails unless it has type tt.
func (p *Parser) expect(tt lexer.TokenType, expected string) (lexer.Token, error) {
	tok, err := p.consume()
	if err != nil {
		return lexer.Token{}, err
	}
	if tok.Type != tt {
		return lexer.Token{}, unexpected(tok, expected)
	}
	return tok, nil
}

// accept consumes the next token if it has type tt.
func (p *Parser) accept(tt lexer.TokenType) (lexer.Token, bool, error) {
	ok, err := p.peekIs(tt)
	if err != nil || !ok {
		return lexer.Token{}, false, err
	}
	tok, err := p.consume()
	return tok, err == nil, err
}

// unexpectedNext consumes the offending token and reports it.
func (p *Parser) unexpectedNext(expected string) error {
	tok, err := p.consume()
	if err != nil {
		return err
	}
	return unexpected(tok, expected)
}

func unexpected(tok lexer.Token, expected string) error {
	return &Error{Kind: ErrUnexpectedToken, Actual: tok, Expected: expected}
}

// addError records a recoverable error.
func (p *Parser) addError(err RecoverableError) {
	p.errors = append(p.errors, err)
}

// value narrows expr to a value expression, recording a
// WrongExpressionKind error when it is not one.
func (p *Parser) value(expr ast.Expr, context string) ast.ValueExpr {
	if v, ok := ast.TryAsValue(expr); ok {
		return v
	}
	p.addError(wrongKind(expr, ast.CapValue, context))
	return ast.AssumeValue(expr)
}

// assignee narrows expr to an assignee expression, recording a
// WrongExpressionKind error when it is not one.
func (p *Parser) assignee(expr ast.Expr, context string) ast.AssigneeExpr {
	if a, ok := ast.TryAsAssignee(expr); ok {
		return a
	}
	p.addError(wrongKind(expr, ast.CapAssignee, context))
	return ast.AssumeAssignee(expr)
}

func wrongKind(expr ast.Expr, expected ast.Capability, context string) *SemanticError {
	return &SemanticError{
		Kind:     WrongExpressionKind,
		Expected: expected,
		Actual:   expr.Capabilities(),
		Context:  context,
		Span:     expr.GetSpan(),
	}
}

func spanFrom(start position.Position, end position.Span) position.Span {
	return position.NewSpan(start, end.End)
}
