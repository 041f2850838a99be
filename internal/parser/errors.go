package parser

import (
	"fmt"
	"strings"

	"github.com/murust-lang/murust/internal/ast"
	"github.com/murust-lang/murust/internal/lexer"
	"github.com/murust-lang/murust/internal/position"
)

// ErrorKind classifies a fatal parse error.
type ErrorKind int

const (
	// ErrUnexpectedEOF means the token stream ended without an EOF token.
	ErrUnexpectedEOF ErrorKind = iota
	// ErrUnexpectedToken means a token did not fit the grammar.
	ErrUnexpectedToken
	// ErrLexical wraps a *lexer.Error.
	ErrLexical
	// ErrAggregated reports the recoverable errors of a parse that
	// otherwise completed.
	ErrAggregated
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedEOF:
		return "unexpected end of file"
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrLexical:
		return "lexical error"
	case ErrAggregated:
		return "aggregated errors"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a fatal parse error. No AST is produced alongside it.
type Error struct {
	Kind ErrorKind

	// Actual and Expected describe an ErrUnexpectedToken.
	Actual   lexer.Token
	Expected string

	// Lexical is set for ErrLexical.
	Lexical *lexer.Error

	// Recovered holds the errors of an ErrAggregated, in the order they
	// were found.
	Recovered []RecoverableError
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnexpectedToken:
		return fmt.Sprintf("unexpected token %s, expected %s", e.Actual, e.Expected)
	case ErrLexical:
		return e.Lexical.Error()
	case ErrAggregated:
		msgs := make([]string, 0, len(e.Recovered))
		for _, r := range e.Recovered {
			msgs = append(msgs, r.Error())
		}
		return fmt.Sprintf("%d error(s): %s", len(e.Recovered), strings.Join(msgs, "; "))
	default:
		return e.Kind.String()
	}
}

// Unwrap exposes the lexical error or the recovered errors to errors.As.
func (e *Error) Unwrap() []error {
	switch e.Kind {
	case ErrLexical:
		return []error{e.Lexical}
	case ErrAggregated:
		errs := make([]error, 0, len(e.Recovered))
		for _, r := range e.Recovered {
			errs = append(errs, r)
		}
		return errs
	}
	return nil
}

// RecoverableError is an error the parser logs and continues past.
type RecoverableError interface {
	error
	// GetSpan returns the source location the error points at.
	GetSpan() position.Span
	recoverable()
}

// SemanticKind classifies a SemanticError.
type SemanticKind int

const (
	WrongExpressionKind SemanticKind = iota
	StaticWithoutInitializer
	ExternStaticWithInitializer
	ExternFunctionWithBody
)

func (k SemanticKind) String() string {
	switch k {
	case WrongExpressionKind:
		return "wrong expression kind"
	case StaticWithoutInitializer:
		return "static item without initializer"
	case ExternStaticWithInitializer:
		return "extern static with initializer"
	case ExternFunctionWithBody:
		return "extern function with body"
	default:
		return fmt.Sprintf("SemanticKind(%d)", int(k))
	}
}

// SemanticError is a syntactically valid construct used where it is not
// allowed.
type SemanticError struct {
	Kind SemanticKind

	// Expected and Actual are set for WrongExpressionKind. Context names
	// the slot the expression was used in.
	Expected ast.Capability
	Actual   ast.Capability
	Context  string

	Span position.Span
}

func (e *SemanticError) recoverable()           {}
func (e *SemanticError) GetSpan() position.Span { return e.Span }

func (e *SemanticError) Error() string {
	if e.Kind == WrongExpressionKind {
		return fmt.Sprintf("%s at %s: %s must be %s expression, found %s",
			e.Kind, e.Span, e.Context, e.Expected.WithArticle(), e.Actual)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Span)
}

// MissingTokenError reports a terminating token that was absent. Parsing
// continued as if it had been present at Pos.
type MissingTokenError struct {
	Expected lexer.TokenType
	Pos      position.Position
}

func (e *MissingTokenError) recoverable() {}

func (e *MissingTokenError) GetSpan() position.Span {
	return position.NewSpan(e.Pos, e.Pos)
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("missing '%s' at %s", e.Expected, e.Pos)
}

// UnsupportedABIError reports an extern block ABI other than "C".
type UnsupportedABIError struct {
	ABI  string
	Span position.Span
}

func (e *UnsupportedABIError) recoverable()           {}
func (e *UnsupportedABIError) GetSpan() position.Span { return e.Span }

func (e *UnsupportedABIError) Error() string {
	return fmt.Sprintf("unsupported ABI %q at %s", e.ABI, e.Span)
}
