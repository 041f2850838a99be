package diagnostic

import (
	"errors"
	"fmt"

	"github.com/murust-lang/murust/internal/lexer"
	"github.com/murust-lang/murust/internal/parser"
)

// Diagnostic codes. E0xxx are lexical or driver level, E1xxx syntax and
// E2xxx semantic.
const (
	CodeTooManyErrors = "E0001"
	CodeIO            = "E0002"

	CodeInvalidInt    = "E0101"
	CodeInvalidFloat  = "E0102"
	CodeUnterminated  = "E0103"
	CodeUnknownToken  = "E0104"
	CodeUnexpectedTok = "E1001"
	CodeUnexpectedEOF = "E1002"
	CodeMissingToken  = "E1003"

	CodeWrongKind          = "E2001"
	CodeStaticNoInit       = "E2002"
	CodeExternStaticInit   = "E2003"
	CodeExternFnWithBody   = "E2004"
	CodeUnsupportedABI     = "E2005"
	CodeDeclaration        = "E2101"
	CodeUnknownRecoverable = "E2999"
)

// FromError converts an error returned by the lexer or parser into
// diagnostics. An aggregated parse error yields one diagnostic per
// recovered error, in order.
func FromError(err error) []*Diagnostic {
	if err == nil {
		return nil
	}

	var perr *parser.Error
	if errors.As(err, &perr) {
		return fromParseError(perr)
	}

	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return []*Diagnostic{fromLexical(lexErr)}
	}

	return []*Diagnostic{
		NewDiagnostic().
			Error().
			IO().
			Code(CodeIO).
			Title("Cannot read source").
			Message(err.Error()).
			Build(),
	}
}

func fromParseError(err *parser.Error) []*Diagnostic {
	switch err.Kind {
	case parser.ErrAggregated:
		diags := make([]*Diagnostic, 0, len(err.Recovered))
		for _, r := range err.Recovered {
			diags = append(diags, fromRecoverable(r))
		}

		return diags

	case parser.ErrLexical:
		return []*Diagnostic{fromLexical(err.Lexical)}

	case parser.ErrUnexpectedToken:
		found := fmt.Sprintf("'%s'", err.Actual.Literal)
		if err.Actual.IsEOF() {
			found = "end of file"
		}

		return []*Diagnostic{
			NewDiagnostic().
				Error().
				Syntax().
				Code(CodeUnexpectedTok).
				Title("Unexpected token").
				Message(fmt.Sprintf("Expected %s, found %s", err.Expected, found)).
				Span(err.Actual.Span).
				Build(),
		}

	default:
		return []*Diagnostic{
			NewDiagnostic().
				Error().
				Syntax().
				Code(CodeUnexpectedEOF).
				Title("Unexpected end of file").
				Message("The token stream ended before parsing finished").
				Build(),
		}
	}
}

func fromLexical(err *lexer.Error) *Diagnostic {
	b := NewDiagnostic().Error().Lexical().Span(err.Span)

	switch err.Kind {
	case lexer.ErrInvalidIntLiteral:
		b.Code(CodeInvalidInt).
			Title("Invalid integer literal").
			Message(fmt.Sprintf("'%s' is not a valid i32", err.Text))
	case lexer.ErrInvalidFloatLiteral:
		b.Code(CodeInvalidFloat).
			Title("Invalid float literal").
			Message(fmt.Sprintf("'%s' is not a valid f64", err.Text))
	case lexer.ErrUnterminatedString:
		b.Code(CodeUnterminated).
			Title("Unterminated string").
			Message("Missing closing '\"'")
	default:
		b.Code(CodeUnknownToken).
			Title("Unknown token").
			Message(fmt.Sprintf("Unexpected character %q", err.Char))
	}

	return b.Build()
}

func fromRecoverable(err parser.RecoverableError) *Diagnostic {
	b := NewDiagnostic().Error().Span(err.GetSpan())

	switch e := err.(type) {
	case *parser.MissingTokenError:
		b.Syntax().
			Code(CodeMissingToken).
			Title("Missing token").
			Message(fmt.Sprintf("Expected '%s'", e.Expected))
	case *parser.UnsupportedABIError:
		b.Semantic().
			Code(CodeUnsupportedABI).
			Title("Unsupported ABI").
			Message(fmt.Sprintf("ABI %q is not supported", e.ABI)).
			Note(`only "C" is supported`)
	case *parser.SemanticError:
		b.Semantic()
		fromSemantic(b, e)
	default:
		b.Semantic().
			Code(CodeUnknownRecoverable).
			Title("Error").
			Message(err.Error())
	}

	return b.Build()
}

func fromSemantic(b *DiagnosticBuilder, err *parser.SemanticError) {
	switch err.Kind {
	case parser.WrongExpressionKind:
		b.Code(CodeWrongKind).
			Title("Wrong expression kind").
			Message(fmt.Sprintf("The %s must be %s expression, found %s expression",
				err.Context, err.Expected.WithArticle(), err.Actual))
	case parser.StaticWithoutInitializer:
		b.Code(CodeStaticNoInit).
			Title("Static without initializer").
			Message("Static items must be initialized").
			Note("add '= <expr>' before the ';'")
	case parser.ExternStaticWithInitializer:
		b.Code(CodeExternStaticInit).
			Title("Extern static with initializer").
			Message("Statics in extern blocks cannot be initialized")
	case parser.ExternFunctionWithBody:
		b.Code(CodeExternFnWithBody).
			Title("Extern function with body").
			Message("Functions in extern blocks cannot have a body")
	default:
		b.Code(CodeUnknownRecoverable).
			Title("Error").
			Message(err.Error())
	}
}
