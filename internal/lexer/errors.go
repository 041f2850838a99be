package lexer

import (
	"fmt"

	"github.com/murust-lang/murust/internal/position"
)

// ErrorKind classifies a lexical error.
type ErrorKind int

const (
	ErrInvalidIntLiteral ErrorKind = iota
	ErrInvalidFloatLiteral
	ErrUnterminatedString
	ErrUnknownToken
)

var errorKindNames = map[ErrorKind]string{
	ErrInvalidIntLiteral:   "invalid integer literal",
	ErrInvalidFloatLiteral: "invalid float literal",
	ErrUnterminatedString:  "unterminated string literal",
	ErrUnknownToken:        "unknown token",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a lexical error. It is fatal to the parse that encounters it.
type Error struct {
	Kind ErrorKind
	Text string // offending literal text, for the literal kinds
	Char rune   // offending character, for ErrUnknownToken
	Span position.Span
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrInvalidIntLiteral, ErrInvalidFloatLiteral:
		return fmt.Sprintf("%s %q at %s", e.Kind, e.Text, e.Span)
	case ErrUnknownToken:
		return fmt.Sprintf("%s %q at %s", e.Kind, e.Char, e.Span)
	default:
		return fmt.Sprintf("%s at %s", e.Kind, e.Span)
	}
}
