package lexer

import (
	"fmt"

	"github.com/murust-lang/murust/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types of the μRust language.
const (
	TokenEOF TokenType = iota

	// Patterns
	TokenIdentifier
	TokenUnderscore
	TokenABI

	// Keywords
	TokenFn
	TokenStatic
	TokenExtern
	TokenLet
	TokenMut
	TokenAs
	TokenLoop
	TokenWhile
	TokenIf
	TokenElse
	TokenUnsafe
	TokenReturn

	// Delimiters
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenSemicolon
	TokenComma
	TokenColon
	TokenArrow

	// Literals
	TokenInteger
	TokenFloat
	TokenBool

	// Operators
	TokenAssign
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenNot
	TokenAnd
	TokenOr
	TokenEq
	TokenNe
	TokenGt
	TokenLt
	TokenGe
	TokenLe
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "IDENT",
	TokenUnderscore: "_",
	TokenABI:        "ABI",

	TokenFn:     "fn",
	TokenStatic: "static",
	TokenExtern: "extern",
	TokenLet:    "let",
	TokenMut:    "mut",
	TokenAs:     "as",
	TokenLoop:   "loop",
	TokenWhile:  "while",
	TokenIf:     "if",
	TokenElse:   "else",
	TokenUnsafe: "unsafe",
	TokenReturn: "return",

	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenSemicolon: ";",
	TokenComma:     ",",
	TokenColon:     ":",
	TokenArrow:     "->",

	TokenInteger: "INT",
	TokenFloat:   "FLOAT",
	TokenBool:    "BOOL",

	TokenAssign:  "=",
	TokenPlus:    "+",
	TokenMinus:   "-",
	TokenStar:    "*",
	TokenSlash:   "/",
	TokenPercent: "%",
	TokenBitAnd:  "&",
	TokenBitOr:   "|",
	TokenBitXor:  "^",
	TokenNot:     "!",
	TokenAnd:     "&&",
	TokenOr:      "||",
	TokenEq:      "==",
	TokenNe:      "!=",
	TokenGt:      ">",
	TokenLt:      "<",
	TokenGe:      ">=",
	TokenLe:      "<=",
}

// keywords maps reserved words, including the boolean literals, to their
// token types.
var keywords = map[string]TokenType{
	"fn":     TokenFn,
	"static": TokenStatic,
	"extern": TokenExtern,
	"let":    TokenLet,
	"mut":    TokenMut,
	"as":     TokenAs,
	"loop":   TokenLoop,
	"while":  TokenWhile,
	"if":     TokenIf,
	"else":   TokenElse,
	"unsafe": TokenUnsafe,
	"return": TokenReturn,
	"true":   TokenBool,
	"false":  TokenBool,
	"_":      TokenUnderscore,
}

// symbols2 holds the two character operators. They are matched before
// singleSymbols so that "->" is never lexed as "-" ">".
var symbols2 = map[[2]rune]TokenType{
	{'-', '>'}: TokenArrow,
	{'&', '&'}: TokenAnd,
	{'|', '|'}: TokenOr,
	{'=', '='}: TokenEq,
	{'!', '='}: TokenNe,
	{'<', '='}: TokenLe,
	{'>', '='}: TokenGe,
}

var singleSymbols = map[rune]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	';': TokenSemicolon,
	',': TokenComma,
	':': TokenColon,
	'=': TokenAssign,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'%': TokenPercent,
	'&': TokenBitAnd,
	'|': TokenBitOr,
	'^': TokenBitXor,
	'!': TokenNot,
	'>': TokenGt,
	'<': TokenLt,
}

// lookupIdent returns the keyword token type for ident, or TokenIdentifier.
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// Token is a single lexeme together with its source span.
type Token struct {
	Type    TokenType
	Literal string
	Span    position.Span

	// Decoded literal values, set for TokenInteger, TokenFloat and TokenBool.
	Int   int32
	Float float64
	Bool  bool
}

// String renders the token as KIND "text" at <l:c>-<l:c>.
func (t Token) String() string {
	return fmt.Sprintf("%s %q at %s", t.Type, t.Literal, t.Span)
}

// IsEOF reports whether t terminates the token stream.
func (t Token) IsEOF() bool {
	return t.Type == TokenEOF
}
