// Package lexer implements the μRust lexical analyzer.
//
// A Lexer is a lazy, finite token stream: every call to Next produces at most
// one token, the last token is always a single TokenEOF, and after it Next
// reports io.EOF.
package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/smasher164/xid"
	"golang.org/x/text/unicode/norm"

	"github.com/murust-lang/murust/internal/position"
)

// Lexer represents the lexical analyzer state
type Lexer struct {
	name   string
	src    *lineReader
	closer io.Closer
	pos    position.Position
	done   bool
}

// Open creates a lexer reading the file at path.
func Open(path string) (*Lexer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	l := New(filepath.Base(path), f)
	l.closer = f
	return l, nil
}

// New creates a lexer over r. name is reported by Name and used for
// diagnostics only.
func New(name string, r io.Reader) *Lexer {
	return &Lexer{
		name: name,
		src:  newLineReader(r),
		pos:  position.New(),
	}
}

// Name returns the name of the file being lexed.
func (l *Lexer) Name() string {
	return l.name
}

// Close releases the underlying file, if the lexer owns one.
func (l *Lexer) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// Next returns the next token. A lexical failure is returned as *Error.
// Once the EOF token has been returned, Next returns io.EOF.
func (l *Lexer) Next() (Token, error) {
	if l.done {
		return Token{}, io.EOF
	}

	l.skipWhitespaceAndComments()

	start := l.pos
	ch, ok := l.read()
	if !ok {
		if err := l.src.err; err != nil {
			l.done = true
			return Token{}, fmt.Errorf("read %s: %w", l.name, err)
		}
		l.done = true
		return Token{Type: TokenEOF, Span: position.NewSpan(start, start)}, nil
	}

	if next, ok := l.src.peek(); ok {
		if tt, ok := symbols2[[2]rune{ch, next}]; ok {
			l.read()
			return l.newToken(tt, string([]rune{ch, next}), start), nil
		}
	}

	if tt, ok := singleSymbols[ch]; ok {
		return l.newToken(tt, string(ch), start), nil
	}

	switch {
	case isDigit(ch):
		return l.readNumber(ch, start)
	case ch == '"':
		return l.readABI(start)
	case isIdentStart(ch):
		return l.readIdentifier(ch, start), nil
	}

	return Token{}, &Error{
		Kind: ErrUnknownToken,
		Char: ch,
		Span: position.NewSpan(start, l.pos),
	}
}

// Tokens drains the lexer, returning every token up to and including EOF.
// It stops at the first error.
func (l *Lexer) Tokens() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if errors.Is(err, io.EOF) {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

// read consumes one character and advances the position.
func (l *Lexer) read() (rune, bool) {
	ch, ok := l.src.next()
	if !ok {
		return 0, false
	}
	l.pos.ColInc()
	if ch == '\n' {
		l.pos.LineInc()
	}
	return ch, true
}

// readWhile consumes characters while pred holds and appends them to sb.
func (l *Lexer) readWhile(sb *strings.Builder, pred func(rune) bool) {
	for {
		ch, ok := l.src.peek()
		if !ok || !pred(ch) {
			return
		}
		l.read()
		sb.WriteRune(ch)
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		ch, ok := l.src.peek()
		if !ok {
			return
		}
		switch {
		case isWhitespace(ch):
			l.read()
		case ch == '/' && l.src.peekSecond() == '/':
			for {
				ch, ok := l.src.peek()
				if !ok || ch == '\n' {
					break
				}
				l.read()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readNumber(first rune, start position.Position) (Token, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	l.readWhile(&sb, isDigit)

	if ch, ok := l.src.peek(); ok && ch == '.' {
		l.read()
		sb.WriteRune('.')
		l.readWhile(&sb, isDigit)

		text := sb.String()
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, &Error{Kind: ErrInvalidFloatLiteral, Text: text, Span: position.NewSpan(start, l.pos)}
		}
		tok := l.newToken(TokenFloat, text, start)
		tok.Float = value
		return tok, nil
	}

	text := sb.String()
	value, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return Token{}, &Error{Kind: ErrInvalidIntLiteral, Text: text, Span: position.NewSpan(start, l.pos)}
	}
	tok := l.newToken(TokenInteger, text, start)
	tok.Int = int32(value)
	return tok, nil
}

// readABI reads the body of a string literal up to the first unescaped '"'.
// Strings only appear as the ABI of an extern block. Escape sequences are
// kept verbatim in the literal.
func (l *Lexer) readABI(start position.Position) (Token, error) {
	var sb strings.Builder
	for {
		ch, ok := l.read()
		if !ok {
			return Token{}, &Error{Kind: ErrUnterminatedString, Text: sb.String(), Span: position.NewSpan(start, l.pos)}
		}
		if ch == '"' {
			return l.newToken(TokenABI, sb.String(), start), nil
		}
		sb.WriteRune(ch)
		if ch == '\\' {
			if escaped, ok := l.read(); ok {
				sb.WriteRune(escaped)
			}
		}
	}
}

func (l *Lexer) readIdentifier(first rune, start position.Position) Token {
	var sb strings.Builder
	sb.WriteRune(first)
	l.readWhile(&sb, isIdentContinue)

	ident := norm.NFC.String(sb.String())
	tok := l.newToken(lookupIdent(ident), ident, start)
	if tok.Type == TokenBool {
		tok.Bool = ident == "true"
	}
	return tok
}

func (l *Lexer) newToken(tokenType TokenType, literal string, start position.Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Span:    position.NewSpan(start, l.pos),
	}
}

func isWhitespace(ch rune) bool {
	switch ch {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u0085', '\u200E', '\u200F', '\u2028', '\u2029':
		return true
	}
	return false
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// isIdentStart reports whether ch may begin an identifier: XID_Start or '_'.
func isIdentStart(ch rune) bool {
	return ch == '_' || xid.Start(ch)
}

func isIdentContinue(ch rune) bool {
	return xid.Continue(ch)
}

// lineReader buffers one line of input at a time.
type lineReader struct {
	r    *bufio.Reader
	line []rune
	idx  int
	eof  bool
	err  error
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// fill loads the next line. It returns false once the input is exhausted.
func (lr *lineReader) fill() bool {
	if lr.eof {
		return false
	}
	text, err := lr.r.ReadString('\n')
	if err != nil {
		lr.eof = true
		if !errors.Is(err, io.EOF) {
			lr.err = err
		}
	}
	lr.line = []rune(text)
	lr.idx = 0
	return len(lr.line) > 0
}

func (lr *lineReader) peek() (rune, bool) {
	for lr.idx >= len(lr.line) {
		if !lr.fill() {
			return 0, false
		}
	}
	return lr.line[lr.idx], true
}

// peekSecond returns the character after the next one, or 0. It is only used
// where the next character is not a newline, so it never crosses a line.
func (lr *lineReader) peekSecond() rune {
	if lr.idx+1 < len(lr.line) {
		return lr.line[lr.idx+1]
	}
	return 0
}

func (lr *lineReader) next() (rune, bool) {
	ch, ok := lr.peek()
	if ok {
		lr.idx++
	}
	return ch, ok
}
