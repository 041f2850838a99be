package diagnostic

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murust-lang/murust/internal/ast"
	"github.com/murust-lang/murust/internal/lexer"
	"github.com/murust-lang/murust/internal/parser"
	"github.com/murust-lang/murust/internal/position"
)

func parseErr(t *testing.T, src string) error {
	t.Helper()
	crate, err := parser.New(lexer.New("main.mrs", strings.NewReader(src))).Parse()
	require.Nil(t, crate)
	require.Error(t, err)
	return err
}

func codes(diags []*Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		codes   []string
		message string
		span    string
	}{
		{
			name:    "aggregated",
			src:     "static X: i32;\nfn main() { 1 = 2; }",
			codes:   []string{CodeStaticNoInit, CodeWrongKind},
			message: "Static items must be initialized",
			span:    "<1:1>-<1:15>",
		},
		{
			name:    "lexical",
			src:     "fn main() { @ }",
			codes:   []string{CodeUnknownToken},
			message: "Unexpected character '@'",
			span:    "<1:13>-<1:14>",
		},
		{
			name:    "unexpected token",
			src:     "fn f(x: u8) {}",
			codes:   []string{CodeUnexpectedTok},
			message: "Expected <type>, found 'u8'",
			span:    "<1:9>-<1:11>",
		},
		{
			name:    "unexpected end of file",
			src:     "fn f() {",
			codes:   []string{CodeUnexpectedTok},
			message: "Expected <expr>, found end of file",
			span:    "<1:9>-<1:9>",
		},
		{
			name:    "unsupported abi",
			src:     `extern "Rust" { }`,
			codes:   []string{CodeUnsupportedABI},
			message: `ABI "Rust" is not supported`,
			span:    "<1:8>-<1:14>",
		},
		{
			name:    "missing semicolon",
			src:     "fn main() { let x: i32 = 5 }",
			codes:   []string{CodeMissingToken},
			message: "Expected ';'",
			span:    "<1:27>-<1:27>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := FromError(parseErr(t, tt.src))
			if diff := cmp.Diff(tt.codes, codes(diags)); diff != "" {
				t.Fatalf("codes mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.message, diags[0].Message)
			assert.Equal(t, tt.span, diags[0].Span.String())
			assert.Equal(t, DiagnosticError, diags[0].Level)
		})
	}
}

func TestWrongKindMessage(t *testing.T) {
	diags := FromError(parseErr(t, "fn main() { 1 = 2; }"))
	require.Len(t, diags, 1)
	assert.Equal(t, DiagnosticSemantic, diags[0].Category)
	assert.Equal(t, "The assignment target must be an assignee expression, found value expression", diags[0].Message)

	diags = FromError(parseErr(t, "fn main() { let x: i32 = _; }"))
	require.Len(t, diags, 1)
	assert.Equal(t, "The let initializer must be a value expression, found assignee expression", diags[0].Message)
}

func TestFromPlainError(t *testing.T) {
	diags := FromError(fmt.Errorf("open source file: %w", fs.ErrNotExist))
	require.Len(t, diags, 1)
	assert.Equal(t, CodeIO, diags[0].Code)
	assert.Equal(t, DiagnosticIO, diags[0].Category)
	assert.False(t, diags[0].HasSpan())

	assert.Nil(t, FromError(nil))
}

func TestMaxErrors(t *testing.T) {
	src := "static A: i32;\nstatic B: i32;\nstatic C: i32;\nstatic D: i32;"
	de := NewDiagnosticEngine("main.mrs", DiagnosticConfig{MaxErrors: 2})
	de.AddError(parseErr(t, src))

	diags := de.GetDiagnostics()
	require.Len(t, diags, 3)
	assert.Equal(t, CodeTooManyErrors, diags[2].Code)
	assert.Equal(t, "Stopping after 2 errors", diags[2].Message)
	assert.True(t, de.Truncated())
	assert.True(t, de.HasErrors())
}

func TestIgnoreAndPromote(t *testing.T) {
	de := NewDiagnosticEngine("main.mrs", DiagnosticConfig{
		IgnoreCodes:      []string{CodeStaticNoInit},
		WarningsAsErrors: true,
	})
	de.AddError(parseErr(t, "static A: i32;"))
	assert.Empty(t, de.GetDiagnostics())

	de.AddDiagnostic(NewDiagnostic().Warning().Code("W0001").Title("warn").Build())
	assert.Len(t, de.GetErrors(), 1)
	assert.Empty(t, de.GetWarnings())
}

func TestSortDiagnostics(t *testing.T) {
	de := NewDiagnosticEngine("main.mrs", DiagnosticConfig{})
	at := func(line, col int) position.Span {
		return position.NewSpan(position.At(line, col), position.At(line, col+1))
	}

	de.AddDiagnostic(NewDiagnostic().Error().Code("C").Build())
	de.AddDiagnostic(NewDiagnostic().Warning().Code("B").Span(at(2, 1)).Build())
	de.AddDiagnostic(NewDiagnostic().Error().Code("A").Span(at(2, 1)).Build())
	de.AddDiagnostic(NewDiagnostic().Error().Code("D").Span(at(1, 5)).Build())
	de.SortDiagnostics()

	var got []string
	for _, d := range de.GetDiagnostics() {
		got = append(got, d.Code)
	}
	assert.Equal(t, []string{"D", "A", "B", "C"}, got)
}

func TestRenderPlain(t *testing.T) {
	src := "fn main() {\n    let x: i32 = 5\n}\n"
	de := NewDiagnosticEngine("main.mrs", DiagnosticConfig{})
	de.AddError(parseErr(t, src))

	var buf bytes.Buffer
	r := NewRenderer(&buf, false)
	require.NoError(t, r.Render(de, position.NewSourceFile("main.mrs", src)))

	expected := "main.mrs:2:19: error[E1003]: Missing token\n" +
		"  Expected ';'\n" +
		"   2 |     let x: i32 = 5\n" +
		"     | " + strings.Repeat(" ", 18) + "^\n" +
		"\nmain.mrs: found 1 error(s)\n"
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderNotesAndNoSpan(t *testing.T) {
	de := NewDiagnosticEngine("main.mrs", DiagnosticConfig{})
	de.AddError(parseErr(t, "static A: i32;"))
	de.AddError(fmt.Errorf("read failed"))

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, false).Render(de, nil))

	out := buf.String()
	assert.Contains(t, out, "main.mrs:1:1: error[E2002]: Static without initializer\n")
	assert.Contains(t, out, "  = note: add '= <expr>' before the ';'\n")
	assert.Contains(t, out, "main.mrs: error[E0002]: Cannot read source\n")
	assert.Contains(t, out, "found 2 error(s)")
	assert.NotContains(t, out, "|")
}

func TestRenderColored(t *testing.T) {
	de := NewDiagnosticEngine("main.mrs", DiagnosticConfig{})
	de.AddError(parseErr(t, "static A: i32;"))

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, true).Render(de, nil))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestRenderClean(t *testing.T) {
	de := NewDiagnosticEngine("main.mrs", DiagnosticConfig{})

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, false).Render(de, nil))
	assert.Equal(t, "main.mrs: no issues found\n", buf.String())
}

func parseCrate(t *testing.T, src string) *ast.Crate {
	t.Helper()
	crate, err := parser.New(lexer.New("main.mrs", strings.NewReader(src))).Parse()
	require.NoError(t, err)
	return crate
}

func TestLintWhileTrue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		spans []position.Span
	}{
		{"literal", "fn main() { while true {} }", []position.Span{
			position.NewSpan(position.At(1, 13), position.At(1, 23)),
		}},
		{"grouped", "fn main() { while (true) {} }", []position.Span{
			position.NewSpan(position.At(1, 13), position.At(1, 25)),
		}},
		{"nested", "fn main() { loop { if x { while true {} } } }", []position.Span{
			position.NewSpan(position.At(1, 27), position.At(1, 37)),
		}},
		{"false", "fn main() { while false {} }", nil},
		{"variable", "fn main() { while x {} }", nil},
		{"loop", "fn main() { loop {} }", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Lint(parseCrate(t, tt.input))
			var spans []position.Span
			for _, d := range diags {
				assert.Equal(t, CodeWhileTrue, d.Code)
				assert.Equal(t, DiagnosticWarning, d.Level)
				spans = append(spans, d.Span)
			}
			assert.Equal(t, tt.spans, spans)
		})
	}

	assert.Nil(t, Lint(nil))
}

func TestLintConfig(t *testing.T) {
	crate := parseCrate(t, "fn main() { while true {} }")

	de := NewDiagnosticEngine("main.mrs", DiagnosticConfig{})
	de.AddDiagnostics(Lint(crate))
	assert.Len(t, de.GetWarnings(), 1)
	assert.False(t, de.HasErrors())

	de = NewDiagnosticEngine("main.mrs", DiagnosticConfig{WarningsAsErrors: true})
	de.AddDiagnostics(Lint(crate))
	assert.Empty(t, de.GetWarnings())
	assert.True(t, de.HasErrors())

	de = NewDiagnosticEngine("main.mrs", DiagnosticConfig{IgnoreCodes: []string{CodeWhileTrue}, WarningsAsErrors: true})
	de.AddDiagnostics(Lint(crate))
	assert.Empty(t, de.GetDiagnostics())
}

func TestRenderWarning(t *testing.T) {
	src := "fn main() {\n    while true {}\n}\n"
	de := NewDiagnosticEngine("main.mrs", DiagnosticConfig{})
	de.AddDiagnostics(Lint(parseCrate(t, src)))

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, false).Render(de, position.NewSourceFile("main.mrs", src)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "main.mrs:2:5: warning[W0001]: Constant loop condition\n"), out)
	assert.Contains(t, out, "   2 |     while true {}\n")
	assert.True(t, strings.HasSuffix(out, "\nmain.mrs: found 1 warning(s)\n"), out)
}
