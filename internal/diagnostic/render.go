package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/murust-lang/murust/internal/position"
)

// Renderer writes the diagnostics of an engine in a human readable form.
type Renderer struct {
	out io.Writer

	// Context is the number of source lines shown around a span.
	Context int
	// Width clamps snippet lines to the terminal width; zero disables it.
	Width int

	errorColor   *color.Color
	warningColor *color.Color
	noteColor    *color.Color
	codeColor    *color.Color
	gutterColor  *color.Color
}

// NewRenderer creates a renderer writing to out. Colour escapes are only
// emitted when colored is set.
func NewRenderer(out io.Writer, colored bool) *Renderer {
	r := &Renderer{
		out:          out,
		errorColor:   color.New(color.FgRed, color.Bold),
		warningColor: color.New(color.FgYellow, color.Bold),
		noteColor:    color.New(color.FgCyan),
		codeColor:    color.New(color.Bold),
		gutterColor:  color.New(color.FgBlue),
	}

	for _, c := range []*color.Color{r.errorColor, r.warningColor, r.noteColor, r.codeColor, r.gutterColor} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// Render writes every diagnostic of de, sorted by position, followed by a
// summary line. file supplies the source text for snippets and may be nil.
func (r *Renderer) Render(de *DiagnosticEngine, file *position.SourceFile) error {
	de.SortDiagnostics()

	var highlighter *position.SpanHighlighter
	if file != nil {
		highlighter = position.NewSpanHighlighter(file)
		highlighter.Context = r.Context
		highlighter.Width = r.Width
	}

	var result strings.Builder

	for i := range de.diagnostics {
		if i > 0 {
			result.WriteString("\n")
		}

		r.formatSingleDiagnostic(&result, de.filename, &de.diagnostics[i], highlighter)
	}

	result.WriteString(r.formatSummary(de))

	_, err := io.WriteString(r.out, result.String())

	return err
}

func (r *Renderer) levelColor(level DiagnosticLevel) *color.Color {
	if level == DiagnosticWarning {
		return r.warningColor
	}

	return r.errorColor
}

// formatSingleDiagnostic formats a single diagnostic.
func (r *Renderer) formatSingleDiagnostic(result *strings.Builder, filename string, diag *Diagnostic, highlighter *position.SpanHighlighter) {
	location := filename
	if diag.HasSpan() {
		location = fmt.Sprintf("%s:%d:%d", filename, diag.Span.Start.Line, diag.Span.Start.Column)
	}

	result.WriteString(fmt.Sprintf("%s: %s: %s\n",
		location,
		r.levelColor(diag.Level).Sprintf("%s[%s]", diag.Level, diag.Code),
		r.codeColor.Sprint(diag.Title),
	))

	if diag.Message != "" {
		result.WriteString(fmt.Sprintf("  %s\n", diag.Message))
	}

	if highlighter != nil && diag.HasSpan() {
		for _, line := range strings.SplitAfter(highlighter.HighlightSpan(diag.Span), "\n") {
			if line == "" {
				continue
			}
			gutter, rest, ok := strings.Cut(line, "|")
			if !ok {
				result.WriteString(line)
				continue
			}
			result.WriteString(r.gutterColor.Sprint(gutter+"|") + rest)
		}
	}

	for _, note := range diag.Notes {
		result.WriteString(fmt.Sprintf("  %s %s\n", r.noteColor.Sprint("= note:"), note))
	}
}

// formatSummary formats a summary of all diagnostics.
func (r *Renderer) formatSummary(de *DiagnosticEngine) string {
	errorCount := len(de.GetErrors())
	warningCount := len(de.GetWarnings())

	if errorCount == 0 && warningCount == 0 {
		return fmt.Sprintf("%s: no issues found\n", de.filename)
	}

	var parts []string
	if errorCount > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", errorCount))
	}

	if warningCount > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warningCount))
	}

	return fmt.Sprintf("\n%s: found %s\n", de.filename, strings.Join(parts, ", "))
}
