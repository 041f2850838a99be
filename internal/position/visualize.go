// This file contains the source snippet renderer used by diagnostics.
package position

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SourceFile holds the lines of a source file for snippet rendering.
type SourceFile struct {
	Filename string   // File path
	Lines    []string // Lines of source code for efficient access
}

// NewSourceFile creates a new source file from content
func NewSourceFile(filename, content string) *SourceFile {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return &SourceFile{
		Filename: filename,
		Lines:    strings.Split(content, "\n"),
	}
}

// GetLine returns the specified line (1-based) or empty string if invalid
func (sf *SourceFile) GetLine(lineNum int) string {
	if lineNum < 1 || lineNum > len(sf.Lines) {
		return ""
	}
	return sf.Lines[lineNum-1]
}

// SpanHighlighter renders a span of a source file with carets underneath.
type SpanHighlighter struct {
	file *SourceFile

	// Context is the number of lines shown around the span.
	Context int
	// Width truncates rendered source lines; zero disables truncation.
	Width int
}

// NewSpanHighlighter creates a new span highlighter.
func NewSpanHighlighter(file *SourceFile) *SpanHighlighter {
	return &SpanHighlighter{file: file}
}

// HighlightSpan returns the lines covered by span, each followed by a caret
// line under the covered columns.
func (sh *SpanHighlighter) HighlightSpan(span Span) string {
	if sh.file == nil || !span.IsValid() {
		return ""
	}

	var result strings.Builder

	startLine := max(1, span.Start.Line-sh.Context)
	endLine := min(len(sh.file.Lines), span.End.Line+sh.Context)

	for lineNum := startLine; lineNum <= endLine; lineNum++ {
		line := sh.clip(sh.file.GetLine(lineNum))
		result.WriteString(fmt.Sprintf("%4d | %s\n", lineNum, line))

		if lineNum >= span.Start.Line && lineNum <= span.End.Line {
			sh.addHighlighting(&result, lineNum, line, span)
		}
	}

	return result.String()
}

func (sh *SpanHighlighter) clip(line string) string {
	const gutter = 7
	if sh.Width <= gutter || utf8.RuneCountInString(line) <= sh.Width-gutter {
		return line
	}
	return string([]rune(line)[:sh.Width-gutter])
}

// addHighlighting adds ASCII highlighting under the relevant part of the line.
func (sh *SpanHighlighter) addHighlighting(result *strings.Builder, lineNum int, line string, span Span) {
	lineEnd := utf8.RuneCountInString(line) + 1

	startCol, endCol := 1, lineEnd
	if lineNum == span.Start.Line {
		startCol = span.Start.Column
	}
	if lineNum == span.End.Line {
		endCol = span.End.Column
	}
	if endCol <= startCol {
		// Empty spans (EOF, missing tokens) still get one caret.
		endCol = startCol + 1
	}

	result.WriteString("     | ")
	runes := []rune(line)
	for i := 1; i < startCol; i++ {
		if i <= len(runes) && runes[i-1] == '\t' {
			result.WriteString("\t")
		} else {
			result.WriteString(" ")
		}
	}
	result.WriteString(strings.Repeat("^", endCol-startCol))
	result.WriteString("\n")
}
