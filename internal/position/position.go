// Package position provides source code position tracking for the μRust
// front end. Every token and AST node carries a Span built from these types.
package position

import "fmt"

// Position represents a single point in source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
}

// New returns the position of the first character of a file.
func New() Position {
	return Position{Line: 1, Column: 1}
}

// At returns a position at the given line and column.
func At(line, column int) Position {
	return Position{Line: line, Column: column}
}

// IsValid returns true if the position is valid
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// LineInc moves the position to the start of the next line.
func (p *Position) LineInc() {
	p.Line++
	p.Column = 1
}

// ColInc advances the position by one column.
func (p *Position) ColInc() {
	p.Column++
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before returns true if this position comes before other
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// After returns true if this position comes after other
func (p Position) After(other Position) bool {
	return other.Before(p)
}

// Span represents a range of source code between two positions.
// Spans are values and are never mutated once a token or node owns them.
type Span struct {
	Start Position // Starting position (inclusive)
	End   Position // Ending position (exclusive)
}

// NewSpan creates a span between the given positions.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// IsValid returns true if the span is valid
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && !s.End.Before(s.Start)
}

// String returns a string representation of the span
func (s Span) String() string {
	return fmt.Sprintf("<%s>-<%s>", s.Start, s.End)
}

// Contains returns true if the span contains the given position
func (s Span) Contains(pos Position) bool {
	if !s.IsValid() || !pos.IsValid() {
		return false
	}
	return !pos.Before(s.Start) && pos.Before(s.End)
}

// Union returns a span that encompasses both this span and other
func (s Span) Union(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() {
		return s
	}

	start := s.Start
	if other.Start.Before(start) {
		start = other.Start
	}

	end := s.End
	if other.End.After(end) {
		end = other.End
	}

	return Span{Start: start, End: end}
}
