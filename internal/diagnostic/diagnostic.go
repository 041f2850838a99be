// Diagnostic reporting for the μRust front end.
// Converts lexer and parser errors into coded diagnostics and renders them.

package diagnostic

import (
	"fmt"
	"sort"

	"github.com/murust-lang/murust/internal/position"
)

// DiagnosticLevel represents the severity level of a diagnostic message.
type DiagnosticLevel int

const (
	DiagnosticError DiagnosticLevel = iota
	DiagnosticWarning
)

func (dl DiagnosticLevel) String() string {
	switch dl {
	case DiagnosticError:
		return "error"
	case DiagnosticWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// DiagnosticCategory represents the compiler stage that produced a diagnostic.
type DiagnosticCategory int

const (
	DiagnosticLexical DiagnosticCategory = iota
	DiagnosticSyntax
	DiagnosticSemantic
	DiagnosticIO
)

func (dc DiagnosticCategory) String() string {
	switch dc {
	case DiagnosticLexical:
		return "lexical"
	case DiagnosticSyntax:
		return "syntax"
	case DiagnosticSemantic:
		return "semantic"
	case DiagnosticIO:
		return "io"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Code     string
	Title    string
	Message  string
	Notes    []string
	Span     position.Span
	Level    DiagnosticLevel
	Category DiagnosticCategory
}

// HasSpan reports whether the diagnostic points at source text.
func (d *Diagnostic) HasSpan() bool {
	return d.Span.Start.IsValid()
}

// DiagnosticBuilder helps construct diagnostic messages with fluent API.
type DiagnosticBuilder struct {
	diagnostic *Diagnostic
}

// NewDiagnostic creates a new diagnostic builder.
func NewDiagnostic() *DiagnosticBuilder {
	return &DiagnosticBuilder{diagnostic: &Diagnostic{}}
}

func (db *DiagnosticBuilder) Error() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticError

	return db
}

func (db *DiagnosticBuilder) Warning() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticWarning

	return db
}

func (db *DiagnosticBuilder) Lexical() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticLexical

	return db
}

func (db *DiagnosticBuilder) Syntax() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticSyntax

	return db
}

func (db *DiagnosticBuilder) Semantic() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticSemantic

	return db
}

func (db *DiagnosticBuilder) IO() *DiagnosticBuilder {
	db.diagnostic.Category = DiagnosticIO

	return db
}

func (db *DiagnosticBuilder) Code(code string) *DiagnosticBuilder {
	db.diagnostic.Code = code

	return db
}

func (db *DiagnosticBuilder) Title(title string) *DiagnosticBuilder {
	db.diagnostic.Title = title

	return db
}

func (db *DiagnosticBuilder) Message(message string) *DiagnosticBuilder {
	db.diagnostic.Message = message

	return db
}

func (db *DiagnosticBuilder) Span(span position.Span) *DiagnosticBuilder {
	db.diagnostic.Span = span

	return db
}

func (db *DiagnosticBuilder) Note(note string) *DiagnosticBuilder {
	db.diagnostic.Notes = append(db.diagnostic.Notes, note)

	return db
}

func (db *DiagnosticBuilder) Build() *Diagnostic {
	return db.diagnostic
}

// DiagnosticEngine collects the diagnostics of one source file.
type DiagnosticEngine struct {
	filename    string
	diagnostics []Diagnostic
	config      DiagnosticConfig
	truncated   bool
}

// DiagnosticConfig controls diagnostic behavior.
type DiagnosticConfig struct {
	// IgnoreCodes lists diagnostic codes that are dropped on arrival.
	IgnoreCodes []string
	// MaxErrors stops collection after this many errors. Zero means no limit.
	MaxErrors int
	// WarningsAsErrors promotes warnings to errors.
	WarningsAsErrors bool
}

// NewDiagnosticEngine creates a new diagnostic engine for filename.
func NewDiagnosticEngine(filename string, config DiagnosticConfig) *DiagnosticEngine {
	return &DiagnosticEngine{
		filename:    filename,
		diagnostics: make([]Diagnostic, 0),
		config:      config,
	}
}

// AddDiagnostic adds a diagnostic to the engine.
func (de *DiagnosticEngine) AddDiagnostic(diagnostic *Diagnostic) {
	if de.shouldIgnore(diagnostic) {
		return
	}

	if de.config.WarningsAsErrors && diagnostic.Level == DiagnosticWarning {
		diagnostic.Level = DiagnosticError
	}

	if diagnostic.Level == DiagnosticError && de.limitReached() {
		if !de.truncated {
			de.truncated = true
			truncationDiag := NewDiagnostic().
				Error().
				Code(CodeTooManyErrors).
				Title("Too many errors").
				Message(fmt.Sprintf("Stopping after %d errors", de.config.MaxErrors)).
				Build()
			de.diagnostics = append(de.diagnostics, *truncationDiag)
		}

		return
	}

	de.diagnostics = append(de.diagnostics, *diagnostic)
}

// AddError converts err and adds the resulting diagnostics.
func (de *DiagnosticEngine) AddError(err error) {
	de.AddDiagnostics(FromError(err))
}

// AddDiagnostics adds each diagnostic in order.
func (de *DiagnosticEngine) AddDiagnostics(diags []*Diagnostic) {
	for _, d := range diags {
		de.AddDiagnostic(d)
	}
}

func (de *DiagnosticEngine) limitReached() bool {
	return de.config.MaxErrors > 0 && len(de.GetErrors()) >= de.config.MaxErrors
}

func (de *DiagnosticEngine) shouldIgnore(diagnostic *Diagnostic) bool {
	for _, code := range de.config.IgnoreCodes {
		if diagnostic.Code == code {
			return true
		}
	}

	return false
}

// Truncated reports whether diagnostics were dropped because of MaxErrors.
func (de *DiagnosticEngine) Truncated() bool {
	return de.truncated
}

// GetDiagnostics returns all diagnostics.
func (de *DiagnosticEngine) GetDiagnostics() []Diagnostic {
	return de.diagnostics
}

// GetErrors returns only error-level diagnostics.
func (de *DiagnosticEngine) GetErrors() []Diagnostic {
	errors := make([]Diagnostic, 0)

	for _, diag := range de.diagnostics {
		if diag.Level == DiagnosticError {
			errors = append(errors, diag)
		}
	}

	return errors
}

// GetWarnings returns only warning-level diagnostics.
func (de *DiagnosticEngine) GetWarnings() []Diagnostic {
	warnings := make([]Diagnostic, 0)

	for _, diag := range de.diagnostics {
		if diag.Level == DiagnosticWarning {
			warnings = append(warnings, diag)
		}
	}

	return warnings
}

// HasErrors returns true if there are any errors.
func (de *DiagnosticEngine) HasErrors() bool {
	return len(de.GetErrors()) > 0
}

// SortDiagnostics sorts diagnostics by position and severity. Diagnostics
// without a span go last.
func (de *DiagnosticEngine) SortDiagnostics() {
	sort.SliceStable(de.diagnostics, func(i, j int) bool {
		a, b := de.diagnostics[i], de.diagnostics[j]

		if a.HasSpan() != b.HasSpan() {
			return a.HasSpan()
		}

		if a.Span.Start.Line != b.Span.Start.Line {
			return a.Span.Start.Line < b.Span.Start.Line
		}

		if a.Span.Start.Column != b.Span.Start.Column {
			return a.Span.Start.Column < b.Span.Start.Column
		}

		// Then by severity (errors first).
		return a.Level < b.Level
	})
}
