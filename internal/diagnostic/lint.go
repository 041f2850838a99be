package diagnostic

import (
	"github.com/murust-lang/murust/internal/ast"
	"github.com/murust-lang/murust/internal/position"
)

// Warning codes.
const (
	CodeWhileTrue = "W0001"
)

// Lint inspects a successfully parsed crate and returns warnings for
// constructs that are legal but likely unintended.
func Lint(crate *ast.Crate) []*Diagnostic {
	if crate == nil {
		return nil
	}

	var diags []*Diagnostic

	ast.Inspect(crate, func(n ast.Node) bool {
		if w, ok := n.(*ast.While); ok && isTrueLiteral(w.Cond.Expr()) {
			diags = append(diags, NewDiagnostic().
				Warning().
				Semantic().
				Code(CodeWhileTrue).
				Title("Constant loop condition").
				Message("Denote infinite loops with 'loop { ... }'").
				Span(position.NewSpan(w.Span.Start, w.Cond.Expr().GetSpan().End)).
				Build())
		}

		return true
	})

	return diags
}

func isTrueLiteral(e ast.Expr) bool {
	for {
		switch x := e.(type) {
		case *ast.Grouped:
			e = x.Inner.Expr()
		case *ast.Literal:
			return x.Kind == ast.LitBool && x.Bool
		default:
			return false
		}
	}
}
