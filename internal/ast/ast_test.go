package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murust-lang/murust/internal/position"
)

// createTestSpan creates a one-column span for testing
func createTestSpan(line, col int) position.Span {
	return position.NewSpan(position.At(line, col), position.At(line, col+1))
}

func intLit(v int32) *Literal {
	return &Literal{Kind: LitInt, Int: v, Span: createTestSpan(1, 1)}
}

func path(name string) *Path {
	return &Path{Name: name, Span: createTestSpan(1, 1)}
}

// TestCapabilities checks the capability set declared by every expression kind.
func TestCapabilities(t *testing.T) {
	span := createTestSpan(1, 1)
	block := &Block{Span: span}

	tests := []struct {
		name string
		expr Expr
		want Capability
	}{
		{"literal", intLit(1), CapValue},
		{"path", path("x"), CapPlace | CapValue | CapAssignee},
		{"underscore", &Underscore{Span: span}, CapAssignee},
		{"grouped", &Grouped{Inner: AssumeValue(intLit(1)), Span: span}, CapValue},
		{"call", &Call{Callee: path("f"), Span: span}, CapValue},
		{"assign", &Assign{Target: AssumeAssignee(path("x")), Value: AssumeValue(intLit(1)), Span: span}, CapValue},
		{"arith", &ArithOrLogic{Op: OpAdd, LHS: AssumeValue(intLit(1)), RHS: AssumeValue(intLit(2)), Span: span}, CapValue},
		{"comparison", &Comparison{Op: CompLt, LHS: AssumeValue(intLit(1)), RHS: AssumeValue(intLit(2)), Span: span}, CapValue},
		{"lazy bool", &LazyBool{Op: LazyAnd, LHS: AssumeValue(intLit(1)), RHS: AssumeValue(intLit(2)), Span: span}, CapValue},
		{"negation", &Negation{Op: NegMinus, Operand: AssumeValue(intLit(1)), Span: span}, CapValue},
		{"cast", &Cast{Value: AssumeValue(intLit(1)), Type: Type{Kind: TypeF64}, Span: span}, CapValue},
		{"block", block, CapValue},
		{"loop", &Loop{Body: block, Span: span}, CapValue},
		{"while", &While{Cond: AssumeValue(intLit(1)), Body: block, Span: span}, CapValue},
		{"if", &If{Cond: AssumeValue(intLit(1)), Then: block, Span: span}, CapValue},
		{"unsafe", &Unsafe{Body: block, Span: span}, CapValue},
		{"return", &Return{Span: span}, CapValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := tt.expr.Capabilities()
			assert.Equal(t, tt.want, caps)
			assert.True(t, caps.Valid(), "place must imply assignee")

			_, isValue := TryAsValue(tt.expr)
			_, isAssignee := TryAsAssignee(tt.expr)
			place, isPlace := TryAsPlace(tt.expr)
			assert.Equal(t, caps.Has(CapValue), isValue)
			assert.Equal(t, caps.Has(CapAssignee), isAssignee)
			assert.Equal(t, caps.Has(CapPlace), isPlace)

			if isPlace {
				assert.Same(t, tt.expr, place.Assignee().Expr())
			}
		})
	}
}

func TestCapabilityNarrowingFailure(t *testing.T) {
	v, ok := TryAsValue(&Underscore{Span: createTestSpan(1, 1)})
	assert.False(t, ok)
	assert.Nil(t, v.Expr())

	_, ok = TryAsAssignee(intLit(3))
	assert.False(t, ok)

	_, ok = TryAsValue(nil)
	assert.False(t, ok)
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "place|value|assignee", (CapPlace | CapValue | CapAssignee).String())
	assert.Equal(t, "assignee", CapAssignee.String())
	assert.Equal(t, "none", Capability(0).String())
	assert.False(t, CapPlace.Valid())

	assert.Equal(t, "an assignee", CapAssignee.WithArticle())
	assert.Equal(t, "a value", CapValue.WithArticle())
}

func TestLookupType(t *testing.T) {
	for _, name := range []string{"i32", "f64", "bool", "()"} {
		kind, ok := LookupType(name)
		require.True(t, ok, name)
		assert.Equal(t, name, kind.String())
	}

	_, ok := LookupType("u8")
	assert.False(t, ok)
}

func TestOperatorStrings(t *testing.T) {
	assert.Equal(t, "%", OpRem.String())
	assert.Equal(t, "^", OpBitXor.String())
	assert.Equal(t, "<=", CompLe.String())
	assert.Equal(t, "||", LazyOr.String())
	assert.Equal(t, "!", NegNot.String())
	assert.Equal(t, "op(42)", ArithOp(42).String())
}

func TestLiteralString(t *testing.T) {
	span := createTestSpan(2, 3)
	tests := []struct {
		lit  *Literal
		want string
	}{
		{&Literal{Kind: LitInt, Int: -7, Span: span}, "Literal <2:3>-<2:4> i32 -7"},
		{&Literal{Kind: LitFloat, Float: 1.5, Span: span}, "Literal <2:3>-<2:4> f64 1.5"},
		{&Literal{Kind: LitBool, Bool: true, Span: span}, "Literal <2:3>-<2:4> bool true"},
		{&Literal{Kind: LitUnit, Span: span}, "Literal <2:3>-<2:4> () ()"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.lit.String())
	}
}

func TestBlockChildren(t *testing.T) {
	span := createTestSpan(1, 1)
	stmt := &ExprStmt{Expr: path("x"), Span: span}

	withTail := &Block{Stmts: []Stmt{stmt}, Tail: AssumeValue(intLit(1)), Span: span}
	assert.Len(t, withTail.Children(), 2)

	withoutTail := &Block{Stmts: []Stmt{stmt}, Span: span}
	assert.Len(t, withoutTail.Children(), 1)
}

func TestIsBlockLike(t *testing.T) {
	block := &Block{Span: createTestSpan(1, 1)}
	assert.True(t, IsBlockLike(block))
	assert.True(t, IsBlockLike(&Loop{Body: block}))
	assert.True(t, IsBlockLike(&Unsafe{Body: block}))
	assert.False(t, IsBlockLike(path("x")))
	assert.False(t, IsBlockLike(&Return{}))
}

func sampleCrate() *Crate {
	span := createTestSpan(1, 1)
	assign := &Assign{
		Target: AssumeAssignee(path("x")),
		Value:  AssumeValue(intLit(1)),
		Span:   span,
	}
	return &Crate{
		Name: "sample",
		Items: []Item{
			&Function{
				Proto: &FuncProto{Name: "main", Span: span},
				Body: &Block{
					Stmts: []Stmt{&ExprStmt{Expr: assign, Span: span}},
					Span:  span,
				},
				Span: span,
			},
		},
		Span: span,
	}
}

func TestDump(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Dump(&sb, sampleCrate()))

	want := strings.Join([]string{
		"Crate",
		`╰─ Function "main" <1:1>-<1:2>`,
		"   ├─ Function Prototype: main -> ()",
		"   ╰─ Block <1:1>-<1:2>",
		"      ╰─ ExprStmt <1:1>-<1:2>",
		"         ╰─ Assignment <1:1>-<1:2>",
		"            ├─ Path <1:1>-<1:2> x",
		"            ╰─ Literal <1:1>-<1:2> i32 1",
		"",
	}, "\n")
	assert.Equal(t, want, sb.String())
}

type pathCounter struct {
	BaseVisitor
	names []string
}

func (c *pathCounter) VisitPath(node *Path) interface{} {
	c.names = append(c.names, node.Name)
	return nil
}

func TestWalk(t *testing.T) {
	counter := &pathCounter{}
	Walk(counter, sampleCrate())
	assert.Equal(t, []string{"x"}, counter.names)

	var kinds int
	Inspect(sampleCrate(), func(n Node) bool {
		kinds++
		_, isBlock := n.(*Block)
		return !isBlock
	})
	// Crate, Function, FuncProto, Block.
	assert.Equal(t, 4, kinds)
}
