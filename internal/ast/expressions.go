package ast

import (
	"fmt"
	"strconv"

	"github.com/murust-lang/murust/internal/position"
)

// ===== Operators =====

// ArithOp is an arithmetic or bitwise operator.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpBitAnd
	OpBitOr
	OpBitXor
)

var arithOpNames = [...]string{"+", "-", "*", "/", "%", "&", "|", "^"}

func (op ArithOp) String() string { return opName(arithOpNames[:], int(op)) }

// CompOp is a comparison operator.
type CompOp int

const (
	CompEq CompOp = iota
	CompNe
	CompGt
	CompLt
	CompGe
	CompLe
)

var compOpNames = [...]string{"==", "!=", ">", "<", ">=", "<="}

func (op CompOp) String() string { return opName(compOpNames[:], int(op)) }

// LazyBoolOp is a short-circuiting boolean operator.
type LazyBoolOp int

const (
	LazyAnd LazyBoolOp = iota
	LazyOr
)

var lazyBoolOpNames = [...]string{"&&", "||"}

func (op LazyBoolOp) String() string { return opName(lazyBoolOpNames[:], int(op)) }

// NegOp is a prefix operator.
type NegOp int

const (
	NegMinus NegOp = iota
	NegNot
)

var negOpNames = [...]string{"-", "!"}

func (op NegOp) String() string { return opName(negOpNames[:], int(op)) }

func opName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("op(%d)", i)
	}
	return names[i]
}

// ===== Literals and paths =====

// LiteralKind is the type of a literal.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitUnit
)

// Literal is an int, float, bool or unit literal.
type Literal struct {
	Kind  LiteralKind
	Int   int32
	Float float64
	Bool  bool
	Span  position.Span
}

func (l *Literal) exprNode()                          {}
func (l *Literal) Capabilities() Capability           { return CapValue }
func (l *Literal) GetSpan() position.Span             { return l.Span }
func (l *Literal) Children() []Node                   { return nil }
func (l *Literal) Accept(visitor Visitor) interface{} { return visitor.VisitLiteral(l) }
func (l *Literal) String() string {
	return fmt.Sprintf("Literal %s %s %s", l.Span, l.Type(), l.ValueString())
}

// Type returns the type of the literal.
func (l *Literal) Type() TypeKind {
	switch l.Kind {
	case LitInt:
		return TypeI32
	case LitFloat:
		return TypeF64
	case LitBool:
		return TypeBool
	default:
		return TypeUnit
	}
}

// ValueString renders the literal value as source text.
func (l *Literal) ValueString() string {
	switch l.Kind {
	case LitInt:
		return strconv.FormatInt(int64(l.Int), 10)
	case LitFloat:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)
	case LitBool:
		return strconv.FormatBool(l.Bool)
	default:
		return "()"
	}
}

// Path is a variable or function name.
type Path struct {
	Name string
	Span position.Span
}

func (p *Path) exprNode()                          {}
func (p *Path) Capabilities() Capability           { return CapPlace | CapValue | CapAssignee }
func (p *Path) GetSpan() position.Span             { return p.Span }
func (p *Path) Children() []Node                   { return nil }
func (p *Path) Accept(visitor Visitor) interface{} { return visitor.VisitPath(p) }
func (p *Path) String() string                     { return fmt.Sprintf("Path %s %s", p.Span, p.Name) }

// Underscore is the discard pattern `_`. It is not a value.
type Underscore struct {
	Span position.Span
}

func (u *Underscore) exprNode()                          {}
func (u *Underscore) Capabilities() Capability           { return CapAssignee }
func (u *Underscore) GetSpan() position.Span             { return u.Span }
func (u *Underscore) Children() []Node                   { return nil }
func (u *Underscore) Accept(visitor Visitor) interface{} { return visitor.VisitUnderscore(u) }
func (u *Underscore) String() string                     { return fmt.Sprintf("Underscore %s", u.Span) }

// Grouped is a parenthesized expression.
type Grouped struct {
	Inner ValueExpr
	Span  position.Span
}

func (g *Grouped) exprNode()                          {}
func (g *Grouped) Capabilities() Capability           { return CapValue }
func (g *Grouped) GetSpan() position.Span             { return g.Span }
func (g *Grouped) Children() []Node                   { return []Node{g.Inner.Expr()} }
func (g *Grouped) Accept(visitor Visitor) interface{} { return visitor.VisitGrouped(g) }
func (g *Grouped) String() string                     { return fmt.Sprintf("Grouped %s", g.Span) }

// ===== Calls, assignment and operators =====

// Call is a function call.
type Call struct {
	Callee *Path
	Args   []ValueExpr
	Span   position.Span
}

func (c *Call) exprNode()                          {}
func (c *Call) Capabilities() Capability           { return CapValue }
func (c *Call) GetSpan() position.Span             { return c.Span }
func (c *Call) Accept(visitor Visitor) interface{} { return visitor.VisitCall(c) }
func (c *Call) String() string {
	return fmt.Sprintf("Function Call %s %s", c.Span, c.Callee.Name)
}
func (c *Call) Children() []Node {
	children := make([]Node, 0, len(c.Args))
	for _, arg := range c.Args {
		children = append(children, arg.Expr())
	}
	return children
}

// Assign is an assignment expression. It yields unit.
type Assign struct {
	Target AssigneeExpr
	Value  ValueExpr
	Span   position.Span
}

func (a *Assign) exprNode()                          {}
func (a *Assign) Capabilities() Capability           { return CapValue }
func (a *Assign) GetSpan() position.Span             { return a.Span }
func (a *Assign) Children() []Node                   { return []Node{a.Target.Expr(), a.Value.Expr()} }
func (a *Assign) Accept(visitor Visitor) interface{} { return visitor.VisitAssign(a) }
func (a *Assign) String() string                     { return fmt.Sprintf("Assignment %s", a.Span) }

// ArithOrLogic is an arithmetic or bitwise binary operation.
type ArithOrLogic struct {
	Op       ArithOp
	LHS, RHS ValueExpr
	Span     position.Span
}

func (b *ArithOrLogic) exprNode()                          {}
func (b *ArithOrLogic) Capabilities() Capability           { return CapValue }
func (b *ArithOrLogic) GetSpan() position.Span             { return b.Span }
func (b *ArithOrLogic) Children() []Node                   { return []Node{b.LHS.Expr(), b.RHS.Expr()} }
func (b *ArithOrLogic) Accept(visitor Visitor) interface{} { return visitor.VisitArithOrLogic(b) }
func (b *ArithOrLogic) String() string {
	return fmt.Sprintf("Operator (Arithmetic or Logical) %s `%s`", b.Span, b.Op)
}

// Comparison is a comparison. Comparisons do not chain.
type Comparison struct {
	Op       CompOp
	LHS, RHS ValueExpr
	Span     position.Span
}

func (c *Comparison) exprNode()                          {}
func (c *Comparison) Capabilities() Capability           { return CapValue }
func (c *Comparison) GetSpan() position.Span             { return c.Span }
func (c *Comparison) Children() []Node                   { return []Node{c.LHS.Expr(), c.RHS.Expr()} }
func (c *Comparison) Accept(visitor Visitor) interface{} { return visitor.VisitComparison(c) }
func (c *Comparison) String() string {
	return fmt.Sprintf("Operator (Comparison) %s `%s`", c.Span, c.Op)
}

// LazyBool is a short-circuiting `&&` or `||`.
type LazyBool struct {
	Op       LazyBoolOp
	LHS, RHS ValueExpr
	Span     position.Span
}

func (l *LazyBool) exprNode()                          {}
func (l *LazyBool) Capabilities() Capability           { return CapValue }
func (l *LazyBool) GetSpan() position.Span             { return l.Span }
func (l *LazyBool) Children() []Node                   { return []Node{l.LHS.Expr(), l.RHS.Expr()} }
func (l *LazyBool) Accept(visitor Visitor) interface{} { return visitor.VisitLazyBool(l) }
func (l *LazyBool) String() string {
	return fmt.Sprintf("Operator (Lazy Boolean) %s `%s`", l.Span, l.Op)
}

// Negation is a prefix `-` or `!`.
type Negation struct {
	Op      NegOp
	Operand ValueExpr
	Span    position.Span
}

func (n *Negation) exprNode()                          {}
func (n *Negation) Capabilities() Capability           { return CapValue }
func (n *Negation) GetSpan() position.Span             { return n.Span }
func (n *Negation) Children() []Node                   { return []Node{n.Operand.Expr()} }
func (n *Negation) Accept(visitor Visitor) interface{} { return visitor.VisitNegation(n) }
func (n *Negation) String() string {
	return fmt.Sprintf("Operator (Negation) %s `%s`", n.Span, n.Op)
}

// Cast is a type cast `expr as T`.
type Cast struct {
	Value ValueExpr
	Type  Type
	Span  position.Span
}

func (c *Cast) exprNode()                          {}
func (c *Cast) Capabilities() Capability           { return CapValue }
func (c *Cast) GetSpan() position.Span             { return c.Span }
func (c *Cast) Children() []Node                   { return []Node{c.Value.Expr()} }
func (c *Cast) Accept(visitor Visitor) interface{} { return visitor.VisitCast(c) }
func (c *Cast) String() string                     { return fmt.Sprintf("Type Cast %s %s", c.Span, c.Type) }

// ===== Block-like expressions =====

// Block is a braced list of statements with an optional tail expression.
type Block struct {
	Stmts []Stmt
	Tail  ValueExpr // zero when the block has no tail expression
	Span  position.Span
}

func (b *Block) exprNode()                          {}
func (b *Block) Capabilities() Capability           { return CapValue }
func (b *Block) GetSpan() position.Span             { return b.Span }
func (b *Block) Accept(visitor Visitor) interface{} { return visitor.VisitBlock(b) }
func (b *Block) String() string                     { return fmt.Sprintf("Block %s", b.Span) }
func (b *Block) Children() []Node {
	children := make([]Node, 0, len(b.Stmts)+1)
	for _, stmt := range b.Stmts {
		children = append(children, stmt)
	}
	if tail := b.Tail.Expr(); tail != nil {
		children = append(children, tail)
	}
	return children
}

// Loop is an infinite `loop`.
type Loop struct {
	Body *Block
	Span position.Span
}

func (l *Loop) exprNode()                          {}
func (l *Loop) Capabilities() Capability           { return CapValue }
func (l *Loop) GetSpan() position.Span             { return l.Span }
func (l *Loop) Children() []Node                   { return []Node{l.Body} }
func (l *Loop) Accept(visitor Visitor) interface{} { return visitor.VisitLoop(l) }
func (l *Loop) String() string                     { return fmt.Sprintf("Loop %s", l.Span) }

// While is a `while` loop.
type While struct {
	Cond ValueExpr
	Body *Block
	Span position.Span
}

func (w *While) exprNode()                          {}
func (w *While) Capabilities() Capability           { return CapValue }
func (w *While) GetSpan() position.Span             { return w.Span }
func (w *While) Children() []Node                   { return []Node{w.Cond.Expr(), w.Body} }
func (w *While) Accept(visitor Visitor) interface{} { return visitor.VisitWhile(w) }
func (w *While) String() string                     { return fmt.Sprintf("While %s", w.Span) }

// If is an `if` expression. Else is nil, a *Block, or an *If for
// `else if` chains.
type If struct {
	Cond ValueExpr
	Then *Block
	Else Expr
	Span position.Span
}

func (i *If) exprNode()                          {}
func (i *If) Capabilities() Capability           { return CapValue }
func (i *If) GetSpan() position.Span             { return i.Span }
func (i *If) Accept(visitor Visitor) interface{} { return visitor.VisitIf(i) }
func (i *If) String() string                     { return fmt.Sprintf("If %s", i.Span) }
func (i *If) Children() []Node {
	if i.Else == nil {
		return []Node{i.Cond.Expr(), i.Then}
	}
	return []Node{i.Cond.Expr(), i.Then, i.Else}
}

// Unsafe is an `unsafe` block.
type Unsafe struct {
	Body *Block
	Span position.Span
}

func (u *Unsafe) exprNode()                          {}
func (u *Unsafe) Capabilities() Capability           { return CapValue }
func (u *Unsafe) GetSpan() position.Span             { return u.Span }
func (u *Unsafe) Children() []Node                   { return []Node{u.Body} }
func (u *Unsafe) Accept(visitor Visitor) interface{} { return visitor.VisitUnsafe(u) }
func (u *Unsafe) String() string                     { return fmt.Sprintf("Unsafe Block %s", u.Span) }

// Return is a `return` expression with an optional operand.
type Return struct {
	Value ValueExpr // zero for a bare return
	Span  position.Span
}

func (r *Return) exprNode()                          {}
func (r *Return) Capabilities() Capability           { return CapValue }
func (r *Return) GetSpan() position.Span             { return r.Span }
func (r *Return) Accept(visitor Visitor) interface{} { return visitor.VisitReturn(r) }
func (r *Return) String() string                     { return fmt.Sprintf("Return %s", r.Span) }
func (r *Return) Children() []Node {
	if r.Value.Expr() == nil {
		return nil
	}
	return []Node{r.Value.Expr()}
}

// IsBlockLike reports whether e ends with a block, so that it may stand as
// a statement without a trailing semicolon.
func IsBlockLike(e Expr) bool {
	switch e.(type) {
	case *Block, *If, *Loop, *While, *Unsafe:
		return true
	}
	return false
}
