package ast

import "strings"

// Capability is the set of syntactic roles an expression may fill.
type Capability uint8

const (
	// CapPlace marks an expression denoting a storage location.
	CapPlace Capability = 1 << iota
	// CapValue marks an expression yielding a usable result.
	CapValue
	// CapAssignee marks an expression legal on the left of `=` or as a
	// binding pattern.
	CapAssignee
)

// Has reports whether c contains every capability in other.
func (c Capability) Has(other Capability) bool {
	return c&other == other
}

// Valid reports whether c respects Place ⊆ Assignee. Every expression kind
// must declare a valid capability set.
func (c Capability) Valid() bool {
	return !c.Has(CapPlace) || c.Has(CapAssignee)
}

func (c Capability) String() string {
	var parts []string
	if c.Has(CapPlace) {
		parts = append(parts, "place")
	}
	if c.Has(CapValue) {
		parts = append(parts, "value")
	}
	if c.Has(CapAssignee) {
		parts = append(parts, "assignee")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// WithArticle returns c prefixed with its indefinite article, as in
// "an assignee".
func (c Capability) WithArticle() string {
	if c == CapAssignee {
		return "an " + c.String()
	}
	return "a " + c.String()
}

// Expr represents all expression nodes.
type Expr interface {
	Node
	// Capabilities returns the capability set fixed by the node's kind.
	Capabilities() Capability
	exprNode()
}

// ValueExpr is an expression known to be usable as a value.
// The zero ValueExpr holds no expression.
type ValueExpr struct{ expr Expr }

// AssigneeExpr is an expression known to be usable as an assignee.
type AssigneeExpr struct{ expr Expr }

// PlaceExpr is an expression known to denote a place. Every PlaceExpr is
// also an assignee; see Assignee.
type PlaceExpr struct{ expr Expr }

// Expr returns the wrapped expression, or nil for the zero value.
func (v ValueExpr) Expr() Expr { return v.expr }

// Expr returns the wrapped expression, or nil for the zero value.
func (a AssigneeExpr) Expr() Expr { return a.expr }

// Expr returns the wrapped expression, or nil for the zero value.
func (p PlaceExpr) Expr() Expr { return p.expr }

// Assignee widens a place to an assignee.
func (p PlaceExpr) Assignee() AssigneeExpr { return AssigneeExpr{expr: p.expr} }

// TryAsValue narrows e to a value expression.
func TryAsValue(e Expr) (ValueExpr, bool) {
	if e == nil || !e.Capabilities().Has(CapValue) {
		return ValueExpr{}, false
	}
	return ValueExpr{expr: e}, true
}

// TryAsAssignee narrows e to an assignee expression.
func TryAsAssignee(e Expr) (AssigneeExpr, bool) {
	if e == nil || !e.Capabilities().Has(CapAssignee) {
		return AssigneeExpr{}, false
	}
	return AssigneeExpr{expr: e}, true
}

// TryAsPlace narrows e to a place expression.
func TryAsPlace(e Expr) (PlaceExpr, bool) {
	if e == nil || !e.Capabilities().Has(CapPlace) {
		return PlaceExpr{}, false
	}
	return PlaceExpr{expr: e}, true
}

// AssumeValue wraps e as a value expression without checking. The parser
// uses it to keep building the tree after it has recorded a capability
// error; such a tree is never handed to a caller as a successful parse.
func AssumeValue(e Expr) ValueExpr { return ValueExpr{expr: e} }

// AssumeAssignee wraps e as an assignee expression without checking.
// See AssumeValue.
func AssumeAssignee(e Expr) AssigneeExpr { return AssigneeExpr{expr: e} }
