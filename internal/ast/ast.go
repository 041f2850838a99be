// Package ast defines the Abstract Syntax Tree (AST) nodes for μRust.
//
// The node catalog is closed: every node kind is a concrete struct in this
// package and the interfaces Item, ExternItem, Stmt and Expr are sealed by
// unexported marker methods. Nodes are built bottom-up by the parser and are
// read-only afterwards.
//
// Every expression declares, at construction time, which of the Place, Value
// and Assignee capabilities it supports. See capability.go.
package ast

import (
	"fmt"

	"github.com/murust-lang/murust/internal/position"
)

// Node is the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span covered by this node
	GetSpan() position.Span
	// String returns a one-line description of the node
	String() string
	// Children returns the direct child nodes in source order
	Children() []Node
	// Accept implements the visitor pattern for AST traversal
	Accept(visitor Visitor) interface{}
}

// Item represents a top-level declaration.
type Item interface {
	Node
	itemNode()
}

// ExternItem represents a declaration inside an extern block.
type ExternItem interface {
	Node
	externItemNode()
}

// Stmt represents a statement inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// ===== Crate =====

// Crate is the parse root of one source file.
type Crate struct {
	Name  string
	Items []Item
	Span  position.Span
}

func (c *Crate) GetSpan() position.Span             { return c.Span }
func (c *Crate) String() string                     { return "Crate" }
func (c *Crate) Accept(visitor Visitor) interface{} { return visitor.VisitCrate(c) }
func (c *Crate) Children() []Node {
	children := make([]Node, 0, len(c.Items))
	for _, item := range c.Items {
		children = append(children, item)
	}
	return children
}

// ===== Types =====

// TypeKind enumerates the primitive types of μRust.
type TypeKind int

const (
	TypeUnit TypeKind = iota
	TypeI32
	TypeF64
	TypeBool
)

var typeKindNames = map[TypeKind]string{
	TypeUnit: "()",
	TypeI32:  "i32",
	TypeF64:  "f64",
	TypeBool: "bool",
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// LookupType returns the type named by name.
func LookupType(name string) (TypeKind, bool) {
	for kind, n := range typeKindNames {
		if n == name {
			return kind, true
		}
	}
	return 0, false
}

// Type is a type annotation. It is not a tree node; its span is kept for
// diagnostics only. An omitted return type is TypeUnit with a zero span.
type Type struct {
	Kind TypeKind
	Span position.Span
}

func (t Type) String() string { return t.Kind.String() }

// ===== Items =====

// Function is a function item: a prototype and a body block.
type Function struct {
	Proto *FuncProto
	Body  *Block
	Span  position.Span
}

func (f *Function) itemNode()                          {}
func (f *Function) GetSpan() position.Span             { return f.Span }
func (f *Function) Accept(visitor Visitor) interface{} { return visitor.VisitFunction(f) }
func (f *Function) Children() []Node                   { return []Node{f.Proto, f.Body} }
func (f *Function) String() string {
	return fmt.Sprintf("Function %q %s", f.Proto.Name, f.Span)
}

// FuncProto is a function signature. It appears in function items and, on
// its own, inside extern blocks.
type FuncProto struct {
	Name       string
	Params     []*Param
	ReturnType Type
	Span       position.Span
}

func (p *FuncProto) externItemNode()                    {}
func (p *FuncProto) GetSpan() position.Span             { return p.Span }
func (p *FuncProto) Accept(visitor Visitor) interface{} { return visitor.VisitFuncProto(p) }
func (p *FuncProto) String() string {
	return fmt.Sprintf("Function Prototype: %s -> %s", p.Name, p.ReturnType)
}
func (p *FuncProto) Children() []Node {
	children := make([]Node, 0, len(p.Params))
	for _, param := range p.Params {
		children = append(children, param)
	}
	return children
}

// Param is a function parameter.
type Param struct {
	Mutable bool
	Pattern AssigneeExpr
	Type    Type
	Span    position.Span
}

func (p *Param) GetSpan() position.Span             { return p.Span }
func (p *Param) Accept(visitor Visitor) interface{} { return visitor.VisitParam(p) }
func (p *Param) Children() []Node                   { return []Node{p.Pattern.Expr()} }
func (p *Param) String() string {
	return fmt.Sprintf("Param%s %s %s", mutability(p.Mutable), p.Span, p.Type)
}

// Static is a static item. Inside an extern block it is a declaration and
// carries no initializer.
type Static struct {
	Name    string
	Mutable bool
	Type    Type
	Init    ValueExpr // zero when absent
	Span    position.Span
}

func (s *Static) itemNode()                          {}
func (s *Static) externItemNode()                    {}
func (s *Static) GetSpan() position.Span             { return s.Span }
func (s *Static) Accept(visitor Visitor) interface{} { return visitor.VisitStatic(s) }
func (s *Static) String() string {
	return fmt.Sprintf("Static%s %q %s %s", mutability(s.Mutable), s.Name, s.Span, s.Type)
}

// HasInit reports whether the static has an initializer.
func (s *Static) HasInit() bool { return s.Init.Expr() != nil }

func (s *Static) Children() []Node {
	if !s.HasInit() {
		return nil
	}
	return []Node{s.Init.Expr()}
}

// Extern is an extern block.
type Extern struct {
	ABI   string
	Items []ExternItem
	Span  position.Span
}

func (e *Extern) itemNode()                          {}
func (e *Extern) GetSpan() position.Span             { return e.Span }
func (e *Extern) Accept(visitor Visitor) interface{} { return visitor.VisitExtern(e) }
func (e *Extern) String() string                     { return fmt.Sprintf("Extern %q %s", e.ABI, e.Span) }
func (e *Extern) Children() []Node {
	children := make([]Node, 0, len(e.Items))
	for _, item := range e.Items {
		children = append(children, item)
	}
	return children
}

// ===== Statements =====

// Let is a let statement.
type Let struct {
	Mutable bool
	Pattern AssigneeExpr
	Type    Type
	Init    ValueExpr // zero when absent
	Span    position.Span
}

func (l *Let) stmtNode()                          {}
func (l *Let) GetSpan() position.Span             { return l.Span }
func (l *Let) Accept(visitor Visitor) interface{} { return visitor.VisitLet(l) }
func (l *Let) String() string {
	return fmt.Sprintf("Let%s %s %s", mutability(l.Mutable), l.Span, l.Type)
}

// HasInit reports whether the let statement has an initializer.
func (l *Let) HasInit() bool { return l.Init.Expr() != nil }

func (l *Let) Children() []Node {
	if !l.HasInit() {
		return []Node{l.Pattern.Expr()}
	}
	return []Node{l.Pattern.Expr(), l.Init.Expr()}
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Expr Expr
	Span position.Span
}

func (s *ExprStmt) stmtNode()                          {}
func (s *ExprStmt) GetSpan() position.Span             { return s.Span }
func (s *ExprStmt) Accept(visitor Visitor) interface{} { return visitor.VisitExprStmt(s) }
func (s *ExprStmt) String() string                     { return fmt.Sprintf("ExprStmt %s", s.Span) }
func (s *ExprStmt) Children() []Node                   { return []Node{s.Expr} }

func mutability(mutable bool) string {
	if mutable {
		return " mut"
	}
	return ""
}
