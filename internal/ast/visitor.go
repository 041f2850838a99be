// Package ast - Visitor pattern implementation for AST traversal.
package ast

// Visitor has one method per node kind. Analysis passes implement it to
// dispatch on node kinds without type switches.
type Visitor interface {
	VisitCrate(node *Crate) interface{}

	// Items.
	VisitFunction(node *Function) interface{}
	VisitFuncProto(node *FuncProto) interface{}
	VisitParam(node *Param) interface{}
	VisitStatic(node *Static) interface{}
	VisitExtern(node *Extern) interface{}

	// Statements.
	VisitLet(node *Let) interface{}
	VisitExprStmt(node *ExprStmt) interface{}

	// Expressions.
	VisitLiteral(node *Literal) interface{}
	VisitPath(node *Path) interface{}
	VisitUnderscore(node *Underscore) interface{}
	VisitGrouped(node *Grouped) interface{}
	VisitCall(node *Call) interface{}
	VisitAssign(node *Assign) interface{}
	VisitArithOrLogic(node *ArithOrLogic) interface{}
	VisitComparison(node *Comparison) interface{}
	VisitLazyBool(node *LazyBool) interface{}
	VisitNegation(node *Negation) interface{}
	VisitCast(node *Cast) interface{}
	VisitBlock(node *Block) interface{}
	VisitLoop(node *Loop) interface{}
	VisitWhile(node *While) interface{}
	VisitIf(node *If) interface{}
	VisitUnsafe(node *Unsafe) interface{}
	VisitReturn(node *Return) interface{}
}

// BaseVisitor provides a default implementation of the Visitor interface
// that returns nil for all visits. Concrete visitors embed it and override
// only the methods they need.
type BaseVisitor struct{}

func (v *BaseVisitor) VisitCrate(node *Crate) interface{}               { return nil }
func (v *BaseVisitor) VisitFunction(node *Function) interface{}         { return nil }
func (v *BaseVisitor) VisitFuncProto(node *FuncProto) interface{}       { return nil }
func (v *BaseVisitor) VisitParam(node *Param) interface{}               { return nil }
func (v *BaseVisitor) VisitStatic(node *Static) interface{}             { return nil }
func (v *BaseVisitor) VisitExtern(node *Extern) interface{}             { return nil }
func (v *BaseVisitor) VisitLet(node *Let) interface{}                   { return nil }
func (v *BaseVisitor) VisitExprStmt(node *ExprStmt) interface{}         { return nil }
func (v *BaseVisitor) VisitLiteral(node *Literal) interface{}           { return nil }
func (v *BaseVisitor) VisitPath(node *Path) interface{}                 { return nil }
func (v *BaseVisitor) VisitUnderscore(node *Underscore) interface{}     { return nil }
func (v *BaseVisitor) VisitGrouped(node *Grouped) interface{}           { return nil }
func (v *BaseVisitor) VisitCall(node *Call) interface{}                 { return nil }
func (v *BaseVisitor) VisitAssign(node *Assign) interface{}             { return nil }
func (v *BaseVisitor) VisitArithOrLogic(node *ArithOrLogic) interface{} { return nil }
func (v *BaseVisitor) VisitComparison(node *Comparison) interface{}     { return nil }
func (v *BaseVisitor) VisitLazyBool(node *LazyBool) interface{}         { return nil }
func (v *BaseVisitor) VisitNegation(node *Negation) interface{}         { return nil }
func (v *BaseVisitor) VisitCast(node *Cast) interface{}                 { return nil }
func (v *BaseVisitor) VisitBlock(node *Block) interface{}               { return nil }
func (v *BaseVisitor) VisitLoop(node *Loop) interface{}                 { return nil }
func (v *BaseVisitor) VisitWhile(node *While) interface{}               { return nil }
func (v *BaseVisitor) VisitIf(node *If) interface{}                     { return nil }
func (v *BaseVisitor) VisitUnsafe(node *Unsafe) interface{}             { return nil }
func (v *BaseVisitor) VisitReturn(node *Return) interface{}             { return nil }

// Walk visits node and then every descendant in depth-first source order.
func Walk(visitor Visitor, node Node) {
	Inspect(node, func(n Node) bool {
		n.Accept(visitor)
		return true
	})
}

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node. If f returns false the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, child := range node.Children() {
		Inspect(child, f)
	}
}
