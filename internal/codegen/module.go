package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/murust-lang/murust/internal/ast"
)

// DeclKind identifies the kind of a module-level declaration.
type DeclKind int

const (
	DeclFunction DeclKind = iota
	DeclStatic
	DeclExternFunction
	DeclExternStatic
)

func (k DeclKind) String() string {
	switch k {
	case DeclFunction:
		return "fn"
	case DeclStatic:
		return "static"
	case DeclExternFunction:
		return "extern fn"
	case DeclExternStatic:
		return "extern static"
	default:
		return fmt.Sprintf("DeclKind(%d)", int(k))
	}
}

// Decl is one declaration of a Module.
type Decl struct {
	Kind      DeclKind
	Name      string
	Signature string
	ABI       string
	// Calls lists the distinct functions called from a function body,
	// sorted by name.
	Calls []string
}

func (d Decl) String() string {
	var sb strings.Builder
	sb.WriteString(d.Kind.String())
	if d.ABI != "" {
		fmt.Fprintf(&sb, " %q", d.ABI)
	}
	sb.WriteString(" ")
	sb.WriteString(d.Signature)
	if len(d.Calls) > 0 {
		fmt.Fprintf(&sb, " calls %s", strings.Join(d.Calls, ", "))
	}
	return sb.String()
}

// Module is the declaration summary of one crate.
type Module struct {
	Name  string
	Decls []Decl
}

// Lookup returns the declaration named name.
func (m *Module) Lookup(name string) (Decl, bool) {
	for _, d := range m.Decls {
		if d.Name == name {
			return d, true
		}
	}
	return Decl{}, false
}

func (m *Module) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "module %s\n", m.Name)
	for _, d := range m.Decls {
		fmt.Fprintf(&sb, "  %s\n", d)
	}
	return sb.String()
}

// DeclBackend is a Backend that records a Module.
type DeclBackend struct {
	Module *Module
}

// NewDeclBackend creates a backend recording into an empty module.
func NewDeclBackend(name string) *DeclBackend {
	return &DeclBackend{Module: &Module{Name: name}}
}

func (b *DeclBackend) add(d Decl) error {
	if _, exists := b.Module.Lookup(d.Name); exists {
		return fmt.Errorf("duplicate definition of %q", d.Name)
	}
	b.Module.Decls = append(b.Module.Decls, d)
	return nil
}

func (b *DeclBackend) DeclareFunction(fn *ast.Function) error {
	return b.add(Decl{
		Kind:      DeclFunction,
		Name:      fn.Proto.Name,
		Signature: signature(fn.Proto),
		Calls:     collectCalls(fn.Body),
	})
}

func (b *DeclBackend) DeclareStatic(static *ast.Static, external bool) error {
	kind := DeclStatic
	if external {
		kind = DeclExternStatic
	}
	mut := ""
	if static.Mutable {
		mut = "mut "
	}
	return b.add(Decl{
		Kind:      kind,
		Name:      static.Name,
		Signature: fmt.Sprintf("%s%s: %s", mut, static.Name, static.Type),
	})
}

func (b *DeclBackend) DeclareExtern(abi string, proto *ast.FuncProto) error {
	return b.add(Decl{
		Kind:      DeclExternFunction,
		Name:      proto.Name,
		Signature: signature(proto),
		ABI:       abi,
	})
}

func signature(proto *ast.FuncProto) string {
	params := make([]string, 0, len(proto.Params))
	for _, p := range proto.Params {
		params = append(params, p.Type.String())
	}
	return fmt.Sprintf("%s(%s) -> %s", proto.Name, strings.Join(params, ", "), proto.ReturnType)
}

// callCollector records the callee of every call expression it visits.
type callCollector struct {
	ast.BaseVisitor
	seen map[string]struct{}
}

func (c *callCollector) VisitCall(node *ast.Call) interface{} {
	c.seen[node.Callee.Name] = struct{}{}
	return nil
}

func collectCalls(body *ast.Block) []string {
	if body == nil {
		return nil
	}
	c := &callCollector{seen: make(map[string]struct{})}
	ast.Walk(c, body)
	if len(c.seen) == 0 {
		return nil
	}
	calls := make([]string, 0, len(c.seen))
	for name := range c.seen {
		calls = append(calls, name)
	}
	sort.Strings(calls)
	return calls
}
