// Package codegen is the boundary between the parser and a code generator.
//
// Generate walks a parsed crate in source order and hands every item to a
// Backend. DeclBackend is the backend shipped with the front end: it records
// a summary of the declarations without generating machine code.
package codegen

import (
	"fmt"

	"github.com/murust-lang/murust/internal/ast"
)

// Backend receives the items of a crate in source order.
type Backend interface {
	// DeclareFunction is called for each function definition.
	DeclareFunction(fn *ast.Function) error
	// DeclareStatic is called for each static item. external is set for
	// statics declared inside an extern block.
	DeclareStatic(static *ast.Static, external bool) error
	// DeclareExtern is called for each function declared in an extern block.
	DeclareExtern(abi string, proto *ast.FuncProto) error
}

// Generate hands the items of crate to backend. It stops at the first error.
func Generate(crate *ast.Crate, backend Backend) error {
	if crate == nil {
		return fmt.Errorf("codegen: nil crate")
	}

	for _, item := range crate.Items {
		if err := generateItem(item, backend); err != nil {
			return fmt.Errorf("crate %s: %w", crate.Name, err)
		}
	}

	return nil
}

func generateItem(item ast.Item, backend Backend) error {
	switch it := item.(type) {
	case *ast.Function:
		return backend.DeclareFunction(it)
	case *ast.Static:
		return backend.DeclareStatic(it, false)
	case *ast.Extern:
		for _, ext := range it.Items {
			var err error
			switch e := ext.(type) {
			case *ast.FuncProto:
				err = backend.DeclareExtern(it.ABI, e)
			case *ast.Static:
				err = backend.DeclareStatic(e, true)
			default:
				err = fmt.Errorf("unsupported extern item %T", ext)
			}
			if err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported item %T", item)
	}
}
