// Package codegen is the back-end extension point. Code objects carry
// enough metadata to round-trip through the facade; instruction selection
// lives elsewhere.
package codegen

import "github.com/slate-lang/slate/lang/ast"

// Code is the compiled-code handle returned by the facade.
type Code struct {
	Filename string
	Flags    uint
	Optimize int
	Module   *ast.Module
}

func Generate(module *ast.Module, filename string, flags uint, optimize int) (*Code, error) {
	return &Code{
		Filename: filename,
		Flags:    flags,
		Optimize: optimize,
		Module:   module,
	}, nil
}
