// Package ast is the extension point between the parse tree and the back
// end. The typed tree is not built yet; Build records what a real builder
// would need and passes the parse tree through.
package ast

import "github.com/slate-lang/slate/lang/parse"

// Module is the typed-syntax-tree handle handed to code generation.
type Module struct {
	Filename string
	Flags    uint
	Encoding string
	Root     *parse.Node
}

// Build converts a completed parse tree into a module. An encoding
// declaration wrapper, when present, is unwrapped here: the module owns the
// encoding from this point on.
func Build(tree *parse.Node, flags uint, filename string) (*Module, error) {
	m := &Module{Filename: filename, Flags: flags, Root: tree}
	if tree.Kind == parse.KindEncodingDecl {
		m.Encoding = tree.Encoding
		if len(tree.Children) == 1 {
			m.Root = tree.Children[0]
		}
	}
	return m, nil
}
