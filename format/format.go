package format

import "github.com/slate-lang/slate/lang/parse"

// Encoder writes a parse tree to an output stream in one concrete format.
type Encoder interface {
	Encode(tree *parse.Node) error
}
