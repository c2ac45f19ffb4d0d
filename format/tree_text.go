package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/slate-lang/slate/lang/parse"
)

// TextEncoder writes an indented one-node-per-line rendering of the tree.
type TextEncoder struct {
	w io.Writer
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(tree *parse.Node) error {
	return e.write(tree, 0)
}

func (e *TextEncoder) write(n *parse.Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	var line string
	switch {
	case n.Tok != nil && n.Tok.Literal != "":
		line = fmt.Sprintf("%s%s %q", indent, n.Tok.Kind, n.Tok.Literal)
	case n.Tok != nil:
		line = fmt.Sprintf("%s%s", indent, n.Tok.Kind)
	case n.Encoding != "":
		line = fmt.Sprintf("%s%s %s", indent, n.Kind, n.Encoding)
	default:
		line = fmt.Sprintf("%s%s", indent, n.Kind)
	}
	if _, err := fmt.Fprintln(e.w, line); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := e.write(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
