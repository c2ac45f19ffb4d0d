package format

import (
	"encoding/json"
	"io"

	"github.com/slate-lang/slate/lang/parse"
)

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(tree *parse.Node) error {
	text, err := json.MarshalIndent(nodeToJSON(tree), "", "  ")
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

type jsonNode struct {
	Kind     string      `json:"kind"`
	Token    string      `json:"token,omitempty"`
	Literal  string      `json:"literal,omitempty"`
	Line     int         `json:"line,omitempty"`
	Column   int         `json:"column,omitempty"`
	Encoding string      `json:"encoding,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func nodeToJSON(n *parse.Node) *jsonNode {
	jn := &jsonNode{
		Kind:     n.Kind.String(),
		Encoding: n.Encoding,
	}
	if n.Tok != nil {
		jn.Token = n.Tok.Kind.String()
		jn.Literal = n.Tok.Literal
		jn.Line = n.Tok.Start.Line
		jn.Column = n.Tok.Start.Column
	}
	for _, c := range n.Children {
		jn.Children = append(jn.Children, nodeToJSON(c))
	}
	return jn
}
