package parse

import "github.com/slate-lang/slate/lang/token"

type NodeKind int

const (
	KindFile NodeKind = iota
	KindSingle
	KindEval
	KindStatement
	KindSimpleStmt
	KindCompoundStmt
	KindSuite
	KindExpr
	KindTerminal
	KindEncodingDecl
)

var nodeKindNames = map[NodeKind]string{
	KindFile:         "File",
	KindSingle:       "Single",
	KindEval:         "Eval",
	KindStatement:    "Statement",
	KindSimpleStmt:   "SimpleStmt",
	KindCompoundStmt: "CompoundStmt",
	KindSuite:        "Suite",
	KindExpr:         "Expr",
	KindTerminal:     "Terminal",
	KindEncodingDecl: "EncodingDecl",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is a concrete parse tree node. Leaves carry the token they were built
// from; the encoding-declaration wrapper carries the declared source encoding
// and exactly one child, the real root.
type Node struct {
	Kind     NodeKind
	Tok      *token.Token
	Encoding string
	Children []*Node
}

func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Leaves returns the tokens of the tree in source order.
func (n *Node) Leaves() []token.Token {
	var out []token.Token
	n.walkLeaves(&out)
	return out
}

func (n *Node) walkLeaves(out *[]token.Token) {
	if n.Tok != nil {
		*out = append(*out, *n.Tok)
	}
	for _, c := range n.Children {
		c.walkLeaves(out)
	}
}
