// Package grammar implements the incremental engine that consumes tokens
// one at a time against the Slate grammar. The engine is a pushdown machine
// over a predictive table: nonterminals on the stack expand by lookahead,
// terminals must match the fed token. The parse tree is built as tokens are
// shifted.
package grammar

import (
	"github.com/slate-lang/slate/lang/parse"
	"github.com/slate-lang/slate/lang/token"
)

type nonterm int

const (
	ntFile nonterm = iota
	ntSingle
	ntEval
	ntEvalEnd
	ntFileItems
	ntStmt
	ntSimpleStmt
	ntSmallStmt
	ntReturnArg
	ntAssignRest
	ntCompoundStmt
	ntElseTail
	ntSuite
	ntSuiteStmts
	ntParamList
	ntParamRest
	ntExpr
	ntOrRest
	ntAndExpr
	ntAndRest
	ntNotExpr
	ntComparison
	ntCompRest
	ntArith
	ntArithRest
	ntTerm
	ntTermRest
	ntFactor
	ntAtom
	ntParenBody
	ntListBody
	ntExprListRest
	ntTrailers
	ntArgsBody
)

// symbol is a stack entry: a terminal token kind, a nonterminal offset by
// ntBase, or symClose which pops one level off the node stack.
type symbol int

const (
	symClose symbol = -1
	ntBase   symbol = 1000
)

func term(k token.Kind) symbol { return symbol(k) }

func nt(n nonterm) symbol { return ntBase + symbol(n) }

func (s symbol) isTerm() bool { return s >= 0 && s < ntBase }

func (s symbol) kind() token.Kind { return token.Kind(s) }

func (s symbol) nonterm() nonterm { return nonterm(s - ntBase) }

// Engine is the concrete grammar engine. One Engine drives one parse.
type Engine struct {
	stack []symbol
	nodes []*parse.Node
	root  *parse.Node
	done  bool
}

// New returns an engine initialized for the given start symbol.
func New(mode parse.Mode) *Engine {
	var root *parse.Node
	var start nonterm
	switch mode {
	case parse.ModeSingle:
		root = &parse.Node{Kind: parse.KindSingle}
		start = ntSingle
	case parse.ModeEval:
		root = &parse.Node{Kind: parse.KindEval}
		start = ntEval
	default:
		root = &parse.Node{Kind: parse.KindFile}
		start = ntFile
	}
	return &Engine{
		stack: []symbol{nt(start)},
		nodes: []*parse.Node{root},
		root:  root,
	}
}

// Tree returns the completed parse tree. It is only valid after Feed
// reported Done.
func (e *Engine) Tree() *parse.Node { return e.root }

// Feed advances the parse by one token. The token is consumed exactly once;
// the result says whether the grammar wants more input, completed the start
// symbol, or cannot accept the token.
func (e *Engine) Feed(tok token.Token) parse.FeedResult {
	if e.done {
		return parse.FeedResult{Status: parse.Failed}
	}
	for {
		if len(e.stack) == 0 {
			// The start symbol closed by epsilon productions while
			// this token was pending; the parse is complete.
			e.done = true
			return parse.FeedResult{Status: parse.Done}
		}
		top := e.stack[len(e.stack)-1]
		switch {
		case top == symClose:
			e.stack = e.stack[:len(e.stack)-1]
			e.nodes = e.nodes[:len(e.nodes)-1]
		case top.isTerm():
			if top.kind() != tok.Kind {
				return parse.FeedResult{Status: parse.Failed, Expected: top.kind()}
			}
			e.stack = e.stack[:len(e.stack)-1]
			e.shift(tok)
			e.drainClosers()
			if len(e.stack) == 0 {
				e.done = true
				return parse.FeedResult{Status: parse.Done}
			}
			return parse.FeedResult{Status: parse.Continue}
		default:
			prod, ok := predict(top.nonterm(), tok.Kind)
			if !ok {
				return parse.FeedResult{Status: parse.Failed}
			}
			e.stack = e.stack[:len(e.stack)-1]
			e.expand(top.nonterm(), prod)
		}
	}
}

// shift attaches the consumed token as a leaf of the current node.
func (e *Engine) shift(tok token.Token) {
	t := tok
	cur := e.nodes[len(e.nodes)-1]
	cur.AddChild(&parse.Node{Kind: parse.KindTerminal, Tok: &t})
}

// drainClosers pops node scopes whose productions are fully matched, so a
// completed start symbol is detected as soon as its last token is consumed.
func (e *Engine) drainClosers() {
	for len(e.stack) > 0 && e.stack[len(e.stack)-1] == symClose {
		e.stack = e.stack[:len(e.stack)-1]
		e.nodes = e.nodes[:len(e.nodes)-1]
	}
}

// expand replaces a nonterminal with its production. Node-worthy
// nonterminals open a new tree node scoped by a close marker.
func (e *Engine) expand(n nonterm, prod []symbol) {
	if kind, ok := nodeKinds[n]; ok {
		cur := e.nodes[len(e.nodes)-1]
		child := &parse.Node{Kind: kind}
		cur.AddChild(child)
		e.nodes = append(e.nodes, child)
		e.stack = append(e.stack, symClose)
	}
	for i := len(prod) - 1; i >= 0; i-- {
		e.stack = append(e.stack, prod[i])
	}
}

// nodeKinds lists the nonterminals that materialize a tree node. The rest
// are transparent and attach their tokens to the enclosing node.
var nodeKinds = map[nonterm]parse.NodeKind{
	ntStmt:         parse.KindStatement,
	ntSimpleStmt:   parse.KindSimpleStmt,
	ntCompoundStmt: parse.KindCompoundStmt,
	ntSuite:        parse.KindSuite,
	ntExpr:         parse.KindExpr,
}

func startsExpr(k token.Kind) bool {
	switch k {
	case token.Name, token.Number, token.String,
		token.LParen, token.LBracket,
		token.KwNot, token.Plus, token.Minus:
		return true
	}
	return false
}

func startsSmallStmt(k token.Kind) bool {
	switch k {
	case token.KwPass, token.KwBreak, token.KwContinue, token.KwReturn:
		return true
	}
	return startsExpr(k)
}

func startsCompoundStmt(k token.Kind) bool {
	switch k {
	case token.KwIf, token.KwWhile, token.KwFor, token.KwDef:
		return true
	}
	return false
}

func startsStmt(k token.Kind) bool {
	return startsSmallStmt(k) || startsCompoundStmt(k)
}

func isCompareOp(k token.Kind) bool {
	switch k {
	case token.LT, token.LE, token.GT, token.GE, token.EQ, token.NE:
		return true
	}
	return false
}

// predict returns the production for nonterminal n under lookahead k.
// Nonterminals with an epsilon alternative return an empty production when
// no other alternative applies; the others report failure.
func predict(n nonterm, k token.Kind) ([]symbol, bool) {
	switch n {
	case ntFile:
		return []symbol{nt(ntFileItems), term(token.EndMarker)}, true
	case ntFileItems:
		if k == token.Newline {
			return []symbol{term(token.Newline), nt(ntFileItems)}, true
		}
		if startsStmt(k) {
			return []symbol{nt(ntStmt), nt(ntFileItems)}, true
		}
		return nil, true
	case ntSingle:
		switch {
		case k == token.Newline:
			return []symbol{term(token.Newline)}, true
		case startsCompoundStmt(k):
			return []symbol{nt(ntCompoundStmt)}, true
		case startsSmallStmt(k):
			return []symbol{nt(ntSimpleStmt)}, true
		}
		return nil, false
	case ntEval:
		return []symbol{nt(ntExpr), nt(ntEvalEnd)}, true
	case ntEvalEnd:
		switch k {
		case token.Newline:
			return []symbol{term(token.Newline), nt(ntEvalEnd)}, true
		case token.EndMarker:
			return []symbol{term(token.EndMarker)}, true
		}
		return nil, false
	case ntStmt:
		switch {
		case startsCompoundStmt(k):
			return []symbol{nt(ntCompoundStmt)}, true
		case startsSmallStmt(k):
			return []symbol{nt(ntSimpleStmt)}, true
		}
		return nil, false
	case ntSimpleStmt:
		return []symbol{nt(ntSmallStmt), term(token.Newline)}, true
	case ntSmallStmt:
		switch k {
		case token.KwPass:
			return []symbol{term(token.KwPass)}, true
		case token.KwBreak:
			return []symbol{term(token.KwBreak)}, true
		case token.KwContinue:
			return []symbol{term(token.KwContinue)}, true
		case token.KwReturn:
			return []symbol{term(token.KwReturn), nt(ntReturnArg)}, true
		}
		if startsExpr(k) {
			return []symbol{nt(ntExpr), nt(ntAssignRest)}, true
		}
		return nil, false
	case ntReturnArg:
		if startsExpr(k) {
			return []symbol{nt(ntExpr)}, true
		}
		return nil, true
	case ntAssignRest:
		if k == token.Assign {
			return []symbol{term(token.Assign), nt(ntExpr), nt(ntAssignRest)}, true
		}
		return nil, true
	case ntCompoundStmt:
		switch k {
		case token.KwIf:
			return []symbol{term(token.KwIf), nt(ntExpr), term(token.Colon), nt(ntSuite), nt(ntElseTail)}, true
		case token.KwWhile:
			return []symbol{term(token.KwWhile), nt(ntExpr), term(token.Colon), nt(ntSuite)}, true
		case token.KwFor:
			return []symbol{term(token.KwFor), term(token.Name), term(token.KwIn), nt(ntExpr), term(token.Colon), nt(ntSuite)}, true
		case token.KwDef:
			return []symbol{term(token.KwDef), term(token.Name), term(token.LParen), nt(ntParamList), term(token.RParen), term(token.Colon), nt(ntSuite)}, true
		}
		return nil, false
	case ntElseTail:
		switch k {
		case token.KwElif:
			return []symbol{term(token.KwElif), nt(ntExpr), term(token.Colon), nt(ntSuite), nt(ntElseTail)}, true
		case token.KwElse:
			return []symbol{term(token.KwElse), term(token.Colon), nt(ntSuite)}, true
		}
		return nil, true
	case ntSuite:
		if k == token.Newline {
			return []symbol{term(token.Newline), term(token.Indent), nt(ntStmt), nt(ntSuiteStmts), term(token.Dedent)}, true
		}
		if startsSmallStmt(k) {
			return []symbol{nt(ntSimpleStmt)}, true
		}
		return nil, false
	case ntSuiteStmts:
		if startsStmt(k) {
			return []symbol{nt(ntStmt), nt(ntSuiteStmts)}, true
		}
		return nil, true
	case ntParamList:
		if k == token.Name {
			return []symbol{term(token.Name), nt(ntParamRest)}, true
		}
		return nil, true
	case ntParamRest:
		if k == token.Comma {
			return []symbol{term(token.Comma), term(token.Name), nt(ntParamRest)}, true
		}
		return nil, true
	case ntExpr:
		return []symbol{nt(ntAndExpr), nt(ntOrRest)}, true
	case ntOrRest:
		if k == token.KwOr {
			return []symbol{term(token.KwOr), nt(ntAndExpr), nt(ntOrRest)}, true
		}
		return nil, true
	case ntAndExpr:
		return []symbol{nt(ntNotExpr), nt(ntAndRest)}, true
	case ntAndRest:
		if k == token.KwAnd {
			return []symbol{term(token.KwAnd), nt(ntNotExpr), nt(ntAndRest)}, true
		}
		return nil, true
	case ntNotExpr:
		if k == token.KwNot {
			return []symbol{term(token.KwNot), nt(ntNotExpr)}, true
		}
		return []symbol{nt(ntComparison)}, true
	case ntComparison:
		return []symbol{nt(ntArith), nt(ntCompRest)}, true
	case ntCompRest:
		if isCompareOp(k) {
			return []symbol{term(k), nt(ntArith), nt(ntCompRest)}, true
		}
		return nil, true
	case ntArith:
		return []symbol{nt(ntTerm), nt(ntArithRest)}, true
	case ntArithRest:
		if k == token.Plus || k == token.Minus {
			return []symbol{term(k), nt(ntTerm), nt(ntArithRest)}, true
		}
		return nil, true
	case ntTerm:
		return []symbol{nt(ntFactor), nt(ntTermRest)}, true
	case ntTermRest:
		if k == token.Star || k == token.Slash || k == token.Percent {
			return []symbol{term(k), nt(ntFactor), nt(ntTermRest)}, true
		}
		return nil, true
	case ntFactor:
		if k == token.Plus || k == token.Minus {
			return []symbol{term(k), nt(ntFactor)}, true
		}
		return []symbol{nt(ntAtom), nt(ntTrailers)}, true
	case ntAtom:
		switch k {
		case token.Name:
			return []symbol{term(token.Name)}, true
		case token.Number:
			return []symbol{term(token.Number)}, true
		case token.String:
			return []symbol{term(token.String)}, true
		case token.LParen:
			return []symbol{term(token.LParen), nt(ntParenBody)}, true
		case token.LBracket:
			return []symbol{term(token.LBracket), nt(ntListBody)}, true
		}
		return nil, false
	case ntParenBody:
		if k == token.RParen {
			return []symbol{term(token.RParen)}, true
		}
		return []symbol{nt(ntExpr), term(token.RParen)}, true
	case ntListBody:
		if k == token.RBracket {
			return []symbol{term(token.RBracket)}, true
		}
		return []symbol{nt(ntExpr), nt(ntExprListRest), term(token.RBracket)}, true
	case ntExprListRest:
		if k == token.Comma {
			return []symbol{term(token.Comma), nt(ntExpr), nt(ntExprListRest)}, true
		}
		return nil, true
	case ntTrailers:
		switch k {
		case token.LParen:
			return []symbol{term(token.LParen), nt(ntArgsBody), nt(ntTrailers)}, true
		case token.LBracket:
			return []symbol{term(token.LBracket), nt(ntExpr), term(token.RBracket), nt(ntTrailers)}, true
		case token.Dot:
			return []symbol{term(token.Dot), term(token.Name), nt(ntTrailers)}, true
		}
		return nil, true
	case ntArgsBody:
		if k == token.RParen {
			return []symbol{term(token.RParen)}, true
		}
		return []symbol{nt(ntExpr), nt(ntExprListRest), term(token.RParen)}, true
	}
	return nil, false
}
