package parse

import "github.com/slate-lang/slate/lang/token"

// Mode selects the grammar start symbol.
type Mode int

const (
	// ModeSingle parses exactly one statement, as typed at a REPL prompt.
	ModeSingle Mode = iota
	// ModeFile parses a whole module.
	ModeFile
	// ModeEval parses a single expression.
	ModeEval
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeFile:
		return "file"
	case ModeEval:
		return "eval"
	}
	return "unknown"
}

// TokenSource produces the token stream for one parse and exposes the cursor
// state the driver needs for corrective-token synthesis and diagnostics.
type TokenSource interface {
	// Next returns the next token. At end of input it keeps returning an
	// EndMarker token; on a lexical error it returns an Error token and
	// ErrCode reports why.
	Next() token.Token

	// ErrCode is the terminal error code after Next returned an Error
	// token, or ErrNone.
	ErrCode() ErrKind

	// Filename is the name the source was bound to.
	Filename() string

	// LineNumber is the 1-based number of the line the cursor is on.
	LineNumber() int

	// LineText is the text of the line the cursor is on.
	LineText() string

	// ColumnOffset is the cursor's offset within the current line, or
	// NoOffset when the last token started before the current line.
	ColumnOffset() int

	// Remaining is the unconsumed input after the cursor.
	Remaining() string

	// ConsumeIndents returns the number of open indentation levels and
	// resets the depth to zero.
	ConsumeIndents() int

	// ConsumeEncoding returns the declared source encoding, if any, and
	// clears it so ownership transfers to the caller.
	ConsumeEncoding() string

	// Exhausted reports whether Next has reached the end of input and
	// started returning end markers.
	Exhausted() bool

	// ErrCause is the underlying error behind a decode failure, if any.
	ErrCause() error
}

// FeedStatus is the grammar engine's verdict on one token.
type FeedStatus int

const (
	// Continue means the token was consumed and more input is expected.
	Continue FeedStatus = iota
	// Done means the token completed the start symbol.
	Done
	// Failed means the token cannot extend any parse.
	Failed
)

// FeedResult carries the engine's verdict plus, on failure, the single token
// kind the engine would have accepted, when there is exactly one.
type FeedResult struct {
	Status   FeedStatus
	Expected token.Kind
}

// Engine consumes tokens one at a time against the grammar and builds the
// parse tree as a side effect.
type Engine interface {
	Feed(tok token.Token) FeedResult
	// Tree returns the completed parse tree after Feed reported Done.
	Tree() *Node
}

// Outcome is the result of one parse: exactly one of Tree and Failure is
// set, and neither is mutated after Parse returns.
type Outcome struct {
	Tree    *Node
	Failure *ErrorDetail
}

func (o Outcome) Ok() bool { return o.Failure == nil }

// Parse pulls tokens from ts and feeds them to eng until the grammar
// completes or an error terminates the parse. At end of input it substitutes
// a statement terminator for the end marker and closes any open indentation
// blocks before letting the end marker through, so block structure always
// closes even when the input lacks a trailing newline.
func Parse(ts TokenSource, eng Engine, mode Mode) Outcome {
	detail := &ErrorDetail{Kind: ErrNone, Filename: ts.Filename(), Offset: NoOffset}
	started := false
	pendingDedents := 0

	var tree *Node
	for tree == nil {
		var tok token.Token
		synthetic := false
		if pendingDedents > 0 {
			pendingDedents--
			tok = token.Token{Kind: token.Dedent}
			synthetic = true
		} else {
			tok = ts.Next()
		}

		if tok.Kind == token.Error {
			detail.Kind = ts.ErrCode()
			detail.Cause = ts.ErrCause()
			break
		}

		if tok.Kind == token.EndMarker && started {
			tok.Kind = token.Newline
			tok.Literal = ""
			started = false
			pendingDedents = ts.ConsumeIndents()
		} else if !synthetic {
			started = true
		}

		res := eng.Feed(tok)
		if res.Status == Failed {
			detail.Kind = ErrSyntax
			detail.Token = tok.Kind
			detail.Expected = res.Expected
			break
		}
		if res.Status == Done {
			tree = eng.Tree()
		}
	}

	if tree != nil && mode == ModeSingle {
		if !onlyTrivia(ts.Remaining()) {
			detail.Kind = ErrBadSingle
			tree = nil
		}
	}

	if tree == nil {
		detail.Line = ts.LineNumber()
		detail.Offset = ts.ColumnOffset()
		detail.Text = ts.LineText()
		if detail.Kind == ErrNone || (detail.Kind == ErrSyntax && ts.Exhausted()) {
			detail.Kind = ErrEOF
		}
		return Outcome{Failure: detail}
	}

	if enc := ts.ConsumeEncoding(); enc != "" {
		tree = &Node{Kind: KindEncodingDecl, Encoding: enc, Children: []*Node{tree}}
	}
	return Outcome{Tree: tree}
}

// onlyTrivia reports whether rest holds nothing but whitespace and
// #-comments, which is all that may follow a statement in single mode.
func onlyTrivia(rest string) bool {
	i := 0
	for i < len(rest) {
		switch rest[i] {
		case ' ', '\t', '\n', '\r', '\f':
			i++
		case '#':
			for i < len(rest) && rest[i] != '\n' {
				i++
			}
		default:
			return false
		}
	}
	return true
}
