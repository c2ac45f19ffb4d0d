package compile

import (
	"github.com/slate-lang/slate/lang/exc"
	"github.com/slate-lang/slate/lang/parse"
	"github.com/slate-lang/slate/lang/token"
)

type classification struct {
	category *exc.Category
	message  string
}

// classifications maps every raw error kind with a fixed message to its
// exception category. Kinds with conditional behavior (none, syntax,
// interrupt, out-of-memory, decode) are handled in classify directly.
var classifications = map[parse.ErrKind]classification{
	parse.ErrToken:          {exc.SyntaxError, "invalid token"},
	parse.ErrTripleQuoteEOF: {exc.SyntaxError, "EOF while scanning triple-quoted string literal"},
	parse.ErrStringEOL:      {exc.SyntaxError, "EOL while scanning string literal"},
	parse.ErrEOF:            {exc.SyntaxError, "unexpected EOF while parsing"},
	parse.ErrTabSpace:       {exc.TabError, "inconsistent use of tabs and spaces in indentation"},
	parse.ErrOverflow:       {exc.SyntaxError, "expression too long"},
	parse.ErrDedentMismatch: {exc.IndentationError, "unindent does not match any outer indentation level"},
	parse.ErrTooDeep:        {exc.IndentationError, "too many levels of indentation"},
	parse.ErrLineCont:       {exc.SyntaxError, "unexpected character after line continuation character"},
	parse.ErrBadIdentifier:  {exc.SyntaxError, "invalid character in identifier"},
	parse.ErrBadSingle:      {exc.SyntaxError, "multiple statements found while compiling a single statement"},
}

// classify turns a parse failure into a raised exception on st. It is total
// over ErrKind: kinds outside the table raise a generic syntax error rather
// than being dropped.
func classify(st *exc.State, d *parse.ErrorDetail) {
	switch d.Kind {
	case parse.ErrNone:
		return
	case parse.ErrInterrupt:
		// Only raise when nothing else is being reported already.
		if !st.Occurred() {
			st.Raise(exc.Interrupt, exc.NoArgs{})
		}
		return
	case parse.ErrNoMemory:
		st.Raise(exc.MemoryError, exc.NoArgs{})
		return
	case parse.ErrDecode:
		var payload any = "unknown decode error"
		if d.Cause != nil {
			payload = d.Cause
		}
		st.Raise(exc.SyntaxError, exc.Positional{Values: []any{payload, d.Pos()}})
		return
	case parse.ErrSyntax:
		category, message := syntaxClassification(d)
		st.Raise(category, exc.Positional{Values: []any{message, d.Pos()}})
		return
	}

	cls, ok := classifications[d.Kind]
	if !ok {
		cls = classification{exc.SyntaxError, "unknown parsing error"}
	}
	st.Raise(cls.category, exc.Positional{Values: []any{cls.message, d.Pos()}})
}

func syntaxClassification(d *parse.ErrorDetail) (*exc.Category, string) {
	switch {
	case d.Expected == token.Indent:
		return exc.IndentationError, "expected an indented block"
	case d.Token == token.Indent:
		return exc.IndentationError, "unexpected indent"
	case d.Token == token.Dedent:
		return exc.IndentationError, "unexpected unindent"
	}
	return exc.SyntaxError, "invalid syntax"
}
