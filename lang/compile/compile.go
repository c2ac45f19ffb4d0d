// Package compile is the front-end entry point: it wires the scanner, the
// grammar engine and the parse driver together and turns parse failures into
// classified exceptions.
package compile

import (
	"github.com/slate-lang/slate/lang/ast"
	"github.com/slate-lang/slate/lang/codegen"
	"github.com/slate-lang/slate/lang/exc"
	"github.com/slate-lang/slate/lang/grammar"
	"github.com/slate-lang/slate/lang/parse"
	"github.com/slate-lang/slate/lang/scanner"
)

// DefaultFilename is used when source has no file of origin.
const DefaultFilename = "<string>"

// Flags is the compiler flag bitmask, passed through to the back end.
type Flags uint

// Parse runs the front end only and returns the parse tree, or the
// classified exception as an error.
func Parse(text, filename string, mode parse.Mode) (*parse.Node, error) {
	if filename == "" {
		filename = DefaultFilename
	}
	st := exc.NewState()
	tree := parseWithState(st, text, filename, mode)
	if tree == nil {
		return nil, st.Active()
	}
	return tree, nil
}

// Compile parses text and hands the tree to the AST builder and code
// generator. On a parse failure no code object is produced and the
// classified exception is returned as the error.
func Compile(text, filename string, mode parse.Mode, flags Flags, optimize int) (*codegen.Code, error) {
	if filename == "" {
		filename = DefaultFilename
	}
	st := exc.NewState()
	tree := parseWithState(st, text, filename, mode)
	if tree == nil {
		return nil, st.Active()
	}
	module, err := ast.Build(tree, uint(flags), filename)
	if err != nil {
		return nil, err
	}
	return codegen.Generate(module, filename, uint(flags), optimize)
}

// parseWithState runs one parse against a fresh exception slot. The state
// is cleared first: nothing from an unrelated call may leak in.
func parseWithState(st *exc.State, text, filename string, mode parse.Mode) *parse.Node {
	st.Clear()
	src := scanner.New(text, filename)
	eng := grammar.New(mode)
	out := parse.Parse(src, eng, mode)
	if !out.Ok() {
		classify(st, out.Failure)
		return nil
	}
	return out.Tree
}

// ErrorPosition extracts the position tuple from a classified syntax error,
// for editor-style display.
func ErrorPosition(err error) (parse.Position, bool) {
	ex, ok := err.(*exc.Exception)
	if !ok || !ex.Category.Is(exc.SyntaxError) {
		return parse.Position{}, false
	}
	for _, arg := range ex.Args {
		if pos, ok := arg.(parse.Position); ok {
			return pos, true
		}
	}
	return parse.Position{}, false
}

// ErrorMessage extracts the human message from a classified syntax error;
// for other errors it falls back to Error().
func ErrorMessage(err error) string {
	ex, ok := err.(*exc.Exception)
	if !ok {
		return err.Error()
	}
	if len(ex.Args) > 0 {
		if msg, ok := ex.Args[0].(string); ok {
			return msg
		}
		if cause, ok := ex.Args[0].(error); ok {
			return cause.Error()
		}
	}
	return ex.Error()
}
