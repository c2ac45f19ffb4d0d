package parse

import (
	"errors"
	"testing"

	"github.com/slate-lang/slate/lang/token"
)

// fakeSource is a scripted token source. After the script runs out it
// behaves like a real scanner at end of input: it keeps returning the end
// marker and reports itself exhausted.
type fakeSource struct {
	tokens   []token.Token
	pos      int
	indents  int
	errcode  ErrKind
	errCause error
	encoding string
	line     int
	lineText string
	offset   int
	rest     string
	atEnd    bool
}

func (f *fakeSource) Next() token.Token {
	if f.pos < len(f.tokens) {
		tok := f.tokens[f.pos]
		f.pos++
		return tok
	}
	f.atEnd = true
	return token.Token{Kind: token.EndMarker}
}

func (f *fakeSource) ErrCode() ErrKind { return f.errcode }

func (f *fakeSource) ErrCause() error { return f.errCause }

func (f *fakeSource) Filename() string { return "fake.slate" }

func (f *fakeSource) LineNumber() int { return f.line }

func (f *fakeSource) LineText() string { return f.lineText }

func (f *fakeSource) ColumnOffset() int { return f.offset }

func (f *fakeSource) Remaining() string { return f.rest }

func (f *fakeSource) ConsumeIndents() int {
	n := f.indents
	f.indents = 0
	return n
}

func (f *fakeSource) ConsumeEncoding() string {
	enc := f.encoding
	f.encoding = ""
	return enc
}

func (f *fakeSource) Exhausted() bool { return f.atEnd }

// recordingEngine records every fed token and completes when it sees the
// end marker.
type recordingEngine struct {
	fed  []token.Kind
	tree *Node
}

func (r *recordingEngine) Feed(tok token.Token) FeedResult {
	r.fed = append(r.fed, tok.Kind)
	if tok.Kind == token.EndMarker {
		r.tree = &Node{Kind: KindFile}
		return FeedResult{Status: Done}
	}
	return FeedResult{Status: Continue}
}

func (r *recordingEngine) Tree() *Node { return r.tree }

// failingEngine fails on the first fed token.
type failingEngine struct {
	expected token.Kind
}

func (e *failingEngine) Feed(tok token.Token) FeedResult {
	return FeedResult{Status: Failed, Expected: e.expected}
}

func (e *failingEngine) Tree() *Node { return nil }

// openConstructEngine consumes tokens until the terminator, where it fails,
// like a parse stuck inside an unclosed bracket.
type openConstructEngine struct{}

func (openConstructEngine) Feed(tok token.Token) FeedResult {
	if tok.Kind == token.Newline || tok.Kind == token.EndMarker {
		return FeedResult{Status: Failed}
	}
	return FeedResult{Status: Continue}
}

func (openConstructEngine) Tree() *Node { return nil }

func tok(k token.Kind) token.Token { return token.Token{Kind: k} }

func TestParseDedentSynthesis(t *testing.T) {
	// Three open indentation levels and no trailing terminator: the driver
	// must feed exactly one newline, three dedents, then the end marker.
	src := &fakeSource{
		tokens:  []token.Token{tok(token.Name)},
		indents: 3,
	}
	eng := &recordingEngine{}
	out := Parse(src, eng, ModeFile)
	if !out.Ok() {
		t.Fatalf("Parse failed: %+v", out.Failure)
	}
	want := []token.Kind{
		token.Name, token.Newline,
		token.Dedent, token.Dedent, token.Dedent,
		token.EndMarker,
	}
	if len(eng.fed) != len(want) {
		t.Fatalf("fed %v, want %v", eng.fed, want)
	}
	for i := range want {
		if eng.fed[i] != want[i] {
			t.Errorf("fed[%d] = %v, want %v", i, eng.fed[i], want[i])
		}
	}
	if src.indents != 0 {
		t.Errorf("source indent depth = %d, want 0 after synthesis", src.indents)
	}
}

func TestParseNoTerminatorSynthesisForEmptyInput(t *testing.T) {
	src := &fakeSource{}
	eng := &recordingEngine{}
	out := Parse(src, eng, ModeFile)
	if !out.Ok() {
		t.Fatalf("Parse failed: %+v", out.Failure)
	}
	if len(eng.fed) != 1 || eng.fed[0] != token.EndMarker {
		t.Errorf("fed %v, want just the end marker", eng.fed)
	}
}

func TestParseErrorTokenCopiesScannerCode(t *testing.T) {
	cause := errors.New("boom")
	src := &fakeSource{
		tokens:   []token.Token{tok(token.Name), tok(token.Error)},
		errcode:  ErrTabSpace,
		errCause: cause,
		line:     3,
		lineText: "\ty",
		offset:   1,
	}
	out := Parse(src, &recordingEngine{}, ModeFile)
	if out.Ok() {
		t.Fatalf("Parse succeeded, want failure")
	}
	d := out.Failure
	if d.Kind != ErrTabSpace {
		t.Errorf("Kind = %v, want %v", d.Kind, ErrTabSpace)
	}
	if d.Line != 3 || d.Text != "\ty" || d.Offset != 1 {
		t.Errorf("position = (%d, %d, %q), want (3, 1, %q)", d.Line, d.Offset, d.Text, "\ty")
	}
	if d.Cause != cause {
		t.Errorf("Cause = %v, want %v", d.Cause, cause)
	}
	if d.Filename != "fake.slate" {
		t.Errorf("Filename = %q, want fake.slate", d.Filename)
	}
}

func TestParseSyntaxErrorAtEndOfInputBecomesEOF(t *testing.T) {
	src := &fakeSource{
		tokens:   []token.Token{tok(token.Name), tok(token.Assign), tok(token.LParen)},
		line:     1,
		lineText: "x = (",
		offset:   5,
	}
	out := Parse(src, openConstructEngine{}, ModeFile)
	if out.Ok() {
		t.Fatalf("Parse succeeded, want failure")
	}
	if out.Failure.Kind != ErrEOF {
		t.Errorf("Kind = %v, want %v", out.Failure.Kind, ErrEOF)
	}
}

func TestParseSyntaxErrorMidInputStaysSyntax(t *testing.T) {
	src := &fakeSource{
		tokens: []token.Token{tok(token.Name)},
	}
	eng := &failingEngine{expected: token.Indent}
	out := Parse(src, eng, ModeFile)
	if out.Ok() {
		t.Fatalf("Parse succeeded, want failure")
	}
	d := out.Failure
	if d.Kind != ErrSyntax {
		t.Errorf("Kind = %v, want %v", d.Kind, ErrSyntax)
	}
	if d.Token != token.Name {
		t.Errorf("Token = %v, want Name", d.Token)
	}
	if d.Expected != token.Indent {
		t.Errorf("Expected = %v, want Indent", d.Expected)
	}
}

func TestParseSingleModeTrailingContent(t *testing.T) {
	tests := []struct {
		name string
		rest string
		ok   bool
	}{
		{"empty", "", true},
		{"blank lines", "\n  \n", true},
		{"comment", "  # trailing note\n", true},
		{"comment no newline", "# note", true},
		{"second statement", "y = 2\n", false},
		{"content after comment", "# note\ny = 2\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{
				tokens: []token.Token{tok(token.Name), tok(token.Newline)},
				rest:   tt.rest,
			}
			eng := &singleDoneEngine{}
			out := Parse(src, eng, ModeSingle)
			if out.Ok() != tt.ok {
				t.Fatalf("Ok = %v, want %v", out.Ok(), tt.ok)
			}
			if !tt.ok {
				if out.Failure.Kind != ErrBadSingle {
					t.Errorf("Kind = %v, want %v", out.Failure.Kind, ErrBadSingle)
				}
			}
		})
	}
}

// singleDoneEngine completes on the first newline, like the single-input
// start symbol.
type singleDoneEngine struct {
	tree *Node
}

func (e *singleDoneEngine) Feed(tok token.Token) FeedResult {
	if tok.Kind == token.Newline {
		e.tree = &Node{Kind: KindSingle}
		return FeedResult{Status: Done}
	}
	return FeedResult{Status: Continue}
}

func (e *singleDoneEngine) Tree() *Node { return e.tree }

func TestParseEncodingWrapper(t *testing.T) {
	src := &fakeSource{
		tokens:   []token.Token{tok(token.Name), tok(token.Newline)},
		encoding: "latin-1",
	}
	out := Parse(src, &recordingEngine{}, ModeFile)
	if !out.Ok() {
		t.Fatalf("Parse failed: %+v", out.Failure)
	}
	root := out.Tree
	if root.Kind != KindEncodingDecl {
		t.Fatalf("root kind = %v, want EncodingDecl", root.Kind)
	}
	if root.Encoding != "latin-1" {
		t.Errorf("Encoding = %q, want latin-1", root.Encoding)
	}
	if len(root.Children) != 1 || root.Children[0].Kind != KindFile {
		t.Errorf("wrapper children = %v, want the original root", root.Children)
	}
	if src.encoding != "" {
		t.Errorf("source still owns encoding %q after transfer", src.encoding)
	}
}

func TestParseNoEncodingNoWrapper(t *testing.T) {
	src := &fakeSource{tokens: []token.Token{tok(token.Name), tok(token.Newline)}}
	out := Parse(src, &recordingEngine{}, ModeFile)
	if !out.Ok() {
		t.Fatalf("Parse failed: %+v", out.Failure)
	}
	if out.Tree.Kind == KindEncodingDecl {
		t.Errorf("unexpected encoding wrapper")
	}
}
