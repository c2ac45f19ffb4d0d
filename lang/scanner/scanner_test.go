package scanner

import (
	"testing"

	"github.com/slate-lang/slate/lang/parse"
	"github.com/slate-lang/slate/lang/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	s := New(src, "test.slate")
	var out []token.Token
	for {
		tok := s.Next()
		out = append(out, tok)
		if tok.Kind == token.EndMarker || tok.Kind == token.Error {
			return out
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func expectKinds(t *testing.T, got, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count = %d (%v), want %d (%v)", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScannerSimpleStatement(t *testing.T) {
	toks := scanAll(t, "x = 1\n")
	expectKinds(t, kinds(toks), []token.Kind{
		token.Name, token.Assign, token.Number, token.Newline, token.EndMarker,
	})
}

func TestScannerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"if", token.KwIf},
		{"elif", token.KwElif},
		{"else", token.KwElse},
		{"while", token.KwWhile},
		{"for", token.KwFor},
		{"in", token.KwIn},
		{"def", token.KwDef},
		{"return", token.KwReturn},
		{"pass", token.KwPass},
		{"break", token.KwBreak},
		{"continue", token.KwContinue},
		{"and", token.KwAnd},
		{"or", token.KwOr},
		{"not", token.KwNot},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := New(tt.input, "test.slate")
			tok := s.Next()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestScannerIndentDedent(t *testing.T) {
	toks := scanAll(t, "if x:\n    y\nz\n")
	expectKinds(t, kinds(toks), []token.Kind{
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Newline,
		token.Dedent, token.Name, token.Newline,
		token.EndMarker,
	})
}

func TestScannerDedentsAtEndOfInput(t *testing.T) {
	// Input ends with a newline, so the scanner sees the start of a final
	// empty line and closes the open blocks itself.
	toks := scanAll(t, "if x:\n    if y:\n        z\n")
	want := []token.Kind{
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Newline,
		token.Dedent, token.Dedent, token.EndMarker,
	}
	expectKinds(t, kinds(toks), want)
}

func TestScannerOpenIndentsWithoutTrailingNewline(t *testing.T) {
	// Without a trailing newline the scanner never reaches a line start,
	// so the indent stays open for the parse driver to close.
	s := New("if x:\n    y", "test.slate")
	for {
		tok := s.Next()
		if tok.Kind == token.EndMarker {
			break
		}
		if tok.Kind == token.Error {
			t.Fatalf("unexpected scan error: %v", s.ErrCode())
		}
	}
	if got := s.ConsumeIndents(); got != 1 {
		t.Errorf("ConsumeIndents = %d, want 1", got)
	}
	if got := s.ConsumeIndents(); got != 0 {
		t.Errorf("ConsumeIndents after reset = %d, want 0", got)
	}
}

func TestScannerBlankAndCommentLines(t *testing.T) {
	toks := scanAll(t, "x = 1\n\n# note\n   \ny = 2\n")
	expectKinds(t, kinds(toks), []token.Kind{
		token.Name, token.Assign, token.Number, token.Newline,
		token.Name, token.Assign, token.Number, token.Newline,
		token.EndMarker,
	})
}

func TestScannerImplicitLineJoin(t *testing.T) {
	toks := scanAll(t, "x = (1 +\n     2)\n")
	expectKinds(t, kinds(toks), []token.Kind{
		token.Name, token.Assign, token.LParen, token.Number, token.Plus,
		token.Number, token.RParen, token.Newline, token.EndMarker,
	})
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  parse.ErrKind
	}{
		{"eol in string", "x = \"abc\n", parse.ErrStringEOL},
		{"eof in string", "x = \"abc", parse.ErrStringEOL},
		{"eof in triple string", "x = \"\"\"abc\n", parse.ErrTripleQuoteEOF},
		{"inconsistent tabs", "if x:\n        y\n\tz\n", parse.ErrTabSpace},
		{"tab after spaces same width", "if x:\n        y\n \tz\n", parse.ErrTabSpace},
		{"dedent mismatch", "if x:\n    y\n  z\n", parse.ErrDedentMismatch},
		{"line continuation", "x = \\1\n", parse.ErrLineCont},
		{"bad identifier", "x\u00e9\u20ac = 1\n", parse.ErrBadIdentifier},
		{"invalid token", "x = $\n", parse.ErrToken},
		{"bad exponent", "x = 1e+\n", parse.ErrToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := scanAll(t, tt.input)
			last := toks[len(toks)-1]
			if last.Kind != token.Error {
				t.Fatalf("last token = %v, want Error", last.Kind)
			}
			s := New(tt.input, "test.slate")
			for {
				tok := s.Next()
				if tok.Kind == token.Error {
					break
				}
				if tok.Kind == token.EndMarker {
					t.Fatalf("no error token produced")
				}
			}
			if s.ErrCode() != tt.code {
				t.Errorf("ErrCode = %v, want %v", s.ErrCode(), tt.code)
			}
		})
	}
}

func TestScannerTooDeepIndent(t *testing.T) {
	src := ""
	indent := ""
	for i := 0; i < 110; i++ {
		src += indent + "if x:\n"
		indent += " "
	}
	s := New(src, "test.slate")
	for {
		tok := s.Next()
		if tok.Kind == token.Error {
			break
		}
		if tok.Kind == token.EndMarker {
			t.Fatalf("no error token produced")
		}
	}
	if s.ErrCode() != parse.ErrTooDeep {
		t.Errorf("ErrCode = %v, want %v", s.ErrCode(), parse.ErrTooDeep)
	}
}

func TestScannerDecodeError(t *testing.T) {
	s := New("x = \xff\n", "test.slate")
	tok := s.Next()
	if tok.Kind != token.Error {
		t.Fatalf("first token = %v, want Error", tok.Kind)
	}
	if s.ErrCode() != parse.ErrDecode {
		t.Errorf("ErrCode = %v, want %v", s.ErrCode(), parse.ErrDecode)
	}
	if s.ErrCause() == nil {
		t.Errorf("ErrCause = nil, want decode error")
	}
}

func TestScannerEncodingDeclaration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"first line", "# -*- coding: latin-1 -*-\nx = 1\n", "latin-1"},
		{"second line", "# comment\n# coding: utf-8\nx = 1\n", "utf-8"},
		{"third line ignored", "x = 1\ny = 2\n# coding: latin-1\n", ""},
		{"none", "x = 1\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.input, "test.slate")
			if got := s.ConsumeEncoding(); got != tt.want {
				t.Errorf("ConsumeEncoding = %q, want %q", got, tt.want)
			}
			if got := s.ConsumeEncoding(); got != "" {
				t.Errorf("second ConsumeEncoding = %q, want empty", got)
			}
		})
	}
}

func TestScannerColumnOffsetSentinel(t *testing.T) {
	// The triple-quoted string token begins on line 1, but by the time it
	// is consumed the cursor's line start has moved past it.
	s := New("s = '''a\nb''' $", "test.slate")
	var last token.Token
	for {
		last = s.Next()
		if last.Kind == token.String {
			break
		}
		if last.Kind == token.Error || last.Kind == token.EndMarker {
			t.Fatalf("no string token, got %v", last.Kind)
		}
	}
	if got := s.ColumnOffset(); got != parse.NoOffset {
		t.Errorf("ColumnOffset = %d, want NoOffset", got)
	}
}

func TestScannerPositions(t *testing.T) {
	s := New("x = 1\ny = 2\n", "test.slate")
	var names []token.Token
	for {
		tok := s.Next()
		if tok.Kind == token.EndMarker {
			break
		}
		if tok.Kind == token.Name {
			names = append(names, tok)
		}
	}
	if len(names) != 2 {
		t.Fatalf("name tokens = %d, want 2", len(names))
	}
	if names[0].Start.Line != 1 || names[0].Start.Column != 1 {
		t.Errorf("first name at %d:%d, want 1:1", names[0].Start.Line, names[0].Start.Column)
	}
	if names[1].Start.Line != 2 || names[1].Start.Column != 1 {
		t.Errorf("second name at %d:%d, want 2:1", names[1].Start.Line, names[1].Start.Column)
	}
}
