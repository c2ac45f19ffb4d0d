package format

import (
	"testing"

	"github.com/slate-lang/slate/lang/parse"
)

func TestErrorSnippet(t *testing.T) {
	tests := []struct {
		name    string
		message string
		pos     parse.Position
		want    string
	}{
		{
			"caret under failing column",
			"unexpected EOF while parsing",
			parse.Position{Filename: "prog.slate", Line: 1, Offset: 5, Text: "x = ("},
			"prog.slate:1: unexpected EOF while parsing\n" +
				"    x = (\n" +
				"        ^\n",
		},
		{
			"unknown offset omits the caret",
			"EOF while scanning triple-quoted string literal",
			parse.Position{Filename: "prog.slate", Line: 3, Offset: parse.NoOffset, Text: "never closed"},
			"prog.slate:3: EOF while scanning triple-quoted string literal\n" +
				"    never closed\n",
		},
		{
			"no source line",
			"unexpected EOF while parsing",
			parse.Position{Filename: "<string>", Line: 1, Offset: parse.NoOffset},
			"<string>:1: unexpected EOF while parsing\n",
		},
		{
			"offset past end of line clamps",
			"invalid syntax",
			parse.Position{Filename: "f", Line: 2, Offset: 99, Text: "abc"},
			"f:2: invalid syntax\n" +
				"    abc\n" +
				"      ^\n",
		},
		{
			"offset at first column",
			"unexpected indent",
			parse.Position{Filename: "f", Line: 2, Offset: 0, Text: "  y"},
			"f:2: unexpected indent\n" +
				"      y\n" +
				"    ^\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorSnippet(tt.message, tt.pos); got != tt.want {
				t.Errorf("ErrorSnippet() = %q, want %q", got, tt.want)
			}
		})
	}
}
