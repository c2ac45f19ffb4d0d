package format

import (
	"fmt"
	"strings"

	"github.com/slate-lang/slate/lang/parse"
)

// ErrorSnippet renders a classified syntax error the way an editor or shell
// would: location header, the offending source line, and a caret under the
// failing column. When the column offset is unknown the caret line is
// omitted entirely; an unknown offset must never surface as a column.
func ErrorSnippet(message string, pos parse.Position) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d: %s\n", pos.Filename, pos.Line, message)
	if pos.Text == "" {
		return b.String()
	}
	fmt.Fprintf(&b, "    %s\n", pos.Text)
	if pos.Offset == parse.NoOffset {
		return b.String()
	}
	col := pos.Offset
	if col > len(pos.Text) {
		col = len(pos.Text)
	}
	if col > 0 {
		col--
	}
	fmt.Fprintf(&b, "    %s^\n", strings.Repeat(" ", col))
	return b.String()
}
