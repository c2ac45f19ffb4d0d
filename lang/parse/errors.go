package parse

import "github.com/slate-lang/slate/lang/token"

// ErrKind is the closed set of raw failure codes a parse can terminate with.
// The scanner reports the kinds it detects itself; the driver fills in the
// rest. Once set to anything other than ErrNone it is never overwritten.
type ErrKind int

const (
	ErrNone ErrKind = iota
	ErrSyntax
	ErrToken
	ErrTripleQuoteEOF
	ErrStringEOL
	ErrInterrupt
	ErrNoMemory
	ErrEOF
	ErrTabSpace
	ErrOverflow
	ErrDedentMismatch
	ErrTooDeep
	ErrDecode
	ErrLineCont
	ErrBadIdentifier
	ErrBadSingle
)

var errKindNames = map[ErrKind]string{
	ErrNone:           "none",
	ErrSyntax:         "syntax",
	ErrToken:          "token",
	ErrTripleQuoteEOF: "eof-in-triple-quoted-string",
	ErrStringEOL:      "eol-in-string",
	ErrInterrupt:      "interrupt",
	ErrNoMemory:       "out-of-memory",
	ErrEOF:            "eof",
	ErrTabSpace:       "tab-space",
	ErrOverflow:       "overflow",
	ErrDedentMismatch: "dedent-mismatch",
	ErrTooDeep:        "too-deep",
	ErrDecode:         "decode",
	ErrLineCont:       "line-continuation",
	ErrBadIdentifier:  "bad-identifier",
	ErrBadSingle:      "bad-single",
}

func (k ErrKind) String() string {
	if name, ok := errKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// NoOffset marks a column offset that could not be determined, for example
// when the offending token started before the current line. Display layers
// must never render it as a column number.
const NoOffset = -1

// ErrorDetail describes a single parse failure with enough position
// information for editor-style display. It is produced once by the driver
// and only read downstream.
type ErrorDetail struct {
	Kind     ErrKind
	Filename string
	Line     int
	Offset   int
	Text     string
	Token    token.Kind
	Expected token.Kind
	Cause    error
}

// Position is the (filename, line, offset, text) tuple attached to a
// classified syntax error.
type Position struct {
	Filename string
	Line     int
	Offset   int
	Text     string
}

// Pos builds the diagnostic position tuple for this failure. Offsets that
// would display as a negative column collapse to NoOffset.
func (d *ErrorDetail) Pos() Position {
	offset := d.Offset
	if offset < 0 {
		offset = NoOffset
	}
	return Position{Filename: d.Filename, Line: d.Line, Offset: offset, Text: d.Text}
}
