// Package scanner turns Slate source text into tokens. It tracks
// indentation with a column stack the way indentation-structured languages
// do: a deeper line opens an Indent, a shallower line closes one Dedent per
// popped level, and tab/space mixtures that change meaning under a different
// tab size are rejected.
package scanner

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/slate-lang/slate/lang/parse"
	"github.com/slate-lang/slate/lang/token"
)

const (
	tabSize       = 8
	maxIndent     = 100
	maxParenDepth = 200
)

var codingPattern = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-_.a-zA-Z0-9]+)`)

// Scanner is the token source for one parse. It satisfies parse.TokenSource.
type Scanner struct {
	src      string
	filename string

	pos       int
	lineStart int
	line      int

	lastStart      int
	startLine      int
	startLineStart int

	atLineStart    bool
	parenDepth     int
	indents        []int
	altIndents     []int
	pendingDedents int

	errcode  parse.ErrKind
	errCause error
	encoding string
	atEnd    bool
}

// New binds a scanner to source text. A declared source encoding on the
// first or second line is captured; invalid UTF-8 input fails every Next
// call with a decode error.
func New(text, filename string) *Scanner {
	s := &Scanner{
		src:         text,
		filename:    filename,
		line:        1,
		atLineStart: true,
		indents:     []int{0},
		altIndents:  []int{0},
	}
	if !utf8.ValidString(text) {
		s.errcode = parse.ErrDecode
		s.errCause = fmt.Errorf("source for %s is not valid UTF-8", filename)
		return s
	}
	s.encoding = detectEncoding(text)
	return s
}

func detectEncoding(text string) string {
	lines := strings.SplitN(text, "\n", 3)
	for i := 0; i < len(lines) && i < 2; i++ {
		if m := codingPattern.FindStringSubmatch(lines[i]); m != nil {
			return m[1]
		}
	}
	return ""
}

func (s *Scanner) Filename() string { return s.filename }

func (s *Scanner) ErrCode() parse.ErrKind { return s.errcode }

func (s *Scanner) ErrCause() error { return s.errCause }

func (s *Scanner) LineNumber() int { return s.line }

func (s *Scanner) Exhausted() bool { return s.atEnd }

func (s *Scanner) LineText() string {
	end := strings.IndexByte(s.src[s.lineStart:], '\n')
	if end < 0 {
		return s.src[s.lineStart:]
	}
	return s.src[s.lineStart : s.lineStart+end]
}

// ColumnOffset is the cursor's offset into the current line, or
// parse.NoOffset when the last token began before the line did.
func (s *Scanner) ColumnOffset() int {
	if s.lastStart < s.lineStart {
		return parse.NoOffset
	}
	return s.pos - s.lineStart
}

func (s *Scanner) Remaining() string { return s.src[s.pos:] }

// ConsumeIndents reports how many indentation levels are open and resets
// the stack, transferring responsibility for closing them to the caller.
func (s *Scanner) ConsumeIndents() int {
	n := len(s.indents) - 1
	s.indents = s.indents[:1]
	s.altIndents = s.altIndents[:1]
	return n
}

// ConsumeEncoding returns the declared encoding and clears it, so the value
// has exactly one owner.
func (s *Scanner) ConsumeEncoding() string {
	enc := s.encoding
	s.encoding = ""
	return enc
}

// Next returns the next token. After an error it keeps returning the Error
// token; after end of input it keeps returning EndMarker.
func (s *Scanner) Next() token.Token {
	if s.errcode != parse.ErrNone {
		return s.errorToken()
	}
	if s.pendingDedents > 0 {
		s.pendingDedents--
		return s.simpleToken(token.Dedent)
	}

	for {
		if s.atLineStart && s.parenDepth == 0 {
			tok, emitted := s.scanLineStart()
			if emitted {
				return tok
			}
			if s.errcode != parse.ErrNone {
				return s.errorToken()
			}
		}

		s.skipSpace()

		if s.pos >= len(s.src) {
			s.atEnd = true
			return s.simpleToken(token.EndMarker)
		}

		s.lastStart = s.pos
		s.startLine = s.line
		s.startLineStart = s.lineStart
		c := s.src[s.pos]
		switch {
		case c == '\n':
			if s.parenDepth > 0 {
				s.advanceLine()
				continue
			}
			tok := s.simpleToken(token.Newline)
			s.advanceLine()
			s.atLineStart = true
			return tok
		case c == '#':
			s.skipComment()
			continue
		case c == '\\':
			if s.pos+1 < len(s.src) && s.src[s.pos+1] == '\n' {
				s.pos += 2
				s.line++
				s.lineStart = s.pos
				continue
			}
			return s.fail(parse.ErrLineCont)
		case c == '\'' || c == '"':
			return s.scanString(c)
		case c >= '0' && c <= '9':
			return s.scanNumber()
		case isNameStart(rune(c)) || c >= utf8.RuneSelf:
			return s.scanName()
		default:
			return s.scanOperator()
		}
	}
}

// scanLineStart handles indentation at the beginning of a logical line.
// Blank and comment-only lines carry no indentation meaning and are
// skipped whole. The bool result reports whether a token was produced.
func (s *Scanner) scanLineStart() (token.Token, bool) {
	col, altcol := 0, 0
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ':
			col++
			altcol++
		case '\t':
			col = (col/tabSize + 1) * tabSize
			altcol++
		case '\r':
			// carriage return before a line feed; no width
		case '\f':
			col, altcol = 0, 0
		default:
			goto measured
		}
		s.pos++
	}
measured:
	if s.pos >= len(s.src) {
		// End of input at line start: close every open block before
		// the end marker.
		s.atLineStart = false
		s.pendingDedents = s.ConsumeIndents()
		if s.pendingDedents > 0 {
			s.pendingDedents--
			return s.simpleToken(token.Dedent), true
		}
		return token.Token{}, false
	}
	switch s.src[s.pos] {
	case '\n':
		s.advanceLine()
		return token.Token{}, false
	case '#':
		s.skipComment()
		if s.pos < len(s.src) {
			s.advanceLine()
		}
		return token.Token{}, false
	}

	s.atLineStart = false
	top := s.indents[len(s.indents)-1]
	altTop := s.altIndents[len(s.altIndents)-1]
	switch {
	case col == top:
		if altcol != altTop {
			s.fail(parse.ErrTabSpace)
			return token.Token{}, false
		}
	case col > top:
		if altcol <= altTop {
			s.fail(parse.ErrTabSpace)
			return token.Token{}, false
		}
		if len(s.indents) >= maxIndent {
			s.fail(parse.ErrTooDeep)
			return token.Token{}, false
		}
		s.indents = append(s.indents, col)
		s.altIndents = append(s.altIndents, altcol)
		return s.simpleToken(token.Indent), true
	default:
		for len(s.indents) > 1 && col < s.indents[len(s.indents)-1] {
			s.indents = s.indents[:len(s.indents)-1]
			s.altIndents = s.altIndents[:len(s.altIndents)-1]
			s.pendingDedents++
		}
		if col != s.indents[len(s.indents)-1] {
			s.fail(parse.ErrDedentMismatch)
			return token.Token{}, false
		}
		if altcol != s.altIndents[len(s.altIndents)-1] {
			s.fail(parse.ErrTabSpace)
			return token.Token{}, false
		}
		s.pendingDedents--
		return s.simpleToken(token.Dedent), true
	}
	return token.Token{}, false
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\f':
			s.pos++
		default:
			return
		}
	}
}

func (s *Scanner) skipComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *Scanner) advanceLine() {
	s.pos++ // the newline byte
	s.line++
	s.lineStart = s.pos
}

func (s *Scanner) scanName() token.Token {
	start := s.pos
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if r < utf8.RuneSelf {
			if !isNameChar(byte(r)) {
				break
			}
		} else if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return s.fail(parse.ErrBadIdentifier)
		}
		s.pos += size
	}
	literal := s.src[start:s.pos]
	return s.token(token.LookupKeyword(literal), start)
}

func (s *Scanner) scanNumber() token.Token {
	start := s.pos
	s.scanDigits()
	if s.pos < len(s.src) && s.src[s.pos] == '.' {
		s.pos++
		s.scanDigits()
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		s.pos++
		if s.pos < len(s.src) && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
			s.pos++
		}
		if s.pos >= len(s.src) || s.src[s.pos] < '0' || s.src[s.pos] > '9' {
			return s.fail(parse.ErrToken)
		}
		s.scanDigits()
	}
	return s.token(token.Number, start)
}

func (s *Scanner) scanDigits() {
	for s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
		s.pos++
	}
}

func (s *Scanner) scanString(quote byte) token.Token {
	start := s.pos
	triple := strings.HasPrefix(s.src[s.pos:], strings.Repeat(string(quote), 3))
	if triple {
		s.pos += 3
		for {
			if s.pos >= len(s.src) {
				return s.fail(parse.ErrTripleQuoteEOF)
			}
			if s.src[s.pos] == quote && strings.HasPrefix(s.src[s.pos:], strings.Repeat(string(quote), 3)) {
				s.pos += 3
				return s.token(token.String, start)
			}
			if s.src[s.pos] == '\\' && s.pos+1 < len(s.src) {
				s.pos++
			}
			if s.src[s.pos] == '\n' {
				s.line++
				s.lineStart = s.pos + 1
			}
			s.pos++
		}
	}
	s.pos++
	for {
		if s.pos >= len(s.src) || s.src[s.pos] == '\n' {
			return s.fail(parse.ErrStringEOL)
		}
		if s.src[s.pos] == quote {
			s.pos++
			return s.token(token.String, start)
		}
		if s.src[s.pos] == '\\' && s.pos+1 < len(s.src) {
			s.pos++
		}
		s.pos++
	}
}

func (s *Scanner) scanOperator() token.Token {
	start := s.pos
	c := s.src[s.pos]
	two := byte(0)
	if s.pos+1 < len(s.src) {
		two = s.src[s.pos+1]
	}

	var kind token.Kind
	size := 1
	switch c {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case ':':
		kind = token.Colon
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case '.':
		kind = token.Dot
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '=':
		if two == '=' {
			kind, size = token.EQ, 2
		} else {
			kind = token.Assign
		}
	case '<':
		if two == '=' {
			kind, size = token.LE, 2
		} else {
			kind = token.LT
		}
	case '>':
		if two == '=' {
			kind, size = token.GE, 2
		} else {
			kind = token.GT
		}
	case '!':
		if two != '=' {
			return s.fail(parse.ErrToken)
		}
		kind, size = token.NE, 2
	default:
		return s.fail(parse.ErrToken)
	}

	switch kind {
	case token.LParen, token.LBracket, token.LBrace:
		if s.parenDepth >= maxParenDepth {
			return s.fail(parse.ErrOverflow)
		}
		s.parenDepth++
	case token.RParen, token.RBracket, token.RBrace:
		if s.parenDepth > 0 {
			s.parenDepth--
		}
	}

	s.pos += size
	return s.token(kind, start)
}

func (s *Scanner) token(kind token.Kind, start int) token.Token {
	startCol := start - s.startLineStart + 1
	if startCol < 1 {
		startCol = 1
	}
	return token.Token{
		Kind:    kind,
		Literal: s.src[start:s.pos],
		Start:   token.Position{File: s.filename, Offset: start, Line: s.startLine, Column: startCol},
		End:     s.position(s.pos),
	}
}

func (s *Scanner) simpleToken(kind token.Kind) token.Token {
	return token.Token{
		Kind:  kind,
		Start: s.position(s.pos),
		End:   s.position(s.pos),
	}
}

func (s *Scanner) errorToken() token.Token {
	return token.Token{Kind: token.Error, Start: s.position(s.pos), End: s.position(s.pos)}
}

func (s *Scanner) fail(kind parse.ErrKind) token.Token {
	s.errcode = kind
	return s.errorToken()
}

func (s *Scanner) position(offset int) token.Position {
	col := offset - s.lineStart + 1
	if col < 1 {
		col = 1
	}
	return token.Position{File: s.filename, Offset: offset, Line: s.line, Column: col}
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isNameChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
