package token

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

type Kind int

const (
	None Kind = iota
	EndMarker
	Error
	Newline
	Indent
	Dedent

	// Literals
	Name
	Number
	String

	// Keywords
	KwIf
	KwElif
	KwElse
	KwWhile
	KwFor
	KwIn
	KwDef
	KwReturn
	KwPass
	KwBreak
	KwContinue
	KwAnd
	KwOr
	KwNot

	// Operators and punctuation
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Colon
	Comma
	Semicolon
	Dot
	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	LT
	LE
	GT
	GE
	EQ
	NE
)

var kindNames = map[Kind]string{
	None:       "None",
	EndMarker:  "EndMarker",
	Error:      "Error",
	Newline:    "Newline",
	Indent:     "Indent",
	Dedent:     "Dedent",
	Name:       "Name",
	Number:     "Number",
	String:     "String",
	KwIf:       "if",
	KwElif:     "elif",
	KwElse:     "else",
	KwWhile:    "while",
	KwFor:      "for",
	KwIn:       "in",
	KwDef:      "def",
	KwReturn:   "return",
	KwPass:     "pass",
	KwBreak:    "break",
	KwContinue: "continue",
	KwAnd:      "and",
	KwOr:       "or",
	KwNot:      "not",
	LParen:     "(",
	RParen:     ")",
	LBracket:   "[",
	RBracket:   "]",
	LBrace:     "{",
	RBrace:     "}",
	Colon:      ":",
	Comma:      ",",
	Semicolon:  ";",
	Dot:        ".",
	Assign:     "=",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	LT:         "<",
	LE:         "<=",
	GT:         ">",
	GE:         ">=",
	EQ:         "==",
	NE:         "!=",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    Kind
	Literal string
	Start   Position
	End     Position
}

var keywords = map[string]Kind{
	"if":       KwIf,
	"elif":     KwElif,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"def":      KwDef,
	"return":   KwReturn,
	"pass":     KwPass,
	"break":    KwBreak,
	"continue": KwContinue,
	"and":      KwAnd,
	"or":       KwOr,
	"not":      KwNot,
}

func LookupKeyword(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Name
}
