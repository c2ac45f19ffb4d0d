package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  Kind
	}{
		{"if", KwIf},
		{"pass", KwPass},
		{"not", KwNot},
		{"iff", Name},
		{"If", Name},
		{"", Name},
	}
	for _, tt := range tests {
		if got := LookupKeyword(tt.ident); got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{EndMarker, "EndMarker"},
		{Newline, "Newline"},
		{KwWhile, "while"},
		{LParen, "("},
		{Kind(9999), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
