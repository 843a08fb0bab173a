package scanner

import (
	"testing"

	"clockwork/internal/token"
)

func scanAll(src string) []token.Token {
	s := New(src)
	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestNextBasicTokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Type
	}{
		{
			name: "arithmetic expression",
			src:  "1 + 2 * 3",
			want: []token.Type{token.NUMBER, token.PLUS, token.NUMBER, token.STAR, token.NUMBER, token.EOF},
		},
		{
			name: "let declaration",
			src:  "let mut x = 5;",
			want: []token.Type{token.LET, token.MUT, token.IDENTIFIER, token.EQUAL, token.NUMBER, token.SEMICOLON, token.EOF},
		},
		{
			name: "comparison operators",
			src:  "a <= b >= c != d == e",
			want: []token.Type{
				token.IDENTIFIER, token.LESS_EQUAL, token.IDENTIFIER, token.GREATER_EQUAL,
				token.IDENTIFIER, token.BANG_EQUAL, token.IDENTIFIER, token.EQUAL_EQUAL,
				token.IDENTIFIER, token.EOF,
			},
		},
		{
			name: "line comment is skipped",
			src:  "1 // two\n2",
			want: []token.Type{token.NUMBER, token.NUMBER, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := scanAll(tt.src)
			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d (%v)", len(toks), len(tt.want), toks)
			}
			for i, tok := range toks {
				if tok.Type != tt.want[i] {
					t.Errorf("token %d: got %s, want %s", i, tok.Type, tt.want[i])
				}
			}
		})
	}
}

func TestNumberBases(t *testing.T) {
	tests := []struct {
		src      string
		wantBase token.Base
	}{
		{"0b101", token.Binary},
		{"0o17", token.Octal},
		{"0xFF", token.Hex},
		{"42", token.Decimal},
	}

	for _, tt := range tests {
		toks := scanAll(tt.src)
		if toks[0].Base != tt.wantBase {
			t.Errorf("%q: got base %v, want %v", tt.src, toks[0].Base, tt.wantBase)
		}
	}
}

func TestStringLiteralAndUnquote(t *testing.T) {
	toks := scanAll(`"hello world"`)
	if toks[0].Type != token.STRING {
		t.Fatalf("got %s, want STRING", toks[0].Type)
	}
	if got, want := Unquote(toks[0].Lexeme), "hello world"; got != want {
		t.Errorf("Unquote() = %q, want %q", got, want)
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	toks := scanAll(`"never closes`)
	if toks[0].Type != token.ERROR {
		t.Fatalf("got %s, want ERROR", toks[0].Type)
	}
}

func TestKeywordsAreNotIdentifiers(t *testing.T) {
	toks := scanAll("while true and false or null")
	want := []token.Type{token.WHILE, token.TRUE, token.AND, token.FALSE, token.OR, token.NULL, token.EOF}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Errorf("token %d: got %s, want %s", i, tok.Type, want[i])
		}
	}
}
