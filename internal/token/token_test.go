package token

import "testing"

func TestKeywordsMapCoversReservedWords(t *testing.T) {
	tests := []struct {
		word string
		want Type
	}{
		{"let", LET},
		{"mut", MUT},
		{"print", PRINT},
		{"while", WHILE},
		{"return", RETURN},
	}
	for _, tt := range tests {
		if got, ok := Keywords[tt.word]; !ok || got != tt.want {
			t.Errorf("Keywords[%q] = %v, %v, want %v, true", tt.word, got, ok, tt.want)
		}
	}
}

func TestTypeStringUnknown(t *testing.T) {
	if got := Type(9999).String(); got != "UNKNOWN" {
		t.Errorf("String() of an unregistered type = %q, want UNKNOWN", got)
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: IDENTIFIER, Lexeme: "foo", Line: 3}
	got := tok.String()
	want := `Token{IDENTIFIER "foo" line 3}`
	if got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}
