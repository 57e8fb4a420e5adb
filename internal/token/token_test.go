package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dibsonthis/Glide/internal/token"
)

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		ident string
		want  token.Kind
	}{
		{"true", token.TRUE},
		{"false", token.FALSE},
		{"if", token.IF},
		{"else", token.ELSE},
		{"for", token.FOR},
		{"while", token.WHILE},
		{"match", token.MATCH},
		{"ret", token.RETURN},
		{"break", token.BREAK},
		{"continue", token.CONTINUE},
		{"import", token.IMPORT},
		{"any", token.ANY},
		{"type", token.TYPE},
		{"foo", token.IDENT},
		{"x", token.IDENT},
	}
	for _, c := range cases {
		t.Run(c.ident, func(t *testing.T) {
			assert.Equal(t, c.want, token.LookupIdent(c.ident))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "IDENT", token.IDENT.String())
	assert.Equal(t, "ARROW", token.ARROW.String())
	assert.Equal(t, "UNKNOWN", token.Kind(9999).String())
}

func TestTokenString(t *testing.T) {
	tok := token.Token{Kind: token.IDENT, Lexeme: "x", Line: 1, Column: 2}
	assert.Equal(t, `IDENT("x")@1:2`, tok.String())
}
