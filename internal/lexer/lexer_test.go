package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dibsonthis/Glide/internal/lexer"
	"github.com/dibsonthis/Glide/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeArithmetic(t *testing.T) {
	toks := lexer.Tokenize("a = 1 + 2 * 3")
	assert.Equal(t, []token.Kind{
		token.IDENT, token.ASSIGN, token.INT, token.PLUS, token.INT,
		token.STAR, token.INT, token.EOF,
	}, kinds(toks))
}

func TestTokenizeOperatorsAndPunctuation(t *testing.T) {
	toks := lexer.Tokenize(`x::T == y != z <= w >= v >> f .. g ... h`)
	got := kinds(toks)
	assert.Contains(t, got, token.DOUBLE_COLON)
	assert.Contains(t, got, token.EQ)
	assert.Contains(t, got, token.NOT_EQ)
	assert.Contains(t, got, token.LT_EQ)
	assert.Contains(t, got, token.GT_EQ)
	assert.Contains(t, got, token.PIPE_ARROW)
	assert.Contains(t, got, token.DOUBLE_DOT)
	assert.Contains(t, got, token.TRIPLE_DOT)
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks := lexer.Tokenize(`"a\nb\t\"c\\d"`)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "a\nb\t\"c\\d", toks[0].Lexeme)
}

func TestTokenizeFloatVsInt(t *testing.T) {
	toks := lexer.Tokenize("1 1.5 1.")
	assert.Equal(t, token.INT, toks[0].Kind)
	assert.Equal(t, token.FLOAT, toks[1].Kind)
	assert.Equal(t, "1.5", toks[1].Lexeme)
	// "1." with no trailing digit is not a float: the '.' starts its own token.
	assert.Equal(t, token.INT, toks[2].Kind)
	assert.Equal(t, "1", toks[2].Lexeme)
	assert.Equal(t, token.DOT, toks[3].Kind)
}

func TestTokenizeCommentsSkipped(t *testing.T) {
	toks := lexer.Tokenize("a // line comment\nb /* block\ncomment */ c")
	got := kinds(toks)
	assert.NotContains(t, got, token.ILLEGAL)
	var idents []string
	for _, tk := range toks {
		if tk.Kind == token.IDENT {
			idents = append(idents, tk.Lexeme)
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, idents)
}

func TestTokenizeNewlineTracked(t *testing.T) {
	toks := lexer.Tokenize("a\nb")
	assert.Equal(t, 1, toks[0].Line)
	// skip the NEWLINE token to reach "b"
	assert.Equal(t, token.NEWLINE, toks[1].Kind)
	assert.Equal(t, 2, toks[2].Line)
}

func TestTokenizeIllegalChar(t *testing.T) {
	toks := lexer.Tokenize("a & b")
	assert.Equal(t, token.ILLEGAL, toks[1].Kind)
}

func TestTokenizeUnderscore(t *testing.T) {
	toks := lexer.Tokenize("_")
	assert.Equal(t, token.UNDERSCORE, toks[0].Kind)
}
