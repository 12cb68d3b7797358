package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextToken_Operators(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []TokenType
	}{
		{"arithmetic", "+ - * / % ^", []TokenType{PLUS_OP, MINUS_OP, MUL_OP, DIV_OP, MOD_OP, POW_OP}},
		{"maximal munch eq", "= ==", []TokenType{ASSIGN_OP, EQ_OP}},
		{"maximal munch le", "< <=", []TokenType{LT_OP, LE_OP}},
		{"maximal munch ge", "> >=", []TokenType{GT_OP, GE_OP}},
		{"logical", "! != && ||", []TokenType{NOT_OP, NE_OP, AND_OP, OR_OP}},
		{"structural", "( ) { } , ;", []TokenType{LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA_DELIM, SEMICOLON_DELIM}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lex := NewLexer(tc.src)
			toks, d := lex.ConsumeTokens()
			require.Nil(t, d)
			require.Len(t, toks, len(tc.want))
			for i, want := range tc.want {
				assert.Equal(t, want, toks[i].Type)
			}
		})
	}
}

func TestNextToken_KeywordsVsIdentifiers(t *testing.T) {
	lex := NewLexer("let x = y while fn proc return end break continue if else const true false")
	toks, d := lex.ConsumeTokens()
	require.Nil(t, d)

	want := []TokenType{
		LET_KEY, IDENTIFIER_ID, ASSIGN_OP, IDENTIFIER_ID, WHILE_KEY, FN_KEY, PROC_KEY,
		RETURN_KEY, END_KEY, BREAK_KEY, CONTINUE_KEY, IF_KEY, ELSE_KEY, CONST_KEY,
		TRUE_KEY, FALSE_KEY,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Type, "token %d (%q)", i, toks[i].Literal)
	}
}

func TestNextToken_Numbers(t *testing.T) {
	cases := []struct {
		src string
	}{
		{"42"},
		{"3.14"},
		{"1e10"},
		{"1.5e-3"},
		{"2E+8"},
		{"0.001"},
	}
	for _, tc := range cases {
		lex := NewLexer(tc.src)
		tok, d := lex.NextToken()
		require.Nil(t, d)
		assert.Equal(t, NUMBER_LIT, tok.Type)
		assert.Equal(t, tc.src, tok.Literal)
	}
}

func TestNextToken_NumberExponentWithoutDigitsIsNotConsumed(t *testing.T) {
	// "1e" with no following digit: 'e' starts a new identifier token, not
	// part of the number, matching spec.md's "optional exponent" grammar.
	lex := NewLexer("1e")
	tok, d := lex.NextToken()
	require.Nil(t, d)
	assert.Equal(t, NUMBER_LIT, tok.Type)
	assert.Equal(t, "1", tok.Literal)

	tok2, d := lex.NextToken()
	require.Nil(t, d)
	assert.Equal(t, IDENTIFIER_ID, tok2.Type)
	assert.Equal(t, "e", tok2.Literal)
}

func TestNextToken_Comments(t *testing.T) {
	lex := NewLexer("1 // comment\n+ /* block\ncomment */ 2")
	toks, d := lex.ConsumeTokens()
	require.Nil(t, d)
	require.Len(t, toks, 3)
	assert.Equal(t, NUMBER_LIT, toks[0].Type)
	assert.Equal(t, PLUS_OP, toks[1].Type)
	assert.Equal(t, NUMBER_LIT, toks[2].Type)
}

func TestNextToken_UnterminatedBlockCommentIsLexError(t *testing.T) {
	lex := NewLexer("1 /* never closed")
	lex.NextToken() // consumes "1"
	_, d := lex.NextToken()
	require.NotNil(t, d)
	assert.Equal(t, "LexError", string(d.Kind))
}

func TestNextToken_IllegalCharacterIsLexError(t *testing.T) {
	lex := NewLexer("1 @ 2")
	lex.NextToken() // "1"
	_, d := lex.NextToken()
	require.NotNil(t, d)
	assert.Equal(t, "LexError", string(d.Kind))
}

func TestNextToken_LineAndColumnTracking(t *testing.T) {
	lex := NewLexer("x\ny")
	first, d := lex.NextToken()
	require.Nil(t, d)
	assert.Equal(t, 1, first.Line)

	second, d := lex.NextToken()
	require.Nil(t, d)
	assert.Equal(t, 2, second.Line)
	assert.Equal(t, 1, second.Column)
}
