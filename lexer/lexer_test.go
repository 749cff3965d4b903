package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielcastelluccio/barelyc/token"
)

func collect(input string) []token.Token {
	l := New(input)
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return out
}

// Matches §8 Testable Property 1 of the specification verbatim.
func TestFunctionDeclaration(t *testing.T) {
	input := `function f(x integer) : (integer) { return x; }`

	want := []token.Type{
		token.KEYWORD, token.NAME,
		token.OPEN_PAREN, token.NAME, token.NAME, token.CLOSE_PAREN,
		token.COLON,
		token.OPEN_PAREN, token.NAME, token.CLOSE_PAREN,
		token.OPEN_BRACE,
		token.KEYWORD, token.NAME, token.SEMICOLON,
		token.CLOSE_BRACE,
		token.EOF,
	}

	toks := collect(input)
	require_len(t, toks, want)
	for i, w := range want {
		assert.Equal(t, w, toks[i].Type, "token %d", i)
	}
	assert.Equal(t, "function", toks[0].Literal)
	assert.Equal(t, "f", toks[1].Literal)
	assert.Equal(t, "return", toks[11].Literal)
}

func require_len(t *testing.T, got []token.Token, want []token.Type) {
	t.Helper()
	assert.Len(t, got, len(want))
}

func TestIntegerAndBoolean(t *testing.T) {
	toks := collect(`42 true false`)
	assert.Equal(t, token.INTEGER, toks[0].Type)
	assert.EqualValues(t, 42, toks[0].Integer)
	assert.Equal(t, token.BOOLEAN, toks[1].Type)
	assert.True(t, toks[1].Boolean)
	assert.Equal(t, token.BOOLEAN, toks[2].Type)
	assert.False(t, toks[2].Boolean)
}

func TestNumberSplit(t *testing.T) {
	toks := collect(`12_34`)
	assert.Equal(t, token.NUMBER_SPLIT, toks[0].Type)
	assert.EqualValues(t, 12, toks[0].SplitA)
	assert.EqualValues(t, 34, toks[0].SplitB)
}

func TestStringLiteral(t *testing.T) {
	toks := collect(`"hello world"`)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestTabsAndNewlinesDoNotFlush(t *testing.T) {
	toks := collect("foo\tbar\nbaz (")
	// tabs/newlines are silently dropped, neither appended to the
	// buffer nor flushing it, so "foo", "bar", "baz" run together into
	// one name; only the space before "(" flushes it.
	assert.Equal(t, token.NAME, toks[0].Type)
	assert.Equal(t, "foobarbaz", toks[0].Literal)
}

func TestKeywordsAndPunctuation(t *testing.T) {
	toks := collect(`structure Point { x integer; y integer; }`)
	assert.Equal(t, token.KEYWORD, toks[0].Type)
	assert.Equal(t, token.NAME, toks[1].Type)
	assert.Equal(t, token.OPEN_BRACE, toks[2].Type)
	assert.Equal(t, token.NAME, toks[3].Type)
	assert.Equal(t, token.NAME, toks[4].Type)
	assert.Equal(t, token.SEMICOLON, toks[5].Type)
}

func TestEmptyInputIsJustEOF(t *testing.T) {
	toks := collect("")
	assert.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Type)
}
