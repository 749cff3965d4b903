package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKeyword(t *testing.T) {
	for word := range Keywords {
		assert.True(t, IsKeyword(word), "expected %q to be a keyword", word)
	}

	assert.False(t, IsKeyword("function2"))
	assert.False(t, IsKeyword(""))
	assert.False(t, IsKeyword("Return"))
}

func TestKeywordSet(t *testing.T) {
	want := []string{"function", "return", "variable", "structure", "constant", "if", "while"}
	assert.Len(t, Keywords, len(want))
	for _, w := range want {
		assert.Contains(t, Keywords, w)
	}
}
