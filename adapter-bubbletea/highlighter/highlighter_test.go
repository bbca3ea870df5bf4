package highlighter

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineText(tokens []chroma.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Value)
	}
	return sb.String()
}

func TestTokenize(t *testing.T) {
	h := New("go", "monokai")
	lines := []string{"package main", "", "func main() {}"}

	require.True(t, h.Tokenize(lines))

	assert.Equal(t, "package main", lineText(h.GetTokensForLine(0)))
	assert.Empty(t, lineText(h.GetTokensForLine(1)))
	assert.Equal(t, "func main() {}", lineText(h.GetTokensForLine(2)))

	t.Run("unchanged content is not re-lexed", func(t *testing.T) {
		assert.False(t, h.Tokenize(lines))
	})

	t.Run("changed content is re-lexed", func(t *testing.T) {
		assert.True(t, h.Tokenize([]string{"package other"}))
		assert.Equal(t, "package other", lineText(h.GetTokensForLine(0)))
		assert.Nil(t, h.GetTokensForLine(2))
	})

	t.Run("invalidate forces a rebuild", func(t *testing.T) {
		h.InvalidateCache()
		assert.True(t, h.Tokenize([]string{"package other"}))
	})
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	h := New("no-such-language", "no-such-theme")
	h.Tokenize([]string{"plain text"})

	assert.Equal(t, "plain text", lineText(h.GetTokensForLine(0)))
	assert.NotPanics(t, func() {
		h.GetStyleForToken(chroma.Text)
	})
}

func TestTokenPositions(t *testing.T) {
	tokens := []chroma.Token{
		{Type: chroma.Keyword, Value: "func"},
		{Type: chroma.Text, Value: " "},
		{Type: chroma.NameFunction, Value: "héllo"},
	}

	positions := GetTokenPositions(tokens)
	require.Len(t, positions, 3)
	assert.Equal(t, 0, positions[0].StartCol)
	assert.Equal(t, 4, positions[0].EndCol)
	assert.Equal(t, 5, positions[2].StartCol)
	assert.Equal(t, 10, positions[2].EndCol)

	tok, ok := FindTokenAtPosition(positions, 6)
	require.True(t, ok)
	assert.Equal(t, chroma.NameFunction, tok.Type)

	_, ok = FindTokenAtPosition(positions, 10)
	assert.False(t, ok)
}
