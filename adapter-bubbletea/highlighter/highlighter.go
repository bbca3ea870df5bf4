package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter handles syntax highlighting for the editor
type Highlighter struct {
	lexer      chroma.Lexer
	style      *chroma.Style
	source     string                 // Content the cache was built from
	cache      map[int][]chroma.Token // Cache tokens by line number
	styleCache map[chroma.TokenType]lipgloss.Style
	cacheMutex sync.RWMutex
}

// TokenPosition represents a token's position in the original line
type TokenPosition struct {
	Token    chroma.Token
	StartCol int
	EndCol   int
}

// New creates a new syntax highlighter. Unknown languages fall back to
// plain text, unknown themes to chroma's fallback style.
func New(language string, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	lexer = chroma.Coalesce(lexer)

	return &Highlighter{
		lexer:      lexer,
		style:      styles.Get(theme),
		cache:      make(map[int][]chroma.Token),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// InvalidateCache clears the token cache
func (sh *Highlighter) InvalidateCache() {
	sh.cacheMutex.Lock()
	defer sh.cacheMutex.Unlock()
	sh.source = ""
	sh.cache = make(map[int][]chroma.Token)
}

// Tokenize lexes the whole document so multi-line constructs such as block
// comments colour correctly. It is a no-op when lines match the content of
// the previous call and reports whether the cache was rebuilt.
func (sh *Highlighter) Tokenize(lines []string) bool {
	content := strings.Join(lines, "\n")

	sh.cacheMutex.Lock()
	defer sh.cacheMutex.Unlock()

	if content == sh.source && len(sh.cache) > 0 {
		return false
	}

	sh.source = content
	sh.cache = make(map[int][]chroma.Token)

	if content == "" {
		return true
	}

	iterator, err := sh.lexer.Tokenise(nil, content)
	if err != nil {
		// Cache empty tokens so rendering falls back to plain text
		for i := range lines {
			sh.cache[i] = []chroma.Token{}
		}
		return true
	}

	lineNum := 0
	sh.cache[lineNum] = []chroma.Token{}

	for _, token := range iterator.Tokens() {
		value := token.Value
		for strings.Contains(value, "\n") {
			before, after, _ := strings.Cut(value, "\n")
			if before != "" {
				sh.cache[lineNum] = append(sh.cache[lineNum], chroma.Token{Type: token.Type, Value: before})
			}
			lineNum++
			sh.cache[lineNum] = []chroma.Token{}
			value = after
		}
		if value != "" {
			sh.cache[lineNum] = append(sh.cache[lineNum], chroma.Token{Type: token.Type, Value: value})
		}
	}

	return true
}

// GetTokensForLine returns the tokens of a line from the last Tokenize call.
func (sh *Highlighter) GetTokensForLine(lineNum int) []chroma.Token {
	sh.cacheMutex.RLock()
	defer sh.cacheMutex.RUnlock()
	return sh.cache[lineNum]
}

// GetStyleForToken converts a Chroma token type to a lipgloss style.
func (sh *Highlighter) GetStyleForToken(tokenType chroma.TokenType) lipgloss.Style {
	sh.cacheMutex.RLock()
	style, ok := sh.styleCache[tokenType]
	sh.cacheMutex.RUnlock()
	if ok {
		return style
	}

	entry := sh.style.Get(tokenType)

	style = lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}

	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	sh.cacheMutex.Lock()
	sh.styleCache[tokenType] = style
	sh.cacheMutex.Unlock()

	return style
}

// GetTokenPositions converts tokens to rune columns in the logical line.
func GetTokenPositions(tokens []chroma.Token) []TokenPosition {
	positions := make([]TokenPosition, 0, len(tokens))
	currentCol := 0

	for _, token := range tokens {
		tokenLen := len([]rune(token.Value))

		positions = append(positions, TokenPosition{
			Token:    token,
			StartCol: currentCol,
			EndCol:   currentCol + tokenLen,
		})

		currentCol += tokenLen
	}

	return positions
}

// FindTokenAtPosition finds which token contains the given column position.
func FindTokenAtPosition(positions []TokenPosition, col int) (chroma.Token, bool) {
	for _, pos := range positions {
		if col >= pos.StartCol && col < pos.EndCol {
			return pos.Token, true
		}
	}
	return chroma.Token{}, false
}
