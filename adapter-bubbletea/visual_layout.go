package adapter_bubbletea

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/vimcore/adapter-bubbletea/highlighter"
	editor "github.com/ionut-t/vimcore/core"
	"github.com/rivo/uniseg"
)

// calculateLineNumberWidth computes the width needed for line numbers,
// including the separating space.
func (m *Model) calculateLineNumberWidth(totalLines int) int {
	if !m.showLineNumbers {
		return 0
	}

	state := m.editor.GetState()
	maxWidth := len(strconv.Itoa(max(1, totalLines)))

	if state.RelativeNumbers {
		relWidth := len(strconv.Itoa(max(1, m.viewport.Height)))
		maxWidth = max(maxWidth, relWidth)
	}

	lineNumWidth := max(4, maxWidth) + 1
	return min(lineNumWidth, 10)
}

// cellWidth is the number of screen columns c takes when drawn at display
// column col. Tabs stretch to the next tab stop, Eol takes one column for
// the cursor block.
func (m *Model) cellWidth(c editor.Cell, col int) int {
	switch {
	case c.IsEol():
		return 1
	case c == '\t':
		return m.tabWidth - col%m.tabWidth
	}
	return uniseg.StringWidth(string(rune(c)))
}

// displayCol returns the screen column of cell index idx in line.
func (m *Model) displayCol(line editor.Line, idx int) int {
	col := 0
	for i := 0; i < idx && i < len(line); i++ {
		col += m.cellWidth(line[i], col)
	}
	return col
}

// updateHorizontalOffset scrolls sideways so the cursor cell stays visible.
func (m *Model) updateHorizontalOffset(availableWidth int) {
	cursor := m.editor.Cursor()
	line := m.editor.Buffer().Line(cursor.Row)

	start := m.displayCol(line, cursor.Col)
	end := start + 1
	if cursor.Col < len(line) {
		end = start + max(m.cellWidth(line[cursor.Col], start), 1)
	}

	if start < m.leftCol {
		m.leftCol = start
	} else if end > m.leftCol+availableWidth {
		m.leftCol = end - availableWidth
	}
	m.leftCol = max(m.leftCol, 0)
}

// matchMask marks the cells of row covered by a search match.
func (m *Model) matchMask(row, length int) []bool {
	cols := m.editor.Matches(row)
	if len(cols) == 0 {
		return nil
	}

	mask := make([]bool, length)
	queryLen := len([]rune(m.editor.SearchQuery()))
	for _, c := range cols {
		for i := c; i < c+queryLen && i < length; i++ {
			mask[i] = true
		}
	}
	return mask
}

func (m *Model) getCursorStyles() lipgloss.Style {
	return m.modeStyle(m.editor.Mode())
}

// renderLine draws the visible part of one buffer row.
func (m *Model) renderLine(row int, availableWidth int) string {
	line := m.editor.Buffer().Line(row)
	cursor := m.editor.Cursor()
	mask := m.matchMask(row, len(line))

	var tokens []highlighter.TokenPosition
	if m.highlighter != nil {
		tokens = highlighter.GetTokenPositions(m.highlighter.GetTokensForLine(row))
	}

	selectionBg := m.theme.SelectionStyle.GetBackground()

	var sb strings.Builder
	col := 0
	for i, c := range line {
		width := m.cellWidth(c, col)
		start := col
		col += width

		if start < m.leftCol {
			continue
		}
		if col > m.leftCol+availableWidth {
			break
		}

		pos := editor.Cursor{Row: row, Col: i}
		isCursor := pos == cursor && m.isFocused && m.cursorVisible
		selected := m.editor.GetSelectionStatus(pos) != editor.SelectionNone

		var text string
		switch {
		case c.IsEol():
			if !isCursor && !selected {
				continue
			}
			text = " "
		case c == '\t':
			text = strings.Repeat(" ", width)
		default:
			text = string(rune(c))
		}

		style := lipgloss.NewStyle()
		if token, ok := highlighter.FindTokenAtPosition(tokens, i); ok {
			style = m.highlighter.GetStyleForToken(token.Type)
		}

		if selected {
			style = style.Background(selectionBg)
		}

		if mask != nil && mask[i] {
			style = m.theme.SearchHighlightStyle
		}

		if isCursor {
			style = m.getCursorStyles()
		}

		sb.WriteString(style.Render(text))
	}

	return sb.String()
}

// renderLineNumber draws the gutter of row, relative to the cursor row
// when relative numbers are on.
func (m *Model) renderLineNumber(row, cursorRow, lineNumWidth int) string {
	state := m.editor.GetState()

	num := row + 1
	style := m.theme.LineNumberStyle
	if row == cursorRow {
		style = m.theme.CurrentLineNumberStyle
	} else if state.RelativeNumbers {
		num = row - cursorRow
		if num < 0 {
			num = -num
		}
	}

	return style.Width(lineNumWidth-1).Render(strconv.Itoa(num)) + " "
}

// renderVisibleSlice renders the rows of the viewport.
func (m *Model) renderVisibleSlice() {
	state := m.editor.GetState()
	buf := m.editor.Buffer()
	total := buf.LineCount()
	cursorRow := m.editor.Cursor().Row

	lineNumWidth := m.calculateLineNumberWidth(total)
	availableWidth := max(m.viewport.Width-lineNumWidth, 1)
	m.updateHorizontalOffset(availableWidth)

	if m.placeholder != "" && m.IsEmpty() {
		m.viewport.SetContent(m.renderPlaceholder(lineNumWidth))
		return
	}

	var contentBuilder strings.Builder
	rendered := 0

	for row := state.TopLine; row < total && rendered < m.viewport.Height; row++ {
		if m.showLineNumbers {
			contentBuilder.WriteString(m.renderLineNumber(row, cursorRow, lineNumWidth))
		}
		contentBuilder.WriteString(m.renderLine(row, availableWidth))
		contentBuilder.WriteString("\n")
		rendered++
	}

	for rendered < m.viewport.Height {
		if m.showLineNumbers && m.showTildeIndicator {
			contentBuilder.WriteString(m.theme.LineNumberStyle.Width(lineNumWidth-1).Render("~") + " ")
		}
		contentBuilder.WriteString("\n")
		rendered++
	}

	m.viewport.SetContent(strings.TrimSuffix(contentBuilder.String(), "\n"))
}

func (m *Model) renderPlaceholder(lineNumWidth int) string {
	var sb strings.Builder

	if m.showLineNumbers {
		sb.WriteString(m.theme.CurrentLineNumberStyle.Width(lineNumWidth-1).Render("1") + " ")
	}

	for i, r := range m.placeholder {
		if i == 0 && m.isFocused && m.cursorVisible {
			sb.WriteString(m.getCursorStyles().Foreground(m.theme.PlaceholderStyle.GetForeground()).Render(string(r)))
		} else {
			sb.WriteString(m.theme.PlaceholderStyle.Render(string(r)))
		}
	}

	return sb.String()
}

// handleContentChange brings the syntax tokens and the search cache of the
// visible rows up to date after the buffer may have changed.
func (m *Model) handleContentChange() {
	if m.highlighter != nil {
		m.highlighter.Tokenize(m.editor.Lines())
	}

	top := m.editor.GetState().TopLine
	m.editor.UpdateSearchCache(top, top+m.viewport.Height)
}
