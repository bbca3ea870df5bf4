package core

import (
	"strings"
	"unicode"
)

// Cell is one slot of a Line: a character or the end-of-line marker.
type Cell rune

// Eol terminates every Line and appears nowhere else in it.
const Eol Cell = -1

func (c Cell) IsEol() bool { return c == Eol }

// IsSpace reports whether the cell is horizontal whitespace.
func (c Cell) IsSpace() bool { return c == ' ' || c == '\t' }

func (c Cell) String() string {
	if c == Eol {
		return "\n"
	}
	return string(rune(c))
}

// Line is a non-empty run of cells whose last element is Eol.
type Line []Cell

// LineFromString builds a terminated line from text that holds no newline.
func LineFromString(s string) Line {
	line := make(Line, 0, len(s)+1)
	for _, r := range s {
		line = append(line, Cell(r))
	}
	return append(line, Eol)
}

// Text returns the line content without its terminator.
func (l Line) Text() string {
	var sb strings.Builder
	for _, c := range l {
		if c == Eol {
			break
		}
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

func (l Line) String() string {
	return CellsString(l)
}

// EolCol is the column of the line's terminator.
func (l Line) EolCol() int { return len(l) - 1 }

// Indent returns a copy of the leading whitespace cells.
func (l Line) Indent() []Cell {
	var indent []Cell
	for _, c := range l {
		if !c.IsSpace() {
			break
		}
		indent = append(indent, c)
	}
	return indent
}

// FirstNonBlank is the column of the first cell that is not whitespace.
// Lines holding only whitespace report their Eol column.
func (l Line) FirstNonBlank() int {
	for i, c := range l {
		if !c.IsSpace() {
			return i
		}
	}
	return l.EolCol()
}

func (l Line) clone() Line {
	out := make(Line, len(l))
	copy(out, l)
	return out
}

// CellsFromString converts text into cells, turning each '\n' into Eol.
// A '\r' directly preceding '\n' is dropped.
func CellsFromString(s string) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, r := range s {
		if r == '\n' {
			if n := len(cells); n > 0 && cells[n-1] == '\r' {
				cells = cells[:n-1]
			}
			cells = append(cells, Eol)
			continue
		}
		cells = append(cells, Cell(r))
	}
	return cells
}

// CellsString renders cells back to text, Eol as '\n'.
func CellsString(cells []Cell) string {
	var sb strings.Builder
	for _, c := range cells {
		if c == Eol {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// foldEqual compares two cells ignoring case. Eol only equals itself.
func foldEqual(a, b Cell) bool {
	if a == b {
		return true
	}
	if a == Eol || b == Eol {
		return false
	}
	ra, rb := rune(a), rune(b)
	return unicode.ToLower(ra) == unicode.ToLower(rb) || unicode.ToUpper(ra) == unicode.ToUpper(rb)
}
