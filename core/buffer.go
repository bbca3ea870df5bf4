package core

import (
	"bytes"
	"fmt"
	"strings"
)

// Buffer represents the text content being edited (Using Cells)
type Buffer interface {
	// Content access
	Lines() []string            // Get lines as strings without terminators (for saving)
	Line(row int) Line          // Get a specific line, Eol included
	LineLen(row int) int        // Get cell count for a line, Eol included
	LineCount() int             // Get number of lines
	String() string             // Get entire buffer content as a string
	Clone() Buffer              // Deep copy, used for snapshots in tests and previews
	Cells(r CursorRange) []Cell // Copy of the cells in [r.Start, r.End)

	// Structural modification. Only the RangeEditor calls these.
	InsertLine(row int, line Line)
	RemoveLine(row int)
	SetLine(row int, line Line)
}

// textBuffer implementation storing one Cell slice per line
type textBuffer struct {
	lines []Line
}

// NewBuffer creates a buffer holding a single empty line
func NewBuffer() Buffer {
	return &textBuffer{lines: []Line{{Eol}}}
}

// NewBufferFromLines creates a buffer from already decoded lines.
// A nil or empty slice yields the single-empty-line buffer.
func NewBufferFromLines(lines []string) Buffer {
	if len(lines) == 0 {
		return NewBuffer()
	}

	b := &textBuffer{lines: make([]Line, 0, len(lines))}
	for _, l := range lines {
		b.lines = append(b.lines, LineFromString(strings.TrimSuffix(l, "\r")))
	}
	return b
}

// NewBufferFromBytes splits content on newlines. A trailing newline does not
// produce an extra empty line.
func NewBufferFromBytes(content []byte) Buffer {
	content = bytes.TrimSuffix(content, []byte("\n"))
	if len(content) == 0 {
		return NewBuffer()
	}
	return NewBufferFromLines(strings.Split(string(content), "\n"))
}

func (b *textBuffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.Text()
	}
	return out
}

func (b *textBuffer) Line(row int) Line {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	return b.lines[row]
}

func (b *textBuffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *textBuffer) LineCount() int {
	return len(b.lines)
}

func (b *textBuffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

func (b *textBuffer) Clone() Buffer {
	c := &textBuffer{lines: make([]Line, len(b.lines))}
	for i, l := range b.lines {
		c.lines[i] = l.clone()
	}
	return c
}

func (b *textBuffer) Cells(r CursorRange) []Cell {
	var out []Cell
	for row := r.Start.Row; row <= r.End.Row && row < len(b.lines); row++ {
		line := b.lines[row]
		from, to := 0, len(line)
		if row == r.Start.Row {
			from = r.Start.Col
		}
		if row == r.End.Row {
			to = min(r.End.Col, len(line))
		}
		if from < to {
			out = append(out, line[from:to]...)
		}
	}
	return out
}

// InsertLine splices line in front of row. row may equal LineCount().
func (b *textBuffer) InsertLine(row int, line Line) {
	if row < 0 || row > len(b.lines) {
		panic(fmt.Sprintf("InsertLine: row %d out of bounds [0, %d]", row, len(b.lines)))
	}
	b.lines = append(b.lines, nil)
	copy(b.lines[row+1:], b.lines[row:])
	b.lines[row] = line
}

func (b *textBuffer) RemoveLine(row int) {
	if row < 0 || row >= len(b.lines) {
		panic(fmt.Sprintf("RemoveLine: row %d out of bounds [0, %d)", row, len(b.lines)))
	}
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
}

func (b *textBuffer) SetLine(row int, line Line) {
	b.lines[row] = line
}
