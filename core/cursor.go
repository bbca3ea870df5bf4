package core

import "unicode"

// Cursor is a position in the buffer. Col may address the line's Eol.
type Cursor struct {
	Row int // Zero-indexed row (line number)
	Col int // Zero-indexed column (cell index in the line)
}

// Compare orders cursors row-major: -1 if c < o, 0 if equal, 1 if c > o.
func (c Cursor) Compare(o Cursor) int {
	switch {
	case c.Row < o.Row:
		return -1
	case c.Row > o.Row:
		return 1
	case c.Col < o.Col:
		return -1
	case c.Col > o.Col:
		return 1
	}
	return 0
}

func (c Cursor) Less(o Cursor) bool { return c.Compare(o) < 0 }

// Valid reports whether c addresses an existing cell of b.
func (c Cursor) Valid(b Buffer) bool {
	return c.Row >= 0 && c.Row < b.LineCount() && c.Col >= 0 && c.Col < b.LineLen(c.Row)
}

// CursorRange denotes the cells in [Start, End) in row-major order.
type CursorRange struct {
	Start Cursor
	End   Cursor
}

// NewCursorRange orders a and b so that Start <= End.
func NewCursorRange(a, b Cursor) CursorRange {
	if b.Less(a) {
		a, b = b, a
	}
	return CursorRange{Start: a, End: b}
}

func (r CursorRange) IsEmpty() bool { return r.Start == r.End }

// Contains reports whether p lies in [Start, End).
func (r CursorRange) Contains(p Cursor) bool {
	return !p.Less(r.Start) && p.Less(r.End)
}

// Validate checks ordering and bounds. An End of (LineCount, 0) is rejected:
// the last line's Eol can never be removed.
func (r CursorRange) Validate(b Buffer) error {
	if r.End.Less(r.Start) {
		return invalidRange(r, "start after end")
	}
	if !r.Start.Valid(b) {
		return invalidRange(r, "start out of bounds")
	}
	if !r.End.Valid(b) {
		return invalidRange(r, "end out of bounds")
	}
	return nil
}

// --- Cursor Movement ---

func isWordChar(c Cell) bool {
	r := rune(c)
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// normalMaxCol is the last column a normal-mode cursor may rest on: the last
// character, or the Eol of an empty line.
func normalMaxCol(b Buffer, row int) int {
	return max(b.LineLen(row)-2, 0)
}

// ClampNormal pulls c back onto a character of its line.
func (c Cursor) ClampNormal(b Buffer) Cursor {
	c.Row = min(max(c.Row, 0), b.LineCount()-1)
	c.Col = min(max(c.Col, 0), normalMaxCol(b, c.Row))
	return c
}

// ClampInsert allows the cursor to address the Eol.
func (c Cursor) ClampInsert(b Buffer) Cursor {
	c.Row = min(max(c.Row, 0), b.LineCount()-1)
	c.Col = min(max(c.Col, 0), b.LineLen(c.Row)-1)
	return c
}

// MoveLeft moves the cursor left by count cells within the line.
func (c Cursor) MoveLeft(count int) (Cursor, error) {
	if c.Col <= 0 {
		return c, ErrStartOfLine
	}
	c.Col = max(c.Col-count, 0)
	return c, nil
}

// MoveRight moves the cursor right by count cells, stopping on the last character.
func (c Cursor) MoveRight(b Buffer, count int) (Cursor, error) {
	last := normalMaxCol(b, c.Row)
	if c.Col >= last {
		return c, ErrEndOfLine
	}
	c.Col = min(c.Col+count, last)
	return c, nil
}

// MoveUp moves the cursor up by count lines, aiming for the preferred column.
func (c Cursor) MoveUp(b Buffer, count, preferred int) (Cursor, error) {
	if c.Row <= 0 {
		return c, ErrStartOfBuffer
	}
	c.Row = max(c.Row-count, 0)
	c.Col = min(preferred, normalMaxCol(b, c.Row))
	return c, nil
}

// MoveDown moves the cursor down by count lines, aiming for the preferred column.
func (c Cursor) MoveDown(b Buffer, count, preferred int) (Cursor, error) {
	if c.Row >= b.LineCount()-1 {
		return c, ErrEndOfBuffer
	}
	c.Row = min(c.Row+count, b.LineCount()-1)
	c.Col = min(preferred, normalMaxCol(b, c.Row))
	return c, nil
}

// MoveToLineStart moves the cursor to the start of the current line (col 0)
func (c Cursor) MoveToLineStart() Cursor {
	c.Col = 0
	return c
}

// MoveToLineEnd moves the cursor to the *last character* of the current line
func (c Cursor) MoveToLineEnd(b Buffer) Cursor {
	c.Col = normalMaxCol(b, c.Row)
	return c
}

// MoveToEol moves the cursor onto the line terminator (append position).
func (c Cursor) MoveToEol(b Buffer) Cursor {
	c.Col = b.LineLen(c.Row) - 1
	return c
}

// MoveToFirstNonBlank moves the cursor to the first non-whitespace character
func (c Cursor) MoveToFirstNonBlank(b Buffer) Cursor {
	c.Col = min(b.Line(c.Row).FirstNonBlank(), normalMaxCol(b, c.Row))
	return c
}

// MoveToBufferStart moves the cursor to the first line, first non-blank.
func (c Cursor) MoveToBufferStart(b Buffer) Cursor {
	c.Row = 0
	return c.MoveToFirstNonBlank(b)
}

// MoveToBufferEnd moves the cursor to the first non-blank of the last line (Vim's G)
func (c Cursor) MoveToBufferEnd(b Buffer) Cursor {
	c.Row = b.LineCount() - 1
	return c.MoveToFirstNonBlank(b)
}

// MoveToLine moves to the first non-blank of row, clamped to the buffer.
func (c Cursor) MoveToLine(b Buffer, row int) Cursor {
	c.Row = min(max(row, 0), b.LineCount()-1)
	return c.MoveToFirstNonBlank(b)
}

// MoveWordForward moves the cursor forward by count words (Vim 'w' behavior)
func (c Cursor) MoveWordForward(b Buffer, count int) (Cursor, error) {
	for range count {
		line := b.Line(c.Row)
		n := len(line) - 1
		pos := c.Col

		if pos < n {
			// Skip the current word or punctuation block
			switch {
			case isWordChar(line[pos]):
				for pos < n && isWordChar(line[pos]) {
					pos++
				}
			case !line[pos].IsSpace():
				for pos < n && !isWordChar(line[pos]) && !line[pos].IsSpace() {
					pos++
				}
			}
			for pos < n && line[pos].IsSpace() {
				pos++
			}
		}

		if pos < n {
			c.Col = pos
			continue
		}

		// Ran off the line: land on the next line's first non-blank
		if c.Row >= b.LineCount()-1 {
			c.Col = normalMaxCol(b, c.Row)
			return c, ErrEndOfBuffer
		}
		c.Row++
		c = c.MoveToFirstNonBlank(b)
	}
	return c, nil
}

// MoveWordToEnd moves the cursor to the end of the word count times (Vim 'e' behavior).
func (c Cursor) MoveWordToEnd(b Buffer, count int) (Cursor, error) {
	for range count {
		row, pos := c.Row, c.Col+1
		for {
			line := b.Line(row)
			n := len(line) - 1
			for pos < n && line[pos].IsSpace() {
				pos++
			}
			if pos >= n {
				if row >= b.LineCount()-1 {
					return c, ErrEndOfBuffer
				}
				row++
				pos = 0
				continue
			}
			if isWordChar(line[pos]) {
				for pos < n && isWordChar(line[pos]) {
					pos++
				}
			} else {
				for pos < n && !isWordChar(line[pos]) && !line[pos].IsSpace() {
					pos++
				}
			}
			c = Cursor{Row: row, Col: pos - 1}
			break
		}
	}
	return c, nil
}

// MoveWordBackward moves the cursor backward by count words (Vim 'b' behavior)
func (c Cursor) MoveWordBackward(b Buffer, count int) (Cursor, error) {
	for range count {
		row, pos := c.Row, c.Col-1
		for {
			line := b.Line(row)
			for pos >= 0 && line[pos].IsSpace() {
				pos--
			}
			if pos >= 0 {
				break
			}
			if row == 0 {
				if c.Row == 0 && c.Col == 0 {
					return c, ErrStartOfBuffer
				}
				pos = 0
				break
			}
			row--
			pos = b.LineLen(row) - 2
			if pos < 0 {
				// An empty line counts as a word
				pos = 0
				break
			}
		}

		line := b.Line(row)
		if pos < len(line)-1 {
			word := isWordChar(line[pos])
			for pos > 0 && !line[pos-1].IsSpace() && isWordChar(line[pos-1]) == word {
				pos--
			}
		}
		c = Cursor{Row: row, Col: pos}
	}
	return c, nil
}

// MoveBlockForward moves to the next empty line (Vim '}').
func (c Cursor) MoveBlockForward(b Buffer, count int) (Cursor, error) {
	for range count {
		row := c.Row + 1
		for row < b.LineCount() && b.LineLen(row) > 1 {
			row++
		}
		if row >= b.LineCount() {
			c.Row = b.LineCount() - 1
			c = c.MoveToLineEnd(b)
			return c, ErrEndOfBuffer
		}
		c = Cursor{Row: row}
	}
	return c, nil
}

// MoveBlockBackward moves to the previous empty line (Vim '{').
func (c Cursor) MoveBlockBackward(b Buffer, count int) (Cursor, error) {
	for range count {
		row := c.Row - 1
		for row >= 0 && b.LineLen(row) > 1 {
			row--
		}
		if row < 0 {
			return Cursor{}, ErrStartOfBuffer
		}
		c = Cursor{Row: row}
	}
	return c, nil
}
