package core

import (
	"fmt"
	"slices"
)

// Split is the outcome of preparing a delete: the cells of the touched rows
// bucketed around the range. The touched rows are already gone from the
// buffer; writing Pre, something, then Post back at At.Row restores a
// consistent document.
type Split struct {
	At      Cursor
	Pre     []Cell // cells before At on its row
	Removed []Cell
	Post    []Cell // cells after the range up to the last touched Eol
}

// RangeEditor performs every structural change to the buffer and keeps the
// search index one slot per line.
type RangeEditor struct {
	buf    Buffer
	search *SearchIndex
}

func NewRangeEditor(buf Buffer, search *SearchIndex) *RangeEditor {
	return &RangeEditor{buf: buf, search: search}
}

// PrepareDelete splits the buffer around r for deletion. When r.End sits on
// the Eol of a line other than the last, that Eol is taken as well and the
// line is joined with the next one.
func (re *RangeEditor) PrepareDelete(r CursorRange) (Split, error) {
	if err := r.Validate(re.buf); err != nil {
		return Split{}, err
	}
	end := r.End
	if end.Col == re.buf.LineLen(end.Row)-1 && end.Row < re.buf.LineCount()-1 {
		end = Cursor{Row: end.Row + 1}
	}
	return re.split(r.Start, end), nil
}

// PrepareSpan splits the buffer around exactly the cells in [r.Start, r.End).
func (re *RangeEditor) PrepareSpan(r CursorRange) (Split, error) {
	if err := r.Validate(re.buf); err != nil {
		return Split{}, err
	}
	return re.split(r.Start, r.End), nil
}

func (re *RangeEditor) split(start, end Cursor) Split {
	sp := Split{At: start}
	for row := start.Row; row <= end.Row; row++ {
		for col, c := range re.buf.Line(row) {
			p := Cursor{Row: row, Col: col}
			switch {
			case p.Less(start):
				sp.Pre = append(sp.Pre, c)
			case p.Less(end):
				sp.Removed = append(sp.Removed, c)
			default:
				sp.Post = append(sp.Post, c)
			}
		}
	}
	// Highest row first so lower indices stay valid
	for row := end.Row; row >= start.Row; row-- {
		re.removeLine(row)
	}
	return sp
}

// Insert writes cells starting at at. An Eol ends the current row and arms
// pendingNewline; the next write then splices a fresh line in first. It
// returns the cursor just past the last written cell.
//
// Insert does not split existing lines: callers write into rows emptied by a
// Split.
func (re *RangeEditor) Insert(at Cursor, cells []Cell, pendingNewline *bool) Cursor {
	row, col := at.Row, at.Col
	for _, c := range cells {
		if *pendingNewline {
			re.insertLine(row, Line{})
			*pendingNewline = false
		}
		re.buf.SetLine(row, slices.Insert(re.buf.Line(row), col, c))
		re.search.Invalidate(row)

		if c == Eol {
			*pendingNewline = true
			row++
			col = 0
			continue
		}
		col++
	}
	return Cursor{Row: row, Col: col}
}

// rebuild writes a run of whole lines (ending in Eol) back at row.
func (re *RangeEditor) rebuild(row int, runs ...[]Cell) {
	pending := true
	at := Cursor{Row: row}
	for _, cells := range runs {
		at = re.Insert(at, cells, &pending)
	}
}

// Delete removes the cells of r (PrepareDelete semantics) and returns them.
func (re *RangeEditor) Delete(r CursorRange) ([]Cell, error) {
	sp, err := re.PrepareDelete(r)
	if err != nil {
		return nil, err
	}
	re.rebuild(sp.At.Row, sp.Pre, sp.Post)
	return sp.Removed, nil
}

// FindCursorPair walks length cells forward from c, counting each Eol as one
// cell that continues at the start of the next row.
func (re *RangeEditor) FindCursorPair(c Cursor, length int) Cursor {
	for length > 0 && c.Row < re.buf.LineCount() {
		left := re.buf.LineLen(c.Row) - c.Col
		if length < left {
			c.Col += length
			break
		}
		length -= left
		c.Row++
		c.Col = 0
	}
	return c
}

// ApplyLog replaces log.Deleted at log.At with log.Inserted. The deleted span
// is measured in cells from log.At, so it never picks up the Eol join of
// PrepareDelete.
func (re *RangeEditor) ApplyLog(log ChangeLog) error {
	end := re.FindCursorPair(log.At, len(log.Deleted))
	sp, err := re.PrepareSpan(CursorRange{Start: log.At, End: end})
	if err != nil {
		return fmt.Errorf("apply change log: %w", err)
	}
	re.rebuild(sp.At.Row, sp.Pre, log.Inserted, sp.Post)
	return nil
}

func (re *RangeEditor) insertLine(row int, line Line) {
	re.buf.InsertLine(row, line)
	re.search.InsertLine(row)
}

func (re *RangeEditor) removeLine(row int) {
	re.buf.RemoveLine(row)
	re.search.RemoveLine(row)
}

// Reset swaps in a new buffer, e.g. after loading a document.
func (re *RangeEditor) Reset(buf Buffer) {
	re.buf = buf
	re.search.Reset(buf.LineCount())
}
