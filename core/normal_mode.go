package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// --- Counts and cancellation ---

func countDigit(e *editor, k Key) Mode {
	e.pushCountDigit(k.Rune)
	return NoMode
}

// zero continues a count, or moves to the start of the line.
func zero(e *editor, k Key) Mode {
	if k == Char('0') && e.hasCount() {
		e.pushCountDigit('0')
		return NoMode
	}
	e.count = 0
	e.cursor = e.cursor.MoveToLineStart()
	e.preferred = 0
	return NoMode
}

// escape returns to normal mode from anywhere, dropping whatever is pending.
func escape(e *editor, k Key) Mode {
	switch e.Mode() {
	case InsertMode:
		return leaveEdit(e, k)
	case SearchMode:
		searchCancel(e)
	case CommandMode:
		e.commandInput = nil
	case VisualMode, VisualLineMode:
		return exitVisual(e, k)
	}
	e.count = 0
	e.UpdateCommand("")
	return NormalMode
}

// operator shows the first key of a pending sequence.
func operator(e *editor, k Key) Mode {
	prefix := ""
	if e.hasCount() {
		prefix = strconv.Itoa(e.count)
	}
	e.UpdateCommand(prefix + string(k.Rune))
	return NoMode
}

func abort(e *editor, _ Key) Mode {
	e.count = 0
	e.UpdateCommand("")
	return NormalMode
}

// --- Motions ---

type motionFunc func(c Cursor, b Buffer, count int) (Cursor, error)

// motion wraps a horizontal motion: boundary errors leave the cursor where the
// motion stopped.
func motion(fn motionFunc) Effect {
	return func(e *editor, _ Key) Mode {
		c, _ := fn(e.cursor, e.buffer, e.takeCount())
		e.cursor = c
		e.preferred = c.Col
		return NoMode
	}
}

type verticalFunc func(c Cursor, b Buffer, count, preferred int) (Cursor, error)

// verticalMotion keeps the preferred column across short lines.
func verticalMotion(fn verticalFunc) Effect {
	return func(e *editor, _ Key) Mode {
		e.cursor, _ = fn(e.cursor, e.buffer, e.takeCount(), e.preferred)
		return NoMode
	}
}

func page(dir int) Effect {
	return func(e *editor, _ Key) Mode {
		n := e.takeCount() * e.pageSize()
		if dir < 0 {
			e.cursor, _ = e.cursor.MoveUp(e.buffer, n, e.preferred)
		} else {
			e.cursor, _ = e.cursor.MoveDown(e.buffer, n, e.preferred)
		}
		return NoMode
	}
}

// pageSize is the configured page, or half the viewport.
func (e *editor) pageSize() int {
	if e.opts.PageSize > 0 {
		return e.opts.PageSize
	}
	return max(e.state.ViewportHeight/2, 1)
}

func moveLeft(c Cursor, _ Buffer, count int) (Cursor, error) {
	return c.MoveLeft(count)
}

func moveRight(c Cursor, b Buffer, count int) (Cursor, error) {
	return c.MoveRight(b, count)
}

func firstNonBlank(c Cursor, b Buffer, _ int) (Cursor, error) {
	return c.MoveToFirstNonBlank(b), nil
}

// lineEnd moves to the last character, or onto the Eol in charwise visual
// mode so the line break can be selected.
func lineEnd(e *editor, _ Key) Mode {
	count := e.takeCount()
	if count > 1 {
		e.cursor, _ = e.cursor.MoveDown(e.buffer, count-1, 0)
	}
	if e.Mode() == VisualMode {
		e.cursor = e.cursor.MoveToEol(e.buffer)
	} else {
		e.cursor = e.cursor.MoveToLineEnd(e.buffer)
	}
	e.preferred = math.MaxInt
	return NoMode
}

func bufferStart(e *editor, _ Key) Mode {
	if e.hasCount() {
		e.cursor = e.cursor.MoveToLine(e.buffer, e.takeCount()-1)
	} else {
		e.cursor = e.cursor.MoveToBufferStart(e.buffer)
	}
	e.UpdateCommand("")
	e.preferred = e.cursor.Col
	return NoMode
}

func bufferEnd(e *editor, _ Key) Mode {
	if e.hasCount() {
		e.cursor = e.cursor.MoveToLine(e.buffer, e.takeCount()-1)
	} else {
		e.cursor = e.cursor.MoveToBufferEnd(e.buffer)
	}
	e.preferred = e.cursor.Col
	return NoMode
}

// --- Deletes ---

func (e *editor) eolCol(row int) int { return e.buffer.LineLen(row) - 1 }

// cut deletes the exact cells of r into the register.
func (e *editor) cut(r CursorRange) {
	removed, err := e.replaceSpan(r, nil)
	if err != nil {
		e.DispatchError(ErrInvalidRangeId, err)
		return
	}
	e.store(removed, false, DeleteSignal{content: CellsString(removed)})
}

func deleteChar(e *editor, _ Key) Mode {
	n := e.takeCount()
	c := e.cursor
	if c.Col >= e.eolCol(c.Row) {
		return NoMode
	}
	e.cut(CursorRange{Start: c, End: Cursor{Row: c.Row, Col: min(c.Col+n, e.eolCol(c.Row))}})
	e.cursor = c.ClampNormal(e.buffer)
	return NoMode
}

func deleteCharBefore(e *editor, _ Key) Mode {
	n := e.takeCount()
	c := e.cursor
	if c.Col == 0 {
		return NoMode
	}
	start := Cursor{Row: c.Row, Col: max(c.Col-n, 0)}
	e.cut(CursorRange{Start: start, End: c})
	e.cursor = start.ClampNormal(e.buffer)
	return NoMode
}

func deleteToEnd(e *editor, _ Key) Mode {
	e.takeCount()
	c := e.cursor
	e.cut(CursorRange{Start: c, End: Cursor{Row: c.Row, Col: e.eolCol(c.Row)}})
	e.cursor = c.ClampNormal(e.buffer)
	return NoMode
}

// wordSpanEnd is the exclusive end of count words from c, kept on c's line.
func (e *editor) wordSpanEnd(c Cursor, count int) Cursor {
	end, err := c.MoveWordForward(e.buffer, count)
	if err != nil || end.Row != c.Row {
		return Cursor{Row: c.Row, Col: e.eolCol(c.Row)}
	}
	return end
}

func deleteWord(e *editor, _ Key) Mode {
	c := e.cursor
	e.cut(CursorRange{Start: c, End: e.wordSpanEnd(c, e.takeCount())})
	e.cursor = c.ClampNormal(e.buffer)
	return NoMode
}

func deleteLine(e *editor, _ Key) Mode {
	e.deleteLines(e.cursor.Row, e.takeCount())
	return NoMode
}

// linesCells returns rows [from, to] as whole lines, Eols included.
func (e *editor) linesCells(from, to int) []Cell {
	var cells []Cell
	for row := from; row <= to; row++ {
		cells = append(cells, e.buffer.Line(row)...)
	}
	return cells
}

// deleteLines removes count whole lines starting at row. The last line takes
// the preceding line break with it; deleting every line leaves one empty line.
func (e *editor) deleteLines(row, count int) {
	last := min(row+count-1, e.buffer.LineCount()-1)
	yanked := e.linesCells(row, last)

	var r CursorRange
	switch {
	case last < e.buffer.LineCount()-1:
		r = CursorRange{Start: Cursor{Row: row}, End: Cursor{Row: last + 1}}
	case row > 0:
		r = CursorRange{
			Start: Cursor{Row: row - 1, Col: e.eolCol(row - 1)},
			End:   Cursor{Row: last, Col: e.eolCol(last)},
		}
	default:
		r = CursorRange{Start: Cursor{}, End: Cursor{Row: last, Col: e.eolCol(last)}}
	}

	if _, err := e.replaceSpan(r, nil); err != nil {
		e.DispatchError(ErrInvalidRangeId, err)
		return
	}
	e.store(yanked, true, DeleteSignal{content: CellsString(yanked)})
	e.cursor = Cursor{Row: min(row, e.buffer.LineCount()-1)}.MoveToFirstNonBlank(e.buffer)
	e.preferred = e.cursor.Col
}

// joinLines joins count lines (at least two) into one, replacing each line
// break and the following indent with a single space.
func joinLines(e *editor, _ Key) Mode {
	row := e.cursor.Row
	k := min(max(e.takeCount()-1, 1), e.buffer.LineCount()-1-row)
	if k <= 0 {
		return NoMode
	}

	line := e.buffer.Line(row)
	var last Cell
	if n := len(line); n > 1 {
		last = line[n-2]
	}

	var inserted []Cell
	var end Cursor
	for i := 1; i <= k; i++ {
		next := e.buffer.Line(row + i)
		fnb := next.FirstNonBlank()
		if last != 0 && !last.IsSpace() && next[fnb] != Eol && next[fnb] != ')' {
			inserted = append(inserted, ' ')
		}
		end = Cursor{Row: row + i, Col: fnb}
		if i < k {
			content := next[fnb:next.EolCol()]
			inserted = append(inserted, content...)
			if len(content) > 0 {
				last = content[len(content)-1]
			}
		}
	}

	start := Cursor{Row: row, Col: line.EolCol()}
	if _, err := e.replaceSpan(CursorRange{Start: start, End: end}, inserted); err != nil {
		e.DispatchError(ErrInvalidRangeId, err)
		return NoMode
	}
	e.cursor = Cursor{Row: row, Col: start.Col + max(len(inserted)-1, 0)}.ClampNormal(e.buffer)
	e.preferred = e.cursor.Col
	return NoMode
}

// --- Registers ---

// store fills the register and mirrors it to the clipboard.
func (e *editor) store(cells []Cell, linewise bool, signal Signal) {
	e.register = register{cells: cells, linewise: linewise}
	if e.clipboard != nil {
		if err := e.clipboard.Write(CellsString(cells)); err != nil {
			e.DispatchError(ErrFailedToYankId, err)
		}
	}
	e.DispatchSignal(signal)
}

func (e *editor) yank(cells []Cell, linewise bool) {
	e.store(cells, linewise, YankSignal{content: CellsString(cells)})
}

func yankLine(e *editor, _ Key) Mode {
	row := e.cursor.Row
	e.yank(e.linesCells(row, min(row+e.takeCount()-1, e.buffer.LineCount()-1)), true)
	return NoMode
}

func yankWord(e *editor, _ Key) Mode {
	c := e.cursor
	e.yank(e.buffer.Cells(CursorRange{Start: c, End: e.wordSpanEnd(c, e.takeCount())}), false)
	return NoMode
}

func yankToEnd(e *editor, _ Key) Mode {
	e.takeCount()
	c := e.cursor
	e.yank(e.buffer.Cells(CursorRange{Start: c, End: Cursor{Row: c.Row, Col: e.eolCol(c.Row)}}), false)
	return NoMode
}

func pasteAfter(e *editor, _ Key) Mode {
	e.paste(true, e.takeCount())
	return NoMode
}

func pasteBefore(e *editor, _ Key) Mode {
	e.paste(false, e.takeCount())
	return NoMode
}

// maxPasteCells bounds a single paste.
const maxPasteCells = 1 << 22

// paste puts the register count times next to the cursor. Linewise text goes
// on its own lines below or above the current one.
func (e *editor) paste(after bool, count int) {
	src := e.pasteSource()
	if len(src.cells) == 0 {
		return
	}
	if len(src.cells)*count > maxPasteCells {
		e.DispatchError(ErrFailedToPasteId, fmt.Errorf("%w: %dp", ErrCountTooLarge, count))
		return
	}
	cells := make([]Cell, 0, len(src.cells)*count)
	for range count {
		cells = append(cells, src.cells...)
	}

	c := e.cursor
	if src.linewise {
		if cells[len(cells)-1] != Eol {
			cells = append(cells, Eol)
		}
		at, row := Cursor{Row: c.Row}, c.Row
		if after {
			// The break goes first so pasting below the last line works.
			at = Cursor{Row: c.Row, Col: e.eolCol(c.Row)}
			cells = append([]Cell{Eol}, cells[:len(cells)-1]...)
			row++
		}
		if _, err := e.replaceSpan(CursorRange{Start: at, End: at}, cells); err != nil {
			e.DispatchError(ErrFailedToPasteId, err)
			return
		}
		e.cursor = Cursor{Row: row}.MoveToFirstNonBlank(e.buffer)
	} else {
		at := c
		if after && c.Col < e.eolCol(c.Row) {
			at.Col++
		}
		if _, err := e.replaceSpan(CursorRange{Start: at, End: at}, cells); err != nil {
			e.DispatchError(ErrFailedToPasteId, err)
			return
		}
		e.cursor = e.ranges.FindCursorPair(at, len(cells)-1).ClampNormal(e.buffer)
	}
	e.preferred = e.cursor.Col
	e.DispatchSignal(PasteSignal{content: CellsString(src.cells)})
}

// --- History and persistence ---

// undo and redo leave insert mode first when a session is open.
func undo(e *editor, k Key) Mode {
	next := NoMode
	if e.edit != nil {
		next = leaveEdit(e, k)
	}
	for range e.takeCount() {
		if err := e.Undo(); err != nil {
			if !errors.Is(err, ErrNothingToUndo) {
				e.DispatchError(ErrUndoFailedId, err)
			}
			break
		}
	}
	return next
}

func redo(e *editor, k Key) Mode {
	next := NoMode
	if e.edit != nil {
		next = leaveEdit(e, k)
	}
	for range e.takeCount() {
		if err := e.Redo(); err != nil {
			if !errors.Is(err, ErrNothingToRedo) {
				e.DispatchError(ErrRedoFailedId, err)
			}
			break
		}
	}
	return next
}

// save writes the buffer. An open edit session is committed first and a new
// one opened at the cursor, so the saved text matches a point in history.
func save(e *editor, _ Key) Mode {
	reopen := e.edit != nil
	if reopen {
		e.LeaveEditMode()
	}
	e.Save()
	if reopen {
		e.enterEditSpan(CursorRange{Start: e.cursor, End: e.cursor}, nil, nil)
	}
	return NoMode
}
