package core

// changeLines replaces the selected lines with one line holding the first
// line's indent and opens an edit session after it.
func (e *editor) changeLines() Mode {
	start, end := e.selection()
	yanked := e.linesCells(start.Row, end.Row)

	first := e.buffer.Line(start.Row)
	r := CursorRange{
		Start: Cursor{Row: start.Row},
		End:   Cursor{Row: end.Row, Col: e.eolCol(end.Row)},
	}
	if err := e.enterEditSpan(r, first.Indent(), nil); err != nil {
		e.DispatchError(ErrInvalidRangeId, err)
		return NormalMode
	}
	e.store(yanked, true, DeleteSignal{content: CellsString(yanked)})
	return NoMode
}
