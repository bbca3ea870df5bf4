package core

func enterVisual(e *editor, _ Key) Mode {
	e.takeCount()
	e.visualStart = e.cursor
	return NoMode
}

func exitVisual(e *editor, _ Key) Mode {
	e.count = 0
	e.UpdateCommand("")
	e.cursor = e.cursor.ClampNormal(e.buffer)
	return NormalMode
}

// swapSelection moves the cursor to the other end of the selection.
func swapSelection(e *editor, _ Key) Mode {
	e.visualStart, e.cursor = e.cursor, e.visualStart
	e.preferred = e.cursor.Col
	return NoMode
}

// selectionRange turns the inclusive charwise selection into a range. A
// selection ending on a line break is returned as is, for PrepareDelete to
// take the break; otherwise the end moves past the last selected character.
func (e *editor) selectionRange() (r CursorRange, onEol bool) {
	start, end := e.selection()
	if end.Col >= e.eolCol(end.Row) {
		return CursorRange{Start: start, End: end}, true
	}
	return CursorRange{Start: start, End: Cursor{Row: end.Row, Col: end.Col + 1}}, false
}

// openSelection lifts the charwise selection into an edit session.
func (e *editor) openSelection() ([]Cell, error) {
	r, onEol := e.selectionRange()
	var err error
	if onEol {
		err = e.EnterEditMode(r, nil, nil)
	} else {
		err = e.enterEditSpan(r, nil, nil)
	}
	if err != nil {
		return nil, err
	}
	return e.edit.removed, nil
}

func visualDelete(e *editor, k Key) Mode {
	e.takeCount()
	if e.Mode() == VisualLineMode {
		start, end := e.selection()
		e.deleteLines(start.Row, end.Row-start.Row+1)
		return NoMode
	}

	removed, err := e.openSelection()
	if err != nil {
		e.DispatchError(ErrInvalidRangeId, err)
		return exitVisual(e, k)
	}
	e.LeaveEditMode()
	e.store(removed, false, DeleteSignal{content: CellsString(removed)})
	e.cursor = e.cursor.ClampNormal(e.buffer)
	e.preferred = e.cursor.Col
	return NoMode
}

func visualChange(e *editor, k Key) Mode {
	e.takeCount()
	if e.Mode() == VisualLineMode {
		return e.changeLines()
	}

	removed, err := e.openSelection()
	if err != nil {
		e.DispatchError(ErrInvalidRangeId, err)
		return exitVisual(e, k)
	}
	e.store(removed, false, DeleteSignal{content: CellsString(removed)})
	return NoMode
}

func visualYank(e *editor, _ Key) Mode {
	e.takeCount()
	start, end := e.selection()
	if e.Mode() == VisualLineMode {
		e.yank(e.linesCells(start.Row, end.Row), true)
	} else {
		r, onEol := e.selectionRange()
		if onEol && r.End.Row < e.buffer.LineCount()-1 {
			r.End = Cursor{Row: r.End.Row + 1}
		}
		e.yank(e.buffer.Cells(r), false)
	}
	e.cursor = start.ClampNormal(e.buffer)
	e.preferred = e.cursor.Col
	return NoMode
}
