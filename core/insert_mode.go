package core

// Every edit-session entry returns NormalMode when the session cannot be
// opened, overriding the edge's move to insert mode.

func (e *editor) insertAt(at Cursor, initPre, initPost []Cell) Mode {
	e.takeCount()
	if err := e.enterEditSpan(CursorRange{Start: at, End: at}, initPre, initPost); err != nil {
		e.DispatchError(ErrInvalidRangeId, err)
		return NormalMode
	}
	return NoMode
}

// change opens a session over the exact cells of r, keeping them in the register.
func (e *editor) change(r CursorRange, initPre []Cell) Mode {
	e.takeCount()
	removed := e.buffer.Cells(r)
	if err := e.enterEditSpan(r, initPre, nil); err != nil {
		e.DispatchError(ErrInvalidRangeId, err)
		return NormalMode
	}
	if len(removed) > 0 {
		e.store(removed, false, DeleteSignal{content: CellsString(removed)})
	}
	return NoMode
}

func insertBefore(e *editor, _ Key) Mode {
	return e.insertAt(e.cursor, nil, nil)
}

func appendAfter(e *editor, _ Key) Mode {
	at := e.cursor
	if at.Col < e.eolCol(at.Row) {
		at.Col++
	}
	return e.insertAt(at, nil, nil)
}

func insertLineStart(e *editor, _ Key) Mode {
	at := Cursor{Row: e.cursor.Row, Col: e.buffer.Line(e.cursor.Row).FirstNonBlank()}
	return e.insertAt(at, nil, nil)
}

func appendLineEnd(e *editor, _ Key) Mode {
	return e.insertAt(e.cursor.MoveToEol(e.buffer), nil, nil)
}

func openBelow(e *editor, _ Key) Mode {
	line := e.buffer.Line(e.cursor.Row)
	pre := append([]Cell{Eol}, e.indentFor(line, line.EolCol())...)
	return e.insertAt(Cursor{Row: e.cursor.Row, Col: line.EolCol()}, pre, nil)
}

func openAbove(e *editor, _ Key) Mode {
	line := e.buffer.Line(e.cursor.Row)
	return e.insertAt(Cursor{Row: e.cursor.Row}, line.Indent(), []Cell{Eol})
}

func substitute(e *editor, _ Key) Mode {
	c := e.cursor
	end := Cursor{Row: c.Row, Col: min(c.Col+max(e.count, 1), e.eolCol(c.Row))}
	return e.change(CursorRange{Start: c, End: end}, nil)
}

// substituteLine clears count lines down to one, keeping the first one's indent.
func substituteLine(e *editor, _ Key) Mode {
	row := e.cursor.Row
	last := min(row+max(e.count, 1)-1, e.buffer.LineCount()-1)
	start := Cursor{Row: row, Col: e.buffer.Line(row).FirstNonBlank()}
	return e.change(CursorRange{Start: start, End: Cursor{Row: last, Col: e.eolCol(last)}}, nil)
}

func changeToEnd(e *editor, _ Key) Mode {
	c := e.cursor
	return e.change(CursorRange{Start: c, End: Cursor{Row: c.Row, Col: e.eolCol(c.Row)}}, nil)
}

// changeWord changes to the end of the word like 'ce'; on whitespace it
// changes the whitespace run like 'dw'.
func changeWord(e *editor, _ Key) Mode {
	c := e.cursor
	count := max(e.count, 1)
	line := e.buffer.Line(c.Row)
	if c.Col >= line.EolCol() || line[c.Col].IsSpace() {
		return e.change(CursorRange{Start: c, End: e.wordSpanEnd(c, count)}, nil)
	}

	end, err := Cursor{Row: c.Row, Col: c.Col - 1}.MoveWordToEnd(e.buffer, count)
	if err != nil || end.Row != c.Row {
		end = Cursor{Row: c.Row, Col: line.EolCol() - 1}
	}
	return e.change(CursorRange{Start: c, End: Cursor{Row: c.Row, Col: end.Col + 1}}, nil)
}

func editInput(e *editor, k Key) Mode {
	if err := e.EditModeInput(k); err != nil {
		return NormalMode
	}
	return NoMode
}

// editMove commits the running session and starts a new one after moving the
// cursor, so cursor keys split insertions into separate undo steps.
func editMove(e *editor, k Key) Mode {
	e.LeaveEditMode()

	c := e.cursor
	switch k {
	case Left:
		c.Col--
	case Right:
		c.Col++
	case Up:
		c.Row--
	case Down:
		c.Row++
	case Home:
		c.Col = 0
	case End:
		c.Col = e.eolCol(c.Row)
	}
	c = c.ClampInsert(e.buffer)
	if k == Up || k == Down {
		c = Cursor{Row: c.Row, Col: e.preferred}.ClampInsert(e.buffer)
	} else {
		e.preferred = c.Col
	}
	e.cursor = c
	return e.insertAt(c, nil, nil)
}

// leaveEdit commits the session and steps back onto the last typed character.
func leaveEdit(e *editor, _ Key) Mode {
	e.LeaveEditMode()
	if e.cursor.Col > 0 {
		e.cursor.Col--
	}
	e.cursor = e.cursor.ClampNormal(e.buffer)
	e.preferred = e.cursor.Col
	e.UpdateCommand("")
	return NormalMode
}
