package core

import "log"

// EditState is an open edit session. The region it replaces has been lifted
// out of the buffer; every keystroke rewrites the region as
// pre + diff.pre + diff.middle + diff.post + post.
type EditState struct {
	at      Cursor
	removed []Cell

	// survivors of the touched rows
	pre  []Cell
	post []Cell

	// baseLines is the line count with the region lifted out
	baseLines int

	diff struct {
		pre    []Cell // fixed text before the typed text
		middle []Cell // typed text
		post   []Cell // fixed text after the typed text
	}
}

// Inserted is the text the session puts in place of the removed cells.
func (s *EditState) Inserted() []Cell {
	out := make([]Cell, 0, len(s.diff.pre)+len(s.diff.middle)+len(s.diff.post))
	out = append(out, s.diff.pre...)
	out = append(out, s.diff.middle...)
	return append(out, s.diff.post...)
}

// EnterEditMode lifts r out of the buffer (Eol-joining like PrepareDelete)
// and opens an edit session seeded with the fixed texts initPre and initPost.
func (e *editor) EnterEditMode(r CursorRange, initPre, initPost []Cell) error {
	if e.edit != nil {
		return ErrEditInProgress
	}
	sp, err := e.ranges.PrepareDelete(r)
	if err != nil {
		log.Printf("enter edit mode: %v", err)
		return err
	}
	e.beginEdit(sp, initPre, initPost)
	return nil
}

// enterEditSpan is EnterEditMode over exactly the cells of r.
func (e *editor) enterEditSpan(r CursorRange, initPre, initPost []Cell) error {
	if e.edit != nil {
		return ErrEditInProgress
	}
	sp, err := e.ranges.PrepareSpan(r)
	if err != nil {
		log.Printf("enter edit mode: %v", err)
		return err
	}
	e.beginEdit(sp, initPre, initPost)
	return nil
}

func (e *editor) beginEdit(sp Split, initPre, initPost []Cell) {
	s := &EditState{
		at:        sp.At,
		removed:   sp.Removed,
		pre:       sp.Pre,
		post:      sp.Post,
		baseLines: e.buffer.LineCount(),
	}
	s.diff.pre = append([]Cell(nil), initPre...)
	s.diff.post = append([]Cell(nil), initPost...)
	e.edit = s
	e.materialize()
}

// materialize replaces the lines written by the previous keystroke with the
// current session text and places the cursor after the typed text.
func (e *editor) materialize() {
	s := e.edit
	for i := e.buffer.LineCount() - s.baseLines - 1; i >= 0; i-- {
		e.ranges.removeLine(s.at.Row + i)
	}
	e.ranges.rebuild(s.at.Row, s.pre, s.diff.pre, s.diff.middle, s.diff.post, s.post)
	e.cursor = e.ranges.FindCursorPair(s.at, len(s.diff.pre)+len(s.diff.middle))
}

// EditModeInput feeds one key to the open session. Backspace drops the last
// typed cell, Enter starts a new line with the current indent, any other
// character is appended. Other keys are ignored.
func (e *editor) EditModeInput(key Key) error {
	s := e.edit
	if s == nil {
		return ErrNoEditSession
	}

	switch {
	case key == Backspace:
		if len(s.diff.middle) == 0 {
			return nil
		}
		s.diff.middle = s.diff.middle[:len(s.diff.middle)-1]
	case key == Enter:
		indent := e.autoIndent()
		s.diff.middle = append(s.diff.middle, Eol)
		s.diff.middle = append(s.diff.middle, indent...)
	case key.Kind == KeyChar:
		s.diff.middle = append(s.diff.middle, Cell(key.Rune))
	default:
		return nil
	}

	e.materialize()
	return nil
}

// autoIndent is the indent for a line broken at the cursor.
func (e *editor) autoIndent() []Cell {
	return e.indentFor(e.buffer.Line(e.cursor.Row), e.cursor.Col)
}

// indentFor copies the leading whitespace of line, one level deeper when the
// text before col ends in an opening bracket or a colon.
func (e *editor) indentFor(line Line, col int) []Cell {
	indent := line.Indent()
	for i := min(col, len(line)) - 1; i >= 0; i-- {
		if line[i].IsSpace() || line[i] == Eol {
			continue
		}
		if c := line[i]; c == '{' || c == '(' || c == '[' || c == ':' {
			indent = append(indent, CellsFromString(e.opts.Indent)...)
		}
		break
	}
	return indent
}

// LeaveEditMode closes the session and records it for undo unless it changed
// nothing. The cursor stays where the last keystroke put it.
func (e *editor) LeaveEditMode() (ChangeLog, error) {
	s := e.edit
	if s == nil {
		return ChangeLog{}, ErrNoEditSession
	}
	e.edit = nil

	cl := NewChangeLog(s.at, s.removed, s.Inserted())
	if !cl.IsEmpty() {
		e.undo.Save(cl)
	}
	return cl, nil
}

// replaceSpan deletes the exact cells of r and writes inserted in their place
// as one undoable change. It returns the removed cells.
func (e *editor) replaceSpan(r CursorRange, inserted []Cell) ([]Cell, error) {
	if err := e.enterEditSpan(r, inserted, nil); err != nil {
		return nil, err
	}
	cl, err := e.LeaveEditMode()
	return cl.Deleted, err
}
