package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memClipboard struct {
	text string
}

func (c *memClipboard) Write(text string) error {
	c.text = text
	return nil
}

func (c *memClipboard) Read() (string, error) {
	return c.text, nil
}

func newTestEditor(lines ...string) *editor {
	e := newEditor(DefaultOptions(), nil)
	e.SetLines(lines)
	return e
}

// feed sends every rune of s as a plain character key.
func feed(e *editor, s string) {
	for _, r := range s {
		e.HandleKey(Char(r))
	}
}

func press(e *editor, keys ...Key) {
	for _, k := range keys {
		e.HandleKey(k)
	}
}

func drain(e *editor) []Signal {
	var out []Signal
	for {
		select {
		case s := <-e.updateSignal:
			out = append(out, s)
		default:
			return out
		}
	}
}

func errorIDs(signals []Signal) []ErrorId {
	var ids []ErrorId
	for _, s := range signals {
		if es, ok := s.(ErrorSignal); ok {
			id, _ := es.Value()
			ids = append(ids, id)
		}
	}
	return ids
}

func assertConsistent(t *testing.T, e *editor) {
	t.Helper()
	assert.Equal(t, e.buffer.LineCount(), e.search.Len(), "search cache out of step with the buffer")
	for row := range e.buffer.LineCount() {
		line := e.buffer.Line(row)
		require.NotEmpty(t, line)
		assert.Equal(t, Eol, line[len(line)-1])
	}
}

func TestInsertUndoRedo(t *testing.T) {
	e := newTestEditor()

	feed(e, "i")
	assert.Equal(t, InsertMode, e.Mode())
	feed(e, "hello")
	assert.True(t, e.IsModified(), "an open session counts as a change")
	press(e, Esc)

	assert.Equal(t, []string{"hello"}, e.Lines())
	assert.Equal(t, Cursor{0, 4}, e.Cursor())
	assert.Equal(t, NormalMode, e.Mode())
	assert.Equal(t, "NORMAL", e.GetState().StatusLine)

	feed(e, "u")
	assert.Equal(t, []string{""}, e.Lines())
	assert.False(t, e.IsModified())

	feed(e, "U")
	assert.Equal(t, []string{"hello"}, e.Lines())
	assert.Equal(t, Cursor{0, 4}, e.Cursor())

	feed(e, "u")
	press(e, Ctrl('r'))
	assert.Equal(t, []string{"hello"}, e.Lines())
	assertConsistent(t, e)
}

func TestInsertBackspace(t *testing.T) {
	e := newTestEditor("ab")

	feed(e, "A")
	press(e, Backspace)
	assert.Equal(t, []string{"ab"}, e.Lines(), "backspace never eats text outside the session")

	feed(e, "cd")
	press(e, Backspace, Esc)
	assert.Equal(t, []string{"abc"}, e.Lines())
}

func TestInsertCursorKeysSplitUndo(t *testing.T) {
	e := newTestEditor("ab")

	feed(e, "Ax")
	press(e, Home)
	feed(e, "y")
	press(e, Esc)
	assert.Equal(t, []string{"yabx"}, e.Lines())

	feed(e, "u")
	assert.Equal(t, []string{"abx"}, e.Lines())
	feed(e, "u")
	assert.Equal(t, []string{"ab"}, e.Lines())
}

func TestAutoIndent(t *testing.T) {
	t.Run("open below after a brace", func(t *testing.T) {
		e := newTestEditor("if x {")
		feed(e, "oy")
		press(e, Esc)

		assert.Equal(t, []string{"if x {", "    y"}, e.Lines())
		assert.Equal(t, Cursor{1, 4}, e.Cursor())

		feed(e, "u")
		assert.Equal(t, []string{"if x {"}, e.Lines())
		assertConsistent(t, e)
	})

	t.Run("enter keeps the indent", func(t *testing.T) {
		e := newTestEditor("    foo")
		feed(e, "A\nbar")
		press(e, Esc)
		assert.Equal(t, []string{"    foo", "    bar"}, e.Lines())
	})

	t.Run("open above copies the indent", func(t *testing.T) {
		e := newTestEditor("    foo")
		feed(e, "Ox")
		press(e, Esc)
		assert.Equal(t, []string{"    x", "    foo"}, e.Lines())
	})
}

func TestDeleteLines(t *testing.T) {
	e := newTestEditor("a", "b", "c")

	feed(e, "Gdd")
	assert.Equal(t, []string{"a", "b"}, e.Lines())
	assert.Equal(t, 1, e.Cursor().Row)

	feed(e, "p")
	assert.Equal(t, []string{"a", "b", "c"}, e.Lines())
	assert.Equal(t, Cursor{2, 0}, e.Cursor())

	feed(e, "ggdd")
	assert.Equal(t, []string{"b", "c"}, e.Lines())

	feed(e, "u")
	assert.Equal(t, []string{"a", "b", "c"}, e.Lines())

	feed(e, "2dd")
	assert.Equal(t, []string{"c"}, e.Lines())

	feed(e, "dd")
	assert.Equal(t, []string{""}, e.Lines(), "the last line is emptied, never removed")
	assertConsistent(t, e)
}

func TestDeleteChars(t *testing.T) {
	e := newTestEditor("abcdef")

	feed(e, "x")
	assert.Equal(t, []string{"bcdef"}, e.Lines())

	feed(e, "3x")
	assert.Equal(t, []string{"ef"}, e.Lines())

	feed(e, "$x")
	assert.Equal(t, []string{"e"}, e.Lines())
	assert.Equal(t, Cursor{0, 0}, e.Cursor())

	e = newTestEditor("abc")
	feed(e, "$X")
	assert.Equal(t, []string{"ac"}, e.Lines())
	assert.Equal(t, Cursor{0, 1}, e.Cursor())

	e = newTestEditor("abc def")
	feed(e, "wD")
	assert.Equal(t, []string{"abc "}, e.Lines())
	assert.Equal(t, Cursor{0, 3}, e.Cursor())
}

func TestWordOperators(t *testing.T) {
	e := newTestEditor("foo bar")
	feed(e, "dw")
	assert.Equal(t, []string{"bar"}, e.Lines())

	e = newTestEditor("foo bar")
	feed(e, "cwbaz")
	press(e, Esc)
	assert.Equal(t, []string{"baz bar"}, e.Lines())
	assert.Equal(t, "foo", CellsString(e.register.cells))

	feed(e, "u")
	assert.Equal(t, []string{"foo bar"}, e.Lines())
}

func TestJoinLines(t *testing.T) {
	e := newTestEditor("ab", "  cd")
	feed(e, "J")
	assert.Equal(t, []string{"ab cd"}, e.Lines())
	assert.Equal(t, Cursor{0, 2}, e.Cursor())

	e = newTestEditor("a", "b", "c")
	feed(e, "3J")
	assert.Equal(t, []string{"a b c"}, e.Lines())

	feed(e, "u")
	assert.Equal(t, []string{"a", "b", "c"}, e.Lines())
	assertConsistent(t, e)
}

func TestVisualDeleteJoinsLines(t *testing.T) {
	e := newTestEditor("ab", "cd")

	feed(e, "lv$")
	assert.Equal(t, VisualMode, e.Mode())
	assert.Equal(t, Cursor{0, 2}, e.Cursor(), "charwise visual can reach the line break")

	feed(e, "d")
	assert.Equal(t, []string{"acd"}, e.Lines())
	assert.Equal(t, NormalMode, e.Mode())

	feed(e, "u")
	assert.Equal(t, []string{"ab", "cd"}, e.Lines())
	assertConsistent(t, e)
}

func TestVisualLineDelete(t *testing.T) {
	e := newTestEditor("a", "b", "c")
	feed(e, "Vjd")
	assert.Equal(t, []string{"c"}, e.Lines())
	assert.Equal(t, NormalMode, e.Mode())
}

func TestVisualYankAndPaste(t *testing.T) {
	e := newTestEditor("abc")

	feed(e, "vly")
	assert.Equal(t, NormalMode, e.Mode())
	assert.Equal(t, Cursor{0, 0}, e.Cursor())

	feed(e, "$p")
	assert.Equal(t, []string{"abcab"}, e.Lines())
	assert.Equal(t, Cursor{0, 4}, e.Cursor())
}

func TestVisualChange(t *testing.T) {
	e := newTestEditor("hello world")
	feed(e, "vecbye")
	press(e, Esc)
	assert.Equal(t, []string{"bye world"}, e.Lines())
}

func TestSelectionStatus(t *testing.T) {
	e := newTestEditor("abc", "def")
	assert.Equal(t, SelectionNone, e.GetSelectionStatus(Cursor{0, 0}))

	feed(e, "vl")
	assert.Equal(t, SelectionCharacter, e.GetSelectionStatus(Cursor{0, 0}))
	assert.Equal(t, SelectionCharacter, e.GetSelectionStatus(Cursor{0, 1}))
	assert.Equal(t, SelectionNone, e.GetSelectionStatus(Cursor{0, 2}))

	feed(e, "V")
	assert.Equal(t, VisualLineMode, e.Mode())
	assert.Equal(t, SelectionLine, e.GetSelectionStatus(Cursor{0, 2}))
	assert.Equal(t, SelectionNone, e.GetSelectionStatus(Cursor{1, 0}))

	press(e, Esc)
	assert.Equal(t, SelectionNone, e.GetSelectionStatus(Cursor{0, 0}))
}

func TestPasteLinewise(t *testing.T) {
	e := newTestEditor("a", "b")

	feed(e, "yyp")
	assert.Equal(t, []string{"a", "a", "b"}, e.Lines())
	assert.Equal(t, Cursor{1, 0}, e.Cursor())

	feed(e, "P")
	assert.Equal(t, []string{"a", "a", "a", "b"}, e.Lines())
	assert.Equal(t, Cursor{1, 0}, e.Cursor())
}

func TestClipboard(t *testing.T) {
	clip := &memClipboard{text: "zz"}
	e := newEditor(DefaultOptions(), clip)
	e.SetLines([]string{"abc"})

	feed(e, "p")
	assert.Equal(t, []string{"azzbc"}, e.Lines(), "foreign clipboard text wins over the register")
	assert.Equal(t, Cursor{0, 2}, e.Cursor())

	feed(e, "yy")
	assert.Equal(t, "azzbc\n", clip.text)
}

func TestUndoCapacity(t *testing.T) {
	opts := DefaultOptions()
	opts.UndoCapacity = 2
	e := newEditor(opts, nil)
	e.SetLines([]string{"abcd"})

	feed(e, "xxx")
	feed(e, "uuu")
	assert.Equal(t, []string{"bcd"}, e.Lines())
	assert.True(t, e.IsModified())

	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)
}

func TestSearch(t *testing.T) {
	e := newTestEditor("foo", "bar foo", "foo")

	feed(e, "/b")
	assert.Equal(t, SearchMode, e.Mode())
	assert.Equal(t, Cursor{1, 0}, e.Cursor(), "typing previews the match")
	assert.Equal(t, "/b", e.GetState().CommandLine)

	press(e, Esc)
	assert.Equal(t, NormalMode, e.Mode())
	assert.Equal(t, Cursor{0, 0}, e.Cursor())
	assert.Nil(t, e.Matches(1))

	feed(e, "/foo\n")
	assert.Equal(t, NormalMode, e.Mode())
	assert.Equal(t, Cursor{1, 4}, e.Cursor())
	assert.Equal(t, "foo", e.SearchQuery())
	assert.Equal(t, []int{4}, e.Matches(1))

	feed(e, "n")
	assert.Equal(t, Cursor{2, 0}, e.Cursor())
	drain(e)

	feed(e, "n")
	assert.Equal(t, Cursor{0, 0}, e.Cursor())
	assert.Contains(t, drain(e), MessageSignal{SearchWrappedMessage, SearchWrappedMessage})

	feed(e, "N")
	assert.Equal(t, Cursor{2, 0}, e.Cursor())

	feed(e, "?\n")
	assert.Equal(t, Cursor{1, 4}, e.Cursor(), "an empty prompt repeats the last query")

	feed(e, ":noh\n")
	assert.Nil(t, e.Matches(1))
}

func TestSearchNoMatch(t *testing.T) {
	e := newTestEditor("foo", "bar")
	feed(e, "j")
	drain(e)

	feed(e, "/zz\n")
	assert.Equal(t, Cursor{1, 0}, e.Cursor())
	assert.Equal(t, []ErrorId{ErrSearchFailedId}, errorIDs(drain(e)))

	feed(e, "/")
	press(e, Backspace)
	assert.Equal(t, NormalMode, e.Mode(), "backspace on an empty prompt cancels")
}

func TestCommandLine(t *testing.T) {
	e := newTestEditor("1", "2", "3", "4", "5")

	feed(e, ":3")
	assert.Equal(t, CommandMode, e.Mode())
	assert.Equal(t, ":3", e.GetState().CommandLine)
	feed(e, "\n")
	assert.Equal(t, 2, e.Cursor().Row)
	assert.Empty(t, e.GetState().CommandLine)

	feed(e, ":set rnu\n")
	assert.True(t, e.GetState().RelativeNumbers)

	drain(e)
	feed(e, ":bogus\n")
	feed(e, ":w\n")
	assert.Equal(t, []ErrorId{ErrInvalidCommandId, ErrNoChangesToSaveId}, errorIDs(drain(e)))

	feed(e, ":")
	press(e, Backspace)
	assert.Equal(t, NormalMode, e.Mode())
}

func TestQuit(t *testing.T) {
	e := newTestEditor("abc")
	feed(e, "x")
	drain(e)

	feed(e, ":q\n")
	assert.False(t, e.GetState().Quit)
	assert.Equal(t, []ErrorId{ErrInvalidCommandId}, errorIDs(drain(e)))

	feed(e, ":q!\n")
	assert.True(t, e.GetState().Quit)
	assert.Contains(t, drain(e), Signal(QuitSignal{}))
}

func TestSaveWithWriter(t *testing.T) {
	var written []string
	e := newTestEditor("abc")
	e.SetWriter(LineWriterFunc(func(lines []string) error {
		written = lines
		return nil
	}))

	feed(e, "x:w\n")
	assert.Equal(t, []string{"bc"}, written)
	assert.False(t, e.IsModified())

	var saved bool
	for _, s := range drain(e) {
		if ss, ok := s.(SaveSignal); ok {
			_, saved = ss.Value()
		}
	}
	assert.True(t, saved)

	feed(e, "u")
	assert.True(t, e.IsModified(), "undoing past the save point")
}

func TestSaveFailure(t *testing.T) {
	e := newTestEditor("abc")
	e.SetWriter(LineWriterFunc(func([]string) error {
		return errors.New("disk full")
	}))

	feed(e, "x")
	drain(e)
	feed(e, ":w\n")

	assert.Equal(t, []ErrorId{ErrFailedToSaveId}, errorIDs(drain(e)), "reported once")
	assert.True(t, e.IsModified())
}

func TestSaveFromInsertMode(t *testing.T) {
	e := newTestEditor()

	feed(e, "ix")
	press(e, Ctrl('s'))
	assert.Equal(t, InsertMode, e.Mode())
	assert.False(t, e.IsModified())

	feed(e, "y")
	assert.True(t, e.IsModified())
	press(e, Esc)
	assert.Equal(t, []string{"xy"}, e.Lines())

	feed(e, "u")
	assert.Equal(t, []string{"x"}, e.Lines(), "the save split the insertion")
	assert.False(t, e.IsModified())
}

func TestCtrlCLeavesAnyMode(t *testing.T) {
	e := newTestEditor("abc")

	feed(e, "ix")
	press(e, Ctrl('c'))
	assert.Equal(t, NormalMode, e.Mode())
	assert.Equal(t, []string{"xabc"}, e.Lines())

	feed(e, "v")
	press(e, Ctrl('c'))
	assert.Equal(t, NormalMode, e.Mode())
}

func TestPendingOperator(t *testing.T) {
	e := newTestEditor("abc")

	feed(e, "2d")
	assert.Equal(t, DeletePending, e.Mode())
	assert.Equal(t, "2d", e.GetState().CommandLine)

	feed(e, "z")
	assert.Equal(t, NormalMode, e.Mode())
	assert.Empty(t, e.GetState().CommandLine)
	assert.Equal(t, []string{"abc"}, e.Lines())

	assert.False(t, e.HandleKey(Function(1)), "unbound keys are reported")
}

func TestMotionsWithCounts(t *testing.T) {
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = "line"
	}
	e := newTestEditor(lines...)

	feed(e, "10G")
	assert.Equal(t, 9, e.Cursor().Row)

	feed(e, "gg3j")
	assert.Equal(t, 3, e.Cursor().Row)

	feed(e, "$0")
	assert.Equal(t, 0, e.Cursor().Col)
}

func TestViewportFollowsCursor(t *testing.T) {
	lines := make([]string, 10)
	e := newTestEditor(lines...)
	e.SetViewportHeight(3)

	feed(e, "G")
	assert.Equal(t, 7, e.GetState().TopLine)

	feed(e, "gg")
	assert.Equal(t, 0, e.GetState().TopLine)

	press(e, Ctrl('d'))
	assert.Equal(t, 1, e.Cursor().Row, "half a three-row viewport")

	opts := DefaultOptions()
	opts.PageSize = 4
	e = newEditor(opts, nil)
	e.SetLines(lines)
	press(e, PageDown)
	assert.Equal(t, 4, e.Cursor().Row)
}

func TestEditSession(t *testing.T) {
	e := newTestEditor("ab", "cd")

	require.NoError(t, e.EnterEditMode(CursorRange{Start: Cursor{0, 1}, End: Cursor{0, 2}}, nil, nil))
	assert.Equal(t, []string{"acd"}, e.Lines())
	assert.ErrorIs(t, e.EnterEditMode(CursorRange{}, nil, nil), ErrEditInProgress)

	require.NoError(t, e.EditModeInput(Char('X')))
	require.NoError(t, e.EditModeInput(Enter))
	assert.Equal(t, []string{"aX", "cd"}, e.Lines())
	assert.Equal(t, Cursor{1, 0}, e.Cursor())

	cl, err := e.LeaveEditMode()
	require.NoError(t, err)
	assert.Equal(t, "b\n", CellsString(cl.Deleted))
	assert.Equal(t, "X\n", CellsString(cl.Inserted))

	assert.ErrorIs(t, e.EditModeInput(Char('y')), ErrNoEditSession)
	_, err = e.LeaveEditMode()
	assert.ErrorIs(t, err, ErrNoEditSession)

	require.NoError(t, e.Undo())
	assert.Equal(t, []string{"ab", "cd"}, e.Lines())
	assertConsistent(t, e)
}

func TestSetContentResetsHistory(t *testing.T) {
	e := newTestEditor("abc")
	feed(e, "x")
	require.True(t, e.IsModified())

	e.SetContent([]byte("one\ntwo\n"))
	assert.Equal(t, []string{"one", "two"}, e.Lines())
	assert.False(t, e.IsModified())
	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)
	assertConsistent(t, e)
}

func TestUndoRedoRestoresEveryStep(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		run   func(e *editor)
	}{
		{"open below and above", []string{"a", "b"}, func(e *editor) {
			feed(e, "ox")
			press(e, Esc)
			feed(e, "Oy")
			press(e, Esc)
		}},
		{"delete the last line", []string{"a", "b", "c"}, func(e *editor) {
			feed(e, "Gdddd")
		}},
		{"join", []string{"a", "  b", "c"}, func(e *editor) {
			feed(e, "JJ")
		}},
		{"visual delete across a line break", []string{"abc", "def", "ghi"}, func(e *editor) {
			feed(e, "lvjdx")
		}},
		{"linewise paste", []string{"a", "b"}, func(e *editor) {
			feed(e, "yyjpPggVjyGp")
		}},
		{"substitute lines", []string{"a", "b", "c"}, func(e *editor) {
			feed(e, "2Snew")
			press(e, Esc)
			feed(e, "jS")
			press(e, Esc)
		}},
		{"visual line change", []string{"a", "b", "c"}, func(e *editor) {
			feed(e, "Vjcz")
			press(e, Esc)
		}},
		{"typed line breaks", []string{"ab"}, func(e *editor) {
			feed(e, "a")
			press(e, Enter)
			feed(e, "x")
			press(e, Enter, Esc)
			feed(e, "dw")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(tt.lines...)
			tt.run(e)
			after := e.Lines()

			steps := 0
			for e.undo.CanUndo() {
				require.NoError(t, e.Undo())
				steps++
			}
			require.Positive(t, steps)
			assert.Equal(t, tt.lines, e.Lines())
			assert.False(t, e.IsModified())
			assertConsistent(t, e)

			for range steps {
				require.NoError(t, e.Redo())
			}
			assert.Equal(t, after, e.Lines())
			assert.False(t, e.undo.CanRedo())
			assertConsistent(t, e)
		})
	}
}

func TestRedoInSearchKeepsOriginInBuffer(t *testing.T) {
	e := newTestEditor("ab", "cd")
	feed(e, "ddujl")
	require.Equal(t, Cursor{1, 1}, e.Cursor())

	feed(e, "/")
	press(e, Ctrl('r'))
	assert.Equal(t, SearchMode, e.Mode())
	assert.Equal(t, []string{"cd"}, e.Lines())

	feed(e, "zz")
	press(e, Enter)
	assert.Equal(t, NormalMode, e.Mode())
	assert.Equal(t, Cursor{0, 1}, e.Cursor())

	feed(e, "Ax")
	press(e, Esc)
	assert.Equal(t, []string{"cdx"}, e.Lines())
	assertConsistent(t, e)
}

func TestRedoInVisualKeepsAnchorInBuffer(t *testing.T) {
	e := newTestEditor("ab", "cd")
	feed(e, "ddujv")

	press(e, Ctrl('r'))
	assert.Equal(t, VisualMode, e.Mode())
	assert.Equal(t, []string{"cd"}, e.Lines())

	feed(e, "o")
	assert.Equal(t, Cursor{0, 0}, e.Cursor())

	feed(e, "d")
	assert.Equal(t, []string{"d"}, e.Lines())
	assertConsistent(t, e)
}

func TestCountIsBounded(t *testing.T) {
	e := newTestEditor("a")
	feed(e, "9999999")
	assert.Equal(t, maxCount, e.count)
	press(e, Esc)

	e = newTestEditor(strings.Repeat("a", 100))
	feed(e, "yy")
	drain(e)
	feed(e, "99999p")
	assert.Equal(t, []string{strings.Repeat("a", 100)}, e.Lines())
	assert.Contains(t, errorIDs(drain(e)), ErrFailedToPasteId)
}
