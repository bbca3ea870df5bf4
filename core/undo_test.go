package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logAt(row int) ChangeLog {
	return NewChangeLog(Cursor{Row: row}, nil, CellsFromString("x"))
}

func TestUndoStackEvictsOldest(t *testing.T) {
	s := NewUndoStack(3)
	for row := 1; row <= 4; row++ {
		s.Save(logAt(row))
	}
	require.Equal(t, 3, s.Len())

	var rows []int
	for s.CanUndo() {
		cl, _ := s.PopUndo()
		rows = append(rows, cl.At.Row)
	}
	assert.Equal(t, []int{4, 3, 2}, rows)

	_, ok := s.PopUndo()
	assert.False(t, ok)
}

func TestUndoStackSaveClearsRedo(t *testing.T) {
	s := NewUndoStack(10)
	s.Save(logAt(1))
	s.Save(logAt(2))

	cl, ok := s.PopUndo()
	require.True(t, ok)
	s.PushRedo(cl)
	require.True(t, s.CanRedo())

	s.Save(logAt(3))
	assert.False(t, s.CanRedo(), "history never branches")

	cl, ok = s.PopUndo()
	require.True(t, ok)
	assert.Equal(t, 3, cl.At.Row)
}

func TestUndoStackModified(t *testing.T) {
	s := NewUndoStack(10)
	assert.False(t, s.IsModified())

	s.Save(logAt(1))
	assert.True(t, s.IsModified())

	s.MarkSaved()
	assert.False(t, s.IsModified())

	s.Save(logAt(2))
	assert.True(t, s.IsModified())

	cl, _ := s.PopUndo()
	s.PushRedo(cl)
	assert.False(t, s.IsModified(), "undoing back to the save point")

	cl, _ = s.PopUndo()
	s.PushRedo(cl)
	assert.True(t, s.IsModified(), "undoing past the save point")

	cl, _ = s.PopRedo()
	s.PushUndo(cl)
	assert.False(t, s.IsModified())
}

func TestUndoStackModifiedAfterEviction(t *testing.T) {
	s := NewUndoStack(1)
	s.Save(logAt(1))
	s.MarkSaved()
	s.Save(logAt(2))

	cl, ok := s.PopUndo()
	require.True(t, ok)
	s.PushRedo(cl)

	assert.False(t, s.IsModified(), "the evicted log was the saved one")
	assert.False(t, s.CanUndo())
}

func TestChangeLogSwap(t *testing.T) {
	cl := NewChangeLog(Cursor{1, 2}, CellsFromString("ab"), CellsFromString("c"))
	inv := cl.Swap()

	assert.Equal(t, cl.At, inv.At)
	assert.Equal(t, "c", CellsString(inv.Deleted))
	assert.Equal(t, "ab", CellsString(inv.Inserted))
	assert.False(t, cl.IsEmpty())
	assert.True(t, NewChangeLog(Cursor{}, nil, nil).IsEmpty())
}
