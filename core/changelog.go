package core

import "time"

// ChangeLog records one reversible edit: at At, Deleted was replaced by Inserted.
type ChangeLog struct {
	Timestamp time.Time
	At        Cursor
	Deleted   []Cell
	Inserted  []Cell

	seq uint64 // assigned by UndoStack.Save
}

func NewChangeLog(at Cursor, deleted, inserted []Cell) ChangeLog {
	return ChangeLog{
		Timestamp: time.Now(),
		At:        at,
		Deleted:   deleted,
		Inserted:  inserted,
	}
}

// Swap returns the inverse edit anchored at the same cursor.
func (l ChangeLog) Swap() ChangeLog {
	l.Deleted, l.Inserted = l.Inserted, l.Deleted
	return l
}

// IsEmpty reports a log that changes nothing.
func (l ChangeLog) IsEmpty() bool {
	return len(l.Deleted) == 0 && len(l.Inserted) == 0
}
