package core

const DefaultUndoCapacity = 1000

// UndoStack keeps a bounded queue of undoable logs (oldest evicted first) and
// a LIFO of undone logs. Saving a new log clears the redo side: history never
// branches.
type UndoStack struct {
	capacity int
	undo     []ChangeLog // oldest first
	redo     []ChangeLog

	seq   uint64 // last sequence number handed out
	floor uint64 // sequence number of the newest evicted log
	saved uint64 // head() at the last MarkSaved
}

func NewUndoStack(capacity int) *UndoStack {
	if capacity <= 0 {
		capacity = DefaultUndoCapacity
	}
	return &UndoStack{capacity: capacity}
}

// Save pushes log as the newest undoable change.
func (s *UndoStack) Save(log ChangeLog) {
	s.seq++
	log.seq = s.seq
	s.undo = append(s.undo, log)

	if excess := len(s.undo) - s.capacity; excess > 0 {
		s.floor = s.undo[excess-1].seq
		s.undo = append([]ChangeLog(nil), s.undo[excess:]...)
	}

	s.redo = nil
}

// PopUndo removes and returns the most recently saved log.
func (s *UndoStack) PopUndo() (ChangeLog, bool) {
	if len(s.undo) == 0 {
		return ChangeLog{}, false
	}
	log := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	return log, true
}

// PushUndo puts a redone log back without touching the redo side.
func (s *UndoStack) PushUndo(log ChangeLog) {
	s.undo = append(s.undo, log)
}

func (s *UndoStack) PushRedo(log ChangeLog) {
	s.redo = append(s.redo, log)
}

func (s *UndoStack) PopRedo() (ChangeLog, bool) {
	if len(s.redo) == 0 {
		return ChangeLog{}, false
	}
	log := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return log, true
}

func (s *UndoStack) CanUndo() bool { return len(s.undo) > 0 }
func (s *UndoStack) CanRedo() bool { return len(s.redo) > 0 }
func (s *UndoStack) Len() int      { return len(s.undo) }

// MarkSaved records the current position as the save point.
func (s *UndoStack) MarkSaved() {
	s.saved = s.head()
}

// IsModified reports whether the newest applied change differs from the one
// current at the last save.
func (s *UndoStack) IsModified() bool {
	return s.head() != s.saved
}

// head is the sequence number of the newest applied change.
func (s *UndoStack) head() uint64 {
	if len(s.undo) == 0 {
		return s.floor
	}
	return s.undo[len(s.undo)-1].seq
}
