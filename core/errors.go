package core

import (
	"errors"
	"fmt"
	"log"
)

var (
	ErrEndOfBuffer     = errors.New("end of buffer")
	ErrStartOfBuffer   = errors.New("start of buffer")
	ErrEndOfLine       = errors.New("end of line")
	ErrStartOfLine     = errors.New("start of line")
	ErrInvalidRange    = errors.New("invalid range")
	ErrInvalidCommand  = errors.New("invalid command")
	ErrNothingToUndo   = errors.New("already at oldest change")
	ErrNothingToRedo   = errors.New("already at newest change")
	ErrNoMatch         = errors.New("pattern not found")
	ErrNoChangesToSave = errors.New("no changes to save")
	ErrUnsavedChanges  = errors.New("unsaved changes (use q! to override)")
	ErrEditInProgress  = errors.New("edit session already open")
	ErrNoEditSession   = errors.New("no edit session open")
	ErrCountTooLarge   = errors.New("count too large")
)

type ErrorId int

const (
	ErrEndOfBufferId ErrorId = iota
	ErrStartOfBufferId
	ErrEndOfLineId
	ErrStartOfLineId
	ErrInvalidRangeId
	ErrInvalidCommandId
	ErrNoChangesToSaveId
	ErrFailedToSaveId
	ErrFailedToYankId
	ErrFailedToPasteId
	ErrUndoFailedId
	ErrRedoFailedId
	ErrSearchFailedId
)

// EditorError pairs an error with the id consumers switch on.
type EditorError struct {
	id  ErrorId
	err error
}

func (e *EditorError) ID() ErrorId  { return e.id }
func (e *EditorError) Error() string { return e.err.Error() }
func (e *EditorError) Unwrap() error { return e.err }

func invalidRange(r CursorRange, reason string) error {
	return fmt.Errorf("%w: %s: %d:%d..%d:%d", ErrInvalidRange, reason,
		r.Start.Row, r.Start.Col, r.End.Row, r.End.Col)
}

func (e *editor) DispatchError(id ErrorId, err error) {
	select {
	case e.updateSignal <- ErrorSignal{id, err}:
	default:
		log.Println("Channel is full, unable to send error signal")
	}
}
