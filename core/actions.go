package core

// Action names an effect the automaton can trigger.
type Action int

const (
	ActNone Action = iota

	// counts and cancellation
	ActCountDigit
	ActZero
	ActEscape
	ActOperator
	ActAbort

	// motions
	ActLeft
	ActRight
	ActUp
	ActDown
	ActWordForward
	ActWordBackward
	ActWordEnd
	ActFirstNonBlank
	ActLineEnd
	ActBufferStart
	ActBufferEnd
	ActBlockForward
	ActBlockBackward
	ActPageUp
	ActPageDown

	// edit sessions
	ActInsertBefore
	ActAppend
	ActInsertLineStart
	ActAppendLineEnd
	ActOpenBelow
	ActOpenAbove
	ActSubstitute
	ActSubstituteLine
	ActChangeToEnd
	ActChangeWord
	ActEditInput
	ActEditMove
	ActLeaveEdit

	// deletes and registers
	ActDeleteChar
	ActDeleteCharBefore
	ActDeleteToEnd
	ActDeleteLine
	ActDeleteWord
	ActJoinLines
	ActYankLine
	ActYankWord
	ActYankToEnd
	ActPasteAfter
	ActPasteBefore

	ActUndo
	ActRedo
	ActSave

	// visual
	ActEnterVisual
	ActExitVisual
	ActSwapSelection
	ActVisualDelete
	ActVisualChange
	ActVisualYank

	// command line
	ActEnterCommand
	ActCommandInput
	ActCommandBackspace
	ActCommandExecute

	// search
	ActSearchForward
	ActSearchBackward
	ActSearchInput
	ActSearchBackspace
	ActSearchAccept
	ActSearchNext
	ActSearchPrev
)

var actionNames = map[Action]string{
	ActNone:             "none",
	ActCountDigit:       "count-digit",
	ActZero:             "zero",
	ActEscape:           "escape",
	ActOperator:         "operator",
	ActAbort:            "abort",
	ActLeft:             "left",
	ActRight:            "right",
	ActUp:               "up",
	ActDown:             "down",
	ActWordForward:      "word-forward",
	ActWordBackward:     "word-backward",
	ActWordEnd:          "word-end",
	ActFirstNonBlank:    "first-non-blank",
	ActLineEnd:          "line-end",
	ActBufferStart:      "buffer-start",
	ActBufferEnd:        "buffer-end",
	ActBlockForward:     "block-forward",
	ActBlockBackward:    "block-backward",
	ActPageUp:           "page-up",
	ActPageDown:         "page-down",
	ActInsertBefore:     "insert-before",
	ActAppend:           "append",
	ActInsertLineStart:  "insert-line-start",
	ActAppendLineEnd:    "append-line-end",
	ActOpenBelow:        "open-below",
	ActOpenAbove:        "open-above",
	ActSubstitute:       "substitute",
	ActSubstituteLine:   "substitute-line",
	ActChangeToEnd:      "change-to-end",
	ActChangeWord:       "change-word",
	ActEditInput:        "edit-input",
	ActEditMove:         "edit-move",
	ActLeaveEdit:        "leave-edit",
	ActDeleteChar:       "delete-char",
	ActDeleteCharBefore: "delete-char-before",
	ActDeleteToEnd:      "delete-to-end",
	ActDeleteLine:       "delete-line",
	ActDeleteWord:       "delete-word",
	ActJoinLines:        "join-lines",
	ActYankLine:         "yank-line",
	ActYankWord:         "yank-word",
	ActYankToEnd:        "yank-to-end",
	ActPasteAfter:       "paste-after",
	ActPasteBefore:      "paste-before",
	ActUndo:             "undo",
	ActRedo:             "redo",
	ActSave:             "save",
	ActEnterVisual:      "enter-visual",
	ActExitVisual:       "exit-visual",
	ActSwapSelection:    "swap-selection",
	ActVisualDelete:     "visual-delete",
	ActVisualChange:     "visual-change",
	ActVisualYank:       "visual-yank",
	ActEnterCommand:     "enter-command",
	ActCommandInput:     "command-input",
	ActCommandBackspace: "command-backspace",
	ActCommandExecute:   "command-execute",
	ActSearchForward:    "search-forward",
	ActSearchBackward:   "search-backward",
	ActSearchInput:      "search-input",
	ActSearchBackspace:  "search-backspace",
	ActSearchAccept:     "search-accept",
	ActSearchNext:       "search-next",
	ActSearchPrev:       "search-prev",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Effect runs an action against the editor. It returns the state to move to,
// or NoMode to follow the edge.
type Effect func(e *editor, key Key) Mode

var effects = map[Action]Effect{
	ActNone:       func(*editor, Key) Mode { return NoMode },
	ActCountDigit: countDigit,
	ActZero:       zero,
	ActEscape:     escape,
	ActOperator:   operator,
	ActAbort:      abort,

	ActLeft:          motion(moveLeft),
	ActRight:         motion(moveRight),
	ActUp:            verticalMotion(Cursor.MoveUp),
	ActDown:          verticalMotion(Cursor.MoveDown),
	ActWordForward:   motion(Cursor.MoveWordForward),
	ActWordBackward:  motion(Cursor.MoveWordBackward),
	ActWordEnd:       motion(Cursor.MoveWordToEnd),
	ActFirstNonBlank: motion(firstNonBlank),
	ActLineEnd:       lineEnd,
	ActBufferStart:   bufferStart,
	ActBufferEnd:     bufferEnd,
	ActBlockForward:  motion(Cursor.MoveBlockForward),
	ActBlockBackward: motion(Cursor.MoveBlockBackward),
	ActPageUp:        page(-1),
	ActPageDown:      page(1),

	ActInsertBefore:    insertBefore,
	ActAppend:          appendAfter,
	ActInsertLineStart: insertLineStart,
	ActAppendLineEnd:   appendLineEnd,
	ActOpenBelow:       openBelow,
	ActOpenAbove:       openAbove,
	ActSubstitute:      substitute,
	ActSubstituteLine:  substituteLine,
	ActChangeToEnd:     changeToEnd,
	ActChangeWord:      changeWord,
	ActEditInput:       editInput,
	ActEditMove:        editMove,
	ActLeaveEdit:       leaveEdit,

	ActDeleteChar:       deleteChar,
	ActDeleteCharBefore: deleteCharBefore,
	ActDeleteToEnd:      deleteToEnd,
	ActDeleteLine:       deleteLine,
	ActDeleteWord:       deleteWord,
	ActJoinLines:        joinLines,
	ActYankLine:         yankLine,
	ActYankWord:         yankWord,
	ActYankToEnd:        yankToEnd,
	ActPasteAfter:       pasteAfter,
	ActPasteBefore:      pasteBefore,

	ActUndo: undo,
	ActRedo: redo,
	ActSave: save,

	ActEnterVisual:   enterVisual,
	ActExitVisual:    exitVisual,
	ActSwapSelection: swapSelection,
	ActVisualDelete:  visualDelete,
	ActVisualChange:  visualChange,
	ActVisualYank:    visualYank,

	ActEnterCommand:     enterCommand,
	ActCommandInput:     commandInput,
	ActCommandBackspace: commandBackspace,
	ActCommandExecute:   commandExecute,

	ActSearchForward:   searchStart(false),
	ActSearchBackward:  searchStart(true),
	ActSearchInput:     searchInput,
	ActSearchBackspace: searchBackspace,
	ActSearchAccept:    searchAccept,
	ActSearchNext:      searchRepeat(false),
	ActSearchPrev:      searchRepeat(true),
}
