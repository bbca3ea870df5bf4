package core

import "unicode"

// anyChar matches every printable key, Enter and Tab included.
var anyChar = CharRange(0, unicode.MaxRune)

// motionKeys are shared by normal and both visual modes.
var motionKeys = []struct {
	action Action
	keys   []Key
}{
	{ActLeft, []Key{Char('h'), Left, Backspace}},
	{ActRight, []Key{Char('l'), Right, Char(' ')}},
	{ActUp, []Key{Char('k'), Up}},
	{ActDown, []Key{Char('j'), Down}},
	{ActWordForward, []Key{Char('w')}},
	{ActWordBackward, []Key{Char('b')}},
	{ActWordEnd, []Key{Char('e')}},
	{ActFirstNonBlank, []Key{Char('^')}},
	{ActLineEnd, []Key{Char('$'), End}},
	{ActBufferEnd, []Key{Char('G')}},
	{ActBlockForward, []Key{Char('}')}},
	{ActBlockBackward, []Key{Char('{')}},
	{ActPageUp, []Key{PageUp, Ctrl('u')}},
	{ActPageDown, []Key{PageDown, Ctrl('d')}},
}

// localBindings is the modal key graph of a buffer.
func localBindings() *Automaton {
	a := NewAutomaton()

	// --- Normal ---
	a.On(NormalMode, CharRange('1', '9'), ActCountDigit, NoMode).
		OnKey(NormalMode, ActZero, NoMode, Char('0'), Home).
		OnKey(NormalMode, ActEscape, NormalMode, Esc)
	for _, m := range motionKeys {
		a.OnKey(NormalMode, m.action, NoMode, m.keys...)
	}
	a.OnKey(NormalMode, ActOperator, GotoPending, Char('g')).
		OnKey(NormalMode, ActOperator, DeletePending, Char('d')).
		OnKey(NormalMode, ActOperator, ChangePending, Char('c')).
		OnKey(NormalMode, ActOperator, YankPending, Char('y')).
		OnKey(NormalMode, ActInsertBefore, InsertMode, Char('i'), Insert).
		OnKey(NormalMode, ActAppend, InsertMode, Char('a')).
		OnKey(NormalMode, ActInsertLineStart, InsertMode, Char('I')).
		OnKey(NormalMode, ActAppendLineEnd, InsertMode, Char('A')).
		OnKey(NormalMode, ActOpenBelow, InsertMode, Char('o')).
		OnKey(NormalMode, ActOpenAbove, InsertMode, Char('O')).
		OnKey(NormalMode, ActSubstitute, InsertMode, Char('s')).
		OnKey(NormalMode, ActSubstituteLine, InsertMode, Char('S')).
		OnKey(NormalMode, ActChangeToEnd, InsertMode, Char('C')).
		OnKey(NormalMode, ActDeleteChar, NoMode, Char('x'), Delete).
		OnKey(NormalMode, ActDeleteCharBefore, NoMode, Char('X')).
		OnKey(NormalMode, ActDeleteToEnd, NoMode, Char('D')).
		OnKey(NormalMode, ActJoinLines, NoMode, Char('J')).
		OnKey(NormalMode, ActYankLine, NoMode, Char('Y')).
		OnKey(NormalMode, ActPasteAfter, NoMode, Char('p')).
		OnKey(NormalMode, ActPasteBefore, NoMode, Char('P')).
		OnKey(NormalMode, ActUndo, NoMode, Char('u')).
		OnKey(NormalMode, ActRedo, NoMode, Char('U')).
		OnKey(NormalMode, ActEnterVisual, VisualMode, Char('v')).
		OnKey(NormalMode, ActEnterVisual, VisualLineMode, Char('V')).
		OnKey(NormalMode, ActEnterCommand, CommandMode, Char(':')).
		OnKey(NormalMode, ActSearchForward, SearchMode, Char('/')).
		OnKey(NormalMode, ActSearchBackward, SearchMode, Char('?')).
		OnKey(NormalMode, ActSearchNext, NoMode, Char('n')).
		OnKey(NormalMode, ActSearchPrev, NoMode, Char('N'))

	// --- Operator pending ---
	for _, m := range []Mode{DeletePending, ChangePending, YankPending, GotoPending} {
		a.On(m, CharRange('1', '9'), ActCountDigit, NoMode)
	}
	a.OnKey(GotoPending, ActBufferStart, NormalMode, Char('g')).
		OnKey(DeletePending, ActDeleteLine, NormalMode, Char('d')).
		OnKey(DeletePending, ActDeleteWord, NormalMode, Char('w')).
		OnKey(DeletePending, ActDeleteToEnd, NormalMode, Char('$')).
		OnKey(ChangePending, ActSubstituteLine, InsertMode, Char('c')).
		OnKey(ChangePending, ActChangeWord, InsertMode, Char('w')).
		OnKey(ChangePending, ActChangeToEnd, InsertMode, Char('$')).
		OnKey(YankPending, ActYankLine, NormalMode, Char('y')).
		OnKey(YankPending, ActYankWord, NormalMode, Char('w')).
		OnKey(YankPending, ActYankToEnd, NormalMode, Char('$'))
	for _, m := range []Mode{DeletePending, ChangePending, YankPending, GotoPending} {
		a.On(m, Otherwise(), ActAbort, NormalMode)
	}

	// --- Insert ---
	a.OnKey(InsertMode, ActLeaveEdit, NormalMode, Esc).
		OnKey(InsertMode, ActEditMove, NoMode, Left, Right, Up, Down, Home, End).
		OnKey(InsertMode, ActEditInput, NoMode, Backspace).
		On(InsertMode, anyChar, ActEditInput, NoMode)

	// --- Visual ---
	for _, v := range []Mode{VisualMode, VisualLineMode} {
		a.On(v, CharRange('1', '9'), ActCountDigit, NoMode).
			OnKey(v, ActZero, NoMode, Char('0'), Home).
			OnKey(v, ActExitVisual, NormalMode, Esc)
		for _, m := range motionKeys {
			a.OnKey(v, m.action, NoMode, m.keys...)
		}
		a.OnKey(v, ActSwapSelection, NoMode, Char('o')).
			OnKey(v, ActVisualDelete, NormalMode, Char('d'), Char('x'), Delete).
			OnKey(v, ActVisualChange, InsertMode, Char('c'), Char('s')).
			OnKey(v, ActVisualYank, NormalMode, Char('y'))
	}
	a.OnKey(VisualMode, ActExitVisual, NormalMode, Char('v')).
		OnKey(VisualMode, ActNone, VisualLineMode, Char('V')).
		OnKey(VisualLineMode, ActExitVisual, NormalMode, Char('V')).
		OnKey(VisualLineMode, ActNone, VisualMode, Char('v'))

	// --- Command line ---
	a.OnKey(CommandMode, ActEscape, NormalMode, Esc).
		OnKey(CommandMode, ActCommandExecute, NormalMode, Enter).
		OnKey(CommandMode, ActCommandBackspace, NoMode, Backspace).
		On(CommandMode, anyChar, ActCommandInput, NoMode)

	// --- Search prompt ---
	a.OnKey(SearchMode, ActEscape, NormalMode, Esc).
		OnKey(SearchMode, ActSearchAccept, NormalMode, Enter).
		OnKey(SearchMode, ActSearchBackspace, NoMode, Backspace).
		On(SearchMode, anyChar, ActSearchInput, NoMode)

	return a
}

// globalBindings apply in every state the local graph leaves a key unbound.
func globalBindings() *Automaton {
	return NewAutomaton().
		OnAny(Exact(Ctrl('s')), ActSave, NoMode).
		OnAny(Exact(Ctrl('r')), ActRedo, NoMode).
		OnAny(Exact(Ctrl('c')), ActEscape, NormalMode)
}
