package core

import "strconv"

// Mode identifies a state of the key automaton.
type Mode int

const (
	NoMode Mode = iota // no transition requested
	NormalMode
	InsertMode
	VisualMode
	VisualLineMode
	CommandMode
	SearchMode

	// Operator-pending states, entered after the first key of a sequence
	DeletePending
	ChangePending
	YankPending
	GotoPending
)

var modeNames = map[Mode]string{
	NoMode:         "",
	NormalMode:     "normal",
	InsertMode:     "insert",
	VisualMode:     "visual",
	VisualLineMode: "visual-line",
	CommandMode:    "command",
	SearchMode:     "search",
	DeletePending:  "operator-delete",
	ChangePending:  "operator-change",
	YankPending:    "operator-yank",
	GotoPending:    "operator-goto",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// Label is the status-line text for the mode.
func (m Mode) Label() string {
	switch m {
	case InsertMode:
		return "INSERT"
	case VisualMode:
		return "VISUAL"
	case VisualLineMode:
		return "VISUAL LINE"
	case CommandMode:
		return "COMMAND"
	case SearchMode:
		return "SEARCH"
	}
	return "NORMAL"
}

// IsVisual reports whether a selection is active in the mode.
func (m Mode) IsVisual() bool {
	return m == VisualMode || m == VisualLineMode
}

// maxCount bounds the count prefix; further digits are ignored.
const maxCount = 99999

// pushCountDigit appends a digit to the pending count prefix.
func (e *editor) pushCountDigit(r rune) {
	if next := e.count*10 + int(r-'0'); next <= maxCount {
		e.count = next
	}
	e.UpdateCommand(strconv.Itoa(e.count))
}

// takeCount returns the pending count (default 1) and clears it along with
// the pending keys shown on the command line.
func (e *editor) takeCount() int {
	count := max(e.count, 1)
	e.count = 0
	e.UpdateCommand("")
	return count
}

func (e *editor) hasCount() bool { return e.count > 0 }
