package core

// SelectionType indicates the selection status of a position
type SelectionType int

const (
	SelectionNone      SelectionType = iota // Position is not selected
	SelectionCharacter                      // Position is part of a character-wise visual selection
	SelectionLine                           // Position is part of a line-wise visual selection
)

// Editor represents the main editor interface
type Editor interface {
	// Buffer access
	Buffer() Buffer
	Lines() []string
	SetLines(lines []string) // Replace the document and reset history
	SetContent([]byte)       // Set buffer content from byte slice
	Cursor() Cursor
	SetCursor(Cursor)

	// Mode handling
	Mode() Mode
	SetNormalMode()

	// Event handling
	HandleKey(key Key) bool // Process a key press, false if no binding matched

	// State Management
	GetState() State      // Get the current editor state
	SetState(State)       // Update the editor state
	UpdateCommand(string) // Helper to set command line
	Options() Options

	// Command execution (Called from Command Mode)
	ExecuteCommand(cmd string) error

	// Edit sessions
	EnterEditMode(r CursorRange, initPre, initPost []Cell) error
	EditModeInput(key Key) error
	LeaveEditMode() (ChangeLog, error)

	// History management
	Undo() error
	Redo() error
	IsModified() bool

	// Search
	SearchQuery() string
	Matches(row int) []int          // Match columns on row for the active query
	UpdateSearchCache(from, to int) // Bring rows [from, to) current

	// Viewport
	SetViewportHeight(height int)
	ScrollViewport()

	GetSelectionStatus(pos Cursor) SelectionType
	GetUpdateSignalChan() <-chan Signal
	SetWriter(w LineWriter)
	Save() error                         // Hand the buffer to the writer
	Quit()                               // Signal to quit the editor
	DispatchError(id ErrorId, err error) // Dispatch errors to consumers
	DispatchMessage(args ...string)      // Dispatch (success) messages to consumers
	DispatchSignal(signal Signal)        // Dispatch signals to consumers
}

type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// LineWriter persists the document, one string per line without terminators.
type LineWriter interface {
	WriteLines(lines []string) error
}

// LineWriterFunc adapts a function to LineWriter.
type LineWriterFunc func(lines []string) error

func (f LineWriterFunc) WriteLines(lines []string) error { return f(lines) }

// Options tune editing behavior.
type Options struct {
	UndoCapacity    int    // Max undoable changes kept
	Indent          string // Added after a line ending in '{', '(', '[' or ':'
	PageSize        int    // Rows moved by PageUp/PageDown, half the viewport when 0
	RelativeNumbers bool
}

func DefaultOptions() Options {
	return Options{
		UndoCapacity: DefaultUndoCapacity,
		Indent:       "    ",
	}
}
