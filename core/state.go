package core

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// State is the part of the editor the UI renders besides the buffer.
type State struct {
	Mode        Mode   // Current automaton state
	StatusLine  string // Mode label shown in the status line
	CommandLine string // Current command being typed, or the pending count
	Quit        bool   // Flag indicating if the editor should exit

	// Viewport information
	TopLine        int // First line visible in the viewport (0-indexed)
	ViewportHeight int // Number of lines that can be displayed

	RelativeNumbers bool // Flag for relative line numbers
}

// InitialState creates a default state
func InitialState() State {
	return State{
		Mode:           NormalMode,
		StatusLine:     NormalMode.Label(),
		ViewportHeight: 24,
	}
}

// register holds the last yanked or deleted text.
type register struct {
	cells    []Cell
	linewise bool
}

// Concrete implementation of Editor
type editor struct {
	buffer    Buffer
	cursor    Cursor
	preferred int // column vertical motions aim for

	ranges *RangeEditor
	search *SearchIndex
	undo   *UndoStack
	edit   *EditState

	controller *Controller
	state      State
	opts       Options

	count       int
	visualStart Cursor
	register    register

	// search prompt
	searchInput    []rune
	searchOrigin   Cursor
	searchBackward bool
	lastQuery      string
	highlight      bool

	commandInput []rune

	clipboard    Clipboard
	writer       LineWriter
	updateSignal chan Signal
}

// New creates a new editor instance over an empty buffer
func New(opts Options, clipboard Clipboard) Editor {
	return newEditor(opts, clipboard)
}

func newEditor(opts Options, clipboard Clipboard) *editor {
	if opts.UndoCapacity <= 0 {
		opts.UndoCapacity = DefaultUndoCapacity
	}

	buffer := NewBuffer()
	search := NewSearchIndex(buffer.LineCount())
	e := &editor{
		buffer:       buffer,
		search:       search,
		ranges:       NewRangeEditor(buffer, search),
		undo:         NewUndoStack(opts.UndoCapacity),
		state:        InitialState(),
		opts:         opts,
		clipboard:    clipboard,
		updateSignal: make(chan Signal, 100), // Buffered channel for updates
	}
	e.state.RelativeNumbers = opts.RelativeNumbers
	e.controller = NewController(Layered{localBindings(), globalBindings()}, NormalMode, e.run)
	return e
}

func (e *editor) run(action Action, key Key) Mode {
	effect, ok := effects[action]
	if !ok {
		log.Printf("no effect bound to %s", action)
		return NoMode
	}
	return effect(e, key)
}

func (e *editor) HandleKey(key Key) bool {
	prev := e.controller.State()
	handled := e.controller.Receive(key)
	if next := e.controller.State(); next != prev {
		e.modeChanged(next)
	}
	e.ScrollViewport()
	return handled
}

func (e *editor) modeChanged(m Mode) {
	if m != InsertMode && e.edit != nil {
		e.LeaveEditMode()
	}
	e.state.Mode = m
	e.state.StatusLine = m.Label()
	e.DispatchSignal(ModeSignal{mode: m})
}

func (e *editor) Mode() Mode { return e.controller.State() }

func (e *editor) SetNormalMode() {
	if e.controller.State() == NormalMode {
		return
	}
	e.controller.SetState(NormalMode)
	e.cursor = e.cursor.ClampNormal(e.buffer)
	e.modeChanged(NormalMode)
}

func (e *editor) Buffer() Buffer  { return e.buffer }
func (e *editor) Lines() []string { return e.buffer.Lines() }
func (e *editor) Cursor() Cursor  { return e.cursor }
func (e *editor) Options() Options {
	return e.opts
}

func (e *editor) SetCursor(c Cursor) {
	if e.Mode() == InsertMode {
		e.cursor = c.ClampInsert(e.buffer)
	} else {
		e.cursor = c.ClampNormal(e.buffer)
	}
	e.preferred = e.cursor.Col
	e.ScrollViewport()
}

// SetLines replaces the document. History and the search cache start over.
func (e *editor) SetLines(lines []string) {
	e.edit = nil
	e.buffer = NewBufferFromLines(lines)
	e.ranges.Reset(e.buffer)
	e.undo = NewUndoStack(e.opts.UndoCapacity)
	e.cursor = Cursor{}
	e.preferred = 0
	e.state.TopLine = 0
	e.SetNormalMode()
}

func (e *editor) SetContent(content []byte) {
	e.SetLines(strings.Split(strings.TrimSuffix(string(content), "\n"), "\n"))
}

func (e *editor) GetUpdateSignalChan() <-chan Signal {
	return e.updateSignal // Return the read-only channel
}

func (e *editor) GetState() State {
	return e.state
}

// SetState allows the UI to update viewport and display options
func (e *editor) SetState(state State) {
	e.state = state
}

// UpdateCommand is a helper for modes to update the command line
func (e *editor) UpdateCommand(cmd string) {
	e.state.CommandLine = cmd
}

func (e *editor) SetViewportHeight(height int) {
	e.state.ViewportHeight = max(height, 1)
	e.ScrollViewport()
}

// ScrollViewport ensures the cursor is within the visible area
func (e *editor) ScrollViewport() {
	row := e.cursor.Row
	height := max(e.state.ViewportHeight, 1)

	if row < e.state.TopLine {
		e.state.TopLine = row
	} else if row >= e.state.TopLine+height {
		// Scroll down so cursor is on the last line of the viewport
		e.state.TopLine = row - height + 1
	}

	// Ensure TopLine doesn't go below 0
	e.state.TopLine = max(e.state.TopLine, 0)
}

func (e *editor) SetWriter(w LineWriter) {
	e.writer = w
}

// ExecuteCommand executes a command string (typically entered in command mode)
func (e *editor) ExecuteCommand(cmd string) error {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	parts := strings.Fields(cmd)
	command := parts[0]
	args := parts[1:]

	switch command {
	case "q", "quit":
		if e.IsModified() {
			return ErrUnsavedChanges
		}
		e.Quit()
		return nil

	case "q!", "quit!":
		e.Quit()
		return nil

	case "w", "write":
		if !e.IsModified() {
			return ErrNoChangesToSave
		}
		return e.Save()

	case "wq", "x":
		if e.IsModified() {
			if err := e.Save(); err != nil {
				return err
			}
		}
		e.Quit()
		return nil

	case "noh", "nohlsearch":
		e.highlight = false
		e.DispatchMessage(SearchClearedMessage)
		return nil

	case "set":
		if len(args) == 1 {
			switch args[0] {
			case "relativenumber", "rnu":
				e.setRelativeNumbers(true)
				return nil
			case "norelativenumber", "nornu", "nu", "number":
				e.setRelativeNumbers(false)
				return nil
			}
		}
		return fmt.Errorf("%w: set %s", ErrInvalidCommand, strings.Join(args, " "))

	default:
		// Handle line number navigation (e.g., ":10")
		if lineNum, err := strconv.Atoi(command); err == nil && lineNum > 0 {
			e.cursor = e.cursor.MoveToLine(e.buffer, lineNum-1)
			e.preferred = e.cursor.Col
			e.ScrollViewport()
			return nil
		}
		return fmt.Errorf("%w: %s", ErrInvalidCommand, command)
	}
}

func (e *editor) setRelativeNumbers(enabled bool) {
	e.state.RelativeNumbers = enabled
	e.DispatchSignal(RelativeNumbersSignal{enabled: enabled})
	if enabled {
		e.DispatchMessage(RelativeNumbersEnabledMessage)
	} else {
		e.DispatchMessage(RelativeNumbersDisabledMessage)
	}
}

// --- History ---

func (e *editor) Undo() error {
	if e.edit != nil {
		e.LeaveEditMode()
	}
	cl, ok := e.undo.PopUndo()
	if !ok {
		return ErrNothingToUndo
	}
	if err := e.ranges.ApplyLog(cl.Swap()); err != nil {
		log.Printf("undo: %v", err)
		e.undo.PushUndo(cl)
		return err
	}
	e.undo.PushRedo(cl)
	e.cursor = cl.At.ClampNormal(e.buffer)
	e.preferred = e.cursor.Col
	e.clampAnchors()
	e.DispatchSignal(UndoSignal{})
	return nil
}

func (e *editor) Redo() error {
	if e.edit != nil {
		e.LeaveEditMode()
	}
	cl, ok := e.undo.PopRedo()
	if !ok {
		return ErrNothingToRedo
	}
	if err := e.ranges.ApplyLog(cl); err != nil {
		log.Printf("redo: %v", err)
		e.undo.PushRedo(cl)
		return err
	}
	e.undo.PushUndo(cl)
	e.cursor = e.ranges.FindCursorPair(cl.At, len(cl.Inserted)).ClampNormal(e.buffer)
	e.preferred = e.cursor.Col
	e.clampAnchors()
	e.DispatchSignal(RedoSignal{})
	return nil
}

// clampAnchors keeps the visual and search anchors inside the buffer after a
// change made while those modes are active.
func (e *editor) clampAnchors() {
	e.visualStart = e.visualStart.ClampNormal(e.buffer)
	e.searchOrigin = e.searchOrigin.ClampNormal(e.buffer)
}

// IsModified reports changes since the last save, an open session included.
func (e *editor) IsModified() bool {
	if e.edit != nil && (len(e.edit.removed) > 0 || len(e.edit.Inserted()) > 0) {
		return true
	}
	return e.undo.IsModified()
}

// --- Search ---

func (e *editor) SearchQuery() string { return e.search.Query() }

func (e *editor) Matches(row int) []int {
	if !e.highlight {
		return nil
	}
	return e.search.Result(e.buffer, row)
}

func (e *editor) UpdateSearchCache(from, to int) {
	if e.highlight {
		e.search.UpdateCache(e.buffer, from, to)
	}
}

// --- Selection ---

// selection returns the visual selection bounds, both inclusive.
func (e *editor) selection() (start, end Cursor) {
	r := NewCursorRange(e.visualStart, e.cursor)
	return r.Start, r.End
}

func (e *editor) GetSelectionStatus(pos Cursor) SelectionType {
	mode := e.Mode()
	if !mode.IsVisual() {
		return SelectionNone
	}

	start, end := e.selection()
	if mode == VisualLineMode {
		if pos.Row >= start.Row && pos.Row <= end.Row {
			return SelectionLine
		}
		return SelectionNone
	}

	if !pos.Less(start) && !end.Less(pos) {
		return SelectionCharacter
	}
	return SelectionNone
}

// --- Registers ---

// pasteSource prefers the clipboard when it holds text other than the register.
func (e *editor) pasteSource() register {
	if e.clipboard == nil {
		return e.register
	}
	content, err := e.clipboard.Read()
	if err != nil || content == "" || content == CellsString(e.register.cells) {
		return e.register
	}
	return register{
		cells:    CellsFromString(content),
		linewise: strings.HasSuffix(content, "\n"),
	}
}

// --- Persistence ---

func (e *editor) Save() error {
	lines := e.buffer.Lines()
	if e.writer == nil {
		e.undo.MarkSaved()
		e.DispatchSignal(SaveSignal{lines: lines})
		return nil
	}

	if err := e.writer.WriteLines(lines); err != nil {
		err = fmt.Errorf("write failed: %w", err)
		e.DispatchError(ErrFailedToSaveId, err)
		return &EditorError{id: ErrFailedToSaveId, err: err}
	}

	e.undo.MarkSaved()
	e.DispatchSignal(SaveSignal{lines: lines, written: true})
	e.DispatchMessage(ChangesSavedMessage)
	return nil
}

func (e *editor) Quit() {
	e.state.Quit = true
	select {
	case e.updateSignal <- QuitSignal{}:
	default:
		log.Println("Editor: Failed to send QuitSignal - channel full or not ready")
	}
}
