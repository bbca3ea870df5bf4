package adapter_bubbletea

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/vimcore/adapter-bubbletea/highlighter"
	"github.com/ionut-t/vimcore/config"
	editor "github.com/ionut-t/vimcore/core"
)

type Theme struct {
	NormalModeStyle        lipgloss.Style
	InsertModeStyle        lipgloss.Style
	VisualModeStyle        lipgloss.Style
	CommandModeStyle       lipgloss.Style
	StatusLineStyle        lipgloss.Style
	ModifiedStyle          lipgloss.Style
	CommandLineStyle       lipgloss.Style
	MessageStyle           lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	SelectionStyle         lipgloss.Style
	SearchHighlightStyle   lipgloss.Style
	ErrorStyle             lipgloss.Style
	PlaceholderStyle       lipgloss.Style
}

var DefaultTheme = Theme{
	NormalModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	InsertModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	VisualModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("127")).Foreground(lipgloss.Color("255")),
	CommandModeStyle:       lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("255")),
	CommandLineStyle:       lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	ModifiedStyle:          lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("214")).Bold(true),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Align(lipgloss.Right),
	SelectionStyle:         lipgloss.NewStyle().Background(lipgloss.Color("237")),
	SearchHighlightStyle:   lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0")),
	PlaceholderStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// Blink and clear timers carry the tag they were started with. Starting a
// new timer bumps the tag, so ticks from an older one are dropped.
type blinkMsg struct{ tag int }
type resumeBlinkMsg struct{ tag int }

type CursorMode int

const (
	CursorSteady CursorMode = iota
	CursorBlink
)

const (
	cursorBlinkInterval = 500 * time.Millisecond
	blinkResumeDelay    = 250 * time.Millisecond
)

type Model struct {
	editor             editor.Editor
	viewport           viewport.Model
	width              int
	height             int
	showLineNumbers    bool
	showTildeIndicator bool
	showStatusLine     bool
	theme              Theme
	StatusLineFunc     func() string
	err                error
	message            string
	isFocused          bool
	placeholder        string
	cursorMode         CursorMode
	cursorVisible      bool
	blinkTag           int
	clearTag           int
	highlighter        *highlighter.Highlighter
	language           string
	highlighterTheme   string
	tabWidth           int
	leftCol            int // First display column shown, for lines wider than the viewport
}

type ErrorMsg struct {
	ID    editor.ErrorId
	Error error
}

// SaveMsg reports a save. Written is false when no writer is installed and
// the consumer is expected to persist Lines itself.
type SaveMsg struct {
	Lines   []string
	Written bool
}

type QuitMsg struct{}

type clearMsg struct{ tag int }

type MessageMsg struct {
	ID      string
	Message string
}

type YankMsg struct {
	Content string
}

type PasteMsg struct {
	Content string
}

type DeleteMsg struct {
	Content string
}

type UndoMsg struct{}

type RedoMsg struct{}

type ModeChangeMsg struct {
	Mode editor.Mode
}

type RelativeNumbersChangeMsg struct {
	Enabled bool
}

// clearAfter hides the command-line message once duration has passed,
// unless a newer message took its place.
func (m *Model) clearAfter(duration time.Duration) tea.Cmd {
	m.clearTag++
	tag := m.clearTag
	return tea.Tick(duration, func(time.Time) tea.Msg {
		return clearMsg{tag: tag}
	})
}

type clipboardImpl struct{}

func (c *clipboardImpl) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *clipboardImpl) Read() (string, error) {
	return clipboard.ReadAll()
}

// New creates a model with the default configuration.
func New(width, height int) Model {
	return NewWithConfig(width, height, config.Default())
}

// NewWithConfig creates a model whose editor options, tab width and syntax
// highlighting come from cfg.
func NewWithConfig(width, height int, cfg config.Config) Model {
	vp := viewport.New(width, max(height-2, 1))

	m := Model{
		editor:          editor.New(cfg.EditorOptions(), &clipboardImpl{}),
		viewport:        vp,
		showLineNumbers: true,
		showStatusLine:  true,
		theme:           DefaultTheme,
		cursorMode:      CursorSteady,
		cursorVisible:   true,
		tabWidth:        max(cfg.TabWidth, 1),
	}

	if cfg.Language != "" {
		m.SetLanguage(cfg.Language, cfg.Theme)
	}

	m.SetSize(width, height)

	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)

	m.editor.SetViewportHeight(m.viewport.Height)
	m.viewport.YOffset = 0
}

// SetBytes replaces the content of the editor.
func (m *Model) SetBytes(content []byte) {
	m.editor.SetContent(content)
	m.handleContentChange()
}

// SetContent replaces the content of the editor from a string.
func (m *Model) SetContent(content string) {
	m.SetBytes([]byte(content))
}

// SetLines replaces the content of the editor, one string per line.
func (m *Model) SetLines(lines []string) {
	m.editor.SetLines(lines)
	m.handleContentChange()
}

// SetWriter installs the collaborator that persists the buffer on save.
func (m *Model) SetWriter(w editor.LineWriter) {
	m.editor.SetWriter(w)
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// SetLanguage sets the programming language for syntax highlighting.
//
// If the language is empty, syntax highlighting will be disabled.
//
// The theme parameter allows specifying a Chroma theme for the syntax highlighter.
// For a full list of available themes, see: https://github.com/alecthomas/chroma/blob/master/styles
func (m *Model) SetLanguage(language string, theme string) {
	if m.language == language && m.highlighterTheme == theme {
		return
	}

	m.language = language
	m.highlighterTheme = theme
	if language == "" {
		m.highlighter = nil
		return
	}

	m.highlighter = highlighter.New(language, theme)
}

// WithSyntaxHighlighter allows setting a custom syntax highlighter.
func (m *Model) WithSyntaxHighlighter(highlighter *highlighter.Highlighter) {
	m.highlighter = highlighter
}

// DispatchMessage shows a message in the command line for a specified duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.clearAfter(duration)
}

// DispatchError shows an error in the command line for a specified duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.clearAfter(duration)
}

// HideLineNumbers controls whether to show line numbers in the viewport.
func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
}

// ShowTildeIndicator controls whether to show the tilde indicator below the
// last line. If line numbers are hidden, this will not have any effect.
func (m *Model) ShowTildeIndicator(show bool) {
	m.showTildeIndicator = show
}

// HideStatusLine controls whether to show the status line at the bottom of the viewport.
func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
}

// Lines returns the current content of the buffer, one string per line.
func (m *Model) Lines() []string {
	return m.editor.Lines()
}

// HasChanges reports whether the buffer differs from the last save.
func (m *Model) HasChanges() bool {
	return m.editor.IsModified()
}

// GetEditor returns the underlying editor instance
func (m *Model) GetEditor() editor.Editor {
	return m.editor
}

// Focus sets the editor to focused state.
func (m *Model) Focus() {
	m.isFocused = true
}

// Blur sets the editor to unfocused state.
func (m *Model) Blur() {
	m.isFocused = false
}

// IsFocused returns whether the editor is currently focused.
func (m *Model) IsFocused() bool {
	return m.isFocused
}

// Mode returns the editor's current mode.
func (m *Model) Mode() editor.Mode {
	return m.editor.Mode()
}

// SetNormalMode sets the editor to normal mode.
func (m *Model) SetNormalMode() {
	m.editor.SetNormalMode()
}

// SetPlaceholder sets the text shown while the buffer is empty.
func (m *Model) SetPlaceholder(placeholder string) {
	m.placeholder = placeholder
}

// IsEmpty checks if the editor buffer is empty.
func (m *Model) IsEmpty() bool {
	buf := m.editor.Buffer()
	return buf.LineCount() == 1 && buf.LineLen(0) == 1
}

// SetCursorMode sets the cursor mode for the editor.
// It can be either CursorSteady or CursorBlink.
func (m *Model) SetCursorMode(mode CursorMode) {
	m.cursorMode = mode
	m.cursorVisible = m.isFocused
}

// SetCursorPosition moves the cursor, clamped to the buffer.
func (m *Model) SetCursorPosition(row, col int) error {
	if row < 0 || col < 0 {
		return fmt.Errorf("invalid cursor position: (%d, %d)", row, col)
	}

	row = min(row, m.editor.Buffer().LineCount()-1)
	m.editor.SetCursor(editor.Cursor{Row: row, Col: col})

	return nil
}

func (m Model) Init() tea.Cmd {
	return m.listenForEditorUpdate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.IsFocused() {
			break
		}

		if m.editor.GetState().Quit {
			return m, tea.Quit
		}

		for _, key := range convertBubbleKey(msg) {
			m.editor.HandleKey(key)
		}

		m.handleContentChange()

		// Typing keeps the cursor solid; blinking resumes after a pause.
		m.cursorVisible = true
		m.blinkTag++
		if m.cursorMode == CursorBlink {
			tag := m.blinkTag
			cmds = append(cmds, tea.Tick(blinkResumeDelay, func(time.Time) tea.Msg {
				return resumeBlinkMsg{tag: tag}
			}))
		}

	case ModeChangeMsg:
		if msg.Mode == editor.CommandMode || msg.Mode == editor.SearchMode {
			m.message = ""
			m.err = nil
			m.clearTag++
		}

	case clearMsg:
		if msg.tag == m.clearTag {
			m.message = ""
			m.err = nil
		}

	case blinkMsg:
		if msg.tag != m.blinkTag {
			break
		}
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = !m.cursorVisible
			cmds = append(cmds, m.CursorBlink())
		} else {
			m.cursorVisible = m.isFocused
		}

	case resumeBlinkMsg:
		if msg.tag == m.blinkTag && m.isFocused && m.cursorMode == CursorBlink {
			cmds = append(cmds, m.CursorBlink())
		}
	}

	// One listener is parked on the signal channel at a time.
	if isSignalMsg(msg) {
		cmds = append(cmds, m.listenForEditorUpdate())
	}

	var viewportCmd tea.Cmd
	m.viewport, viewportCmd = m.viewport.Update(msg)

	cmds = append(cmds, viewportCmd)

	m.renderVisibleSlice()

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewport.View(),
		padTo(m.getStatusLine(), m.width, m.theme.StatusLineStyle),
		padTo(m.commandLine(), m.width, m.theme.CommandLineStyle),
	)
}

// commandLine shows an error, else a message, else the pending input.
func (m Model) commandLine() string {
	bg := m.theme.CommandLineStyle.GetBackground()
	switch {
	case m.err != nil:
		return m.theme.ErrorStyle.Background(bg).Render(m.err.Error())
	case m.message != "":
		return m.theme.MessageStyle.Background(bg).Render(m.message)
	}
	return m.theme.CommandLineStyle.Render(m.editor.GetState().CommandLine)
}

func padTo(s string, width int, style lipgloss.Style) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		s += style.Render(strings.Repeat(" ", gap))
	}
	return s
}

func (m *Model) modeStyle(mode editor.Mode) lipgloss.Style {
	switch mode {
	case editor.InsertMode:
		return m.theme.InsertModeStyle
	case editor.VisualMode, editor.VisualLineMode:
		return m.theme.VisualModeStyle
	case editor.CommandMode, editor.SearchMode:
		return m.theme.CommandModeStyle
	default:
		return m.theme.NormalModeStyle
	}
}

func (m *Model) getStatusLine() string {
	if !m.showStatusLine {
		return ""
	}

	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	state := m.editor.GetState()

	statusLine := m.modeStyle(state.Mode).Render(" " + state.Mode.Label() + " ")

	if m.editor.IsModified() {
		statusLine += m.theme.ModifiedStyle.Render(" [+]")
	}

	cursor := m.editor.Cursor()
	cursorInfo := fmt.Sprintf("%d/%d ", cursor.Row+1, cursor.Col+1)

	width := m.width - (lipgloss.Width(cursorInfo) + lipgloss.Width(statusLine))
	gap := strings.Repeat(" ", max(0, width))

	statusLine += m.theme.StatusLineStyle.Render(
		gap + cursorInfo,
	)

	return statusLine
}

func (m *Model) listenForEditorUpdate() tea.Cmd {
	editorChan := m.editor.GetUpdateSignalChan()
	return func() tea.Msg {
		for {
			if msg := signalToMsg(<-editorChan); msg != nil {
				return msg
			}
		}
	}
}

func isSignalMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case MessageMsg, ErrorMsg, YankMsg, PasteMsg, DeleteMsg, SaveMsg, QuitMsg,
		UndoMsg, RedoMsg, ModeChangeMsg, RelativeNumbersChangeMsg:
		return true
	}
	return false
}

func signalToMsg(signal editor.Signal) tea.Msg {
	switch signal := signal.(type) {
	case editor.MessageSignal:
		id, message := signal.Value()
		return MessageMsg{ID: id, Message: message}

	case editor.ErrorSignal:
		id, err := signal.Value()
		return ErrorMsg{ID: id, Error: err}

	case editor.YankSignal:
		return YankMsg{Content: signal.Value()}

	case editor.PasteSignal:
		return PasteMsg{Content: signal.Value()}

	case editor.DeleteSignal:
		return DeleteMsg{Content: signal.Value()}

	case editor.SaveSignal:
		lines, written := signal.Value()
		return SaveMsg{Lines: lines, Written: written}

	case editor.QuitSignal:
		return QuitMsg{}

	case editor.UndoSignal:
		return UndoMsg{}

	case editor.RedoSignal:
		return RedoMsg{}

	case editor.ModeSignal:
		return ModeChangeMsg{Mode: signal.Value()}

	case editor.RelativeNumbersSignal:
		return RelativeNumbersChangeMsg{Enabled: signal.Value()}
	}

	return nil
}

// convertBubbleKey turns a bubbletea key message into editor keys. Pasted
// text arrives as a single message and yields one key per rune.
func convertBubbleKey(msg tea.KeyMsg) []editor.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]editor.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if msg.Alt {
				keys = append(keys, editor.Alt(r))
			} else {
				keys = append(keys, editor.Char(r))
			}
		}
		return keys
	case tea.KeyEnter:
		return []editor.Key{editor.Enter}
	case tea.KeyTab:
		return []editor.Key{editor.Tab}
	case tea.KeySpace:
		if msg.Alt {
			return []editor.Key{editor.Alt(' ')}
		}
		return []editor.Key{editor.Char(' ')}
	case tea.KeyEsc:
		return []editor.Key{editor.Esc}
	case tea.KeyBackspace:
		return []editor.Key{editor.Backspace}
	case tea.KeyUp:
		return []editor.Key{editor.Up}
	case tea.KeyDown:
		return []editor.Key{editor.Down}
	case tea.KeyLeft:
		return []editor.Key{editor.Left}
	case tea.KeyRight:
		return []editor.Key{editor.Right}
	case tea.KeyHome:
		return []editor.Key{editor.Home}
	case tea.KeyEnd:
		return []editor.Key{editor.End}
	case tea.KeyDelete:
		return []editor.Key{editor.Delete}
	case tea.KeyInsert:
		return []editor.Key{editor.Insert}
	case tea.KeyPgUp:
		return []editor.Key{editor.PageUp}
	case tea.KeyPgDown:
		return []editor.Key{editor.PageDown}
	}

	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return []editor.Key{editor.Ctrl('a' + rune(msg.Type-tea.KeyCtrlA))}
	}

	if msg.Type >= tea.KeyF1 && msg.Type <= tea.KeyF12 {
		return []editor.Key{editor.Function(int(msg.Type-tea.KeyF1) + 1)}
	}

	return nil
}

// CursorBlink schedules the next visibility toggle of a blinking cursor. It
// returns nil for a steady cursor or an unfocused editor.
func (m Model) CursorBlink() tea.Cmd {
	if m.cursorMode != CursorBlink || !m.isFocused {
		return nil
	}
	tag := m.blinkTag
	return tea.Tick(cursorBlinkInterval, func(time.Time) tea.Msg {
		return blinkMsg{tag: tag}
	})
}
