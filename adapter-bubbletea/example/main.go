package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	editor "github.com/ionut-t/vimcore/adapter-bubbletea"
	"github.com/ionut-t/vimcore/config"
	"github.com/ionut-t/vimcore/core"
)

const messageDuration = 3 * time.Second

type Model struct {
	editor editor.Model
	file   string
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.editor.Init(), m.editor.CursorBlink())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetSize(msg.Width-4, msg.Height-2)

	case editor.ErrorMsg:
		cmds = append(cmds, m.editor.DispatchError(msg.Error, messageDuration))

	case editor.MessageMsg:
		cmds = append(cmds, m.editor.DispatchMessage(msg.Message, messageDuration))

	case editor.YankMsg:
		cmds = append(cmds, m.editor.DispatchMessage(fmt.Sprintf("%d bytes yanked", len(msg.Content)), messageDuration))

	case editor.DeleteMsg:
		cmds = append(cmds, m.editor.DispatchMessage(fmt.Sprintf("%d bytes deleted", len(msg.Content)), messageDuration))

	case editor.SaveMsg:
		if msg.Written {
			cmds = append(cmds, m.editor.DispatchMessage(fmt.Sprintf("%s written", m.file), messageDuration))
		}

	case editor.QuitMsg:
		return m, tea.Quit
	}

	editorModel, cmd := m.editor.Update(msg)
	cmds = append(cmds, cmd)
	m.editor = editorModel.(editor.Model)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.editor.View())
}

// readLines loads path as one string per line. A missing file opens an
// empty buffer.
func readLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{""}, nil
	}
	if err != nil {
		return nil, err
	}

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n"), nil
}

// fileWriter replaces path with the buffer's lines. The content goes to a
// temporary file in the same directory first, so a failed write leaves the
// original untouched.
func fileWriter(path string) func(lines []string) error {
	return func(lines []string) error {
		dir := filepath.Dir(path)
		tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("write %s: %w", tmp.Name(), err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("close %s: %w", tmp.Name(), err)
		}

		if info, err := os.Stat(path); err == nil {
			_ = os.Chmod(tmp.Name(), info.Mode().Perm())
		}

		return os.Rename(tmp.Name(), path)
	}
}

func main() {
	configPath := flag.String("config", "vimcore.toml", "path to a .toml or .yaml config file")
	lang := flag.String("lang", "", "language used for syntax highlighting")
	flag.Parse()

	file := "test.md"
	if flag.NArg() > 0 {
		file = flag.Arg(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if *lang != "" {
		cfg.Language = *lang
	}
	if cfg.Language == "" {
		cfg.Language = strings.TrimPrefix(filepath.Ext(file), ".")
	}

	lines, err := readLines(file)
	if err != nil {
		log.Fatalf("Error reading %s: %v", file, err)
	}

	textEditor := editor.NewWithConfig(80, 20, cfg)
	textEditor.Focus()
	textEditor.SetCursorMode(editor.CursorBlink)
	textEditor.ShowTildeIndicator(true)
	textEditor.SetLines(lines)
	textEditor.SetWriter(core.LineWriterFunc(fileWriter(file)))

	m := Model{
		editor: textEditor,
		file:   file,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running Bubble Tea program: %v", err)
	}
}
