package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Interpreter runs one command line and returns the response text.
type Interpreter interface {
	Interpret(input string) string
}

// RunTUI starts the full-screen session. Requires a TTY on stdout.
func RunTUI(ctx context.Context, interp Interpreter) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(interp)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// IsTTY checks if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}

type tuiModel struct {
	interp     Interpreter
	input      textinput.Model
	transcript []string
	width      int
	height     int
	quitting   bool
}

func newTUIModel(interp Interpreter) *tuiModel {
	ti := textinput.New()
	ti.Placeholder = "type a command (list, todo, deadline, event, mark, unmark, delete, find, bye)"
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	u := New()
	return &tuiModel{
		interp:     interp,
		input:      ti,
		transcript: []string{u.Greeting()},
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			line := m.input.Value()
			m.input.SetValue("")
			m.transcript = append(m.transcript, "> "+line, m.interp.Interpret(line))
			if isByeLine(line) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("taskline\n\n")

	// Keep only as many transcript lines as fit above the input line.
	lines := transcriptLines(m.transcript)
	if m.height > 0 {
		max := m.height - 5
		if max < 0 {
			max = 0
		}
		if len(lines) > max {
			lines = lines[len(lines)-max:]
		}
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

func transcriptLines(entries []string) []string {
	var lines []string
	for _, entry := range entries {
		lines = append(lines, strings.Split(entry, "\n")...)
	}
	return lines
}

func isByeLine(input string) bool {
	tokens := strings.Split(strings.TrimRight(input, " "), " ")
	return len(tokens) > 0 && tokens[0] == "bye"
}
