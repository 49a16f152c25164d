// Package ui provides an optional interactive terminal browser for the list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todo-go/internal/todo"
)

// RunTUI starts the browser on list. Every change is saved as it happens.
func RunTUI(ctx context.Context, list *todo.List, printer *todo.Printer) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	program := tea.NewProgram(NewModel(list, printer), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Model is the bubbletea model for the browser.
type Model struct {
	list     *todo.List
	printer  *todo.Printer
	cursor   int
	status   string
	isErr    bool
	showHelp bool

	titleStyle  lipgloss.Style
	cursorStyle lipgloss.Style
	errStyle    lipgloss.Style
	dimStyle    lipgloss.Style
}

// NewModel returns a browser model over list.
func NewModel(list *todo.List, printer *todo.Printer) *Model {
	return &Model{
		list:        list,
		printer:     printer,
		titleStyle:  lipgloss.NewStyle().Bold(true),
		cursorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		errStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		dimStyle:    lipgloss.NewStyle().Faint(true),
	}
}

// Cursor returns the 0-based cursor position.
func (m *Model) Cursor() int {
	return m.cursor
}

// Status returns the current status line text.
func (m *Model) Status() string {
	return m.status
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.list.Len()-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		if n := m.list.Len(); n > 0 {
			m.cursor = n - 1
		}
	case "x", " ", "enter":
		m.markDone()
	case "d", "delete":
		m.remove()
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) markDone() {
	if m.list.Len() == 0 {
		return
	}
	pos := m.cursor + 1
	if err := m.list.MarkDone(pos); err != nil {
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("Marked %d done", pos))
}

func (m *Model) remove() {
	if m.list.Len() == 0 {
		return
	}
	pos := m.cursor + 1
	if err := m.list.RemoveAt(pos); err != nil {
		m.setError(err)
		return
	}
	if m.cursor >= m.list.Len() && m.cursor > 0 {
		m.cursor--
	}
	m.setStatus(fmt.Sprintf("Removed %d", pos))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.isErr = false
}

func (m *Model) setError(err error) {
	m.status = "Error: " + err.Error()
	m.isErr = true
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.titleStyle.Render("Todo") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	items := m.list.Items()
	if len(items) == 0 {
		b.WriteString("  " + todo.EmptyMessage + "\n")
	}
	for i, item := range items {
		line := fmt.Sprintf("%d. %s", i+1, m.printer.Content(item))
		if i == m.cursor {
			b.WriteString(m.cursorStyle.Render(">") + " " + line + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	if m.status != "" {
		if m.isErr {
			b.WriteString(m.errStyle.Render(m.status) + "\n\n")
		} else {
			b.WriteString(m.status + "\n\n")
		}
	}

	b.WriteString(m.dimStyle.Render("x done | d remove | h help | q quit") + "\n")
	return b.String()
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up, k        Move up\n")
	b.WriteString("  down, j      Move down\n")
	b.WriteString("  g / G        First / last item\n")
	b.WriteString("  x, space     Mark done\n")
	b.WriteString("  d, delete    Remove\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  q, ctrl+c    Quit\n\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
