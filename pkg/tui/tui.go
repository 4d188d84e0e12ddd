// Package tui is a small terminal browser for the notebook's open set:
// switch between pages, open fresh ones, and close the ones you are done
// with. Ink editing stays with the GUI surface; this view is read-mostly.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/inkpad/pkg/app"
	"tableflip.dev/inkpad/pkg/page"
	"tableflip.dev/inkpad/pkg/timeutil"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	dueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
)

// Model drives the page browser. It mutates the notebook directly; the
// notebook enforces its own invariants (min one page, capture on switch).
type Model struct {
	notebook *app.Notebook

	cursor int
	status string
}

// New builds the browser over an existing notebook.
func New(n *app.Notebook) Model {
	return Model{notebook: n}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.notebook.Pages())-1 {
				m.cursor++
			}
		case "enter":
			pages := m.notebook.Pages()
			if m.cursor < len(pages) {
				pg := pages[m.cursor]
				if err := m.notebook.Switch(pg.StorageID); err != nil {
					m.status = err.Error()
				} else {
					m.status = fmt.Sprintf("switched to %q", pg.Title)
				}
			}
		case "n":
			pg := m.notebook.NewPage()
			m.cursor = len(m.notebook.Pages()) - 1
			m.status = fmt.Sprintf("opened %q", pg.Title)
		case "x":
			pages := m.notebook.Pages()
			if m.cursor < len(pages) {
				pg := pages[m.cursor]
				if err := m.notebook.Close(pg.StorageID, false); err != nil {
					m.status = err.Error()
				} else {
					m.status = fmt.Sprintf("closed %q", pg.Title)
				}
			}
			if max := len(m.notebook.Pages()) - 1; m.cursor > max {
				m.cursor = max
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pages"))
	b.WriteString("\n\n")

	current := m.notebook.Current()
	for i, pg := range m.notebook.Pages() {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		line := pg.Title
		if pg.StorageID == current.StorageID {
			line = currentStyle.Render(line + " *")
		}
		if note := reminderNote(pg); note != "" {
			line += " " + note
		}
		line += faintStyle.Render(fmt.Sprintf("  (%d strokes, %d elements)",
			len(pg.Strokes), len(pg.Children)))
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render("enter: switch • n: new • x: close • q: quit"))
	b.WriteString("\n")
	return b.String()
}

func reminderNote(pg *page.Page) string {
	if pg.NoteType != page.TypeScheduleReminder || pg.TargetTime == nil {
		return ""
	}
	if pg.HasReminded {
		return faintStyle.Render("⏰ fired")
	}
	until := time.Until(pg.TargetTime.Time)
	if until <= 0 {
		return dueStyle.Render("⏰ due")
	}
	return "⏰ in " + timeutil.Format(until)
}
