package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joeatwork/coach/internal/entry"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle  = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	stateStyles = map[entry.State]lipgloss.Style{
		entry.Todo:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		entry.Working:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		entry.Done:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		entry.Cancelled: lipgloss.NewStyle().Faint(true).Strikethrough(true),
	}
)

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	header := m.currentDate.Format("Monday, 02 January 2006")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case m.entry == nil:
		b.WriteString(faintStyle.Render("(no entry)"))
		b.WriteByte('\n')
	default:
		m.writeEntry(&b, m.entry)
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	if m.mode != modeNormal {
		b.WriteString("\n")
		b.WriteString(m.inputLabel())
		b.WriteByte('\n')
		b.WriteString(m.input.View())
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Navigation: <-/h prev  ->/l next  j/k select  r reload  + create  q quit"))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("Tasks: t todo  w working  d done  c cancel   Add: a task  e event  n note  o observation"))
	b.WriteByte('\n')

	return b.String()
}

func (m Model) writeEntry(b *strings.Builder, e *entry.Entry) {
	b.WriteString(sectionStyle.Render(e.Label.String()))
	b.WriteByte('\n')
	for _, o := range e.Observations {
		b.WriteString("  ")
		b.WriteString(o.String())
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Tasks"))
	b.WriteByte('\n')
	if len(e.Tasks) == 0 {
		b.WriteString(faintStyle.Render("  (none)"))
		b.WriteByte('\n')
	}
	for i, task := range e.Tasks {
		cursor := "  "
		if i == m.selected {
			cursor = selectedStyle.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(stateStyles[task.State].Render(task.State.String()))
		b.WriteByte(' ')
		b.WriteString(task.Message.String())
		b.WriteByte('\n')
	}

	if len(e.Events) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Events"))
		b.WriteByte('\n')
		for _, ev := range e.Events {
			b.WriteString("  ")
			b.WriteString(ev.String())
			b.WriteByte('\n')
		}
	}

	if len(e.Notes) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Notes"))
		b.WriteByte('\n')
		for _, n := range e.Notes {
			for _, line := range strings.Split(n.String(), "\n") {
				b.WriteString("  ")
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}
}

func (m Model) inputLabel() string {
	switch m.mode {
	case modeAddTask:
		return "New task (Enter to save, Esc to cancel):"
	case modeAddEvent:
		return "New event, stamped now (Enter to save, Esc to cancel):"
	case modeAddNote:
		return "New note (Enter to save, Esc to cancel):"
	case modeAddObservation:
		return "New observation as name: value (Enter to save, Esc to cancel):"
	default:
		return ""
	}
}
