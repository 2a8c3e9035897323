package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joeatwork/coach/internal/entry"
	"github.com/joeatwork/coach/internal/journal"
)

const dateLayout = "2006-01-02"

// Model owns Bubble Tea state for the main TUI experience.
type Model struct {
	ctx    context.Context
	reader *journal.Reader
	writer *journal.Writer
	now    func() time.Time

	currentDate time.Time
	entry       *entry.Entry
	missing     bool
	selected    int

	mode  mode
	input textinput.Model

	loading    bool
	statusLine string
	errorLine  string
}

type mode uint8

const (
	modeNormal mode = iota
	modeAddTask
	modeAddEvent
	modeAddNote
	modeAddObservation
)

type entryLoadedMsg struct {
	date    time.Time
	entry   *entry.Entry
	missing bool
	err     error
}

type updateResultMsg struct {
	date    time.Time
	entry   *entry.Entry
	message string
	err     error
}

// NewModel seeds a Bubble Tea model showing the entry for date.
func NewModel(ctx context.Context, reader *journal.Reader, writer *journal.Writer, date time.Time, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 512

	return Model{
		ctx:         ctx,
		reader:      reader,
		writer:      writer,
		now:         now,
		currentDate: date,
		mode:        modeNormal,
		input:       input,
		loading:     true,
		statusLine:  "Loading entry...",
	}
}

// Init loads the initial entry.
func (m Model) Init() tea.Cmd {
	return m.loadEntryCmd(m.currentDate)
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case entryLoadedMsg:
		return m.handleEntryLoaded(msg)
	case updateResultMsg:
		return m.handleUpdateResult(msg)
	default:
		if m.mode != modeNormal {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNormal {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		if m.entry == nil || len(m.entry.Tasks) == 0 {
			return m, nil
		}
		if m.selected < len(m.entry.Tasks)-1 {
			m.selected++
			m.statusLine = fmt.Sprintf("Selected task %d of %d", m.selected+1, len(m.entry.Tasks))
			m.errorLine = ""
		}
	case "up", "k":
		if m.entry == nil || len(m.entry.Tasks) == 0 {
			return m, nil
		}
		if m.selected > 0 {
			m.selected--
			m.statusLine = fmt.Sprintf("Selected task %d of %d", m.selected+1, len(m.entry.Tasks))
			m.errorLine = ""
		}
	case "left", "h":
		return m.gotoDate(m.currentDate.AddDate(0, 0, -1))
	case "right", "l":
		return m.gotoDate(m.currentDate.AddDate(0, 0, 1))
	case "r":
		return m.reload()
	case "+":
		return m.createEntry()
	case "t":
		return m.setSelectedState(entry.Todo)
	case "w":
		return m.setSelectedState(entry.Working)
	case "d":
		return m.setSelectedState(entry.Done)
	case "c":
		return m.setSelectedState(entry.Cancelled)
	case "a":
		return m.beginInput(modeAddTask, "new task")
	case "e":
		return m.beginInput(modeAddEvent, "what happened")
	case "n":
		return m.beginInput(modeAddNote, "note")
	case "o":
		return m.beginInput(modeAddObservation, "name: value")
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitInput()
	case tea.KeyEsc:
		return m.cancelInput("Cancelled.")
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) beginInput(next mode, placeholder string) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	if m.entry == nil {
		m.errorLine = fmt.Sprintf("No entry for %s yet; press + to create it.", m.currentDate.Format(dateLayout))
		return m, nil
	}
	m.mode = next
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.statusLine = ""
	m.errorLine = ""
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) cancelInput(message string) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.input.Reset()
	m.input.Blur()
	if message != "" {
		m.statusLine = message
	}
	m.errorLine = ""
	return m, nil
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	if strings.TrimSpace(value) == "" {
		m.errorLine = "Input cannot be empty."
		return m, nil
	}

	var (
		mutate  func(*entry.Entry) error
		message string
	)
	switch m.mode {
	case modeAddTask:
		text, ok := entry.AsNoNewlines(strings.TrimSpace(value))
		if !ok {
			m.errorLine = "Tasks can't contain newlines."
			return m, nil
		}
		mutate = func(e *entry.Entry) error {
			e.AddTask(text)
			return nil
		}
		message = "Task added."
	case modeAddEvent:
		text, ok := entry.AsNoNewlines(strings.TrimSpace(value))
		if !ok {
			m.errorLine = "Events can't contain newlines."
			return m, nil
		}
		when := m.now()
		mutate = func(e *entry.Entry) error {
			e.AddEvent(when, text)
			return nil
		}
		message = "Event added."
	case modeAddNote:
		n, ok := entry.AsNote(strings.TrimSpace(value))
		if !ok {
			m.errorLine = "Notes can't start like a task or event line."
			return m, nil
		}
		mutate = func(e *entry.Entry) error {
			e.AddNote(n)
			return nil
		}
		message = "Note added."
	case modeAddObservation:
		rawName, rawValue, found := strings.Cut(value, ": ")
		name, nameOK := entry.AsObservationName(strings.TrimSpace(rawName))
		val, valueOK := entry.AsNoNewlines(strings.TrimSpace(rawValue))
		if !found || !nameOK || !valueOK {
			m.errorLine = `Observations look like "name: value"; names can't contain colons.`
			return m, nil
		}
		mutate = func(e *entry.Entry) error {
			e.AddObservation(name, val)
			return nil
		}
		message = "Observation added."
	default:
		return m, nil
	}

	m.mode = modeNormal
	m.input.Reset()
	m.input.Blur()
	m.statusLine = "Saving..."
	m.errorLine = ""
	return m, m.updateCmd(m.currentDate, mutate, message)
}

func (m Model) setSelectedState(state entry.State) (tea.Model, tea.Cmd) {
	if m.loading || m.entry == nil || len(m.entry.Tasks) == 0 {
		return m, nil
	}
	index := m.selected
	if m.entry.Tasks[index].State == state {
		m.statusLine = "State unchanged."
		return m, nil
	}
	m.statusLine = fmt.Sprintf("Marking task %d %s...", index+1, state)
	m.errorLine = ""
	return m, m.updateCmd(m.currentDate, func(e *entry.Entry) error {
		_, err := e.SetTaskState(index, state)
		return err
	}, fmt.Sprintf("Task %d is %s.", index+1, state))
}

func (m Model) createEntry() (tea.Model, tea.Cmd) {
	if m.loading || !m.missing {
		return m, nil
	}
	date := m.currentDate
	writer := m.writer
	ctx := m.ctx
	m.statusLine = fmt.Sprintf("Creating %s...", date.Format(dateLayout))
	return m, func() tea.Msg {
		label, _ := entry.AsNoNewlines(date.Format(dateLayout))
		e := entry.New(label)
		if err := writer.Create(ctx, date, e); err != nil {
			return updateResultMsg{date: date, err: err}
		}
		return updateResultMsg{date: date, entry: e, message: "Entry created."}
	}
}

func (m Model) handleEntryLoaded(msg entryLoadedMsg) (tea.Model, tea.Cmd) {
	// Ignore stale results for dates we no longer display.
	if !sameDay(m.currentDate, msg.date) {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.entry = nil
		m.errorLine = fmt.Sprintf("Failed to load %s: %v", msg.date.Format(dateLayout), msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.entry = msg.entry
	m.missing = msg.missing
	if m.missing {
		m.selected = 0
		m.statusLine = fmt.Sprintf("No entry for %s; press + to create it.", msg.date.Format(dateLayout))
		return m, nil
	}
	m.clampSelection()
	m.statusLine = fmt.Sprintf("Loaded %s.", msg.date.Format(dateLayout))
	return m, nil
}

func (m Model) handleUpdateResult(msg updateResultMsg) (tea.Model, tea.Cmd) {
	if !sameDay(m.currentDate, msg.date) {
		return m, nil
	}
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Save failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.entry = msg.entry
	m.missing = false
	m.clampSelection()
	m.statusLine = msg.message
	m.errorLine = ""
	return m, nil
}

func (m *Model) clampSelection() {
	if m.entry == nil || len(m.entry.Tasks) == 0 {
		m.selected = 0
		return
	}
	if m.selected >= len(m.entry.Tasks) {
		m.selected = len(m.entry.Tasks) - 1
	}
}

func (m Model) gotoDate(date time.Time) (tea.Model, tea.Cmd) {
	if sameDay(m.currentDate, date) {
		return m.reload()
	}

	m.currentDate = date
	m.entry = nil
	m.missing = false
	m.selected = 0
	m.loading = true
	m.statusLine = fmt.Sprintf("Loading %s...", date.Format(dateLayout))
	m.errorLine = ""
	return m, m.loadEntryCmd(date)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.statusLine = fmt.Sprintf("Refreshing %s...", m.currentDate.Format(dateLayout))
	m.errorLine = ""
	return m, m.loadEntryCmd(m.currentDate)
}

func (m Model) loadEntryCmd(date time.Time) tea.Cmd {
	reader := m.reader
	ctx := m.ctx
	return func() tea.Msg {
		e, err := reader.Entry(ctx, date)
		if errors.Is(err, journal.ErrEntryNotFound) {
			return entryLoadedMsg{date: date, missing: true}
		}
		return entryLoadedMsg{date: date, entry: e, err: err}
	}
}

func (m Model) updateCmd(date time.Time, mutate func(*entry.Entry) error, message string) tea.Cmd {
	writer := m.writer
	ctx := m.ctx
	return func() tea.Msg {
		e, err := writer.Update(ctx, date, mutate)
		return updateResultMsg{date: date, entry: e, message: message, err: err}
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
