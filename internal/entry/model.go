package entry

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
)

// Placeholder labels entries created with Empty.
const Placeholder = "PLACEHOLDER"

// Observation is a "name: value" line from the entry header.
type Observation struct {
	Name  ObservationName
	Value NoNewlines
}

func (o Observation) String() string {
	return o.Name.String() + ": " + o.Value.String()
}

// State is the lifecycle position of a task.
type State uint8

const (
	// Todo marks tasks nobody has started.
	Todo State = iota
	// Working marks tasks in progress.
	Working
	// Done marks finished tasks.
	Done
	// Cancelled marks tasks that were dropped.
	Cancelled
)

var statePrefixes = [...]string{
	Todo:      "TODO ",
	Working:   "WORKING ",
	Done:      "DONE ",
	Cancelled: "CANCELLED ",
}

// Prefix returns the literal that starts a task line in this state.
func (s State) Prefix() string {
	if int(s) < len(statePrefixes) {
		return statePrefixes[s]
	}
	return ""
}

func (s State) String() string {
	return strings.TrimSpace(s.Prefix())
}

// ParseState accepts the state keywords case-insensitively, plus "cancel".
func ParseState(value string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "todo":
		return Todo, nil
	case "working":
		return Working, nil
	case "done":
		return Done, nil
	case "cancelled", "canceled", "cancel":
		return Cancelled, nil
	default:
		return Todo, fmt.Errorf("invalid state %q (expected todo|working|done|cancelled)", value)
	}
}

// Task is one line of the task list.
type Task struct {
	State   State
	Message NoNewlines
}

// IsLive is true for tasks that still need attention.
func (t Task) IsLive() bool {
	return t.State == Todo || t.State == Working
}

// String renders the task line without its newline.
func (t Task) String() string {
	return t.State.Prefix() + t.Message.String()
}

// CompareTasks orders by state, then by message.
func CompareTasks(a, b Task) int {
	if c := cmp.Compare(a.State, b.State); c != 0 {
		return c
	}
	return strings.Compare(a.Message.s, b.Message.s)
}

// SortTasks returns a sorted copy of tasks.
func SortTasks(tasks []Task) []Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, CompareTasks)
	return sorted
}

// Event is a timestamped line. The textual form only carries minutes, so
// events should be built with NewEvent.
type Event struct {
	When time.Time
	Text NoNewlines
}

// NewEvent truncates when to the minute in UTC and drops leading whitespace
// from text, which the event line cannot preserve.
func NewEvent(when time.Time, text NoNewlines) Event {
	return Event{
		When: when.UTC().Truncate(time.Minute),
		Text: NoNewlines{s: strings.TrimLeftFunc(text.s, unicode.IsSpace)},
	}
}

func (e Event) String() string {
	return "<" + formatTimestamp(e.When) + "> " + e.Text.String()
}

// Equal compares events at minute precision in UTC.
func (e Event) Equal(other Event) bool {
	return sameMinute(e.When, other.When) && e.Text == other.Text
}

func sameMinute(a, b time.Time) bool {
	return a.UTC().Truncate(time.Minute).Equal(b.UTC().Truncate(time.Minute))
}

// Entry is one journal page.
type Entry struct {
	Label        NoNewlines
	Observations []Observation
	Tasks        []Task
	Events       []Event
	Notes        []Note
}

// New returns an entry with only a label.
func New(label NoNewlines) *Entry {
	return &Entry{Label: label}
}

// Empty returns an entry labelled with Placeholder.
func Empty() *Entry {
	return New(NoNewlines{s: Placeholder})
}

// AddObservation appends a "name: value" observation.
func (e *Entry) AddObservation(name ObservationName, value NoNewlines) {
	e.Observations = append(e.Observations, Observation{Name: name, Value: value})
}

// AddTask appends a new Todo task and returns its index.
func (e *Entry) AddTask(message NoNewlines) int {
	e.Tasks = append(e.Tasks, Task{State: Todo, Message: message})
	return len(e.Tasks) - 1
}

// UpdateTask replaces the task at index i with the result of update, which
// receives the current message.
func (e *Entry) UpdateTask(i int, update func(message NoNewlines) Task) (Task, error) {
	if i < 0 || i >= len(e.Tasks) {
		return Task{}, ErrInvalidIndex
	}
	e.Tasks[i] = update(e.Tasks[i].Message)
	return e.Tasks[i], nil
}

// SetTaskState moves the task at index i to state, keeping its message.
func (e *Entry) SetTaskState(i int, state State) (Task, error) {
	return e.UpdateTask(i, func(message NoNewlines) Task {
		return Task{State: state, Message: message}
	})
}

// AddEvent appends an event built with NewEvent.
func (e *Entry) AddEvent(when time.Time, text NoNewlines) {
	e.Events = append(e.Events, NewEvent(when, text))
}

// AddNote appends a note.
func (e *Entry) AddNote(note Note) {
	e.Notes = append(e.Notes, note)
}

// LiveTasks returns the Todo and Working tasks in stored order.
func (e *Entry) LiveTasks() []Task {
	var live []Task
	for _, t := range e.Tasks {
		if t.IsLive() {
			live = append(live, t)
		}
	}
	return live
}

// Equal reports field-wise equality, with events compared at minute precision.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Label == other.Label &&
		slices.Equal(e.Observations, other.Observations) &&
		slices.Equal(e.Tasks, other.Tasks) &&
		slices.EqualFunc(e.Events, other.Events, Event.Equal) &&
		slices.Equal(e.Notes, other.Notes)
}
