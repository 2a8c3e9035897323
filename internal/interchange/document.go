// Package interchange converts entries to and from structured JSON and YAML
// documents.
package interchange

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeatwork/coach/internal/entry"
)

// ErrInvalidDocument reports a document that does not describe a valid entry.
var ErrInvalidDocument = errors.New("invalid entry document")

// Document is the structured form of an entry.
type Document struct {
	Label        string        `json:"label" yaml:"label"`
	Observations []Observation `json:"observations" yaml:"observations"`
	Tasks        []Task        `json:"tasks" yaml:"tasks"`
	Events       []Event       `json:"events" yaml:"events"`
	Notes        []string      `json:"notes" yaml:"notes"`
}

// Observation mirrors entry.Observation.
type Observation struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Task mirrors entry.Task with the state spelled in lower case.
type Task struct {
	State   string `json:"state" yaml:"state"`
	Message string `json:"message" yaml:"message"`
}

// Event mirrors entry.Event; When is always UTC.
type Event struct {
	When time.Time `json:"when" yaml:"when"`
	Text string    `json:"text" yaml:"text"`
}

// FromEntry builds a document. Slices are never nil so encoders emit empty
// lists rather than nulls.
func FromEntry(e *entry.Entry) Document {
	doc := Document{
		Label:        e.Label.String(),
		Observations: make([]Observation, 0, len(e.Observations)),
		Tasks:        make([]Task, 0, len(e.Tasks)),
		Events:       make([]Event, 0, len(e.Events)),
		Notes:        make([]string, 0, len(e.Notes)),
	}
	for _, o := range e.Observations {
		doc.Observations = append(doc.Observations, Observation{Name: o.Name.String(), Value: o.Value.String()})
	}
	for _, t := range e.Tasks {
		doc.Tasks = append(doc.Tasks, Task{State: strings.ToLower(t.State.String()), Message: t.Message.String()})
	}
	for _, ev := range e.Events {
		doc.Events = append(doc.Events, Event{When: ev.When.UTC(), Text: ev.Text.String()})
	}
	for _, n := range e.Notes {
		doc.Notes = append(doc.Notes, n.String())
	}
	return doc
}

// Entry converts the document, running every field through the entry
// constructors.
func (d Document) Entry() (*entry.Entry, error) {
	label, ok := entry.AsNoNewlines(d.Label)
	if !ok || d.Label == "" {
		return nil, invalid("label", "must be a nonempty single line")
	}
	e := entry.New(label)

	for i, o := range d.Observations {
		name, ok := entry.AsObservationName(o.Name)
		if !ok {
			return nil, invalid(fmt.Sprintf("observations[%d].name", i), "must be nonempty without colons or newlines")
		}
		value, ok := entry.AsNoNewlines(o.Value)
		if !ok {
			return nil, invalid(fmt.Sprintf("observations[%d].value", i), "contains a newline")
		}
		e.AddObservation(name, value)
	}

	for i, t := range d.Tasks {
		state, err := entry.ParseState(t.State)
		if err != nil {
			return nil, invalid(fmt.Sprintf("tasks[%d].state", i), err.Error())
		}
		message, ok := entry.AsNoNewlines(t.Message)
		if !ok {
			return nil, invalid(fmt.Sprintf("tasks[%d].message", i), "contains a newline")
		}
		ix := e.AddTask(message)
		if _, err := e.SetTaskState(ix, state); err != nil {
			return nil, err
		}
	}

	for i, ev := range d.Events {
		text, ok := entry.AsNoNewlines(ev.Text)
		if !ok {
			return nil, invalid(fmt.Sprintf("events[%d].text", i), "contains a newline")
		}
		if y := ev.When.UTC().Year(); y < 0 || y > 9999 {
			return nil, invalid(fmt.Sprintf("events[%d].when", i), "year out of range")
		}
		e.AddEvent(ev.When, text)
	}

	for i, raw := range d.Notes {
		n, ok := entry.AsNote(raw)
		if !ok {
			return nil, invalid(fmt.Sprintf("notes[%d]", i), "is not a valid note")
		}
		e.AddNote(n)
	}
	return e, nil
}

func invalid(path, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidDocument, path, reason)
}
