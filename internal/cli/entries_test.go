package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/joeatwork/coach/internal/journal"
)

func TestObserveCommandAppendsObservation(t *testing.T) {
	d := newTestDeps(t)
	writeEntry(t, d, "2025-11-21", "#coach\n2025-11-21\nsleep: 7h\n\nTODO x\n\n")

	out := executeCommand(t, newObserveCommand(context.Background(), d), "mood", "steady: mostly")
	assertContains(t, out, "Observed mood: steady: mostly")

	e := readEntry(t, d, "2025-11-21")
	want := "2025-11-21\nsleep: 7h\nmood: steady: mostly\n\nTODO x\n\n"
	if e.String() != want {
		t.Fatalf("entry = %q, want %q", e.String(), want)
	}
}

func TestObserveCommandValidatesArguments(t *testing.T) {
	d := newTestDeps(t)
	writeEntry(t, d, "2025-11-21", "#coach\nL\n\n")

	cases := [][]string{
		{"a:b", "value"},
		{"", "value"},
		{"name", "two\nlines"},
	}
	for _, args := range cases {
		executeCommandErr(t, newObserveCommand(context.Background(), d), args...)
	}
	if n := len(readEntry(t, d, "2025-11-21").Observations); n != 0 {
		t.Fatalf("observations = %d, want 0", n)
	}
}

func TestObserveCommandNeedsEntry(t *testing.T) {
	d := newTestDeps(t)
	err := executeCommandErr(t, newObserveCommand(context.Background(), d), "mood", "ok")
	if !errors.Is(err, journal.ErrEntryNotFound) {
		t.Fatalf("error = %v, want ErrEntryNotFound", err)
	}
}

func TestEventCommandStampsUTC(t *testing.T) {
	d := newTestDeps(t)
	writeEntry(t, d, "2025-11-21", "#coach\nL\n\n")

	executeCommand(t, newEventCommand(context.Background(), d), "stand-up", "ran", "long")
	out := executeCommand(t, newEventCommand(context.Background(), d), "--at", "08:15", "coffee")

	e := readEntry(t, d, "2025-11-21")
	if len(e.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(e.Events))
	}
	if !e.Events[0].When.Equal(fixedNow) || e.Events[0].Text.String() != "stand-up ran long" {
		t.Fatalf("first event = %v", e.Events[0])
	}
	want := time.Date(2025, time.November, 21, 8, 15, 0, 0, time.Local).UTC()
	if !e.Events[1].When.Equal(want) || e.Events[1].When.Location() != time.UTC {
		t.Fatalf("second event when = %v, want %v", e.Events[1].When, want)
	}
	assertContains(t, out, "Added event * <"+want.Format("2006-01-02 Mon 15:04")+"> coffee")
}

func TestEventCommandRejectsBadTime(t *testing.T) {
	d := newTestDeps(t)
	writeEntry(t, d, "2025-11-21", "#coach\nL\n\n")

	executeCommandErr(t, newEventCommand(context.Background(), d), "--at", "25:99", "late")
}

func TestNoteCommandFromArguments(t *testing.T) {
	d := newTestDeps(t)
	writeEntry(t, d, "2025-11-21", "#coach\nL\n\n")

	out := executeCommand(t, newNoteCommand(context.Background(), d), "remember", "the", "milk")
	assertContains(t, out, "Added note")

	notes := readEntry(t, d, "2025-11-21").Notes
	if len(notes) != 1 || notes[0].String() != "remember the milk" {
		t.Fatalf("notes = %v", notes)
	}
}

func TestNoteCommandFromEditor(t *testing.T) {
	d := newTestDeps(t)
	writeEntry(t, d, "2025-11-21", "#coach\nL\n\nTODO x\n\n")
	d.Editor.Command = fakeEditor(t, `printf 'a longer thought\nacross two lines\n\n\n' > "$1"`)
	d.Editor.Stdin = strings.NewReader("")
	d.Editor.Stdout = &bytes.Buffer{}
	d.Editor.Stderr = &bytes.Buffer{}

	executeCommand(t, newNoteCommand(context.Background(), d))

	want := "L\n\nTODO x\n\na longer thought\nacross two lines\n\n"
	if got := readEntry(t, d, "2025-11-21").String(); got != want {
		t.Fatalf("entry = %q, want %q", got, want)
	}
}

func TestNoteCommandRejectsInvalidNotes(t *testing.T) {
	d := newTestDeps(t)
	writeEntry(t, d, "2025-11-21", "#coach\nL\n\n")

	executeCommandErr(t, newNoteCommand(context.Background(), d), "TODO", "sneaky")
	executeCommandErr(t, newNoteCommand(context.Background(), d), "*", "<2025-11-21 Fri 10:00>")

	d.Editor.Command = fakeEditor(t, `printf 'one\n\ntwo\n' > "$1"`)
	d.Editor.Stdin = strings.NewReader("")
	d.Editor.Stdout = &bytes.Buffer{}
	d.Editor.Stderr = &bytes.Buffer{}
	executeCommandErr(t, newNoteCommand(context.Background(), d))

	d.Editor.Command = fakeEditor(t, `true`)
	err := executeCommandErr(t, newNoteCommand(context.Background(), d))
	assertContains(t, err.Error(), "empty")

	if n := len(readEntry(t, d, "2025-11-21").Notes); n != 0 {
		t.Fatalf("notes = %d, want 0", n)
	}
}
