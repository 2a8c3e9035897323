package entry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTaskIsLive(t *testing.T) {
	cases := map[State]bool{
		Todo:      true,
		Working:   true,
		Done:      false,
		Cancelled: false,
	}
	for state, want := range cases {
		task := Task{State: state, Message: nn("x")}
		if got := task.IsLive(); got != want {
			t.Fatalf("%s IsLive() = %v, want %v", state, got, want)
		}
	}
}

func TestSetTaskStateKeepsMessage(t *testing.T) {
	e := New(nn("Label"))
	e.AddTask(nn("  write it down "))

	task, err := e.SetTaskState(0, Done)
	if err != nil {
		t.Fatalf("SetTaskState: %v", err)
	}
	want := Task{State: Done, Message: nn("  write it down ")}
	if task != want || e.Tasks[0] != want {
		t.Fatalf("task = %v (stored %v), want %v", task, e.Tasks[0], want)
	}
}

func TestUpdateTaskCanReword(t *testing.T) {
	e := New(nn("Label"))
	e.AddTask(nn("draft"))

	_, err := e.UpdateTask(0, func(message NoNewlines) Task {
		return Task{State: Working, Message: nn(message.String() + " v2")}
	})
	require.NoError(t, err)
	require.Equal(t, Task{State: Working, Message: nn("draft v2")}, e.Tasks[0])
}

func TestUpdateTaskRejectsBadIndex(t *testing.T) {
	e := New(nn("Label"))
	e.AddTask(nn("only"))

	for _, ix := range []int{-1, 1, 5} {
		if _, err := e.SetTaskState(ix, Done); !errors.Is(err, ErrInvalidIndex) {
			t.Fatalf("SetTaskState(%d) error = %v, want ErrInvalidIndex", ix, err)
		}
	}
	if e.Tasks[0].State != Todo {
		t.Fatalf("task state changed to %v on failed update", e.Tasks[0].State)
	}
}

func TestSortTasksOrdersByStateThenMessage(t *testing.T) {
	tasks := []Task{
		{State: Cancelled, Message: nn("a")},
		{State: Done, Message: nn("b")},
		{State: Working, Message: nn("z")},
		{State: Todo, Message: nn("m")},
		{State: Working, Message: nn("a")},
		{State: Todo, Message: nn("c")},
	}

	got := SortTasks(tasks)
	require.Equal(t, []Task{
		{State: Todo, Message: nn("c")},
		{State: Todo, Message: nn("m")},
		{State: Working, Message: nn("a")},
		{State: Working, Message: nn("z")},
		{State: Done, Message: nn("b")},
		{State: Cancelled, Message: nn("a")},
	}, got)
	if tasks[0].State != Cancelled {
		t.Fatalf("SortTasks modified its input")
	}
}

func TestLiveTasks(t *testing.T) {
	e := New(nn("Label"))
	e.Tasks = []Task{
		{State: Done, Message: nn("shipped")},
		{State: Working, Message: nn("review")},
		{State: Cancelled, Message: nn("dropped")},
		{State: Todo, Message: nn("plan")},
	}
	require.Equal(t, []Task{
		{State: Working, Message: nn("review")},
		{State: Todo, Message: nn("plan")},
	}, e.LiveTasks())
}

func TestParseState(t *testing.T) {
	cases := map[string]State{
		"todo":      Todo,
		"TODO":      Todo,
		"working":   Working,
		"done":      Done,
		"cancel":    Cancelled,
		"cancelled": Cancelled,
		"canceled":  Cancelled,
	}
	for input, want := range cases {
		got, err := ParseState(input)
		if err != nil || got != want {
			t.Fatalf("ParseState(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseState("later"); err == nil {
		t.Fatalf("ParseState(later) expected error")
	}
}

func TestNewEventNormalizes(t *testing.T) {
	loc := time.FixedZone("CET", 60*60)
	ev := NewEvent(time.Date(2024, time.March, 2, 9, 30, 45, 999, loc), nn(" \tcoffee"))

	wantWhen := time.Date(2024, time.March, 2, 8, 30, 0, 0, time.UTC)
	if !ev.When.Equal(wantWhen) || ev.When.Location() != time.UTC {
		t.Fatalf("When = %v, want %v", ev.When, wantWhen)
	}
	if ev.Text.String() != "coffee" {
		t.Fatalf("Text = %q, want %q", ev.Text, "coffee")
	}
}

func TestEntryEqualComparesEventsByMinute(t *testing.T) {
	a := New(nn("Label"))
	a.Events = []Event{{When: time.Date(2024, 1, 1, 10, 0, 5, 0, time.UTC), Text: nn("x")}}
	b := New(nn("Label"))
	b.Events = []Event{{When: time.Date(2024, 1, 1, 11, 0, 59, 0, time.FixedZone("+1", 60*60)), Text: nn("x")}}

	if !a.Equal(b) {
		t.Fatalf("entries with events in the same minute should be equal")
	}
	b.Events[0].When = b.Events[0].When.Add(time.Minute)
	if a.Equal(b) {
		t.Fatalf("entries with events in different minutes should differ")
	}
}

func TestEmptyUsesPlaceholder(t *testing.T) {
	if got := Empty().Label.String(); got != Placeholder {
		t.Fatalf("Empty().Label = %q, want %q", got, Placeholder)
	}
}
