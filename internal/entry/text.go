package entry

import "strings"

// NoNewlines is a string known to contain no '\n'. Labels, observation values,
// task messages, and event text are all NoNewlines.
type NoNewlines struct {
	s string
}

// AsNoNewlines reports false if s contains a newline.
func AsNoNewlines(s string) (NoNewlines, bool) {
	if strings.ContainsRune(s, '\n') {
		return NoNewlines{}, false
	}
	return NoNewlines{s: s}, true
}

func (n NoNewlines) String() string {
	return n.s
}

// ObservationName is the key half of an observation line: nonempty, with no
// newline and no colon.
type ObservationName struct {
	s string
}

// AsObservationName reports false if s is empty or contains '\n' or ':'.
func AsObservationName(s string) (ObservationName, bool) {
	if s == "" || strings.ContainsAny(s, "\n:") {
		return ObservationName{}, false
	}
	return ObservationName{s: s}, true
}

func (n ObservationName) String() string {
	return n.s
}

// Note is a block of free text in the body of an entry. A note never contains a
// blank line and never starts like a task or event line, otherwise it would not
// read back as the same note.
type Note struct {
	s string
}

// AsNote reports false if s is empty, begins or ends with '\n', contains a
// blank line, or would be read as a task or event.
func AsNote(s string) (Note, bool) {
	if s == "" || strings.HasPrefix(s, "\n") || strings.HasSuffix(s, "\n") || strings.Contains(s, "\n\n") {
		return Note{}, false
	}
	if isTaskLine(s) || isEventLine(s) {
		return Note{}, false
	}
	return Note{s: s}, true
}

func (n Note) String() string {
	return n.s
}
