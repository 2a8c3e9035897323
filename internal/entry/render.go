package entry

import "strings"

// Render writes e as headerless entry text.
func Render(e *Entry) string {
	return Codec{}.Render(e)
}

// Render writes e in canonical form: header, label, observations, a blank
// line, then tasks, events, and notes, each group followed by a blank line.
func (c Codec) Render(e *Entry) string {
	var b strings.Builder
	b.Grow(64 + 32*(len(e.Observations)+len(e.Tasks)+len(e.Events)+len(e.Notes)))

	if c.Magic != "" {
		b.WriteString(c.Magic)
		b.WriteByte('\n')
	}
	b.WriteString(e.Label.s)
	b.WriteByte('\n')
	for _, obs := range e.Observations {
		b.WriteString(obs.String())
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	for _, task := range e.Tasks {
		b.WriteString(task.String())
		b.WriteByte('\n')
	}
	if len(e.Tasks) > 0 {
		b.WriteByte('\n')
	}

	for _, event := range e.Events {
		b.WriteString("* ")
		b.WriteString(event.String())
		b.WriteByte('\n')
	}
	if len(e.Events) > 0 {
		b.WriteByte('\n')
	}

	for _, note := range e.Notes {
		b.WriteString(note.s)
		b.WriteString("\n\n")
	}

	return b.String()
}

// String renders the entry without a header.
func (e *Entry) String() string {
	return Render(e)
}
