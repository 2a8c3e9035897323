package entry

import (
	"strings"
	"time"
	"unicode"
)

// timestampLayout is the minute-precision form used between < and > on event lines.
const timestampLayout = "2006-01-02 Mon 15:04"

// Codec reads and writes entry text. When Magic is set, the text must begin
// with a line holding exactly Magic. Magic must not contain a newline.
type Codec struct {
	Magic string
}

// Coach is the codec for entry files on disk.
var Coach = Codec{Magic: "#coach"}

// Parse reads headerless entry text.
func Parse(text string) (*Entry, error) {
	return Codec{}.Parse(text)
}

// Parse reads text into an Entry, stopping at the first structural problem.
// It never returns a partial entry alongside an error.
func (c Codec) Parse(text string) (*Entry, error) {
	p := &parser{rest: text, line: 1}

	if c.Magic != "" {
		header := c.Magic + "\n"
		if !strings.HasPrefix(p.rest, header) {
			return nil, p.fail(ErrNoMagicNumber)
		}
		p.advance(len(header))
	}

	label, n, terminated := p.nextLine()
	switch {
	case !terminated:
		return nil, p.fail(ErrMissingNewline)
	case label == "":
		return nil, p.fail(ErrEmptyLabel)
	}
	e := &Entry{Label: NoNewlines{s: label}}
	p.advance(n)

	for p.rest != "" && p.rest[0] != '\n' {
		obs, err := p.observation()
		if err != nil {
			return nil, err
		}
		e.Observations = append(e.Observations, obs)
	}

	for {
		p.skipBlankLines()
		if p.rest == "" {
			break
		}

		line, n, _ := p.nextLine()
		if task, ok := parseTaskLine(line); ok {
			e.Tasks = append(e.Tasks, task)
			p.advance(n)
			continue
		}
		if isEventLine(line) {
			event, err := parseEventLine(line)
			if err != nil {
				return nil, p.fail(err)
			}
			e.Events = append(e.Events, event)
			p.advance(n)
			continue
		}
		e.Notes = append(e.Notes, p.note())
	}

	return e, nil
}

type parser struct {
	rest string
	line int
}

func (p *parser) fail(err error) error {
	return &ParseError{Line: p.line, Err: err}
}

func (p *parser) advance(n int) {
	p.line += strings.Count(p.rest[:n], "\n")
	p.rest = p.rest[n:]
}

// nextLine returns the current line without its newline and the number of
// bytes it occupies.
func (p *parser) nextLine() (line string, n int, terminated bool) {
	if ix := strings.IndexByte(p.rest, '\n'); ix >= 0 {
		return p.rest[:ix], ix + 1, true
	}
	return p.rest, len(p.rest), false
}

func (p *parser) skipBlankLines() {
	n := len(p.rest) - len(strings.TrimLeft(p.rest, "\n"))
	p.advance(n)
}

func (p *parser) observation() (Observation, error) {
	line, n, terminated := p.nextLine()
	if !terminated {
		return Observation{}, p.fail(ErrMissingNewline)
	}
	sep := strings.Index(line, ": ")
	if sep < 0 {
		return Observation{}, p.fail(ErrExpectedObservation)
	}
	name, ok := AsObservationName(line[:sep])
	if !ok {
		return Observation{}, p.fail(ErrExpectedObservation)
	}
	p.advance(n)
	return Observation{Name: name, Value: NoNewlines{s: line[sep+2:]}}, nil
}

// note consumes up to the next blank line or the end of input.
func (p *parser) note() Note {
	end := strings.Index(p.rest, "\n\n")
	if end < 0 {
		end = len(p.rest)
	}
	text := strings.TrimRight(p.rest[:end], "\n")
	p.advance(end)
	return Note{s: text}
}

func parseTaskLine(line string) (Task, bool) {
	for state, prefix := range statePrefixes {
		if strings.HasPrefix(line, prefix) {
			return Task{State: State(state), Message: NoNewlines{s: line[len(prefix):]}}, true
		}
	}
	return Task{}, false
}

func isTaskLine(s string) bool {
	_, ok := parseTaskLine(s)
	return ok
}

func isEventLine(s string) bool {
	return strings.HasPrefix(s, "* ")
}

func parseEventLine(line string) (Event, error) {
	body := line[len("* "):]
	if !strings.HasPrefix(body, "<") {
		return Event{}, ErrMissingTimestamp
	}
	end := strings.IndexByte(body, '>')
	if end < 0 {
		return Event{}, ErrMalformedTimestamp
	}
	when, ok := parseTimestamp(strings.TrimSpace(body[1:end]))
	if !ok {
		return Event{}, ErrMalformedTimestamp
	}
	return Event{
		When: when,
		Text: NoNewlines{s: strings.TrimLeftFunc(body[end+1:], unicode.IsSpace)},
	}, nil
}

// parseTimestamp accepts only the canonical spelling, so the weekday has to
// agree with the date.
func parseTimestamp(s string) (time.Time, bool) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil || t.Format(timestampLayout) != s {
		return time.Time{}, false
	}
	return t, true
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
