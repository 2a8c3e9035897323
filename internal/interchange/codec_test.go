package interchange

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/joeatwork/coach/internal/entry"
)

func mustParse(t *testing.T, text string) *entry.Entry {
	t.Helper()
	e, err := entry.Parse(text)
	require.NoError(t, err)
	return e
}

func sampleEntry(t *testing.T) *entry.Entry {
	return mustParse(t, `Test
key: value1

TODO take a break
WORKING learn go
CANCELLED teach the dog go

* <2021-10-31 Sun 21:10> working in the lab late one night

This is note one

And this is note two,
it is multiline

`)
}

func TestEncodeJSONGolden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".json.golden"))

	data, err := Encode(sampleEntry(t), JSON)
	require.NoError(t, err)
	g.Assert(t, "full_entry", data)

	data, err = Encode(mustParse(t, "Label\n\n"), JSON)
	require.NoError(t, err)
	g.Assert(t, "label_only", data)
}

func TestRoundTripThroughFormats(t *testing.T) {
	original := sampleEntry(t)
	for _, format := range []Format{JSON, YAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(original, format)
			require.NoError(t, err)

			got, err := Decode(data, format)
			require.NoError(t, err)
			if !got.Equal(original) {
				t.Fatalf("Decode(Encode(e)) = %q, want %q", got.String(), original.String())
			}
		})
	}
}

func TestDecodeNormalizesEventTimes(t *testing.T) {
	doc := `{"label": "L", "events": [{"when": "2024-03-02T09:30:45+01:00", "text": "  coffee"}]}`

	e, err := Decode([]byte(doc), JSON)
	require.NoError(t, err)
	require.Len(t, e.Events, 1)
	want := time.Date(2024, time.March, 2, 8, 30, 0, 0, time.UTC)
	if !e.Events[0].When.Equal(want) {
		t.Fatalf("When = %v, want %v", e.Events[0].When, want)
	}
	require.Equal(t, "coffee", e.Events[0].Text.String())
}

func TestDecodeYAML(t *testing.T) {
	doc := `
label: From yaml
observations:
  - name: mood
    value: fine
tasks:
  - state: done
    message: ship it
notes:
  - |-
    two
    lines
`
	e, err := Decode([]byte(doc), YAML)
	require.NoError(t, err)
	require.Equal(t, "From yaml\nmood: fine\n\nDONE ship it\n\ntwo\nlines\n\n", e.String())
}

func TestDecodeRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]struct {
		doc  string
		path string
	}{
		"not json":              {doc: `{`},
		"missing label":         {doc: `{}`},
		"empty label":           {doc: `{"label": ""}`, path: "label"},
		"label newline":         {doc: `{"label": "a\nb"}`, path: "label"},
		"unknown field":         {doc: `{"label": "L", "mood": "ok"}`},
		"observation colon":     {doc: `{"label": "L", "observations": [{"name": "a:b", "value": "v"}]}`, path: "observations[0].name"},
		"bad state":             {doc: `{"label": "L", "tasks": [{"state": "later", "message": "m"}]}`, path: "tasks[0].state"},
		"task newline":          {doc: `{"label": "L", "tasks": [{"state": "todo", "message": "a\nb"}]}`, path: "tasks[0].message"},
		"bad timestamp":         {doc: `{"label": "L", "events": [{"when": "yesterday", "text": "x"}]}`, path: "events[0].when"},
		"note with blank line":  {doc: `{"label": "L", "notes": ["a\n\nb"]}`, path: "notes[0]"},
		"note that is a task":   {doc: `{"label": "L", "notes": ["TODO x"]}`, path: "notes[0]"},
		"note with empty value": {doc: `{"label": "L", "notes": [""]}`, path: "notes[0]"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e, err := Decode([]byte(tc.doc), JSON)
			if e != nil {
				t.Fatalf("Decode returned entry %v alongside error", e)
			}
			if !errors.Is(err, ErrInvalidDocument) {
				t.Fatalf("Decode error = %v, want ErrInvalidDocument", err)
			}
			if tc.path != "" && !strings.Contains(err.Error(), tc.path) {
				t.Fatalf("Decode error = %q, want mention of %q", err, tc.path)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"json": JSON, "JSON": JSON, "yaml": YAML, "yml": YAML} {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseFormat("toml"); err == nil {
		t.Fatalf("ParseFormat(toml) expected error")
	}
}

func TestPointerPath(t *testing.T) {
	cases := map[string]string{
		"":                  "document",
		"/label":            "label",
		"/tasks/0/state":    "tasks[0].state",
		"/notes/12":         "notes[12]",
		"/events/3/when":    "events[3].when",
		"/observations/0/x": "observations[0].x",
	}
	for ptr, want := range cases {
		if got := pointerPath(ptr); got != want {
			t.Fatalf("pointerPath(%q) = %q, want %q", ptr, got, want)
		}
	}
}
