package entry

import "testing"

func TestAsNoNewlines(t *testing.T) {
	cases := map[string]bool{
		"":              true,
		"plain":         true,
		"  padded  ":    true,
		"colon: fine":   true,
		"line\nbreak":   false,
		"\n":            false,
		"trailing\n":    false,
		"carriage\rret": true,
	}
	for input, want := range cases {
		got, ok := AsNoNewlines(input)
		if ok != want {
			t.Fatalf("AsNoNewlines(%q) ok = %v, want %v", input, ok, want)
		}
		if ok && got.String() != input {
			t.Fatalf("AsNoNewlines(%q) = %q, want input unchanged", input, got)
		}
	}
}

func TestAsObservationName(t *testing.T) {
	cases := map[string]bool{
		"mood":       true,
		"sleep hrs":  true,
		" padded ":   true,
		"":           false,
		"a:b":        false,
		":":          false,
		"multi\nkey": false,
	}
	for input, want := range cases {
		if _, ok := AsObservationName(input); ok != want {
			t.Fatalf("AsObservationName(%q) ok = %v, want %v", input, ok, want)
		}
	}
}

func TestAsNote(t *testing.T) {
	cases := map[string]bool{
		"a note":                   true,
		"two\nlines":               true,
		"TODO":                     true,
		"todo lowercase":           true,
		"*emphasis*":               true,
		"first line\nTODO later":   true,
		"":                         false,
		"\nleading":                false,
		"trailing\n":               false,
		"blank\n\nline":            false,
		"TODO x":                   false,
		"WORKING x":                false,
		"DONE x":                   false,
		"CANCELLED x":              false,
		"* <2021-10-31 Sun 21:10>": false,
		"* not even an event":      false,
	}
	for input, want := range cases {
		got, ok := AsNote(input)
		if ok != want {
			t.Fatalf("AsNote(%q) ok = %v, want %v", input, ok, want)
		}
		if ok && got.String() != input {
			t.Fatalf("AsNote(%q) = %q, want input unchanged", input, got)
		}
	}
}
