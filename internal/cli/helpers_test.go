package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/joeatwork/coach/internal/config"
	"github.com/joeatwork/coach/internal/entry"
)

var fixedNow = time.Date(2025, time.November, 21, 10, 30, 0, 0, time.Local)

func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	cfg := config.Default()
	cfg.Home = t.TempDir()
	d, err := NewDeps(cfg, nil)
	if err != nil {
		t.Fatalf("NewDeps: %v", err)
	}
	d.Now = func() time.Time { return fixedNow }
	return d
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	out, err := runCommand(cmd, args...)
	if err != nil {
		t.Fatalf("cmd.Execute(%q): %v\n%s", args, err, out)
	}
	return out
}

func executeCommandErr(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	out, err := runCommand(cmd, args...)
	if err == nil {
		t.Fatalf("cmd.Execute(%q) succeeded, want error\n%s", args, out)
	}
	return err
}

func runCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	err := cmd.Execute()
	return buf.String(), err
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q missing substring %q", output, want)
	}
}

func assertNotContains(t *testing.T, output, want string) {
	t.Helper()
	if strings.Contains(output, want) {
		t.Fatalf("output %q unexpectedly contained substring %q", output, want)
	}
}

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		t.Fatalf("time.ParseInLocation: %v", err)
	}
	return d
}

func writeEntry(t *testing.T, d *Deps, date, content string) {
	t.Helper()
	if err := d.Manager.CreateNew(d.Manager.EntryPath(mustParseDate(t, date)), content); err != nil {
		t.Fatalf("CreateNew: %v", err)
	}
}

func readEntry(t *testing.T, d *Deps, date string) *entry.Entry {
	t.Helper()
	e, err := d.Reader.Entry(context.Background(), mustParseDate(t, date))
	if err != nil {
		t.Fatalf("reader.Entry: %v", err)
	}
	return e
}

func fakeEditor(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-editor")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestParseTaskIndex(t *testing.T) {
	if ix, err := parseTaskIndex("3"); err != nil || ix != 2 {
		t.Fatalf("parseTaskIndex(3) = %d, %v; want 2", ix, err)
	}
	if _, err := parseTaskIndex("0"); err == nil || err.Error() != "task indexes start at 1" {
		t.Fatalf("parseTaskIndex(0) error = %v", err)
	}
	if _, err := parseTaskIndex("two"); err == nil {
		t.Fatalf("parseTaskIndex(two) expected error")
	}
}

func TestResolveTimeUsesTargetDate(t *testing.T) {
	d := newTestDeps(t)
	date := mustParseDate(t, "2025-11-02")

	got, err := resolveTime(d, date, "09:45")
	if err != nil {
		t.Fatalf("resolveTime: %v", err)
	}
	want := time.Date(2025, time.November, 2, 9, 45, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("resolveTime = %v, want %v", got, want)
	}

	now, err := resolveTime(d, date, "")
	if err != nil || !now.Equal(fixedNow) {
		t.Fatalf("resolveTime without flag = %v, %v; want %v", now, err, fixedNow)
	}

	if _, err := resolveTime(d, date, "9am"); err == nil {
		t.Fatalf("resolveTime(9am) expected error")
	}
}
