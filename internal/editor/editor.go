// Package editor collects free text by running the user's editor on a
// temporary file.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Editor runs Command with a file path appended. Command is split on
// whitespace, so values like "vim -e" work; shell quoting is not interpreted.
type Editor struct {
	Command string

	// Stdin and Stdout default to the controlling terminal, so the editor
	// works even when coach's own streams are redirected.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Prompt opens an empty temporary file in the editor and returns what the
// user saved.
func (e Editor) Prompt(ctx context.Context) (string, error) {
	file, err := os.CreateTemp("", "coach-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := file.Name()
	defer os.Remove(path)
	if err := file.Close(); err != nil {
		return "", err
	}

	if err := e.Launch(ctx, path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}
	return string(data), nil
}

// Launch runs the editor on path and waits for it to exit.
func (e Editor) Launch(ctx context.Context, path string) error {
	fields := strings.Fields(e.Command)
	if len(fields) == 0 {
		return errors.New("no editor configured")
	}

	stdin, stdout := e.Stdin, e.Stdout
	if stdin == nil || stdout == nil {
		tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer tty.Close()
		if stdin == nil {
			stdin = tty
		}
		if stdout == nil {
			stdout = tty
		}
	}
	stderr := e.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	args := append(fields[1:], path)
	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run editor %q: %w", fields[0], err)
	}
	return nil
}
