package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joeatwork/coach/internal/entry"
)

func newObserveCommand(ctx context.Context, d *Deps) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "observe <name> <value>",
		Short: "Add a key/value observation to the journal.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ok := entry.AsObservationName(args[0])
			if !ok {
				return errors.New("observation names must contain at least one character, and can't contain newlines or colons")
			}
			value, err := singleLine(args[1], "observation values")
			if err != nil {
				return err
			}

			date, err := resolveDate(d, dateFlag)
			if err != nil {
				return err
			}

			if _, err := update(ctx, d, date, func(e *entry.Entry) error {
				e.AddObservation(name, value)
				return nil
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Observed %s\n", entry.Observation{Name: name, Value: value})
			return nil
		},
	}

	addDateFlag(cmd, &dateFlag)

	return cmd
}

func newEventCommand(ctx context.Context, d *Deps) *cobra.Command {
	var (
		dateFlag string
		atFlag   string
	)

	cmd := &cobra.Command{
		Use:   "event <text ...>",
		Short: "Record a timestamped event.",
		Long:  "event appends a line stamped with the current time, or with --at HH:MM on the target date. Times are stored in UTC.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := singleLine(joinArgs(args), "event text")
			if err != nil {
				return err
			}
			if text.String() == "" {
				return fmt.Errorf("text is required")
			}

			date, err := resolveDate(d, dateFlag)
			if err != nil {
				return err
			}
			when, err := resolveTime(d, date, atFlag)
			if err != nil {
				return err
			}

			ev := entry.NewEvent(when, text)
			if _, err := update(ctx, d, date, func(e *entry.Entry) error {
				e.AddEvent(when, text)
				return nil
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added event * %s\n", ev)
			return nil
		},
	}

	addDateFlag(cmd, &dateFlag)
	cmd.Flags().StringVar(&atFlag, "at", "", "Local time in HH:MM (default: now)")

	return cmd
}

func newNoteCommand(ctx context.Context, d *Deps) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "note [text ...]",
		Short: "Append a free-form note.",
		Long:  "note appends its arguments as a note. Without arguments it opens $EDITOR on an empty file and saves what you write.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(d, dateFlag)
			if err != nil {
				return err
			}
			// Fail before opening the editor if there is nothing to add to.
			if _, err := loadEntry(ctx, d, date); err != nil {
				return err
			}

			var raw string
			if len(args) > 0 {
				raw = joinArgs(args)
			} else {
				raw, err = d.Editor.Prompt(ctx)
				if err != nil {
					return err
				}
			}

			raw = strings.TrimRight(raw, "\n")
			if strings.TrimSpace(raw) == "" {
				return errors.New("note is empty, nothing added")
			}
			n, ok := entry.AsNote(raw)
			if !ok {
				return errors.New("notes can't contain blank lines, or start like a task or event line")
			}

			if _, err := update(ctx, d, date, func(e *entry.Entry) error {
				e.AddNote(n)
				return nil
			}); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Added note")
			return nil
		},
	}

	addDateFlag(cmd, &dateFlag)

	return cmd
}
