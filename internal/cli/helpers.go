package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joeatwork/coach/internal/entry"
	"github.com/joeatwork/coach/internal/journal"
)

const dateLayout = "2006-01-02"

func today(d *Deps) time.Time {
	now := d.Now().In(time.Local)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func resolveDate(d *Deps, dateFlag string) (time.Time, error) {
	if dateFlag == "" {
		return today(d), nil
	}

	parsed, err := time.ParseInLocation(dateLayout, dateFlag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}
	return parsed, nil
}

// resolveTime returns the current moment, or date at the given HH:MM in
// date's location.
func resolveTime(d *Deps, date time.Time, timeFlag string) (time.Time, error) {
	if timeFlag == "" {
		return d.Now(), nil
	}

	parsed, err := time.ParseInLocation("15:04", timeFlag, date.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time: %w", err)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}

func addDateFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "date", "", "Target date in YYYY-MM-DD (default: today)")
}

// loadEntry reads the entry for date, pointing at "coach today" when there
// is none yet.
func loadEntry(ctx context.Context, d *Deps, date time.Time) (*entry.Entry, error) {
	e, err := d.Reader.Entry(ctx, date)
	if errors.Is(err, journal.ErrEntryNotFound) {
		return nil, missingEntry(date, err)
	}
	return e, err
}

// update runs mutate against the entry for date.
func update(ctx context.Context, d *Deps, date time.Time, mutate func(*entry.Entry) error) (*entry.Entry, error) {
	e, err := d.Writer.Update(ctx, date, mutate)
	if errors.Is(err, journal.ErrEntryNotFound) {
		return nil, missingEntry(date, err)
	}
	return e, err
}

func missingEntry(date time.Time, err error) error {
	return fmt.Errorf("no entry for %s, run \"coach today\" first: %w", date.Format(dateLayout), err)
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func singleLine(value, what string) (entry.NoNewlines, error) {
	nn, ok := entry.AsNoNewlines(value)
	if !ok {
		return entry.NoNewlines{}, fmt.Errorf("%s can't contain newlines", what)
	}
	return nn, nil
}

// parseTaskIndex converts a 1-based index argument to a slice index.
func parseTaskIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task index %q", arg)
	}
	if n <= 0 {
		return 0, errors.New("task indexes start at 1")
	}
	return n - 1, nil
}

func printTask(cmd *cobra.Command, ix int, task entry.Task) {
	fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", ix+1, task)
}
