package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joeatwork/coach/internal/entry"
	"github.com/joeatwork/coach/internal/journal"
)

func newPrevCommand(ctx context.Context, d *Deps) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "prev",
		Short: "Show the most recent entry before today or a specific date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(d, dateFlag)
			if err != nil {
				return err
			}

			e, day, err := d.Reader.Previous(ctx, date, d.Config.LookbackDays)
			if errors.Is(err, journal.ErrEntryNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No entries in the %d days before %s\n", d.Config.LookbackDays, date.Format(dateLayout))
				return nil
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", day.Format(dateLayout))
			fmt.Fprint(out, entry.Render(e))
			return nil
		},
	}

	addDateFlag(cmd, &dateFlag)

	return cmd
}

func newSearchCommand(ctx context.Context, d *Deps) *cobra.Command {
	var (
		dateFlag      string
		daysFlag      int
		caseSensitive bool
		outputJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search observations, tasks, events, and notes across recent entries.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(args[0])
			if term == "" {
				return fmt.Errorf("term is required")
			}
			date, err := resolveDate(d, dateFlag)
			if err != nil {
				return err
			}
			days := daysFlag
			if days <= 0 {
				days = 1
			}

			start := date.AddDate(0, 0, -(days - 1))
			found, err := d.Reader.Between(ctx, start, date)
			if err != nil {
				return err
			}

			results := filterEntriesByTerm(found, term, caseSensitive)
			if outputJSON {
				return printSearchResultsJSON(cmd, results)
			}
			return printSearchResultsText(cmd, term, results)
		},
	}

	addDateFlag(cmd, &dateFlag)
	cmd.Flags().IntVar(&daysFlag, "days", 30, "Number of days to search, ending on the target date")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match term with case sensitivity")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Emit results as JSON objects")

	return cmd
}

type searchResult struct {
	Date  string `json:"date"`
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func filterEntriesByTerm(found []journal.Dated, term string, caseSensitive bool) []searchResult {
	needle := term
	if !caseSensitive {
		needle = strings.ToLower(needle)
	}
	matches := func(text string) bool {
		if !caseSensitive {
			text = strings.ToLower(text)
		}
		return strings.Contains(text, needle)
	}

	var results []searchResult
	for _, dated := range found {
		date := dated.Date.Format(dateLayout)
		add := func(kind string, ix int, text string) {
			results = append(results, searchResult{Date: date, Kind: kind, Index: ix + 1, Text: text})
		}

		e := dated.Entry
		for ix, o := range e.Observations {
			if matches(o.String()) {
				add("observation", ix, o.String())
			}
		}
		for ix, t := range e.Tasks {
			if matches(t.Message.String()) {
				add("task", ix, t.String())
			}
		}
		for ix, ev := range e.Events {
			if matches(ev.Text.String()) {
				add("event", ix, ev.String())
			}
		}
		for ix, n := range e.Notes {
			if matches(n.String()) {
				add("note", ix, n.String())
			}
		}
	}
	return results
}

func printSearchResultsText(cmd *cobra.Command, term string, results []searchResult) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Results for %q\n", term)
	if len(results) == 0 {
		fmt.Fprintln(out, "(no matches)")
		return nil
	}

	for _, res := range results {
		text, _, _ := strings.Cut(res.Text, "\n")
		fmt.Fprintf(out, "%s %s %d: %s\n", res.Date, res.Kind, res.Index, text)
	}
	return nil
}

func printSearchResultsJSON(cmd *cobra.Command, results []searchResult) error {
	if results == nil {
		results = []searchResult{}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
