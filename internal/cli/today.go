package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joeatwork/coach/internal/entry"
	"github.com/joeatwork/coach/internal/journal"
)

func newTodayCommand(ctx context.Context, d *Deps) *cobra.Command {
	var (
		dateFlag  string
		carryFlag bool
	)

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Create the journal entry for today or a specific date.",
		Long:  "today creates a new entry labelled with its date. With --carry (or carry_tasks in the config), open tasks from the most recent earlier entry are copied over.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(d, dateFlag)
			if err != nil {
				return err
			}

			label, err := singleLine(date.Format(dateLayout), "label")
			if err != nil {
				return err
			}
			e := entry.New(label)

			carry := d.Config.CarryTasks
			if cmd.Flags().Changed("carry") {
				carry = carryFlag
			}
			if carry {
				prev, day, err := d.Reader.Previous(ctx, date, d.Config.LookbackDays)
				switch {
				case errors.Is(err, journal.ErrEntryNotFound):
					d.Logger.Info("no earlier entry to carry tasks from", "lookback_days", d.Config.LookbackDays)
				case err != nil:
					return err
				default:
					e.Tasks = prev.LiveTasks()
					if len(e.Tasks) > 0 {
						fmt.Fprintf(cmd.OutOrStdout(), "Carried %d tasks from %s\n", len(e.Tasks), day.Format(dateLayout))
					}
				}
			}

			if err := d.Writer.Create(ctx, date, e); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", d.Manager.EntryPath(date))
			return nil
		},
	}

	addDateFlag(cmd, &dateFlag)
	cmd.Flags().BoolVar(&carryFlag, "carry", false, "Copy TODO and WORKING tasks from the previous entry")

	return cmd
}

func newCatCommand(ctx context.Context, d *Deps) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "cat",
		Short: "Write the contents of a journal entry to standard out.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(d, dateFlag)
			if err != nil {
				return err
			}

			e, err := loadEntry(ctx, d, date)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), entry.Coach.Render(e))
			return nil
		},
	}

	addDateFlag(cmd, &dateFlag)

	return cmd
}
