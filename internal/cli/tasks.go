package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/joeatwork/coach/internal/entry"
)

func newTaskCommand(ctx context.Context, d *Deps) *cobra.Command {
	var (
		dateFlag string
		sortFlag bool
	)

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the TODO list from this entry.",
		Long:  "task lists the entry's tasks with their 1-based indexes. Subcommands add tasks and move them between states.",
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

			order := make([]int, len(e.Tasks))
			for i := range order {
				order[i] = i
			}
			if sortFlag {
				slices.SortStableFunc(order, func(a, b int) int {
					return entry.CompareTasks(e.Tasks[a], e.Tasks[b])
				})
			}
			for _, ix := range order {
				printTask(cmd, ix, e.Tasks[ix])
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&dateFlag, "date", "", "Target date in YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&sortFlag, "sort", false, "List by state, then message; indexes are unchanged")

	cmd.AddCommand(
		newTaskAddCommand(ctx, d, &dateFlag),
		newTaskStateCommand(ctx, d, &dateFlag, "todo", entry.Todo),
		newTaskStateCommand(ctx, d, &dateFlag, "working", entry.Working),
		newTaskStateCommand(ctx, d, &dateFlag, "done", entry.Done),
		newTaskStateCommand(ctx, d, &dateFlag, "cancel", entry.Cancelled),
	)

	return cmd
}

func newTaskAddCommand(ctx context.Context, d *Deps, dateFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text ...>",
		Short: "Add a TODO task.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := singleLine(joinArgs(args), "task messages")
			if err != nil {
				return err
			}
			if message.String() == "" {
				return fmt.Errorf("text is required")
			}

			date, err := resolveDate(d, *dateFlag)
			if err != nil {
				return err
			}

			var ix int
			e, err := update(ctx, d, date, func(e *entry.Entry) error {
				ix = e.AddTask(message)
				return nil
			})
			if err != nil {
				return err
			}

			printTask(cmd, ix, e.Tasks[ix])
			return nil
		},
	}
}

func newTaskStateCommand(ctx context.Context, d *Deps, dateFlag *string, name string, state entry.State) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <index>",
		Short: fmt.Sprintf("Mark an item on the todo list as %s.", state),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := parseTaskIndex(args[0])
			if err != nil {
				return err
			}

			date, err := resolveDate(d, *dateFlag)
			if err != nil {
				return err
			}

			var task entry.Task
			_, err = update(ctx, d, date, func(e *entry.Entry) error {
				var setErr error
				task, setErr = e.SetTaskState(ix, state)
				return setErr
			})
			if errors.Is(err, entry.ErrInvalidIndex) {
				return fmt.Errorf("%d is too large, no task found", ix+1)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), task)
			return nil
		},
	}
}
