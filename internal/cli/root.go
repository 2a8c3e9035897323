package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/joeatwork/coach/internal/config"
	"github.com/joeatwork/coach/internal/editor"
	"github.com/joeatwork/coach/internal/files"
	"github.com/joeatwork/coach/internal/journal"
	"github.com/joeatwork/coach/internal/logging"
	"github.com/joeatwork/coach/internal/ui"
)

// Deps carries the collaborators every command shares.
type Deps struct {
	Config  config.Config
	Manager *files.Manager
	Reader  *journal.Reader
	Writer  *journal.Writer
	Editor  editor.Editor
	Logger  *log.Logger

	// Now is the clock; tests pin it.
	Now func() time.Time
}

// NewDeps wires storage, the journal, and the editor from cfg.
func NewDeps(cfg config.Config, logger *log.Logger) (*Deps, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	manager, err := files.NewManager(cfg.Home, cfg.MaxEntryBytes)
	if err != nil {
		return nil, err
	}
	return &Deps{
		Config:  cfg,
		Manager: manager,
		Reader:  journal.NewReader(manager, logger),
		Writer:  journal.NewWriter(manager, logger),
		Editor:  editor.Editor{Command: cfg.Editor},
		Logger:  logger,
		Now:     time.Now,
	}, nil
}

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context, d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "A journal and project manager.",
		Long:  "coach keeps one plain-text entry per day: observations, tasks, timestamped events, and notes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			date := today(d)
			m := ui.NewModel(ctx, d.Reader, d.Writer, date, d.Now)
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newTodayCommand(ctx, d),
		newCatCommand(ctx, d),
		newObserveCommand(ctx, d),
		newTaskCommand(ctx, d),
		newEventCommand(ctx, d),
		newNoteCommand(ctx, d),
		newPrevCommand(ctx, d),
		newSearchCommand(ctx, d),
		newExportCommand(ctx, d),
		newImportCommand(ctx, d),
		newVersionCommand(),
	)

	return cmd
}

// ExecuteCommand loads configuration and executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}

	d, err := NewDeps(cfg, logger)
	if err != nil {
		return err
	}
	return NewRootCommand(ctx, d).Execute()
}

// Main is a helper used by cmd/coach/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
