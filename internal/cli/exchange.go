package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joeatwork/coach/internal/interchange"
)

func newExportCommand(ctx context.Context, d *Deps) *cobra.Command {
	var (
		dateFlag   string
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an entry as JSON or YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := interchange.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			date, err := resolveDate(d, dateFlag)
			if err != nil {
				return err
			}

			e, err := loadEntry(ctx, d, date)
			if err != nil {
				return err
			}
			data, err := interchange.Encode(e, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	addDateFlag(cmd, &dateFlag)
	cmd.Flags().StringVar(&formatFlag, "format", string(interchange.JSON), "json or yaml")

	return cmd
}

func newImportCommand(ctx context.Context, d *Deps) *cobra.Command {
	var (
		dateFlag   string
		formatFlag string
		forceFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create an entry from a JSON or YAML document.",
		Long:  "import validates the document and stores it as the entry for the target date. Use - to read standard input. The format defaults to the file extension.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := importFormat(path, formatFlag)
			if err != nil {
				return err
			}
			date, err := resolveDate(d, dateFlag)
			if err != nil {
				return err
			}

			var data []byte
			if path == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(path)
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			e, err := interchange.Decode(data, format)
			if err != nil {
				return err
			}

			if forceFlag {
				err = d.Writer.Overwrite(ctx, date, e)
			} else {
				err = d.Writer.Create(ctx, date, e)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", d.Manager.EntryPath(date))
			return nil
		},
	}

	addDateFlag(cmd, &dateFlag)
	cmd.Flags().StringVar(&formatFlag, "format", "", "json or yaml (default: from the file extension, else json)")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Replace an existing entry")

	return cmd
}

func importFormat(path, formatFlag string) (interchange.Format, error) {
	if formatFlag != "" {
		return interchange.ParseFormat(formatFlag)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return interchange.YAML, nil
	default:
		return interchange.JSON, nil
	}
}
