package cli

import (
	"errors"
	"fmt"
	"os"

	"tempo-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a human-inspectable JSON export of the workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := store.Export(db)
			if err != nil {
				return writeErr(cmd, err)
			}
			if out == "" || out == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"exported": out, "activities": len(db.Activities)})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the workspace from an exported or raw snapshot file",
		Long: `Import accepts either a tempo export file or the storage-native snapshot
shape. The file is fully validated before anything changes; on any error the
current state is untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			db, err := store.Import(raw)
			if err != nil {
				// Keep the two failure modes distinguishable for the user.
				var shapeErr *store.ShapeError
				switch {
				case errors.Is(err, store.ErrNotJSON):
					return writeErr(cmd, fmt.Errorf("%s is not a JSON file: %w", args[0], err))
				case errors.As(err, &shapeErr):
					return writeErr(cmd, fmt.Errorf("%s is valid JSON but not a tempo snapshot: %s", args[0], shapeErr.Reason))
				default:
					return writeErr(cmd, err)
				}
			}

			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), "workspace.import", args[0], map[string]any{"activities": len(db.Activities)}); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: event log append failed: %v\n", err)
			}
			return writeOut(cmd, app, map[string]any{"imported": args[0], "activities": len(db.Activities)})
		},
	}
	return cmd
}

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Read the mutation event log (oldest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			evs, err := s.ReadEvents(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": evs})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max events to return (0 = all)")
	return cmd
}
