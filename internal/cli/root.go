package cli

import (
	"fmt"
	"os"
	"strings"

	"tempo-cli/internal/format"
	"tempo-cli/internal/store"
	"tempo-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tempo",
		Short:        "Tempo, a local-first day planner (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  tempo

  # Capture an idea
  tempo capture "write the talk abstract"

  # Today's plan
  tempo list --day today

  # Put something on a day, then anchor it
  tempo schedule act-abc123 2026-03-10
  tempo time act-abc123 09:30 --duration 45
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TEMPO_DIR", ""), "Path to store dir (advanced: overrides workspace resolution; mainly for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("TEMPO_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newCaptureCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newScheduleCmd(app))
	cmd.AddCommand(newTimeCmd(app))
	cmd.AddCommand(newReorderCmd(app))
	cmd.AddCommand(newDuplicateCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(s, db)
}

// loadDB resolves the store dir (flag > current workspace > default
// workspace > project-local .tempo discovery) and loads the snapshot,
// falling back to an empty state when nothing usable is persisted.
func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		if app.Workspace != "" {
			d, err := store.WorkspaceDir(app.Workspace)
			if err != nil {
				return nil, store.Store{}, err
			}
			dir = d
		} else if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
			d, err := store.WorkspaceDir(cfg.CurrentWorkspace)
			if err != nil {
				return nil, store.Store{}, err
			}
			app.Workspace = cfg.CurrentWorkspace
			dir = d
		} else if cwd, err := os.Getwd(); err == nil {
			if found, ok := store.DiscoverDir(cwd); ok {
				dir = found
			}
		}
		if dir == "" {
			app.Workspace = "default"
			d, err := store.WorkspaceDir(app.Workspace)
			if err != nil {
				return nil, store.Store{}, err
			}
			dir = d
		}
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	return s.LoadOrDefault(), s, nil
}

// saveAndLog persists the snapshot and appends the operation to the event
// log. The event log is best-effort; a failed append never fails the command.
func saveAndLog(cmd *cobra.Command, s store.Store, db *store.DB, typ, entityID string, payload map[string]any) error {
	if err := s.Save(db); err != nil {
		return err
	}
	if err := s.AppendEvent(cmd.Context(), typ, entityID, payload); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: event log append failed: %v\n", err)
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
