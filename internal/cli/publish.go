package cli

import (
	"errors"

	"tempo-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var day string
	var week string
	var to string
	var includeDone bool
	var includeNotes bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write read-only markdown plan pages for a day or a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if (day == "") == (week == "") {
				return writeErr(cmd, errors.New("provide exactly one of --day or --week"))
			}
			if to == "" {
				return writeErr(cmd, errors.New("missing --to <dir>"))
			}

			opt := publish.WriteOptions{
				IncludeDone:  includeDone,
				IncludeNotes: includeNotes,
				Overwrite:    overwrite,
			}

			var res publish.WriteResult
			if day != "" {
				d, err := resolveDate(day)
				if err != nil {
					return writeErr(cmd, err)
				}
				res, err = publish.WriteDay(db, d, to, opt)
				if err != nil {
					return writeErr(cmd, err)
				}
			} else {
				d, err := resolveDate(week)
				if err != nil {
					return writeErr(cmd, err)
				}
				res, err = publish.WriteWeek(db, d, to, opt)
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "Publish one day (YYYY-MM-DD or today/tomorrow)")
	cmd.Flags().StringVar(&week, "week", "", "Publish the week containing the given day")
	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().BoolVar(&includeDone, "include-done", false, "Include completed activities")
	cmd.Flags().BoolVar(&includeNotes, "include-notes", false, "Include activity notes")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	return cmd
}
