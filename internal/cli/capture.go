package cli

import (
	"errors"
	"strings"

	"tempo-cli/internal/model"
	"tempo-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newCaptureCmd(app *App) *cobra.Command {
	var deferred bool
	var onDate string

	cmd := &cobra.Command{
		Use:   "capture <title...>",
		Short: "Capture a new activity (lands in the capture list by default)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return writeErr(cmd, errors.New("empty title"))
			}

			container := model.ContainerCapture
			date := ""
			if deferred && onDate != "" {
				return writeErr(cmd, errors.New("use at most one of --deferred and --on"))
			}
			if deferred {
				container = model.ContainerDeferred
			}
			if onDate != "" {
				d, err := resolveDate(onDate)
				if err != nil {
					return writeErr(cmd, err)
				}
				container = model.ContainerScheduled
				date = d
			}

			res := mutate.Create(db, title, container, date)
			if !res.Changed {
				return writeErr(cmd, errors.New("could not create activity"))
			}
			if err := saveAndLog(cmd, s, db, "activity.create", res.Activity.ID, res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Activity})
		},
	}
	cmd.Flags().BoolVar(&deferred, "deferred", false, "Capture straight into the deferred list")
	cmd.Flags().StringVar(&onDate, "on", "", "Capture straight onto a day (YYYY-MM-DD or today/tomorrow)")
	return cmd
}
