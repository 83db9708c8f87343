package cli

import (
	"errors"

	"tempo-cli/internal/model"
	"tempo-cli/internal/mutate"
	"tempo-cli/internal/order"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var day string
	var week string
	var bucket string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities in display order (per bucket, day, or week)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			set := 0
			for _, v := range []string{day, week, bucket} {
				if v != "" {
					set++
				}
			}
			if set > 1 {
				return writeErr(cmd, errors.New("use at most one of --day, --week, --bucket"))
			}

			switch {
			case bucket != "":
				c, ok := model.ParseContainer(bucket)
				if !ok || c == model.ContainerScheduled {
					return writeErr(cmd, errors.New("bucket must be capture or deferred"))
				}
				return writeOut(cmd, app, map[string]any{
					"data": order.Bucket(db.BucketList(c)),
				})
			case week != "":
				anchor, err := resolveDate(week)
				if err != nil {
					return writeErr(cmd, err)
				}
				days := map[string][]model.Activity{}
				for _, d := range order.WeekDates(anchor) {
					days[d] = order.Day(db.DayList(d))
				}
				return writeOut(cmd, app, map[string]any{"data": days})
			default:
				if day == "" {
					day = "today"
				}
				d, err := resolveDate(day)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{
					"data": order.Day(db.DayList(d)),
				})
			}
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "List one day (YYYY-MM-DD or today/tomorrow)")
	cmd.Flags().StringVar(&week, "week", "", "List the week containing the given day")
	cmd.Flags().StringVar(&bucket, "bucket", "", "List a bucket (capture|deferred)")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <activity-id>",
		Short: "Show one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, ok := db.FindActivity(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("activity", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": a})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var title string
	var note string
	var clearNote bool

	cmd := &cobra.Command{
		Use:   "edit <activity-id>",
		Short: "Edit title and/or note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := db.FindActivity(args[0]); !ok {
				return writeErr(cmd, errNotFound("activity", args[0]))
			}

			var titleP, noteP *string
			if cmd.Flags().Changed("title") {
				titleP = &title
			}
			if clearNote {
				empty := ""
				noteP = &empty
			} else if cmd.Flags().Changed("note") {
				noteP = &note
			}
			if titleP == nil && noteP == nil {
				return writeErr(cmd, errors.New("nothing to change (pass --title and/or --note)"))
			}

			res := mutate.Edit(db, args[0], titleP, noteP)
			if res.Changed {
				if err := saveAndLog(cmd, s, db, "activity.edit", args[0], res.EventPayload); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": res.Activity, "changed": res.Changed})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&note, "note", "", "New note (markdown)")
	cmd.Flags().BoolVar(&clearNote, "clear-note", false, "Remove the note")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <activity-id>",
		Short: "Delete an activity permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.Delete(db, args[0])
			if !res.Changed {
				return writeErr(cmd, errNotFound("activity", args[0]))
			}
			if err := saveAndLog(cmd, s, db, "activity.delete", args[0], res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": args[0]})
		},
	}
}
