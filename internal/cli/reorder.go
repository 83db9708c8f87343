package cli

import (
	"errors"

	"tempo-cli/internal/model"
	"tempo-cli/internal/mutate"
	"tempo-cli/internal/order"

	"github.com/spf13/cobra"
)

func newReorderCmd(app *App) *cobra.Command {
	var day string
	var bucket string

	cmd := &cobra.Command{
		Use:   "reorder <activity-id...>",
		Short: "Reorder a container by listing its ids in the desired order",
		Long: `Reorder stamps each listed activity's order index from its position in the
argument list. Pass the full desired order for one day (--day) or one bucket
(--bucket).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if (day == "") == (bucket == "") {
				return writeErr(cmd, errors.New("provide exactly one of --day or --bucket"))
			}

			var res mutate.Result
			var listed []model.Activity
			if day != "" {
				d, err := resolveDate(day)
				if err != nil {
					return writeErr(cmd, err)
				}
				res = mutate.ReorderDay(db, d, args)
				listed = order.Day(db.DayList(d))
				if res.Changed {
					if err := saveAndLog(cmd, s, db, "activity.reorder_day", d, res.EventPayload); err != nil {
						return writeErr(cmd, err)
					}
				}
			} else {
				c, ok := model.ParseContainer(bucket)
				if !ok || c == model.ContainerScheduled {
					return writeErr(cmd, errors.New("bucket must be capture or deferred"))
				}
				res = mutate.ReorderBucket(db, c, args)
				listed = order.Bucket(db.BucketList(c))
				if res.Changed {
					if err := saveAndLog(cmd, s, db, "activity.reorder_bucket", bucket, res.EventPayload); err != nil {
						return writeErr(cmd, err)
					}
				}
			}
			return writeOut(cmd, app, map[string]any{"data": listed, "changed": res.Changed})
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "Reorder within a day (YYYY-MM-DD or today/tomorrow)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Reorder within a bucket (capture|deferred)")
	return cmd
}

func newDuplicateCmd(app *App) *cobra.Command {
	var count int
	var unit string
	var from string

	cmd := &cobra.Command{
		Use:   "duplicate <activity-id>",
		Short: "Copy an activity onto successive future days (one-shot, no recurrence)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, ok := db.FindActivity(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("activity", args[0]))
			}

			iu := mutate.IntervalUnit(unit)
			if iu != mutate.IntervalDay && iu != mutate.IntervalWeek {
				return writeErr(cmd, errors.New("--every must be day or week"))
			}

			baseDate := from
			if baseDate == "" {
				if a.Date != nil {
					baseDate = *a.Date
				} else {
					baseDate = today()
				}
			}
			baseDate, err = resolveDate(baseDate)
			if err != nil {
				return writeErr(cmd, err)
			}

			res := mutate.DuplicateForward(db, args[0], count, iu, baseDate)
			if !res.Changed {
				return writeErr(cmd, errors.New("nothing duplicated (check --count and the base date)"))
			}
			if err := saveAndLog(cmd, s, db, "activity.duplicate", args[0], res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Created})
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "How many copies to create")
	cmd.Flags().StringVar(&unit, "every", "day", "Interval between copies (day|week)")
	cmd.Flags().StringVar(&from, "from", "", "Base date (default: the activity's date, else today)")
	return cmd
}
