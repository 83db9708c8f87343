package cli

import (
	"errors"
	"fmt"
	"strings"

	"tempo-cli/internal/model"
	"tempo-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <activity-id>",
		Short: "Toggle done (completing a bucket item schedules it on today)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := db.FindActivity(args[0]); !ok {
				return writeErr(cmd, errNotFound("activity", args[0]))
			}
			res := mutate.ToggleDone(db, args[0], today())
			if res.Changed {
				if err := saveAndLog(cmd, s, db, "activity.toggle_done", args[0], res.EventPayload); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": res.Activity})
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <activity-id> <capture|deferred>",
		Short: "Move an activity into a bucket (no-op while it is done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, ok := db.FindActivity(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("activity", args[0]))
			}

			var res mutate.Result
			switch strings.ToLower(strings.TrimSpace(args[1])) {
			case "capture":
				res = mutate.MoveToCapture(db, args[0])
			case "deferred":
				res = mutate.MoveToDeferred(db, args[0])
			default:
				return writeErr(cmd, fmt.Errorf("unknown bucket %q (capture|deferred)", args[1]))
			}

			if !res.Changed && a.Done {
				// Frozen placement: surface why nothing happened.
				return writeOut(cmd, app, map[string]any{
					"data":    res.Activity,
					"changed": false,
					"meta":    map[string]any{"reason": "done activities keep their scheduled placement"},
				})
			}
			if res.Changed {
				if err := saveAndLog(cmd, s, db, "activity.move", args[0], res.EventPayload); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": res.Activity, "changed": res.Changed})
		},
	}
	return cmd
}

func newScheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <activity-id> <date>",
		Short: "Anchor an activity to a calendar day (keeps existing time/duration)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := db.FindActivity(args[0]); !ok {
				return writeErr(cmd, errNotFound("activity", args[0]))
			}
			date, err := resolveDate(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			res := mutate.ScheduleOnDate(db, args[0], date)
			if res.Changed {
				if err := saveAndLog(cmd, s, db, "activity.schedule", args[0], res.EventPayload); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": res.Activity, "changed": res.Changed})
		},
	}
}

func newTimeCmd(app *App) *cobra.Command {
	var duration int
	var clear bool

	cmd := &cobra.Command{
		Use:   "time <activity-id> [HH:MM]",
		Short: "Set or clear the clock anchor on a scheduled activity",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, ok := db.FindActivity(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("activity", args[0]))
			}

			var res mutate.Result
			switch {
			case clear:
				res = mutate.SetTime(db, args[0], nil, nil)
			case len(args) == 2:
				t := strings.TrimSpace(args[1])
				if !model.ValidTime(t) {
					return writeErr(cmd, fmt.Errorf("invalid time %q (expected zero-padded 24h HH:MM)", args[1]))
				}
				if a.Container != model.ContainerScheduled {
					return writeErr(cmd, errors.New("activity is not scheduled on a day; run `tempo schedule` first"))
				}
				var durP *int
				if cmd.Flags().Changed("duration") {
					durP = &duration
				}
				res = mutate.SetTime(db, args[0], &t, durP)
			default:
				return writeErr(cmd, errors.New("pass HH:MM or --clear"))
			}

			if res.Changed {
				if err := saveAndLog(cmd, s, db, "activity.set_time", args[0], res.EventPayload); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": res.Activity, "changed": res.Changed})
		},
	}
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes (quarter-hour steps, 15-480)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the time (and duration)")
	return cmd
}
