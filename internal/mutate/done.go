package mutate

import (
	"tempo-cli/internal/model"
	"tempo-cli/internal/store"
)

// ToggleDone flips the done flag. Completing an activity that still lives in
// a bucket additionally schedules it on today with no clock time, as one
// combined transition, so subscribers never observe a done activity in a
// bucket in between.
//
// today is the caller's current date (YYYY-MM-DD); it is a parameter so the
// transition is deterministic under test. Completing a bucket item with an
// unparsable today is rejected as a no-op rather than leaving a done
// activity stranded in the bucket.
func ToggleDone(db *store.DB, id, today string) Result {
	a, ok := find(db, id)
	if !ok {
		return Result{}
	}
	if !a.Done && a.InBucket() && !model.ValidDate(today) {
		return Result{}
	}

	a.Done = !a.Done
	payload := map[string]any{"done": a.Done}
	if a.Done && a.InBucket() {
		d := today
		a.Container = model.ContainerScheduled
		a.Date = &d
		a.Time = nil
		a.DurationMinutes = nil
		payload["scheduledOn"] = today
	}
	touch(a)
	return Result{Activity: a, Changed: true, EventPayload: payload}
}
