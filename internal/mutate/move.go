package mutate

import (
	"tempo-cli/internal/model"
	"tempo-cli/internal/store"
)

// MoveToCapture moves the activity to the capture list, clearing the fields
// only a scheduled day can carry. Done activities are frozen into their
// scheduled placement, so the move refuses (no-op) while Done is set.
func MoveToCapture(db *store.DB, id string) Result {
	return moveToBucket(db, id, model.ContainerCapture)
}

// MoveToDeferred is MoveToCapture for the deferred list.
func MoveToDeferred(db *store.DB, id string) Result {
	return moveToBucket(db, id, model.ContainerDeferred)
}

func moveToBucket(db *store.DB, id string, bucket model.Container) Result {
	a, ok := find(db, id)
	if !ok {
		return Result{}
	}
	if a.Done {
		return Result{Activity: a}
	}
	if a.Container == bucket && a.Date == nil && a.Time == nil && a.DurationMinutes == nil {
		return Result{Activity: a}
	}

	from := a.Container
	a.Container = bucket
	a.Date = nil
	a.Time = nil
	a.DurationMinutes = nil
	touch(a)
	return Result{
		Activity:     a,
		Changed:      true,
		EventPayload: map[string]any{"from": from, "to": bucket},
	}
}

// ScheduleOnDate anchors the activity to a calendar day. An existing clock
// time and duration are preserved; only the container/date change.
func ScheduleOnDate(db *store.DB, id, date string) Result {
	a, ok := find(db, id)
	if !ok || !model.ValidDate(date) {
		if ok {
			return Result{Activity: a}
		}
		return Result{}
	}
	if a.ScheduledOn(date) {
		return Result{Activity: a}
	}

	from := a.Container
	d := date
	a.Container = model.ContainerScheduled
	a.Date = &d
	touch(a)
	return Result{
		Activity:     a,
		Changed:      true,
		EventPayload: map[string]any{"from": from, "date": date},
	}
}

// SetTime sets or clears the activity's clock anchor. Clearing (t == nil)
// also clears the duration and works in any container; setting a time has no
// anchoring effect unless the activity is already scheduled on a day.
func SetTime(db *store.DB, id string, t *string, durationMinutes *int) Result {
	a, ok := find(db, id)
	if !ok {
		return Result{}
	}

	if t == nil {
		if a.Time == nil && a.DurationMinutes == nil {
			return Result{Activity: a}
		}
		a.Time = nil
		a.DurationMinutes = nil
		touch(a)
		return Result{
			Activity:     a,
			Changed:      true,
			EventPayload: map[string]any{"time": nil},
		}
	}

	if a.Container != model.ContainerScheduled || !model.ValidTime(*t) {
		return Result{Activity: a}
	}

	tv := *t
	dur := model.NormalizeDuration(durationMinutes)
	if a.Time != nil && *a.Time == tv && intPtrEq(a.DurationMinutes, dur) {
		return Result{Activity: a}
	}
	a.Time = &tv
	a.DurationMinutes = dur
	touch(a)
	payload := map[string]any{"time": tv}
	if dur != nil {
		payload["durationMinutes"] = *dur
	}
	return Result{Activity: a, Changed: true, EventPayload: payload}
}

func intPtrEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
