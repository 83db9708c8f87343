package mutate

import (
	"time"

	"tempo-cli/internal/model"
	"tempo-cli/internal/store"
)

type IntervalUnit string

const (
	IntervalDay  IntervalUnit = "day"
	IntervalWeek IntervalUnit = "week"
)

func (u IntervalUnit) days() (int, bool) {
	switch u {
	case IntervalDay:
		return 1, true
	case IntervalWeek:
		return 7, true
	default:
		return 0, false
	}
}

// DuplicateResult is the outcome of a duplicate-forward: the clones, in date
// order.
type DuplicateResult struct {
	Created      []*model.Activity
	Changed      bool
	EventPayload map[string]any
}

// DuplicateForward creates count copies of the activity on successive future
// dates: clone i lands on baseDate + i intervals. Each clone is a full copy
// except id and timestamps, and is an independent entity afterwards: this is
// a one-shot copy, not a recurrence rule, and the original is untouched.
func DuplicateForward(db *store.DB, id string, count int, unit IntervalUnit, baseDate string) DuplicateResult {
	a, ok := find(db, id)
	if !ok || count <= 0 || !model.ValidDate(baseDate) {
		return DuplicateResult{}
	}
	step, ok := unit.days()
	if !ok {
		return DuplicateResult{}
	}
	base, err := time.Parse("2006-01-02", baseDate)
	if err != nil {
		return DuplicateResult{}
	}

	src := *a // copy before appends can move the backing array
	now := time.Now().UTC()
	dates := make([]string, 0, count)

	startLen := len(db.Activities)
	for i := 1; i <= count; i++ {
		clone := src
		clone.ID = store.NewActivityID(db)
		clone.Container = model.ContainerScheduled
		d := base.AddDate(0, 0, i*step).Format("2006-01-02")
		clone.Date = &d
		clone.Time = cloneString(src.Time)
		clone.DurationMinutes = cloneInt(src.DurationMinutes)
		clone.OrderIndex = cloneInt(src.OrderIndex)
		clone.CreatedAt = now
		clone.UpdatedAt = now

		db.Activities = append(db.Activities, clone)
		dates = append(dates, d)
	}
	// Take pointers only after all appends; growth may move the backing array.
	created := make([]*model.Activity, 0, count)
	for i := startLen; i < len(db.Activities); i++ {
		created = append(created, &db.Activities[i])
	}

	return DuplicateResult{
		Created: created,
		Changed: true,
		EventPayload: map[string]any{
			"source": src.ID,
			"count":  count,
			"unit":   unit,
			"dates":  dates,
		},
	}
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
