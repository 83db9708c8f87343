// Package order computes the canonical display order for activities sharing a
// container. It is the single ordering implementation consumed by the day,
// week, and board surfaces; none of them carry their own sort logic.
package order

import (
	"sort"
	"time"

	"tempo-cli/internal/model"
)

// Day returns a's total order for one scheduled day.
//
// Placement groups, in order:
//  1. items carrying an OrderIndex, by index ascending (anchor time breaks
//     ties, regardless of anchoring);
//  2. anchored items without an index, by time ascending;
//  3. flexible items without an index, by CreatedAt ascending.
//
// When nothing in the day carries an OrderIndex this degrades to the plain
// split: anchored by time, then flexible by creation time. Once the user has
// manually ordered anything on the day, that order wins.
//
// The sort is stable: equal keys preserve input order. The input is not
// mutated.
func Day(items []model.Activity) []model.Activity {
	out := append([]model.Activity(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return compareDay(out[i], out[j]) < 0
	})
	return out
}

// Bucket returns the total order for a capture or deferred list. Buckets have
// no anchoring concept: OrderIndex (present-first), then CreatedAt.
func Bucket(items []model.Activity) []model.Activity {
	out := append([]model.Activity(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return compareBucket(out[i], out[j]) < 0
	})
	return out
}

func compareDay(a, b model.Activity) int {
	ga, gb := dayGroup(a), dayGroup(b)
	if ga != gb {
		return ga - gb
	}
	switch ga {
	case 0:
		if *a.OrderIndex != *b.OrderIndex {
			return *a.OrderIndex - *b.OrderIndex
		}
		// Equal indexes are legal (indexes are never dense or unique);
		// anchor time breaks the tie.
		if c := compareTime(a.Time, b.Time); c != 0 {
			return c
		}
		return compareCreated(a, b)
	case 1:
		if c := compareTime(a.Time, b.Time); c != 0 {
			return c
		}
		return compareCreated(a, b)
	default:
		return compareCreated(a, b)
	}
}

func dayGroup(a model.Activity) int {
	switch {
	case a.OrderIndex != nil:
		return 0
	case a.Time != nil:
		return 1
	default:
		return 2
	}
}

func compareBucket(a, b model.Activity) int {
	switch {
	case a.OrderIndex != nil && b.OrderIndex != nil:
		if *a.OrderIndex != *b.OrderIndex {
			return *a.OrderIndex - *b.OrderIndex
		}
		return compareCreated(a, b)
	case a.OrderIndex != nil:
		return -1
	case b.OrderIndex != nil:
		return 1
	default:
		return compareCreated(a, b)
	}
}

// compareTime orders clock values lexically; zero-padded HH:MM makes that
// correct. A missing time sorts after any present time.
func compareTime(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func compareCreated(a, b model.Activity) int {
	if a.CreatedAt.Before(b.CreatedAt) {
		return -1
	}
	if a.CreatedAt.After(b.CreatedAt) {
		return 1
	}
	return 0
}

// ResortAnchored permutes anchored items back into time order while keeping
// every anchored slot where the input put it. Non-anchored items do not move.
// This is the "anchored pass" applied to drag previews: a time-anchored item
// dropped into an illegal slot visibly relocates, while the dragged flexible
// item keeps its requested position.
//
// The input is not mutated.
func ResortAnchored(items []model.Activity) []model.Activity {
	out := append([]model.Activity(nil), items...)

	var slots []int
	for i := range out {
		if out[i].Time != nil {
			slots = append(slots, i)
		}
	}
	if len(slots) < 2 {
		return out
	}

	anchored := make([]model.Activity, 0, len(slots))
	for _, i := range slots {
		anchored = append(anchored, out[i])
	}
	sort.SliceStable(anchored, func(i, j int) bool {
		return compareTime(anchored[i].Time, anchored[j].Time) < 0
	})
	for k, i := range slots {
		out[i] = anchored[k]
	}
	return out
}

// HasManualOrder reports whether any item in the container carries an
// OrderIndex. The placement state machine uses this to decide whether a
// day-level reorder stamps anchored items too.
func HasManualOrder(items []model.Activity) bool {
	for i := range items {
		if items[i].OrderIndex != nil {
			return true
		}
	}
	return false
}

// WeekDates returns the seven YYYY-MM-DD dates of the week containing anchor,
// starting on Monday. An unparsable anchor yields the current week.
func WeekDates(anchor string) []string {
	t, err := time.Parse("2006-01-02", anchor)
	if err != nil {
		t = time.Now()
	}
	// time.Weekday is Sunday-based; shift so Monday is day 0.
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)

	out := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, monday.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return out
}
