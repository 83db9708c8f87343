package mutate

import (
	"tempo-cli/internal/model"
	"tempo-cli/internal/order"
	"tempo-cli/internal/store"
)

// ReorderDay stamps OrderIndex from the positional index of each id in
// orderedIDs for one scheduled day.
//
// Anchored items are excluded from stamping only while the day has no manual
// order at all; once any item on the day carries an OrderIndex, or this call
// is about to stamp a flexible item and thereby introduce one, a reorder
// stamps every id it is given, anchored or not. That keeps a user's explicit
// arrangement authoritative over clock anchors, and it guarantees the
// committed day order reproduces the arrangement the caller asked for
// instead of letting a lone stamped item jump ahead of unindexed anchors.
//
// Ids that don't belong to the day (or don't exist) are skipped; their
// positions still count, since indices only need relative order, not density.
func ReorderDay(db *store.DB, date string, orderedIDs []string) Result {
	if db == nil || !model.ValidDate(date) {
		return Result{}
	}
	stampAnchored := order.HasManualOrder(db.DayList(date))
	if !stampAnchored {
		for _, id := range orderedIDs {
			if a, ok := find(db, id); ok && a.ScheduledOn(date) && !a.Anchored() {
				stampAnchored = true
				break
			}
		}
	}

	changed := false
	for i, id := range orderedIDs {
		a, ok := find(db, id)
		if !ok || !a.ScheduledOn(date) {
			continue
		}
		if a.Anchored() && !stampAnchored {
			continue
		}
		if a.OrderIndex != nil && *a.OrderIndex == i {
			continue
		}
		idx := i
		a.OrderIndex = &idx
		touch(a)
		changed = true
	}
	if !changed {
		return Result{}
	}
	return Result{
		Changed:      true,
		EventPayload: map[string]any{"date": date, "order": orderedIDs},
	}
}

// ReorderBucket stamps OrderIndex positionally for a capture/deferred list.
// Buckets have no anchoring concept, so every listed member is stamped.
func ReorderBucket(db *store.DB, bucket model.Container, orderedIDs []string) Result {
	if db == nil || (bucket != model.ContainerCapture && bucket != model.ContainerDeferred) {
		return Result{}
	}

	changed := false
	for i, id := range orderedIDs {
		a, ok := find(db, id)
		if !ok || a.Container != bucket {
			continue
		}
		if a.OrderIndex != nil && *a.OrderIndex == i {
			continue
		}
		idx := i
		a.OrderIndex = &idx
		touch(a)
		changed = true
	}
	if !changed {
		return Result{}
	}
	return Result{
		Changed:      true,
		EventPayload: map[string]any{"bucket": bucket, "order": orderedIDs},
	}
}
