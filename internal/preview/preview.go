// Package preview computes speculative orderings for in-progress drags.
// Both functions are pure and replayable: pointer drags and touch drags call
// them on every move, and nothing is committed until the interaction ends and
// the caller invokes the placement operations in mutate.
package preview

import (
	"tempo-cli/internal/model"
	"tempo-cli/internal/order"
)

// PlaceholderID is the sentinel id used for the synthetic stand-in entity in
// cross-container previews. Callers substitute the real id at commit time.
const PlaceholderID = "drag-placeholder"

// Anchored computes the speculative order after moving draggedID to
// targetIndex within its own container: the dragged item is removed,
// re-inserted at the clamped index, and the anchored pass re-sorts
// time-anchored items back into time order.
//
// An unknown draggedID leaves positions untouched (the triggering event may
// race a deletion). Out-of-range indexes clamp; they never fail.
func Anchored(items []model.Activity, draggedID string, targetIndex int) []model.Activity {
	idx := -1
	for i := range items {
		if items[i].ID == draggedID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return order.ResortAnchored(items)
	}

	dragged := items[idx]
	rest := make([]model.Activity, 0, len(items)-1)
	rest = append(rest, items[:idx]...)
	rest = append(rest, items[idx+1:]...)

	return order.ResortAnchored(insertAt(rest, dragged, targetIndex))
}

// Placeholder computes the speculative order for a container the drag is
// hovering over but did not start in. A synthetic copy of dragged (with
// PlaceholderID) reserves the drop slot so the hovered container's layout
// makes room before the move is committed.
func Placeholder(items []model.Activity, dragged model.Activity, targetIndex int) []model.Activity {
	ph := dragged
	ph.ID = PlaceholderID
	return order.ResortAnchored(insertAt(items, ph, targetIndex))
}

func insertAt(items []model.Activity, a model.Activity, idx int) []model.Activity {
	idx = clamp(idx, len(items))
	out := make([]model.Activity, 0, len(items)+1)
	out = append(out, items[:idx]...)
	out = append(out, a)
	out = append(out, items[idx:]...)
	return out
}

func clamp(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx > n {
		return n
	}
	return idx
}
