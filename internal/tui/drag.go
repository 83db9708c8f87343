package tui

import (
	"tempo-cli/internal/gesture"
	"tempo-cli/internal/model"
	"tempo-cli/internal/mutate"
	"tempo-cli/internal/preview"

	tea "github.com/charmbracelet/bubbletea"
)

// dragState is the live drag. from is the column the item was picked up in,
// over/index is where it currently hovers, at is the last pointer position
// used by the autoscroll loop.
type dragState struct {
	id    string
	from  column
	over  column
	index int
	at    gesture.Point
}

func (m *appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.recognizer.TouchStart(gesture.Point{X: msg.X, Y: msg.Y})
		case tea.MouseButtonWheelUp:
			m.wheel(msg.X, -1)
		case tea.MouseButtonWheelDown:
			m.wheel(msg.X, +1)
		}
	case tea.MouseActionMotion:
		m.recognizer.TouchMove(gesture.Point{X: msg.X, Y: msg.Y})
	case tea.MouseActionRelease:
		m.recognizer.TouchEnd()
	}
	return m, nil
}

func (m *appModel) wheel(x, delta int) {
	if m.scrollLocked {
		return
	}
	c, ok := m.colAtX(x)
	if !ok {
		return
	}
	m.scroll[c] = clampScroll(m.scroll[c]+delta, len(m.columnActivities(c)), m.visibleRows())
}

func (m *appModel) beginDrag(at gesture.Point) {
	c, ok := m.colAtX(at.X)
	if !ok {
		return
	}
	items := m.columnActivities(c)
	i := m.rowToIndex(c, at.Y)
	if i < 0 || i >= len(items) {
		return
	}
	m.focus = c
	m.cursor[c] = i
	m.drag = &dragState{id: items[i].ID, from: c, over: c, index: i, at: at}
}

func (m *appModel) moveDrag(at gesture.Point) {
	if m.drag == nil {
		return
	}
	m.drag.at = at
	if c, ok := m.colAtX(at.X); ok {
		m.drag.over = c
	}
	n := len(m.displayBase(m.drag.over))
	i := m.rowToIndex(m.drag.over, at.Y)
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	m.drag.index = i
}

func (m *appModel) endDrag(cancelled bool) {
	d := m.drag
	m.drag = nil
	if d == nil || cancelled {
		return
	}
	if d.over == d.from {
		m.commitSameColumn(d)
	} else {
		m.commitCrossColumn(d)
	}
	m.clampCursor()
}

// commitSameColumn commits exactly the order the preview showed: the preview
// engine produces the final list, and its ids become the reorder call.
func (m *appModel) commitSameColumn(d *dragState) {
	final := preview.Anchored(m.columnActivities(d.from), d.id, d.index)
	ids := idsOf(final)
	if d.from == colDay {
		res := mutate.ReorderDay(m.db, m.day, ids)
		m.committed(res.Changed, "activity.reorder_day", m.day, res.EventPayload)
	} else {
		bucket := bucketOf(d.from)
		res := mutate.ReorderBucket(m.db, bucket, ids)
		m.committed(res.Changed, "activity.reorder_bucket", string(bucket), res.EventPayload)
	}
}

// commitCrossColumn moves the item into the target container, then reorders
// the target with the placeholder slot substituted by the real id, so the
// committed order matches the hover preview.
func (m *appModel) commitCrossColumn(d *dragState) {
	dragged, ok := m.db.FindActivity(d.id)
	if !ok {
		return
	}
	// The hovered column's baseline, captured before the move lands the
	// dragged item in it. The shown preview was built from the same list.
	shown := preview.Placeholder(m.columnActivities(d.over), *dragged, d.index)

	var moveRes mutate.Result
	if d.over == colDay {
		moveRes = mutate.ScheduleOnDate(m.db, d.id, m.day)
	} else {
		if bucketOf(d.over) == model.ContainerCapture {
			moveRes = mutate.MoveToCapture(m.db, d.id)
		} else {
			moveRes = mutate.MoveToDeferred(m.db, d.id)
		}
	}
	if !moveRes.Changed {
		// Refused (done items stay put); nothing to reorder.
		m.status = "done activities keep their day"
		return
	}
	m.committed(true, "activity.move", d.id, moveRes.EventPayload)

	ids := idsOf(shown)
	for i := range ids {
		if ids[i] == preview.PlaceholderID {
			ids[i] = d.id
		}
	}
	if d.over == colDay {
		res := mutate.ReorderDay(m.db, m.day, ids)
		m.committed(res.Changed, "activity.reorder_day", m.day, res.EventPayload)
	} else {
		bucket := bucketOf(d.over)
		res := mutate.ReorderBucket(m.db, bucket, ids)
		m.committed(res.Changed, "activity.reorder_bucket", string(bucket), res.EventPayload)
	}
}

// displayBase is the column's items with the dragged item taken out, the
// baseline that cross-column previews insert the placeholder into.
func (m *appModel) displayBase(c column) []model.Activity {
	items := m.columnActivities(c)
	if m.drag == nil || m.drag.from != c {
		return items
	}
	out := make([]model.Activity, 0, len(items))
	for _, a := range items {
		if a.ID != m.drag.id {
			out = append(out, a)
		}
	}
	return out
}

// displayList is what View renders for a column, drag preview included.
func (m *appModel) displayList(c column) []model.Activity {
	if m.drag == nil {
		return m.columnActivities(c)
	}
	d := m.drag
	switch {
	case d.over == c && d.from == c:
		return preview.Anchored(m.columnActivities(c), d.id, d.index)
	case d.over == c:
		dragged, ok := m.db.FindActivity(d.id)
		if !ok {
			return m.columnActivities(c)
		}
		return preview.Placeholder(m.displayBase(c), *dragged, d.index)
	case d.from == c:
		return m.displayBase(c)
	default:
		return m.columnActivities(c)
	}
}

func idsOf(items []model.Activity) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}

func bucketOf(c column) model.Container {
	if c == colDeferred {
		return model.ContainerDeferred
	}
	return model.ContainerCapture
}
