package tui

import (
	"testing"

	"tempo-cli/internal/gesture"
	"tempo-cli/internal/model"
	"tempo-cli/internal/preview"
)

func listIDs(items []model.Activity) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func TestBeginDragPicksUpItemUnderPointer(t *testing.T) {
	m := testModel(t,
		testActivity("a", model.ContainerCapture, ""),
		testActivity("b", model.ContainerCapture, ""),
	)

	m.beginDrag(gesture.Point{X: 0, Y: boardTop + 1})
	if m.drag == nil || m.drag.id != "b" || m.drag.from != colCapture {
		t.Fatalf("drag = %+v", m.drag)
	}
	if m.focus != colCapture || m.cursor[colCapture] != 1 {
		t.Fatalf("selection not updated: focus=%v cursor=%d", m.focus, m.cursor[colCapture])
	}
}

func TestBeginDragOnEmptyRowIsNoop(t *testing.T) {
	m := testModel(t, testActivity("a", model.ContainerCapture, ""))
	m.beginDrag(gesture.Point{X: 0, Y: boardTop + 10})
	if m.drag != nil {
		t.Fatalf("drag started on empty row: %+v", m.drag)
	}
}

func TestCancelledDragCommitsNothing(t *testing.T) {
	m := testModel(t,
		testActivity("a", model.ContainerCapture, ""),
		testActivity("b", model.ContainerCapture, ""),
	)

	m.beginDrag(gesture.Point{X: 0, Y: boardTop})
	m.moveDrag(gesture.Point{X: 0, Y: boardTop + 1})
	m.endDrag(true)

	if m.drag != nil {
		t.Fatal("drag state survived cancellation")
	}
	for _, a := range m.db.Activities {
		if a.OrderIndex != nil {
			t.Fatalf("cancelled drag stamped %q", a.ID)
		}
	}
}

func TestSameColumnDragCommitsPreviewOrder(t *testing.T) {
	m := testModel(t,
		testActivity("a", model.ContainerCapture, ""),
		testActivity("b", model.ContainerCapture, ""),
		testActivity("c", model.ContainerCapture, ""),
	)

	// Pick up "a" and drop it below "c".
	m.beginDrag(gesture.Point{X: 0, Y: boardTop})
	m.moveDrag(gesture.Point{X: 0, Y: boardTop + 2})
	m.endDrag(false)

	got := listIDs(m.columnActivities(colCapture))
	want := []string{"b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("committed order %v, want %v", got, want)
		}
	}
}

func TestSameColumnDragAmongAnchorsCommitsPreviewOrder(t *testing.T) {
	morning := testActivity("morning", model.ContainerScheduled, "2026-03-02")
	morning.Time = sp("09:00")
	evening := testActivity("evening", model.ContainerScheduled, "2026-03-02")
	evening.Time = sp("17:00")
	m := testModel(t, morning, evening,
		testActivity("flex", model.ContainerScheduled, "2026-03-02"))

	// Day shows [morning evening flex]; drag the flexible item between the
	// two anchors and remember exactly what the preview displayed.
	dayX := 2 * (m.colWidth() + colGap)
	m.beginDrag(gesture.Point{X: dayX, Y: boardTop + 2})
	m.moveDrag(gesture.Point{X: dayX, Y: boardTop + 1})
	shown := listIDs(m.displayList(colDay))
	m.endDrag(false)

	got := listIDs(m.columnActivities(colDay))
	if len(got) != len(shown) {
		t.Fatalf("committed %v, preview showed %v", got, shown)
	}
	for i := range shown {
		if got[i] != shown[i] {
			t.Fatalf("committed %v, preview showed %v", got, shown)
		}
	}
	if got[1] != "flex" {
		t.Fatalf("dropped item not at its slot: %v", got)
	}
}

func TestCrossColumnDragAmongAnchorsCommitsPreviewOrder(t *testing.T) {
	morning := testActivity("morning", model.ContainerScheduled, "2026-03-02")
	morning.Time = sp("09:00")
	evening := testActivity("evening", model.ContainerScheduled, "2026-03-02")
	evening.Time = sp("17:00")
	m := testModel(t, morning, evening,
		testActivity("inbox", model.ContainerCapture, ""))

	// Drop the capture item between the two anchors; the committed day must
	// show it exactly where the placeholder reserved space.
	dayX := 2 * (m.colWidth() + colGap)
	m.beginDrag(gesture.Point{X: 0, Y: boardTop})
	m.moveDrag(gesture.Point{X: dayX, Y: boardTop + 1})
	shown := listIDs(m.displayList(colDay))
	for i := range shown {
		if shown[i] == preview.PlaceholderID {
			shown[i] = "inbox"
		}
	}
	m.endDrag(false)

	got := listIDs(m.columnActivities(colDay))
	if len(got) != len(shown) {
		t.Fatalf("committed %v, preview showed %v", got, shown)
	}
	for i := range shown {
		if got[i] != shown[i] {
			t.Fatalf("committed %v, preview showed %v", got, shown)
		}
	}
	if got[1] != "inbox" {
		t.Fatalf("dropped item not at its slot: %v", got)
	}
}

func TestCrossColumnDragSchedulesAndPlaces(t *testing.T) {
	m := testModel(t,
		testActivity("inbox", model.ContainerCapture, ""),
		testActivity("planned", model.ContainerScheduled, "2026-03-02"),
	)

	dayX := 2 * (m.colWidth() + colGap)
	m.beginDrag(gesture.Point{X: 0, Y: boardTop})
	m.moveDrag(gesture.Point{X: dayX, Y: boardTop})
	if m.drag.over != colDay {
		t.Fatalf("hover column %v", m.drag.over)
	}
	m.endDrag(false)

	moved, _ := m.db.FindActivity("inbox")
	if !moved.ScheduledOn("2026-03-02") {
		t.Fatalf("drop did not schedule: %+v", moved)
	}
	got := listIDs(m.columnActivities(colDay))
	if got[0] != "inbox" || got[1] != "planned" {
		t.Fatalf("day order %v", got)
	}
	if len(m.columnActivities(colCapture)) != 0 {
		t.Fatal("item still in capture")
	}
}

func TestCrossColumnDragOfDoneItemRefuses(t *testing.T) {
	done := testActivity("done-item", model.ContainerScheduled, "2026-03-02")
	done.Done = true
	m := testModel(t, done, testActivity("inbox", model.ContainerCapture, ""))

	dayX := 2 * (m.colWidth() + colGap)
	m.beginDrag(gesture.Point{X: dayX, Y: boardTop})
	m.moveDrag(gesture.Point{X: 0, Y: boardTop})
	m.endDrag(false)

	a, _ := m.db.FindActivity("done-item")
	if a.Container != model.ContainerScheduled {
		t.Fatalf("done item moved: %+v", a)
	}
	if inbox, _ := m.db.FindActivity("inbox"); inbox.OrderIndex != nil {
		t.Fatal("refused drop still reordered the target")
	}
}

func TestDisplayListShowsPlaceholderWhileHoveringForeignColumn(t *testing.T) {
	m := testModel(t,
		testActivity("inbox", model.ContainerCapture, ""),
		testActivity("planned", model.ContainerScheduled, "2026-03-02"),
	)

	dayX := 2 * (m.colWidth() + colGap)
	m.beginDrag(gesture.Point{X: 0, Y: boardTop})
	m.moveDrag(gesture.Point{X: dayX, Y: boardTop})

	day := m.displayList(colDay)
	if len(day) != 2 || day[0].ID != preview.PlaceholderID {
		t.Fatalf("day display %v", listIDs(day))
	}
	if day[0].Title != "inbox" {
		t.Fatalf("placeholder carries %q", day[0].Title)
	}
	if src := m.displayList(colCapture); len(src) != 0 {
		t.Fatalf("source column still shows the dragged item: %v", listIDs(src))
	}
	// Nothing is committed while hovering.
	if a, _ := m.db.FindActivity("inbox"); a.Container != model.ContainerCapture {
		t.Fatal("hover committed a move")
	}
}

func TestAutoScrollStopsWhenDragEnds(t *testing.T) {
	items := make([]model.Activity, 0, 40)
	for i := 0; i < 40; i++ {
		items = append(items, testActivity(string(rune('a'+i)), model.ContainerCapture, ""))
	}
	m := testModel(t, items...)

	m.beginDrag(gesture.Point{X: 0, Y: boardTop})
	m.drag.at = gesture.Point{X: 0, Y: m.height} // below the board edge
	m.applyAutoScroll()
	if m.scroll[colCapture] != 1 {
		t.Fatalf("scroll = %d", m.scroll[colCapture])
	}

	m.endDrag(true)
	before := m.scroll[colCapture]
	m.applyAutoScroll()
	if m.scroll[colCapture] != before {
		t.Fatal("autoscroll moved after the drag ended")
	}
	// The tick handler in Update also refuses to re-arm once drag is nil,
	// so the loop dies with the drag.
	if _, cmd := m.Update(autoScrollTickMsg{}); cmd != nil {
		t.Fatal("tick re-armed without an active drag")
	}
}
