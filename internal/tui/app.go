package tui

import (
	"context"
	"time"

	"tempo-cli/internal/gesture"
	"tempo-cli/internal/model"
	"tempo-cli/internal/mutate"
	"tempo-cli/internal/order"
	"tempo-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type column int

const (
	colCapture column = iota
	colDeferred
	colDay
	colCount
)

type (
	dragStartMsg  struct{ at gesture.Point }
	dragMoveMsg   struct{ at gesture.Point }
	dragEndMsg    struct{ cancelled bool }
	scrollLockMsg struct{ locked bool }
)

type appModel struct {
	store      store.Store
	db         *store.DB
	saver      *store.DebouncedSaver
	recognizer *gesture.Recognizer

	width  int
	height int

	focus  column
	cursor [colCount]int
	scroll [colCount]int
	day    string

	capture   textinput.Model
	capturing bool

	showNote     bool
	scrollLocked bool

	drag *dragState

	status string
}

func newAppModel(s store.Store, db *store.DB) *appModel {
	applyGlyphPreference()

	ti := textinput.New()
	ti.Placeholder = "capture an activity…"
	ti.CharLimit = 200

	m := &appModel{
		store:   s,
		db:      db,
		saver:   store.NewDebouncedSaver(s, 0),
		day:     time.Now().Format("2006-01-02"),
		capture: ti,
	}

	if st := s.LoadUIState(); st != nil {
		if model.ValidDate(st.SelectedDate) {
			m.day = st.SelectedDate
		}
		switch st.Column {
		case "deferred":
			m.focus = colDeferred
		case "day":
			m.focus = colDay
		}
	}
	return m
}

func (m *appModel) Init() tea.Cmd { return nil }

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.capturing {
			return m.updateCapturing(msg)
		}
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case dragStartMsg:
		m.beginDrag(msg.at)
		if m.drag != nil {
			return m, autoScrollTick()
		}
		return m, nil

	case dragMoveMsg:
		m.moveDrag(msg.at)
		return m, nil

	case dragEndMsg:
		m.endDrag(msg.cancelled)
		return m, nil

	case scrollLockMsg:
		m.scrollLocked = msg.locked
		return m, nil

	case autoScrollTickMsg:
		// The loop re-arms only while a drag is active; a finished drag lets
		// it die rather than leaking a perpetual tick.
		if m.drag == nil {
			return m, nil
		}
		m.applyAutoScroll()
		return m, autoScrollTick()
	}
	return m, nil
}

func (m *appModel) updateCapturing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.capturing = false
		m.capture.Reset()
		return m, nil
	case "enter":
		title := m.capture.Value()
		m.capturing = false
		m.capture.Reset()
		res := mutate.Create(m.db, title, model.ContainerCapture, "")
		m.committed(res.Changed, "activity.create", idOf(res.Activity), res.EventPayload)
		return m, nil
	}
	var cmd tea.Cmd
	m.capture, cmd = m.capture.Update(msg)
	return m, cmd
}

func (m *appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "ctrl+c", "q":
		m.saveUIState()
		return m, tea.Quit

	case "tab", "l", "right":
		m.focus = (m.focus + 1) % colCount
		m.clampCursor()
	case "shift+tab", "h", "left":
		m.focus = (m.focus + colCount - 1) % colCount
		m.clampCursor()

	case "j", "down":
		m.cursor[m.focus]++
		m.clampCursor()
	case "k", "up":
		m.cursor[m.focus]--
		m.clampCursor()

	case "J":
		m.nudgeSelected(+1)
	case "K":
		m.nudgeSelected(-1)

	case "c":
		m.capturing = true
		m.capture.Focus()
		return m, textinput.Blink

	case " ", "x":
		if a, ok := m.selected(); ok {
			res := mutate.ToggleDone(m.db, a.ID, time.Now().Format("2006-01-02"))
			m.committed(res.Changed, "activity.toggle_done", a.ID, res.EventPayload)
		}

	case "i":
		if a, ok := m.selected(); ok {
			res := mutate.MoveToCapture(m.db, a.ID)
			m.committed(res.Changed, "activity.move", a.ID, res.EventPayload)
		}
	case "d":
		if a, ok := m.selected(); ok {
			res := mutate.MoveToDeferred(m.db, a.ID)
			m.committed(res.Changed, "activity.move", a.ID, res.EventPayload)
		}
	case "s":
		if a, ok := m.selected(); ok {
			res := mutate.ScheduleOnDate(m.db, a.ID, m.day)
			m.committed(res.Changed, "activity.schedule", a.ID, res.EventPayload)
		}

	case "D":
		if a, ok := m.selected(); ok {
			res := mutate.Delete(m.db, a.ID)
			m.committed(res.Changed, "activity.delete", a.ID, res.EventPayload)
			m.clampCursor()
		}

	case "[":
		m.day = shiftDate(m.day, -1)
		m.clampCursor()
	case "]":
		m.day = shiftDate(m.day, +1)
		m.clampCursor()
	case "g":
		m.day = time.Now().Format("2006-01-02")
		m.clampCursor()

	case "n":
		m.showNote = !m.showNote

	case "r":
		if db := m.store.Load(); db != nil {
			*m.db = *db
			m.clampCursor()
		}
	}
	return m, nil
}

// committed is the single post-mutation hook: schedule a debounced snapshot
// write and append to the event log, both only when the operation actually
// changed state.
func (m *appModel) committed(changed bool, typ, entityID string, payload map[string]any) {
	if !changed {
		return
	}
	m.saver.Notify(m.db)
	// Best-effort; the snapshot is the source of truth.
	_ = m.store.AppendEvent(context.Background(), typ, entityID, payload)
}

func (m *appModel) columnActivities(c column) []model.Activity {
	switch c {
	case colCapture:
		return order.Bucket(m.db.BucketList(model.ContainerCapture))
	case colDeferred:
		return order.Bucket(m.db.BucketList(model.ContainerDeferred))
	default:
		return order.Day(m.db.DayList(m.day))
	}
}

func (m *appModel) selected() (model.Activity, bool) {
	items := m.columnActivities(m.focus)
	i := m.cursor[m.focus]
	if i < 0 || i >= len(items) {
		return model.Activity{}, false
	}
	return items[i], true
}

func (m *appModel) clampCursor() {
	for c := column(0); c < colCount; c++ {
		n := len(m.columnActivities(c))
		if m.cursor[c] >= n {
			m.cursor[c] = n - 1
		}
		if m.cursor[c] < 0 {
			m.cursor[c] = 0
		}
	}
}

// nudgeSelected moves the selected item one slot up or down and commits the
// resulting full order, going through the same reorder operations a drag
// commit uses.
func (m *appModel) nudgeSelected(delta int) {
	items := m.columnActivities(m.focus)
	i := m.cursor[m.focus]
	j := i + delta
	if i < 0 || i >= len(items) || j < 0 || j >= len(items) {
		return
	}
	ids := make([]string, len(items))
	for k := range items {
		ids[k] = items[k].ID
	}
	ids[i], ids[j] = ids[j], ids[i]

	var res mutate.Result
	if m.focus == colDay {
		res = mutate.ReorderDay(m.db, m.day, ids)
		m.committed(res.Changed, "activity.reorder_day", m.day, res.EventPayload)
	} else {
		bucket := model.ContainerCapture
		if m.focus == colDeferred {
			bucket = model.ContainerDeferred
		}
		res = mutate.ReorderBucket(m.db, bucket, ids)
		m.committed(res.Changed, "activity.reorder_bucket", string(bucket), res.EventPayload)
	}
	if res.Changed {
		m.cursor[m.focus] = j
	}
}

func (m *appModel) saveUIState() {
	colName := "capture"
	switch m.focus {
	case colDeferred:
		colName = "deferred"
	case colDay:
		colName = "day"
	}
	_ = m.store.SaveUIState(&store.UIState{SelectedDate: m.day, Column: colName})
}

func idOf(a *model.Activity) string {
	if a == nil {
		return ""
	}
	return a.ID
}

func shiftDate(date string, days int) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Now().Format("2006-01-02")
	}
	return t.AddDate(0, 0, days).Format("2006-01-02")
}
