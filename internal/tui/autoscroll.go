package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// The autoscroll loop nudges the hovered column while a drag lingers near
// the board's top or bottom edge. It is armed when a drag starts and re-arms
// itself each tick only while the drag is alive (see Update), so ending or
// cancelling a drag stops it.

const autoScrollEvery = 80 * time.Millisecond

type autoScrollTickMsg struct{}

func autoScrollTick() tea.Cmd {
	return tea.Tick(autoScrollEvery, func(time.Time) tea.Msg {
		return autoScrollTickMsg{}
	})
}

func (m *appModel) applyAutoScroll() {
	d := m.drag
	if d == nil {
		return
	}
	rows := m.visibleRows()
	delta := 0
	if d.at.Y <= boardTop {
		delta = -1
	} else if d.at.Y >= boardTop+rows-1 {
		delta = +1
	}
	if delta == 0 {
		return
	}
	n := len(m.displayList(d.over))
	m.scroll[d.over] = clampScroll(m.scroll[d.over]+delta, n, rows)
	// The pointer stays put while rows slide under it, so the hover target
	// has to be recomputed from the same point.
	m.moveDrag(d.at)
}
