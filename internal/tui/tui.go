// Package tui is the interactive board: three columns (capture, deferred,
// one day) over the shared ordering, preview, and placement engines. It is a
// thin consumer: all drag math and container rules live in internal/order,
// internal/preview, and internal/mutate.
package tui

import (
	"tempo-cli/internal/gesture"
	"tempo-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the board and blocks until the user quits. The debounced saver
// is flushed before Run returns, so the last burst of edits always lands.
func Run(s store.Store, db *store.DB) error {
	m := newAppModel(s, db)

	// The long-press timer fires on its own goroutine; everything funnels
	// back into Update through program messages. The closures capture the
	// program variable, which is assigned before any event can fire.
	var p *tea.Program
	m.recognizer = gesture.New(gesture.Config{}, gesture.Callbacks{
		OnDragStart:  func(start gesture.Point) { p.Send(dragStartMsg{at: start}) },
		OnDragMove:   func(pt gesture.Point) { p.Send(dragMoveMsg{at: pt}) },
		OnDragEnd:    func(cancelled bool) { p.Send(dragEndMsg{cancelled: cancelled}) },
		LockScroll:   func() { p.Send(scrollLockMsg{locked: true}) },
		UnlockScroll: func() { p.Send(scrollLockMsg{locked: false}) },
	})
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	_, err := p.Run()

	// Release any in-flight gesture state, then flush pending writes.
	m.recognizer.Teardown()
	m.saver.Close()
	return err
}
