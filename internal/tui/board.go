package tui

import (
	"fmt"
	"strings"
	"time"

	"tempo-cli/internal/model"
	"tempo-cli/internal/preview"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *appModel) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteByte('\n')

	w := m.colWidth()
	cols := make([]string, 0, colCount)
	for c := column(0); c < colCount; c++ {
		cols = append(cols, m.renderColumn(c, w))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, pad(cols, colGap)...))
	b.WriteByte('\n')
	b.WriteString(m.footerLine())
	return b.String()
}

func (m *appModel) headerLine() string {
	day := m.day
	if t, err := time.Parse("2006-01-02", m.day); err == nil {
		day = t.Format("Mon 2006-01-02")
	}
	left := styleHeader.Render("tempo")
	right := styleColDimmed.Render(day)
	return ansi.Truncate(left+"  "+right, m.width, "…")
}

func (m *appModel) renderColumn(c column, w int) string {
	title := m.columnTitle(c)
	st := styleColDimmed
	if c == m.focus {
		st = styleColTitle
	}

	items := m.displayList(c)
	rows := m.visibleRows()
	top := clampScroll(m.scroll[c], len(items), rows)

	var b strings.Builder
	b.WriteString(ansi.Truncate(st.Render(title), w, "…"))
	for row := 0; row < rows; row++ {
		b.WriteByte('\n')
		i := top + row
		if i >= len(items) {
			continue
		}
		b.WriteString(m.renderRow(c, i, items[i], w))
	}
	return b.String()
}

func (m *appModel) columnTitle(c column) string {
	switch c {
	case colCapture:
		if t := m.db.ListsMeta.CaptureTitle; t != "" {
			return t
		}
		return "Capture"
	case colDeferred:
		if t := m.db.ListsMeta.DeferredTitle; t != "" {
			return t
		}
		return "Deferred"
	default:
		return "Day"
	}
}

func (m *appModel) renderRow(c column, i int, a model.Activity, w int) string {
	if a.ID == preview.PlaceholderID {
		line := glyphDropSlot() + " " + a.Title
		return ansi.Truncate(stylePlacehold.Render(line), w, "…")
	}

	var parts []string
	parts = append(parts, glyphDoneBox(a.Done))
	if a.Time != nil {
		t := glyphClock() + *a.Time
		if a.DurationMinutes != nil {
			t += fmt.Sprintf("+%dm", *a.DurationMinutes)
		}
		parts = append(parts, styleTime.Render(t))
	}
	parts = append(parts, a.Title)
	line := strings.Join(parts, " ")

	switch {
	case m.drag != nil && m.drag.id == a.ID:
		line = stylePlacehold.Render(line)
	case a.Done:
		line = styleDone.Render(line)
	case c == m.focus && i == m.cursor[c] && m.drag == nil:
		line = styleSelected.Render(line)
	}
	return ansi.Truncate(line, w, "…")
}

func (m *appModel) footerLine() string {
	if m.capturing {
		return m.capture.View()
	}
	if m.showNote {
		if a, ok := m.selected(); ok && a.Note != "" {
			return renderNote(a.Note, m.width)
		}
	}
	if m.status != "" {
		return styleStatus.Render(ansi.Truncate(m.status, m.width, "…"))
	}
	help := "c capture  space done  s schedule  i/d move  J/K reorder  [/] day  n note  q quit"
	return styleStatus.Render(ansi.Truncate(help, m.width, "…"))
}

// pad inserts gap spacing between rendered columns.
func pad(cols []string, gap int) []string {
	spacer := strings.Repeat(" ", gap)
	out := make([]string, 0, len(cols)*2-1)
	for i, c := range cols {
		if i > 0 {
			out = append(out, spacer)
		}
		out = append(out, c)
	}
	return out
}
