package tui

// Board geometry. Row 0 is the header, row 1 the column titles, the last row
// the status line; everything between is item rows. The hit-testing here is
// the inverse of what View draws, so the two must move together.

const (
	boardTop = 2
	colGap   = 2
	minWidth = 30
)

func (m *appModel) colWidth() int {
	w := m.width
	if w < minWidth {
		w = minWidth
	}
	return (w - 2*colGap) / int(colCount)
}

func (m *appModel) visibleRows() int {
	rows := m.height - boardTop - 1
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *appModel) colAtX(x int) (column, bool) {
	w := m.colWidth()
	for c := column(0); c < colCount; c++ {
		left := int(c) * (w + colGap)
		if x >= left && x < left+w {
			return c, true
		}
	}
	return 0, false
}

// rowToIndex maps a screen row to an index in the column's display list,
// accounting for that column's scroll offset. Out-of-band rows map to
// out-of-range indices; callers clamp or reject.
func (m *appModel) rowToIndex(c column, y int) int {
	return y - boardTop + m.scroll[c]
}

func clampScroll(v, n, rows int) int {
	max := n - rows
	if max < 0 {
		max = 0
	}
	if v > max {
		v = max
	}
	if v < 0 {
		v = 0
	}
	return v
}
