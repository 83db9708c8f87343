package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"tempo-cli/internal/model"
	"tempo-cli/internal/order"
	"tempo-cli/internal/store"
)

type RenderOptions struct {
	IncludeDone  bool
	IncludeNotes bool
}

// RenderDayMarkdown renders one day's plan as a standalone markdown page, in
// display order. Done activities are listed checked unless excluded.
func RenderDayMarkdown(db *store.DB, date string, opt RenderOptions) (string, error) {
	if db == nil {
		return "", fmt.Errorf("missing db")
	}
	if !model.ValidDate(date) {
		return "", fmt.Errorf("invalid date: %s", date)
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	heading := date
	if t, err := time.Parse("2006-01-02", date); err == nil {
		heading = t.Format("Monday, 2 January 2006")
	}
	writeLn("# " + heading)
	writeLn("")

	wrote := 0
	for _, a := range order.Day(db.DayList(date)) {
		if a.Done && !opt.IncludeDone {
			continue
		}
		writeLn(renderActivityLine(a))
		if opt.IncludeNotes && strings.TrimSpace(a.Note) != "" {
			for _, line := range strings.Split(strings.TrimSpace(a.Note), "\n") {
				writeLn("  " + line)
			}
		}
		wrote++
	}
	if wrote == 0 {
		writeLn("_Nothing planned._")
	}
	return buf.String(), nil
}

// RenderWeekIndexMarkdown renders the week overview page linking the per-day
// pages written next to it.
func RenderWeekIndexMarkdown(db *store.DB, dates []string) (string, error) {
	if db == nil {
		return "", fmt.Errorf("missing db")
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	if len(dates) > 0 {
		writeLn("# Week of " + dates[0])
	} else {
		writeLn("# Week")
	}
	writeLn("")

	for _, d := range dates {
		label := d
		if t, err := time.Parse("2006-01-02", d); err == nil {
			label = t.Format("Mon 2 Jan")
		}
		writeLn(fmt.Sprintf("- [%s](%s.md): %d planned", label, d, len(db.DayList(d))))
	}
	return buf.String(), nil
}

func renderActivityLine(a model.Activity) string {
	box := "- [ ] "
	if a.Done {
		box = "- [x] "
	}

	var parts []string
	if a.Time != nil {
		t := *a.Time
		if a.DurationMinutes != nil {
			t += fmt.Sprintf(" (%dm)", *a.DurationMinutes)
		}
		parts = append(parts, "**"+t+"**")
	}
	parts = append(parts, strings.TrimSpace(a.Title))
	return box + strings.Join(parts, " ")
}
