// Package mutate is the placement state machine: the closed set of operations
// that move activities between containers, stamp order indices, and flip
// completion. Every operation is atomic over the in-memory DB, total over
// valid input, and a no-op for unknown ids (the triggering UI event may race
// a deletion). Operations report Changed=false when nothing would change so
// callers can skip spurious persistence writes.
package mutate

import (
	"strings"
	"time"

	"tempo-cli/internal/model"
	"tempo-cli/internal/store"
)

// Result describes one operation's outcome. EventPayload is what the caller
// appends to the event log when Changed is true.
type Result struct {
	Activity     *model.Activity
	Changed      bool
	EventPayload map[string]any
}

// Create adds a new activity. Titles are enforced non-empty here, at the
// creation boundary, not by the entity itself. The activity starts in Capture
// unless another container is supplied; scheduling requires a valid date.
func Create(db *store.DB, title string, container model.Container, date string) Result {
	title = strings.TrimSpace(title)
	if db == nil || title == "" {
		return Result{}
	}
	if container == "" {
		container = model.ContainerCapture
	}
	if _, ok := model.ParseContainer(string(container)); !ok {
		return Result{}
	}

	a := model.Activity{
		ID:        store.NewActivityID(db),
		Title:     title,
		Container: container,
		CreatedAt: time.Now().UTC(),
	}
	a.UpdatedAt = a.CreatedAt
	if container == model.ContainerScheduled {
		if !model.ValidDate(date) {
			return Result{}
		}
		d := date
		a.Date = &d
	}

	db.Activities = append(db.Activities, a)
	created := &db.Activities[len(db.Activities)-1]
	return Result{
		Activity: created,
		Changed:  true,
		EventPayload: map[string]any{
			"title":     created.Title,
			"container": created.Container,
			"date":      created.Date,
		},
	}
}

// Edit updates title and/or note. A nil field is left alone; an empty title
// is rejected as a no-op.
func Edit(db *store.DB, id string, title, note *string) Result {
	a, ok := find(db, id)
	if !ok {
		return Result{}
	}
	changed := false
	if title != nil {
		t := strings.TrimSpace(*title)
		if t != "" && t != a.Title {
			a.Title = t
			changed = true
		}
	}
	if note != nil && *note != a.Note {
		a.Note = *note
		changed = true
	}
	if !changed {
		return Result{Activity: a}
	}
	touch(a)
	return Result{
		Activity:     a,
		Changed:      true,
		EventPayload: map[string]any{"title": a.Title},
	}
}

// Delete removes the activity. Destruction is explicit only; nothing cascades.
func Delete(db *store.DB, id string) Result {
	a, ok := find(db, id)
	if !ok {
		return Result{}
	}
	payload := map[string]any{"title": a.Title, "container": a.Container}
	db.RemoveActivity(id)
	return Result{Changed: true, EventPayload: payload}
}

func find(db *store.DB, id string) (*model.Activity, bool) {
	if db == nil || strings.TrimSpace(id) == "" {
		return nil, false
	}
	return db.FindActivity(id)
}

func touch(a *model.Activity) {
	a.UpdatedAt = time.Now().UTC()
}
