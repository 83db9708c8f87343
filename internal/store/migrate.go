package store

import (
	"encoding/json"
	"fmt"

	"tempo-cli/internal/model"
)

// decodeSnapshot parses and validates raw snapshot bytes into a usable DB.
//
// The error explains what was wrong; Load discards it (any failure means
// "no usable prior state") while Import surfaces it to the user.
func decodeSnapshot(b []byte) (*DB, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	// All top-level fields must be present. Partial snapshots are rejected
	// outright rather than silently repaired: dropping user data without
	// surfacing it is worse than refusing the file.
	for _, key := range []string{"version", "activities", "listsMeta", "settings"} {
		if _, ok := probe[key]; !ok {
			return nil, &ShapeError{Reason: fmt.Sprintf("missing %q field", key)}
		}
	}

	var version int
	if err := json.Unmarshal(probe["version"], &version); err != nil {
		return nil, &ShapeError{Reason: "version is not a number"}
	}

	switch version {
	case 1:
		var db DB
		if err := json.Unmarshal(b, &db); err != nil {
			return nil, &ShapeError{Reason: fmt.Sprintf("snapshot does not match the v1 schema: %v", err)}
		}
		if err := validateV1(&db); err != nil {
			return nil, &ShapeError{Reason: err.Error()}
		}
		normalizeV1(&db)
		return &db, nil
	default:
		return nil, &ShapeError{Reason: fmt.Sprintf("unrecognized snapshot version %d", version)}
	}
}

// validateV1 checks every activity. One malformed activity rejects the whole
// snapshot; partial recovery is explicitly not attempted.
func validateV1(db *DB) error {
	seen := map[string]bool{}
	for i := range db.Activities {
		a := &db.Activities[i]
		if a.ID == "" {
			return fmt.Errorf("activity %d: empty id", i)
		}
		if seen[a.ID] {
			return fmt.Errorf("activity %d: duplicate id %q", i, a.ID)
		}
		seen[a.ID] = true

		if _, ok := model.ParseContainer(string(a.Container)); !ok {
			return fmt.Errorf("activity %s: invalid container %q", a.ID, a.Container)
		}
		if a.Container == model.ContainerScheduled {
			if a.Date == nil {
				return fmt.Errorf("activity %s: scheduled without a date", a.ID)
			}
			if !model.ValidDate(*a.Date) {
				return fmt.Errorf("activity %s: invalid date %q", a.ID, *a.Date)
			}
		} else if a.Date != nil {
			return fmt.Errorf("activity %s: date set in container %q", a.ID, a.Container)
		}
		if a.Time != nil {
			if a.Container != model.ContainerScheduled {
				return fmt.Errorf("activity %s: time set in container %q", a.ID, a.Container)
			}
			if !model.ValidTime(*a.Time) {
				return fmt.Errorf("activity %s: invalid time %q", a.ID, *a.Time)
			}
		}
		if a.CreatedAt.IsZero() {
			return fmt.Errorf("activity %s: missing createdAt", a.ID)
		}
		if a.UpdatedAt.IsZero() {
			return fmt.Errorf("activity %s: missing updatedAt", a.ID)
		}
	}
	return nil
}

// normalizeV1 applies in-memory fixes that don't warrant rejection: durations
// outside the discrete set (or without an anchor time) become absent.
func normalizeV1(db *DB) {
	for i := range db.Activities {
		a := &db.Activities[i]
		if a.Time == nil {
			a.DurationMinutes = nil
			continue
		}
		a.DurationMinutes = model.NormalizeDuration(a.DurationMinutes)
	}
}
