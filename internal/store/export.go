package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AppVersion is stamped into export provenance metadata.
var AppVersion = "dev"

// ErrNotJSON marks import input that is not parseable JSON at all, as opposed
// to valid JSON with an unrecognized shape (ShapeError). The distinction is
// user-facing: "this isn't a JSON file" vs "this JSON isn't a tempo snapshot".
var ErrNotJSON = errors.New("not valid JSON")

type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unrecognized snapshot shape: %s", e.Reason)
}

// ExportDoc is the downloadable superset of the storage snapshot: provenance
// metadata plus the same activities/listsMeta/settings payload.
type ExportDoc struct {
	App        string    `json:"app"`
	AppVersion string    `json:"appVersion"`
	ExportedAt time.Time `json:"exportedAt"`

	Version    int       `json:"version"`
	Activities any       `json:"activities"`
	ListsMeta  ListsMeta `json:"listsMeta"`
	Settings   Settings  `json:"settings"`
}

// Export produces the pretty-printed export document for db.
func Export(db *DB) ([]byte, error) {
	doc := ExportDoc{
		App:        "tempo",
		AppVersion: AppVersion,
		ExportedAt: time.Now().UTC(),
		Version:    db.Version,
		Activities: db.Activities,
		ListsMeta:  db.ListsMeta,
		Settings:   db.Settings,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import accepts either the storage-native snapshot shape or the export
// shape and migrates both through the same validation. It never partially
// applies: on any error the caller's current state is untouched.
//
// Export followed by Import is value-preserving for activities, listsMeta,
// and settings.
func Import(raw []byte) (*DB, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	// The export shape is the native shape plus provenance fields, so both
	// decode through the same path. Only reject export docs from a different
	// application outright.
	if appRaw, ok := probe["app"]; ok {
		var app string
		if err := json.Unmarshal(appRaw, &app); err != nil || app != "tempo" {
			return nil, &ShapeError{Reason: fmt.Sprintf("export from unknown app %s", string(appRaw))}
		}
	}

	return decodeSnapshot(raw)
}
