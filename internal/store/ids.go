package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"time"
)

// NewActivityID returns act-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding): ~40 bits of space, plenty for a personal planner.
func NewActivityID(db *DB) string {
	for i := 0; i < 50; i++ {
		id, err := newRandomID("act")
		if err != nil {
			break
		}
		if _, exists := db.FindActivity(id); !exists {
			return id
		}
	}
	// crypto/rand failure or an absurd collision streak: fall back to a
	// timestamp id rather than failing the capture.
	return fmt.Sprintf("act-%d", time.Now().UnixNano())
}

func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}
