package model

import (
	"regexp"
	"time"
)

type Container string

const (
	ContainerCapture   Container = "capture"
	ContainerDeferred  Container = "deferred"
	ContainerScheduled Container = "scheduled"
)

// Duration values are quarter-hour steps within [DurationMin, DurationMax].
// Anything outside the set is treated as absent.
const (
	DurationStep = 15
	DurationMin  = 15
	DurationMax  = 480
)

// Activity is the only persisted entity. It lives in exactly one container at
// a time: the capture list, the deferred list, or a specific scheduled day.
//
// Date is present only when Container == ContainerScheduled. Time may be set
// only alongside Date; its presence makes the activity "anchored" (sorted by
// clock time within its day). DurationMinutes is meaningful only when
// anchored. OrderIndex orders flexible items within a container; when absent,
// ordering falls back to CreatedAt.
type Activity struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Container Container `json:"container"`

	Date            *string `json:"date,omitempty"` // YYYY-MM-DD
	Time            *string `json:"time,omitempty"` // HH:MM (24h, zero-padded)
	DurationMinutes *int    `json:"durationMinutes,omitempty"`

	Note       string `json:"note,omitempty"`
	Done       bool   `json:"done"`
	OrderIndex *int   `json:"orderIndex,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Anchored reports whether the activity has a clock time on a scheduled day.
func (a Activity) Anchored() bool {
	return a.Container == ContainerScheduled && a.Time != nil
}

// Flexible reports whether the activity is freely orderable (no clock time).
func (a Activity) Flexible() bool {
	return a.Time == nil
}

// InBucket reports whether the activity lives in a non-dated container.
func (a Activity) InBucket() bool {
	return a.Container == ContainerCapture || a.Container == ContainerDeferred
}

// ScheduledOn reports whether the activity is scheduled on the given day.
func (a Activity) ScheduledOn(date string) bool {
	return a.Container == ContainerScheduled && a.Date != nil && *a.Date == date
}

var (
	reDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reTime = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidDate reports whether s is a zero-padded YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	if !reDate.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidTime reports whether s is a zero-padded 24h HH:MM clock value.
// Zero-padding matters: the ordering engine compares times lexically.
func ValidTime(s string) bool {
	return reTime.MatchString(s)
}

// NormalizeDuration maps d onto the discrete duration set. Values outside the
// set normalize to nil (absent) rather than rounding: a bad duration is not a
// slightly different duration.
func NormalizeDuration(d *int) *int {
	if d == nil {
		return nil
	}
	v := *d
	if v < DurationMin || v > DurationMax || v%DurationStep != 0 {
		return nil
	}
	return &v
}

func ParseContainer(s string) (Container, bool) {
	switch Container(s) {
	case ContainerCapture, ContainerDeferred, ContainerScheduled:
		return Container(s), true
	default:
		return "", false
	}
}
