package store

import (
	"testing"
	"time"
)

func TestDebouncedSaver_CoalescesBursts(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	d := NewDebouncedSaver(s, 150*time.Millisecond)
	defer d.Close()

	db := NewDB()
	for i := 0; i < 5; i++ {
		db.Activities = append(db.Activities, sampleActivity(string(rune('a'+i))+"-act"))
		d.Notify(db)
	}

	// Inside the quiet period nothing is on disk yet.
	if got := s.Load(); got != nil {
		t.Fatal("write landed before the debounce elapsed")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if got := s.Load(); got != nil {
			if len(got.Activities) != 5 {
				t.Fatalf("persisted %d activities, want 5", len(got.Activities))
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("debounced write never landed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDebouncedSaver_FlushWritesImmediately(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	d := NewDebouncedSaver(s, time.Hour)
	defer d.Close()

	db := NewDB()
	db.Activities = append(db.Activities, sampleActivity("act-one"))
	d.Notify(db)
	d.Flush()

	got := s.Load()
	if got == nil || len(got.Activities) != 1 {
		t.Fatalf("flush did not persist: %+v", got)
	}
}

func TestDebouncedSaver_NotifySnapshotsAtCallTime(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	d := NewDebouncedSaver(s, time.Hour)
	defer d.Close()

	db := NewDB()
	db.Activities = append(db.Activities, sampleActivity("act-one"))
	d.Notify(db)

	// Mutations after Notify must not leak into the pending write.
	db.Activities[0].Title = "changed later"
	d.Flush()

	got := s.Load()
	if got.Activities[0].Title == "changed later" {
		t.Fatal("pending snapshot observed a later mutation")
	}
}

func TestDebouncedSaver_CloseFlushesAndStops(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	d := NewDebouncedSaver(s, time.Hour)

	db := NewDB()
	db.Activities = append(db.Activities, sampleActivity("act-one"))
	d.Notify(db)
	d.Close()

	if got := s.Load(); got == nil || len(got.Activities) != 1 {
		t.Fatalf("close did not flush: %+v", got)
	}

	// Notify after Close is dropped.
	db.Activities = append(db.Activities, sampleActivity("act-two"))
	d.Notify(db)
	d.Flush()
	if got := s.Load(); len(got.Activities) != 1 {
		t.Fatal("notify after close was persisted")
	}
}
