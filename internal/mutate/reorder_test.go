package mutate

import (
	"testing"

	"tempo-cli/internal/model"
	"tempo-cli/internal/order"
	"tempo-cli/internal/preview"
	"tempo-cli/internal/store"
)

func dayIDs(db *store.DB, date string) []string {
	items := order.Day(db.DayList(date))
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func TestReorderDay_StampsAnchoredWhenCallIntroducesManualOrder(t *testing.T) {
	anchored := scheduled("anchored", "2026-03-02")
	anchored.Time = sp("09:00")
	db := newDB(
		scheduled("flex-1", "2026-03-02"),
		anchored,
		scheduled("flex-2", "2026-03-02"),
	)

	// No prior manual order, but the call stamps flexible items, so the
	// anchored id in the same call is stamped too. Otherwise the lone
	// indexed flexible item would sort ahead of every unindexed anchor and
	// the committed order would not be the one requested.
	res := ReorderDay(db, "2026-03-02", []string{"flex-2", "anchored", "flex-1"})
	if !res.Changed {
		t.Fatal("reorder did not report a change")
	}
	for id, want := range map[string]int{"flex-2": 0, "anchored": 1, "flex-1": 2} {
		a, _ := db.FindActivity(id)
		if a.OrderIndex == nil || *a.OrderIndex != want {
			t.Fatalf("%s index = %v, want %d", id, a.OrderIndex, want)
		}
	}
	got := dayIDs(db, "2026-03-02")
	for i, want := range []string{"flex-2", "anchored", "flex-1"} {
		if got[i] != want {
			t.Fatalf("display order %v", got)
		}
	}
}

func TestReorderDay_AnchoredOnlyCallWithoutManualOrderIsNoop(t *testing.T) {
	early := scheduled("early", "2026-03-02")
	early.Time = sp("08:00")
	late := scheduled("late", "2026-03-02")
	late.Time = sp("16:00")
	db := newDB(early, late)

	// Nothing flexible to stamp and no prior index anywhere: time order
	// stays authoritative and no index appears.
	if res := ReorderDay(db, "2026-03-02", []string{"late", "early"}); res.Changed {
		t.Fatal("anchored-only reorder on an unordered day reported a change")
	}
	got := dayIDs(db, "2026-03-02")
	if got[0] != "early" || got[1] != "late" {
		t.Fatalf("display order %v", got)
	}
}

func TestReorderDay_CommitMatchesAnchoredPreview(t *testing.T) {
	morning := scheduled("morning", "2026-03-02")
	morning.Time = sp("09:00")
	evening := scheduled("evening", "2026-03-02")
	evening.Time = sp("17:00")
	db := newDB(morning, evening, scheduled("flex", "2026-03-02"))

	display := order.Day(db.DayList("2026-03-02"))
	shown := preview.Anchored(display, "flex", 1)
	want := make([]string, len(shown))
	for i := range shown {
		want[i] = shown[i].ID
	}

	if res := ReorderDay(db, "2026-03-02", want); !res.Changed {
		t.Fatal("reorder did not report a change")
	}
	got := dayIDs(db, "2026-03-02")
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("committed %v, preview showed %v", got, want)
		}
	}
}

func TestReorderDay_CommitMatchesPlaceholderPreview(t *testing.T) {
	morning := scheduled("morning", "2026-03-02")
	morning.Time = sp("09:00")
	evening := scheduled("evening", "2026-03-02")
	evening.Time = sp("17:00")
	inbox := bucketed("inbox", model.ContainerCapture)
	db := newDB(morning, evening, inbox)

	shown := preview.Placeholder(order.Day(db.DayList("2026-03-02")), inbox, 1)
	want := make([]string, len(shown))
	for i := range shown {
		if shown[i].ID == preview.PlaceholderID {
			want[i] = "inbox"
		} else {
			want[i] = shown[i].ID
		}
	}

	if res := ScheduleOnDate(db, "inbox", "2026-03-02"); !res.Changed {
		t.Fatal("schedule did not report a change")
	}
	if res := ReorderDay(db, "2026-03-02", want); !res.Changed {
		t.Fatal("reorder did not report a change")
	}
	got := dayIDs(db, "2026-03-02")
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("committed %v, preview showed %v", got, want)
		}
	}
}

func TestReorderDay_StampsAnchoredOnceDayHasManualOrder(t *testing.T) {
	anchored := scheduled("anchored", "2026-03-02")
	anchored.Time = sp("09:00")
	ranked := scheduled("ranked", "2026-03-02")
	ranked.OrderIndex = ip(0)
	db := newDB(ranked, anchored)

	res := ReorderDay(db, "2026-03-02", []string{"anchored", "ranked"})
	if !res.Changed {
		t.Fatal("reorder did not report a change")
	}
	if a, _ := db.FindActivity("anchored"); a.OrderIndex == nil || *a.OrderIndex != 0 {
		t.Fatal("anchored item not stamped on a manually ordered day")
	}
	got := dayIDs(db, "2026-03-02")
	if got[0] != "anchored" || got[1] != "ranked" {
		t.Fatalf("display order %v", got)
	}
}

func TestReorderDay_ForeignIDsSkippedButPositionsCount(t *testing.T) {
	db := newDB(
		scheduled("a", "2026-03-02"),
		scheduled("b", "2026-03-02"),
		scheduled("elsewhere", "2026-03-09"),
	)

	res := ReorderDay(db, "2026-03-02", []string{"b", "elsewhere", "a"})
	if !res.Changed {
		t.Fatal("reorder did not report a change")
	}
	// "a" keeps position 2; indices need relative order, not density.
	av, _ := db.FindActivity("a")
	bv, _ := db.FindActivity("b")
	if *bv.OrderIndex != 0 || *av.OrderIndex != 2 {
		t.Fatalf("indices b=%d a=%d", *bv.OrderIndex, *av.OrderIndex)
	}
	if ev, _ := db.FindActivity("elsewhere"); ev.OrderIndex != nil {
		t.Fatal("foreign day item stamped")
	}
}

func TestReorderDay_SamePositionsIsNoop(t *testing.T) {
	a := scheduled("a", "2026-03-02")
	a.OrderIndex = ip(0)
	b := scheduled("b", "2026-03-02")
	b.OrderIndex = ip(1)
	db := newDB(a, b)

	if res := ReorderDay(db, "2026-03-02", []string{"a", "b"}); res.Changed {
		t.Fatal("identical order reported a change")
	}
}

func TestReorderBucket_StampsEveryMember(t *testing.T) {
	db := newDB(
		bucketed("a", model.ContainerCapture),
		bucketed("b", model.ContainerCapture),
		bucketed("other", model.ContainerDeferred),
	)

	res := ReorderBucket(db, model.ContainerCapture, []string{"b", "a"})
	if !res.Changed {
		t.Fatal("reorder did not report a change")
	}
	items := order.Bucket(db.BucketList(model.ContainerCapture))
	if items[0].ID != "b" || items[1].ID != "a" {
		t.Fatalf("bucket order %v", []string{items[0].ID, items[1].ID})
	}
	if o, _ := db.FindActivity("other"); o.OrderIndex != nil {
		t.Fatal("member of another bucket stamped")
	}
}

func TestReorderBucket_RejectsScheduledContainer(t *testing.T) {
	db := newDB(bucketed("a", model.ContainerCapture))
	if res := ReorderBucket(db, model.ContainerScheduled, []string{"a"}); res.Changed {
		t.Fatal("scheduled container accepted as a bucket")
	}
}
