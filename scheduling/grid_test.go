package scheduling

import (
	"testing"
	"time"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q): %v", name, err)
	}
	return loc
}

func TestBuildSlotGridAlignment(t *testing.T) {
	loc := mustLoc(t, "America/New_York")
	starts := time.Date(2026, 8, 3, 10, 7, 0, 0, loc)
	ends := time.Date(2026, 8, 4, 10, 0, 0, 0, loc)

	slots, err := BuildSlotGrid(starts, ends)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) == 0 {
		t.Fatalf("expected non-empty grid")
	}
	want := time.Date(2026, 8, 3, 10, 15, 0, 0, loc)
	if !slots[0].Equal(want) {
		t.Errorf("first slot = %v, want %v", slots[0], want)
	}
	for i, s := range slots {
		if s.Second() != 0 || s.Nanosecond() != 0 || s.Minute()%15 != 0 {
			t.Errorf("slot %d = %v not aligned to 15-minute grid", i, s)
		}
		if !s.Before(ends) {
			t.Errorf("slot %d = %v not strictly before endsAt %v", i, s, ends)
		}
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Sub(slots[i-1]) != SlotDuration {
			t.Errorf("slots %d,%d not 15 minutes apart: %v, %v", i-1, i, slots[i-1], slots[i])
		}
	}
}

func TestBuildSlotGridRejectsZeroTimes(t *testing.T) {
	if _, err := BuildSlotGrid(time.Time{}, time.Time{}); err == nil {
		t.Fatalf("expected error for zero-value times")
	}
}

func TestBuildSlotGridRejectsEmptyWindow(t *testing.T) {
	loc := mustLoc(t, "UTC")
	// 10:01 rounds up to 10:15, which is already past endsAt.
	starts := time.Date(2026, 8, 3, 10, 1, 0, 0, loc)
	ends := time.Date(2026, 8, 3, 10, 5, 0, 0, loc)
	if _, err := BuildSlotGrid(starts, ends); err == nil {
		t.Fatalf("expected error for window with no slots")
	}
}

func TestDurationSlots(t *testing.T) {
	cases := []struct {
		bestOf int
		want   int
	}{
		{1, 4},  // 60 min -> 4 slots
		{3, 12}, // 180 min -> 12 slots
		{5, 20}, // 300 min -> 20 slots
	}
	for _, c := range cases {
		if got := DurationSlots(c.bestOf); got != c.want {
			t.Errorf("DurationSlots(%d) = %d, want %d", c.bestOf, got, c.want)
		}
	}
}

func TestGapSlots(t *testing.T) {
	cases := []struct {
		minutes int
		want    int
	}{
		{0, 0},
		{-5, 0},
		{1, 1},
		{15, 1},
		{16, 2},
		{60, 4},
	}
	for _, c := range cases {
		if got := GapSlots(c.minutes); got != c.want {
			t.Errorf("GapSlots(%d) = %d, want %d", c.minutes, got, c.want)
		}
	}
}
