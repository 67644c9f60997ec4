package scheduling

import (
	"testing"
	"time"
)

func newTime(loc *time.Location, year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

func TestOverlapFlexibility(t *testing.T) {
	cases := []struct {
		a, b []int
		want int
	}{
		{[]int{1, 2, 3}, []int{2, 3, 4}, 2},
		{[]int{}, []int{1, 2}, 0},
		{[]int{1, 2, 3}, []int{4, 5, 6}, 0},
		{[]int{1, 2, 3}, []int{1, 2, 3}, 3},
	}
	for _, c := range cases {
		if got := overlapFlexibility(c.a, c.b); got != c.want {
			t.Errorf("overlapFlexibility(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestDistanceToNearest(t *testing.T) {
	list := []int{10, 20, 30}
	cases := []struct {
		x    int
		want int
	}{
		{10, 0},
		{15, 5},
		{25, 5},
		{5, 5},
		{35, 5},
	}
	for _, c := range cases {
		if got := distanceToNearest(list, c.x); got != c.want {
			t.Errorf("distanceToNearest(%v, %d) = %d, want %d", list, c.x, got, c.want)
		}
	}
	if got := distanceToNearest(nil, 5); got != 0 {
		t.Errorf("distanceToNearest(nil, 5) = %d, want 0", got)
	}
}

func TestPickBestSlotIndexPrefersSharedAvailability(t *testing.T) {
	loc := mustLoc(t, "UTC")
	day0 := newTime(loc, 2026, 8, 3, 0, 0)
	slots := slotsFrom(loc, day0, 96)
	endsAt := day0.Add(24 * time.Hour)

	availA := []int{72, 76, 80} // 18:00, 19:00, 20:00
	availB := []int{76, 80, 84} // 19:00, 20:00, 21:00

	reservations := NewReservationTracker()
	idx, ok := pickBestSlotIndex(slots, endsAt, loc, time.Hour, 4, 1, 2, availA, availB, reservations)
	if !ok {
		t.Fatalf("expected a feasible slot")
	}
	if idx != 76 {
		t.Errorf("picked index %d, want 76 (first mutually available)", idx)
	}
}

func TestPickBestSlotIndexFallsBackWithoutOverlap(t *testing.T) {
	loc := mustLoc(t, "UTC")
	day0 := newTime(loc, 2026, 8, 3, 0, 0)
	slots := slotsFrom(loc, day0, 96)
	endsAt := day0.Add(24 * time.Hour)

	availA := []int{40} // 10:00
	availB := []int{80} // 20:00

	reservations := NewReservationTracker()
	idx, ok := pickBestSlotIndex(slots, endsAt, loc, time.Hour, 4, 1, 2, availA, availB, reservations)
	if !ok {
		t.Fatalf("expected a feasible fallback slot")
	}
	if idx < 0 || idx >= len(slots) {
		t.Fatalf("picked index %d out of range", idx)
	}
}

func TestPickBestSlotIndexRespectsReservations(t *testing.T) {
	loc := mustLoc(t, "UTC")
	day0 := newTime(loc, 2026, 8, 3, 0, 0)
	slots := slotsFrom(loc, day0, 96)
	endsAt := day0.Add(24 * time.Hour)

	availA := []int{72}
	availB := []int{72}

	reservations := NewReservationTracker()
	reservations.Reserve(1, 72, 4)

	idx, ok := pickBestSlotIndex(slots, endsAt, loc, time.Hour, 4, 1, 2, availA, availB, reservations)
	if !ok {
		t.Fatalf("expected a feasible slot even though the mutual pick is taken")
	}
	if idx == 72 {
		t.Errorf("expected scheduler to avoid the already-reserved slot 72")
	}
}

func TestPickBestSlotIndexReturnsFalseWhenNothingFits(t *testing.T) {
	loc := mustLoc(t, "UTC")
	day0 := newTime(loc, 2026, 8, 3, 23, 45)
	slots := slotsFrom(loc, day0, 1) // single 23:45 slot
	endsAt := day0.Add(15 * time.Minute)

	reservations := NewReservationTracker()
	_, ok := pickBestSlotIndex(slots, endsAt, loc, time.Hour, 4, 1, 2, []int{0}, []int{0}, reservations)
	if ok {
		t.Fatalf("expected no feasible slot: duration exceeds remaining window")
	}
}
