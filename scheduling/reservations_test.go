package scheduling

import "testing"

func TestReservationTrackerFitsAndReserve(t *testing.T) {
	tr := NewReservationTracker()
	if !tr.Fits(1, 10, 4) {
		t.Fatalf("expected empty tracker to fit anything")
	}
	tr.Reserve(1, 10, 4) // [10,14)

	cases := []struct {
		start, length int
		want          bool
	}{
		{0, 10, true},   // [0,10) ends exactly at 10, no overlap
		{5, 5, true},    // [5,10) ends exactly at 10, no overlap
		{6, 5, false},   // [6,11) overlaps [10,14)
		{14, 4, true},   // [14,18) starts exactly at 14, no overlap
		{13, 1, false},  // [13,14) overlaps [10,14)
		{8, 2, true},    // [8,10) ends before 10
	}
	for _, c := range cases {
		got := tr.Fits(1, c.start, c.length)
		if got != c.want {
			t.Errorf("Fits(1, %d, %d) = %v, want %v", c.start, c.length, got, c.want)
		}
	}
}

func TestReservationTrackerPerUserIsolation(t *testing.T) {
	tr := NewReservationTracker()
	tr.Reserve(1, 10, 4)
	if !tr.Fits(2, 10, 4) {
		t.Errorf("expected reservations to be isolated per user")
	}
}

func TestReservationTrackerMultipleInserts(t *testing.T) {
	tr := NewReservationTracker()
	tr.Reserve(1, 20, 4) // [20,24)
	tr.Reserve(1, 0, 4)  // [0,4)
	tr.Reserve(1, 10, 4) // [10,14)

	if tr.Fits(1, 2, 4) {
		t.Errorf("expected overlap with [0,4)")
	}
	if tr.Fits(1, 12, 2) {
		t.Errorf("expected overlap with [10,14)")
	}
	if !tr.Fits(1, 4, 6) {
		t.Errorf("expected [4,10) to fit between reservations")
	}
	if tr.Fits(1, 22, 4) {
		t.Errorf("expected overlap with [20,24)")
	}
}
