package scheduling

import "sort"

// ReservationTracker holds, per user, a sorted list of reserved half-open
// slot-index intervals [start, end). A slot fits a user only if it does not
// overlap any interval already reserved for them.
type ReservationTracker struct {
	reserved map[int][][2]int
}

func NewReservationTracker() *ReservationTracker {
	return &ReservationTracker{reserved: make(map[int][][2]int)}
}

// Fits reports whether [start, start+length) is free of overlap with every
// reservation already held by userID.
func (t *ReservationTracker) Fits(userID, start, length int) bool {
	end := start + length
	ivs := t.reserved[userID]
	idx := sort.Search(len(ivs), func(i int) bool { return ivs[i][0] >= start })
	if idx > 0 && ivs[idx-1][1] > start {
		return false
	}
	if idx < len(ivs) && ivs[idx][0] < end {
		return false
	}
	return true
}

// Reserve inserts [start, start+length) into userID's reservation list,
// keeping it sorted by start. Callers must have already checked Fits.
func (t *ReservationTracker) Reserve(userID, start, length int) {
	end := start + length
	ivs := t.reserved[userID]
	idx := sort.Search(len(ivs), func(i int) bool { return ivs[i][0] >= start })
	ivs = append(ivs, [2]int{})
	copy(ivs[idx+1:], ivs[idx:])
	ivs[idx] = [2]int{start, end}
	t.reserved[userID] = ivs
}
