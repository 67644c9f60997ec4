package scheduling

import (
	"sort"
	"time"
)

// overlapFlexibility counts slot indices present in both sorted lists — the
// scarcity heuristic used to order matches (scarcest pair first).
func overlapFlexibility(a, b []int) int {
	count, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			count++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return count
}

// distanceToNearest returns the minimum |list[k]-x| via binary search, or 0
// if list is empty.
func distanceToNearest(list []int, x int) int {
	if len(list) == 0 {
		return 0
	}
	idx := sort.SearchInts(list, x)
	best := abs(list[minInt(idx, len(list)-1)] - x)
	if idx > 0 {
		if d := abs(list[idx-1] - x); d < best {
			best = d
		}
	}
	if idx < len(list) {
		if d := abs(list[idx] - x); d < best {
			best = d
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// pickBestSlotIndex implements §4.5.8: phase A tries the two captains'
// mutually-available indices in increasing order; phase B falls back to a
// cost-minimizing scan of the whole grid, preferring an afternoon/evening
// (local hour >= 12) slot when both captains have some availability for
// this duration. Returns (-1, false) if nothing fits.
func pickBestSlotIndex(
	slots []time.Time,
	endsAt time.Time,
	loc *time.Location,
	duration time.Duration,
	reservationLen int,
	userA, userB int,
	availA, availB []int,
	reservations *ReservationTracker,
) (int, bool) {
	fits := func(i int) bool {
		if slots[i].Add(duration).After(endsAt) {
			return false
		}
		return reservations.Fits(userA, i, reservationLen) && reservations.Fits(userB, i, reservationLen)
	}

	// Phase A: two-pointer intersection, first feasible wins.
	i, j := 0, 0
	for i < len(availA) && j < len(availB) {
		switch {
		case availA[i] == availB[j]:
			idx := availA[i]
			if idx < len(slots) && fits(idx) {
				return idx, true
			}
			i++
			j++
		case availA[i] < availB[j]:
			i++
		default:
			j++
		}
	}

	// Phase B: fallback scan over the whole grid.
	d := int(duration / SlotDuration)
	bestAny, bestAnyCost := -1, 0
	bestPM, bestPMCost := -1, 0
	trackPM := len(availA) > 0 && len(availB) > 0

	for idx := 0; idx <= len(slots)-d; idx++ {
		if !fits(idx) {
			continue
		}
		cost := (distanceToNearest(availA, idx) + distanceToNearest(availB, idx)) * 15
		if bestAny == -1 || cost < bestAnyCost {
			bestAny, bestAnyCost = idx, cost
		}
		if trackPM && slots[idx].In(loc).Hour() >= 12 {
			if bestPM == -1 || cost < bestPMCost {
				bestPM, bestPMCost = idx, cost
			}
		}
	}
	if bestPM != -1 {
		return bestPM, true
	}
	if bestAny != -1 {
		return bestAny, true
	}
	return -1, false
}
