package scheduling

import (
	"sort"
	"time"
)

// lowerBoundSlot returns the index of the first slot not before t (i.e. the
// first slot >= t), or len(slots) if none qualifies.
func lowerBoundSlot(slots []time.Time, t time.Time) int {
	return sort.Search(len(slots), func(i int) bool { return !slots[i].Before(t) })
}

// lastSlotAtOrBefore returns the index of the last slot <= t, or -1 if every
// slot is after t.
func lastSlotAtOrBefore(slots []time.Time, t time.Time) int {
	idx := sort.Search(len(slots), func(i int) bool { return slots[i].After(t) })
	return idx - 1
}

// ComputeAvailableStartIndices returns, per user, the sorted list of slot
// indices i such that [slots[i], slots[i]+d*15m) lies entirely within one of
// the user's availability intervals. Built with a difference-array sweep:
// every interval bumps a +1/-1 pair at its feasible start-index range, and a
// positive running sum at index i means some interval covers it.
func ComputeAvailableStartIndices(slots []time.Time, d int, userIDs []int, availByUser map[int][]Interval) map[int][]int {
	n := len(slots)
	duration := time.Duration(d) * SlotDuration
	result := make(map[int][]int, len(userIDs))

	for _, uid := range userIDs {
		diff := make([]int, n+1)
		for _, iv := range availByUser[uid] {
			lo := lowerBoundSlot(slots, iv.Start)
			if lo >= n {
				continue
			}
			limit := iv.End.Add(-duration)
			hi := lastSlotAtOrBefore(slots, limit)
			if hi < lo {
				continue
			}
			diff[lo]++
			diff[hi+1]--
		}

		indices := make([]int, 0)
		running := 0
		for i := 0; i < n; i++ {
			running += diff[i]
			if running > 0 {
				indices = append(indices, i)
			}
		}
		result[uid] = indices
	}
	return result
}
