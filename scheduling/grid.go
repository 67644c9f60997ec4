package scheduling

import "time"

// SlotDuration is the fixed 15-minute grid every scheduled_at lands on.
const SlotDuration = 15 * time.Minute

// BaseMatchMinutes is the per-best_of_game duration that scales linearly
// with best_of: duration = BaseMatchMinutes * best_of, rounded up to whole
// slots.
const BaseMatchMinutes = 60

// roundUpToSlotBoundary rounds t up to the next local minute in
// {0,15,30,45}, with seconds and sub-second components zeroed. A value
// already exactly on the grid is returned unchanged.
func roundUpToSlotBoundary(t time.Time) time.Time {
	if t.Second() == 0 && t.Nanosecond() == 0 && t.Minute()%15 == 0 {
		return t
	}
	base := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	if t.Second() > 0 || t.Nanosecond() > 0 {
		base = base.Add(time.Minute)
	}
	if rem := base.Minute() % 15; rem != 0 {
		base = base.Add(time.Duration(15-rem) * time.Minute)
	}
	return base
}

// BuildSlotGrid produces the ordered list of 15-minute slot instants in
// [startsAt, endsAt): the first slot is startsAt rounded up to the grid,
// each subsequent slot is 15 minutes later, stopping strictly before
// endsAt.
func BuildSlotGrid(startsAt, endsAt time.Time) ([]time.Time, error) {
	if startsAt.IsZero() || endsAt.IsZero() {
		return nil, validationErrorf("times must be timezone-aware")
	}

	t0 := roundUpToSlotBoundary(startsAt)
	slots := make([]time.Time, 0)
	for t := t0; t.Before(endsAt); t = t.Add(SlotDuration) {
		slots = append(slots, t)
	}
	if len(slots) == 0 {
		return nil, validationErrorf("scheduling window has no available slots")
	}
	return slots, nil
}

// DurationSlots returns the number of 15-minute slots a best_of match
// occupies: ceil(60*best_of / 15).
func DurationSlots(bestOf int) int {
	minutes := BaseMatchMinutes * bestOf
	return (minutes + 14) / 15
}

// GapSlots returns the number of 15-minute slots a post-match cooldown
// (in whole minutes) occupies, rounded up.
func GapSlots(gapMinutes int) int {
	if gapMinutes <= 0 {
		return 0
	}
	return (gapMinutes + 14) / 15
}
