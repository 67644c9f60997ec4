package scheduling

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aoe4tourney/engine/models"
)

// Interval is a half-open, absolute time window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// ExpandWeeklyAvailability turns each user's weekly-recurring availability
// rows into a sorted list of absolute, window-clipped intervals. loc is the
// system-configured timezone weekly offsets are interpreted in.
func ExpandWeeklyAvailability(
	loc *time.Location,
	startsAt, endsAt time.Time,
	userIDs []int,
	availByUser map[int][]*models.UserAvailability,
) (map[int][]Interval, error) {
	var missingRows []string
	for _, uid := range userIDs {
		if len(availByUser[uid]) == 0 {
			missingRows = append(missingRows, strconv.Itoa(uid))
		}
	}
	if len(missingRows) > 0 {
		return nil, validationErrorf("users missing availability: %s", strings.Join(missingRows, ", "))
	}

	localStart := startsAt.In(loc)
	localEnd := endsAt.In(loc)

	// Monday 00:00 local on or before localStart.
	daysSinceMonday := (int(localStart.Weekday()) + 6) % 7
	weekStart := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -daysSinceMonday)

	result := make(map[int][]Interval, len(userIDs))
	for _, uid := range userIDs {
		intervals := make([]Interval, 0)
		for w := weekStart; w.Before(localEnd); w = w.AddDate(0, 0, 7) {
			for _, a := range availByUser[uid] {
				start := w.Add(time.Duration(a.StartOffset) * time.Second)
				end := w.Add(time.Duration(a.EndOffset) * time.Second)
				if start.Before(startsAt) {
					start = startsAt
				}
				if end.After(endsAt) {
					end = endsAt
				}
				if !start.Before(end) {
					continue
				}
				intervals = append(intervals, Interval{Start: start, End: end})
			}
		}
		sort.Slice(intervals, func(i, j int) bool { return intervals[i].Start.Before(intervals[j].Start) })
		result[uid] = intervals
	}

	var emptyUsers []string
	for _, uid := range userIDs {
		if len(result[uid]) == 0 {
			emptyUsers = append(emptyUsers, strconv.Itoa(uid))
		}
	}
	if len(emptyUsers) > 0 {
		return nil, validationErrorf("users have no availability within tournament window: %s", strings.Join(emptyUsers, ", "))
	}
	return result, nil
}

// fitsEntirelyWithin reports whether [start, end) lies within at
// least one interval in a sorted, non-overlapping interval list.
func fitsEntirelyWithin(intervals []Interval, start, end time.Time) bool {
	// Binary search for the first interval whose End is after start.
	lo, hi := 0, len(intervals)
	for lo < hi {
		mid := (lo + hi) / 2
		if !intervals[mid].End.After(start) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == len(intervals) {
		return false
	}
	iv := intervals[lo]
	return !iv.Start.After(start) && !iv.End.Before(end)
}
