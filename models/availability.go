package models

// UserAvailability is a single weekly-recurring window, stored as day/time
// pairs with derived whole-week second offsets. StartOffset < EndOffset,
// both within [0, 7*86400], and EndOffset-StartOffset <= 16h — enforced at
// write time by the availability service (out of scope here; this engine
// only ever reads rows that already satisfy the invariant).
type UserAvailability struct {
	ID     int `json:"id" db:"id"`
	UserID int `json:"user_id" db:"user_id"`

	StartDay  int `json:"start_day" db:"start_day"`
	StartTime Clock `json:"start_time" db:"start_time"`
	EndDay    int `json:"end_day" db:"end_day"`
	EndTime   Clock `json:"end_time" db:"end_time"`

	StartOffset int `json:"start_offset" db:"start_offset"`
	EndOffset   int `json:"end_offset" db:"end_offset"`

	Timestamps
}

// Clock is a time-of-day value with second precision, avoiding a
// dependency on a full civil-time library for what is otherwise a
// three-field (hour, minute, second) tuple.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// Seconds returns the number of seconds since midnight.
func (c Clock) Seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

const SecondsPerDay = 86400
const SecondsPerWeek = 7 * SecondsPerDay

// MaxAvailabilitySpanSeconds is the §3 invariant: end_offset - start_offset <= 16h.
const MaxAvailabilitySpanSeconds = 16 * 3600
