package scheduling

import (
	"testing"
	"time"

	"github.com/aoe4tourney/engine/models"
)

// weeklyWindow builds a single UserAvailability row covering [startHour,
// endHour) on the given day-of-week (0=Monday) every week.
func weeklyWindow(userID, dayOfWeek, startHour, endHour int) *models.UserAvailability {
	startOffset := dayOfWeek*86400 + startHour*3600
	endOffset := dayOfWeek*86400 + endHour*3600
	return &models.UserAvailability{
		UserID:      userID,
		StartDay:    dayOfWeek,
		EndDay:      dayOfWeek,
		StartOffset: startOffset,
		EndOffset:   endOffset,
	}
}

func TestExpandWeeklyAvailabilityClipsToWindow(t *testing.T) {
	loc := mustLoc(t, "UTC")
	// Monday 2026-08-03 is a Monday.
	startsAt := time.Date(2026, 8, 3, 10, 0, 0, 0, loc)
	endsAt := time.Date(2026, 8, 4, 22, 0, 0, 0, loc)

	availByUser := map[int][]*models.UserAvailability{
		1: {weeklyWindow(1, 0, 18, 22)}, // Monday 18:00-22:00
	}
	expanded, err := ExpandWeeklyAvailability(loc, startsAt, endsAt, []int{1}, availByUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ivs := expanded[1]
	if len(ivs) != 1 {
		t.Fatalf("expected 1 interval, got %d: %+v", len(ivs), ivs)
	}
	wantStart := time.Date(2026, 8, 3, 18, 0, 0, 0, loc)
	wantEnd := time.Date(2026, 8, 3, 22, 0, 0, 0, loc)
	if !ivs[0].Start.Equal(wantStart) || !ivs[0].End.Equal(wantEnd) {
		t.Errorf("interval = %+v, want [%v, %v)", ivs[0], wantStart, wantEnd)
	}
}

func TestExpandWeeklyAvailabilityMissingRowsError(t *testing.T) {
	loc := mustLoc(t, "UTC")
	startsAt := time.Date(2026, 8, 3, 10, 0, 0, 0, loc)
	endsAt := time.Date(2026, 8, 4, 22, 0, 0, 0, loc)

	_, err := ExpandWeeklyAvailability(loc, startsAt, endsAt, []int{1, 2}, map[int][]*models.UserAvailability{
		1: {weeklyWindow(1, 0, 18, 22)},
	})
	if err == nil {
		t.Fatalf("expected error for user with no availability rows")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("expected *ValidationError, got %T", err)
	}
}

func TestExpandWeeklyAvailabilityEmptyAfterClipError(t *testing.T) {
	loc := mustLoc(t, "UTC")
	// Window entirely on a Tuesday; availability only on Monday that week.
	startsAt := time.Date(2026, 8, 4, 0, 0, 0, 0, loc)
	endsAt := time.Date(2026, 8, 4, 23, 0, 0, 0, loc)

	availByUser := map[int][]*models.UserAvailability{
		1: {weeklyWindow(1, 0, 18, 22)}, // Monday only
	}
	_, err := ExpandWeeklyAvailability(loc, startsAt, endsAt, []int{1}, availByUser)
	if err == nil {
		t.Fatalf("expected error: no availability intersects the window")
	}
}

func TestExpandWeeklyAvailabilitySpansMultipleWeeks(t *testing.T) {
	loc := mustLoc(t, "UTC")
	startsAt := time.Date(2026, 8, 3, 0, 0, 0, 0, loc)  // Monday
	endsAt := time.Date(2026, 8, 17, 0, 0, 0, 0, loc)   // two Mondays later

	availByUser := map[int][]*models.UserAvailability{
		1: {weeklyWindow(1, 0, 18, 22)},
	}
	expanded, err := ExpandWeeklyAvailability(loc, startsAt, endsAt, []int{1}, availByUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(expanded[1]) != 2 {
		t.Fatalf("expected 2 weekly occurrences, got %d", len(expanded[1]))
	}
}
