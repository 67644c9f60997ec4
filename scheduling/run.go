package scheduling

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aoe4tourney/engine/models"
	"github.com/aoe4tourney/engine/repositories"
)

// Input is everything a scheduling run needs, already loaded from storage.
// Separating this from Scheduler.Schedule's database plumbing keeps the
// actual §4.5 algorithm a pure, directly testable function.
type Input struct {
	StartsAt           time.Time
	EndsAt             time.Time
	GameGapMinutes     int
	Location           *time.Location
	IntakeMatches      []*models.Match
	AlreadyScheduled   []*models.Match
	CaptainByEntrant   map[int]int
	AvailabilityByUser map[int][]*models.UserAvailability
}

// Run computes the scheduled_at assignment for every intake match, or
// returns a ValidationError per §4.5.10 if any step of the algorithm fails.
// It never talks to storage — Scheduler.Schedule is the I/O wrapper around
// this pure function.
func Run(in Input) ([]repositories.MatchUpdate, error) {
	slots, err := BuildSlotGrid(in.StartsAt, in.EndsAt)
	if err != nil {
		return nil, err
	}
	if len(in.IntakeMatches) == 0 {
		return nil, nil
	}

	intakeEntrantIDs := collectEntrantIDs(in.IntakeMatches)
	allEntrantIDs := mergeUnique(intakeEntrantIDs, collectEntrantIDs(in.AlreadyScheduled))
	if missing := missingCaptains(allEntrantIDs, in.CaptainByEntrant); len(missing) > 0 {
		return nil, validationErrorf("entrants missing captain: %s", joinInts(missing))
	}

	userIDs := uniqueValues(in.CaptainByEntrant)
	expanded, err := ExpandWeeklyAvailability(in.Location, in.StartsAt, in.EndsAt, userIDs, in.AvailabilityByUser)
	if err != nil {
		return nil, err
	}

	gap := GapSlots(in.GameGapMinutes)
	reservations := NewReservationTracker()
	indexCache := make(map[int]map[int][]int)

	availIndexFor := func(d int) map[int][]int {
		if cached, ok := indexCache[d]; ok {
			return cached
		}
		computed := ComputeAvailableStartIndices(slots, d, userIDs, expanded)
		indexCache[d] = computed
		return computed
	}

	t0 := slots[0]
	for _, m := range in.AlreadyScheduled {
		d := DurationSlots(m.BestOf)
		idx := int(m.ScheduledAt.Sub(t0) / SlotDuration)
		if idx < 0 {
			idx = 0
		}
		u1, u2 := captainsOf(m, in.CaptainByEntrant)
		reservations.Reserve(u1, idx, d+gap)
		if u2 != u1 {
			reservations.Reserve(u2, idx, d+gap)
		}
	}

	type ranked struct {
		match *models.Match
		d     int
		u1    int
		u2    int
		flex  int
	}
	work := make([]ranked, 0, len(in.IntakeMatches))
	for _, m := range in.IntakeMatches {
		d := DurationSlots(m.BestOf)
		u1, u2 := captainsOf(m, in.CaptainByEntrant)
		idxByUser := availIndexFor(d)
		flex := overlapFlexibility(idxByUser[u1], idxByUser[u2])
		work = append(work, ranked{match: m, d: d, u1: u1, u2: u2, flex: flex})
	}
	sort.SliceStable(work, func(i, j int) bool {
		if work[i].match.StageOrder != work[j].match.StageOrder {
			return work[i].match.StageOrder < work[j].match.StageOrder
		}
		return work[i].flex < work[j].flex
	})

	updates := make([]repositories.MatchUpdate, 0, len(work))
	for _, w := range work {
		duration := time.Duration(w.d) * SlotDuration
		idxByUser := availIndexFor(w.d)
		idx, ok := pickBestSlotIndex(
			slots, in.EndsAt, in.Location, duration, w.d+gap,
			w.u1, w.u2, idxByUser[w.u1], idxByUser[w.u2], reservations,
		)
		if !ok {
			return nil, validationErrorf("Could not schedule all matches within tournament time range")
		}
		reservations.Reserve(w.u1, idx, w.d+gap)
		if w.u2 != w.u1 {
			reservations.Reserve(w.u2, idx, w.d+gap)
		}
		scheduledAt := slots[idx]
		updates = append(updates, repositories.MatchUpdate{ID: w.match.ID, ScheduledAt: &scheduledAt})
	}

	return updates, nil
}

func collectEntrantIDs(matches []*models.Match) []int {
	seen := make(map[int]bool)
	ids := make([]int, 0)
	for _, m := range matches {
		for _, id := range []*int{m.Entrant1ID, m.Entrant2ID} {
			if id != nil && !seen[*id] {
				seen[*id] = true
				ids = append(ids, *id)
			}
		}
	}
	return ids
}

func mergeUnique(a, b []int) []int {
	seen := make(map[int]bool, len(a))
	out := make([]int, 0, len(a)+len(b))
	for _, id := range a {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range b {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func missingCaptains(entrantIDs []int, captainByEntrant map[int]int) []int {
	missing := make([]int, 0)
	for _, id := range entrantIDs {
		if _, ok := captainByEntrant[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

func uniqueValues(m map[int]int) []int {
	seen := make(map[int]bool, len(m))
	out := make([]int, 0, len(m))
	for _, v := range m {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func captainsOf(m *models.Match, captainByEntrant map[int]int) (int, int) {
	return captainByEntrant[*m.Entrant1ID], captainByEntrant[*m.Entrant2ID]
}
