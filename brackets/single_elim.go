package brackets

import (
	"encoding/json"

	"github.com/aoe4tourney/engine/models"
)

// singleElimBestOf is best_of_default for every SINGLE_ELIM stage.
const singleElimBestOf = 1

// SingleElimFormatService builds a standard single-elimination bracket:
// entrants are seeded into the next power-of-two bracket size using the
// classic 1-vs-N mirrored seed order, with unfilled slots treated as byes.
// A round-1 match with exactly one entrant present is auto-finished and its
// sole entrant propagated straight into the round-2 slot it feeds, so a bye
// never requires a human (or a second structure build) to advance it.
type SingleElimFormatService struct{}

func NewSingleElimFormatService() *SingleElimFormatService {
	return &SingleElimFormatService{}
}

// Build returns the unsaved Stage and Match rows for every round of the
// bracket, earliest round first. Round-1 matches with exactly one entrant
// (byes) are returned already FINISHED with WinnerSlot set, and that entrant
// is placed in the round-2 match it feeds; everything else is SCHEDULED with
// entrants filled in as far as the bracket can determine them.
func (s *SingleElimFormatService) Build(tournamentID int, entrantIDs []int) (*models.Stage, []*models.Match, error) {
	if len(entrantIDs) < 2 {
		return nil, nil, validationErrorf("single elimination stage needs at least 2 entrants, got %d", len(entrantIDs))
	}
	wins, err := WinsNeeded(singleElimBestOf)
	if err != nil {
		return nil, nil, err
	}

	shuffled := append([]int(nil), entrantIDs...)
	rng := DeterministicRNG(tournamentID, string(models.StageSingleElim))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	size := NextPowerOfTwo(len(shuffled))
	seedPositions := BracketSeedPositions(size)

	slots := make([]*int, size)
	for pos, seed := range seedPositions {
		if seed > len(shuffled) {
			continue
		}
		id := shuffled[seed-1]
		slots[pos] = &id
	}

	rounds := 0
	for p := size; p > 1; p /= 2 {
		rounds++
	}

	matches := make([]*models.Match, 0, size-1)
	current := slots
	for round := 1; round <= rounds; round++ {
		next := make([]*int, len(current)/2)
		for i := 0; i < len(current); i += 2 {
			e1, e2 := current[i], current[i+1]
			m := &models.Match{
				RoundNumber: round,
				Order:       i / 2,
				BestOf:      singleElimBestOf,
				Status:      models.MatchScheduled,
				Entrant1ID:  e1,
				Entrant2ID:  e2,
			}

			var winner *int
			switch {
			case round == 1 && e1 != nil && e2 == nil:
				winner = e1
				m.Status = models.MatchFinished
				slot := 1
				m.WinnerSlot = &slot
				m.Score1, m.Score2 = wins, 0
			case round == 1 && e2 != nil && e1 == nil:
				winner = e2
				m.Status = models.MatchFinished
				slot := 2
				m.WinnerSlot = &slot
				m.Score1, m.Score2 = 0, wins
			}

			matches = append(matches, m)
			next[i/2] = winner
		}
		current = next
	}

	config, err := json.Marshal(models.SingleElimConfig{BracketSize: size})
	if err != nil {
		return nil, nil, err
	}
	stage := &models.Stage{
		TournamentID:  tournamentID,
		Type:          models.StageSingleElim,
		Order:         0,
		BestOfDefault: singleElimBestOf,
		Config:        config,
	}
	return stage, matches, nil
}
