package brackets

import (
	"encoding/json"

	"github.com/aoe4tourney/engine/models"
)

// leagueBestOf is best_of_default for every LEAGUE stage: every match in a
// round-robin league is a single game.
const leagueBestOf = 1

// LeagueFormatService builds a full round-robin schedule: every entrant
// plays every other entrant exactly once, split into n-1 (even n) or n
// (odd n, one sitting out each round) rounds.
type LeagueFormatService struct{}

func NewLeagueFormatService() *LeagueFormatService {
	return &LeagueFormatService{}
}

// Build returns the unsaved Stage and Match rows for a league. Unlike
// SingleElimFormatService, league pairing never reorders entrants — it
// pairs them in the order they're given, so round_robin_rounds(entrants) is
// reproducible directly from entrant insertion order.
func (s *LeagueFormatService) Build(tournamentID int, entrantIDs []int) (*models.Stage, []*models.Match, error) {
	if len(entrantIDs) < 2 {
		return nil, nil, validationErrorf("league stage needs at least 2 entrants, got %d", len(entrantIDs))
	}

	rounds := RoundRobinRounds(entrantIDs)
	matches := make([]*models.Match, 0, len(entrantIDs)*(len(entrantIDs)-1)/2)
	for roundIdx, pairs := range rounds {
		order := 0
		for _, pair := range pairs {
			if pair[0] == -1 || pair[1] == -1 {
				// the entrant paired with the bye sentinel sits out this round
				continue
			}
			e1, e2 := pair[0], pair[1]
			matches = append(matches, &models.Match{
				RoundNumber: roundIdx + 1,
				Order:       order,
				BestOf:      leagueBestOf,
				Status:      models.MatchScheduled,
				Entrant1ID:  &e1,
				Entrant2ID:  &e2,
			})
			order++
		}
	}

	config, err := json.Marshal(models.LeagueConfig{
		Points: struct {
			Win  int `json:"win"`
			Loss int `json:"loss"`
		}{Win: 1, Loss: 0},
		Tiebreakers: []string{"diff", "wins"},
	})
	if err != nil {
		return nil, nil, err
	}
	stage := &models.Stage{
		TournamentID:  tournamentID,
		Type:          models.StageLeague,
		Order:         0,
		BestOfDefault: leagueBestOf,
		Config:        config,
	}
	return stage, matches, nil
}
