package services

import (
	"testing"

	"github.com/aoe4tourney/engine/brackets"
	"github.com/aoe4tourney/engine/models"
)

func soloTournament(id, teamSize int, status models.TournamentStatus) *models.Tournament {
	return &models.Tournament{ID: id, TeamSize: teamSize, Status: status}
}

func activeEntrants(tournamentID int, memberCounts ...int) []*models.Entrant {
	entrants := make([]*models.Entrant, len(memberCounts))
	for i, mc := range memberCounts {
		entrants[i] = &models.Entrant{ID: i + 1, TournamentID: tournamentID, Status: models.EntrantActive, MemberCount: mc}
	}
	return entrants
}

func TestPlanStructureRejectsAlreadyRunningTournament(t *testing.T) {
	tournament := soloTournament(1, 1, models.TournamentRunning)
	_, err := planStructure(tournament, activeEntrants(1, 1, 1), models.StageLeague,
		brackets.NewLeagueFormatService(), brackets.NewSingleElimFormatService())
	if err != ErrTournamentAlreadyStarted {
		t.Fatalf("expected ErrTournamentAlreadyStarted, got %v", err)
	}
}

func TestPlanStructurePrunesIncompleteTeams(t *testing.T) {
	tournament := soloTournament(1, 2, models.TournamentRegistration)
	entrants := activeEntrants(1, 2, 2, 1, 2)
	plan, err := planStructure(tournament, entrants, models.StageLeague,
		brackets.NewLeagueFormatService(), brackets.NewSingleElimFormatService())
	if err != nil {
		t.Fatalf("planStructure: %v", err)
	}
	if len(plan.PrunedEntrantIDs) != 1 || plan.PrunedEntrantIDs[0] != 3 {
		t.Fatalf("expected entrant 3 pruned, got %v", plan.PrunedEntrantIDs)
	}
	// 3 complete teams remain -> C(3,2) = 3 matches.
	if len(plan.Matches) != 3 {
		t.Fatalf("expected 3 matches among remaining 3 entrants, got %d", len(plan.Matches))
	}
}

func TestPlanStructureRejectsFewerThanTwoAfterPruning(t *testing.T) {
	tournament := soloTournament(1, 2, models.TournamentRegistration)
	entrants := activeEntrants(1, 2, 1, 1)
	_, err := planStructure(tournament, entrants, models.StageLeague,
		brackets.NewLeagueFormatService(), brackets.NewSingleElimFormatService())
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestPlanStructureDispatchesSingleElim(t *testing.T) {
	tournament := soloTournament(9, 1, models.TournamentRegistration)
	entrants := activeEntrants(9, 1, 1, 1, 1, 1)
	plan, err := planStructure(tournament, entrants, models.StageSingleElim,
		brackets.NewLeagueFormatService(), brackets.NewSingleElimFormatService())
	if err != nil {
		t.Fatalf("planStructure: %v", err)
	}
	if plan.Stage.Type != models.StageSingleElim {
		t.Fatalf("expected single-elim stage, got %s", plan.Stage.Type)
	}
	// next_power_of_two(5) - 1 = 7
	if len(plan.Matches) != 7 {
		t.Fatalf("expected 7 matches, got %d", len(plan.Matches))
	}
}

func TestPlanStructureRejectsUnsupportedFormat(t *testing.T) {
	tournament := soloTournament(1, 1, models.TournamentRegistration)
	entrants := activeEntrants(1, 1, 1)
	_, err := planStructure(tournament, entrants, models.StageType("ROUND_ROBIN_GROUPS"),
		brackets.NewLeagueFormatService(), brackets.NewSingleElimFormatService())
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError for unsupported format, got %v", err)
	}
}
