package services

import (
	"github.com/aoe4tourney/engine/brackets"
	"github.com/aoe4tourney/engine/models"
)

// structurePlan is the pure outcome of deciding how to build a tournament's
// structure from its current tournament/entrant state, with no database
// dependency — the part of build_structure (§4.4) that is worth unit testing
// directly, mirroring how scheduling.Run was split out of Scheduler.Schedule.
type structurePlan struct {
	PrunedEntrantIDs []int
	Stage            *models.Stage
	Matches          []*models.Match
}

// planStructure validates tournament state, prunes incomplete-team entrants,
// and dispatches to the requested format service. It never touches a
// transaction; StructureBuilder.Build is the thin persistence wrapper.
func planStructure(
	tournament *models.Tournament,
	entrants []*models.Entrant,
	format models.StageType,
	league *brackets.LeagueFormatService,
	singleElim *brackets.SingleElimFormatService,
) (*structurePlan, error) {
	if tournament.Status == models.TournamentRunning || tournament.Status == models.TournamentFinished {
		return nil, ErrTournamentAlreadyStarted
	}

	working := entrants
	var pruned []int
	if tournament.TeamSize > 1 {
		working = working[:0]
		for _, e := range entrants {
			if e.MemberCount != tournament.TeamSize {
				pruned = append(pruned, e.ID)
				continue
			}
			working = append(working, e)
		}
	}

	if len(working) < 2 {
		return nil, &ValidationError{Message: "at least 2 entrants"}
	}

	entrantIDs := make([]int, len(working))
	for i, e := range working {
		entrantIDs[i] = e.ID
	}

	var stage *models.Stage
	var matches []*models.Match
	var err error
	switch format {
	case models.StageLeague:
		stage, matches, err = league.Build(tournament.ID, entrantIDs)
	case models.StageSingleElim:
		stage, matches, err = singleElim.Build(tournament.ID, entrantIDs)
	default:
		return nil, &ValidationError{Message: "Unsupported format " + string(format)}
	}
	if err != nil {
		return nil, err
	}

	return &structurePlan{PrunedEntrantIDs: pruned, Stage: stage, Matches: matches}, nil
}
