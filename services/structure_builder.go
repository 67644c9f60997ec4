package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/aoe4tourney/engine/brackets"
	"github.com/aoe4tourney/engine/models"
	"github.com/aoe4tourney/engine/repositories"
)

// BuildResult is build_structure's return value.
type BuildResult struct {
	TournamentID   int `json:"tournament_id"`
	StageID        int `json:"stage_id"`
	MatchesCreated int `json:"matches_created"`
}

// StructureBuilder is the orchestrator (§4.4): locks the tournament,
// validates its state, prunes incomplete teams, dispatches to one of the
// two format services, and flips the tournament to RUNNING — all inside a
// single transaction.
type StructureBuilder struct {
	DB             *sql.DB
	TournamentRepo repositories.TournamentRepository
	StageRepo      repositories.StageRepository
	EntrantRepo    repositories.EntrantRepository
	MatchRepo      repositories.MatchRepository
	League         *brackets.LeagueFormatService
	SingleElim     *brackets.SingleElimFormatService
	Logger         *slog.Logger
}

func NewStructureBuilder(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	stageRepo repositories.StageRepository,
	entrantRepo repositories.EntrantRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) *StructureBuilder {
	return &StructureBuilder{
		DB:             db,
		TournamentRepo: tournamentRepo,
		StageRepo:      stageRepo,
		EntrantRepo:    entrantRepo,
		MatchRepo:      matchRepo,
		League:         brackets.NewLeagueFormatService(),
		SingleElim:     brackets.NewSingleElimFormatService(),
		Logger:         logger,
	}
}

// Build implements build_structure(tournament_id, format) (§4.4).
func (b *StructureBuilder) Build(ctx context.Context, tournamentID int, format models.StageType) (result *BuildResult, err error) {
	b.Logger.InfoContext(ctx, "structure build starting", slog.Int("tournament_id", tournamentID), slog.String("format", string(format)))

	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin structure build transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				b.Logger.ErrorContext(ctx, "rollback failed", slog.Any("rollback_error", rbErr), slog.Any("original_error", err))
			}
		} else if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("commit structure build: %w", cErr)
			result = nil
		}
	}()

	tournament, err := b.TournamentRepo.LockForUpdate(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}

	exists, err := b.StageRepo.ExistsForTournament(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrStructureAlreadyExists
	}

	entrants, err := b.EntrantRepo.ListActiveWithMemberCounts(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}

	plan, err := planStructure(tournament, entrants, format, b.League, b.SingleElim)
	if err != nil {
		return nil, err
	}

	if len(plan.PrunedEntrantIDs) > 0 {
		if delErr := b.EntrantRepo.DeleteByIDs(ctx, tx, plan.PrunedEntrantIDs); delErr != nil {
			return nil, delErr
		}
		b.Logger.InfoContext(ctx, "pruned incomplete-team entrants", slog.Int("tournament_id", tournamentID), slog.Any("entrant_ids", plan.PrunedEntrantIDs))
	}

	if err = b.StageRepo.Create(ctx, tx, plan.Stage); err != nil {
		return nil, err
	}
	for _, m := range plan.Matches {
		m.StageID = plan.Stage.ID
	}
	if err = b.MatchRepo.BulkInsert(ctx, tx, plan.Matches); err != nil {
		return nil, err
	}

	if err = b.TournamentRepo.UpdateStatus(ctx, tx, tournamentID, models.TournamentRunning); err != nil {
		return nil, err
	}

	b.Logger.InfoContext(ctx, "structure build finished",
		slog.Int("tournament_id", tournamentID), slog.Int("stage_id", plan.Stage.ID), slog.Int("matches_created", len(plan.Matches)))
	return &BuildResult{TournamentID: tournamentID, StageID: plan.Stage.ID, MatchesCreated: len(plan.Matches)}, nil
}
