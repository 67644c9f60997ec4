package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/aoe4tourney/engine/models"
	"github.com/aoe4tourney/engine/repositories"
)

// BracketView is the read-only shape GET /tournaments/{id}/bracket returns:
// the tournament's single stage plus every match in it.
type BracketView struct {
	Tournament *models.Tournament `json:"tournament"`
	Stage      *models.Stage      `json:"stage"`
	Matches    []*models.Match    `json:"matches"`
}

// BracketViewLoader assembles BracketView by fanning the tournament and
// stage reads out concurrently with errgroup, mirroring the teacher's
// GetTournamentByID/GetFullTournamentData fan-out, then reading the stage's
// matches once the stage id is known.
type BracketViewLoader struct {
	DB             *sql.DB
	TournamentRepo repositories.TournamentRepository
	StageRepo      repositories.StageRepository
	MatchRepo      repositories.MatchRepository
	Logger         *slog.Logger
}

func NewBracketViewLoader(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	stageRepo repositories.StageRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) *BracketViewLoader {
	return &BracketViewLoader{DB: db, TournamentRepo: tournamentRepo, StageRepo: stageRepo, MatchRepo: matchRepo, Logger: logger}
}

func (l *BracketViewLoader) Load(ctx context.Context, tournamentID int) (*BracketView, error) {
	var tournament *models.Tournament
	var stage *models.Stage

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := l.TournamentRepo.GetByID(gCtx, l.DB, tournamentID)
		if err != nil {
			return err
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		s, err := l.StageRepo.GetByTournament(gCtx, l.DB, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrStageNotFound) {
				return nil
			}
			return err
		}
		stage = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &BracketView{Tournament: tournament}
	if stage == nil {
		return view, nil
	}
	view.Stage = stage

	matches, err := l.MatchRepo.ListByStage(ctx, l.DB, stage.ID)
	if err != nil {
		return nil, err
	}
	view.Matches = matches
	return view, nil
}
