package scheduling

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aoe4tourney/engine/models"
	"github.com/aoe4tourney/engine/repositories"
)

// Result is schedule_tournament_matches's return value.
type Result struct {
	TournamentID int `json:"tournament_id"`
	Scheduled    int `json:"scheduled"`
	Skipped      int `json:"skipped"`
}

// Scheduler is MatchScheduler: it turns a tournament's scheduling window and
// its captains' weekly availability into scheduled_at timestamps for every
// schedulable match, inside a single locked transaction. The algorithm
// itself lives in Run; Scheduler only does the I/O around it.
type Scheduler struct {
	DB                *sql.DB
	TournamentRepo    repositories.TournamentRepository
	MatchRepo         repositories.MatchRepository
	EntrantMemberRepo repositories.EntrantMemberRepository
	AvailabilityRepo  repositories.AvailabilityRepository
	Location          *time.Location
	Logger            *slog.Logger
}

func NewScheduler(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	entrantMemberRepo repositories.EntrantMemberRepository,
	availabilityRepo repositories.AvailabilityRepository,
	loc *time.Location,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		DB:                db,
		TournamentRepo:    tournamentRepo,
		MatchRepo:         matchRepo,
		EntrantMemberRepo: entrantMemberRepo,
		AvailabilityRepo:  availabilityRepo,
		Location:          loc,
		Logger:            logger,
	}
}

// Schedule implements schedule_tournament_matches(tournament_id) (§4.5).
func (s *Scheduler) Schedule(ctx context.Context, tournamentID int) (result *Result, err error) {
	s.Logger.InfoContext(ctx, "scheduling run starting", slog.Int("tournament_id", tournamentID))

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin scheduling transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.Logger.ErrorContext(ctx, "rollback failed", slog.Any("rollback_error", rbErr), slog.Any("original_error", err))
			}
		} else if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("commit scheduling run: %w", cErr)
			result = nil
		}
	}()

	tournament, err := s.TournamentRepo.LockForUpdate(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}

	intake, err := s.MatchRepo.ListSchedulableByTournament(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}
	if len(intake) == 0 {
		return &Result{TournamentID: tournamentID, Scheduled: 0, Skipped: 0}, nil
	}
	matchIDs := make([]int, len(intake))
	for i, m := range intake {
		matchIDs[i] = m.ID
	}
	if _, err = s.MatchRepo.LockForUpdate(ctx, tx, matchIDs); err != nil {
		return nil, err
	}

	intakeEntrantIDs := collectEntrantIDs(intake)
	alreadyScheduled, err := s.MatchRepo.ListScheduledTouchingEntrants(ctx, tx, tournamentID, intakeEntrantIDs)
	if err != nil {
		return nil, err
	}

	allEntrantIDs := mergeUnique(intakeEntrantIDs, collectEntrantIDs(alreadyScheduled))
	captainByEntrant, err := s.EntrantMemberRepo.LoadCaptains(ctx, tx, allEntrantIDs)
	if err != nil {
		return nil, err
	}

	userIDs := uniqueValues(captainByEntrant)
	availRows, err := s.AvailabilityRepo.ListByUserIDs(ctx, tx, userIDs)
	if err != nil {
		return nil, err
	}

	updates, err := Run(Input{
		StartsAt:           tournament.StartsAt,
		EndsAt:             tournament.EndsAt,
		GameGapMinutes:     tournament.GameGaps,
		Location:           s.Location,
		IntakeMatches:      intake,
		AlreadyScheduled:   alreadyScheduled,
		CaptainByEntrant:   captainByEntrant,
		AvailabilityByUser: groupAvailabilityByUser(availRows),
	})
	if err != nil {
		return nil, err
	}

	if err = s.MatchRepo.BulkUpdateFields(ctx, tx, updates); err != nil {
		return nil, err
	}

	s.Logger.InfoContext(ctx, "scheduling run finished", slog.Int("tournament_id", tournamentID), slog.Int("scheduled", len(updates)))
	return &Result{TournamentID: tournamentID, Scheduled: len(updates), Skipped: 0}, nil
}

func groupAvailabilityByUser(rows []*models.UserAvailability) map[int][]*models.UserAvailability {
	byUser := make(map[int][]*models.UserAvailability)
	for _, a := range rows {
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}
	return byUser
}
