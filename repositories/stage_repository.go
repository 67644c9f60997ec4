package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aoe4tourney/engine/models"
)

var ErrStageNotFound = errors.New("stage not found")

type StageRepository interface {
	Create(ctx context.Context, exec SQLExecutor, stage *models.Stage) error
	// ExistsForTournament reports whether any stage has already been built
	// for the tournament — StructureBuilder's "structure already exists" guard.
	ExistsForTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (bool, error)
	GetByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (*models.Stage, error)
}

type postgresStageRepository struct {
	db *sql.DB
}

func NewPostgresStageRepository(db *sql.DB) StageRepository {
	return &postgresStageRepository{db: db}
}

func (r *postgresStageRepository) Create(ctx context.Context, exec SQLExecutor, stage *models.Stage) error {
	query := `
		INSERT INTO stages (tournament_id, type, order_num, best_of_default, config)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	row := exec.QueryRowContext(ctx, query, stage.TournamentID, stage.Type, stage.Order, stage.BestOfDefault, stage.Config)
	if err := row.Scan(&stage.ID, &stage.CreatedAt, &stage.UpdatedAt); err != nil {
		return fmt.Errorf("insert stage for tournament %d: %w", stage.TournamentID, err)
	}
	return nil
}

func (r *postgresStageRepository) ExistsForTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM stages WHERE tournament_id = $1)`
	if err := exec.QueryRowContext(ctx, query, tournamentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check stage existence for tournament %d: %w", tournamentID, err)
	}
	return exists, nil
}

func (r *postgresStageRepository) GetByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (*models.Stage, error) {
	query := `
		SELECT id, tournament_id, type, order_num, best_of_default, config, created_at, updated_at
		FROM stages
		WHERE tournament_id = $1
		ORDER BY order_num
		LIMIT 1`
	row := exec.QueryRowContext(ctx, query, tournamentID)

	var s models.Stage
	if err := row.Scan(&s.ID, &s.TournamentID, &s.Type, &s.Order, &s.BestOfDefault, &s.Config, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStageNotFound
		}
		return nil, fmt.Errorf("get stage for tournament %d: %w", tournamentID, err)
	}
	return &s, nil
}
