package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aoe4tourney/engine/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	// LockForUpdate fetches the tournament row with SELECT ... FOR UPDATE,
	// the row-level lock StructureBuilder and MatchScheduler both open with.
	LockForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error
	// GetByID is the plain, lock-free read used by the HTTP surface's
	// read-only views (GET /tournaments/{id}, the bracket view).
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) LockForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, owner_id, team_size, status, visibility, starts_at, ends_at, game_gaps, created_at, updated_at
		FROM tournaments
		WHERE id = $1
		FOR UPDATE`
	row := exec.QueryRowContext(ctx, query, id)

	var t models.Tournament
	if err := row.Scan(
		&t.ID, &t.Name, &t.OwnerID, &t.TeamSize, &t.Status, &t.Visibility,
		&t.StartsAt, &t.EndsAt, &t.GameGaps, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("lock tournament %d: %w", id, err)
	}
	return &t, nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, owner_id, team_size, status, visibility, starts_at, ends_at, game_gaps, created_at, updated_at
		FROM tournaments
		WHERE id = $1`
	row := exec.QueryRowContext(ctx, query, id)

	var t models.Tournament
	if err := row.Scan(
		&t.ID, &t.Name, &t.OwnerID, &t.TeamSize, &t.Status, &t.Visibility,
		&t.StartsAt, &t.EndsAt, &t.GameGaps, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("get tournament %d: %w", id, err)
	}
	return &t, nil
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error {
	query := `UPDATE tournaments SET status = $1, updated_at = now() WHERE id = $2`
	result, err := exec.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update tournament %d status: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
