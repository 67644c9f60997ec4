package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aoe4tourney/engine/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository is the minimal identity lookup the HTTP surface needs for
// owner/admin checks before enqueuing a build job. Full account management
// (registration, password reset, profile) is an external collaborator per
// §1's non-goals; this repository only ever reads.
type UserRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.User, error)
	// IsTournamentAdmin reports whether the user owns the tournament or
	// holds a tournament_admins row for it — the owner/admin check §6.3's
	// POST /tournaments/{id}/start requires.
	IsTournamentAdmin(ctx context.Context, exec SQLExecutor, tournamentID, userID int) (bool, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.User, error) {
	query := `SELECT id, username, password_hash, is_staff, created_at, updated_at FROM users WHERE id = $1`
	row := exec.QueryRowContext(ctx, query, id)

	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsStaff, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

func (r *postgresUserRepository) IsTournamentAdmin(ctx context.Context, exec SQLExecutor, tournamentID, userID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM tournaments WHERE id = $1 AND owner_id = $2
			UNION
			SELECT 1 FROM tournament_admins WHERE tournament_id = $1 AND user_id = $2
		)`
	var exists bool
	if err := exec.QueryRowContext(ctx, query, tournamentID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check tournament admin for tournament %d user %d: %w", tournamentID, userID, err)
	}
	return exists, nil
}
