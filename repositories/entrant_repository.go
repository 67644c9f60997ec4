package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aoe4tourney/engine/models"
)

type EntrantRepository interface {
	// ListActiveWithMemberCounts returns every ACTIVE entrant of the
	// tournament with MemberCount populated from a distinct-membership count,
	// the input StructureBuilder prunes incomplete teams from.
	ListActiveWithMemberCounts(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Entrant, error)
	// DeleteByIDs removes entrants outright — the destructive incomplete-team
	// cleanup StructureBuilder performs when team_size > 1.
	DeleteByIDs(ctx context.Context, exec SQLExecutor, ids []int) error
}

type postgresEntrantRepository struct {
	db *sql.DB
}

func NewPostgresEntrantRepository(db *sql.DB) EntrantRepository {
	return &postgresEntrantRepository{db: db}
}

func (r *postgresEntrantRepository) ListActiveWithMemberCounts(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Entrant, error) {
	query := `
		SELECT e.id, e.tournament_id, e.name, e.status,
		       COUNT(DISTINCT em.user_id) AS member_count,
		       e.created_at, e.updated_at
		FROM entrants e
		LEFT JOIN entrant_members em ON em.entrant_id = e.id
		WHERE e.tournament_id = $1 AND e.status = $2
		GROUP BY e.id
		ORDER BY e.id`
	rows, err := exec.QueryContext(ctx, query, tournamentID, models.EntrantActive)
	if err != nil {
		return nil, fmt.Errorf("list active entrants for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	entrants := make([]*models.Entrant, 0)
	for rows.Next() {
		var e models.Entrant
		if err := rows.Scan(&e.ID, &e.TournamentID, &e.Name, &e.Status, &e.MemberCount, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entrant: %w", err)
		}
		entrants = append(entrants, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entrants: %w", err)
	}
	return entrants, nil
}

func (r *postgresEntrantRepository) DeleteByIDs(ctx context.Context, exec SQLExecutor, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`DELETE FROM entrants WHERE id IN (%s)`, strings.Join(placeholders, ", "))
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete incomplete-team entrants %v: %w", ids, err)
	}
	return nil
}
