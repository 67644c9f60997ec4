package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type EntrantMemberRepository interface {
	// LoadCaptains returns, for every entrant id that has a captain, the
	// captain's user id. Entrants absent from the result have no captain.
	LoadCaptains(ctx context.Context, exec SQLExecutor, entrantIDs []int) (map[int]int, error)
}

type postgresEntrantMemberRepository struct {
	db *sql.DB
}

func NewPostgresEntrantMemberRepository(db *sql.DB) EntrantMemberRepository {
	return &postgresEntrantMemberRepository{db: db}
}

func (r *postgresEntrantMemberRepository) LoadCaptains(ctx context.Context, exec SQLExecutor, entrantIDs []int) (map[int]int, error) {
	captains := make(map[int]int, len(entrantIDs))
	if len(entrantIDs) == 0 {
		return captains, nil
	}

	placeholders := make([]string, len(entrantIDs))
	args := make([]interface{}, len(entrantIDs))
	for i, id := range entrantIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`
		SELECT entrant_id, user_id
		FROM entrant_members
		WHERE is_captain = true AND entrant_id IN (%s)`, strings.Join(placeholders, ", "))

	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load captains for entrants %v: %w", entrantIDs, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entrantID, userID int
		if err := rows.Scan(&entrantID, &userID); err != nil {
			return nil, fmt.Errorf("scan captain row: %w", err)
		}
		captains[entrantID] = userID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate captain rows: %w", err)
	}
	return captains, nil
}
