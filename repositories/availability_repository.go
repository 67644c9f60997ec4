package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aoe4tourney/engine/models"
)

type AvailabilityRepository interface {
	// ListByUserIDs returns every UserAvailability row for the given users,
	// in no particular order — callers group and sort per user themselves.
	ListByUserIDs(ctx context.Context, exec SQLExecutor, userIDs []int) ([]*models.UserAvailability, error)
}

type postgresAvailabilityRepository struct {
	db *sql.DB
}

func NewPostgresAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &postgresAvailabilityRepository{db: db}
}

func (r *postgresAvailabilityRepository) ListByUserIDs(ctx context.Context, exec SQLExecutor, userIDs []int) ([]*models.UserAvailability, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(userIDs))
	args := make([]interface{}, len(userIDs))
	for i, id := range userIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`
		SELECT id, user_id, start_day, start_time, end_day, end_time,
		       start_offset, end_offset, created_at, updated_at
		FROM user_availabilities
		WHERE user_id IN (%s)`, strings.Join(placeholders, ", "))

	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list availabilities for users %v: %w", userIDs, err)
	}
	defer rows.Close()

	availabilities := make([]*models.UserAvailability, 0)
	for rows.Next() {
		var a models.UserAvailability
		var startTime, endTime string
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.StartDay, &startTime, &a.EndDay, &endTime,
			&a.StartOffset, &a.EndOffset, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		if a.StartTime, err = parseClock(startTime); err != nil {
			return nil, fmt.Errorf("parse start_time %q: %w", startTime, err)
		}
		if a.EndTime, err = parseClock(endTime); err != nil {
			return nil, fmt.Errorf("parse end_time %q: %w", endTime, err)
		}
		availabilities = append(availabilities, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability rows: %w", err)
	}
	return availabilities, nil
}

// parseClock reads a postgres TIME column value ("HH:MM:SS") into a Clock.
func parseClock(raw string) (models.Clock, error) {
	var h, m, s int
	if _, err := fmt.Sscanf(raw, "%d:%d:%d", &h, &m, &s); err != nil {
		return models.Clock{}, err
	}
	return models.Clock{Hour: h, Minute: m, Second: s}, nil
}
