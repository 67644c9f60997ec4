package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aoe4tourney/engine/models"
)

// MatchUpdate is a sparse, per-row patch: nil fields are left untouched.
// Its only caller, MatchScheduler's persistence step, emits exactly one
// MatchUpdate per scheduled match id, so BulkUpdateFields applies the slice
// as given without needing to collapse duplicates by ID.
type MatchUpdate struct {
	ID          int
	Status      *models.MatchStatus
	Entrant1ID  *int
	Entrant2ID  *int
	Score1      *int
	Score2      *int
	WinnerSlot  *int
	ScheduledAt *time.Time
}

type MatchRepository interface {
	// BulkInsert inserts every match (StageID must already be set) and
	// populates each Match.ID from the returned row.
	BulkInsert(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	// BulkUpdateFields applies each sparse patch inside the caller's
	// transaction. Order is not significant.
	BulkUpdateFields(ctx context.Context, exec SQLExecutor, updates []MatchUpdate) error
	// ListSchedulableByTournament returns every SCHEDULED, unscheduled-time,
	// both-entrants-present match in the tournament, ordered by match id,
	// with StageOrder populated from the owning stage.
	ListSchedulableByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Match, error)
	// ListScheduledTouchingEntrants returns every already-scheduled match in
	// the tournament that involves any of the given entrants — the seed set
	// for the scheduler's reservation tracker.
	ListScheduledTouchingEntrants(ctx context.Context, exec SQLExecutor, tournamentID int, entrantIDs []int) ([]*models.Match, error)
	LockForUpdate(ctx context.Context, exec SQLExecutor, ids []int) ([]*models.Match, error)
	// ListByStage returns every match of one stage, ordered by round then
	// order — the read path for GET /tournaments/{id}/bracket.
	ListByStage(ctx context.Context, exec SQLExecutor, stageID int) ([]*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) BulkInsert(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	query := `
		INSERT INTO matches (stage_id, round_number, order_num, best_of, status, entrant1_id, entrant2_id, score1, score2, winner_slot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	for _, m := range matches {
		row := exec.QueryRowContext(ctx, query,
			m.StageID, m.RoundNumber, m.Order, m.BestOf, m.Status,
			m.Entrant1ID, m.Entrant2ID, m.Score1, m.Score2, m.WinnerSlot,
		)
		if err := row.Scan(&m.ID); err != nil {
			return fmt.Errorf("insert match (stage %d, round %d, order %d): %w", m.StageID, m.RoundNumber, m.Order, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) BulkUpdateFields(ctx context.Context, exec SQLExecutor, updates []MatchUpdate) error {
	for _, u := range updates {
		clauses := make([]string, 0, 7)
		args := make([]interface{}, 0, 7)
		n := 1

		add := func(column string, value interface{}) {
			clauses = append(clauses, fmt.Sprintf("%s = $%d", column, n))
			args = append(args, value)
			n++
		}
		if u.Status != nil {
			add("status", *u.Status)
		}
		if u.Entrant1ID != nil {
			add("entrant1_id", *u.Entrant1ID)
		}
		if u.Entrant2ID != nil {
			add("entrant2_id", *u.Entrant2ID)
		}
		if u.Score1 != nil {
			add("score1", *u.Score1)
		}
		if u.Score2 != nil {
			add("score2", *u.Score2)
		}
		if u.WinnerSlot != nil {
			add("winner_slot", *u.WinnerSlot)
		}
		if u.ScheduledAt != nil {
			add("scheduled_at", *u.ScheduledAt)
		}
		if len(clauses) == 0 {
			continue
		}
		clauses = append(clauses, "updated_at = now()")
		query := fmt.Sprintf(`UPDATE matches SET %s WHERE id = $%d`, strings.Join(clauses, ", "), n)
		args = append(args, u.ID)

		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update match %d: %w", u.ID, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) ListSchedulableByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Match, error) {
	query := `
		SELECT m.id, m.stage_id, m.round_number, m.order_num, m.best_of, m.status,
		       m.entrant1_id, m.entrant2_id, m.score1, m.score2, m.winner_slot,
		       m.scheduled_at, m.created_at, m.updated_at, s.order_num AS stage_order
		FROM matches m
		JOIN stages s ON s.id = m.stage_id
		WHERE s.tournament_id = $1
		  AND m.status = $2
		  AND m.scheduled_at IS NULL
		  AND m.entrant1_id IS NOT NULL
		  AND m.entrant2_id IS NOT NULL
		ORDER BY m.id`
	rows, err := exec.QueryContext(ctx, query, tournamentID, models.MatchScheduled)
	if err != nil {
		return nil, fmt.Errorf("list schedulable matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()
	return scanMatches(rows)
}

func (r *postgresMatchRepository) ListScheduledTouchingEntrants(ctx context.Context, exec SQLExecutor, tournamentID int, entrantIDs []int) ([]*models.Match, error) {
	if len(entrantIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(entrantIDs))
	args := make([]interface{}, 0, len(entrantIDs)+1)
	args = append(args, tournamentID)
	for i, id := range entrantIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}
	inList := strings.Join(placeholders, ", ")
	query := fmt.Sprintf(`
		SELECT m.id, m.stage_id, m.round_number, m.order_num, m.best_of, m.status,
		       m.entrant1_id, m.entrant2_id, m.score1, m.score2, m.winner_slot,
		       m.scheduled_at, m.created_at, m.updated_at, s.order_num AS stage_order
		FROM matches m
		JOIN stages s ON s.id = m.stage_id
		WHERE s.tournament_id = $1
		  AND m.scheduled_at IS NOT NULL
		  AND (m.entrant1_id IN (%s) OR m.entrant2_id IN (%s))
		ORDER BY m.id`, inList, inList)
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scheduled matches touching entrants %v: %w", entrantIDs, err)
	}
	defer rows.Close()
	return scanMatches(rows)
}

func (r *postgresMatchRepository) LockForUpdate(ctx context.Context, exec SQLExecutor, ids []int) ([]*models.Match, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`
		SELECT m.id, m.stage_id, m.round_number, m.order_num, m.best_of, m.status,
		       m.entrant1_id, m.entrant2_id, m.score1, m.score2, m.winner_slot,
		       m.scheduled_at, m.created_at, m.updated_at, s.order_num AS stage_order
		FROM matches m
		JOIN stages s ON s.id = m.stage_id
		WHERE m.id IN (%s)
		ORDER BY m.id
		FOR UPDATE OF m`, strings.Join(placeholders, ", "))
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("lock matches %v: %w", ids, err)
	}
	defer rows.Close()
	return scanMatches(rows)
}

func (r *postgresMatchRepository) ListByStage(ctx context.Context, exec SQLExecutor, stageID int) ([]*models.Match, error) {
	query := `
		SELECT m.id, m.stage_id, m.round_number, m.order_num, m.best_of, m.status,
		       m.entrant1_id, m.entrant2_id, m.score1, m.score2, m.winner_slot,
		       m.scheduled_at, m.created_at, m.updated_at, s.order_num AS stage_order
		FROM matches m
		JOIN stages s ON s.id = m.stage_id
		WHERE m.stage_id = $1
		ORDER BY m.round_number, m.order_num`
	rows, err := exec.QueryContext(ctx, query, stageID)
	if err != nil {
		return nil, fmt.Errorf("list matches for stage %d: %w", stageID, err)
	}
	defer rows.Close()
	return scanMatches(rows)
}

func scanMatches(rows *sql.Rows) ([]*models.Match, error) {
	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID, &m.StageID, &m.RoundNumber, &m.Order, &m.BestOf, &m.Status,
			&m.Entrant1ID, &m.Entrant2ID, &m.Score1, &m.Score2, &m.WinnerSlot,
			&m.ScheduledAt, &m.CreatedAt, &m.UpdatedAt, &m.StageOrder,
		); err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}
		matches = append(matches, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate match rows: %w", err)
	}
	return matches, nil
}
