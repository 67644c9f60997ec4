package models

import "time"

// MatchStatus mirrors consts.MatchStatus.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "SCHEDULED"
	MatchLive      MatchStatus = "LIVE"
	MatchFinished  MatchStatus = "FINISHED"
	MatchCanceled  MatchStatus = "CANCELED"
)

// Match belongs to a stage; (stage, round_number, order) is unique within it.
// Entrant1/Entrant2 are both nullable (round-1 byes, later-round shells
// waiting on an earlier winner) but when both present must differ.
type Match struct {
	ID          int         `json:"id" db:"id"`
	StageID     int         `json:"stage_id" db:"stage_id"`
	RoundNumber int         `json:"round_number" db:"round_number"`
	Order       int         `json:"order" db:"order"`
	BestOf      int         `json:"best_of" db:"best_of"`
	Status      MatchStatus `json:"status" db:"status"`

	Entrant1ID *int `json:"entrant1_id,omitempty" db:"entrant1_id"`
	Entrant2ID *int `json:"entrant2_id,omitempty" db:"entrant2_id"`

	Score1     int  `json:"score1" db:"score1"`
	Score2     int  `json:"score2" db:"score2"`
	WinnerSlot *int `json:"winner_slot,omitempty" db:"winner_slot"`

	ScheduledAt *time.Time `json:"scheduled_at,omitempty" db:"scheduled_at"`

	// StageOrder is denormalized onto the row at read time by
	// repositories.MatchRepository for the scheduler's ordering heuristic
	// (§4.5.7); it is never persisted on the matches table itself.
	StageOrder int `json:"-" db:"-"`

	Timestamps
}

// IsBye reports whether this match has exactly one entrant present — the
// definition of a round-1 bye per the GLOSSARY.
func (m *Match) IsBye() bool {
	return (m.Entrant1ID == nil) != (m.Entrant2ID == nil)
}
