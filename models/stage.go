package models

import "encoding/json"

// StageType mirrors consts.StageType.
type StageType string

const (
	StageLeague      StageType = "LEAGUE"
	StageSingleElim  StageType = "SINGLE_ELIM"
)

// Stage is one phase of a tournament, containing matches of one format.
// Order is unique within a tournament; this engine only ever creates order=0
// (a tournament has exactly one stage, per §4.4), but the column is kept
// since the original model allows multiple stages per tournament.
type Stage struct {
	ID             int             `json:"id" db:"id"`
	TournamentID   int             `json:"tournament_id" db:"tournament_id"`
	Type           StageType       `json:"type" db:"type"`
	Order          int             `json:"order" db:"order"`
	BestOfDefault  int             `json:"best_of_default" db:"best_of_default"`
	Config         json.RawMessage `json:"config" db:"config"`

	Timestamps
}

// LeagueConfig is the Stage.Config shape for StageLeague.
type LeagueConfig struct {
	Points struct {
		Win  int `json:"win"`
		Loss int `json:"loss"`
	} `json:"points"`
	Tiebreakers []string `json:"tiebreakers"`
}

// SingleElimConfig is the Stage.Config shape for StageSingleElim.
type SingleElimConfig struct {
	BracketSize int `json:"bracket_size"`
}
