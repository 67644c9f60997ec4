package models

import "time"

// TournamentStatus mirrors consts.TournamentStatus in the original source.
type TournamentStatus string

const (
	TournamentRegistration TournamentStatus = "REGISTRATION"
	TournamentRunning      TournamentStatus = "RUNNING"
	TournamentFinished     TournamentStatus = "FINISHED"
)

// TournamentVisibility mirrors consts.TournamentVisibility.
type TournamentVisibility string

const (
	VisibilityPublic  TournamentVisibility = "PUBLIC"
	VisibilityPrivate TournamentVisibility = "PRIVATE"
)

// Tournament is the registration-phase container the core turns into a
// populated, scheduled bracket.
type Tournament struct {
	ID         int                  `json:"id" db:"id"`
	Name       string               `json:"name" db:"name"`
	OwnerID    int                  `json:"owner_id" db:"owner_id"`
	TeamSize   int                  `json:"team_size" db:"team_size"`
	Status     TournamentStatus     `json:"status" db:"status"`
	Visibility TournamentVisibility `json:"visibility" db:"visibility"`

	StartsAt time.Time `json:"starts_at" db:"starts_at"`
	EndsAt   time.Time `json:"ends_at" db:"ends_at"`

	// GameGaps is the per-tournament post-match cooldown, in whole minutes.
	GameGaps int `json:"game_gaps" db:"game_gaps"`

	Timestamps
}
