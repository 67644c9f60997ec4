package models

// EntrantStatus mirrors consts.EntrantStatus.
type EntrantStatus string

const (
	EntrantActive       EntrantStatus = "ACTIVE"
	EntrantDropped      EntrantStatus = "DROPPED"
	EntrantDisqualified EntrantStatus = "DISQUALIFIED"
)

// Entrant is the unit that plays a match: a solo player when the
// tournament's team_size is 1, otherwise a named team of members with
// exactly one captain.
type Entrant struct {
	ID           int           `json:"id" db:"id"`
	TournamentID int           `json:"tournament_id" db:"tournament_id"`
	Name         string        `json:"name" db:"name"`
	Status       EntrantStatus `json:"status" db:"status"`

	// MemberCount is a computed, not a stored, column — distinct memberships
	// for this entrant, used by StructureBuilder to prune incomplete teams.
	MemberCount int `json:"member_count,omitempty" db:"-"`

	Timestamps
}

// EntrantMember is the (entrant, user) membership row. At most one member
// per entrant may have IsCaptain set; the database enforces this with a
// partial unique index, matching uniq_tournament_entrant_captain.
type EntrantMember struct {
	ID        int  `json:"id" db:"id"`
	EntrantID int  `json:"entrant_id" db:"entrant_id"`
	UserID    int  `json:"user_id" db:"user_id"`
	IsCaptain bool `json:"is_captain" db:"is_captain"`

	Timestamps
}
