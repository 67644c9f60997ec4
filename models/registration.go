package models

import "time"

// The types below belong to the registration-phase surface (§1, §3): the
// core never writes them and reads only EntrantMember (for captains) and
// UserAvailability. They are kept here, minimally, so the HTTP surface in
// handlers/ has something to read for ownership checks and so the data
// model in §3 is fully represented, exactly as the teacher keeps sibling
// entities like Sport/Format alongside the ones its services actively use.

type TournamentParticipant struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	UserID       int       `json:"user_id" db:"user_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type TournamentAdmin struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	UserID       int       `json:"user_id" db:"user_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type TeamJoinRequestStatus string

const (
	JoinRequestPending  TeamJoinRequestStatus = "PENDING"
	JoinRequestAccepted TeamJoinRequestStatus = "ACCEPTED"
	JoinRequestRejected TeamJoinRequestStatus = "REJECTED"
	JoinRequestCanceled TeamJoinRequestStatus = "CANCELED"
)

type TeamJoinRequest struct {
	ID           int                    `json:"id" db:"id"`
	TournamentID int                    `json:"tournament_id" db:"tournament_id"`
	EntrantID    int                    `json:"entrant_id" db:"entrant_id"`
	RequesterID  int                    `json:"requester_id" db:"requester_id"`
	Status       TeamJoinRequestStatus  `json:"status" db:"status"`
	RespondedAt  *time.Time             `json:"responded_at,omitempty" db:"responded_at"`

	Timestamps
}

type TournamentInvite struct {
	ID           int        `json:"id" db:"id"`
	TournamentID int        `json:"tournament_id" db:"tournament_id"`
	Token        string     `json:"-" db:"token"`
	CreatedByID  *int       `json:"created_by_id,omitempty" db:"created_by_id"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	MaxUses      *int       `json:"max_uses,omitempty" db:"max_uses"`
	Uses         int        `json:"uses" db:"uses"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty" db:"expires_at"`

	Timestamps
}

// User is the minimal user record the core and its HTTP surface need:
// identity for owner/admin/captain checks. Full profile management,
// AoE4World sync, and avatar storage stay out of scope per §1.
type User struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	IsStaff      bool   `json:"is_staff" db:"is_staff"`

	Timestamps
}
