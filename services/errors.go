package services

import "errors"

// Sentinel errors surfaced by StructureBuilder and the thin HTTP surface
// that triggers it.
var (
	// Conflict: tournament state already past the point build_structure can act on.
	ErrTournamentAlreadyStarted = errors.New("tournament already started or finished")
	ErrStructureAlreadyExists   = errors.New("structure already exists")

	// NotFound
	ErrTournamentNotFound = errors.New("tournament not found")

	// Auth/Perm: checked by handlers before a build job is even enqueued.
	ErrForbidden = errors.New("operation not allowed for the current user")
)

// ValidationError is StructureBuilder's user-facing rejection kind — the
// services-layer sibling of brackets.ValidationError and
// scheduling.ValidationError. StructureBuildTask does not downgrade it: it
// propagates out of the task like any other build error, while only a
// scheduling.ValidationError is turned into a {scheduled:0} result.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
