// Package scheduling implements MatchScheduler: turning a tournament's
// scheduling window and its captains' weekly availability into concrete
// scheduled_at timestamps for every schedulable match.
package scheduling

import "fmt"

// ValidationError is the scheduler's user-facing rejection kind — anything
// from a malformed time window to "could not fit every match" surfaces as
// one of these so StructureBuildTask can downgrade it instead of retrying.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
