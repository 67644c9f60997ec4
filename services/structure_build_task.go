package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aoe4tourney/engine/models"
	"github.com/aoe4tourney/engine/scheduling"
)

// SchedulingResult is the nested scheduling outcome inside TaskResult,
// mirroring MatchScheduler.Schedule's own Result shape.
type SchedulingResult struct {
	TournamentID int `json:"tournament_id"`
	Scheduled    int `json:"scheduled"`
	Skipped      int `json:"skipped"`
}

// TaskResult is the async job's merged return value:
// {tournament_id, stage_id, matches_created, scheduling:{...}}.
type TaskResult struct {
	TournamentID   int               `json:"tournament_id"`
	StageID        int               `json:"stage_id"`
	MatchesCreated int               `json:"matches_created"`
	Scheduling     SchedulingResult  `json:"scheduling"`
}

// structureBuilder is the subset of StructureBuilder the task depends on,
// declared here so tests can substitute a DB-free fake.
type structureBuilder interface {
	Build(ctx context.Context, tournamentID int, format models.StageType) (*BuildResult, error)
}

// matchScheduler is the subset of scheduling.Scheduler the task depends on.
type matchScheduler interface {
	Schedule(ctx context.Context, tournamentID int) (*scheduling.Result, error)
}

// StructureBuildTask is the retry-bearing async job (§4.6): build_structure
// then schedule_tournament_matches. A scheduling.ValidationError is
// tolerated — the structure still exists, just with unscheduled matches —
// everything else propagates so jobqueue.Pool retries the whole task.
type StructureBuildTask struct {
	Builder   structureBuilder
	Scheduler matchScheduler
	Logger    *slog.Logger
}

func NewStructureBuildTask(builder *StructureBuilder, scheduler *scheduling.Scheduler, logger *slog.Logger) *StructureBuildTask {
	return &StructureBuildTask{Builder: builder, Scheduler: scheduler, Logger: logger}
}

// Run implements the job body invoked by jobqueue.Pool for one BuildJob.
//
// A retry delivered after the structure already exists is not an error: the
// builder aborts on its own idempotency guard, and the scheduler still runs
// against whatever matches from the earlier attempt remain unscheduled.
func (t *StructureBuildTask) Run(ctx context.Context, tournamentID int, format models.StageType) (*TaskResult, error) {
	built, err := t.Builder.Build(ctx, tournamentID, format)
	if err != nil {
		if !errors.Is(err, ErrStructureAlreadyExists) {
			return nil, err
		}
		t.Logger.InfoContext(ctx, "structure already exists, scheduling existing matches",
			slog.Int("tournament_id", tournamentID))
		built = &BuildResult{TournamentID: tournamentID}
	}

	scheduled, err := t.Scheduler.Schedule(ctx, tournamentID)
	if err != nil {
		var valErr *scheduling.ValidationError
		if errors.As(err, &valErr) {
			t.Logger.InfoContext(ctx, "scheduling left matches unscheduled",
				slog.Int("tournament_id", tournamentID), slog.String("reason", valErr.Message))
			return &TaskResult{
				TournamentID:   built.TournamentID,
				StageID:        built.StageID,
				MatchesCreated: built.MatchesCreated,
				Scheduling:     SchedulingResult{TournamentID: tournamentID, Scheduled: 0, Skipped: 0},
			}, nil
		}
		return nil, err
	}

	return &TaskResult{
		TournamentID:   built.TournamentID,
		StageID:        built.StageID,
		MatchesCreated: built.MatchesCreated,
		Scheduling:     SchedulingResult{TournamentID: scheduled.TournamentID, Scheduled: scheduled.Scheduled, Skipped: scheduled.Skipped},
	}, nil
}
