package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aoe4tourney/engine/models"
	"github.com/aoe4tourney/engine/scheduling"
)

type fakeBuilder struct {
	result *BuildResult
	err    error
}

func (f *fakeBuilder) Build(ctx context.Context, tournamentID int, format models.StageType) (*BuildResult, error) {
	return f.result, f.err
}

type fakeScheduler struct {
	result *scheduling.Result
	err    error
}

func (f *fakeScheduler) Schedule(ctx context.Context, tournamentID int) (*scheduling.Result, error) {
	return f.result, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStructureBuildTaskHappyPath(t *testing.T) {
	task := &StructureBuildTask{
		Builder:   &fakeBuilder{result: &BuildResult{TournamentID: 1, StageID: 9, MatchesCreated: 3}},
		Scheduler: &fakeScheduler{result: &scheduling.Result{TournamentID: 1, Scheduled: 3, Skipped: 0}},
		Logger:    discardLogger(),
	}
	result, err := task.Run(context.Background(), 1, models.StageLeague)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.StageID != 9 || result.MatchesCreated != 3 || result.Scheduling.Scheduled != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestStructureBuildTaskTolerateSchedulingValidationError(t *testing.T) {
	task := &StructureBuildTask{
		Builder:   &fakeBuilder{result: &BuildResult{TournamentID: 1, StageID: 9, MatchesCreated: 5}},
		Scheduler: &fakeScheduler{err: &scheduling.ValidationError{Message: "Could not schedule all matches within tournament time range"}},
		Logger:    discardLogger(),
	}
	result, err := task.Run(context.Background(), 1, models.StageLeague)
	if err != nil {
		t.Fatalf("Run should swallow scheduling.ValidationError, got %v", err)
	}
	if result.Scheduling.Scheduled != 0 || result.Scheduling.Skipped != 0 {
		t.Fatalf("expected scheduled=0 skipped=0, got %+v", result.Scheduling)
	}
	if result.MatchesCreated != 5 {
		t.Fatalf("matches_created should survive from the build step, got %d", result.MatchesCreated)
	}
}

func TestStructureBuildTaskPropagatesOtherSchedulingErrors(t *testing.T) {
	task := &StructureBuildTask{
		Builder:   &fakeBuilder{result: &BuildResult{TournamentID: 1}},
		Scheduler: &fakeScheduler{err: errors.New("connection reset")},
		Logger:    discardLogger(),
	}
	if _, err := task.Run(context.Background(), 1, models.StageLeague); err == nil {
		t.Fatal("expected non-validation scheduling error to propagate for retry")
	}
}

func TestStructureBuildTaskRunsSchedulerWhenStructureAlreadyExists(t *testing.T) {
	task := &StructureBuildTask{
		Builder:   &fakeBuilder{err: ErrStructureAlreadyExists},
		Scheduler: &fakeScheduler{result: &scheduling.Result{TournamentID: 4, Scheduled: 2, Skipped: 0}},
		Logger:    discardLogger(),
	}
	result, err := task.Run(context.Background(), 4, models.StageSingleElim)
	if err != nil {
		t.Fatalf("a retry after the structure already exists must still schedule, got error: %v", err)
	}
	if result.Scheduling.Scheduled != 2 {
		t.Fatalf("expected the scheduler to run against existing matches, got %+v", result.Scheduling)
	}
}

func TestStructureBuildTaskPropagatesOtherBuildErrors(t *testing.T) {
	task := &StructureBuildTask{
		Builder:   &fakeBuilder{err: ErrTournamentAlreadyStarted},
		Scheduler: &fakeScheduler{},
		Logger:    discardLogger(),
	}
	if _, err := task.Run(context.Background(), 1, models.StageLeague); !errors.Is(err, ErrTournamentAlreadyStarted) {
		t.Fatalf("expected ErrTournamentAlreadyStarted to propagate, got %v", err)
	}
}
