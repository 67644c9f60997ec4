package jobqueue

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/aoe4tourney/engine/db"
	"github.com/aoe4tourney/engine/models"
	"github.com/aoe4tourney/engine/realtime"
	"github.com/aoe4tourney/engine/services"
)

// BuildJob is one unit of work: build a tournament's stage and schedule its
// matches, as triggered by POST /tournaments/{id}/start.
type BuildJob struct {
	TaskID       string
	TournamentID int
	Format       models.StageType
}

const (
	maxAttempts  = 6 // one initial attempt plus up to 5 retries
	initialDelay = 500 * time.Millisecond
)

// Pool is the async job-queue + worker pool (§6.2): a buffered channel fed
// by the HTTP handler, drained by a small set of worker goroutines. Grounded
// on the teacher's websocket Hub — the same single-purpose goroutine loop
// idiom, generalized from broadcasting connections to draining jobs.
type Pool struct {
	jobs   chan BuildJob
	quit   chan struct{}
	db     *sql.DB
	task   *services.StructureBuildTask
	hub    *realtime.Hub
	logger *slog.Logger

	workers int
}

func NewPool(workers, queueSize int, sqlDB *sql.DB, task *services.StructureBuildTask, hub *realtime.Hub, logger *slog.Logger) *Pool {
	return &Pool{
		jobs:    make(chan BuildJob, queueSize),
		quit:    make(chan struct{}),
		db:      sqlDB,
		task:    task,
		hub:     hub,
		logger:  logger,
		workers: workers,
	}
}

// Start spawns the pool's worker goroutines. Call once.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
}

// Stop signals every worker to exit after its current job.
func (p *Pool) Stop() {
	close(p.quit)
}

// Enqueue submits a job without blocking; it reports false if the queue is
// full, matching the job-queue's "at-least-once, best-effort delivery"
// contract — the caller (an HTTP handler) should surface a 503 on false.
func (p *Pool) Enqueue(job BuildJob) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	p.logger.Info("job worker started", slog.Int("worker_id", id))
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.quit:
			return
		case job := <-p.jobs:
			p.process(ctx, job)
		}
	}
}

// process runs a job once and retries it up to 5 more times with exponential
// backoff, per §6.2/§7's retry contract. A scheduling.ValidationError never
// reaches here as an error — StructureBuildTask.Run already downgrades it to
// a {scheduled:0} result. Every other error, including a build-step
// rejection such as an already-started tournament, fails the attempt and is
// retried.
func (p *Pool) process(ctx context.Context, job BuildJob) {
	delay := initialDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if p.attempt(ctx, job) {
			return
		}
		if attempt == maxAttempts {
			p.logger.Error("build job exhausted retries", slog.String("task_id", job.TaskID), slog.Int("tournament_id", job.TournamentID))
			p.hub.BroadcastToRoom(job.TournamentID, realtime.EventBuildFailed, map[string]any{"task_id": job.TaskID})
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// attempt runs the task once under a per-tournament advisory lock, so a
// duplicate delivery of the same job never races build_structure against
// itself. A lock that's already held by another worker is treated as
// success-without-work, not a failure — nothing about the job failed, it's
// simply already being processed.
func (p *Pool) attempt(ctx context.Context, job BuildJob) bool {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		p.logger.Error("begin job lock transaction", slog.Any("error", err))
		return false
	}

	acquired, err := db.TryAcquireTransactionalLock(ctx, tx, int64(job.TournamentID), p.logger)
	if err != nil {
		_ = tx.Rollback()
		return false
	}
	if !acquired {
		_ = tx.Rollback()
		p.logger.Info("build job already in flight, skipping duplicate", slog.Int("tournament_id", job.TournamentID))
		return true
	}

	result, runErr := p.task.Run(ctx, job.TournamentID, job.Format)
	if runErr != nil {
		_ = tx.Rollback()
		p.logger.Error("build job attempt failed", slog.String("task_id", job.TaskID), slog.Any("error", runErr))
		return false
	}
	if cErr := tx.Commit(); cErr != nil {
		p.logger.Error("commit job lock transaction", slog.Any("error", cErr))
		return false
	}

	p.hub.BroadcastToRoom(job.TournamentID, realtime.EventStructureBuilt, result)
	if result.Scheduling.Scheduled > 0 {
		p.hub.BroadcastToRoom(job.TournamentID, realtime.EventMatchesScheduled, result.Scheduling)
	}
	return true
}
