// Package bootstrap wires config, the database connection, every
// repository, the core services, and the job-queue pool exactly once, so
// cmd/server and cmd/worker build the same graph instead of duplicating it.
package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aoe4tourney/engine/config"
	"github.com/aoe4tourney/engine/db"
	"github.com/aoe4tourney/engine/jobqueue"
	"github.com/aoe4tourney/engine/realtime"
	"github.com/aoe4tourney/engine/repositories"
	"github.com/aoe4tourney/engine/scheduling"
	"github.com/aoe4tourney/engine/services"
)

// App holds every wired collaborator a binary needs, regardless of which
// entrypoint (HTTP server, standalone worker) assembles it.
type App struct {
	Config         *config.Config
	DB             *sql.DB
	TournamentRepo repositories.TournamentRepository
	UserRepo       repositories.UserRepository
	StageRepo      repositories.StageRepository
	MatchRepo      repositories.MatchRepository
	EntrantRepo    repositories.EntrantRepository

	Builder       *services.StructureBuilder
	Scheduler     *scheduling.Scheduler
	BuildTask     *services.StructureBuildTask
	BracketLoader *services.BracketViewLoader

	Hub  *realtime.Hub
	Pool *jobqueue.Pool
}

// New loads configuration, connects to the database, and wires every
// collaborator the core (StructureBuilder, Scheduler, StructureBuildTask)
// and its HTTP/job-queue surface need.
func New(logger *slog.Logger) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, cfg.DBConnTimeout, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	loc, err := time.LoadLocation(cfg.SchedulingTZ)
	if err != nil {
		return nil, fmt.Errorf("load scheduling timezone %q: %w", cfg.SchedulingTZ, err)
	}

	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	stageRepo := repositories.NewPostgresStageRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	entrantRepo := repositories.NewPostgresEntrantRepository(dbConn)
	entrantMemberRepo := repositories.NewPostgresEntrantMemberRepository(dbConn)
	availabilityRepo := repositories.NewPostgresAvailabilityRepository(dbConn)

	builder := services.NewStructureBuilder(dbConn, tournamentRepo, stageRepo, entrantRepo, matchRepo, logger)
	scheduler := scheduling.NewScheduler(dbConn, tournamentRepo, matchRepo, entrantMemberRepo, availabilityRepo, loc, logger)
	buildTask := services.NewStructureBuildTask(builder, scheduler, logger)
	bracketLoader := services.NewBracketViewLoader(dbConn, tournamentRepo, stageRepo, matchRepo, logger)

	hub := realtime.NewHub(logger)
	pool := jobqueue.NewPool(cfg.JobPoolWorkers, cfg.JobQueueSize, dbConn, buildTask, hub, logger)

	return &App{
		Config:         cfg,
		DB:             dbConn,
		TournamentRepo: tournamentRepo,
		UserRepo:       userRepo,
		StageRepo:      stageRepo,
		MatchRepo:      matchRepo,
		EntrantRepo:    entrantRepo,
		Builder:        builder,
		Scheduler:      scheduler,
		BuildTask:      buildTask,
		BracketLoader:  bracketLoader,
		Hub:            hub,
		Pool:           pool,
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
