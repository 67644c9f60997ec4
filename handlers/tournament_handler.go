package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aoe4tourney/engine/jobqueue"
	"github.com/aoe4tourney/engine/middleware"
	"github.com/aoe4tourney/engine/models"
	"github.com/aoe4tourney/engine/repositories"
	"github.com/aoe4tourney/engine/services"
)

// TournamentHandler serves the three HTTP surface endpoints §6.3 names: the
// start trigger and the two read-only views.
type TournamentHandler struct {
	DB             *sql.DB
	TournamentRepo repositories.TournamentRepository
	UserRepo       repositories.UserRepository
	BracketLoader  *services.BracketViewLoader
	Pool           *jobqueue.Pool
	Logger         *slog.Logger
}

func NewTournamentHandler(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
	bracketLoader *services.BracketViewLoader,
	pool *jobqueue.Pool,
	logger *slog.Logger,
) *TournamentHandler {
	return &TournamentHandler{
		DB:             db,
		TournamentRepo: tournamentRepo,
		UserRepo:       userRepo,
		BracketLoader:  bracketLoader,
		Pool:           pool,
		Logger:         logger,
	}
}

type startTournamentInput struct {
	Format models.StageType `json:"format"`
}

// Start handles POST /tournaments/{id}/start: verifies the caller owns or
// administers the tournament, enqueues a BuildJob, and returns 202 with a
// task id the client can correlate with the websocket's build-job events.
func (h *TournamentHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tournamentID, err := tournamentIDParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		forbiddenResponse(w, err.Error())
		return
	}

	var input startTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if input.Format != models.StageLeague && input.Format != models.StageSingleElim {
		badRequestResponse(w, errors.New(`format must be "LEAGUE" or "SINGLE_ELIM"`))
		return
	}

	isAdmin, err := h.UserRepo.IsTournamentAdmin(ctx, h.DB, tournamentID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	if !isAdmin {
		forbiddenResponse(w, services.ErrForbidden.Error())
		return
	}

	taskID := strconv.Itoa(tournamentID) + "-" + strconv.FormatInt(time.Now().UnixNano(), 10)
	job := jobqueue.BuildJob{TaskID: taskID, TournamentID: tournamentID, Format: input.Format}
	if !h.Pool.Enqueue(job) {
		h.Logger.ErrorContext(ctx, "build job queue full", slog.Int("tournament_id", tournamentID))
		errorResponse(w, http.StatusServiceUnavailable, "build queue is full, try again shortly")
		return
	}

	_ = writeJSON(w, http.StatusAccepted, jsonResponse{"task_id": taskID})
}

// Get handles GET /tournaments/{id}: the plain tournament record, for
// polling its status while a build job runs.
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := tournamentIDParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	tournament, err := h.TournamentRepo.GetByID(r.Context(), h.DB, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, tournament)
}

// GetBracket handles GET /tournaments/{id}/bracket.
func (h *TournamentHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := tournamentIDParam(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	view, err := h.BracketLoader.Load(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, view)
}

func tournamentIDParam(r *http.Request) (int, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid tournament id")
	}
	return id, nil
}
