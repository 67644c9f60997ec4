// Package handlers is the thin HTTP trigger + read-only view surface (§6.3):
// POST /tournaments/{id}/start, GET /tournaments/{id}, GET
// /tournaments/{id}/bracket, and the build/schedule event websocket.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aoe4tourney/engine/repositories"
	"github.com/aoe4tourney/engine/scheduling"
	"github.com/aoe4tourney/engine/services"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	const maxBytes = 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, status int, message interface{}) {
	if err := writeJSON(w, status, jsonResponse{"error": message}); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func badRequestResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter) {
	errorResponse(w, http.StatusNotFound, "the requested resource could not be found")
}

func conflictResponse(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusConflict, message)
}

func forbiddenResponse(w http.ResponseWriter, message string) {
	errorResponse(w, http.StatusForbidden, message)
}

func serverErrorResponse(w http.ResponseWriter, err error) {
	errorResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
	_ = err // logged by the caller via its own *slog.Logger
}

// mapServiceErrorToHTTP maps the typed errors build_structure and
// schedule_tournament_matches can return to the HTTP status §7 implies.
func mapServiceErrorToHTTP(w http.ResponseWriter, err error) {
	var valErr *services.ValidationError
	var schedValErr *scheduling.ValidationError

	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound), errors.Is(err, services.ErrTournamentNotFound):
		notFoundResponse(w)
	case errors.Is(err, services.ErrTournamentAlreadyStarted):
		conflictResponse(w, err.Error())
	case errors.Is(err, services.ErrStructureAlreadyExists):
		conflictResponse(w, err.Error())
	case errors.Is(err, services.ErrForbidden):
		forbiddenResponse(w, err.Error())
	case errors.As(err, &valErr):
		badRequestResponse(w, err)
	case errors.As(err, &schedValErr):
		badRequestResponse(w, err)
	default:
		serverErrorResponse(w, err)
	}
}
