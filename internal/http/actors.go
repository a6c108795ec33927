package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/filmoteka-app/filmoteka/internal/domain"
	"github.com/filmoteka-app/filmoteka/internal/repository"
)

type actorRequest struct {
	Name string `json:"name"`
}

type actorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleListActors(w http.ResponseWriter, r *http.Request) {
	actors, err := s.repo.Actors.List(r.Context())
	if err != nil {
		s.logger.Printf("list actors error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list actors")
		return
	}
	s.respondJSON(w, http.StatusOK, toActorResponses(actors))
}

// handleSearchActors backs autocomplete: ?prefix= is matched
// case-insensitively against the start of actor names. Prefixes below the
// configured minimum come back as an empty list.
func (s *Server) handleSearchActors(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	actors, err := s.repo.Actors.SearchByPrefix(r.Context(), prefix)
	if err != nil {
		s.logger.Printf("search actors error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to search actors")
		return
	}
	s.respondJSON(w, http.StatusOK, toActorResponses(actors))
}

func (s *Server) handleCreateActor(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req actorRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required")
		return
	}

	actor, err := s.repo.Actors.Create(r.Context(), name)
	if err != nil {
		s.logger.Printf("create actor error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create actor")
		return
	}
	s.respondJSON(w, http.StatusCreated, actorResponse{ID: actor.ID, Name: actor.Name})
}

func (s *Server) handleGetActor(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	actor, err := s.repo.Actors.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("get actor error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch actor")
		return
	}
	s.respondJSON(w, http.StatusOK, actorResponse{ID: actor.ID, Name: actor.Name})
}

func (s *Server) handleUpdateActor(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	id, err := decodeIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var req actorRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required")
		return
	}

	ok, err := s.repo.Actors.Update(r.Context(), domain.Actor{ID: id, Name: name})
	if err != nil {
		s.logger.Printf("update actor error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update actor")
		return
	}
	if !ok {
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}
	s.respondJSON(w, http.StatusOK, actorResponse{ID: id, Name: name})
}

func (s *Server) handleDeleteActor(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	id, err := decodeIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	ok, err := s.repo.Actors.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrActorLinked) {
			s.respondError(w, http.StatusConflict, "ACTOR_LINKED", "Actor is referenced by movies and cannot be deleted")
			return
		}
		s.logger.Printf("delete actor error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete actor")
		return
	}
	if !ok {
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toActorResponses(actors []domain.Actor) []actorResponse {
	out := make([]actorResponse, 0, len(actors))
	for _, actor := range actors {
		out = append(out, actorResponse{ID: actor.ID, Name: actor.Name})
	}
	return out
}
