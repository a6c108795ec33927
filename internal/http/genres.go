package httpserver

import (
	"errors"
	"net/http"

	"github.com/filmoteka-app/filmoteka/internal/repository"
)

type genreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.repo.Genres.List(r.Context())
	if err != nil {
		s.logger.Printf("list genres error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list genres")
		return
	}
	out := make([]genreResponse, 0, len(genres))
	for _, genre := range genres {
		out = append(out, genreResponse{ID: genre.ID, Name: genre.Name})
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	genre, err := s.repo.Genres.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("get genre error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch genre")
		return
	}
	s.respondJSON(w, http.StatusOK, genreResponse{ID: genre.ID, Name: genre.Name})
}
