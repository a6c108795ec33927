package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/filmoteka-app/filmoteka/internal/domain"
	"github.com/filmoteka-app/filmoteka/internal/metadata"
	"github.com/filmoteka-app/filmoteka/internal/repository"
)

type movieRequest struct {
	Title           string  `json:"title"`
	ReleaseYear     int     `json:"releaseYear"`
	Director        string  `json:"director"`
	Writer          string  `json:"writer"`
	Producer        string  `json:"producer"`
	Cinematographer string  `json:"cinematographer"`
	Budget          int64   `json:"budget"`
	Country         string  `json:"country"`
	ActorIDs        []int64 `json:"actorIds"`
	GenreIDs        []int64 `json:"genreIds"`
}

type movieResponse struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	ReleaseYear     int     `json:"releaseYear"`
	Director        string  `json:"director"`
	Writer          string  `json:"writer"`
	Producer        string  `json:"producer"`
	Cinematographer string  `json:"cinematographer"`
	Budget          int64   `json:"budget"`
	Country         string  `json:"country"`
	ActorIDs        []int64 `json:"actorIds"`
	GenreIDs        []int64 `json:"genreIds"`
}

type movieListResponse struct {
	Items      []movieResponse `json:"items"`
	NextCursor *string         `json:"nextCursor,omitempty"`
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	filters, err := buildMovieFilters(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	result, err := s.repo.Movies.List(r.Context(), filters)
	if err != nil {
		s.logger.Printf("list movies error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies")
		return
	}

	items := make([]movieResponse, 0, len(result.Items))
	for _, movie := range result.Items {
		items = append(items, toMovieResponse(movie))
	}
	s.respondJSON(w, http.StatusOK, movieListResponse{Items: items, NextCursor: result.NextCursor})
}

func buildMovieFilters(query url.Values) (repository.MovieListFilters, error) {
	var filters repository.MovieListFilters

	if q := strings.TrimSpace(query.Get("q")); q != "" {
		filters.Query = &q
	}
	if val := strings.TrimSpace(query.Get("year")); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil {
			return filters, fmt.Errorf("invalid year value")
		}
		filters.Year = &year
	}
	if val := strings.TrimSpace(query.Get("limit")); val != "" {
		limit, err := strconv.Atoi(val)
		if err != nil {
			return filters, fmt.Errorf("invalid limit value")
		}
		filters.Limit = limit
	}
	if val := strings.TrimSpace(query.Get("cursor")); val != "" {
		cursor, err := repository.DecodeCursor(val)
		if err != nil {
			return filters, fmt.Errorf("invalid cursor")
		}
		filters.Cursor = cursor
	}
	return filters, nil
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req movieRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if msg, ok := validateMovieRequest(req); !ok {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", msg)
		return
	}

	params := repository.MovieCreateParams{
		Title:           strings.TrimSpace(req.Title),
		ReleaseYear:     req.ReleaseYear,
		Director:        strings.TrimSpace(req.Director),
		Writer:          strings.TrimSpace(req.Writer),
		Producer:        strings.TrimSpace(req.Producer),
		Cinematographer: strings.TrimSpace(req.Cinematographer),
		Budget:          req.Budget,
		Country:         strings.TrimSpace(req.Country),
		ActorIDs:        req.ActorIDs,
		GenreIDs:        req.GenreIDs,
	}

	movie, err := s.repo.Movies.Create(r.Context(), params)
	if err != nil {
		s.logger.Printf("create movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create movie")
		return
	}

	movie = s.enrichMovieFromMetadata(r.Context(), movie)

	w.Header().Set("Location", fmt.Sprintf("/movies/%d", movie.ID))
	s.respondJSON(w, http.StatusCreated, toMovieResponse(movie))
}

// enrichMovieFromMetadata fills crew and country fields the user left blank
// with values from the metadata upstream. Lookup failures only cost the
// enrichment, never the create.
func (s *Server) enrichMovieFromMetadata(ctx context.Context, movie domain.Movie) domain.Movie {
	if s.metadata == nil {
		return movie
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.MetadataTimeoutSecs)*time.Second)
	defer cancel()

	result, err := s.metadata.Fetch(ctx, movie.Title)
	if err != nil {
		if !errors.Is(err, metadata.ErrNotFound) {
			s.logger.Printf("metadata fetch failed for %q: %v", movie.Title, err)
		}
		return movie
	}

	enriched := movie
	fillString(&enriched.Director, result.Director)
	fillString(&enriched.Writer, result.Writer)
	fillString(&enriched.Producer, result.Producer)
	fillString(&enriched.Cinematographer, result.Cinematographer)
	fillString(&enriched.Country, result.Country)
	if enriched.Budget == 0 && result.Budget != nil {
		enriched.Budget = *result.Budget
	}
	if !scalarChanged(movie, enriched) {
		return movie
	}

	if _, err := s.repo.Movies.Update(ctx, enriched); err != nil {
		s.logger.Printf("persist metadata enrichment failed: %v", err)
		return movie
	}
	return enriched
}

func fillString(dst *string, src *string) {
	if *dst == "" && src != nil {
		*dst = *src
	}
}

func scalarChanged(before, after domain.Movie) bool {
	return before.Director != after.Director ||
		before.Writer != after.Writer ||
		before.Producer != after.Producer ||
		before.Cinematographer != after.Cinematographer ||
		before.Country != after.Country ||
		before.Budget != after.Budget
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movie, err := s.repo.Movies.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("get movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movie")
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	id, err := decodeIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var req movieRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if msg, ok := validateMovieRequest(req); !ok {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", msg)
		return
	}

	movie := domain.Movie{
		ID:              id,
		Title:           strings.TrimSpace(req.Title),
		ReleaseYear:     req.ReleaseYear,
		Director:        strings.TrimSpace(req.Director),
		Writer:          strings.TrimSpace(req.Writer),
		Producer:        strings.TrimSpace(req.Producer),
		Cinematographer: strings.TrimSpace(req.Cinematographer),
		Budget:          req.Budget,
		Country:         strings.TrimSpace(req.Country),
		ActorIDs:        req.ActorIDs,
		GenreIDs:        req.GenreIDs,
	}

	ok, err := s.repo.Movies.Update(r.Context(), movie)
	if err != nil {
		s.logger.Printf("update movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update movie")
		return
	}
	if !ok {
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}

	updated, err := s.repo.Movies.GetByID(r.Context(), id)
	if err != nil {
		s.logger.Printf("reload movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update movie")
		return
	}
	s.respondJSON(w, http.StatusOK, toMovieResponse(updated))
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	id, err := decodeIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	ok, err := s.repo.Movies.Delete(r.Context(), id)
	if err != nil {
		s.logger.Printf("delete movie error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete movie")
		return
	}
	if !ok {
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateMovieRequest(req movieRequest) (string, bool) {
	if strings.TrimSpace(req.Title) == "" {
		return "title is required", false
	}
	if req.ReleaseYear < 0 {
		return "releaseYear must be non-negative", false
	}
	if req.Budget < 0 {
		return "budget must be non-negative", false
	}
	for _, id := range req.ActorIDs {
		if id < 1 {
			return "actorIds must be positive", false
		}
	}
	for _, id := range req.GenreIDs {
		if id < 1 {
			return "genreIds must be positive", false
		}
	}
	return "", true
}

func toMovieResponse(movie domain.Movie) movieResponse {
	resp := movieResponse{
		ID:              movie.ID,
		Title:           movie.Title,
		ReleaseYear:     movie.ReleaseYear,
		Director:        movie.Director,
		Writer:          movie.Writer,
		Producer:        movie.Producer,
		Cinematographer: movie.Cinematographer,
		Budget:          movie.Budget,
		Country:         movie.Country,
		ActorIDs:        movie.ActorIDs,
		GenreIDs:        movie.GenreIDs,
	}
	if resp.ActorIDs == nil {
		resp.ActorIDs = []int64{}
	}
	if resp.GenreIDs == nil {
		resp.GenreIDs = []int64{}
	}
	return resp
}
