package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmoteka-app/filmoteka/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// ErrActorLinked rejects deleting an actor still referenced by movies. It is
// distinct from storage failures so callers can surface it as a user-facing
// conflict rather than an internal error.
var ErrActorLinked = errors.New("repository: actor linked to movies")

// Options tunes repository behaviour.
type Options struct {
	// ActorSearchMinPrefix is the minimum prefix length before actor search
	// queries the database. Shorter prefixes return an empty result.
	ActorSearchMinPrefix int
}

// Repository aggregates all entity-specific repositories over one shared pool.
type Repository struct {
	Actors *ActorRepository
	Genres *GenreRepository
	Movies *MovieRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store, opts Options) *Repository {
	return NewWithPool(st.Pool(), opts)
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool, opts Options) *Repository {
	minPrefix := opts.ActorSearchMinPrefix
	if minPrefix <= 0 {
		minPrefix = 3
	}
	return &Repository{
		Actors: &ActorRepository{pool: pool, minPrefix: minPrefix},
		Genres: &GenreRepository{pool: pool},
		Movies: &MovieRepository{pool: pool},
	}
}
