package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmoteka-app/filmoteka/internal/domain"
)

// ActorRepository provides persistence for actors. Names are not unique;
// creating the same name twice yields two distinct rows.
type ActorRepository struct {
	pool      *pgxpool.Pool
	minPrefix int
}

// Create inserts a new actor and returns it with the generated id.
func (r *ActorRepository) Create(ctx context.Context, name string) (domain.Actor, error) {
	var actor domain.Actor
	err := r.pool.QueryRow(ctx, `INSERT INTO actors (name) VALUES ($1) RETURNING id, name`, name).
		Scan(&actor.ID, &actor.Name)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("insert actor: %w", err)
	}
	return actor, nil
}

// GetByID fetches an actor by id, returning ErrNotFound for a missing row.
func (r *ActorRepository) GetByID(ctx context.Context, id int64) (domain.Actor, error) {
	var actor domain.Actor
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM actors WHERE id = $1`, id).
		Scan(&actor.ID, &actor.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Actor{}, ErrNotFound
		}
		return domain.Actor{}, err
	}
	return actor, nil
}

// GetByName fetches the first actor matching the exact name.
func (r *ActorRepository) GetByName(ctx context.Context, name string) (domain.Actor, error) {
	var actor domain.Actor
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM actors WHERE name = $1 ORDER BY id LIMIT 1`, name).
		Scan(&actor.ID, &actor.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Actor{}, ErrNotFound
		}
		return domain.Actor{}, err
	}
	return actor, nil
}

// Update overwrites the actor's name. A missing id is a no-op reported as
// (false, nil).
func (r *ActorRepository) Update(ctx context.Context, actor domain.Actor) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE actors SET name = $2 WHERE id = $1`, actor.ID, actor.Name)
	if err != nil {
		return false, fmt.Errorf("update actor: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes an actor unless any movie still references it, in which case
// it fails with ErrActorLinked and leaves the row in place. The reference
// check and the delete run in one transaction. A missing id yields
// (false, nil).
func (r *ActorRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin delete actor: %w", err)
	}
	defer tx.Rollback(ctx)

	var linked int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM movie_actors WHERE actor_id = $1`, id).Scan(&linked); err != nil {
		return false, fmt.Errorf("count actor links: %w", err)
	}
	if linked > 0 {
		return false, ErrActorLinked
	}

	tag, err := tx.Exec(ctx, `DELETE FROM actors WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete actor: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit delete actor: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List returns every actor ordered by name.
func (r *ActorRepository) List(ctx context.Context) ([]domain.Actor, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM actors ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActors(rows)
}

// SearchByPrefix returns actors whose name starts with prefix,
// case-insensitively. Prefixes shorter than the configured minimum skip the
// database entirely and return an empty result; interactive autocomplete
// calls this on every keystroke.
func (r *ActorRepository) SearchByPrefix(ctx context.Context, prefix string) ([]domain.Actor, error) {
	prefix = strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) < r.minPrefix {
		return []domain.Actor{}, nil
	}

	pattern := escapeLike(prefix) + "%"
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM actors WHERE name ILIKE $1 ESCAPE '\' ORDER BY name, id`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActors(rows)
}

func collectActors(rows pgx.Rows) ([]domain.Actor, error) {
	actors := make([]domain.Actor, 0)
	for rows.Next() {
		var actor domain.Actor
		if err := rows.Scan(&actor.ID, &actor.Name); err != nil {
			return nil, err
		}
		actors = append(actors, actor)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return actors, nil
}

// escapeLike neutralizes LIKE wildcards so a literal % or _ in an actor name
// cannot widen the match.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
