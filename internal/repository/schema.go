package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements create the catalog tables. Every statement is idempotent,
// so InitSchema can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS actors (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS actors_name_idx ON actors (name)`,
	`CREATE TABLE IF NOT EXISTS genres (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS movies (
        id BIGSERIAL PRIMARY KEY,
        title TEXT NOT NULL,
        release_year INT NOT NULL DEFAULT 0,
        director TEXT NOT NULL DEFAULT '',
        writer TEXT NOT NULL DEFAULT '',
        producer TEXT NOT NULL DEFAULT '',
        cinematographer TEXT NOT NULL DEFAULT '',
        budget BIGINT NOT NULL DEFAULT 0,
        country TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS movie_actors (
        movie_id BIGINT NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
        actor_id BIGINT NOT NULL REFERENCES actors(id) ON DELETE CASCADE,
        PRIMARY KEY (movie_id, actor_id)
    )`,
	`CREATE TABLE IF NOT EXISTS movie_genres (
        movie_id BIGINT NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
        genre_id BIGINT NOT NULL REFERENCES genres(id) ON DELETE CASCADE,
        PRIMARY KEY (movie_id, genre_id)
    )`,
}

// InitSchema creates all catalog tables if they are missing and seeds the
// genre reference list into an empty genres table. Seeding is skipped entirely
// once the table has rows, so a changed seed list never rewrites existing
// data.
func InitSchema(ctx context.Context, pool *pgxpool.Pool, genreSeed []string) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return seedGenres(ctx, pool, genreSeed)
}

func seedGenres(ctx context.Context, pool *pgxpool.Pool, seed []string) error {
	if len(seed) == 0 {
		return nil
	}

	var count int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM genres`).Scan(&count); err != nil {
		return fmt.Errorf("count genres: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin genre seed: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, name := range seed {
		if _, err := tx.Exec(ctx, `INSERT INTO genres (name) VALUES ($1)`, name); err != nil {
			return fmt.Errorf("seed genre %q: %w", name, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit genre seed: %w", err)
	}
	return nil
}
