package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmoteka-app/filmoteka/internal/domain"
)

// GenreRepository provides read access over the seeded genre reference table.
// Genres are written once at schema-init time and never mutated afterwards.
type GenreRepository struct {
	pool *pgxpool.Pool
}

// List returns every genre in id order.
func (r *GenreRepository) List(ctx context.Context) ([]domain.Genre, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]domain.Genre, 0)
	for rows.Next() {
		var genre domain.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}

// GetByID fetches a genre by id, returning ErrNotFound for a missing row.
func (r *GenreRepository) GetByID(ctx context.Context, id int64) (domain.Genre, error) {
	var genre domain.Genre
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM genres WHERE id = $1`, id).
		Scan(&genre.ID, &genre.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Genre{}, ErrNotFound
		}
		return domain.Genre{}, err
	}
	return genre, nil
}

// GetByName fetches a genre by exact name.
func (r *GenreRepository) GetByName(ctx context.Context, name string) (domain.Genre, error) {
	var genre domain.Genre
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM genres WHERE name = $1 ORDER BY id LIMIT 1`, name).
		Scan(&genre.ID, &genre.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Genre{}, ErrNotFound
		}
		return domain.Genre{}, err
	}
	return genre, nil
}
