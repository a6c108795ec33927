package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmoteka-app/filmoteka/internal/domain"
)

// MovieRepository provides persistence for movies and their actor/genre
// relationships. Create, Update and Delete are multi-statement transactions:
// either the movie row and every junction row land together, or nothing does.
type MovieRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `
    id,
    title,
    release_year,
    director,
    writer,
    producer,
    cinematographer,
    budget,
    country,
    created_at,
    updated_at
`

// MovieCreateParams bundles the fields required to create a movie.
type MovieCreateParams struct {
	Title           string
	ReleaseYear     int
	Director        string
	Writer          string
	Producer        string
	Cinematographer string
	Budget          int64
	Country         string
	ActorIDs        []int64
	GenreIDs        []int64
}

// MovieListFilters encapsulates search and pagination options. The zero value
// lists the whole catalog.
type MovieListFilters struct {
	Query  *string
	Year   *int
	Limit  int
	Cursor *MovieCursor
}

// MovieCursor allows stable pagination by created_at/id.
type MovieCursor struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        int64     `json:"id"`
}

// MovieListResult returns the paginated payload.
type MovieListResult struct {
	Items      []domain.Movie
	NextCursor *string
}

// Create inserts the movie row plus its junction rows in one transaction and
// returns the stored entity. Duplicate ids in the relationship lists collapse
// to a single junction row.
func (r *MovieRepository) Create(ctx context.Context, params MovieCreateParams) (domain.Movie, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("begin create movie: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
        INSERT INTO movies (title, release_year, director, writer, producer, cinematographer, budget, country)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING %s
    `, movieColumns)

	movie, err := scanMovie(tx.QueryRow(ctx, query,
		params.Title, params.ReleaseYear, params.Director, params.Writer,
		params.Producer, params.Cinematographer, params.Budget, params.Country))
	if err != nil {
		return domain.Movie{}, fmt.Errorf("insert movie: %w", err)
	}
	if movie.ID <= 0 {
		return domain.Movie{}, fmt.Errorf("insert movie: no generated id")
	}

	actorIDs := dedupeIDs(params.ActorIDs)
	genreIDs := dedupeIDs(params.GenreIDs)
	if err := insertLinks(ctx, tx, actorLinks, movie.ID, actorIDs); err != nil {
		return domain.Movie{}, err
	}
	if err := insertLinks(ctx, tx, genreLinks, movie.ID, genreIDs); err != nil {
		return domain.Movie{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Movie{}, fmt.Errorf("commit create movie: %w", err)
	}

	movie.ActorIDs = actorIDs
	movie.GenreIDs = genreIDs
	return movie, nil
}

// GetByID fetches a movie with its actor and genre id sets, related ids in
// ascending order. Returns ErrNotFound for a missing id.
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	if err := r.attachLinks(ctx, &movie); err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

// List returns movies matching the provided filters, each enriched with its
// relationship id sets.
func (r *MovieRepository) List(ctx context.Context, filters MovieListFilters) (MovieListResult, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	} else if filters.Limit > 200 {
		filters.Limit = 200
	}

	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Query != nil && strings.TrimSpace(*filters.Query) != "" {
		q := "%" + strings.TrimSpace(*filters.Query) + "%"
		clauses := make([]string, 0, 5)
		for _, column := range []string{"title", "director", "writer", "producer", "cinematographer"} {
			clauses = append(clauses, fmt.Sprintf("%s ILIKE %s", column, arg(q)))
		}
		where = append(where, "("+strings.Join(clauses, " OR ")+")")
	}
	if filters.Year != nil {
		where = append(where, fmt.Sprintf("release_year = %s", arg(*filters.Year)))
	}
	if filters.Cursor != nil {
		cursorCreated := arg(filters.Cursor.CreatedAt)
		cursorID := arg(filters.Cursor.ID)
		where = append(where, fmt.Sprintf("(created_at, id) < (%s, %s)", cursorCreated, cursorID))
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString("SELECT ")
	queryBuilder.WriteString(movieColumns)
	queryBuilder.WriteString(" FROM movies")
	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT %d", filters.Limit))

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return MovieListResult{}, err
	}
	defer rows.Close()

	items := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return MovieListResult{}, err
		}
		items = append(items, movie)
	}
	if err := rows.Err(); err != nil {
		return MovieListResult{}, err
	}

	for i := range items {
		if err := r.attachLinks(ctx, &items[i]); err != nil {
			return MovieListResult{}, err
		}
	}

	var nextCursor *string
	if len(items) == filters.Limit {
		last := items[len(items)-1]
		token, err := encodeCursor(MovieCursor{CreatedAt: last.CreatedAt, ID: last.ID})
		if err != nil {
			return MovieListResult{}, err
		}
		nextCursor = &token
	}

	return MovieListResult{Items: items, NextCursor: nextCursor}, nil
}

// Update overwrites the movie's scalar attributes when any of them changed and
// reconciles both relationship sets by differential sync. A missing id is a
// no-op reported as (false, nil); any storage failure rolls the whole
// transaction back and propagates.
func (r *MovieRepository) Update(ctx context.Context, movie domain.Movie) (bool, error) {
	existing, err := r.GetByID(ctx, movie.ID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin update movie: %w", err)
	}
	defer tx.Rollback(ctx)

	if scalarFieldsDiffer(existing, movie) {
		// Whole-row overwrite: atomic and simpler than per-column patching.
		query := `
            UPDATE movies
            SET title = $2,
                release_year = $3,
                director = $4,
                writer = $5,
                producer = $6,
                cinematographer = $7,
                budget = $8,
                country = $9,
                updated_at = now()
            WHERE id = $1
        `
		if _, err := tx.Exec(ctx, query, movie.ID,
			movie.Title, movie.ReleaseYear, movie.Director, movie.Writer,
			movie.Producer, movie.Cinematographer, movie.Budget, movie.Country); err != nil {
			return false, fmt.Errorf("update movie row: %w", err)
		}
	}

	if err := syncLinks(ctx, tx, actorLinks, movie.ID, existing.ActorIDs, movie.ActorIDs); err != nil {
		return false, err
	}
	if err := syncLinks(ctx, tx, genreLinks, movie.ID, existing.GenreIDs, movie.GenreIDs); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit update movie: %w", err)
	}
	return true, nil
}

// Delete removes the movie row and every junction row referencing it in one
// transaction. A missing id yields (false, nil).
func (r *MovieRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin delete movie: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := deleteAllLinks(ctx, tx, actorLinks, id); err != nil {
		return false, err
	}
	if err := deleteAllLinks(ctx, tx, genreLinks, id); err != nil {
		return false, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete movie row: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit delete movie: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *MovieRepository) attachLinks(ctx context.Context, movie *domain.Movie) error {
	actorIDs, err := readLinks(ctx, r.pool, actorLinks, movie.ID)
	if err != nil {
		return err
	}
	genreIDs, err := readLinks(ctx, r.pool, genreLinks, movie.ID)
	if err != nil {
		return err
	}
	movie.ActorIDs = actorIDs
	movie.GenreIDs = genreIDs
	return nil
}

func scalarFieldsDiffer(a, b domain.Movie) bool {
	return a.Title != b.Title ||
		a.ReleaseYear != b.ReleaseYear ||
		a.Director != b.Director ||
		a.Writer != b.Writer ||
		a.Producer != b.Producer ||
		a.Cinematographer != b.Cinematographer ||
		a.Budget != b.Budget ||
		a.Country != b.Country
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.ReleaseYear,
		&movie.Director,
		&movie.Writer,
		&movie.Producer,
		&movie.Cinematographer,
		&movie.Budget,
		&movie.Country,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

func encodeCursor(c MovieCursor) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// DecodeCursor parses a cursor token into a MovieCursor.
func DecodeCursor(token string) (*MovieCursor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}
	var cursor MovieCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor payload: %w", err)
	}
	return &cursor, nil
}
