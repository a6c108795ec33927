package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// linkKind is the closed set of movie relationships. Each kind carries its
// fixed junction table and related-id column, so query text is never built
// from caller-supplied strings.
type linkKind int

const (
	actorLinks linkKind = iota
	genreLinks
)

func (k linkKind) table() string {
	if k == actorLinks {
		return "movie_actors"
	}
	return "movie_genres"
}

func (k linkKind) column() string {
	if k == actorLinks {
		return "actor_id"
	}
	return "genre_id"
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so link reads can run
// standalone or inside a movie transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// readLinks returns the related ids for a movie in ascending order.
func readLinks(ctx context.Context, q querier, kind linkKind, movieID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT %[2]s FROM %[1]s WHERE movie_id = $1 ORDER BY %[2]s`, kind.table(), kind.column())
	rows, err := q.Query(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", kind.table(), err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind.table(), err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", kind.table(), err)
	}
	return ids, nil
}

func insertLinks(ctx context.Context, tx pgx.Tx, kind linkKind, movieID int64, ids []int64) error {
	query := fmt.Sprintf(`INSERT INTO %s (movie_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`, kind.table(), kind.column())
	for _, id := range ids {
		if _, err := tx.Exec(ctx, query, movieID, id); err != nil {
			return fmt.Errorf("insert %s (%d, %d): %w", kind.table(), movieID, id, err)
		}
	}
	return nil
}

func deleteLinks(ctx context.Context, tx pgx.Tx, kind linkKind, movieID int64, ids []int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE movie_id = $1 AND %s = $2`, kind.table(), kind.column())
	for _, id := range ids {
		if _, err := tx.Exec(ctx, query, movieID, id); err != nil {
			return fmt.Errorf("delete %s (%d, %d): %w", kind.table(), movieID, id, err)
		}
	}
	return nil
}

func deleteAllLinks(ctx context.Context, tx pgx.Tx, kind linkKind, movieID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE movie_id = $1`, kind.table())
	if _, err := tx.Exec(ctx, query, movieID); err != nil {
		return fmt.Errorf("clear %s for movie %d: %w", kind.table(), movieID, err)
	}
	return nil
}

// syncLinks reconciles the persisted id set with the desired one, deleting
// rows only in the old set and inserting rows only in the new set. Rows in
// both sets are untouched. Inputs are treated as sets; duplicates collapse.
func syncLinks(ctx context.Context, tx pgx.Tx, kind linkKind, movieID int64, current, desired []int64) error {
	have := idSet(current)
	want := idSet(desired)

	var toAdd, toRemove []int64
	for id := range want {
		if _, ok := have[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for id := range have {
		if _, ok := want[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	sortIDs(toAdd)
	sortIDs(toRemove)

	if err := deleteLinks(ctx, tx, kind, movieID, toRemove); err != nil {
		return err
	}
	return insertLinks(ctx, tx, kind, movieID, toAdd)
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// dedupeIDs collapses duplicates and returns the ids in ascending order.
func dedupeIDs(ids []int64) []int64 {
	set := idSet(ids)
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sortIDs(out)
	return out
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
