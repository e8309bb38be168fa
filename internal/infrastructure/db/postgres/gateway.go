package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tde-services/project-portal/internal/core/ports"
)

// fetchAll runs q and decodes every JSON row into T.
func fetchAll[T any](ctx context.Context, db Querier, q *Query) ([]T, error) {
	sql, args := q.SQL()
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, classify(err)
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", q.table, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// fetchOne returns the first row of q, or ports.ErrNotFound.
func fetchOne[T any](ctx context.Context, db Querier, q *Query) (*T, error) {
	q.Limit(1)
	sql, args := q.SQL()
	return scanOne[T](db.QueryRow(ctx, sql, args...))
}

func insertRow[T any](ctx context.Context, db Querier, table string, row Row) (*T, error) {
	return insertRowAs[T](ctx, db, table, row, rowJSON)
}

// insertRowAs inserts row and decodes the returning expression.
func insertRowAs[T any](ctx context.Context, db Querier, table string, row Row, returning string) (*T, error) {
	sql, args := insertSQL(table, row, returning)
	return scanOne[T](db.QueryRow(ctx, sql, args...))
}

func upsertRow[T any](ctx context.Context, db Querier, table, key string, row Row) (*T, error) {
	sql, args := upsertSQL(table, key, row)
	return scanOne[T](db.QueryRow(ctx, sql, args...))
}

// updateByID applies set to the row with the given id and returns it. An
// empty set only reads the row back.
func updateByID[T any](ctx context.Context, db Querier, table, id string, set Row) (*T, error) {
	return updateByIDAs[T](ctx, db, table, id, set, rowJSON)
}

func updateByIDAs[T any](ctx context.Context, db Querier, table, id string, set Row, returning string) (*T, error) {
	filter := From(table).Select(returning).Eq("id", id)
	if len(set) == 0 {
		return fetchOne[T](ctx, db, filter)
	}
	sql, args := updateSQL(table, set, filter, returning)
	return scanOne[T](db.QueryRow(ctx, sql, args...))
}

// updateWhere applies set to every row matching filter.
func updateWhere(ctx context.Context, db Querier, table string, set Row, filter *Query) (int64, error) {
	sql, args := updateSQL(table, set, filter, "1")
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, classify(err)
	}
	return tag.RowsAffected(), nil
}

// deleteWhere removes the rows matching filter. It reports ErrNotFound
// when nothing matched and mustMatch is set.
func deleteWhere(ctx context.Context, db Querier, filter *Query, mustMatch bool) error {
	sql, args := deleteSQL(filter.table, filter)
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return classify(err)
	}
	if mustMatch && tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOne[T any](row rowScanner) (*T, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		return nil, classify(err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	return &v, nil
}

// nullable maps the zero string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
