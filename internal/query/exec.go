package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/panelstore/internal/dialect"
)

// Run executes q and materializes every row with scan.
func Run[T any](ctx context.Context, db dialect.Querier, d dialect.Dialect, q *Query, scan func(*sql.Rows) (T, error)) ([]T, error) {
	stmt, args := q.SQL(d)

	rows, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", q.table, err)
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return results, nil
}

// Count returns the number of rows matching q's predicates.
func Count(ctx context.Context, db dialect.Querier, d dialect.Dialect, q *Query) (int64, error) {
	stmt, args := q.CountSQL(d)

	rows, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", q.table, err)
	}
	defer rows.Close()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("row iteration error: %w", err)
	}

	return n, nil
}

// Last runs q and returns its final row, or nil when nothing matches.
//
// Which row is last follows the storage's native order.
func Last[T any](ctx context.Context, db dialect.Querier, d dialect.Dialect, q *Query, scan func(*sql.Rows) (T, error)) (*T, error) {
	results, err := Run(ctx, db, d, q, scan)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[len(results)-1], nil
}
