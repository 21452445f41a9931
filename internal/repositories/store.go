package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/desertthunder/panelstore/internal/models"
	"github.com/desertthunder/panelstore/internal/query"
	"github.com/desertthunder/panelstore/internal/schema"
	"github.com/desertthunder/panelstore/internal/shared"
)

// Store is the generic save pipeline for a mapped entity type T.
type Store[T any, PT models.Record[T]] struct {
	client *shared.Client
	hook   models.Hook[T]
}

// NewStore creates a Store for T running hook at its fixed points.
func NewStore[T any, PT models.Record[T]](client *shared.Client, hook models.Hook[T]) *Store[T, PT] {
	if hook == nil {
		hook = models.HookFuncs[T]{}
	}
	return &Store[T, PT]{client: client, hook: hook}
}

// Table returns T's declared table.
func (s *Store[T, PT]) Table() *schema.Table {
	var zero T
	return PT(&zero).Table()
}

// Query starts an unconstrained query over T's table.
func (s *Store[T, PT]) Query() *query.Query {
	t := s.Table()
	return query.From(t.Name, t.ColumnNames()...)
}

// Insert runs the create hook and writes v. Storage assigned keys are read back into v.
func (s *Store[T, PT]) Insert(ctx context.Context, v *T) error {
	if err := s.hook.BeforeCreate(v); err != nil {
		return err
	}

	rec := PT(v)
	t := rec.Table()
	values, err := rec.Values()
	if err != nil {
		return err
	}

	columns := t.ColumnNames()
	key, idx := t.Key()
	d := s.client.Dialect

	if !key.AutoIncrement {
		if _, err := s.client.DB.ExecContext(ctx, query.Insert(d, t.Name, columns, ""), values...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", t.Name, err)
		}
		return nil
	}

	columns = slices.Delete(slices.Clone(columns), idx, idx+1)
	values = slices.Delete(values, idx, idx+1)

	stmt := query.Insert(d, t.Name, columns, key.Name)
	if err := s.client.DB.QueryRowContext(ctx, stmt, values...).Scan(rec.Targets()[idx]); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", t.Name, err)
	}
	return nil
}

// Update runs the update hook and rewrites every non-key column of v.
func (s *Store[T, PT]) Update(ctx context.Context, v *T) error {
	if err := s.hook.BeforeUpdate(v); err != nil {
		return err
	}

	rec := PT(v)
	t := rec.Table()
	values, err := rec.Values()
	if err != nil {
		return err
	}

	key, idx := t.Key()
	keyValue := values[idx]
	columns := slices.Delete(t.ColumnNames(), idx, idx+1)
	args := append(slices.Delete(values, idx, idx+1), keyValue)

	result, err := s.client.DB.ExecContext(ctx, query.Update(s.client.Dialect, t.Name, columns, key.Name), args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", t.Name, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s %v", shared.ErrNotFound, t.Name, keyValue)
	}

	return nil
}

// Delete removes the row with the given key and reports whether one existed.
func (s *Store[T, PT]) Delete(ctx context.Context, key any) (bool, error) {
	t := s.Table()
	k, _ := t.Key()

	result, err := s.client.DB.ExecContext(ctx, query.Delete(s.client.Dialect, t.Name, k.Name), key)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", t.Name, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}

// Get loads the row with the given key, failing with [shared.ErrNotFound] when it is absent.
func (s *Store[T, PT]) Get(ctx context.Context, key any) (*T, error) {
	t := s.Table()
	k, _ := t.Key()

	v, err := s.Last(ctx, s.Query().Where(query.Eq(k.Name, key)))
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%w: %s %v", shared.ErrNotFound, t.Name, key)
	}
	return v, nil
}

// Find materializes every row matching q.
func (s *Store[T, PT]) Find(ctx context.Context, q *query.Query) ([]*T, error) {
	return query.Run(ctx, s.client.DB, s.client.Dialect, q, s.scan)
}

// Last returns the last row matching q, or nil.
func (s *Store[T, PT]) Last(ctx context.Context, q *query.Query) (*T, error) {
	v, err := query.Last(ctx, s.client.DB, s.client.Dialect, q, s.scan)
	if err != nil || v == nil {
		return nil, err
	}
	return *v, nil
}

// Count counts rows matching q's predicates.
func (s *Store[T, PT]) Count(ctx context.Context, q *query.Query) (int64, error) {
	return query.Count(ctx, s.client.DB, s.client.Dialect, q)
}

func (s *Store[T, PT]) scan(rows *sql.Rows) (*T, error) {
	v := new(T)
	rec := PT(v)
	if err := rows.Scan(rec.Targets()...); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", rec.Table().Name, err)
	}
	if err := rec.Decode(); err != nil {
		return nil, err
	}
	return v, nil
}
