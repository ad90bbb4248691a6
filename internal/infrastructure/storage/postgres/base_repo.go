package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/id"
	"stockroom/pkg/logger"
)

// BaseRepo provides the statement plumbing shared by the product and movement
// repositories: placeholder format, column list, querier resolution and
// error wrapping.
//
// The TxManager is injected, so statements join the transaction carried by
// ctx when there is one.
type BaseRepo[T any] struct {
	txm        *TxManager
	tableName  string
	selectCols []string
}

// NewBaseRepo creates a new base repository for tableName.
func NewBaseRepo[T any](txm *TxManager, tableName string, selectCols []string) *BaseRepo[T] {
	return &BaseRepo[T]{
		txm:        txm,
		tableName:  tableName,
		selectCols: selectCols,
	}
}

// TxManager returns the injected transaction manager.
func (r *BaseRepo[T]) TxManager() *TxManager {
	return r.txm
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// BaseSelect creates a SELECT of every mapped column.
func (r *BaseRepo[T]) BaseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// SelectMany runs q and scans every row into T.
func (r *BaseRepo[T]) SelectMany(ctx context.Context, q squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("build select: %w", err))
	}
	logger.Debug(ctx, "sql", "query", sql, "args", args)

	var items []T
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, apperror.NewStorage("select "+r.tableName, err)
	}
	return items, nil
}

// InsertReturningID inserts data and returns the generated key. Driver
// errors are returned unwrapped so callers can map constraint violations.
func (r *BaseRepo[T]) InsertReturningID(ctx context.Context, data map[string]any) (id.ID, error) {
	sql, args, err := r.Builder().
		Insert(r.tableName).
		SetMap(data).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return id.Unassigned, apperror.NewInternal(fmt.Errorf("build insert: %w", err))
	}
	logger.Debug(ctx, "sql", "query", sql, "args", args)

	var newID id.ID
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&newID); err != nil {
		if IsNoRows(err) {
			return id.Unassigned, nil
		}
		return id.Unassigned, err
	}
	return newID, nil
}

// UpdateByID sets data on the row with entityID and returns the affected row
// count. Driver errors are returned unwrapped.
func (r *BaseRepo[T]) UpdateByID(ctx context.Context, entityID id.ID, data map[string]any) (int64, error) {
	sql, args, err := r.Builder().
		Update(r.tableName).
		SetMap(data).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return 0, apperror.NewInternal(fmt.Errorf("build update: %w", err))
	}
	logger.Debug(ctx, "sql", "query", sql, "args", args)

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Exec runs a built statement and wraps driver failures as storage errors.
// Zero affected rows is not an error.
func (r *BaseRepo[T]) Exec(ctx context.Context, op string, b squirrel.Sqlizer) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build %s: %w", op, err))
	}
	logger.Debug(ctx, "sql", "query", sql, "args", args)

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewStorage(op, err)
	}
	return nil
}
