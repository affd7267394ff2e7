// Package sqlstore persists ingestion snapshots through database/sql. The SQL
// it issues is limited to what PostgreSQL and SQLite both accept, and uses ?
// placeholders rebound to the driver's bind style.
package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/riskibarqy/fbref-teamfit/internal/platform/querybuilder"
)

// insertBatchSize bounds the rows of one multi-row insert so that the
// statement stays under the bind parameter limits of both drivers.
const insertBatchSize = 500

func ensureTable(ctx context.Context, db *sqlx.DB, table string, model any) error {
	ddl, err := qb.CreateTableModel(table, model)
	if err != nil {
		return fmt.Errorf("build create %s table: %w", table, err)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create %s table: %w", table, err)
	}
	return nil
}

func withTx(ctx context.Context, db *sqlx.DB, name string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx %s: %w", name, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s tx: %w", name, err)
	}
	return nil
}

func insertRows[T any](ctx context.Context, tx *sqlx.Tx, table string, rows []T) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		query, args, err := qb.InsertModels(table, rows[start:end], "")
		if err != nil {
			return fmt.Errorf("build insert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("insert %s rows %d-%d: %w", table, start, end, err)
		}
	}
	return nil
}

func deleteRows(ctx context.Context, tx *sqlx.Tx, table string, conditions ...qb.Condition) error {
	query, args, err := qb.DeleteFrom(table).Where(conditions...).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s query: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("delete %s rows: %w", table, err)
	}
	return nil
}

func countRows(ctx context.Context, db *sqlx.DB, table string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From(table).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count %s query: %w", table, err)
	}
	var n int
	if err := db.GetContext(ctx, &n, db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// selectModels runs a select over the db columns of model's type.
func selectModels[T any](ctx context.Context, db *sqlx.DB, table string, build func(*qb.SelectBuilder) *qb.SelectBuilder) ([]T, error) {
	var zero T
	cols, err := qb.ModelColumns(zero)
	if err != nil {
		return nil, err
	}
	query, args, err := build(qb.Select(cols...).From(table)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", table, err)
	}

	var rows []T
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return rows, nil
}

func partition(league, season string) []qb.Condition {
	return []qb.Condition{
		qb.Eq("league", league),
		qb.Eq("season", season),
	}
}
