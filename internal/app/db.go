package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	_ "modernc.org/sqlite"

	"github.com/riskibarqy/fbref-teamfit/internal/config"
)

func init() {
	sqlx.BindDriver(driverSQLite, sqlx.QUESTION)
}

// OpenDB opens the database named by DB_URL with every statement traced.
func OpenDB(cfg config.Config) (*sqlx.DB, error) {
	driver, dsn, err := resolveDriver(cfg.DBURL)
	if err != nil {
		return nil, err
	}

	opts := []otelsql.Option{
		otelsql.WithDBName(dbNameFromURL(driver, dsn)),
		otelsql.WithQueryFormatter(spanStatement),
	}
	switch driver {
	case driverSQLite:
		if dir := filepath.Dir(dsn); dir != "." && dsn != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir %s: %w", dir, err)
			}
		}
		opts = append(opts, otelsql.WithDBSystem("sqlite"))
	default:
		dsn = normalizeDBURL(dsn, cfg.DBDisablePreparedBinary)
		opts = append(opts, otelsql.WithDBSystem("postgresql"))
	}

	db, err := otelsqlx.Open(driver, dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driver, err)
	}
	if driver == driverSQLite {
		// A single connection serializes writers on the database file.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", driver, err)
	}

	return db, nil
}
