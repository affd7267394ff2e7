package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/fbref-teamfit/internal/config"
)

// NewMigrator builds a migrator over the SQL files in the migrations
// directory for the database named by DB_URL.
func NewMigrator(cfg config.Config) (*migrate.Migrate, string, error) {
	migrationsDir, err := resolveMigrationsDir(cfg.MigrationsDir)
	if err != nil {
		return nil, "", err
	}

	dbURL, err := migrationDatabaseURL(cfg)
	if err != nil {
		return nil, "", err
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return nil, "", fmt.Errorf("create migrator: %w", err)
	}
	return m, sourceURL, nil
}

// IsNoChange reports whether a migration step had nothing to apply.
func IsNoChange(err error) bool {
	return errors.Is(err, migrate.ErrNoChange)
}

func migrationDatabaseURL(cfg config.Config) (string, error) {
	driver, dsn, err := resolveDriver(cfg.DBURL)
	if err != nil {
		return "", err
	}
	if driver == driverSQLite {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("create sqlite dir %s: %w", dir, err)
			}
		}
		return sqliteScheme + dsn, nil
	}
	if !strings.Contains(dsn, "://") {
		return "", fmt.Errorf("migrations need a postgres:// DB_URL, got a key=value DSN")
	}
	return normalizeDBURL(dsn, cfg.DBDisablePreparedBinary), nil
}

func resolveMigrationsDir(configured string) (string, error) {
	candidates := []string{
		strings.TrimSpace(configured),
		strings.TrimSpace(os.Getenv("MIGRATIONS_PATH")),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)")
}
