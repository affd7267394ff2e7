package app

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"

	sqliteScheme = "sqlite://"
)

// resolveDriver maps DB_URL onto a database/sql driver name and its DSN.
// sqlite://<path> selects the embedded SQLite driver; postgres URLs and
// key=value DSNs select PostgreSQL.
func resolveDriver(raw string) (string, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", fmt.Errorf("DB_URL is required")
	}

	if strings.HasPrefix(strings.ToLower(trimmed), sqliteScheme) {
		path := trimmed[len(sqliteScheme):]
		if path == "" {
			return "", "", fmt.Errorf("sqlite DB_URL requires a file path")
		}
		return driverSQLite, path, nil
	}

	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		switch strings.ToLower(parsed.Scheme) {
		case "postgres", "postgresql":
			return driverPostgres, trimmed, nil
		default:
			return "", "", fmt.Errorf("unsupported DB_URL scheme %q: use postgres:// or sqlite://", parsed.Scheme)
		}
	}

	return driverPostgres, trimmed, nil
}

func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

func dbNameFromURL(driver, dsn string) string {
	trimmed := strings.TrimSpace(dsn)
	if driver == driverSQLite {
		name := strings.TrimSuffix(filepath.Base(trimmed), filepath.Ext(trimmed))
		if name == "." || name == "" {
			return "sqlite"
		}
		return name
	}

	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
