package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/competition"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/identity"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/logging"
	"github.com/riskibarqy/fbref-teamfit/internal/usecase"
)

const (
	CacheBackendDisk   = "disk"
	CacheBackendMemory = "memory"
)

// Config stores runtime configuration for the ingestion commands.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	LogLevel                logging.Level
	DBURL                   string
	DBDisablePreparedBinary bool
	MigrationsDir           string
	CacheEnabled            bool
	CacheBackend            string
	CacheDir                string
	CacheTTL                time.Duration
	FBrefBaseURL            string
	FBrefTimeout            time.Duration
	FBrefRequestDelay       time.Duration
	FBrefMaxRetries         int
	FBrefUserAgent          string
	FBrefMaxBodyBytes       int64
	Competitions            []competition.Competition
	PersistPolicy           usecase.PersistPolicy
	EntityResolution        identity.Strategy
	FuzzyMatchThreshold     float64
	UptraceEnabled          bool
	UptraceDSN              string
	MetricsPushURL          string
	MetricsJobName          string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", "sqlite://data/teamfit.db"))
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheBackend := strings.ToLower(strings.TrimSpace(getEnv("CACHE_BACKEND", CacheBackendDisk)))
	if cacheBackend != CacheBackendDisk && cacheBackend != CacheBackendMemory {
		return Config{}, fmt.Errorf("invalid CACHE_BACKEND %q: valid values are %s, %s", cacheBackend, CacheBackendDisk, CacheBackendMemory)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	fbrefTimeout, err := time.ParseDuration(getEnv("FBREF_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FBREF_TIMEOUT: %w", err)
	}
	if fbrefTimeout <= 0 {
		return Config{}, fmt.Errorf("FBREF_TIMEOUT must be > 0")
	}
	fbrefRequestDelay, err := time.ParseDuration(getEnv("FBREF_REQUEST_DELAY", "1.5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FBREF_REQUEST_DELAY: %w", err)
	}
	if fbrefRequestDelay < 0 {
		return Config{}, fmt.Errorf("FBREF_REQUEST_DELAY must be >= 0")
	}
	fbrefMaxRetries, err := getEnvAsInt("FBREF_MAX_RETRIES", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse FBREF_MAX_RETRIES: %w", err)
	}
	if fbrefMaxRetries < 0 {
		return Config{}, fmt.Errorf("FBREF_MAX_RETRIES must be >= 0")
	}
	fbrefMaxBodyBytes, err := getEnvAsInt("FBREF_MAX_BODY_BYTES", 16<<20)
	if err != nil {
		return Config{}, fmt.Errorf("parse FBREF_MAX_BODY_BYTES: %w", err)
	}
	if fbrefMaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("FBREF_MAX_BODY_BYTES must be > 0")
	}

	competitions, err := loadCompetitions()
	if err != nil {
		return Config{}, err
	}

	persistPolicy, err := usecase.ParsePersistPolicy(getEnv("PERSIST_POLICY", string(usecase.PersistAppend)))
	if err != nil {
		return Config{}, fmt.Errorf("parse PERSIST_POLICY: %w", err)
	}

	fuzzyThreshold, err := strconv.ParseFloat(getEnv("FUZZY_MATCH_THRESHOLD", strconv.FormatFloat(identity.DefaultFuzzyThreshold, 'f', -1, 64)), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse FUZZY_MATCH_THRESHOLD: %w", err)
	}
	resolution := identity.Strategy(strings.ToLower(strings.TrimSpace(getEnv("ENTITY_RESOLUTION", string(identity.StrategyExact)))))
	if _, err := identity.NewResolver(resolution, fuzzyThreshold); err != nil {
		return Config{}, fmt.Errorf("parse ENTITY_RESOLUTION: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	return Config{
		AppEnv:                  appEnv,
		ServiceName:             strings.TrimSpace(getEnv("APP_SERVICE_NAME", "fbref-teamfit")),
		ServiceVersion:          strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		LogLevel:                logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		MigrationsDir:           strings.TrimSpace(getEnv("MIGRATIONS_DIR", "")),
		CacheEnabled:            cacheEnabled,
		CacheBackend:            cacheBackend,
		CacheDir:                strings.TrimSpace(getEnv("CACHE_DIR", "data/raw/fbref/cache")),
		CacheTTL:                cacheTTL,
		FBrefBaseURL:            strings.TrimSpace(getEnv("FBREF_BASE_URL", "https://fbref.com")),
		FBrefTimeout:            fbrefTimeout,
		FBrefRequestDelay:       fbrefRequestDelay,
		FBrefMaxRetries:         fbrefMaxRetries,
		FBrefUserAgent:          strings.TrimSpace(getEnv("FBREF_USER_AGENT", "")),
		FBrefMaxBodyBytes:       int64(fbrefMaxBodyBytes),
		Competitions:            competitions,
		PersistPolicy:           persistPolicy,
		EntityResolution:        resolution,
		FuzzyMatchThreshold:     fuzzyThreshold,
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
		MetricsPushURL:          strings.TrimSpace(getEnv("METRICS_PUSH_URL", "")),
		MetricsJobName:          strings.TrimSpace(getEnv("METRICS_JOB_NAME", "teamfit_ingest")),
	}, nil
}

// loadCompetitions reads COMPETITIONS_FILE when set and otherwise builds the
// single competition described by the FBREF_* variables.
func loadCompetitions() ([]competition.Competition, error) {
	if path := strings.TrimSpace(getEnv("COMPETITIONS_FILE", "")); path != "" {
		return LoadCompetitionsFile(path)
	}

	compID, err := getEnvAsInt("FBREF_COMP_ID", 9)
	if err != nil {
		return nil, fmt.Errorf("parse FBREF_COMP_ID: %w", err)
	}
	comp := competition.Competition{
		CompID:     compID,
		SeasonSlug: getEnv("FBREF_SEASON_SLUG", "2023-2024"),
		League:     getEnv("FBREF_LEAGUE", "Premier League"),
		Season:     getEnv("FBREF_SEASON", ""),
	}.Normalize()
	if err := comp.Validate(); err != nil {
		return nil, err
	}
	return []competition.Competition{comp}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
