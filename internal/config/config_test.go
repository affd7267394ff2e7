package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/identity"
	"github.com/riskibarqy/fbref-teamfit/internal/usecase"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("COMPETITIONS_FILE", "")
	t.Setenv("FBREF_SEASON", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.Competitions) != 1 {
		t.Fatalf("expected a single default competition, got %d", len(cfg.Competitions))
	}
	comp := cfg.Competitions[0]
	if comp.CompID != 9 || comp.League != "Premier League" || comp.SeasonSlug != "2023-2024" || comp.Season != "2023-24" {
		t.Fatalf("unexpected default competition: %+v", comp)
	}
	if cfg.FBrefRequestDelay != 1500*time.Millisecond {
		t.Fatalf("unexpected request delay: %s", cfg.FBrefRequestDelay)
	}
	if cfg.CacheTTL != 24*time.Hour || cfg.CacheBackend != CacheBackendDisk {
		t.Fatalf("unexpected cache config: ttl=%s backend=%s", cfg.CacheTTL, cfg.CacheBackend)
	}
	if cfg.FBrefMaxRetries != 0 {
		t.Fatalf("network failures must not be retried by default, got %d", cfg.FBrefMaxRetries)
	}
	if cfg.PersistPolicy != usecase.PersistAppend || cfg.EntityResolution != identity.StrategyExact {
		t.Fatalf("unexpected policy defaults: %s %s", cfg.PersistPolicy, cfg.EntityResolution)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"persist policy":   {"PERSIST_POLICY", "upsert"},
		"resolution":       {"ENTITY_RESOLUTION", "phonetic"},
		"fuzzy threshold":  {"FUZZY_MATCH_THRESHOLD", "1.5"},
		"cache backend":    {"CACHE_BACKEND", "redis"},
		"request delay":    {"FBREF_REQUEST_DELAY", "-1s"},
		"comp id":          {"FBREF_COMP_ID", "0"},
		"uptrace dsn":      {"UPTRACE_ENABLED", "true"},
		"negative retries": {"FBREF_MAX_RETRIES", "-2"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_DSN", "")
			t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
			t.Setenv("ENTITY_RESOLUTION", "fuzzy")
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn=https://token@api.uptrace.dev?grpc=4317")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_CompetitionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "competitions.yaml")
	doc := `competitions:
  - comp_id: 9
    season_slug: "2023-2024"
    league: Premier League
  - comp_id: 12
    season_slug: "2023-2024"
    league: La Liga
    season: "2023/24"
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write competitions file: %v", err)
	}

	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("COMPETITIONS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.Competitions) != 2 {
		t.Fatalf("unexpected competitions: %+v", cfg.Competitions)
	}
	if cfg.Competitions[0].Season != "2023-24" {
		t.Fatalf("season must be derived from slug, got %q", cfg.Competitions[0].Season)
	}
	if cfg.Competitions[1].League != "La Liga" || cfg.Competitions[1].Season != "2023/24" {
		t.Fatalf("unexpected second competition: %+v", cfg.Competitions[1])
	}
}

func TestLoadCompetitionsFile_RejectsInvalidEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "competitions.yaml")
	if err := os.WriteFile(path, []byte("competitions:\n  - league: Serie A\n"), 0o600); err != nil {
		t.Fatalf("write competitions file: %v", err)
	}
	if _, err := LoadCompetitionsFile(path); err == nil {
		t.Fatalf("expected validation error for entry without comp_id")
	}
	if _, err := LoadCompetitionsFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
