package app

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fbref-teamfit/internal/config"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/identity"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/cache"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/logging"
	"github.com/riskibarqy/fbref-teamfit/internal/usecase"
)

func TestNew_DryRunKeepsRowsInMemory(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		DBURL:               "postgres://unreachable.invalid/teamfit",
		CacheEnabled:        false,
		PersistPolicy:       usecase.PersistAppend,
		EntityResolution:    identity.StrategyExact,
		FuzzyMatchThreshold: identity.DefaultFuzzyThreshold,
	}

	rt, err := New(cfg, logging.NewNop(), Options{DryRun: true})
	if err != nil {
		t.Fatalf("build runtime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close(context.Background()) })

	ctx := context.Background()
	features, err := rt.Schema.Initialize(ctx)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if len(features) != 7 {
		t.Fatalf("unexpected feature order: %+v", features)
	}

	report, err := rt.Report.Build(ctx, 3)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Teams != 0 || report.PlayerStats != 0 || len(report.FeatureOrder) != 7 {
		t.Fatalf("unexpected empty report: %+v", report)
	}
}

func TestNewCacheStore(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		store, err := newCacheStore(config.Config{CacheEnabled: false})
		if err != nil || store != nil {
			t.Fatalf("expected no store, got %v %v", store, err)
		}
	})

	t.Run("memory", func(t *testing.T) {
		store, err := newCacheStore(config.Config{CacheEnabled: true, CacheBackend: config.CacheBackendMemory, CacheTTL: time.Hour})
		if err != nil {
			t.Fatalf("build store: %v", err)
		}
		if _, ok := store.(*cache.MemoryStore); !ok {
			t.Fatalf("expected memory store, got %T", store)
		}
	})

	t.Run("disk", func(t *testing.T) {
		store, err := newCacheStore(config.Config{CacheEnabled: true, CacheBackend: config.CacheBackendDisk, CacheDir: t.TempDir(), CacheTTL: time.Hour})
		if err != nil {
			t.Fatalf("build store: %v", err)
		}
		if _, ok := store.(*cache.DiskStore); !ok {
			t.Fatalf("expected disk store, got %T", store)
		}
	})
}

func TestOpenDB_SQLite(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/nested/teamfit.db"
	db, err := OpenDB(config.Config{DBURL: "sqlite://" + path})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var one int
	if err := db.Get(&one, db.Rebind("SELECT ?"), 1); err != nil {
		t.Fatalf("query sqlite: %v", err)
	}
	if one != 1 {
		t.Fatalf("unexpected result: %d", one)
	}
}
