package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fbref-teamfit/external/fbref"
	"github.com/riskibarqy/fbref-teamfit/internal/config"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/featureorder"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/identity"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/player"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/playerstats"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/team"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/teamstats"
	"github.com/riskibarqy/fbref-teamfit/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fbref-teamfit/internal/infrastructure/repository/sqlstore"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/cache"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/logging"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/metrics"
	"github.com/riskibarqy/fbref-teamfit/internal/usecase"
)

type Options struct {
	// DryRun keeps every write in process memory and never opens DB_URL.
	DryRun bool
	// Progress receives one line per fetched category table when set.
	Progress io.Writer
}

// Runtime holds the services behind the command line.
type Runtime struct {
	Schema    *usecase.SchemaService
	Ingestion *usecase.IngestionService
	Report    *usecase.ReportService
	Metrics   *metrics.Recorder

	db *sqlx.DB
}

type repositories struct {
	teams        team.Repository
	players      player.Repository
	playerStats  playerstats.Repository
	teamStats    teamstats.Repository
	featureOrder featureorder.Repository
}

func New(cfg config.Config, logger *logging.Logger, opts Options) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		db    *sqlx.DB
		repos repositories
	)
	if opts.DryRun {
		repos = memoryRepositories()
		logger.Info("dry run enabled, rows are kept in memory")
	} else {
		var err error
		db, err = OpenDB(cfg)
		if err != nil {
			return nil, err
		}
		repos = sqlRepositories(db)
	}

	recorderOpts := []metrics.Option{}
	if cfg.MetricsPushURL != "" {
		recorderOpts = append(recorderOpts, metrics.WithPushGateway(cfg.MetricsPushURL, cfg.MetricsJobName))
	}
	recorder := metrics.NewRecorder(recorderOpts...)

	store, err := newCacheStore(cfg)
	if err != nil {
		closeDB(db, logger)
		return nil, err
	}

	resolver, err := identity.NewResolver(cfg.EntityResolution, cfg.FuzzyMatchThreshold)
	if err != nil {
		closeDB(db, logger)
		return nil, fmt.Errorf("build entity resolver: %w", err)
	}

	client := fbref.NewClient(fbref.ClientConfig{
		BaseURL:      cfg.FBrefBaseURL,
		UserAgent:    cfg.FBrefUserAgent,
		Timeout:      cfg.FBrefTimeout,
		MaxRetries:   cfg.FBrefMaxRetries,
		RequestDelay: cfg.FBrefRequestDelay,
		MaxBodyBytes: cfg.FBrefMaxBodyBytes,
		Cache:        store,
		Logger:       logger.Named("fbref"),
		Metrics:      recorder,
	})
	source := fbref.NewSource(client, logger.Named("fbref")).WithProgress(opts.Progress)

	return &Runtime{
		Schema: usecase.NewSchemaService(repos.teams, repos.players, repos.playerStats, repos.teamStats, repos.featureOrder),
		Ingestion: usecase.NewIngestionService(
			source,
			repos.teams,
			repos.players,
			repos.playerStats,
			repos.teamStats,
			usecase.IngestionConfig{Policy: cfg.PersistPolicy, Resolver: resolver},
			logger.Named("ingest"),
			recorder,
		),
		Report:  usecase.NewReportService(repos.teams, repos.players, repos.playerStats, repos.teamStats, repos.featureOrder),
		Metrics: recorder,
		db:      db,
	}, nil
}

// Close pushes the run metrics, when a Pushgateway is configured, and
// releases the database.
func (r *Runtime) Close(ctx context.Context) error {
	if r == nil {
		return nil
	}

	var errs []error
	if err := r.Metrics.Push(ctx); err != nil {
		errs = append(errs, err)
	}
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}
	return errors.Join(errs...)
}

func sqlRepositories(db *sqlx.DB) repositories {
	return repositories{
		teams:        sqlstore.NewTeamRepository(db),
		players:      sqlstore.NewPlayerRepository(db),
		playerStats:  sqlstore.NewPlayerStatsRepository(db),
		teamStats:    sqlstore.NewTeamStatsRepository(db),
		featureOrder: sqlstore.NewFeatureOrderRepository(db),
	}
}

func memoryRepositories() repositories {
	playerStats := memory.NewPlayerStatsRepository()
	return repositories{
		teams:        memory.NewTeamRepository(nil),
		players:      memory.NewPlayerRepository(nil),
		playerStats:  playerStats,
		teamStats:    memory.NewTeamStatsRepository(playerStats),
		featureOrder: memory.NewFeatureOrderRepository(),
	}
}

func newCacheStore(cfg config.Config) (cache.Store, error) {
	if !cfg.CacheEnabled {
		return nil, nil
	}

	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		return cache.NewMemoryStore(cfg.CacheTTL), nil
	default:
		store, err := cache.NewDiskStore(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("build page cache: %w", err)
		}
		return store, nil
	}
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close db failed", "error", err)
	}
}
