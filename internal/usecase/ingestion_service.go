package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/competition"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/identity"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/player"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/playerstats"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/statframe"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/team"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/teamstats"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/logging"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/metrics"
)

// StatsSource serves one raw category table of a competition.
type StatsSource interface {
	FetchTable(ctx context.Context, comp competition.Competition, category competition.Category) (statframe.Frame, error)
}

type PersistPolicy string

const (
	// PersistAppend inserts every run as a new snapshot; re-runs duplicate rows.
	PersistAppend PersistPolicy = "append"
	// PersistReplace deletes the league/season partition before inserting.
	PersistReplace PersistPolicy = "replace"
)

func ParsePersistPolicy(v string) (PersistPolicy, error) {
	switch PersistPolicy(strings.ToLower(strings.TrimSpace(v))) {
	case PersistAppend, "":
		return PersistAppend, nil
	case PersistReplace:
		return PersistReplace, nil
	default:
		return "", fmt.Errorf("%w: unknown persist policy %q: valid values are %s, %s", ErrInvalidInput, v, PersistAppend, PersistReplace)
	}
}

type IngestionConfig struct {
	Policy   PersistPolicy
	Resolver identity.Resolver
}

// IngestionResult summarizes one competition run.
type IngestionResult struct {
	Competition competition.Competition
	PlayerRows  int
	Teams       int
	Players     int
	TeamStats   int
	Elapsed     time.Duration
}

type IngestionService struct {
	source          StatsSource
	teamRepo        team.Repository
	playerRepo      player.Repository
	playerStatsRepo playerstats.Repository
	teamStatsRepo   teamstats.Repository
	cfg             IngestionConfig
	logger          *logging.Logger
	metrics         *metrics.Recorder
	now             func() time.Time
}

func NewIngestionService(
	source StatsSource,
	teamRepo team.Repository,
	playerRepo player.Repository,
	playerStatsRepo playerstats.Repository,
	teamStatsRepo teamstats.Repository,
	cfg IngestionConfig,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Policy == "" {
		cfg.Policy = PersistAppend
	}
	if cfg.Resolver == nil {
		cfg.Resolver = identity.ExactResolver{}
	}

	return &IngestionService{
		source:          source,
		teamRepo:        teamRepo,
		playerRepo:      playerRepo,
		playerStatsRepo: playerStatsRepo,
		teamStatsRepo:   teamStatsRepo,
		cfg:             cfg,
		logger:          logger,
		metrics:         recorder,
		now:             time.Now,
	}
}

// RunAll ingests competitions one after the other and stops at the first failure.
func (s *IngestionService) RunAll(ctx context.Context, comps []competition.Competition) ([]IngestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RunAll")
	defer span.End()

	if len(comps) == 0 {
		return nil, fmt.Errorf("%w: at least one competition is required", ErrInvalidInput)
	}

	results := make([]IngestionResult, 0, len(comps))
	for _, comp := range comps {
		result, err := s.Run(ctx, comp)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Run fetches the category tables of comp, builds player features, persists
// teams, players and player stats, then aggregates team stats from the stored
// player rows of the same partition.
func (s *IngestionService) Run(ctx context.Context, comp competition.Competition) (result IngestionResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Run")
	defer span.End()

	comp = comp.Normalize()
	if err := comp.Validate(); err != nil {
		return IngestionResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if s.source == nil {
		return IngestionResult{}, fmt.Errorf("%w: stats source is not configured", ErrDependencyUnavailable)
	}

	started := s.now()
	defer func() {
		s.metrics.IngestFinished(comp.League, comp.Season, s.now().Sub(started), err)
	}()

	frames := make(map[competition.Category]statframe.Frame, len(competition.Categories))
	for _, category := range competition.Categories {
		frame, err := s.source.FetchTable(ctx, comp, category)
		if err != nil {
			return IngestionResult{}, fmt.Errorf("fetch %s table for %s: %w", category, comp, err)
		}
		frames[category] = frame
	}

	features, err := BuildPlayerFeatures(frames, comp, s.cfg.Resolver)
	if err != nil {
		return IngestionResult{}, fmt.Errorf("build player features for %s: %w", comp, err)
	}
	features = s.dropUnidentified(ctx, comp, features)

	teams, players, stats := splitFeatures(comp, features)
	if err := s.persist(ctx, comp, teams, players, stats); err != nil {
		return IngestionResult{}, err
	}

	teamStats, err := s.teamStatsRepo.AggregateFromPlayerStats(ctx, comp.League, comp.Season)
	if err != nil {
		return IngestionResult{}, fmt.Errorf("aggregate team stats for %s: %w", comp, err)
	}
	switch s.cfg.Policy {
	case PersistReplace:
		err = s.teamStatsRepo.ReplacePartition(ctx, comp.League, comp.Season, teamStats)
	default:
		err = s.teamStatsRepo.Append(ctx, teamStats)
	}
	if err != nil {
		return IngestionResult{}, fmt.Errorf("persist team stats for %s: %w", comp, err)
	}
	s.metrics.RowsPersisted("team_season_stats", len(teamStats))

	result = IngestionResult{
		Competition: comp,
		PlayerRows:  len(stats),
		Teams:       len(teams),
		Players:     len(players),
		TeamStats:   len(teamStats),
		Elapsed:     s.now().Sub(started),
	}
	s.logger.InfoContext(ctx, "competition ingested",
		"league", comp.League,
		"season", comp.Season,
		"policy", string(s.cfg.Policy),
		"resolver", string(s.cfg.Resolver.Strategy()),
		"player_rows", result.PlayerRows,
		"teams", result.Teams,
		"team_stats", result.TeamStats,
		"elapsed_ms", result.Elapsed.Milliseconds(),
	)
	return result, nil
}

func (s *IngestionService) persist(ctx context.Context, comp competition.Competition, teams []team.Team, players []player.Player, stats []playerstats.SeasonStat) error {
	var err error
	if s.cfg.Policy == PersistReplace {
		err = s.teamRepo.ReplacePartition(ctx, comp.League, comp.Season, teams)
	} else {
		err = s.teamRepo.Append(ctx, teams)
	}
	if err != nil {
		return fmt.Errorf("persist teams for %s: %w", comp, err)
	}
	s.metrics.RowsPersisted("teams", len(teams))

	if s.cfg.Policy == PersistReplace {
		err = s.playerRepo.ReplaceByIDs(ctx, players)
	} else {
		err = s.playerRepo.Append(ctx, players)
	}
	if err != nil {
		return fmt.Errorf("persist players for %s: %w", comp, err)
	}
	s.metrics.RowsPersisted("players", len(players))

	if s.cfg.Policy == PersistReplace {
		err = s.playerStatsRepo.ReplacePartition(ctx, comp.League, comp.Season, stats)
	} else {
		err = s.playerStatsRepo.Append(ctx, stats)
	}
	if err != nil {
		return fmt.Errorf("persist player stats for %s: %w", comp, err)
	}
	s.metrics.RowsPersisted("player_season_stats", len(stats))
	return nil
}

// dropUnidentified removes rows without a player or team name, which cannot
// be keyed to an entity.
func (s *IngestionService) dropUnidentified(ctx context.Context, comp competition.Competition, features []PlayerFeatures) []PlayerFeatures {
	out := features[:0:0]
	for _, f := range features {
		if strings.TrimSpace(f.PlayerName) == "" || strings.TrimSpace(f.TeamName) == "" {
			continue
		}
		out = append(out, f)
	}
	if dropped := len(features) - len(out); dropped > 0 {
		s.logger.WarnContext(ctx, "skipped rows without player or team name",
			"league", comp.League,
			"season", comp.Season,
			"count", dropped,
		)
	}
	return out
}

func splitFeatures(comp competition.Competition, features []PlayerFeatures) ([]team.Team, []player.Player, []playerstats.SeasonStat) {
	teams := make([]team.Team, 0, len(features))
	players := make([]player.Player, 0, len(features))
	stats := make([]playerstats.SeasonStat, 0, len(features))
	for _, f := range features {
		teams = append(teams, team.Team{
			ID:     f.Stat.TeamID,
			Name:   f.TeamName,
			League: comp.League,
			Season: comp.Season,
		})
		players = append(players, player.Player{
			ID:         f.Stat.PlayerID,
			Name:       f.PlayerName,
			PrimaryPos: f.Position,
		})
		stats = append(stats, f.Stat)
	}
	return team.Distinct(teams), player.Distinct(players), stats
}
