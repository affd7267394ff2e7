package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/featureorder"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/player"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/playerstats"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/team"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/teamstats"
)

type SchemaService struct {
	teamRepo         team.Repository
	playerRepo       player.Repository
	playerStatsRepo  playerstats.Repository
	teamStatsRepo    teamstats.Repository
	featureOrderRepo featureorder.Repository
}

func NewSchemaService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	playerStatsRepo playerstats.Repository,
	teamStatsRepo teamstats.Repository,
	featureOrderRepo featureorder.Repository,
) *SchemaService {
	return &SchemaService{
		teamRepo:         teamRepo,
		playerRepo:       playerRepo,
		playerStatsRepo:  playerStatsRepo,
		teamStatsRepo:    teamStatsRepo,
		featureOrderRepo: featureOrderRepo,
	}
}

// Initialize creates every missing table and reseeds the feature order,
// replacing whatever order was stored before.
func (s *SchemaService) Initialize(ctx context.Context) ([]featureorder.Feature, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SchemaService.Initialize")
	defer span.End()

	if err := s.EnsureTables(ctx); err != nil {
		return nil, err
	}

	features := featureorder.Defaults()
	if err := s.featureOrderRepo.Replace(ctx, features); err != nil {
		return nil, fmt.Errorf("seed feature order: %w", err)
	}
	return features, nil
}

// EnsureTables creates the tables that do not exist yet and leaves existing
// tables and rows untouched.
func (s *SchemaService) EnsureTables(ctx context.Context) error {
	steps := []struct {
		table  string
		ensure func(context.Context) error
	}{
		{table: "teams", ensure: s.teamRepo.EnsureSchema},
		{table: "players", ensure: s.playerRepo.EnsureSchema},
		{table: "player_season_stats", ensure: s.playerStatsRepo.EnsureSchema},
		{table: "team_season_stats", ensure: s.teamStatsRepo.EnsureSchema},
		{table: "feature_order", ensure: s.featureOrderRepo.EnsureSchema},
	}
	for _, step := range steps {
		if err := step.ensure(ctx); err != nil {
			return fmt.Errorf("ensure %s schema: %w", step.table, err)
		}
	}
	return nil
}
