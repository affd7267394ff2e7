package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/featureorder"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/player"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/playerstats"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/team"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/teamstats"
)

const defaultReportLimit = 5

// Report is a post-ingestion sanity snapshot of the stored tables.
type Report struct {
	Teams          int
	Players        int
	PlayerStats    int
	TeamStats      int
	TopPlayerStats []playerstats.SeasonStat
	TopTeamStats   []teamstats.SeasonStat
	FeatureOrder   []featureorder.Feature
}

type ReportService struct {
	teamRepo         team.Repository
	playerRepo       player.Repository
	playerStatsRepo  playerstats.Repository
	teamStatsRepo    teamstats.Repository
	featureOrderRepo featureorder.Repository
}

func NewReportService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	playerStatsRepo playerstats.Repository,
	teamStatsRepo teamstats.Repository,
	featureOrderRepo featureorder.Repository,
) *ReportService {
	return &ReportService{
		teamRepo:         teamRepo,
		playerRepo:       playerRepo,
		playerStatsRepo:  playerStatsRepo,
		teamStatsRepo:    teamStatsRepo,
		featureOrderRepo: featureOrderRepo,
	}
}

// Build reads row counts, the limit highest-minute player and team rows and
// the feature order. The reads run concurrently and the first error cancels
// the rest.
func (s *ReportService) Build(ctx context.Context, limit int) (Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.Build")
	defer span.End()

	if limit <= 0 {
		limit = defaultReportLimit
	}

	var report Report
	g := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	g.Go(func(gctx context.Context) (err error) {
		report.Teams, err = s.teamRepo.Count(gctx)
		return wrapReportErr("count teams", err)
	})
	g.Go(func(gctx context.Context) (err error) {
		report.Players, err = s.playerRepo.Count(gctx)
		return wrapReportErr("count players", err)
	})
	g.Go(func(gctx context.Context) (err error) {
		report.PlayerStats, err = s.playerStatsRepo.Count(gctx)
		return wrapReportErr("count player stats", err)
	})
	g.Go(func(gctx context.Context) (err error) {
		report.TeamStats, err = s.teamStatsRepo.Count(gctx)
		return wrapReportErr("count team stats", err)
	})
	g.Go(func(gctx context.Context) (err error) {
		report.TopPlayerStats, err = s.playerStatsRepo.TopByMinutes(gctx, limit)
		return wrapReportErr("list top player stats", err)
	})
	g.Go(func(gctx context.Context) (err error) {
		report.TopTeamStats, err = s.teamStatsRepo.TopByMinutes(gctx, limit)
		return wrapReportErr("list top team stats", err)
	})
	g.Go(func(gctx context.Context) (err error) {
		report.FeatureOrder, err = s.featureOrderRepo.List(gctx)
		return wrapReportErr("list feature order", err)
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return report, nil
}

func wrapReportErr(step string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", step, err)
}
