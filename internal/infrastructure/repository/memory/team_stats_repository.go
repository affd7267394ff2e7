package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/playerstats"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/teamstats"
)

type TeamStatsRepository struct {
	mu          sync.RWMutex
	stats       []teamstats.SeasonStat
	playerStats playerstats.Repository
}

// NewTeamStatsRepository aggregates from playerStats, which must be the
// repository the ingestion writes player rows to.
func NewTeamStatsRepository(playerStats playerstats.Repository) *TeamStatsRepository {
	return &TeamStatsRepository{playerStats: playerStats}
}

func (r *TeamStatsRepository) EnsureSchema(context.Context) error {
	return nil
}

func (r *TeamStatsRepository) AggregateFromPlayerStats(ctx context.Context, league, season string) ([]teamstats.SeasonStat, error) {
	rows, err := r.playerStats.ListByPartition(ctx, league, season)
	if err != nil {
		return nil, err
	}
	return teamstats.Aggregate(rows), nil
}

func (r *TeamStatsRepository) Append(_ context.Context, stats []teamstats.SeasonStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats = append(r.stats, stats...)
	return nil
}

func (r *TeamStatsRepository) ReplacePartition(_ context.Context, league, season string, stats []teamstats.SeasonStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.stats[:0:0]
	for _, item := range r.stats {
		if item.League == league && item.Season == season {
			continue
		}
		kept = append(kept, item)
	}
	r.stats = append(kept, stats...)
	return nil
}

func (r *TeamStatsRepository) TopByMinutes(_ context.Context, limit int) ([]teamstats.SeasonStat, error) {
	r.mu.RLock()
	out := append([]teamstats.SeasonStat(nil), r.stats...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Minutes > out[j].Minutes
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *TeamStatsRepository) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.stats), nil
}
