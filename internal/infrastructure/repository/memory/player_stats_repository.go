package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu    sync.RWMutex
	stats []playerstats.SeasonStat
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{}
}

func (r *PlayerStatsRepository) EnsureSchema(context.Context) error {
	return nil
}

func (r *PlayerStatsRepository) Append(_ context.Context, stats []playerstats.SeasonStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats = append(r.stats, stats...)
	return nil
}

func (r *PlayerStatsRepository) ReplacePartition(_ context.Context, league, season string, stats []playerstats.SeasonStat) error {
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

func (r *PlayerStatsRepository) ListByPartition(_ context.Context, league, season string) ([]playerstats.SeasonStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.SeasonStat, 0, len(r.stats))
	for _, item := range r.stats {
		if item.League == league && item.Season == season {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *PlayerStatsRepository) TopByMinutes(_ context.Context, limit int) ([]playerstats.SeasonStat, error) {
	r.mu.RLock()
	out := append([]playerstats.SeasonStat(nil), r.stats...)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Minutes > out[j].Minutes
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PlayerStatsRepository) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.stats), nil
}
