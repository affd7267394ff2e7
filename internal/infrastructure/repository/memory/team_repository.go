package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams []team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	return &TeamRepository{teams: append([]team.Team(nil), teams...)}
}

func (r *TeamRepository) EnsureSchema(context.Context) error {
	return nil
}

func (r *TeamRepository) Append(_ context.Context, teams []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams = append(r.teams, teams...)
	return nil
}

func (r *TeamRepository) ReplacePartition(_ context.Context, league, season string, teams []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.teams[:0:0]
	for _, item := range r.teams {
		if item.League == league && item.Season == season {
			continue
		}
		kept = append(kept, item)
	}
	r.teams = append(kept, teams...)
	return nil
}

func (r *TeamRepository) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.teams), nil
}

// List returns a copy of every stored row in insertion order.
func (r *TeamRepository) List() []team.Team {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]team.Team(nil), r.teams...)
}
