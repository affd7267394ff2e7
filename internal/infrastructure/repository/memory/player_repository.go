package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	return &PlayerRepository{players: append([]player.Player(nil), players...)}
}

func (r *PlayerRepository) EnsureSchema(context.Context) error {
	return nil
}

func (r *PlayerRepository) Append(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players = append(r.players, players...)
	return nil
}

func (r *PlayerRepository) ReplaceByIDs(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make(map[string]struct{}, len(players))
	for _, id := range player.IDs(players) {
		ids[id] = struct{}{}
	}

	kept := r.players[:0:0]
	for _, item := range r.players {
		if _, ok := ids[item.ID]; ok {
			continue
		}
		kept = append(kept, item)
	}
	r.players = append(kept, players...)
	return nil
}

func (r *PlayerRepository) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.players), nil
}

func (r *PlayerRepository) List() []player.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]player.Player(nil), r.players...)
}
