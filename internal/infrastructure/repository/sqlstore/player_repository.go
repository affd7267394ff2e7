package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/player"
	qb "github.com/riskibarqy/fbref-teamfit/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) EnsureSchema(ctx context.Context) error {
	return ensureTable(ctx, r.db, playersTable, playerTableModel{})
}

func (r *PlayerRepository) Append(ctx context.Context, players []player.Player) error {
	rows, err := playerModels(players)
	if err != nil || len(rows) == 0 {
		return err
	}
	return withTx(ctx, r.db, "append players", func(tx *sqlx.Tx) error {
		return insertRows(ctx, tx, playersTable, rows)
	})
}

func (r *PlayerRepository) ReplaceByIDs(ctx context.Context, players []player.Player) error {
	rows, err := playerModels(players)
	if err != nil || len(rows) == 0 {
		return err
	}

	ids := player.IDs(players)
	return withTx(ctx, r.db, "replace players", func(tx *sqlx.Tx) error {
		for start := 0; start < len(ids); start += insertBatchSize {
			end := min(start+insertBatchSize, len(ids))
			values := make([]any, 0, end-start)
			for _, id := range ids[start:end] {
				values = append(values, id)
			}
			if err := deleteRows(ctx, tx, playersTable, qb.In("player_id", values)); err != nil {
				return err
			}
		}
		return insertRows(ctx, tx, playersTable, rows)
	})
}

func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, playersTable)
}

func playerModels(players []player.Player) ([]playerTableModel, error) {
	rows := make([]playerTableModel, 0, len(players))
	for _, item := range players {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("invalid player row: %w", err)
		}
		rows = append(rows, playerToModel(item))
	}
	return rows, nil
}
