package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/team"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) EnsureSchema(ctx context.Context) error {
	return ensureTable(ctx, r.db, teamsTable, teamTableModel{})
}

func (r *TeamRepository) Append(ctx context.Context, teams []team.Team) error {
	rows, err := teamModels(teams)
	if err != nil || len(rows) == 0 {
		return err
	}
	return withTx(ctx, r.db, "append teams", func(tx *sqlx.Tx) error {
		return insertRows(ctx, tx, teamsTable, rows)
	})
}

func (r *TeamRepository) ReplacePartition(ctx context.Context, league, season string, teams []team.Team) error {
	rows, err := teamModels(teams)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, "replace teams", func(tx *sqlx.Tx) error {
		if err := deleteRows(ctx, tx, teamsTable, partition(league, season)...); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return insertRows(ctx, tx, teamsTable, rows)
	})
}

func (r *TeamRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, teamsTable)
}

func teamModels(teams []team.Team) ([]teamTableModel, error) {
	rows := make([]teamTableModel, 0, len(teams))
	for _, item := range teams {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("invalid team row: %w", err)
		}
		rows = append(rows, teamToModel(item))
	}
	return rows, nil
}
