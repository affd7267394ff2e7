package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/featureorder"
	qb "github.com/riskibarqy/fbref-teamfit/internal/platform/querybuilder"
)

type FeatureOrderRepository struct {
	db *sqlx.DB
}

func NewFeatureOrderRepository(db *sqlx.DB) *FeatureOrderRepository {
	return &FeatureOrderRepository{db: db}
}

func (r *FeatureOrderRepository) EnsureSchema(ctx context.Context) error {
	return ensureTable(ctx, r.db, featureOrderTable, featureOrderTableModel{})
}

func (r *FeatureOrderRepository) Replace(ctx context.Context, features []featureorder.Feature) error {
	rows := make([]featureOrderTableModel, 0, len(features))
	for _, item := range features {
		rows = append(rows, featureToModel(item))
	}
	return withTx(ctx, r.db, "replace feature order", func(tx *sqlx.Tx) error {
		if err := deleteRows(ctx, tx, featureOrderTable); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return insertRows(ctx, tx, featureOrderTable, rows)
	})
}

func (r *FeatureOrderRepository) List(ctx context.Context) ([]featureorder.Feature, error) {
	rows, err := selectModels[featureOrderTableModel](ctx, r.db, featureOrderTable, func(b *qb.SelectBuilder) *qb.SelectBuilder {
		return b.OrderBy("ord", "feature")
	})
	if err != nil {
		return nil, err
	}

	out := make([]featureorder.Feature, 0, len(rows))
	for _, row := range rows {
		out = append(out, featureorder.Feature{Name: row.Feature, Ord: row.Ord})
	}
	return out, nil
}
