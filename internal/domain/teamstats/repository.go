package teamstats

import "context"

type Repository interface {
	EnsureSchema(ctx context.Context) error
	// AggregateFromPlayerStats reads the stored player rows of the partition
	// back and computes one SeasonStat per team, ordered by team id.
	AggregateFromPlayerStats(ctx context.Context, league, season string) ([]SeasonStat, error)
	Append(ctx context.Context, stats []SeasonStat) error
	ReplacePartition(ctx context.Context, league, season string, stats []SeasonStat) error
	TopByMinutes(ctx context.Context, limit int) ([]SeasonStat, error)
	Count(ctx context.Context) (int, error)
}
