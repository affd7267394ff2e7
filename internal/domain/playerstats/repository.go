package playerstats

import "context"

type Repository interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, stats []SeasonStat) error
	// ReplacePartition deletes the league/season rows before inserting stats.
	ReplacePartition(ctx context.Context, league, season string, stats []SeasonStat) error
	ListByPartition(ctx context.Context, league, season string) ([]SeasonStat, error)
	TopByMinutes(ctx context.Context, limit int) ([]SeasonStat, error)
	Count(ctx context.Context) (int, error)
}
