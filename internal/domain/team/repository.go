package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, teams []Team) error
	// ReplacePartition deletes the league/season rows before inserting teams.
	ReplacePartition(ctx context.Context, league, season string, teams []Team) error
	Count(ctx context.Context) (int, error)
}
