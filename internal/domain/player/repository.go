package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, players []Player) error
	// ReplaceByIDs deletes every stored row sharing an id with the batch, then inserts it.
	ReplaceByIDs(ctx context.Context, players []Player) error
	Count(ctx context.Context) (int, error)
}
