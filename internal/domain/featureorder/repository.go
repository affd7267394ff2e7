package featureorder

import "context"

type Repository interface {
	EnsureSchema(ctx context.Context) error
	// Replace removes every stored feature before inserting features.
	Replace(ctx context.Context, features []Feature) error
	List(ctx context.Context) ([]Feature, error)
}
