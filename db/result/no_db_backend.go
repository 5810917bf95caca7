package result

import (
	"context"

	"github.com/jacobpatterson1549/codenames/game"
)

// NoDatabaseBackend is used when there is no database.  Results are discarded.
type NoDatabaseBackend struct{}

// Create does nothing.
func (NoDatabaseBackend) Create(ctx context.Context, r game.Result) error {
	return nil
}

// List returns no results.
func (NoDatabaseBackend) List(ctx context.Context, limit int) ([]game.Result, error) {
	return []game.Result{}, nil
}
