package result

import (
	"context"

	"github.com/jacobpatterson1549/codenames/game"
)

type mockBackend struct {
	CreateFunc func(ctx context.Context, r game.Result) error
	ListFunc   func(ctx context.Context, limit int) ([]game.Result, error)
}

func (m mockBackend) Create(ctx context.Context, r game.Result) error {
	return m.CreateFunc(ctx, r)
}

func (m mockBackend) List(ctx context.Context, limit int) ([]game.Result, error) {
	return m.ListFunc(ctx, limit)
}
