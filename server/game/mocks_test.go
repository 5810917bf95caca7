package game

import (
	"context"
	"sync"

	"github.com/jacobpatterson1549/codenames/game"
)

type mockBroadcaster struct {
	mu    sync.Mutex
	games []game.Game
}

func (m *mockBroadcaster) Broadcast(g game.Game) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = append(m.games, g)
}

func (m *mockBroadcaster) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.games)
}

func (m *mockBroadcaster) last() game.Game {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.games[len(m.games)-1]
}

type mockResultSaver func(ctx context.Context, r game.Result) error

func (m mockResultSaver) SaveResult(ctx context.Context, r game.Result) error {
	return m(ctx, r)
}
