package lobby

import (
	"context"
	"net/url"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/ui/api"
	"github.com/jacobpatterson1549/codenames/ui/bus"
	"github.com/jacobpatterson1549/codenames/ui/socket"
)

type mockLog struct {
	errors []string
}

func (m *mockLog) Error(text string) {
	m.errors = append(m.errors, text)
}

func (m *mockLog) Debug(text string) {}

type mockAPI struct {
	GamesFunc        func(ctx context.Context) ([]game.Game, error)
	PlayerIDFunc     func(ctx context.Context) (*api.Identity, error)
	CreateGameFunc   func(ctx context.Context) (*game.Game, error)
	JoinGameFunc     func(ctx context.Context, gameID game.ID, playerID game.PlayerID) error
	WebSocketURLFunc func(path string, params url.Values) string
}

func (m mockAPI) Games(ctx context.Context) ([]game.Game, error) {
	return m.GamesFunc(ctx)
}

func (m mockAPI) PlayerID(ctx context.Context) (*api.Identity, error) {
	return m.PlayerIDFunc(ctx)
}

func (m mockAPI) CreateGame(ctx context.Context) (*game.Game, error) {
	return m.CreateGameFunc(ctx)
}

func (m mockAPI) JoinGame(ctx context.Context, gameID game.ID, playerID game.PlayerID) error {
	return m.JoinGameFunc(ctx, gameID, playerID)
}

func (m mockAPI) WebSocketURL(path string, params url.Values) string {
	if m.WebSocketURLFunc == nil {
		u := url.URL{Scheme: "ws", Host: "example.com", Path: "/service" + path, RawQuery: params.Encode()}
		return u.String()
	}
	return m.WebSocketURLFunc(path, params)
}

type mockPublisher struct {
	published []game.Game
}

func (m *mockPublisher) Publish(t bus.Topic, g game.Game) {
	if t != bus.GameUpdated {
		return
	}
	m.published = append(m.published, g)
}

// mockSocket records calls in the shared events slice.
type mockSocket struct {
	name    string
	events  *[]string
	open    bool
	handler socket.Handler
	url     string
	err     error
}

func (m *mockSocket) Connect(ctx context.Context, url string, h socket.Handler) error {
	if m.err != nil {
		return m.err
	}
	*m.events = append(*m.events, m.name+" connect")
	m.open = true
	m.url = url
	m.handler = h
	return nil
}

func (m *mockSocket) Close() {
	if !m.open {
		return
	}
	*m.events = append(*m.events, m.name+" close")
	m.open = false
}

func (m *mockSocket) IsOpen() bool {
	return m.open
}
