package server

import (
	"context"
	"strconv"

	"github.com/jacobpatterson1549/codenames/game"
)

type mockTokenizer struct {
	CreateFunc       func(playerID game.PlayerID) (string, error)
	ReadPlayerIDFunc func(tokenString string) (game.PlayerID, error)
}

func (m mockTokenizer) Create(playerID game.PlayerID) (string, error) {
	return m.CreateFunc(playerID)
}

func (m mockTokenizer) ReadPlayerID(tokenString string) (game.PlayerID, error) {
	return m.ReadPlayerIDFunc(tokenString)
}

// echoTokenizer uses player ids as access tokens.
var echoTokenizer = mockTokenizer{
	CreateFunc: func(playerID game.PlayerID) (string, error) {
		return string(playerID), nil
	},
	ReadPlayerIDFunc: func(tokenString string) (game.PlayerID, error) {
		return game.PlayerID(tokenString), nil
	},
}

// mockGameManager records the name of the last action.  Actions return err.
type mockGameManager struct {
	GamesFunc  func() []game.Game
	GameFunc   func(id game.ID) (*game.Game, error)
	CreateFunc func() (*game.Game, error)
	LeaveFunc  func(id game.ID, playerID game.PlayerID) error
	action     string
	args       []string
	err        error
}

func (m *mockGameManager) record(action string, args ...string) error {
	m.action = action
	m.args = args
	return m.err
}

func (m *mockGameManager) Games() []game.Game {
	return m.GamesFunc()
}

func (m *mockGameManager) Game(id game.ID) (*game.Game, error) {
	return m.GameFunc(id)
}

func (m *mockGameManager) Create() (*game.Game, error) {
	return m.CreateFunc()
}

func (m *mockGameManager) Join(id game.ID, playerID game.PlayerID) error {
	return m.record("Join", string(id), string(playerID))
}

func (m *mockGameManager) Leave(id game.ID, playerID game.PlayerID) error {
	return m.LeaveFunc(id, playerID)
}

func (m *mockGameManager) ChangePlayerName(id game.ID, playerID game.PlayerID, name string) error {
	return m.record("ChangePlayerName", string(id), string(playerID), name)
}

func (m *mockGameManager) JoinTeam(id game.ID, playerID game.PlayerID, t game.Team) error {
	return m.record("JoinTeam", string(id), string(playerID), string(t))
}

func (m *mockGameManager) BecomeCaptain(id game.ID, playerID game.PlayerID) error {
	return m.record("BecomeCaptain", string(id), string(playerID))
}

func (m *mockGameManager) Start(id game.ID) error {
	return m.record("Start", string(id))
}

func (m *mockGameManager) ProvideWord(id game.ID, playerID game.PlayerID, word string, wordCount int) error {
	return m.record("ProvideWord", string(id), string(playerID), word, strconv.Itoa(wordCount))
}

func (m *mockGameManager) ChooseCard(ctx context.Context, id game.ID, playerID game.PlayerID, cardID game.CardID) error {
	return m.record("ChooseCard", string(id), string(playerID), string(cardID))
}

func (m *mockGameManager) FinishMove(id game.ID, playerID game.PlayerID) error {
	return m.record("FinishMove", string(id), string(playerID))
}

type mockLobby struct {
	ListenToGamesFunc func(ctx context.Context) (<-chan game.Game, error)
	ListenToGameFunc  func(ctx context.Context, id game.ID) (<-chan game.Game, error)
}

func (m mockLobby) ListenToGames(ctx context.Context) (<-chan game.Game, error) {
	return m.ListenToGamesFunc(ctx)
}

func (m mockLobby) ListenToGame(ctx context.Context, id game.ID) (<-chan game.Game, error) {
	return m.ListenToGameFunc(ctx, id)
}

type mockResultDao func(ctx context.Context, limit int) ([]game.Result, error)

func (m mockResultDao) Results(ctx context.Context, limit int) ([]game.Result, error) {
	return m(ctx, limit)
}
