package screen

import (
	"context"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/ui/router"
)

type mockLog struct {
	infos  []string
	errors []string
}

func (m *mockLog) Info(text string) {
	m.infos = append(m.infos, text)
}

func (m *mockLog) Error(text string) {
	m.errors = append(m.errors, text)
}

type mockNavigator struct {
	locations []router.Location
}

func (m *mockNavigator) NavTo(route router.Route, gameID game.ID) {
	m.locations = append(m.locations, router.Location{Route: route, GameID: gameID})
}

type mockGames struct {
	games    []game.Game
	playerID game.PlayerID
}

func (m mockGames) Game(id game.ID) (*game.Game, bool) {
	for _, g := range m.games {
		if g.ID == id {
			g2 := g.Copy()
			return &g2, true
		}
	}
	return nil, false
}

func (m mockGames) PlayerID() game.PlayerID {
	return m.playerID
}

type mockJoiner func(ctx context.Context, g game.Game) error

func (m mockJoiner) JoinGame(ctx context.Context, g game.Game) error {
	return m(ctx, g)
}

type mockTeamBuildingAPI struct {
	StartGameFunc        func(ctx context.Context, gameID game.ID) error
	JoinTeamFunc         func(ctx context.Context, gameID game.ID, playerID game.PlayerID, team game.Team) error
	BecomeCaptainFunc    func(ctx context.Context, gameID game.ID, playerID game.PlayerID) error
	ChangePlayerNameFunc func(ctx context.Context, gameID game.ID, playerID game.PlayerID, name string) error
}

func (m mockTeamBuildingAPI) StartGame(ctx context.Context, gameID game.ID) error {
	return m.StartGameFunc(ctx, gameID)
}

func (m mockTeamBuildingAPI) JoinTeam(ctx context.Context, gameID game.ID, playerID game.PlayerID, team game.Team) error {
	return m.JoinTeamFunc(ctx, gameID, playerID, team)
}

func (m mockTeamBuildingAPI) BecomeCaptain(ctx context.Context, gameID game.ID, playerID game.PlayerID) error {
	return m.BecomeCaptainFunc(ctx, gameID, playerID)
}

func (m mockTeamBuildingAPI) ChangePlayerName(ctx context.Context, gameID game.ID, playerID game.PlayerID, name string) error {
	return m.ChangePlayerNameFunc(ctx, gameID, playerID, name)
}

type mockBoardAPI struct {
	ProvideWordFunc func(ctx context.Context, gameID game.ID, playerID game.PlayerID, word string, wordCount int) error
	ChooseCardFunc  func(ctx context.Context, gameID game.ID, playerID game.PlayerID, cardID game.CardID) error
	FinishMoveFunc  func(ctx context.Context, gameID game.ID, playerID game.PlayerID) error
}

func (m mockBoardAPI) ProvideWord(ctx context.Context, gameID game.ID, playerID game.PlayerID, word string, wordCount int) error {
	return m.ProvideWordFunc(ctx, gameID, playerID, word, wordCount)
}

func (m mockBoardAPI) ChooseCard(ctx context.Context, gameID game.ID, playerID game.PlayerID, cardID game.CardID) error {
	return m.ChooseCardFunc(ctx, gameID, playerID, cardID)
}

func (m mockBoardAPI) FinishMove(ctx context.Context, gameID game.ID, playerID game.PlayerID) error {
	return m.FinishMoveFunc(ctx, gameID, playerID)
}
