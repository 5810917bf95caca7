package screen

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/ui/router"
)

// TeamBuilding is the screen where players choose teams and captains before the game starts.
type TeamBuilding struct {
	log   Log
	api   TeamBuildingAPI
	games Games
	nav   Navigator
	mu    sync.Mutex
	game  *game.Game
}

// NewTeamBuilding creates the team building screen.
func NewTeamBuilding(log Log, a TeamBuildingAPI, games Games, nav Navigator) (*TeamBuilding, error) {
	switch {
	case log == nil:
		return nil, fmt.Errorf("creating team building screen: log required")
	case a == nil:
		return nil, fmt.Errorf("creating team building screen: api required")
	case games == nil:
		return nil, fmt.Errorf("creating team building screen: games required")
	case nav == nil:
		return nil, fmt.Errorf("creating team building screen: navigator required")
	}
	tb := TeamBuilding{
		log:   log,
		api:   a,
		games: games,
		nav:   nav,
	}
	return &tb, nil
}

// Bind shows the game.  The lobby is shown if the game is not known.
func (tb *TeamBuilding) Bind(id game.ID) {
	g, ok := tb.games.Game(id)
	if !ok {
		tb.log.Error(fmt.Sprintf("game %v not found", id))
		tb.Unbind()
		tb.nav.NavTo(router.Lobby, "")
		return
	}
	tb.mu.Lock()
	tb.game = g
	tb.mu.Unlock()
}

// Unbind stops showing the game.
func (tb *TeamBuilding) Unbind() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.game = nil
}

// Game is a copy of the game being shown, if any.
func (tb *TeamBuilding) Game() (*game.Game, bool) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if tb.game == nil {
		return nil, false
	}
	g := tb.game.Copy()
	return &g, true
}

// OnGameUpdated merges changes to the shown game.  The board is shown when the game leaves team building.
func (tb *TeamBuilding) OnGameUpdated(g game.Game) {
	tb.mu.Lock()
	if tb.game == nil || tb.game.ID != g.ID {
		tb.mu.Unlock()
		return
	}
	if game.TeamBuildingStates.Contains(g.State) {
		tb.game = &g
		tb.mu.Unlock()
		return
	}
	tb.game = nil
	tb.mu.Unlock()
	tb.nav.NavTo(router.Game, g.ID)
}

// StartGame asks the server to start the game.
func (tb *TeamBuilding) StartGame(ctx context.Context) error {
	gameID, _, err := tb.ids()
	if err != nil {
		return err
	}
	if err := tb.api.StartGame(ctx, gameID); err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	return nil
}

// JoinTeam moves the player to the team.
func (tb *TeamBuilding) JoinTeam(ctx context.Context, t game.Team) error {
	if !t.Valid() {
		return fmt.Errorf("joining team: unknown team %q", t)
	}
	gameID, playerID, err := tb.ids()
	if err != nil {
		return err
	}
	if err := tb.api.JoinTeam(ctx, gameID, playerID, t); err != nil {
		return fmt.Errorf("joining team: %w", err)
	}
	return nil
}

// BecomeCaptain makes the player the captain of their team.
func (tb *TeamBuilding) BecomeCaptain(ctx context.Context) error {
	gameID, playerID, err := tb.ids()
	if err != nil {
		return err
	}
	if err := tb.api.BecomeCaptain(ctx, gameID, playerID); err != nil {
		return fmt.Errorf("becoming captain: %w", err)
	}
	return nil
}

// ChangeName renames the player in the game.
func (tb *TeamBuilding) ChangeName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return fmt.Errorf("changing name: name required")
	}
	gameID, playerID, err := tb.ids()
	if err != nil {
		return err
	}
	if err := tb.api.ChangePlayerName(ctx, gameID, playerID, name); err != nil {
		return fmt.Errorf("changing name: %w", err)
	}
	return nil
}

// ids gets the shown game and the player.
func (tb *TeamBuilding) ids() (game.ID, game.PlayerID, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if tb.game == nil {
		return "", "", ErrNoGame
	}
	return tb.game.ID, tb.games.PlayerID(), nil
}
