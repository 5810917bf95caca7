package screen

import (
	"context"
	"fmt"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/ui/router"
)

// GameList is the lobby screen.
type GameList struct {
	joiner Joiner
	nav    Navigator
}

// NewGameList creates the lobby screen.
func NewGameList(j Joiner, nav Navigator) (*GameList, error) {
	switch {
	case j == nil:
		return nil, fmt.Errorf("creating game list: joiner required")
	case nav == nil:
		return nil, fmt.Errorf("creating game list: navigator required")
	}
	gl := GameList{
		joiner: j,
		nav:    nav,
	}
	return &gl, nil
}

// Select joins the game and moves to the screen for its state.
// Games that are not being built or played stay on the lobby.  The lobby is shown if the game cannot be joined.
func (gl *GameList) Select(ctx context.Context, g game.Game) error {
	if err := gl.joiner.JoinGame(ctx, g); err != nil { // BLOCKING
		gl.nav.NavTo(router.Lobby, "")
		return fmt.Errorf("selecting game: %w", err)
	}
	switch {
	case game.TeamBuildingStates.Contains(g.State):
		gl.nav.NavTo(router.TeamBuilding, g.ID)
	case game.InProgressStates.Contains(g.State):
		gl.nav.NavTo(router.Game, g.ID)
	}
	return nil
}
