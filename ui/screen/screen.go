// Package screen contains the views of the client and the rules for moving between them as games change.
package screen

import (
	"context"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/ui/router"
)

type (
	// Log shows messages to the player.
	Log interface {
		Info(text string)
		Error(text string)
	}

	// Navigator changes the screen.
	Navigator interface {
		NavTo(route router.Route, gameID game.ID)
	}

	// Games looks up the games known to the client.
	Games interface {
		Game(id game.ID) (*game.Game, bool)
		PlayerID() game.PlayerID
	}

	// Joiner joins the player to games.
	Joiner interface {
		JoinGame(ctx context.Context, g game.Game) error
	}

	// TeamBuildingAPI makes the requests of the team building screen.
	TeamBuildingAPI interface {
		StartGame(ctx context.Context, gameID game.ID) error
		JoinTeam(ctx context.Context, gameID game.ID, playerID game.PlayerID, team game.Team) error
		BecomeCaptain(ctx context.Context, gameID game.ID, playerID game.PlayerID) error
		ChangePlayerName(ctx context.Context, gameID game.ID, playerID game.PlayerID, name string) error
	}

	// BoardAPI makes the requests of the game board screen.
	BoardAPI interface {
		ProvideWord(ctx context.Context, gameID game.ID, playerID game.PlayerID, word string, wordCount int) error
		ChooseCard(ctx context.Context, gameID game.ID, playerID game.PlayerID, cardID game.CardID) error
		FinishMove(ctx context.Context, gameID game.ID, playerID game.PlayerID) error
	}
)
