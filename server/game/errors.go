package game

import "errors"

var (
	// ErrGameNotFound is returned when a game id is not known.
	ErrGameNotFound = errors.New("game not found")
	// ErrPlayerNotFound is returned when a player is not in the game.
	ErrPlayerNotFound = errors.New("player not in game")
	// ErrWrongState is returned when an action cannot be done in the current state of the game.
	ErrWrongState = errors.New("action not allowed now")
	// ErrNotAllowed is returned when the player cannot do the action because of their team or role.
	ErrNotAllowed = errors.New("player not allowed")
	// ErrInvalid is returned when the parameters of an action are not valid.
	ErrInvalid = errors.New("invalid")
	// ErrFull is returned when there is no room for more games or players.
	ErrFull = errors.New("no room")
)
