// Package router tracks which screen the player is on.
package router

import (
	"sync"

	"github.com/jacobpatterson1549/codenames/game"
)

type (
	// Router navigates between screens, notifying the listeners of the destination.
	Router struct {
		mu        sync.Mutex
		current   Location
		listeners map[Route][]Listener
	}

	// Route is a screen.
	Route string

	// Location is a route for a game.
	Location struct {
		Route  Route
		GameID game.ID
	}

	// Listener is notified when its route is navigated to.
	Listener func(gameID game.ID)
)

const (
	// Lobby is the list of games.
	Lobby Route = "Lobby"
	// TeamBuilding is the screen for choosing teams before the game starts.
	TeamBuilding Route = "TeamBuilding"
	// Game is the board of a game that has started.
	Game Route = "Game"
)

// New creates a router on the lobby.
func New() *Router {
	r := Router{
		current: Location{
			Route: Lobby,
		},
		listeners: make(map[Route][]Listener),
	}
	return &r
}

// AttachMatched registers the listener for navigation to the route.
func (r *Router) AttachMatched(route Route, l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[route] = append(r.listeners[route], l)
}

// NavTo moves to the route and notifies its listeners.  The game id is ignored for the lobby.
func (r *Router) NavTo(route Route, gameID game.ID) {
	if route == Lobby {
		gameID = ""
	}
	r.mu.Lock()
	r.current = Location{
		Route:  route,
		GameID: gameID,
	}
	listeners := append([]Listener{}, r.listeners[route]...)
	r.mu.Unlock()
	for _, l := range listeners {
		l(gameID)
	}
}

// Current is the location last navigated to.
func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
