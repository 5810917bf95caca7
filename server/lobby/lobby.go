// Package lobby fans out changed games to the players listening to the lobby and to the members of each game.
package lobby

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/server/log"
)

type (
	// Lobby sends each changed game to every lobby listener and to the listeners of that game.
	Lobby struct {
		log        log.Logger
		listeners  map[*listener]struct{}
		broadcasts chan game.Game
		adds       chan *listener
		removes    chan *listener
		done       chan struct{}
		Config
	}

	// Config contains the properties to create a lobby.
	Config struct {
		// Debug is a flag that causes the lobby to log the games it sends.
		Debug bool
		// MaxListeners is the maximum number of listeners the lobby supports.
		MaxListeners int
		// BufferSize is the number of games that can be waiting to be written to a listener.
		// Listeners that fall further behind are dropped.
		BufferSize int
	}

	// listener receives games.  Listeners without a game id receive every game.
	listener struct {
		gameID game.ID
		games  chan game.Game
		result chan error
	}
)

// ErrClosed is returned when listening after the lobby has stopped running.
var ErrClosed = errors.New("lobby closed")

// NewLobby creates a lobby.
func (cfg Config) NewLobby(log log.Logger) (*Lobby, error) {
	if err := cfg.validate(log); err != nil {
		return nil, fmt.Errorf("creating lobby: validation: %w", err)
	}
	l := Lobby{
		log:        log,
		listeners:  make(map[*listener]struct{}, cfg.MaxListeners),
		broadcasts: make(chan game.Game),
		adds:       make(chan *listener),
		removes:    make(chan *listener),
		done:       make(chan struct{}),
		Config:     cfg,
	}
	return &l, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(log log.Logger) error {
	switch {
	case log == nil:
		return fmt.Errorf("log required")
	case cfg.MaxListeners <= 0:
		return fmt.Errorf("must allow at least one listener")
	case cfg.BufferSize <= 0:
		return fmt.Errorf("positive buffer size required")
	}
	return nil
}

// Run sends broadcast games to the listeners until the context is closed.
// The channels of the listeners are closed when the lobby stops running.
func (l *Lobby) Run(ctx context.Context) {
	defer func() {
		close(l.done)
		for ln := range l.listeners {
			l.removeListener(ln)
		}
	}()
	for { // BLOCKING
		select {
		case <-ctx.Done():
			return
		case ln := <-l.adds:
			l.addListener(ln)
		case ln := <-l.removes:
			l.removeListener(ln)
		case g := <-l.broadcasts:
			l.sendGame(g)
		}
	}
}

// Broadcast sends the game to the listeners of the lobby and the game.
func (l *Lobby) Broadcast(g game.Game) {
	select {
	case l.broadcasts <- g:
	case <-l.done:
	}
}

// ListenToGames creates a channel that receives every changed game.
// The channel is closed after the context is done.
func (l *Lobby) ListenToGames(ctx context.Context) (<-chan game.Game, error) {
	return l.listen(ctx, "")
}

// ListenToGame creates a channel that receives the changes to a single game.
// The channel is closed after the context is done.
func (l *Lobby) ListenToGame(ctx context.Context, id game.ID) (<-chan game.Game, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("game id required")
	}
	return l.listen(ctx, id)
}

// listen adds a listener to the lobby and removes it when the context is done.
func (l *Lobby) listen(ctx context.Context, id game.ID) (<-chan game.Game, error) {
	ln := listener{
		gameID: id,
		games:  make(chan game.Game, l.BufferSize),
		result: make(chan error, 1),
	}
	select {
	case l.adds <- &ln:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.done:
		return nil, ErrClosed
	}
	if err := <-ln.result; err != nil {
		return nil, err
	}
	go func() {
		<-ctx.Done()
		select {
		case l.removes <- &ln:
		case <-l.done:
		}
	}()
	return ln.games, nil
}

// addListener adds the listener if there is room.
func (l *Lobby) addListener(ln *listener) {
	if len(l.listeners) >= l.MaxListeners {
		ln.result <- fmt.Errorf("lobby full")
		return
	}
	l.listeners[ln] = struct{}{}
	ln.result <- nil
}

// removeListener closes the channel of the listener if it has not been removed already.
func (l *Lobby) removeListener(ln *listener) {
	if _, ok := l.listeners[ln]; !ok {
		return
	}
	delete(l.listeners, ln)
	close(ln.games)
}

// sendGame sends the game to the interested listeners, dropping ones that have fallen behind.
func (l *Lobby) sendGame(g game.Game) {
	if l.Debug {
		l.log.Printf("lobby sending game %v with state %v", g.ID, g.State)
	}
	for ln := range l.listeners {
		if len(ln.gameID) != 0 && ln.gameID != g.ID {
			continue
		}
		select {
		case ln.games <- g.Copy():
		default:
			l.log.Printf("dropping listener that is %v games behind", l.BufferSize)
			l.removeListener(ln)
		}
	}
}
