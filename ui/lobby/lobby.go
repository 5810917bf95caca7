// Package lobby keeps the list of games in sync with the server and manages the channel of the game the player joined.
package lobby

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/ui/api"
	"github.com/jacobpatterson1549/codenames/ui/bus"
	"github.com/jacobpatterson1549/codenames/ui/socket"
)

type (
	// Lobby holds the games on the server and the identity of the player.
	Lobby struct {
		log         Log
		api         API
		publisher   Publisher
		lobbySocket Socket
		gameSocket  Socket
		mu          sync.RWMutex
		games       []game.Game
		playerID    game.PlayerID
		joinMu      sync.Mutex
		joinedID    game.ID
	}

	// Log is used to report bad frames.
	Log interface {
		Error(text string)
		Debug(text string)
	}

	// API makes requests to the server.
	API interface {
		Games(ctx context.Context) ([]game.Game, error)
		PlayerID(ctx context.Context) (*api.Identity, error)
		CreateGame(ctx context.Context) (*game.Game, error)
		JoinGame(ctx context.Context, gameID game.ID, playerID game.PlayerID) error
		WebSocketURL(path string, params url.Values) string
	}

	// Publisher broadcasts updated games to the screens.
	Publisher interface {
		Publish(t bus.Topic, g game.Game)
	}

	// Socket is a push channel from the server.
	Socket interface {
		Connect(ctx context.Context, url string, h socket.Handler) error
		Close()
		IsOpen() bool
	}
)

const (
	listenToGamesPath  = "/listenToGames"
	joinGameListenPath = "/joinGame/listen"
)

// New creates a lobby.
// The lobby socket receives every game change.  The game socket tells the server the player is still in the joined game.
func New(log Log, a API, p Publisher, lobbySocket, gameSocket Socket) (*Lobby, error) {
	switch {
	case log == nil:
		return nil, fmt.Errorf("creating lobby: log required")
	case a == nil:
		return nil, fmt.Errorf("creating lobby: api required")
	case p == nil:
		return nil, fmt.Errorf("creating lobby: publisher required")
	case lobbySocket == nil, gameSocket == nil:
		return nil, fmt.Errorf("creating lobby: sockets required")
	}
	l := Lobby{
		log:         log,
		api:         a,
		publisher:   p,
		lobbySocket: lobbySocket,
		gameSocket:  gameSocket,
	}
	return &l, nil
}

// ReadGames replaces the games with the ones the server has.
func (l *Lobby) ReadGames(ctx context.Context) error {
	games, err := l.api.Games(ctx)
	if err != nil {
		return fmt.Errorf("reading games: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.games = games
	return nil
}

// ReadPlayerID asks the server for the identity of the player.
func (l *Lobby) ReadPlayerID(ctx context.Context) error {
	id, err := l.api.PlayerID(ctx)
	if err != nil {
		return fmt.Errorf("reading player id: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.playerID = id.PlayerID
	return nil
}

// CreateGame asks the server to create a game.  The game is added when the server pushes it.
func (l *Lobby) CreateGame(ctx context.Context) error {
	if _, err := l.api.CreateGame(ctx); err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	return nil
}

// Listen opens the channel that pushes game changes, closing the previous one first.
func (l *Lobby) Listen(ctx context.Context) error {
	if l.lobbySocket.IsOpen() {
		l.lobbySocket.Close()
	}
	u := l.api.WebSocketURL(listenToGamesPath, nil)
	if err := l.lobbySocket.Connect(ctx, u, l.handleGameFrame); err != nil {
		return fmt.Errorf("listening to games: %w", err)
	}
	return nil
}

// JoinGame closes the channel to the game the player was in, waiting for it to close,
// before joining the game and opening a channel to it.
func (l *Lobby) JoinGame(ctx context.Context, g game.Game) error {
	l.joinMu.Lock()
	defer l.joinMu.Unlock()
	if l.gameSocket.IsOpen() {
		l.gameSocket.Close() // BLOCKING
		l.setJoinedID("")
	}
	playerID := l.PlayerID()
	if err := l.api.JoinGame(ctx, g.ID, playerID); err != nil {
		return fmt.Errorf("joining game: %w", err)
	}
	params := make(url.Values, 2)
	params.Set("gameId", string(g.ID))
	params.Set("playerId", string(playerID))
	u := l.api.WebSocketURL(joinGameListenPath, params)
	if err := l.gameSocket.Connect(ctx, u, l.handleMembershipFrame); err != nil {
		return fmt.Errorf("notifying server of joined game: %w", err)
	}
	l.setJoinedID(g.ID)
	return nil
}

// Close closes the channels to the server.
func (l *Lobby) Close() {
	l.joinMu.Lock()
	defer l.joinMu.Unlock()
	l.gameSocket.Close()
	l.setJoinedID("")
	l.lobbySocket.Close()
}

// Games gets a copy of the games, in the order they were received.
func (l *Lobby) Games() []game.Game {
	l.mu.RLock()
	defer l.mu.RUnlock()
	games := make([]game.Game, len(l.games))
	for i, g := range l.games {
		games[i] = g.Copy()
	}
	return games
}

// Game gets a copy of the game with the id.
func (l *Lobby) Game(id game.ID) (*game.Game, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexOf(id); i >= 0 {
		g := l.games[i].Copy()
		return &g, true
	}
	return nil, false
}

// PlayerID is the identity of the player, if it has been read.
func (l *Lobby) PlayerID() game.PlayerID {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.playerID
}

// JoinedGameID is the game the player is in, if any.
func (l *Lobby) JoinedGameID() game.ID {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.joinedID
}

// setJoinedID sets the game the player is in.
func (l *Lobby) setJoinedID(id game.ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.joinedID = id
}

// handleGameFrame merges the game in the frame with the others and publishes it.
// Games are replaced in place if they exist and appended if they do not.
func (l *Lobby) handleGameFrame(data []byte) {
	var g game.Game
	if err := json.Unmarshal(data, &g); err != nil {
		l.log.Error(string(data))
		l.log.Error(fmt.Sprintf("unmarshalling game frame: %v", err))
		return
	}
	l.mu.Lock()
	switch i := l.indexOf(g.ID); {
	case i >= 0:
		l.games[i] = g
	default:
		l.games = append(l.games, g)
	}
	l.mu.Unlock()
	l.publisher.Publish(bus.GameUpdated, g)
}

// handleMembershipFrame logs the frames of the joined game.  Changes to games are handled from the lobby socket.
func (l *Lobby) handleMembershipFrame(data []byte) {
	l.log.Debug("joined game frame: " + string(data))
}

// indexOf finds the index of the game, or -1 if it does not exist.  The lock must be held.
func (l *Lobby) indexOf(id game.ID) int {
	for i, g := range l.games {
		if g.ID == id {
			return i
		}
	}
	return -1
}
