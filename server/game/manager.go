package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/server/log"
)

type (
	// Manager runs games, changing them by the rules and publishing every change.
	Manager struct {
		log         log.Logger
		broadcaster Broadcaster
		results     ResultSaver
		mu          sync.Mutex
		games       map[game.ID]*Game
		order       []game.ID
		ManagerConfig
	}

	// ManagerConfig is used to create a game Manager.
	ManagerConfig struct {
		// Debug is a flag that causes the manager to log every change to games.
		Debug bool
		// TimeFunc is a function which should supply the current time since the unix epoch.
		// Used to set the timers of moves.
		TimeFunc func() int64
		// MoveDuration is the amount of time a captain or the agents have to move.
		MoveDuration time.Duration
		// TimerPeriod is how often the timers of games are checked.
		TimerPeriod time.Duration
		// MaxGames is the maximum number of games that can be run at once.
		MaxGames int
		// MaxPlayers is the maximum number of players that can join a game.
		MaxPlayers int
		// Words are the codenames that cards are drawn from.
		Words []string
		// ShuffleFunc shuffles n items by swapping them.  The signature matches rand.Shuffle.
		ShuffleFunc func(n int, swap func(i, j int))
		// IDFunc creates unique ids for games and cards.
		IDFunc func() string
		// ResultTimeout is how long to wait for a finished game to be saved.
		ResultTimeout time.Duration
	}

	// Broadcaster publishes changed games to the players listening to them.
	Broadcaster interface {
		Broadcast(g game.Game)
	}

	// ResultSaver stores the results of finished games.
	ResultSaver interface {
		SaveResult(ctx context.Context, r game.Result) error
	}
)

// NewManager creates a new game manager from the config.
func (cfg ManagerConfig) NewManager(log log.Logger, b Broadcaster, rs ResultSaver) (*Manager, error) {
	if err := cfg.validate(log, b, rs); err != nil {
		return nil, fmt.Errorf("creating game manager: validation: %w", err)
	}
	m := Manager{
		log:           log,
		broadcaster:   b,
		results:       rs,
		games:         make(map[game.ID]*Game, cfg.MaxGames),
		ManagerConfig: cfg,
	}
	return &m, nil
}

// validate ensures the configuration has no errors.
func (cfg ManagerConfig) validate(log log.Logger, b Broadcaster, rs ResultSaver) error {
	switch {
	case log == nil:
		return fmt.Errorf("log required")
	case b == nil:
		return fmt.Errorf("broadcaster required")
	case rs == nil:
		return fmt.Errorf("result saver required")
	case cfg.TimeFunc == nil:
		return fmt.Errorf("time func required")
	case cfg.MoveDuration <= 0:
		return fmt.Errorf("positive move duration required")
	case cfg.TimerPeriod <= 0:
		return fmt.Errorf("positive timer period required")
	case cfg.MaxGames < 1:
		return fmt.Errorf("must be able to create at least one game")
	case cfg.MaxPlayers < 4:
		return fmt.Errorf("games must allow at least four players")
	case len(cfg.Words) < NumCards:
		return fmt.Errorf("at least %v words required, got %v", NumCards, len(cfg.Words))
	case cfg.ShuffleFunc == nil:
		return fmt.Errorf("shuffle func required")
	case cfg.IDFunc == nil:
		return fmt.Errorf("id func required")
	case cfg.ResultTimeout <= 0:
		return fmt.Errorf("positive result timeout required")
	}
	return nil
}

// Run checks the timers of games until the context is done.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.TimerPeriod)
	defer ticker.Stop()
	for { // BLOCKING
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.checkTimers()
		}
	}
}

// Games gets copies of the games, oldest first.
func (m *Manager) Games() []game.Game {
	m.mu.Lock()
	defer m.mu.Unlock()
	games := make([]game.Game, 0, len(m.order))
	for _, id := range m.order {
		games = append(games, m.games[id].Copy())
	}
	return games
}

// Game gets a copy of the game.
func (m *Manager) Game(id game.ID) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrGameNotFound, id)
	}
	g2 := g.Copy()
	return &g2, nil
}

// Create makes a game with a new board.  The oldest finished game is removed if there are too many games.
func (m *Manager) Create() (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.games) >= m.MaxGames && !m.removeFinishedGame() {
		return nil, fmt.Errorf("%w: the maximum number of games have already been created (%v)", ErrFull, m.MaxGames)
	}
	g := Game{
		Game: game.Game{
			ID:      game.ID(m.IDFunc()),
			State:   game.TeamBuilding,
			Players: []game.Player{},
			Cards:   m.newCards(),
		},
	}
	m.games[g.ID] = &g
	m.order = append(m.order, g.ID)
	m.broadcast(&g)
	g2 := g.Copy()
	return &g2, nil
}

// Join adds the player to the game.
func (m *Manager) Join(id game.ID, playerID game.PlayerID) error {
	return m.update(id, func(g *Game) error {
		return g.addPlayer(playerID, m.MaxPlayers)
	})
}

// Leave removes the player from the game if teams are still being built.
func (m *Manager) Leave(id game.ID, playerID game.PlayerID) error {
	return m.update(id, func(g *Game) error {
		if !g.removePlayer(playerID) {
			return errUnchanged
		}
		return nil
	})
}

// ChangePlayerName renames the player in the game.
func (m *Manager) ChangePlayerName(id game.ID, playerID game.PlayerID, name string) error {
	return m.update(id, func(g *Game) error {
		return g.changeName(playerID, name)
	})
}

// JoinTeam moves the player to the team.
func (m *Manager) JoinTeam(id game.ID, playerID game.PlayerID, t game.Team) error {
	return m.update(id, func(g *Game) error {
		return g.joinTeam(playerID, t)
	})
}

// BecomeCaptain makes the player the captain of their team.
func (m *Manager) BecomeCaptain(id game.ID, playerID game.PlayerID) error {
	return m.update(id, func(g *Game) error {
		return g.becomeCaptain(playerID)
	})
}

// Start starts the game.
func (m *Manager) Start(id game.ID) error {
	return m.update(id, func(g *Game) error {
		return g.start(m.now(), m.MoveDuration)
	})
}

// ProvideWord gives the clue of the captain.
func (m *Manager) ProvideWord(id game.ID, playerID game.PlayerID, word string, wordCount int) error {
	return m.update(id, func(g *Game) error {
		return g.provideWord(playerID, word, wordCount, m.now(), m.MoveDuration)
	})
}

// ChooseCard reveals the card.  The result is saved if the game finishes.
func (m *Manager) ChooseCard(ctx context.Context, id game.ID, playerID game.PlayerID, cardID game.CardID) error {
	var result *game.Result
	err := m.update(id, func(g *Game) error {
		finished, err := g.chooseCard(playerID, cardID, m.now(), m.MoveDuration)
		if err != nil {
			return err
		}
		if finished {
			r := game.NewResult(g.Game, m.now())
			result = &r
		}
		return nil
	})
	if err != nil || result == nil {
		return err
	}
	m.saveResult(ctx, *result)
	return nil
}

// FinishMove ends the turn of the agents.
func (m *Manager) FinishMove(id game.ID, playerID game.PlayerID) error {
	return m.update(id, func(g *Game) error {
		return g.finishMove(playerID, m.now(), m.MoveDuration)
	})
}

// errUnchanged is returned by updates that did not change the game.  It is not returned to callers.
var errUnchanged = errors.New("game unchanged")

// update changes the game with the function and broadcasts it.
// The lock is held while broadcasting so changes are published in order.
func (m *Manager) update(id game.ID, fn func(g *Game) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return fmt.Errorf("%w: %v", ErrGameNotFound, id)
	}
	if err := fn(g); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	m.broadcast(g)
	return nil
}

// checkTimers passes the turn of games that have run out of time.
func (m *Manager) checkTimers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for _, id := range m.order {
		g := m.games[id]
		if g.timerExpired(now, m.MoveDuration) {
			if m.Debug {
				m.log.Printf("timer expired for game %v, now %v", g.ID, g.State)
			}
			m.broadcast(g)
		}
	}
}

// removeFinishedGame removes the oldest finished game, returning false if there are none.
func (m *Manager) removeFinishedGame() bool {
	for i, id := range m.order {
		if m.games[id].State == game.Finished {
			delete(m.games, id)
			m.order = append(m.order[:i], m.order[i+1:]...)
			return true
		}
	}
	return false
}

// newCards draws words and shuffles the types of the cards.
func (m *Manager) newCards() []game.Card {
	words := make([]string, len(m.Words))
	copy(words, m.Words)
	m.ShuffleFunc(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	types := cardTypes()
	m.ShuffleFunc(len(types), func(i, j int) {
		types[i], types[j] = types[j], types[i]
	})
	cards := make([]game.Card, NumCards)
	for i := range cards {
		cards[i] = game.Card{
			ID:   game.CardID(m.IDFunc()),
			Word: words[i],
			Type: types[i],
		}
	}
	return cards
}

// broadcast publishes a copy of the game.
func (m *Manager) broadcast(g *Game) {
	if m.Debug {
		m.log.Printf("game %v changed: %v", g.ID, g.State)
	}
	m.broadcaster.Broadcast(g.Copy())
}

// saveResult stores the result of the game, logging failures.
func (m *Manager) saveResult(ctx context.Context, r game.Result) {
	ctx, cancelFunc := context.WithTimeout(ctx, m.ResultTimeout)
	defer cancelFunc()
	if err := m.results.SaveResult(ctx, r); err != nil {
		m.log.Printf("saving result of game %v: %v", r.GameID, err)
	}
}

// now is the current time, from the TimeFunc.
func (m *Manager) now() time.Time {
	return time.Unix(m.TimeFunc(), 0)
}
