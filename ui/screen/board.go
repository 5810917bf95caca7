package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jacobpatterson1549/codenames/game"
	"github.com/jacobpatterson1549/codenames/ui/router"
)

// ErrNoGame is returned by actions when a screen is not showing a game.
var ErrNoGame = errors.New("no game shown")

// Board is the screen of a game that has started.
type Board struct {
	log        Log
	api        BoardAPI
	games      Games
	nav        Navigator
	mu         sync.Mutex
	game       *game.Game
	amICaptain bool
}

// NewBoard creates the game board screen.
func NewBoard(log Log, a BoardAPI, games Games, nav Navigator) (*Board, error) {
	switch {
	case log == nil:
		return nil, fmt.Errorf("creating board screen: log required")
	case a == nil:
		return nil, fmt.Errorf("creating board screen: api required")
	case games == nil:
		return nil, fmt.Errorf("creating board screen: games required")
	case nav == nil:
		return nil, fmt.Errorf("creating board screen: navigator required")
	}
	b := Board{
		log:   log,
		api:   a,
		games: games,
		nav:   nav,
	}
	return &b, nil
}

// Bind shows the game.  The lobby is shown if the game is not known.
func (b *Board) Bind(id game.ID) {
	g, ok := b.games.Game(id)
	if !ok {
		b.log.Error(fmt.Sprintf("game %v not found", id))
		b.Unbind()
		b.nav.NavTo(router.Lobby, "")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.game = g
	b.amICaptain = g.IsCaptain(b.games.PlayerID())
}

// Unbind stops showing the game.
func (b *Board) Unbind() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.game = nil
	b.amICaptain = false
}

// Game is a copy of the game being shown, if any.
func (b *Board) Game() (*game.Game, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.game == nil {
		return nil, false
	}
	g := b.game.Copy()
	return &g, true
}

// AmICaptain determines if the player is a captain in the shown game.
func (b *Board) AmICaptain() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.amICaptain
}

// Cards are the cards of the shown game as the player sees them.
func (b *Board) Cards() []game.Card {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.game == nil {
		return nil
	}
	cards := make([]game.Card, len(b.game.Cards))
	for i, c := range b.game.Cards {
		c.Type = c.DisplayType(b.amICaptain)
		cards[i] = c
	}
	return cards
}

// OnGameUpdated merges changes to the shown game.  The lobby is shown if the game is no longer on a board.
func (b *Board) OnGameUpdated(g game.Game) {
	b.mu.Lock()
	if b.game == nil || b.game.ID != g.ID {
		b.mu.Unlock()
		return
	}
	if !game.BoardStates.Contains(g.State) {
		b.game = nil
		b.amICaptain = false
		b.mu.Unlock()
		b.nav.NavTo(router.Lobby, "")
		return
	}
	b.game = &g
	p, ok := g.Player(b.games.PlayerID())
	if ok {
		b.amICaptain = p.Role == game.Captain
	}
	b.mu.Unlock()
	if ok && g.State == game.Finished {
		b.log.Info("Game finished")
	}
}

// SubmitWord gives the clue of the captain to the agents.
func (b *Board) SubmitWord(ctx context.Context, word string, wordCount int) error {
	word = strings.TrimSpace(word)
	if len(word) == 0 {
		return fmt.Errorf("submitting word: word required")
	}
	gameID, playerID, err := b.ids()
	if err != nil {
		return err
	}
	if err := b.api.ProvideWord(ctx, gameID, playerID, word, wordCount); err != nil {
		return fmt.Errorf("submitting word: %w", err)
	}
	return nil
}

// ChooseCard reveals the card as a guess.
func (b *Board) ChooseCard(ctx context.Context, cardID game.CardID) error {
	gameID, playerID, err := b.ids()
	if err != nil {
		return err
	}
	if err := b.api.ChooseCard(ctx, gameID, playerID, cardID); err != nil {
		return fmt.Errorf("choosing card: %w", err)
	}
	return nil
}

// FinishMove ends the turn of the team.
func (b *Board) FinishMove(ctx context.Context) error {
	gameID, playerID, err := b.ids()
	if err != nil {
		return err
	}
	if err := b.api.FinishMove(ctx, gameID, playerID); err != nil {
		return fmt.Errorf("finishing move: %w", err)
	}
	return nil
}

func (b *Board) ids() (game.ID, game.PlayerID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.game == nil {
		return "", "", ErrNoGame
	}
	return b.game.ID, b.games.PlayerID(), nil
}
