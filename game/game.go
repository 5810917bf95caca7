// Package game contains the structures shared by the server and the ui to describe a game of codenames.
package game

import "time"

type (
	// ID identifies a game.
	ID string

	// Game is the full shape of a game that is sent in list responses and in every push frame.
	Game struct {
		// ID is unique among the other games that currently exist.
		ID ID `json:"gameId"`
		// State is the step of the game.
		State State `json:"state"`
		// Players are the members of the game, in the order they joined.
		Players []Player `json:"players"`
		// Cards are the codenames on the board.
		Cards []Card `json:"cards,omitempty"`
		// Word is the clue the captain of the current team provided.
		Word string `json:"word"`
		// WordCount is the number of cards the captain claims the clue relates to.
		WordCount int `json:"wordCount"`
		// GuessesLeft is the number of cards the thinking team can still choose this turn.
		GuessesLeft int `json:"guessesLeft,omitempty"`
		// TimerEnd is when the current move is forced to end.  It is nil when no timer is running.
		TimerEnd *time.Time `json:"timerEnd"`
		// Winner is the team that won the game, if it is finished.
		Winner Team `json:"winner,omitempty"`
	}
)

// Player finds the member of the game with the id.
func (g Game) Player(id PlayerID) (*Player, bool) {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i], true
		}
	}
	return nil, false
}

// Card finds the card on the board with the id.
func (g Game) Card(id CardID) (*Card, bool) {
	for i := range g.Cards {
		if g.Cards[i].ID == id {
			return &g.Cards[i], true
		}
	}
	return nil, false
}

// IsCaptain determines if the player is a member of the game with the captain role.
func (g Game) IsCaptain(id PlayerID) bool {
	p, ok := g.Player(id)
	return ok && p.Role == Captain
}

// Captain gets the captain of the team, if the team has one.
func (g Game) Captain(t Team) (*Player, bool) {
	for i := range g.Players {
		p := &g.Players[i]
		if p.Team == t && p.Role == Captain {
			return p, true
		}
	}
	return nil, false
}

// TeamPlayers gets the players on the team.
func (g Game) TeamPlayers(t Team) []Player {
	var players []Player
	for _, p := range g.Players {
		if p.Team == t {
			players = append(players, p)
		}
	}
	return players
}

// CardsLeft counts the hidden cards that belong to the type.
func (g Game) CardsLeft(t CardType) int {
	n := 0
	for _, c := range g.Cards {
		if c.Type == t && !c.Visible {
			n++
		}
	}
	return n
}

// Copy creates a deep copy of the game so it can be changed without affecting the original.
func (g Game) Copy() Game {
	g2 := g
	if g.Players != nil {
		g2.Players = make([]Player, len(g.Players))
		copy(g2.Players, g.Players)
	}
	if g.Cards != nil {
		g2.Cards = make([]Card, len(g.Cards))
		copy(g2.Cards, g.Cards)
	}
	if g.TimerEnd != nil {
		t := *g.TimerEnd
		g2.TimerEnd = &t
	}
	return g2
}
