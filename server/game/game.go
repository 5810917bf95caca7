// Package game runs codenames games by the rules.
package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/jacobpatterson1549/codenames/game"
)

// Game is a game and the rules to change it.
type Game struct {
	game.Game
	playerCount int
}

const (
	// NumCards is the number of cards on a board.
	NumCards = 25
	// startingTeamCards is the number of cards of the team that moves first.
	startingTeamCards = 9
	// otherTeamCards is the number of cards of the team that moves second.
	otherTeamCards = 8
	// bystanderCards is the number of cards that belong to no team.
	bystanderCards = 7
	// maxWordCount is the largest number a captain can give with a clue.
	maxWordCount = 9
	// startingTeam is the team that gives the first clue.
	startingTeam = game.RedTeam
)

// cardTypes are the types of the cards on a new board, before they are shuffled.
func cardTypes() []game.CardType {
	types := make([]game.CardType, 0, NumCards)
	add := func(t game.CardType, n int) {
		for i := 0; i < n; i++ {
			types = append(types, t)
		}
	}
	add(startingTeam.AgentType(), startingTeamCards)
	add(startingTeam.Other().AgentType(), otherTeamCards)
	add(game.InnocentBystander, bystanderCards)
	add(game.Assassin, 1)
	return types
}

// addPlayer adds a player with a default name.  Players that are already in the game are not added again.
func (g *Game) addPlayer(id game.PlayerID, maxPlayers int) error {
	if _, ok := g.Player(id); ok {
		return nil
	}
	switch {
	case g.State == game.Finished:
		return fmt.Errorf("%w: game is finished", ErrWrongState)
	case len(g.Players) >= maxPlayers:
		return fmt.Errorf("%w: game has %v players", ErrFull, len(g.Players))
	}
	g.playerCount++
	p := game.Player{
		ID:   id,
		Name: "Player " + strconv.Itoa(g.playerCount),
		Role: game.Agent,
	}
	g.Players = append(g.Players, p)
	return nil
}

// removePlayer removes the player if teams are still being built.
func (g *Game) removePlayer(id game.PlayerID) bool {
	if g.State != game.TeamBuilding {
		return false
	}
	for i, p := range g.Players {
		if p.ID == id {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			return true
		}
	}
	return false
}

// player gets a pointer to the player in the game so it can be changed.
func (g *Game) player(id game.PlayerID) (*game.Player, error) {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrPlayerNotFound, id)
}

// changeName renames the player.
func (g *Game) changeName(id game.PlayerID, name string) error {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return fmt.Errorf("%w: name required", ErrInvalid)
	}
	if g.State == game.Finished {
		return fmt.Errorf("%w: game is finished", ErrWrongState)
	}
	p, err := g.player(id)
	if err != nil {
		return err
	}
	p.Name = name
	return nil
}

// joinTeam moves the player to a team as an agent.
func (g *Game) joinTeam(id game.PlayerID, t game.Team) error {
	if err := g.requireState(game.TeamBuilding); err != nil {
		return err
	}
	if !t.Valid() {
		return fmt.Errorf("%w: team %q", ErrInvalid, t)
	}
	p, err := g.player(id)
	if err != nil {
		return err
	}
	p.Team = t
	p.Role = game.Agent
	return nil
}

// becomeCaptain makes the player the captain of their team.  The previous captain becomes an agent.
func (g *Game) becomeCaptain(id game.PlayerID) error {
	if err := g.requireState(game.TeamBuilding); err != nil {
		return err
	}
	p, err := g.player(id)
	if err != nil {
		return err
	}
	if !p.Team.Valid() {
		return fmt.Errorf("%w: player must join a team before becoming captain", ErrNotAllowed)
	}
	for i := range g.Players {
		p2 := &g.Players[i]
		if p2.Team == p.Team && p2.Role == game.Captain {
			p2.Role = game.Agent
		}
	}
	p.Role = game.Captain
	return nil
}

// start begins the game if both teams have a captain and an agent.
func (g *Game) start(now time.Time, moveDuration time.Duration) error {
	if err := g.requireState(game.TeamBuilding); err != nil {
		return err
	}
	for _, t := range []game.Team{game.RedTeam, game.BlueTeam} {
		var captains, agents int
		for _, p := range g.TeamPlayers(t) {
			switch p.Role {
			case game.Captain:
				captains++
			case game.Agent:
				agents++
			}
		}
		if captains != 1 || agents == 0 {
			return fmt.Errorf("%w: %v need a captain and at least one agent", ErrWrongState, t)
		}
	}
	g.setTurn(game.CaptainThinkingState(startingTeam), now, moveDuration)
	return nil
}

// provideWord gives the clue of the captain to their agents.
func (g *Game) provideWord(id game.PlayerID, word string, wordCount int, now time.Time, moveDuration time.Duration) error {
	if !g.State.CaptainThinking() {
		return fmt.Errorf("%w: captain is not thinking", ErrWrongState)
	}
	t := g.State.Team()
	p, err := g.player(id)
	if err != nil {
		return err
	}
	if p.Team != t || p.Role != game.Captain {
		return fmt.Errorf("%w: only the captain of the %v can provide a word", ErrNotAllowed, t)
	}
	word = strings.TrimSpace(word)
	switch {
	case len(word) == 0:
		return fmt.Errorf("%w: word required", ErrInvalid)
	case strings.IndexFunc(word, unicode.IsSpace) >= 0:
		return fmt.Errorf("%w: word must be a single word", ErrInvalid)
	case wordCount < 1 || wordCount > maxWordCount:
		return fmt.Errorf("%w: word count must be between 1 and %v", ErrInvalid, maxWordCount)
	}
	for _, c := range g.Cards {
		if strings.EqualFold(c.Word, word) {
			return fmt.Errorf("%w: word is on the board", ErrInvalid)
		}
	}
	g.setTurn(game.TeamThinkingState(t), now, moveDuration)
	g.Word = word
	g.WordCount = wordCount
	g.GuessesLeft = wordCount + 1
	return nil
}

// chooseCard reveals the card.  The game finishes if the assassin or the last card of a team is revealed.
// The team continues if they chose their own card and have guesses left.
func (g *Game) chooseCard(id game.PlayerID, cardID game.CardID, now time.Time, moveDuration time.Duration) (finished bool, err error) {
	if !g.State.TeamThinking() {
		return false, fmt.Errorf("%w: agents are not choosing cards", ErrWrongState)
	}
	t := g.State.Team()
	p, err := g.player(id)
	if err != nil {
		return false, err
	}
	if p.Team != t || p.Role != game.Agent {
		return false, fmt.Errorf("%w: only agents of the %v can choose cards", ErrNotAllowed, t)
	}
	var c *game.Card
	for i := range g.Cards {
		if g.Cards[i].ID == cardID {
			c = &g.Cards[i]
			break
		}
	}
	switch {
	case c == nil:
		return false, fmt.Errorf("%w: card %v", ErrInvalid, cardID)
	case c.Visible:
		return false, fmt.Errorf("%w: card already chosen", ErrInvalid)
	}
	c.Visible = true
	switch {
	case c.Type == game.Assassin:
		g.finish(t.Other())
	case c.Type.Team().Valid() && g.CardsLeft(c.Type) == 0:
		g.finish(c.Type.Team())
	case c.Type == t.AgentType() && g.GuessesLeft > 1:
		g.GuessesLeft--
	default:
		g.passTurn(now, moveDuration)
	}
	return g.State == game.Finished, nil
}

// finishMove ends the turn of the agents.
func (g *Game) finishMove(id game.PlayerID, now time.Time, moveDuration time.Duration) error {
	if !g.State.TeamThinking() {
		return fmt.Errorf("%w: agents are not choosing cards", ErrWrongState)
	}
	t := g.State.Team()
	p, err := g.player(id)
	if err != nil {
		return err
	}
	if p.Team != t {
		return fmt.Errorf("%w: only the %v can finish their move", ErrNotAllowed, t)
	}
	g.passTurn(now, moveDuration)
	return nil
}

// timerExpired passes the turn if the time for the move has passed.
func (g *Game) timerExpired(now time.Time, moveDuration time.Duration) bool {
	if !game.InProgressStates.Contains(g.State) || g.TimerEnd == nil || now.Before(*g.TimerEnd) {
		return false
	}
	g.passTurn(now, moveDuration)
	return true
}

// passTurn lets the captain of the other team think of a clue.
func (g *Game) passTurn(now time.Time, moveDuration time.Duration) {
	t := g.State.Team().Other()
	g.setTurn(game.CaptainThinkingState(t), now, moveDuration)
}

// setTurn changes the state, clears the clue, and restarts the timer.
func (g *Game) setTurn(s game.State, now time.Time, moveDuration time.Duration) {
	g.State = s
	g.Word = ""
	g.WordCount = 0
	g.GuessesLeft = 0
	end := now.Add(moveDuration)
	g.TimerEnd = &end
}

// finish ends the game with the winner.
func (g *Game) finish(winner game.Team) {
	g.State = game.Finished
	g.Winner = winner
	g.Word = ""
	g.WordCount = 0
	g.GuessesLeft = 0
	g.TimerEnd = nil
}

// requireState ensures the game is in the state.
func (g *Game) requireState(s game.State) error {
	if g.State != s {
		return fmt.Errorf("%w: game is %v", ErrWrongState, g.State)
	}
	return nil
}
