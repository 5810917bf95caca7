package game

import (
	"errors"
	"testing"
	"time"

	"github.com/jacobpatterson1549/codenames/game"
)

const testMoveDuration = time.Minute

var testNow = time.Unix(1000, 0)

// newTestGame creates a started game with red cards first, then blue, then bystanders, then the assassin.
// The red captain is r1, the red agent is r2, the blue captain is b1, and the blue agent is b2.
func newTestGame(t *testing.T) *Game {
	t.Helper()
	types := cardTypes()
	g := Game{
		Game: game.Game{
			ID:    "g",
			State: game.TeamBuilding,
			Cards: make([]game.Card, len(types)),
		},
	}
	for i, ct := range types {
		g.Cards[i] = game.Card{
			ID:   game.CardID(string(rune('a' + i))),
			Word: "word" + string(rune('a'+i)),
			Type: ct,
		}
	}
	for _, p := range []struct {
		id      game.PlayerID
		team    game.Team
		captain bool
	}{
		{"r1", game.RedTeam, true},
		{"r2", game.RedTeam, false},
		{"b1", game.BlueTeam, true},
		{"b2", game.BlueTeam, false},
	} {
		if err := g.addPlayer(p.id, 10); err != nil {
			t.Fatalf("adding player: %v", err)
		}
		if err := g.joinTeam(p.id, p.team); err != nil {
			t.Fatalf("joining team: %v", err)
		}
		if p.captain {
			if err := g.becomeCaptain(p.id); err != nil {
				t.Fatalf("becoming captain: %v", err)
			}
		}
	}
	if err := g.start(testNow, testMoveDuration); err != nil {
		t.Fatalf("starting game: %v", err)
	}
	return &g
}

func TestCardTypes(t *testing.T) {
	counts := make(map[game.CardType]int)
	for _, ct := range cardTypes() {
		counts[ct]++
	}
	want := map[game.CardType]int{
		game.RedAgent:          9,
		game.BlueAgent:         8,
		game.InnocentBystander: 7,
		game.Assassin:          1,
	}
	for ct, n := range want {
		if counts[ct] != n {
			t.Errorf("wanted %v cards of type %v, got %v", n, ct, counts[ct])
		}
	}
	if len(cardTypes()) != NumCards {
		t.Errorf("wanted %v cards", NumCards)
	}
}

func TestAddPlayer(t *testing.T) {
	var g Game
	g.State = game.TeamBuilding
	for _, id := range []game.PlayerID{"a", "b", "a"} {
		if err := g.addPlayer(id, 2); err != nil {
			t.Fatalf("adding player %v: %v", id, err)
		}
	}
	switch {
	case len(g.Players) != 2:
		t.Errorf("wanted rejoining to be ignored, got players %v", g.Players)
	case g.Players[0].Name != "Player 1", g.Players[1].Name != "Player 2":
		t.Errorf("wanted default names, got %v", g.Players)
	case g.Players[1].Role != game.Agent, g.Players[1].Team != "":
		t.Errorf("wanted new player to be an agent without a team, got %v", g.Players[1])
	}
	if err := g.addPlayer("c", 2); !errors.Is(err, ErrFull) {
		t.Errorf("wanted ErrFull, got %v", err)
	}
	g.removePlayer("b")
	if err := g.addPlayer("c", 2); err != nil {
		t.Errorf("adding player after one left: %v", err)
	}
	if want, got := "Player 3", g.Players[1].Name; want != got {
		t.Errorf("wanted name of player after one left to be %q, got %q", want, got)
	}
	g.State = game.Finished
	if err := g.addPlayer("d", 10); !errors.Is(err, ErrWrongState) {
		t.Errorf("wanted ErrWrongState joining finished game, got %v", err)
	}
}

func TestRemovePlayer(t *testing.T) {
	g := newTestGame(t)
	if g.removePlayer("r2") {
		t.Errorf("wanted player to stay in game that has started")
	}
	g.State = game.TeamBuilding
	switch {
	case !g.removePlayer("r2"):
		t.Errorf("wanted player to be removed during team building")
	case g.removePlayer("r2"):
		t.Errorf("wanted second removal to do nothing")
	case len(g.Players) != 3:
		t.Errorf("wanted 3 players, got %v", g.Players)
	}
}

func TestChangeName(t *testing.T) {
	g := newTestGame(t)
	changeNameTests := []struct {
		id      game.PlayerID
		name    string
		state   game.State
		wantErr error
	}{
		{"r1", "  Ann ", game.RedTeamThinking, nil},
		{"r1", "  ", game.RedTeamThinking, ErrInvalid},
		{"x", "Ann", game.TeamBuilding, ErrPlayerNotFound},
		{"r1", "Ann", game.Finished, ErrWrongState},
	}
	for i, test := range changeNameTests {
		g.State = test.state
		err := g.changeName(test.id, test.name)
		switch {
		case !errors.Is(err, test.wantErr):
			t.Errorf("Test %v: wanted error %v, got %v", i, test.wantErr, err)
		case err == nil && g.Players[0].Name != "Ann":
			t.Errorf("Test %v: wanted trimmed name, got %q", i, g.Players[0].Name)
		}
	}
}

func TestJoinTeamAndBecomeCaptain(t *testing.T) {
	g := Game{
		Game: game.Game{
			State: game.TeamBuilding,
		},
	}
	for _, id := range []game.PlayerID{"a", "b", "c"} {
		if err := g.addPlayer(id, 10); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.becomeCaptain("a"); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("wanted ErrNotAllowed becoming captain without team, got %v", err)
	}
	if err := g.joinTeam("a", "GreenAgents"); !errors.Is(err, ErrInvalid) {
		t.Errorf("wanted ErrInvalid joining unknown team, got %v", err)
	}
	for _, id := range []game.PlayerID{"a", "b", "c"} {
		if err := g.joinTeam(id, game.RedTeam); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.becomeCaptain("a"); err != nil {
		t.Fatal(err)
	}
	if err := g.becomeCaptain("b"); err != nil {
		t.Fatal(err)
	}
	if g.Players[0].Role != game.Agent || g.Players[1].Role != game.Captain {
		t.Errorf("wanted previous captain to be demoted: %v", g.Players)
	}
	if err := g.joinTeam("b", game.BlueTeam); err != nil {
		t.Fatal(err)
	}
	if g.Players[1].Role != game.Agent {
		t.Errorf("wanted captain changing teams to become an agent: %v", g.Players[1])
	}
	g.State = game.RedCaptainThinking
	if err := g.joinTeam("a", game.BlueTeam); !errors.Is(err, ErrWrongState) {
		t.Errorf("wanted ErrWrongState joining team after start, got %v", err)
	}
	if err := g.becomeCaptain("a"); !errors.Is(err, ErrWrongState) {
		t.Errorf("wanted ErrWrongState becoming captain after start, got %v", err)
	}
}

func TestStart(t *testing.T) {
	startTests := []struct {
		roles   map[game.PlayerID][2]string
		wantErr error
	}{
		{
			roles: map[game.PlayerID][2]string{
				"r1": {string(game.RedTeam), string(game.Captain)},
				"r2": {string(game.RedTeam), string(game.Agent)},
				"b1": {string(game.BlueTeam), string(game.Captain)},
			},
			wantErr: ErrWrongState,
		},
		{
			roles: map[game.PlayerID][2]string{
				"r1": {string(game.RedTeam), string(game.Agent)},
				"r2": {string(game.RedTeam), string(game.Agent)},
				"b1": {string(game.BlueTeam), string(game.Captain)},
				"b2": {string(game.BlueTeam), string(game.Agent)},
			},
			wantErr: ErrWrongState,
		},
		{
			roles: map[game.PlayerID][2]string{
				"r1": {string(game.RedTeam), string(game.Captain)},
				"r2": {string(game.RedTeam), string(game.Agent)},
				"b1": {string(game.BlueTeam), string(game.Captain)},
				"b2": {string(game.BlueTeam), string(game.Agent)},
				"x":  {"", string(game.Agent)},
			},
		},
	}
	for i, test := range startTests {
		g := Game{
			Game: game.Game{
				State: game.TeamBuilding,
			},
		}
		for id, r := range test.roles {
			g.Players = append(g.Players, game.Player{ID: id, Team: game.Team(r[0]), Role: game.Role(r[1])})
		}
		err := g.start(testNow, testMoveDuration)
		switch {
		case !errors.Is(err, test.wantErr):
			t.Errorf("Test %v: wanted error %v, got %v", i, test.wantErr, err)
		case err != nil:
		case g.State != game.RedCaptainThinking:
			t.Errorf("Test %v: wanted red captain to think first, got %v", i, g.State)
		case g.TimerEnd == nil || !g.TimerEnd.Equal(testNow.Add(testMoveDuration)):
			t.Errorf("Test %v: wanted timer to be set, got %v", i, g.TimerEnd)
		}
	}
}

func TestProvideWord(t *testing.T) {
	provideWordTests := []struct {
		id        game.PlayerID
		word      string
		wordCount int
		state     game.State
		wantErr   error
	}{
		{"r1", "fruit", 2, game.RedCaptainThinking, nil},
		{"r1", " Fruit ", 9, game.RedCaptainThinking, nil},
		{"r1", "fruit", 2, game.RedTeamThinking, ErrWrongState},
		{"r2", "fruit", 2, game.RedCaptainThinking, ErrNotAllowed},
		{"b1", "fruit", 2, game.RedCaptainThinking, ErrNotAllowed},
		{"x", "fruit", 2, game.RedCaptainThinking, ErrPlayerNotFound},
		{"r1", "", 2, game.RedCaptainThinking, ErrInvalid},
		{"r1", "two words", 2, game.RedCaptainThinking, ErrInvalid},
		{"r1", "WORDC", 2, game.RedCaptainThinking, ErrInvalid},
		{"r1", "fruit", 0, game.RedCaptainThinking, ErrInvalid},
		{"r1", "fruit", 10, game.RedCaptainThinking, ErrInvalid},
		{"b1", "fruit", 3, game.BlueCaptainThinking, nil},
	}
	for i, test := range provideWordTests {
		g := newTestGame(t)
		g.State = test.state
		later := testNow.Add(time.Second)
		err := g.provideWord(test.id, test.word, test.wordCount, later, testMoveDuration)
		switch {
		case !errors.Is(err, test.wantErr):
			t.Errorf("Test %v: wanted error %v, got %v", i, test.wantErr, err)
		case err != nil:
		case g.State != game.TeamThinkingState(test.state.Team()):
			t.Errorf("Test %v: wanted agents to think, got %v", i, g.State)
		case g.WordCount != test.wordCount, g.GuessesLeft != test.wordCount+1:
			t.Errorf("Test %v: wanted word count %v and one extra guess, got %v, %v", i, test.wordCount, g.WordCount, g.GuessesLeft)
		case g.Word == "" || g.Word[0] == ' ':
			t.Errorf("Test %v: wanted trimmed word, got %q", i, g.Word)
		case !g.TimerEnd.Equal(later.Add(testMoveDuration)):
			t.Errorf("Test %v: wanted timer reset", i)
		}
	}
}

func TestChooseCard(t *testing.T) {
	const (
		red       = "a" // first of 9 red cards
		lastRed   = "i"
		blue      = "j" // first of 8 blue cards
		bystander = "r"
		assassin  = "y"
	)
	chooseCardTests := []struct {
		id              game.PlayerID
		cardID          game.CardID
		guessesLeft     int
		revealRedBefore bool
		wantErr         error
		wantState       game.State
		wantGuessesLeft int
		wantWinner      game.Team
	}{
		{id: "r2", cardID: red, guessesLeft: 3, wantState: game.RedTeamThinking, wantGuessesLeft: 2},
		{id: "r2", cardID: red, guessesLeft: 1, wantState: game.BlueCaptainThinking},
		{id: "r2", cardID: blue, guessesLeft: 3, wantState: game.BlueCaptainThinking},
		{id: "r2", cardID: bystander, guessesLeft: 3, wantState: game.BlueCaptainThinking},
		{id: "r2", cardID: assassin, guessesLeft: 3, wantState: game.Finished, wantWinner: game.BlueTeam},
		{id: "r2", cardID: lastRed, guessesLeft: 3, revealRedBefore: true, wantState: game.Finished, wantWinner: game.RedTeam},
		{id: "r1", cardID: red, guessesLeft: 3, wantErr: ErrNotAllowed},
		{id: "b2", cardID: red, guessesLeft: 3, wantErr: ErrNotAllowed},
		{id: "x", cardID: red, guessesLeft: 3, wantErr: ErrPlayerNotFound},
		{id: "r2", cardID: "?", guessesLeft: 3, wantErr: ErrInvalid},
	}
	for i, test := range chooseCardTests {
		g := newTestGame(t)
		g.State = game.RedTeamThinking
		g.Word = "clue"
		g.GuessesLeft = test.guessesLeft
		if test.revealRedBefore {
			for j := 0; j < 8; j++ {
				g.Cards[j].Visible = true
			}
		}
		finished, err := g.chooseCard(test.id, test.cardID, testNow, testMoveDuration)
		switch {
		case !errors.Is(err, test.wantErr):
			t.Errorf("Test %v: wanted error %v, got %v", i, test.wantErr, err)
		case err != nil:
		case g.State != test.wantState:
			t.Errorf("Test %v: wanted state %v, got %v", i, test.wantState, g.State)
		case finished != (test.wantState == game.Finished):
			t.Errorf("Test %v: wanted finished to be %v", i, !finished)
		case g.Winner != test.wantWinner:
			t.Errorf("Test %v: wanted winner %q, got %q", i, test.wantWinner, g.Winner)
		case g.GuessesLeft != test.wantGuessesLeft:
			t.Errorf("Test %v: wanted %v guesses left, got %v", i, test.wantGuessesLeft, g.GuessesLeft)
		case test.wantState == game.BlueCaptainThinking && g.Word != "":
			t.Errorf("Test %v: wanted clue cleared when turn passes", i)
		case test.wantState == game.Finished && g.TimerEnd != nil:
			t.Errorf("Test %v: wanted no timer for finished game", i)
		}
	}
}

func TestChooseCardTwice(t *testing.T) {
	g := newTestGame(t)
	g.State = game.RedTeamThinking
	g.GuessesLeft = 3
	if _, err := g.chooseCard("r2", "a", testNow, testMoveDuration); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if _, err := g.chooseCard("r2", "a", testNow, testMoveDuration); !errors.Is(err, ErrInvalid) {
		t.Errorf("wanted ErrInvalid choosing visible card, got %v", err)
	}
	g.State = game.RedCaptainThinking
	if _, err := g.chooseCard("r2", "b", testNow, testMoveDuration); !errors.Is(err, ErrWrongState) {
		t.Errorf("wanted ErrWrongState choosing card while captain thinks, got %v", err)
	}
}

func TestFinishMove(t *testing.T) {
	finishMoveTests := []struct {
		id        game.PlayerID
		state     game.State
		wantErr   error
		wantState game.State
	}{
		{"r2", game.RedTeamThinking, nil, game.BlueCaptainThinking},
		{"r1", game.RedTeamThinking, nil, game.BlueCaptainThinking},
		{"b2", game.BlueTeamThinking, nil, game.RedCaptainThinking},
		{"b2", game.RedTeamThinking, ErrNotAllowed, game.RedTeamThinking},
		{"r2", game.RedCaptainThinking, ErrWrongState, game.RedCaptainThinking},
	}
	for i, test := range finishMoveTests {
		g := newTestGame(t)
		g.State = test.state
		err := g.finishMove(test.id, testNow, testMoveDuration)
		switch {
		case !errors.Is(err, test.wantErr):
			t.Errorf("Test %v: wanted error %v, got %v", i, test.wantErr, err)
		case g.State != test.wantState:
			t.Errorf("Test %v: wanted state %v, got %v", i, test.wantState, g.State)
		}
	}
}

func TestTimerExpired(t *testing.T) {
	timerTests := []struct {
		state     game.State
		elapsed   time.Duration
		want      bool
		wantState game.State
	}{
		{game.RedCaptainThinking, testMoveDuration - time.Second, false, game.RedCaptainThinking},
		{game.RedCaptainThinking, testMoveDuration, true, game.BlueCaptainThinking},
		{game.BlueTeamThinking, testMoveDuration + time.Hour, true, game.RedCaptainThinking},
		{game.Finished, testMoveDuration + time.Hour, false, game.Finished},
	}
	for i, test := range timerTests {
		g := newTestGame(t)
		g.State = test.state
		now := testNow.Add(test.elapsed)
		got := g.timerExpired(now, testMoveDuration)
		switch {
		case test.want != got:
			t.Errorf("Test %v: wanted expired to be %v", i, test.want)
		case g.State != test.wantState:
			t.Errorf("Test %v: wanted state %v, got %v", i, test.wantState, g.State)
		case got && !g.TimerEnd.Equal(now.Add(testMoveDuration)):
			t.Errorf("Test %v: wanted timer reset for next move", i)
		}
	}
}
